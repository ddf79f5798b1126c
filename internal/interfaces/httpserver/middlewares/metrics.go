package middlewares

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"mediagrab-server/internal/infrastructure/metrics"
)

// Metrics records request count and latency per route. The endpoint label is
// the matched route pattern, not the raw path, keeping label cardinality
// bounded.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}

		metrics.RecordRequest(c.Request.Method, endpoint, status, duration)
	}
}
