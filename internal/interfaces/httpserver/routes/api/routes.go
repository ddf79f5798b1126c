package api

import (
	"github.com/gin-gonic/gin"

	"mediagrab-server/internal/interfaces/httpserver/handlers"
)

// Routes encapsulates API route registration.
type Routes struct {
	handlers *handlers.Provider
}

func NewRoutes(provider *handlers.Provider) *Routes {
	return &Routes{handlers: provider}
}

// Register attaches all routes under the /api prefix.
func (r *Routes) Register(router gin.IRouter) {
	group := router.Group("/api")
	group.GET("/health", r.handlers.Download.Health)
	group.GET("/platforms", r.handlers.Download.Platforms)
	group.POST("/analyze", r.handlers.Download.Analyze)
	group.POST("/formats", r.handlers.Download.Formats)
	group.POST("/download", r.handlers.Download.Download)
	group.GET("/download-file/:filename", r.handlers.Download.DownloadFile)
}
