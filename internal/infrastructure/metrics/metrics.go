package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Downloader-API Metrics
var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mediagrab",
			Subsystem: "downloader_api",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// Request duration histogram
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "mediagrab",
			Subsystem: "downloader_api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"method", "endpoint"},
	)

	// Download counters
	DownloadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mediagrab",
			Subsystem: "downloader_api",
			Name:      "downloads_total",
			Help:      "Total download jobs",
		},
		[]string{"platform", "status"},
	)

	// Download bytes counter
	DownloadBytesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mediagrab",
			Subsystem: "downloader_api",
			Name:      "download_bytes_total",
			Help:      "Total bytes written by finished download jobs",
		},
		[]string{"platform"},
	)

	// Extraction engine operations counter
	EngineOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mediagrab",
			Subsystem: "downloader_api",
			Name:      "engine_operations_total",
			Help:      "Total extraction engine invocations",
		},
		[]string{"operation", "status"},
	)

	// Extraction engine operation duration
	EngineDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "mediagrab",
			Subsystem: "downloader_api",
			Name:      "engine_duration_seconds",
			Help:      "Extraction engine invocation duration in seconds",
			Buckets:   []float64{0.5, 1, 5, 15, 60, 300, 900},
		},
		[]string{"operation"},
	)

	// Evicted file counter
	FilesEvictedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "mediagrab",
			Subsystem: "downloader_api",
			Name:      "files_evicted_total",
			Help:      "Total stale artifacts removed from the scratch directory",
		},
	)
)

// RecordRequest records an HTTP request
func RecordRequest(method, endpoint, status string, durationSec float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint).Observe(durationSec)
}

// RecordDownload records a finished download job
func RecordDownload(platform, status string, bytes int64) {
	DownloadsTotal.WithLabelValues(platform, status).Inc()
	if status == "success" {
		DownloadBytesTotal.WithLabelValues(platform).Add(float64(bytes))
	}
}

// RecordEngineOperation records an extraction engine invocation
func RecordEngineOperation(operation, status string, durationSec float64) {
	EngineOperationsTotal.WithLabelValues(operation, status).Inc()
	EngineDuration.WithLabelValues(operation).Observe(durationSec)
}

// RecordEviction records removed stale artifacts
func RecordEviction(count int) {
	if count > 0 {
		FilesEvictedTotal.Add(float64(count))
	}
}
