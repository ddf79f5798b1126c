package handlers

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"mediagrab-server/internal/domain/download"
	"mediagrab-server/internal/infrastructure/metrics"
	"mediagrab-server/internal/interfaces/httpserver/requests"
	"mediagrab-server/internal/interfaces/httpserver/responses"
)

// DownloadHandler exposes the download endpoints.
type DownloadHandler struct {
	svc download.Service
	log zerolog.Logger
}

func NewDownloadHandler(svc download.Service, log zerolog.Logger) *DownloadHandler {
	return &DownloadHandler{
		svc: svc,
		log: log.With().Str("component", "download-handler").Logger(),
	}
}

// Health godoc
// @Summary      Service health
// @Description  Reports liveness, ffmpeg availability, and the supported platforms.
// @Tags         system
// @Produce      json
// @Success      200  {object}  responses.HealthResponse
// @Router       /api/health [get]
func (h *DownloadHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, responses.BuildHealthResponse(h.svc.Health()))
}

// Platforms godoc
// @Summary      Supported platforms
// @Description  Lists the platform labels the service recognizes.
// @Tags         system
// @Produce      json
// @Success      200  {object}  responses.PlatformsResponse
// @Router       /api/platforms [get]
func (h *DownloadHandler) Platforms(c *gin.Context) {
	c.JSON(http.StatusOK, responses.BuildPlatformsResponse(h.svc.Platforms()))
}

// Analyze godoc
// @Summary      Inspect media metadata
// @Description  Probes a URL from a supported platform and returns title, duration, thumbnail, and every known format.
// @Tags         download
// @Accept       json
// @Produce      json
// @Param        request  body      requests.AnalyzeRequest  true  "Media URL"
// @Success      200      {object}  responses.AnalyzeResponse
// @Failure      400      {object}  responses.ErrorResponse
// @Failure      500      {object}  responses.ErrorResponse
// @Router       /api/analyze [post]
func (h *DownloadHandler) Analyze(c *gin.Context) {
	// A malformed body degrades to an empty URL so the uniform message applies.
	var req requests.AnalyzeRequest
	_ = c.ShouldBindJSON(&req)

	info, err := h.svc.Analyze(c.Request.Context(), req.URL)
	if err != nil {
		h.log.Error().Err(err).Str("url", req.URL).Msg("analyze failed")
		responses.HandleError(c, err, "Failed to analyze")
		return
	}

	c.JSON(http.StatusOK, responses.BuildAnalyzeResponse(info))
}

// Formats godoc
// @Summary      List download formats
// @Description  Probes a URL and returns curated video and audio format lists.
// @Tags         download
// @Accept       json
// @Produce      json
// @Param        request  body      requests.FormatsRequest  true  "Media URL"
// @Success      200      {object}  responses.FormatsResponse
// @Failure      400      {object}  responses.ErrorResponse
// @Failure      500      {object}  responses.ErrorResponse
// @Router       /api/formats [post]
func (h *DownloadHandler) Formats(c *gin.Context) {
	var req requests.FormatsRequest
	_ = c.ShouldBindJSON(&req)

	listing, err := h.svc.ListFormats(c.Request.Context(), req.URL)
	if err != nil {
		h.log.Error().Err(err).Str("url", req.URL).Msg("format listing failed")
		responses.HandleError(c, err, "Failed to fetch formats")
		return
	}

	c.JSON(http.StatusOK, responses.BuildFormatsResponse(listing))
}

// Download godoc
// @Summary      Download media
// @Description  Fetches the URL in the requested format and stores the artifact for retrieval.
// @Tags         download
// @Accept       json
// @Produce      json
// @Param        request  body      requests.DownloadRequest  true  "Media URL and format"
// @Success      200      {object}  responses.DownloadResponse
// @Failure      400      {object}  responses.ErrorResponse
// @Failure      500      {object}  responses.ErrorResponse
// @Router       /api/download [post]
func (h *DownloadHandler) Download(c *gin.Context) {
	var req requests.DownloadRequest
	_ = c.ShouldBindJSON(&req)

	result, err := h.svc.Download(c.Request.Context(), req.URL, req.FormatID)
	if err != nil {
		h.log.Error().Err(err).Str("url", req.URL).Str("format_id", req.FormatID).Msg("download failed")
		metrics.RecordDownload(platformLabel(req.URL), "error", 0)
		responses.HandleError(c, err, "Download failed")
		return
	}

	metrics.RecordDownload(result.Platform, "success", result.Artifact.SizeBytes)
	c.JSON(http.StatusOK, responses.BuildDownloadResponse(result))
}

// DownloadFile godoc
// @Summary      Retrieve a downloaded file
// @Description  Serves a previously downloaded artifact as an attachment.
// @Tags         download
// @Produce      octet-stream
// @Param        filename  path  string  true  "Artifact filename"
// @Success      200  "binary data"
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /api/download-file/{filename} [get]
func (h *DownloadHandler) DownloadFile(c *gin.Context) {
	name := c.Param("filename")

	path, cleanName, err := h.svc.ResolveArtifact(name)
	if err != nil {
		h.log.Warn().Err(err).Str("filename", name).Msg("artifact lookup failed")
		responses.HandleError(c, err, "File not found")
		return
	}

	c.Header("Content-Type", contentTypeForName(cleanName))
	c.FileAttachment(path, cleanName)
}

// contentTypeForName maps artifact extensions onto the types browsers expect.
// The stored bytes are trusted; only the extension drives the type.
func contentTypeForName(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".mp3":
		return "audio/mpeg"
	case ".m4a":
		return "audio/mp4"
	case ".mp4":
		return "video/mp4"
	default:
		return "application/octet-stream"
	}
}

// platformLabel is a best-effort metric label for failed downloads. Bounded
// by the platform table plus the unknown bucket.
func platformLabel(rawURL string) string {
	cls, err := download.ClassifyURL(rawURL)
	if err != nil {
		return "unknown"
	}
	return cls.Platform
}
