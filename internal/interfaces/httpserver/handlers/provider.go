package handlers

import (
	"github.com/rs/zerolog"

	"mediagrab-server/internal/domain/download"
)

// Provider wires HTTP handlers.
type Provider struct {
	Download *DownloadHandler
}

func NewProvider(svc download.Service, log zerolog.Logger) *Provider {
	return &Provider{
		Download: NewDownloadHandler(svc, log),
	}
}
