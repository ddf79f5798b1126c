//go:build wireinject

package main

import (
	"github.com/google/wire"

	"mediagrab-server/internal/config"
	"mediagrab-server/internal/domain/download"
	"mediagrab-server/internal/infrastructure/extractor"
	"mediagrab-server/internal/infrastructure/logger"
	"mediagrab-server/internal/infrastructure/storage"
	"mediagrab-server/internal/interfaces/httpserver"
)

var downloadSet = wire.NewSet(
	storage.NewArtifactStore,
	wire.Bind(new(download.ArtifactStore), new(*storage.ArtifactStore)),
	extractor.New,
	wire.Bind(new(download.Engine), new(*extractor.YTDLP)),
	download.NewService,
)

// BuildApplication assembles the downloader API with Wire.
func BuildApplication() (*Application, error) {
	wire.Build(
		config.Load,
		logger.New,
		downloadSet,
		httpserver.New,
		NewApplication,
	)
	return nil, nil
}
