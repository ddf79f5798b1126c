package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"mediagrab-server/internal/config"
	"mediagrab-server/internal/domain/download"
	"mediagrab-server/internal/infrastructure/extractor"
	"mediagrab-server/internal/infrastructure/logger"
	"mediagrab-server/internal/infrastructure/observability"
	"mediagrab-server/internal/infrastructure/storage"
	"mediagrab-server/internal/interfaces/httpserver"
)

// @title Downloader API
// @version 1.0
// @description Self-hosted media download service wrapping the yt-dlp extraction engine.
// @BasePath /
type Application struct {
	httpServer *httpserver.HttpServer
	log        zerolog.Logger
}

func NewApplication(httpServer *httpserver.HttpServer, log zerolog.Logger) *Application {
	return &Application{
		httpServer: httpServer,
		log:        log,
	}
}

func (a *Application) Start(ctx context.Context) error {
	return a.httpServer.Run(ctx)
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	artifactStore, err := storage.NewArtifactStore(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize artifact store")
	}

	engine := extractor.New(cfg, log)
	downloadService := download.NewService(cfg, engine, artifactStore, log)

	httpServer := httpserver.New(cfg, log, downloadService)
	app := NewApplication(httpServer, log)

	if err := app.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	log.Info().Msg("application exited cleanly")
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
