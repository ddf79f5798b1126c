package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds the environment driven configuration for the downloader service.
type Config struct {
	// Service Configuration
	ServiceName     string        `env:"SERVICE_NAME" envDefault:"downloader-api"`
	Environment     string        `env:"ENVIRONMENT" envDefault:"development"`
	HTTPPort        int           `env:"PORT" envDefault:"5000"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	EnableTracing   bool          `env:"ENABLE_TRACING" envDefault:"false"`
	OTLPEndpoint    string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:""`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Artifact Storage
	DownloadsDir string        `env:"DOWNLOADS_DIR" envDefault:"downloads"` // Scratch directory for finished downloads
	MaxFileAge   time.Duration `env:"MAX_FILE_AGE" envDefault:"1h"`

	// Extraction Engine
	YTDLPPath     string        `env:"YTDLP_PATH" envDefault:"yt-dlp"`
	FFmpegPath    string        `env:"FFMPEG_PATH" envDefault:"ffmpeg"`
	ProbeTimeout  time.Duration `env:"PROBE_TIMEOUT" envDefault:"1m"`
	FetchTimeout  time.Duration `env:"FETCH_TIMEOUT" envDefault:"15m"`
	SocketTimeout time.Duration `env:"SOCKET_TIMEOUT" envDefault:"30s"`
	EngineRetries int           `env:"ENGINE_RETRIES" envDefault:"3"`
}

// Load parses environment variables into Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	cfg.DownloadsDir = strings.TrimSpace(cfg.DownloadsDir)
	cfg.YTDLPPath = strings.TrimSpace(cfg.YTDLPPath)
	cfg.FFmpegPath = strings.TrimSpace(cfg.FFmpegPath)
	if cfg.DownloadsDir == "" {
		cfg.DownloadsDir = "downloads"
	}
	if cfg.YTDLPPath == "" {
		cfg.YTDLPPath = "yt-dlp"
	}
	if cfg.FFmpegPath == "" {
		cfg.FFmpegPath = "ffmpeg"
	}
	if cfg.MaxFileAge <= 0 {
		cfg.MaxFileAge = time.Hour
	}
	if cfg.EngineRetries < 0 {
		return nil, fmt.Errorf("ENGINE_RETRIES must not be negative")
	}
	return cfg, nil
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
