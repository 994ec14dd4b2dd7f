package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HTTPAddr        string        `env:"HTTP_ADDR" envDefault:":8080"`
	LogLevel        slog.Level    `env:"LOG_LEVEL" envDefault:"INFO"`
	SPADir          string        `env:"SPA_DIR" envDefault:"../web/dist"`
	MaxUploadMB     int64         `env:"MAX_UPLOAD_MB" envDefault:"16"`
	ImportWorkers   int           `env:"IMPORT_WORKERS" envDefault:"4"`
	WorkspaceTTL    time.Duration `env:"WORKSPACE_TTL" envDefault:"2h"`
	JanitorInterval time.Duration `env:"JANITOR_INTERVAL" envDefault:"5m"`
	EventTick       time.Duration `env:"EVENT_TICK" envDefault:"1s"`
	CORSOrigins     []string      `env:"CORS_ORIGINS" envSeparator:","`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if cfg.MaxUploadMB <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_MB must be positive, got %d", cfg.MaxUploadMB)
	}
	if cfg.ImportWorkers <= 0 {
		return nil, fmt.Errorf("IMPORT_WORKERS must be positive, got %d", cfg.ImportWorkers)
	}
	return &cfg, nil
}

func (c *Config) MaxUploadBytes() int64 { return c.MaxUploadMB << 20 }
