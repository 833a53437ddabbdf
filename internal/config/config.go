package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

// Config holds runtime settings. Command-line flags override these.
type Config struct {
	Store       string        `env:"LNCHR_STORE"`
	LogLevel    string        `env:"LNCHR_LOG_LEVEL" default:"info"`
	LogFormat   string        `env:"LNCHR_LOG_FORMAT" default:"text"`
	GracePeriod time.Duration `env:"LNCHR_GRACE_PERIOD" default:"1s"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Store == "" {
		p, err := StorePath()
		if err != nil {
			return nil, err
		}
		cfg.Store = p
	}
	return &cfg, nil
}

// Validate checks the log settings and grace period. Callers that override
// fields after Load validate again.
func (cfg *Config) Validate() error {
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log level must be one of debug, info, warn, error (got %q)", cfg.LogLevel)
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("log format must be text or json (got %q)", cfg.LogFormat)
	}
	if cfg.GracePeriod < 0 {
		return fmt.Errorf("grace period cannot be negative")
	}
	return nil
}
