// Package config handles loading application configuration from environment
// variables. All config is centralized here so no other package reads env
// vars directly. Sensible defaults are provided for development.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all application configuration. Populated from environment
// variables at startup and passed to other packages via dependency injection.
type Config struct {
	// Env is the runtime environment: "development" or "production".
	Env string `env:"ENV" envDefault:"development"`

	// Port is the HTTP listen port.
	Port int `env:"PORT" envDefault:"8080"`

	// BaseURL is the public-facing URL used for links and redirects.
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:8080"`

	// LogLevel controls log verbosity: "debug", "info", "warn", "error".
	LogLevel string `env:"LOG_LEVEL" envDefault:"debug"`

	// API holds settings for the remote campaign service.
	API APIConfig `envPrefix:"API_"`

	// Redis holds Redis connection settings for the session store.
	Redis RedisConfig `envPrefix:"REDIS_"`

	// Session holds browser session settings.
	Session SessionConfig `envPrefix:"SESSION_"`

	// Upload holds creative upload settings.
	Upload UploadConfig
}

// APIConfig holds connection settings for the remote campaign/auth service.
// The panel never talks to a database directly; everything goes through
// this REST surface.
type APIConfig struct {
	// BaseURL is the root of the campaign API (e.g. http://127.0.0.1:8000/api).
	BaseURL string `env:"BASE_URL" envDefault:"http://127.0.0.1:8000/api"`

	// Timeout bounds each remote call. A hung remote request fails as a
	// network error instead of wedging the request forever.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"30s"`
}

// RedisConfig holds Redis connection parameters.
type RedisConfig struct {
	// URL is the Redis connection URL (e.g., "redis://localhost:6379").
	URL string `env:"URL" envDefault:"redis://localhost:6379"`
}

// SessionConfig holds browser session settings.
type SessionConfig struct {
	// TTL is how long a browser session lasts before expiring.
	TTL time.Duration `env:"TTL" envDefault:"720h"`
}

// UploadConfig holds creative upload settings.
type UploadConfig struct {
	// MaxSize is the maximum upload file size in bytes.
	MaxSize int64 `env:"MAX_UPLOAD_SIZE" envDefault:"10485760"`

	// MediaPath is the root directory for uploaded creative storage.
	MediaPath string `env:"MEDIA_PATH" envDefault:"./media"`
}

// Load reads configuration from environment variables with defaults.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	e := strings.ToLower(c.Env)
	return e == "development" || e == "dev"
}

// SlogLevel maps the configured LogLevel to a slog level. Unknown values
// fall back to debug so a typo never silences logs.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}
