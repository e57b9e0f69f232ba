package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/nfrund/roster/internal/pubsub"
)

// Config holds all configuration for the application.
type Config struct {
	LogFormat       string        `validate:"oneof=text json"`
	LogLevel        string        `validate:"oneof=debug info warn error"`
	ServerAddr      string        `validate:"required"`
	ShutdownTimeout time.Duration `validate:"gt=0"`
	Tracing         pubsub.TracingConfig
}

// Load reads configuration from the environment, after loading a .env file
// when one is present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// slog may not be configured yet; the default handler is fine here.
		slog.Debug("No .env file found, relying on environment variables")
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from the given lookup function and validates it.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		LogFormat:       stringOr(getenv("LOG_FORMAT"), "text"),
		LogLevel:        stringOr(getenv("LOG_LEVEL"), "info"),
		ServerAddr:      stringOr(getenv("SERVER_ADDR"), ":8080"),
		ShutdownTimeout: 10 * time.Second,
		Tracing:         pubsub.DefaultTracingConfig(),
	}

	if v := getenv("SHUTDOWN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err)
		}
		cfg.ShutdownTimeout = d
	}

	if v := getenv("PUBSUB_TRACING_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("PUBSUB_TRACING_ENABLED: %w", err)
		}
		cfg.Tracing.Enabled = enabled
	}
	cfg.Tracing.ServiceName = stringOr(getenv("PUBSUB_TRACING_SERVICE_NAME"), cfg.Tracing.ServiceName)
	cfg.Tracing.ZipkinURL = stringOr(getenv("PUBSUB_TRACING_ZIPKIN_URL"), cfg.Tracing.ZipkinURL)

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func stringOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
