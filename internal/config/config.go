// Package config loads service configuration from the environment,
// with an optional .env file for local development.
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all service configuration
type Config struct {
	Server   ServerConfig
	Upstream UpstreamConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host         string        `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port         int           `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeout  time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"10s"`
	WriteTimeout time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"30s"`
	IdleTimeout  time.Duration `envconfig:"SERVER_IDLE_TIMEOUT" default:"60s"`
}

// UpstreamConfig holds Open-Meteo gateway settings
type UpstreamConfig struct {
	ForecastBaseURL  string        `envconfig:"UPSTREAM_FORECAST_URL" default:"https://api.open-meteo.com"`
	GeocodingBaseURL string        `envconfig:"UPSTREAM_GEOCODING_URL" default:"https://geocoding-api.open-meteo.com"`
	Timeout          time.Duration `envconfig:"UPSTREAM_TIMEOUT" default:"10s"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
}

// LoadConfig loads configuration from the environment. A missing .env
// file is not an error.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	return &cfg, nil
}

// Validate checks configuration consistency
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Upstream.ForecastBaseURL == "" {
		return fmt.Errorf("upstream forecast URL must not be empty")
	}
	if c.Upstream.GeocodingBaseURL == "" {
		return fmt.Errorf("upstream geocoding URL must not be empty")
	}
	if c.Upstream.Timeout <= 0 {
		return fmt.Errorf("upstream timeout must be positive, got %s", c.Upstream.Timeout)
	}
	return nil
}
