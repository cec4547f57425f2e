// Package config loads the runtime configuration from environment
// variables and validates it before the application wires its dependencies.
package config

import (
	"github.com/bochaco/stableset-net/internal/pkg/validator"

	"github.com/kelseyhightower/envconfig"
)

// Config holds every environment-driven setting of the process.
type Config struct {
	ServiceName      string `envconfig:"SERVICE_NAME" default:"stableset-net"`
	LogLevel         string `envconfig:"LOG_LEVEL" default:"info" validate:"required"`
	TelemetryEnabled bool   `envconfig:"TELEMETRY_ENABLED" default:"false"`

	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379" validate:"required"`
	RedisUsername string `envconfig:"REDIS_USERNAME"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	// NetworkContactsURL points at the published bootstrap contacts list.
	// Empty disables contacts acquisition.
	NetworkContactsURL string `envconfig:"NETWORK_CONTACTS_URL" validate:"omitempty,url"`
}

// Load reads the configuration from the environment and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}

	if err := validator.Validate(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
