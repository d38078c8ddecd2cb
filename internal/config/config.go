// Package config loads and validates environment variables at startup.
// Fail-fast: if a required variable is missing or malformed, Load returns
// an error and the process exits.
package config

import (
	"errors"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	pkgerrors "github.com/pkg/errors"
)

// Storage backends for the draft store and the offline queue.
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Config holds all runtime configuration for the posting service.
type Config struct {
	Port     string `env:"POSTING_PORT" envDefault:"8083" validate:"required,numeric"`
	GRPCPort string `env:"POSTING_GRPC_PORT" envDefault:"9083" validate:"required,numeric"`

	OffersAPIURL string `env:"OFFERS_API_URL" envDefault:"http://localhost:5000" validate:"required,url"`
	RecruiterID  string `env:"RECRUITER_ID" envDefault:"3823eb09-f9f6-4bc7-a8f3-49e9aea76e1a" validate:"required"`

	StoreBackend string `env:"STORE_BACKEND" envDefault:"memory" validate:"oneof=memory redis postgres"`
	RedisURL     string `env:"REDIS_URL" validate:"required_if=StoreBackend redis"`
	DatabaseURL  string `env:"DATABASE_URL" validate:"required_if=StoreBackend postgres"`

	RetrySpec string `env:"RETRY_SPEC" envDefault:"@every 12h" validate:"required"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
}

// Load reads an optional .env file, then the environment, and returns a
// validated Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, pkgerrors.Wrap(err, "load .env")
	}
	return Parse()
}

// Parse builds a Config from the current environment only.
func Parse() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, pkgerrors.Wrap(err, "parse environment")
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, pkgerrors.Wrap(err, "invalid configuration")
	}
	return &cfg, nil
}
