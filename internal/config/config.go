// Package config provides runtime configuration values for the service.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds configuration for the HTTP server, the carts upstream and
// dashboard display.
type Config struct {
	HTTPAddr        string        `env:"HTTP_ADDR" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`

	CartsBaseURL  string        `env:"CARTS_BASE_URL" envDefault:"https://dummyjson.com"`
	CartsLimit    int           `env:"CARTS_LIMIT" envDefault:"50"`
	CartsTimeout  time.Duration `env:"CARTS_TIMEOUT" envDefault:"5s"`
	CartsCacheTTL time.Duration `env:"CARTS_CACHE_TTL" envDefault:"1m"`
	RedisAddr     string        `env:"REDIS_ADDR"`

	BreakerMaxFailures uint32        `env:"BREAKER_MAX_FAILURES" envDefault:"5"`
	BreakerOpenTimeout time.Duration `env:"BREAKER_OPEN_TIMEOUT" envDefault:"30s"`

	DisplayLocale   string `env:"DISPLAY_LOCALE" envDefault:"en-US"`
	DisplayCurrency string `env:"DISPLAY_CURRENCY" envDefault:"USD"`

	SeedProducts bool `env:"SEED_PRODUCTS" envDefault:"true"`

	OTelEndpoint string `env:"OTEL_EXPORTER_ENDPOINT"`
}

// Load collects configuration from environment with defaults.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.CartsLimit <= 0 {
		return Config{}, fmt.Errorf("CARTS_LIMIT must be positive, got %d", cfg.CartsLimit)
	}
	return cfg, nil
}

// CacheEnabled reports whether cart snapshots should be cached in redis.
func (c Config) CacheEnabled() bool {
	return c.RedisAddr != "" && c.CartsCacheTTL > 0
}
