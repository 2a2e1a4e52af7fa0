package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

type Config struct {
	Server  ServerConfig
	Backend BackendConfig
	Redis   RedisConfig
	Session SessionConfig
	Catalog CatalogConfig
}

type ServerConfig struct {
	Port            int           `env:"SERVER_PORT" envDefault:"3000"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

type BackendConfig struct {
	BaseURL      string        `env:"BACKEND_BASE_URL" envDefault:"http://localhost:8080/api"`
	ProbeTimeout time.Duration `env:"BACKEND_PROBE_TIMEOUT" envDefault:"5s"`
}

// RedisConfig is optional: an empty Addr disables the product cache.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR" envDefault:""`
	Password string `env:"REDIS_PASSWORD" envDefault:""`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

type SessionConfig struct {
	Path string `env:"SESSION_FILE" envDefault:".storefront/session.json"`
}

type CatalogConfig struct {
	PageSize        int           `env:"CATALOG_PAGE_SIZE" envDefault:"12"`
	LandingPageSize int           `env:"CATALOG_LANDING_PAGE_SIZE" envDefault:"8"`
	WarmInterval    time.Duration `env:"CATALOG_WARM_INTERVAL" envDefault:"5m"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
