package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
	StorageSQLite   = "sqlite"
)

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort             string `env:"HTTP_PORT" envDefault:"8080"`
	StorageDriver        string `env:"STORAGE_DRIVER" envDefault:"memory"`
	DatabaseURL          string `env:"DATABASE_URL"`
	SQLitePath           string `env:"SQLITE_PATH" envDefault:"vaidya.db"`
	RedisAddr            string `env:"REDIS_ADDR"`
	RedisPassword        string `env:"REDIS_PASSWORD"`
	RedisDB              int    `env:"REDIS_DB" envDefault:"0"`
	ModuleTTLHours       int    `env:"MODULE_TTL_HOURS" envDefault:"0"`
	BookingEventsChannel string `env:"BOOKING_EVENTS_CHANNEL"`
	JWTSecret            string `env:"JWT_SECRET"`
	JWTIssuer            string `env:"JWT_ISSUER"`
	CatalogPath          string `env:"CATALOG_PATH"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate verifica que el driver elegido tenga lo que necesita.
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case StorageMemory, StorageSQLite:
	case StoragePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for storage driver %q", c.StorageDriver)
		}
	case StorageRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required for storage driver %q", c.StorageDriver)
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}
	if c.BookingEventsChannel != "" && c.RedisAddr == "" {
		return fmt.Errorf("REDIS_ADDR is required to consume %q", c.BookingEventsChannel)
	}
	if c.ModuleTTLHours < 0 {
		return fmt.Errorf("MODULE_TTL_HOURS must not be negative")
	}
	return nil
}

// ModuleTTL devuelve la expiración de módulos en Redis (0 = sin expiración).
func (c *Config) ModuleTTL() time.Duration {
	return time.Duration(c.ModuleTTLHours) * time.Hour
}
