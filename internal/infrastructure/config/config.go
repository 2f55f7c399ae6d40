package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config is the process-wide immutable configuration, constructed once at
// startup and passed by reference into each component.
type Config struct {
	Port      string        `env:"PORT,           default=5000"`
	Env       string        `env:"ENV,            default=development"`
	JWTSecret string        `env:"JWT_SECRET_KEY"`
	JWTTTL    time.Duration `env:"JWT_EXPIRES_IN, default=24h"`
	LogLevel  string        `env:"LOG_LEVEL,      default=info"`

	Mongo MongoConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI"`
	Database string `env:"MONGO_DB, default=auth_backend"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// Production reports whether the runtime mode is production.
func (c *Config) Production() bool {
	return c.Env == "production"
}
