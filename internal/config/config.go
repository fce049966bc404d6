// Package config loads the server configuration from the environment
package config

import (
	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds the server configuration
type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`

	// DataDir is the root of the rule content tree the catalog loads
	DataDir string `env:"DATA_DIR" envDefault:"data"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisUseTLS   bool   `env:"REDIS_USE_TLS" envDefault:"false"`
	RedisPoolSize int    `env:"REDIS_POOL_SIZE" envDefault:"10"`

	SessionTTLHours int `env:"SESSION_TTL_HOURS" envDefault:"24"`
}

// Load reads the configuration from the environment, first applying any
// .env file in the working directory.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
