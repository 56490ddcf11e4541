// Package config loads server configuration from the environment.
package config

import (
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/dmforge/initiative-api/internal/errors"
)

// Config holds everything the server needs to start. Values come from
// the environment with development-friendly defaults; only the JWT
// secret is required.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string `env:"ADDR" envDefault:":8080"`

	// RedisAddr is the host:port of the backing Redis.
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`

	// JWTSecret signs session tokens. No default: a guessable secret
	// would let anyone mint tokens.
	JWTSecret string `env:"JWT_SECRET"`

	// BattleTTL is how long an untouched battle lives before Redis
	// expires it. Refreshed on every write.
	BattleTTL time.Duration `env:"BATTLE_TTL" envDefault:"8h"`

	// TokenTTL is the session token lifetime.
	TokenTTL time.Duration `env:"TOKEN_TTL" envDefault:"168h"`
}

// Load parses the environment and validates the result.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the config for missing or nonsensical values.
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("ADDR", c.Addr, vb)
	errors.ValidateRequired("REDIS_ADDR", c.RedisAddr, vb)
	errors.ValidateRequired("JWT_SECRET", c.JWTSecret, vb)

	if c.BattleTTL <= 0 {
		vb.Field("BATTLE_TTL", "must be positive")
	}
	if c.TokenTTL <= 0 {
		vb.Field("TOKEN_TTL", "must be positive")
	}

	return vb.Build()
}
