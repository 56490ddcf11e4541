package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmforge/initiative-api/internal/errors"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 8*time.Hour, cfg.BattleTTL)
	assert.Equal(t, 168*time.Hour, cfg.TokenTTL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("ADDR", ":9999")
	t.Setenv("REDIS_ADDR", "redis.internal:6380")
	t.Setenv("BATTLE_TTL", "2h")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, "redis.internal:6380", cfg.RedisAddr)
	assert.Equal(t, 2*time.Hour, cfg.BattleTTL)
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{
		Addr:      ":8080",
		RedisAddr: "localhost:6379",
		JWTSecret: "secret",
		BattleTTL: 8 * time.Hour,
		TokenTTL:  7 * 24 * time.Hour,
	}
	require.NoError(t, valid.Validate())

	bad := valid
	bad.BattleTTL = 0
	err := bad.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BATTLE_TTL")
}
