package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draftforge/draftforge/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.False(t, cfg.RedisUseTLS)
	assert.Equal(t, 10, cfg.RedisPoolSize)
	assert.Equal(t, 24, cfg.SessionTTLHours)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DATA_DIR", "/srv/content")
	t.Setenv("REDIS_ADDR", "redis.internal:6380")
	t.Setenv("REDIS_USE_TLS", "true")
	t.Setenv("SESSION_TTL_HOURS", "48")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, "/srv/content", cfg.DataDir)
	assert.Equal(t, "redis.internal:6380", cfg.RedisAddr)
	assert.True(t, cfg.RedisUseTLS)
	assert.Equal(t, 48, cfg.SessionTTLHours)
}
