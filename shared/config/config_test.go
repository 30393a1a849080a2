package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_AppliesDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/flashsale")
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:3000", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 100, cfg.QueueCapacity)
	assert.Equal(t, 10, cfg.RateLimitRPS)
	assert.Equal(t, 10, cfg.DBPoolSize)
	assert.Equal(t, "flashsale.events", cfg.RabbitMQExchange)
	assert.False(t, cfg.RedisRateLimiter)
}

func TestLoad_ReadsOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/flashsale")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("HTTP_ADDR", "127.0.0.1:8080")
	t.Setenv("QUEUE_CAPACITY", "500")
	t.Setenv("REDIS_RATE_LIMITER", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8080", cfg.HTTPAddr)
	assert.Equal(t, 500, cfg.QueueCapacity)
	assert.True(t, cfg.RedisRateLimiter)
}

func TestLoad_MissingRequiredFieldErrors(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	assert.Error(t, err)
}
