package ratelimit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryLimiter_AllowsUpToBurst(t *testing.T) {
	limiter := NewInMemoryLimiter(10)
	ctx := context.Background()

	allowed := 0
	for i := 0; i < 11; i++ {
		ok, err := limiter.Check(ctx, "user-1")
		require.NoError(t, err)
		if ok {
			allowed++
		}
	}

	assert.Equal(t, 10, allowed, "exactly one of eleven requests in the same instant should be rejected")
}

func TestInMemoryLimiter_PerUserIsolation(t *testing.T) {
	limiter := NewInMemoryLimiter(1)
	ctx := context.Background()

	ok1, err := limiter.Check(ctx, "user-a")
	require.NoError(t, err)
	assert.True(t, ok1)

	ok2, err := limiter.Check(ctx, "user-b")
	require.NoError(t, err)
	assert.True(t, ok2, "a separate user's bucket must not be exhausted by another user's traffic")
}

func TestInMemoryLimiter_RejectsOnceExhausted(t *testing.T) {
	limiter := NewInMemoryLimiter(1)
	ctx := context.Background()

	ok1, _ := limiter.Check(ctx, "user-c")
	ok2, _ := limiter.Check(ctx, "user-c")

	assert.True(t, ok1)
	assert.False(t, ok2)
}
