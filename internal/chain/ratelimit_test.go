package chain

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiterAllow(t *testing.T) {
	t.Parallel()

	t.Run("allows up to burst", func(t *testing.T) {
		t.Parallel()
		rl := NewRateLimiter(1, 3)
		assert.True(t, rl.Allow("rpc"))
		assert.True(t, rl.Allow("rpc"))
		assert.True(t, rl.Allow("rpc"))
		assert.False(t, rl.Allow("rpc"))
	})

	t.Run("endpoints are limited independently", func(t *testing.T) {
		t.Parallel()
		rl := NewRateLimiter(1, 1)
		assert.True(t, rl.Allow("rpc"))
		assert.False(t, rl.Allow("rpc"))
		assert.True(t, rl.Allow("assets"))
	})
}

func TestRateLimiterWait(t *testing.T) {
	t.Parallel()

	t.Run("returns immediately when tokens available", func(t *testing.T) {
		t.Parallel()
		rl := NewRateLimiter(100, 10)
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		require.NoError(t, rl.Wait(ctx, "rpc"))
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()
		rl := NewRateLimiter(0.001, 1)
		require.True(t, rl.Allow("rpc"))

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		require.Error(t, rl.Wait(ctx, "rpc"))
	})
}

func TestDefaultRateLimiter(t *testing.T) {
	t.Parallel()

	rl := DefaultRateLimiter()
	require.NotNil(t, rl)
	assert.True(t, rl.Allow("rpc"))
}

func TestRateLimiterConcurrentAccess(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(1000, 1000)
	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 50; j++ {
				rl.Allow("shared")
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
