package controllers

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCacheVersionStopsOnCancelledContext(t *testing.T) {
	// Unreachable address: every command fails, which would normally
	// drive the retry loop through its backoff sleeps.
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	cm := NewCacheManager(rdb, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	_, err := cm.getCacheVersion(ctx)
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, elapsed, 50*time.Millisecond,
		"cancelled context must not wait out the retry backoff")
}
