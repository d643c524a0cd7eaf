package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/campus-feed-api/internal/config"
	"github.com/campus-feed-api/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestCache connects to TEST_REDIS_ADDR or skips
func newTestCache(t *testing.T) *RedisCache {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}

	c, err := NewRedisCache(context.Background(), config.CacheConfig{Addr: addr, TTL: time.Minute}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestRedisCache_RoundTrip(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()
	key := "toxicity:test-" + time.Now().Format(time.RFC3339Nano)

	suggestion := "be nice"
	want := models.ToxicityResult{IsToxic: true, ToxicityScore: 0.9, Suggestion: &suggestion}
	require.NoError(t, c.Set(ctx, key, want))

	var got models.ToxicityResult
	hit, err := c.Get(ctx, key, &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, want, got)
}

func TestRedisCache_Miss(t *testing.T) {
	c := newTestCache(t)

	var got models.ToxicityResult
	hit, err := c.Get(context.Background(), "toxicity:never-written", &got)

	require.NoError(t, err)
	assert.False(t, hit)
}

func TestNewRedisCache_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := NewRedisCache(ctx, config.CacheConfig{Addr: "127.0.0.1:1"}, zerolog.Nop())

	assert.Error(t, err)
}
