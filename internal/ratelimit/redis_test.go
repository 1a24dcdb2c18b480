package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T, limit int, clock *fakeClock) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, Config{Limit: limit}, nil, WithClock(clock.Now)), mr
}

func TestRedisStore_LimitWithinBucket(t *testing.T) {
	clock := newFakeClock()
	s, _ := newRedisStore(t, 3, clock)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.False(t, s.IsLimited(ctx, "10.0.0.1"))
		s.Record(ctx, "10.0.0.1")
	}
	assert.True(t, s.IsLimited(ctx, "10.0.0.1"))

	n, err := s.Count(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	clock.Advance(time.Minute)
	assert.False(t, s.IsLimited(ctx, "10.0.0.1"))
}

func TestRedisStore_KeysExpireAfterTwoWindows(t *testing.T) {
	clock := newFakeClock()
	s, mr := newRedisStore(t, 60, clock)

	s.Record(context.Background(), "10.0.0.1")
	require.Len(t, mr.Keys(), 1)
	assert.Equal(t, 2*time.Minute, mr.TTL(mr.Keys()[0]))

	mr.FastForward(2*time.Minute + time.Second)
	assert.Empty(t, mr.Keys())
}

func TestRedisStore_FailsOpen(t *testing.T) {
	clock := newFakeClock()
	s, mr := newRedisStore(t, 1, clock)
	ctx := context.Background()

	s.Record(ctx, "10.0.0.1")
	require.True(t, s.IsLimited(ctx, "10.0.0.1"))

	mr.Close()
	assert.False(t, s.IsLimited(ctx, "10.0.0.1"))
	assert.NotPanics(t, func() { s.Record(ctx, "10.0.0.1") })
}
