package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	// aligned to a bucket start
	return &fakeClock{now: time.Unix(1_700_000_040, 0)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestBucket(t *testing.T) {
	assert.Equal(t, int64(0), Bucket(time.Unix(59, 0), time.Minute))
	assert.Equal(t, int64(1), Bucket(time.Unix(60, 0), time.Minute))
	assert.Equal(t, int64(1), Bucket(time.Unix(60, 0), 0))
	assert.Equal(t, int64(6), Bucket(time.Unix(60, 0), 10*time.Second))
}

func TestMemoryStore_UnknownClientNotLimited(t *testing.T) {
	s := NewMemoryStore(Config{})
	assert.False(t, s.IsLimited(context.Background(), "203.0.113.9"))
	assert.Equal(t, 0, s.Len())
}

func TestMemoryStore_LimitWithinBucket(t *testing.T) {
	clock := newFakeClock()
	s := NewMemoryStore(Config{Limit: 60}, WithClock(clock.Now))
	ctx := context.Background()

	for i := 0; i < 60; i++ {
		require.False(t, s.IsLimited(ctx, "10.0.0.1"), "request %d", i+1)
		s.Record(ctx, "10.0.0.1")
	}
	assert.True(t, s.IsLimited(ctx, "10.0.0.1"))
	assert.False(t, s.IsLimited(ctx, "10.0.0.2"))

	clock.Advance(time.Minute)
	assert.False(t, s.IsLimited(ctx, "10.0.0.1"))
}

func TestMemoryStore_SweepKeepsTwoGenerations(t *testing.T) {
	clock := newFakeClock()
	s := NewMemoryStore(Config{}, WithClock(clock.Now))
	ctx := context.Background()

	s.Record(ctx, "a")
	clock.Advance(time.Minute)
	s.Record(ctx, "b")
	assert.Equal(t, 2, s.Len())

	clock.Advance(time.Minute)
	s.Record(ctx, "c")
	assert.Equal(t, 2, s.Len(), "bucket of a is older than previous and must be swept")

	clock.Advance(5 * time.Minute)
	s.Sweep()
	assert.Equal(t, 0, s.Len())
}

func TestMemoryStore_BoundedByActiveClients(t *testing.T) {
	clock := newFakeClock()
	s := NewMemoryStore(Config{}, WithClock(clock.Now))
	ctx := context.Background()

	for minute := 0; minute < 10; minute++ {
		for c := 0; c < 5; c++ {
			s.Record(ctx, fmt.Sprintf("client-%d", c))
		}
		clock.Advance(time.Minute)
		assert.LessOrEqual(t, s.Len(), 10)
	}
}

func TestMemoryStore_ConcurrentRecords(t *testing.T) {
	s := NewMemoryStore(Config{Limit: 1000}, WithClock(newFakeClock().Now))
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				s.Record(ctx, "shared")
				_ = s.IsLimited(ctx, "shared")
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 500, s.Count("shared"))
}

func TestMemoryStore_CleanupGoroutine(t *testing.T) {
	clock := newFakeClock()
	s := NewMemoryStore(Config{CleanupInterval: 10 * time.Millisecond}, WithClock(clock.Now))
	defer s.Stop()

	s.Record(context.Background(), "a")
	clock.Advance(3 * time.Minute)

	assert.Eventually(t, func() bool { return s.Len() == 0 }, time.Second, 10*time.Millisecond)
	s.Stop()
}

func TestMemoryStore_GetStats(t *testing.T) {
	s := NewMemoryStore(Config{Limit: 5}, WithClock(newFakeClock().Now))
	s.Record(context.Background(), "a")
	s.Record(context.Background(), "b")

	stats := s.GetStats()
	assert.Equal(t, 2, stats["active_clients"])
	assert.Equal(t, "memory", stats["backend"])
}
