// Package ratelimit counts requests per client in fixed time buckets.
//
// A bucket is floor(unix seconds / window seconds). A client is limited once
// its count in the current bucket reaches the threshold; counts from buckets
// older than the previous one are dropped.
package ratelimit

import (
	"context"
	"time"
)

const (
	// DefaultLimit requests per client per bucket
	DefaultLimit = 60
	// DefaultWindow bucket length
	DefaultWindow = time.Minute
)

// Limiter counter store used by the security stage
type Limiter interface {
	// IsLimited reports whether client already reached the limit in the current bucket
	IsLimited(ctx context.Context, client string) bool
	// Record counts one request for client in the current bucket
	Record(ctx context.Context, client string)
}

// Config store settings
type Config struct {
	Limit           int
	Window          time.Duration
	CleanupInterval time.Duration // memory store only; 0 disables the background sweeper
}

func (c Config) normalized() Config {
	if c.Limit <= 0 {
		c.Limit = DefaultLimit
	}
	if c.Window < time.Second {
		c.Window = DefaultWindow
	}
	return c
}

// Bucket index of t for the given window
func Bucket(t time.Time, window time.Duration) int64 {
	secs := int64(window / time.Second)
	if secs <= 0 {
		secs = int64(DefaultWindow / time.Second)
	}
	return t.Unix() / secs
}

// Option store option
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides time.Now
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
