package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Harshitjoshi133/DeepShiva/internal/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const defaultKeyPrefix = "deep_shiva:ratelimit:"

// RedisStore counter store shared between instances.
// Each (client, bucket) is one key that expires after two windows, so the
// same two-generation bound holds without an explicit sweep. Redis errors
// fail open: the request is allowed and the error is logged.
type RedisStore struct {
	client redis.UniversalClient
	cfg    Config
	now    func() time.Time
	prefix string
	log    *logger.Logger
}

// NewRedisStore log may be nil
func NewRedisStore(client redis.UniversalClient, cfg Config, log *logger.Logger, opts ...Option) *RedisStore {
	o := buildOptions(opts)
	return &RedisStore{
		client: client,
		cfg:    cfg.normalized(),
		now:    o.now,
		prefix: defaultKeyPrefix,
		log:    log,
	}
}

func (s *RedisStore) key(client string, bucket int64) string {
	return fmt.Sprintf("%s%s:%d", s.prefix, client, bucket)
}

func (s *RedisStore) IsLimited(ctx context.Context, client string) bool {
	n, err := s.client.Get(ctx, s.key(client, Bucket(s.now(), s.cfg.Window))).Int()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.report("get", client, err)
		}
		return false
	}
	return n >= s.cfg.Limit
}

func (s *RedisStore) Record(ctx context.Context, client string) {
	key := s.key(client, Bucket(s.now(), s.cfg.Window))
	pipe := s.client.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, 2*s.cfg.Window)
	if _, err := pipe.Exec(ctx); err != nil {
		s.report("incr", client, err)
	}
}

// Count requests recorded for client in the current bucket
func (s *RedisStore) Count(ctx context.Context, client string) (int, error) {
	n, err := s.client.Get(ctx, s.key(client, Bucket(s.now(), s.cfg.Window))).Int()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return n, err
}

func (s *RedisStore) report(op, client string, err error) {
	if s.log == nil {
		return
	}
	s.log.Warn("Rate limit store unavailable, allowing request",
		zap.String("operation", op),
		logger.ClientIP(client),
		zap.Error(err),
	)
}
