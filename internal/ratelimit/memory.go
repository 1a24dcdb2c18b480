package ratelimit

import (
	"context"
	"sync"
	"time"
)

type counterKey struct {
	client string
	bucket int64
}

// MemoryStore process-local counter store
type MemoryStore struct {
	cfg    Config
	now    func() time.Time
	mu     sync.Mutex
	counts map[counterKey]int

	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewMemoryStore creates the store and, when CleanupInterval > 0, a sweeper
// goroutine that is released by Stop
func NewMemoryStore(cfg Config, opts ...Option) *MemoryStore {
	o := buildOptions(opts)
	s := &MemoryStore{
		cfg:    cfg.normalized(),
		now:    o.now,
		counts: make(map[counterKey]int),
		stopCh: make(chan struct{}),
	}
	if cfg.CleanupInterval > 0 {
		go s.cleanup(cfg.CleanupInterval)
	}
	return s
}

func (s *MemoryStore) IsLimited(_ context.Context, client string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[counterKey{client, s.bucket()}] >= s.cfg.Limit
}

func (s *MemoryStore) Record(_ context.Context, client string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current := s.bucket()
	s.counts[counterKey{client, current}]++
	s.sweepLocked(current)
}

// Count requests recorded for client in the current bucket
func (s *MemoryStore) Count(client string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[counterKey{client, s.bucket()}]
}

// Len number of live entries
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.counts)
}

// Sweep drops entries older than the previous bucket
func (s *MemoryStore) Sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked(s.bucket())
}

func (s *MemoryStore) sweepLocked(current int64) {
	for k := range s.counts {
		if k.bucket < current-1 {
			delete(s.counts, k)
		}
	}
}

func (s *MemoryStore) bucket() int64 {
	return Bucket(s.now(), s.cfg.Window)
}

func (s *MemoryStore) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Sweep()
		case <-s.stopCh:
			return
		}
	}
}

// Stop releases the sweeper; safe to call more than once
func (s *MemoryStore) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
}

// GetStats snapshot for diagnostics
func (s *MemoryStore) GetStats() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	clients := make(map[string]struct{}, len(s.counts))
	for k := range s.counts {
		clients[k.client] = struct{}{}
	}
	return map[string]interface{}{
		"backend":        "memory",
		"active_entries": len(s.counts),
		"active_clients": len(clients),
		"config": map[string]interface{}{
			"limit":          s.cfg.Limit,
			"window_seconds": int(s.cfg.Window / time.Second),
		},
	}
}
