package throttle

import (
	"context"
	"sync"
	"time"
)

const staleAfter = time.Hour

type bucket struct {
	tokens     int
	lastRefill time.Time
	lastAccess time.Time
}

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu      sync.Mutex
	buckets map[string]*bucket

	cleanupInterval time.Duration
	stop            chan struct{}
	stopOnce        sync.Once
	done            chan struct{}
}

var _ Store = (*MemoryStore)(nil)

// MemoryStoreOption configures a MemoryStore.
type MemoryStoreOption func(*MemoryStore)

// WithCleanupInterval sets how often idle buckets are dropped. Zero disables
// the cleanup goroutine.
func WithCleanupInterval(interval time.Duration) MemoryStoreOption {
	return func(s *MemoryStore) {
		s.cleanupInterval = interval
	}
}

// NewMemoryStore creates a store and starts its cleanup goroutine; call
// Close to stop it.
func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	s := &MemoryStore{
		buckets:         make(map[string]*bucket),
		cleanupInterval: 5 * time.Minute,
		stop:            make(chan struct{}),
		done:            make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.cleanupInterval > 0 {
		go s.cleanup()
	} else {
		close(s.done)
	}
	return s
}

func (s *MemoryStore) Consume(_ context.Context, key string, tokens int, cfg Config, now time.Time) (int, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.buckets[key]
	if !ok {
		b = &bucket{tokens: cfg.Capacity, lastRefill: now}
		s.buckets[key] = b
	}

	// Whole intervals only; capped so a long idle bucket cannot overflow.
	maxIntervals := int64(cfg.Capacity/cfg.RefillRate + 1)
	intervals := int(min(int64(now.Sub(b.lastRefill)/cfg.RefillInterval), maxIntervals))
	if intervals > 0 {
		b.tokens = min(b.tokens+intervals*cfg.RefillRate, cfg.Capacity)
		b.lastRefill = now
	}

	remaining := b.tokens - tokens
	if remaining >= 0 {
		b.tokens = remaining
	}
	b.lastAccess = now
	return remaining, b.lastRefill.Add(cfg.RefillInterval), nil
}

func (s *MemoryStore) Reset(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.buckets, key)
	return nil
}

// Len returns the number of tracked buckets.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.buckets)
}

func (s *MemoryStore) cleanup() {
	defer close(s.done)
	ticker := time.NewTicker(s.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.removeStale(time.Now())
		case <-s.stop:
			return
		}
	}
}

func (s *MemoryStore) removeStale(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, b := range s.buckets {
		if now.Sub(b.lastAccess) > staleAfter {
			delete(s.buckets, key)
		}
	}
}

// Close stops the cleanup goroutine and waits for it to exit. Safe to call
// more than once.
func (s *MemoryStore) Close() error {
	s.stopOnce.Do(func() { close(s.stop) })
	<-s.done
	return nil
}
