package throttle

import (
	"context"
	"time"
)

// Limiter decides whether key may attempt once more.
type Limiter interface {
	Allow(ctx context.Context, key string) (*Result, error)
	Reset(ctx context.Context, key string) error
}

// Bucket is a token bucket Limiter.
type Bucket struct {
	store  Store
	config Config
	clock  func() time.Time
}

var _ Limiter = (*Bucket)(nil)

// BucketOption configures a Bucket.
type BucketOption func(*Bucket)

// WithClock replaces time.Now.
func WithClock(clock func() time.Time) BucketOption {
	return func(b *Bucket) {
		if clock != nil {
			b.clock = clock
		}
	}
}

// NewBucket validates cfg and returns a Bucket on store.
func NewBucket(store Store, cfg Config, opts ...BucketOption) (*Bucket, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	b := &Bucket{store: store, config: cfg, clock: time.Now}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Allow consumes one token.
func (b *Bucket) Allow(ctx context.Context, key string) (*Result, error) {
	return b.AllowN(ctx, key, 1)
}

// AllowN consumes n tokens.
func (b *Bucket) AllowN(ctx context.Context, key string, n int) (*Result, error) {
	if n <= 0 {
		return nil, ErrInvalidTokenCount
	}
	return b.consume(ctx, key, n)
}

// Status returns the bucket state without consuming.
func (b *Bucket) Status(ctx context.Context, key string) (*Result, error) {
	return b.consume(ctx, key, 0)
}

// Reset refills the bucket of key.
func (b *Bucket) Reset(ctx context.Context, key string) error {
	return b.store.Reset(ctx, key)
}

func (b *Bucket) consume(ctx context.Context, key string, n int) (*Result, error) {
	now := b.clock()
	remaining, resetAt, err := b.store.Consume(ctx, key, n, b.config, now)
	if err != nil {
		return nil, err
	}
	return &Result{
		Limit:     b.config.Capacity,
		Remaining: remaining,
		ResetAt:   resetAt,
		now:       now,
	}, nil
}
