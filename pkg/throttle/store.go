package throttle

import (
	"context"
	"time"
)

// Store keeps bucket state.
type Store interface {
	// Consume takes tokens from the bucket of key at now and returns what is
	// left; a negative remainder means the attempt is denied. Consuming zero
	// tokens only refills.
	Consume(ctx context.Context, key string, tokens int, cfg Config, now time.Time) (remaining int, resetAt time.Time, err error)

	// Reset forgets the bucket of key.
	Reset(ctx context.Context, key string) error
}
