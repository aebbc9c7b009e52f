package throttle

import (
	"errors"
	"time"
)

// Config describes a token bucket.
type Config struct {
	Capacity       int           // Attempts allowed in a burst
	RefillRate     int           // Attempts given back per interval
	RefillInterval time.Duration // How often attempts are given back
}

func (c Config) validate() error {
	switch {
	case c.Capacity <= 0:
		return errors.Join(ErrInvalidConfig, errors.New("capacity must be positive"))
	case c.RefillRate <= 0:
		return errors.Join(ErrInvalidConfig, errors.New("refill rate must be positive"))
	case c.RefillInterval <= 0:
		return errors.Join(ErrInvalidConfig, errors.New("refill interval must be positive"))
	}
	return nil
}

// Result is the bucket state after an attempt.
type Result struct {
	Limit     int
	Remaining int
	ResetAt   time.Time
	now       time.Time
}

// Allowed reports whether the attempt fit in the bucket.
func (r *Result) Allowed() bool {
	return r.Remaining >= 0
}

// RetryAfter returns how long to wait before the next attempt, or 0 when
// the attempt was allowed.
func (r *Result) RetryAfter() time.Duration {
	if r.Allowed() {
		return 0
	}
	return max(r.ResetAt.Sub(r.now), 0)
}
