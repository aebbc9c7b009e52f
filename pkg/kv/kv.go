package kv

import "context"

// Store is a byte-oriented key-value store.
type Store interface {
	// Has reports whether key holds a value.
	Has(ctx context.Context, key string) (bool, error)
	// Get returns the value stored under key, or nil when it is missing.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key and reports whether it existed.
	Delete(ctx context.Context, key string) (bool, error)
}

// ValidateKey returns ErrEmptyKey for empty keys.
func ValidateKey(key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	return nil
}
