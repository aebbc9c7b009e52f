package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/enteocode/mfa/pkg/kv"
)

// Store implements kv.Store on top of a Redis client.
type Store struct {
	db     redis.UniversalClient
	prefix string
	ttl    time.Duration
}

var _ kv.Store = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithPrefix namespaces every key.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// WithTTL sets an expiration on written keys. Zero means no expiration.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// New wraps client as a kv.Store.
func New(client redis.UniversalClient, opts ...Option) *Store {
	s := &Store{db: client}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewFromConfig wraps client and applies the key prefix from cfg.
func NewFromConfig(client redis.UniversalClient, cfg Config, opts ...Option) *Store {
	return New(client, append([]Option{WithPrefix(cfg.KeyPrefix)}, opts...)...)
}

func (s *Store) key(key string) string {
	return s.prefix + key
}

func (s *Store) Has(ctx context.Context, key string) (bool, error) {
	if err := kv.ValidateKey(key); err != nil {
		return false, err
	}
	n, err := s.db.Exists(ctx, s.key(key)).Result()
	if err != nil {
		return false, errors.Join(ErrOperationFailed, err)
	}
	return n > 0, nil
}

// Get returns nil for missing values (redis.Nil becomes nil).
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := kv.ValidateKey(key); err != nil {
		return nil, err
	}
	val, err := s.db.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Join(ErrOperationFailed, err)
	}
	return val, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := kv.ValidateKey(key); err != nil {
		return err
	}
	if err := s.db.Set(ctx, s.key(key), value, s.ttl).Err(); err != nil {
		return errors.Join(ErrOperationFailed, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) (bool, error) {
	if err := kv.ValidateKey(key); err != nil {
		return false, err
	}
	n, err := s.db.Del(ctx, s.key(key)).Result()
	if err != nil {
		return false, errors.Join(ErrOperationFailed, err)
	}
	return n > 0, nil
}

// Close terminates the Redis connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Conn returns the underlying Redis client for advanced operations.
func (s *Store) Conn() redis.UniversalClient {
	return s.db
}
