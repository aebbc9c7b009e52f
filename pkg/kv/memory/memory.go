// Package memory provides an in-process kv.Store.
package memory

import (
	"bytes"
	"context"
	"sync"

	"github.com/enteocode/mfa/pkg/kv"
)

// Store keeps values in a map guarded by a RWMutex. Values are copied on
// the way in and out so callers cannot mutate stored payloads.
type Store struct {
	mu     sync.RWMutex
	items  map[string][]byte
	closed bool
}

var _ kv.Store = (*Store)(nil)

// New creates an empty store.
func New() *Store {
	return &Store{
		items: make(map[string][]byte),
	}
}

func (s *Store) Has(ctx context.Context, key string) (bool, error) {
	if err := kv.ValidateKey(key); err != nil {
		return false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return false, kv.ErrClosed
	}
	_, ok := s.items[key]
	return ok, nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := kv.ValidateKey(key); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, kv.ErrClosed
	}
	value, ok := s.items[key]
	if !ok {
		return nil, nil
	}
	return bytes.Clone(value), nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := kv.ValidateKey(key); err != nil {
		return err
	}
	if value == nil {
		value = []byte{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return kv.ErrClosed
	}
	s.items[key] = bytes.Clone(value)
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) (bool, error) {
	if err := kv.ValidateKey(key); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false, kv.ErrClosed
	}
	_, ok := s.items[key]
	delete(s.items, key)
	return ok, nil
}

// Len returns the number of stored keys.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Keys returns a snapshot of the stored keys in no particular order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.items))
	for k := range s.items {
		keys = append(keys, k)
	}
	return keys
}

// Close drops all values; further calls return kv.ErrClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.closed = true
	return nil
}
