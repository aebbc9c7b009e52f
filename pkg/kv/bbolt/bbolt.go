// Package bbolt provides a kv.Store backed by an embedded bbolt database.
package bbolt

import (
	"bytes"
	"context"
	"errors"

	"go.etcd.io/bbolt"

	"github.com/enteocode/mfa/pkg/kv"
)

// DefaultBucket holds all keys unless WithBucket is used.
const DefaultBucket = "mfa"

var ErrOperationFailed = errors.New("bbolt operation failed")

// Store implements kv.Store in a single bbolt bucket.
type Store struct {
	db     *bbolt.DB
	bucket []byte
}

var _ kv.Store = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithBucket overrides the bucket name.
func WithBucket(name string) Option {
	return func(s *Store) {
		if name != "" {
			s.bucket = []byte(name)
		}
	}
}

// New returns a Store using db and creates its bucket.
func New(db *bbolt.DB, opts ...Option) (*Store, error) {
	s := &Store{db: db, bucket: []byte(DefaultBucket)}
	for _, opt := range opts {
		opt(s)
	}
	err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(s.bucket)
		return err
	})
	if err != nil {
		return nil, errors.Join(ErrOperationFailed, err)
	}
	return s, nil
}

// Open opens the database file at path and returns a Store on it.
func Open(path string, options *bbolt.Options, opts ...Option) (*Store, error) {
	db, err := bbolt.Open(path, 0600, options)
	if err != nil {
		return nil, errors.Join(ErrOperationFailed, err)
	}
	s, err := New(db, opts...)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Has(_ context.Context, key string) (bool, error) {
	if err := kv.ValidateKey(key); err != nil {
		return false, err
	}
	var ok bool
	err := s.db.View(func(tx *bbolt.Tx) error {
		ok = tx.Bucket(s.bucket).Get([]byte(key)) != nil
		return nil
	})
	if err != nil {
		return false, errors.Join(ErrOperationFailed, err)
	}
	return ok, nil
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	if err := kv.ValidateKey(key); err != nil {
		return nil, err
	}
	var value []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		// Values are only valid for the life of the transaction.
		if data := tx.Bucket(s.bucket).Get([]byte(key)); data != nil {
			value = bytes.Clone(data)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Join(ErrOperationFailed, err)
	}
	return value, nil
}

func (s *Store) Set(_ context.Context, key string, value []byte) error {
	if err := kv.ValidateKey(key); err != nil {
		return err
	}
	if value == nil {
		value = []byte{}
	}
	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(s.bucket).Put([]byte(key), value)
	})
	if err != nil {
		return errors.Join(ErrOperationFailed, err)
	}
	return nil
}

func (s *Store) Delete(_ context.Context, key string) (bool, error) {
	if err := kv.ValidateKey(key); err != nil {
		return false, err
	}
	var existed bool
	err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(s.bucket)
		if b.Get([]byte(key)) == nil {
			return nil
		}
		existed = true
		return b.Delete([]byte(key))
	})
	if err != nil {
		return false, errors.Join(ErrOperationFailed, err)
	}
	return existed, nil
}
