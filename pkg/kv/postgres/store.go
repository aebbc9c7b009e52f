package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/enteocode/mfa/pkg/kv"
)

const (
	queryHas    = `SELECT EXISTS (SELECT 1 FROM mfa_kv WHERE key = $1)`
	queryGet    = `SELECT value FROM mfa_kv WHERE key = $1`
	queryDelete = `DELETE FROM mfa_kv WHERE key = $1`
	queryUpsert = `INSERT INTO mfa_kv (key, value, updated_at) VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
)

// Querier is the part of the pgx API the store needs.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store implements kv.Store on the mfa_kv table.
type Store struct {
	db Querier
}

var _ kv.Store = (*Store)(nil)

// New wraps db as a kv.Store.
func New(db Querier) *Store {
	return &Store{db: db}
}

func (s *Store) Has(ctx context.Context, key string) (bool, error) {
	if err := kv.ValidateKey(key); err != nil {
		return false, err
	}
	var ok bool
	if err := s.db.QueryRow(ctx, queryHas, key).Scan(&ok); err != nil {
		return false, errors.Join(ErrOperationFailed, err)
	}
	return ok, nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := kv.ValidateKey(key); err != nil {
		return nil, err
	}
	var value []byte
	err := s.db.QueryRow(ctx, queryGet, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Join(ErrOperationFailed, err)
	}
	if value == nil {
		value = []byte{}
	}
	return value, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := kv.ValidateKey(key); err != nil {
		return err
	}
	if value == nil {
		value = []byte{}
	}
	if _, err := s.db.Exec(ctx, queryUpsert, key, value); err != nil {
		return errors.Join(ErrOperationFailed, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) (bool, error) {
	if err := kv.ValidateKey(key); err != nil {
		return false, err
	}
	tag, err := s.db.Exec(ctx, queryDelete, key)
	if err != nil {
		return false, errors.Join(ErrOperationFailed, err)
	}
	return tag.RowsAffected() > 0, nil
}
