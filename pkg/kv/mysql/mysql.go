// Package mysql provides a kv.Store backed by a MySQL table.
//
// The store works on a plain *sql.DB opened with the go-sql-driver/mysql
// driver. EnsureSchema creates the table when it does not exist.
package mysql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/enteocode/mfa/pkg/kv"
)

const (
	querySchema = "CREATE TABLE IF NOT EXISTS mfa_kv (" +
		"name VARCHAR(255) NOT NULL PRIMARY KEY, " +
		"value LONGBLOB NOT NULL, " +
		"updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP)"
	queryHas    = "SELECT EXISTS (SELECT 1 FROM mfa_kv WHERE name = ?)"
	queryGet    = "SELECT value FROM mfa_kv WHERE name = ?"
	queryUpsert = "INSERT INTO mfa_kv (name, value) VALUES (?, ?) ON DUPLICATE KEY UPDATE value = VALUES(value)"
	queryDelete = "DELETE FROM mfa_kv WHERE name = ?"
)

var (
	ErrInvalidDSN        = errors.New("invalid mysql dsn")
	ErrConnectionFailed  = errors.New("failed to connect to mysql")
	ErrOperationFailed   = errors.New("mysql operation failed")
	ErrHealthcheckFailed = errors.New("mysql healthcheck failed")
)

// Config holds database configuration settings.
type Config struct {
	DSN                string        `env:"MYSQL_DSN,required"`                      // DSN in go-sql-driver format, e.g. "user:pass@tcp(localhost:3306)/app".
	MaxOpenConnections int           `env:"MYSQL_MAX_OPEN_CONNS" envDefault:"10"`    // MaxOpenConnections caps the pool size.
	MaxIdleConnections int           `env:"MYSQL_MAX_IDLE_CONNS" envDefault:"5"`     // MaxIdleConnections caps idle connections.
	ConnMaxLifetime    time.Duration `env:"MYSQL_CONN_MAX_LIFETIME" envDefault:"5m"` // ConnMaxLifetime is the maximum amount of time a connection may be reused.
}

// Connect opens and pings a MySQL connection pool.
func Connect(ctx context.Context, cfg Config) (*sql.DB, error) {
	dsn, err := mysql.ParseDSN(cfg.DSN)
	if err != nil {
		return nil, errors.Join(ErrInvalidDSN, err)
	}
	dsn.ParseTime = true

	connector, err := mysql.NewConnector(dsn)
	if err != nil {
		return nil, errors.Join(ErrInvalidDSN, err)
	}

	db := sql.OpenDB(connector)
	db.SetMaxOpenConns(cfg.MaxOpenConnections)
	db.SetMaxIdleConns(cfg.MaxIdleConnections)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Join(ErrConnectionFailed, err)
	}

	return db, nil
}

// Healthcheck returns a closure that pings the database.
func Healthcheck(db *sql.DB) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := db.PingContext(ctx); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}

// Store implements kv.Store on the mfa_kv table.
type Store struct {
	db *sql.DB
}

var _ kv.Store = (*Store)(nil)

// New wraps db as a kv.Store.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// EnsureSchema creates the mfa_kv table if needed.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, querySchema); err != nil {
		return errors.Join(ErrOperationFailed, err)
	}
	return nil
}

func (s *Store) Has(ctx context.Context, key string) (bool, error) {
	if err := kv.ValidateKey(key); err != nil {
		return false, err
	}
	var ok bool
	if err := s.db.QueryRowContext(ctx, queryHas, key).Scan(&ok); err != nil {
		return false, errors.Join(ErrOperationFailed, err)
	}
	return ok, nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := kv.ValidateKey(key); err != nil {
		return nil, err
	}
	var value []byte
	err := s.db.QueryRowContext(ctx, queryGet, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
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
	if _, err := s.db.ExecContext(ctx, queryUpsert, key, value); err != nil {
		return errors.Join(ErrOperationFailed, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) (bool, error) {
	if err := kv.ValidateKey(key); err != nil {
		return false, err
	}
	res, err := s.db.ExecContext(ctx, queryDelete, key)
	if err != nil {
		return false, errors.Join(ErrOperationFailed, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, errors.Join(ErrOperationFailed, err)
	}
	return n > 0, nil
}

// IsDuplicateKeyError detects MySQL unique constraint violations (error 1062).
func IsDuplicateKeyError(err error) bool {
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == 1062
}
