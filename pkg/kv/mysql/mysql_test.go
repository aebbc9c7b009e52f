package mysql_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	drv "github.com/go-sql-driver/mysql"

	"github.com/enteocode/mfa/pkg/kv"
	"github.com/enteocode/mfa/pkg/kv/mysql"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*mysql.Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return mysql.New(db), mock
}

func TestHas(t *testing.T) {
	t.Parallel()
	store, mock := newStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS (SELECT 1 FROM mfa_kv WHERE name = ?)")).
		WithArgs("k").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := store.Has(context.Background(), "k")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestGet(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		t.Parallel()
		store, mock := newStore(t)
		mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM mfa_kv WHERE name = ?")).
			WithArgs("k").
			WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte("payload")))

		value, err := store.Get(context.Background(), "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("payload"), value)
	})

	t.Run("missing", func(t *testing.T) {
		t.Parallel()
		store, mock := newStore(t)
		mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM mfa_kv WHERE name = ?")).
			WithArgs("k").
			WillReturnRows(sqlmock.NewRows([]string{"value"}))

		value, err := store.Get(context.Background(), "k")
		require.NoError(t, err)
		assert.Nil(t, value)
	})

	t.Run("failure", func(t *testing.T) {
		t.Parallel()
		store, mock := newStore(t)
		mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM mfa_kv WHERE name = ?")).
			WithArgs("k").
			WillReturnError(errors.New("bad connection"))

		_, err := store.Get(context.Background(), "k")
		assert.ErrorIs(t, err, mysql.ErrOperationFailed)
	})
}

func TestSet(t *testing.T) {
	t.Parallel()
	store, mock := newStore(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO mfa_kv (name, value) VALUES (?, ?) ON DUPLICATE KEY UPDATE value = VALUES(value)")).
		WithArgs("k", []byte("v")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.Set(context.Background(), "k", []byte("v")))
}

func TestDelete(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		affected int64
		want     bool
	}{
		{name: "existing key", affected: 1, want: true},
		{name: "missing key", affected: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			store, mock := newStore(t)
			mock.ExpectExec(regexp.QuoteMeta("DELETE FROM mfa_kv WHERE name = ?")).
				WithArgs("k").
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			existed, err := store.Delete(context.Background(), "k")
			require.NoError(t, err)
			assert.Equal(t, tt.want, existed)
		})
	}
}

func TestEnsureSchema(t *testing.T) {
	t.Parallel()
	store, mock := newStore(t)
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS mfa_kv").WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, store.EnsureSchema(context.Background()))
}

func TestEmptyKey(t *testing.T) {
	t.Parallel()
	store, _ := newStore(t)

	_, err := store.Get(context.Background(), "")
	assert.ErrorIs(t, err, kv.ErrEmptyKey)
}

func TestConnectInvalidDSN(t *testing.T) {
	t.Parallel()
	_, err := mysql.Connect(context.Background(), mysql.Config{DSN: "tcp(:::"})
	assert.ErrorIs(t, err, mysql.ErrInvalidDSN)
}

func TestIsDuplicateKeyError(t *testing.T) {
	t.Parallel()
	assert.True(t, mysql.IsDuplicateKeyError(&drv.MySQLError{Number: 1062}))
	assert.False(t, mysql.IsDuplicateKeyError(&drv.MySQLError{Number: 1146}))
	assert.False(t, mysql.IsDuplicateKeyError(errors.New("other")))
}
