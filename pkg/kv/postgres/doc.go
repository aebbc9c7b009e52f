// Package postgres provides a kv.Store backed by a PostgreSQL table through
// a pgx connection pool.
//
// # Schema
//
// The table is created by an embedded goose migration applied with Migrate:
//
//	CREATE TABLE mfa_kv (
//	    key        TEXT PRIMARY KEY,
//	    value      BYTEA NOT NULL,
//	    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
//
// # Usage
//
//	pool, err := postgres.Connect(ctx, cfg)
//	if err != nil {
//		// handle error
//	}
//	if err := postgres.Migrate(ctx, pool, cfg, log); err != nil {
//		// handle error
//	}
//	store := postgres.New(pool)
//
// Store only depends on the Querier interface, which *pgxpool.Pool, *pgx.Conn
// and pgx.Tx all satisfy.
package postgres
