// Package kv defines the key-value contract the MFA secret store persists
// through, together with a set of backends.
//
// The contract is deliberately small: the store only ever needs to check,
// read, write and delete opaque byte payloads under opaque string keys.
// Payloads arriving here are already serialized and encrypted.
//
// # Semantics
//
//   - Get returns (nil, nil) when the key is missing.
//   - Set overwrites any existing value.
//   - Delete reports whether the key existed before the call.
//   - Empty keys are rejected with ErrEmptyKey.
//
// # Backends
//
//	kv/memory    in-process map, for tests and single-instance deployments
//	kv/redis     Redis via go-redis
//	kv/bbolt     embedded file database via bbolt
//	kv/mongo     MongoDB collection via mongo-driver
//	kv/postgres  PostgreSQL table via pgx, schema applied with goose
//	kv/mysql     MySQL table via database/sql and go-sql-driver/mysql
//	kv/s3        S3-compatible object storage via aws-sdk-go-v2
//
// Every backend is checked against the shared conformance suite in kv/kvtest.
package kv
