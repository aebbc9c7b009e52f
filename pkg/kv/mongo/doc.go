// Package mongo provides a kv.Store backed by a MongoDB collection, plus the
// client helpers to connect with retry and to probe connectivity.
//
// Each key is a document of the form {_id: <key>, value: <binary>}; writes
// are upserts, so Set never fails on an existing key.
//
//	client, err := mongo.Connect(ctx, cfg)
//	if err != nil {
//		// handle error
//	}
//	store := mongo.New(client.Database("app").Collection("mfa"))
package mongo
