// Package redis provides a kv.Store backed by Redis, together with the
// connection helpers needed to build one from environment configuration.
//
// # Connecting
//
// Connect parses a redis:// URL, pings the server and retries up to
// RetryAttempts times, waiting RetryInterval between attempts, all bounded by
// ConnectTimeout:
//
//	var cfg redis.Config
//	if err := env.Parse(&cfg); err != nil {
//		// handle error
//	}
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		// handle error
//	}
//	store := redis.New(client, redis.WithPrefix("app:"))
//
// Healthcheck returns a func(context.Context) error that pings the server,
// suitable for readiness endpoints.
//
// # Storage
//
// Store wraps a redis.UniversalClient. Missing keys are reported as nil
// values (redis.Nil is translated). Values never expire unless a TTL is set
// with WithTTL.
package redis
