// Package throttle limits how often a key may attempt an operation, using a
// token bucket per key.
//
// The mfa package uses it to slow down brute-force guessing of one-time
// tokens: every verification attempt of a user consumes a token, a
// successful verification refills the bucket.
//
//	store := throttle.NewMemoryStore()
//	defer store.Close()
//
//	limiter, err := throttle.NewBucket(store, throttle.Config{
//		Capacity:       5,           // attempts allowed in a burst
//		RefillRate:     5,           // attempts given back per interval
//		RefillInterval: time.Minute, // refill frequency
//	})
//	if err != nil {
//		return err
//	}
//
//	res, err := limiter.Allow(ctx, "verify:"+user)
//	if err != nil {
//		return err
//	}
//	if !res.Allowed() {
//		// too many attempts, retry after res.RetryAfter()
//	}
//
// MemoryStore keeps buckets in process and drops the ones idle for longer
// than an hour. Implement Store to share buckets between instances.
package throttle
