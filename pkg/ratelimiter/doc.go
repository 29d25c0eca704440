// Package ratelimiter throttles fingerprint submissions per client.
//
// A Bucket is a token bucket: Capacity tokens at most, RefillRate tokens
// added every RefillInterval. Denied requests do not consume tokens.
// MemoryStore holds the buckets of one collector process.
//
//	store := ratelimiter.NewMemoryStore()
//	defer store.Close()
//	bucket, err := ratelimiter.NewBucket(store, cfg)
//	if err != nil {
//	    return err
//	}
//	r.Use(ratelimiter.Middleware(bucket, ratelimiter.ByClientIP, log))
//
// Middleware sets X-RateLimit-Limit, X-RateLimit-Remaining and
// X-RateLimit-Reset on every checked response, and Retry-After on 429.
package ratelimiter
