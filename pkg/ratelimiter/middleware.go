package ratelimiter

import (
	"encoding/json"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrymomot/beacon/pkg/clientip"
	"github.com/dmitrymomot/beacon/pkg/logger"
)

// KeyFunc picks the bucket a request is charged to. An empty key skips
// limiting for that request.
type KeyFunc func(r *http.Request) string

// ByClientIP charges requests to the address stored by clientip.Middleware.
func ByClientIP(r *http.Request) string {
	return clientip.GetIPFromContext(r.Context())
}

// Middleware answers 429 with Retry-After once key's bucket is empty.
// Store failures are logged and the request is let through.
func Middleware(b *Bucket, key KeyFunc, log *slog.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = logger.Discard()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			k := key(r)
			if k == "" {
				next.ServeHTTP(w, r)
				return
			}

			res, err := b.Allow(r.Context(), k)
			if err != nil {
				log.ErrorContext(r.Context(), "rate limit check failed", logger.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(max(0, res.Remaining)))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))

			if !res.Allowed() {
				retry := int(math.Ceil(res.RetryAfter(time.Now()).Seconds()))
				w.Header().Set("Retry-After", strconv.Itoa(max(retry, 1)))
				log.WarnContext(r.Context(), "rate limit exceeded", slog.String("key", k))

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "rate limit exceeded"})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
