package ratelimit

import (
	"net/http"
	"strconv"
)

// KeyFunc derives the rate limit key from a request. Returning an
// empty string exempts the request.
type KeyFunc func(r *http.Request) string

// ByClientIP keys limits on the remote address. Meant to sit behind a
// middleware that resolves the real client IP first.
func ByClientIP() KeyFunc {
	return func(r *http.Request) string {
		return r.RemoteAddr
	}
}

// Middleware rejects requests over the limit with 429 and standard
// rate limit headers.
func Middleware(bucket *Bucket, keyFunc KeyFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			result := bucket.Allow(keyFunc(r))

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(max(0, result.Remaining)))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

			if !result.Allowed() {
				if retryAfter := int(result.RetryAfter().Seconds()); retryAfter > 0 {
					w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				}
				w.Header().Set("Content-Type", "application/json; charset=utf-8")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":{"code":"rate_limited","message":"too many requests"}}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
