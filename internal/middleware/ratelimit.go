package middleware

import (
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/machineapp/machine-backend/pkg/clientip"
)

const (
	// RateLimitWindow is the counting window for one client IP.
	RateLimitWindow = 120 * time.Second
	// RateLimitMaxRequests is the maximum number of requests allowed in the window.
	RateLimitMaxRequests = 25
	rateLimitKeyPrefix   = "ratelimit:"
)

// RateLimit enforces a per-IP request cap backed by Redis. If Redis is
// unreachable the request is allowed through (fail open).
func RateLimit(client *redis.Client) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			key := rateLimitKeyPrefix + clientip.FromRequest(r)

			count, err := client.Incr(ctx, key).Result()
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			if count == 1 {
				client.Expire(ctx, key, RateLimitWindow)
			}
			if count > RateLimitMaxRequests {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				w.Write([]byte(`{"status":false,"message":"Too many requests. Please try again later.","data":null}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
