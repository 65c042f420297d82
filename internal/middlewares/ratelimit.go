package middlewares

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/strategy-canvas/auth-service/internal/logger"
)

// fixedWindowScript counts requests per key inside a fixed window and
// reports the window's remaining lifetime.
var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("PTTL", KEYS[1])
return {current, ttl}
`)

// RateLimiter applies a fixed-window request limit per client IP, keyed
// by route, backed by Redis. Credential endpoints (login, password reset)
// are its intended consumers.
type RateLimiter struct {
	client redis.UniversalClient
	prefix string
	limit  int
	window time.Duration
}

// NewRateLimiter creates a limiter allowing limit requests per window.
func NewRateLimiter(client redis.UniversalClient, prefix string, limit int, window time.Duration) *RateLimiter {
	if prefix == "" {
		prefix = "rl"
	}
	return &RateLimiter{
		client: client,
		prefix: prefix,
		limit:  limit,
		window: window,
	}
}

// Allow reports whether the key may proceed, and if not, how long until
// the current window expires.
func (l *RateLimiter) Allow(r *http.Request, key string) (bool, time.Duration, error) {
	storeKey := fmt.Sprintf("%s:%s:%s", l.prefix, key, clientIP(r))

	raw, err := fixedWindowScript.Run(r.Context(), l.client, []string{storeKey}, l.window.Milliseconds()).Result()
	if err != nil {
		return false, 0, err
	}
	values, ok := raw.([]interface{})
	if !ok || len(values) != 2 {
		return false, 0, fmt.Errorf("unexpected redis script response type %T", raw)
	}

	count, ok := values[0].(int64)
	if !ok {
		return false, 0, fmt.Errorf("unexpected count type %T", values[0])
	}
	ttlMS, ok := values[1].(int64)
	if !ok {
		return false, 0, fmt.Errorf("unexpected ttl type %T", values[1])
	}
	if ttlMS <= 0 {
		ttlMS = l.window.Milliseconds()
	}

	return count <= int64(l.limit), time.Duration(ttlMS) * time.Millisecond, nil
}

// RateLimitMiddleware rejects requests over the limit with 429. A nil
// limiter disables limiting; Redis outages fail open so the auth flow
// never depends on Redis availability.
func RateLimitMiddleware(limiter *RateLimiter, key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limiter == nil {
				next.ServeHTTP(w, r)
				return
			}

			allowed, retryAfter, err := limiter.Allow(r, key)
			if err != nil {
				logger.Log.Errorw("rate limiter unavailable", "err", err)
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds()+1)))
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(map[string]string{
					"error":   "Too many requests",
					"message": "Too many requests. Please wait a moment before trying again.",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP extracts the caller address, preferring the X-Forwarded-For
// header set by a fronting proxy.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
