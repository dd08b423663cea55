package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRateLimiter is a sliding-window rate limiter backed by Redis.
type RedisRateLimiter struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisRateLimiter(rdb *redis.Client) *RedisRateLimiter {
	return &RedisRateLimiter{
		rdb:    rdb,
		prefix: "rl:kosbff:",
	}
}

// RateLimitConfig configures the limit for one scope.
type RateLimitConfig struct {
	Limit  int
	Window time.Duration
	KeyFn  func(r *http.Request) string
}

// Middleware enforces the configured limit. Without Redis, or when Redis
// errors, requests pass through.
func (l *RedisRateLimiter) Middleware(cfg RateLimitConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if l.rdb == nil {
				next.ServeHTTP(w, r)
				return
			}

			key := l.prefix + cfg.KeyFn(r)
			ctx := r.Context()

			allowed, err := l.isAllowed(ctx, key, cfg.Limit, cfg.Window)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			if !allowed {
				w.Header().Set("Retry-After", "60")
				http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (l *RedisRateLimiter) isAllowed(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	now := time.Now().UnixMilli()
	windowStart := now - window.Milliseconds()

	// Atomic sliding window: prune entries outside the window, count, and
	// only record the new hit when under the limit.
	script := redis.NewScript(`
		local key = KEYS[1]
		local now = tonumber(ARGV[1])
		local window_start = tonumber(ARGV[2])
		local limit = tonumber(ARGV[3])
		local ttl = tonumber(ARGV[4])

		redis.call('ZREMRANGEBYSCORE', key, '-inf', window_start)

		local count = redis.call('ZCARD', key)

		if count < limit then
			redis.call('ZADD', key, now, now .. '-' .. math.random())
			redis.call('PEXPIRE', key, ttl)
			return 1
		end

		return 0
	`)

	result, err := script.Run(ctx, l.rdb, []string{key}, now, windowStart, limit, int(window.Milliseconds())).Int()
	if err != nil {
		return false, err
	}

	return result == 1, nil
}

// KeyByIP keys the limit on the client address.
func KeyByIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return "ip:" + xff
	}
	return "ip:" + r.RemoteAddr
}

// KeyByUser keys the limit on the signed-in user, falling back to IP.
func KeyByUser(r *http.Request) string {
	if userID := GetUserID(r.Context()); userID != 0 {
		return "user:" + strconv.Itoa(userID)
	}
	return KeyByIP(r)
}
