package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	// RateLimitWindow is 120 seconds
	RateLimitWindow = 120 * time.Second
	// RateLimitMaxRequests is the maximum number of requests allowed in the window
	RateLimitMaxRequests = 25
	// RateLimitKeyPrefix is the Redis key prefix for rate limiting
	RateLimitKeyPrefix = "ratelimit:"
	// BlockedIPKeyPrefix is the Redis key prefix for blocked IPs
	BlockedIPKeyPrefix = "blocked_ip:"
	// BlockedIPDuration is how long an IP stays blocked (24 hours)
	BlockedIPDuration = 24 * time.Hour
)

// RedisRateLimiter is a fixed-window counter per IP. An IP exceeding the
// window limit is blocked for BlockedIPDuration.
type RedisRateLimiter struct {
	client *redis.Client
	log    *zap.Logger
	max    int
	window time.Duration
	block  time.Duration
}

func NewRedisRateLimiter(client *redis.Client, log *zap.Logger) *RedisRateLimiter {
	if log == nil {
		log = zap.NewNop()
	}
	return &RedisRateLimiter{
		client: client,
		log:    log.Named("ratelimit"),
		max:    RateLimitMaxRequests,
		window: RateLimitWindow,
		block:  BlockedIPDuration,
	}
}

// Middleware rejects blocked IPs and counts the rest. Redis errors fail open.
func (l *RedisRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		ctx := r.Context()

		blocked, err := l.IsBlocked(ctx, ip)
		if err == nil && blocked {
			reject(w, http.StatusTooManyRequests, "Your IP has been temporarily blocked due to excessive requests. Please try again later.")
			return
		}

		count, err := l.hit(ctx, ip)
		if err != nil {
			l.log.Warn("rate limit unavailable", zap.Error(err))
			next.ServeHTTP(w, r)
			return
		}

		if count > int64(l.max) {
			if err := l.client.Set(ctx, BlockedIPKeyPrefix+ip, "1", l.block).Err(); err != nil {
				l.log.Warn("block ip failed", zap.String("ip", ip), zap.Error(err))
			} else {
				l.log.Info("ip blocked", zap.String("ip", ip), zap.Int64("count", count))
			}
			w.Header().Set("Retry-After", strconv.Itoa(int(l.window.Seconds())))
			reject(w, http.StatusTooManyRequests, fmt.Sprintf("Rate limit exceeded. Your IP has been temporarily blocked. Please try again later (retry after %ds).", int(l.window.Seconds())))
			return
		}

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(l.max))
		w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(int64(l.max)-count, 10))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(l.window).Unix(), 10))
		next.ServeHTTP(w, r)
	})
}

// hit increments the window counter for ip, starting the window on the first request.
func (l *RedisRateLimiter) hit(ctx context.Context, ip string) (int64, error) {
	key := RateLimitKeyPrefix + ip
	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			return 0, err
		}
	}
	return count, nil
}

// Unblock removes ip from the blocked list.
func (l *RedisRateLimiter) Unblock(ctx context.Context, ip string) error {
	return l.client.Del(ctx, BlockedIPKeyPrefix+ip).Err()
}

// IsBlocked checks if ip is currently blocked.
func (l *RedisRateLimiter) IsBlocked(ctx context.Context, ip string) (bool, error) {
	count, err := l.client.Exists(ctx, BlockedIPKeyPrefix+ip).Result()
	return count > 0, err
}
