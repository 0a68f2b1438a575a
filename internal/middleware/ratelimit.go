package middleware

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync/atomic"
	"techbot/internal/infra/logger"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// RateLimiter enforces a sliding-window quota per identity, backed by a
// Redis sorted set so the quota holds across replicas. It fails open: a
// limiter outage must never take chat down.
type RateLimiter struct {
	Logger *logger.Logger
	Redis  *redis.Client
	Window time.Duration
	Quota  int

	seq atomic.Int64
}

func NewRateLimiter(log *logger.Logger, rdb *redis.Client, window time.Duration, quota int) *RateLimiter {
	return &RateLimiter{Logger: log, Redis: rdb, Window: window, Quota: quota}
}

// Allow records one request for identity and reports whether it is still
// inside the quota for the current window.
func (rl *RateLimiter) Allow(r *http.Request, identity string) bool {
	ctx := r.Context()
	key := "ratelimit:" + identity
	now := time.Now()
	windowStart := now.Add(-rl.Window)

	// Member must be unique per request; the nanosecond clock alone can
	// collide under concurrency.
	member := fmt.Sprintf("%d:%d", now.UnixNano(), rl.seq.Add(1))

	pipe := rl.Redis.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart.UnixNano(), 10))
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now.UnixNano()), Member: member})
	count := pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, rl.Window)

	if _, err := pipe.Exec(ctx); err != nil {
		rl.Logger.Warn("Rate limiter unavailable, allowing request", logger.WithError(err, logrus.Fields{"identity": identity}))
		return true
	}

	return count.Val() <= int64(rl.Quota)
}

// Middleware rejects over-quota requests before any pipeline work runs.
func (rl *RateLimiter) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.Allow(r, clientIdentity(r)) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(map[string]string{"error": "Too many requests"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIdentity(r *http.Request) string {
	if userID := r.Header.Get("X-User-Id"); userID != "" {
		return userID
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
