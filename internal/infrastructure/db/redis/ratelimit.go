package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultLimitPrefix = "ratelimit:forgot-password"
	defaultLimit       = 5
	defaultWindow      = 15 * time.Minute
)

// FixedWindowLimiter counts hits per key in fixed windows.
// Key format: <prefix>:<key>
type FixedWindowLimiter struct {
	client *redis.Client
	prefix string
	limit  int64
	window time.Duration
}

// NewFixedWindowLimiter creates a limiter allowing limit hits per window.
func NewFixedWindowLimiter(client *redis.Client, prefix string, limit int, window time.Duration) *FixedWindowLimiter {
	if prefix == "" {
		prefix = defaultLimitPrefix
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if window <= 0 {
		window = defaultWindow
	}
	return &FixedWindowLimiter{client: client, prefix: prefix, limit: int64(limit), window: window}
}

// Allow records a hit for key and reports whether it is within the limit.
// The window starts with the first hit. INCR and EXPIRE NX run in one
// MULTI/EXEC, so a key left without a TTL regains one on its next hit.
func (l *FixedWindowLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := l.key(key)

	var incr *redis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, k)
		pipe.ExpireNX(ctx, k, l.window)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("rate limit: %w", err)
	}
	return incr.Val() <= l.limit, nil
}

func (l *FixedWindowLimiter) key(key string) string {
	return fmt.Sprintf("%s:%s", l.prefix, key)
}
