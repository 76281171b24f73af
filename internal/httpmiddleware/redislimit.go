package httpmiddleware

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisFixedWindow counts requests per key in one-minute windows using
// INCR + EXPIRE. Fails open when redis is unreachable so the form keeps
// working through a redis outage.
type RedisFixedWindow struct {
	client    *redis.Client
	perMinute int64
	prefix    string
}

// NewRedisFixedWindow creates a redis-backed limiter allowing perMinute requests per key.
func NewRedisFixedWindow(client *redis.Client, perMinute int) *RedisFixedWindow {
	if perMinute <= 0 {
		perMinute = 60
	}
	return &RedisFixedWindow{
		client:    client,
		perMinute: int64(perMinute),
		prefix:    "ratelimit:",
	}
}

// Allow implements Limiter.
func (l *RedisFixedWindow) Allow(ctx context.Context, key string) bool {
	rkey := l.prefix + key
	count, err := l.client.Incr(ctx, rkey).Result()
	if err != nil {
		return true
	}
	if count == 1 {
		l.client.Expire(ctx, rkey, time.Minute)
	}
	return count <= l.perMinute
}
