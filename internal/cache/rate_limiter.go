package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Counter increments a windowed counter and reports its new value
type Counter interface {
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

type redisCounter struct {
	client *redis.Client
}

// NewRedisCounter creates a Counter backed by INCR + EXPIRE
func NewRedisCounter(client *redis.Client) Counter {
	return &redisCounter{client: client}
}

func (c *redisCounter) Incr(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	var incr *redis.IntCmd
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, ttl)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

// RateLimiter decides whether a caller may send another chat message
type RateLimiter interface {
	Allow(ctx context.Context, clientKey string) (bool, error)
}

type fixedWindowLimiter struct {
	counter Counter
	limit   int64
	window  time.Duration
	now     func() time.Time
}

// NewRateLimiter allows limit calls per client in each window
func NewRateLimiter(counter Counter, limit int, window time.Duration) RateLimiter {
	return &fixedWindowLimiter{
		counter: counter,
		limit:   int64(limit),
		window:  window,
		now:     time.Now,
	}
}

func (l *fixedWindowLimiter) key(clientKey string) string {
	bucket := l.now().UnixNano() / int64(l.window)
	return fmt.Sprintf("chat:rl:%s:%d", clientKey, bucket)
}

func (l *fixedWindowLimiter) Allow(ctx context.Context, clientKey string) (bool, error) {
	n, err := l.counter.Incr(ctx, l.key(clientKey), l.window)
	if err != nil {
		return false, err
	}
	return n <= l.limit, nil
}
