package guard

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisClient is the subset of *redis.Client the guard needs.
type RedisClient interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Redis keeps guards as keys with a TTL equal to the window.
type Redis struct {
	client RedisClient
	prefix string
	window time.Duration
}

// NewRedis returns a Redis guard. window <= 0 uses DefaultWindow.
func NewRedis(client RedisClient, window time.Duration) *Redis {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Redis{client: client, prefix: "order-guard:", window: window}
}

func (r *Redis) Claim(ctx context.Context, key, orderID string) (bool, error) {
	ok, err := r.client.SetNX(ctx, r.prefix+key, orderID, r.window).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx: %w", err)
	}
	return ok, nil
}

func (r *Redis) Release(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
