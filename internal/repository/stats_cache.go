package repository

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStatsCache caches serialized aggregate reports in redis.
type RedisStatsCache struct {
	client *redis.Client
}

// NewRedisStatsCache connects a cache to the given redis address.
func NewRedisStatsCache(addr string) *RedisStatsCache {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisStatsCache{client: rdb}
}

func (c *RedisStatsCache) Get(ctx context.Context, key string) (string, bool) {
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (c *RedisStatsCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}
