package utils

import (
	"context"
	"errors"
	"time"

	"habit-tracker-backend/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ListingCache sits in front of expensive list queries. Implementations
// fail open: a miss or a broken backend just means the caller goes back
// to the database.
type ListingCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}

// RedisListingCache stores serialized responses in Redis with a TTL.
type RedisListingCache struct {
	client *redis.Client
}

func NewRedisListingCache(client *redis.Client) *RedisListingCache {
	return &RedisListingCache{client: client}
}

func (c *RedisListingCache) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			config.Logger.Warn("Cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	return data, true
}

func (c *RedisListingCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		config.Logger.Warn("Cache write failed", zap.String("key", key), zap.Error(err))
	}
}
