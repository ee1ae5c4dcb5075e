package cache

import (
	"context"
	"encoding/json"
	"errors"

	"media-gateway/domain/repository"
	"media-gateway/infrastructure/logger"

	"github.com/redis/go-redis/v9"
)

// RedisCache is the optional shared backend. Values are stored as JSON, so a
// hit decodes to generic JSON types rather than the original Go value.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to Redis and verifies the connection with a ping.
func NewRedisCache(ctx context.Context, addr, username, password string) (repository.IResponseCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Username: username,
		Password: password,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &RedisCache{client: client}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) (interface{}, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.GetLogger().WithField("error", err).WithField("key", key).Warn("Redis GET failed")
		}
		return nil, false
	}
	var value interface{}
	if err := json.Unmarshal(data, &value); err != nil {
		logger.GetLogger().WithField("error", err).WithField("key", key).Warn("Corrupt cache entry, dropping")
		c.client.Del(ctx, key)
		return nil, false
	}
	return value, true
}

func (c *RedisCache) Set(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		logger.GetLogger().WithField("error", err).WithField("key", key).Warn("Cache value not serializable")
		return
	}
	// No expiry: entries live until the bypass flag deletes them.
	if err := c.client.Set(ctx, key, data, 0).Err(); err != nil {
		logger.GetLogger().WithField("error", err).WithField("key", key).Warn("Redis SET failed")
	}
}

func (c *RedisCache) Delete(ctx context.Context, key string) {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		logger.GetLogger().WithField("error", err).WithField("key", key).Warn("Redis DEL failed")
	}
}
