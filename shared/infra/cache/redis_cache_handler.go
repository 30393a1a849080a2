package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisCacheHandler struct {
	redis *redis.Client
}

func NewRedisCacheHandler(redis *redis.Client) CacheHandler {
	return &RedisCacheHandler{redis: redis}
}

func (r *RedisCacheHandler) Get(key string) (string, error) {
	val, err := r.redis.Get(context.Background(), key).Result()
	if err != nil {
		return "", err
	}
	return val, nil
}

func (r *RedisCacheHandler) Set(key string, value string, ttl time.Duration) error {
	return r.redis.Set(context.Background(), key, value, ttl).Err()
}

func (r *RedisCacheHandler) Delete(key string) error {
	return r.redis.Del(context.Background(), key).Err()
}
