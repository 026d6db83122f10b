package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores computed calendars
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// NoCache never stores anything
type NoCache struct{}

func (NoCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, nil
}

func (NoCache) Set(context.Context, string, []byte, time.Duration) error {
	return nil
}

// RedisCache stores calendars in Redis under keys prefixed with "calendar:"
type RedisCache struct {
	client *redis.Client
}

// NewRedisClient connects to the Redis server at addr and checks it is reachable
func NewRedisClient(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("error pinging redis at %s: %w", addr, err)
	}
	return client, nil
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := c.client.Get(ctx, "calendar:"+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, "calendar:"+key, value, ttl).Err()
}
