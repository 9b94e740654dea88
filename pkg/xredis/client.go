package xredis

import (
	"context"
	"time"

	"github.com/luckyspin-lab/backend/pkg/xcontext"
	"github.com/redis/go-redis/v9"
)

type Client interface {
	Exist(ctx context.Context, key string) (bool, error)
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

type client struct {
	redisClient *redis.Client
}

func NewClient(ctx context.Context) (*client, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:            xcontext.Configs(ctx).Redis.Addr,
		MaxRetries:      5,
		MinRetryBackoff: 8 * time.Millisecond,
		MaxRetryBackoff: 512 * time.Millisecond,
		DialTimeout:     5 * time.Second,
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    5 * time.Second,
		PoolFIFO:        false,
		PoolSize:        5,
	})

	if err := redisClient.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &client{redisClient: redisClient}, nil
}

func (c *client) Exist(ctx context.Context, key string) (bool, error) {
	n, err := c.redisClient.Exists(ctx, key).Uint64()
	if err != nil {
		return false, err
	}

	if n != 1 {
		return false, nil
	}

	return true, nil
}

// Get returns the value of key, or an empty string if the key is not set.
func (c *client) Get(ctx context.Context, key string) (string, error) {
	value, err := c.redisClient.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil
		}

		return "", err
	}

	return value, nil
}

func (c *client) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.redisClient.Set(ctx, key, value, ttl).Err()
}
