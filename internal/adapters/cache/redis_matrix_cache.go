package cache

import (
	"context"
	"delivery-itinerary-service/internal/domain"
	"delivery-itinerary-service/internal/platform/obs"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyNamespace = "itinerary:matrix:"

// RedisMatrixCache stores encoded matrices with a TTL.
type RedisMatrixCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewRedisMatrixCache(client redis.Cmdable, ttl time.Duration) *RedisMatrixCache {
	return &RedisMatrixCache{client: client, ttl: ttl}
}

// NewRedisClient parses a redis:// URL and verifies connectivity.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func (c *RedisMatrixCache) Get(ctx context.Context, key string) (_ domain.Matrices, _ bool, err error) {
	defer obs.Time(ctx, "matrix.redis.Get")(&err)

	b, err := c.client.Get(ctx, keyNamespace+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Matrices{}, false, nil
	}
	if err != nil {
		return domain.Matrices{}, false, fmt.Errorf("get redis matrix cache: %w", err)
	}

	m, err := decodeMatrices(b)
	if err != nil {
		return domain.Matrices{}, false, fmt.Errorf("get redis matrix cache key=%q: %w", key, err)
	}
	return m, true, nil
}

func (c *RedisMatrixCache) Put(ctx context.Context, key string, m domain.Matrices) error {
	payload, err := encodeMatrices(m)
	if err != nil {
		return fmt.Errorf("put redis matrix cache: %w", err)
	}
	if err := c.client.Set(ctx, keyNamespace+key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("put redis matrix cache key=%q: %w", key, err)
	}
	return nil
}
