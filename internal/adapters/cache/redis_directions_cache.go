package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	gocache "github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/redis/go-redis/v9"

	"trip-planner-service/internal/platform/obs"
)

// RedisDirectionsCache stores directions payloads in Redis with a fixed expiration.
type RedisDirectionsCache struct {
	cache *gocache.Cache[string]
}

func NewRedisDirectionsCache(client *redis.Client, ttl time.Duration) *RedisDirectionsCache {
	var opts []store.Option
	if ttl > 0 {
		opts = append(opts, store.WithExpiration(ttl))
	}

	redisStore := redisstore.NewRedis(client, opts...)
	return &RedisDirectionsCache{cache: gocache.New[string](redisStore)}
}

func (r *RedisDirectionsCache) Get(ctx context.Context, key string) (_ []byte, _ bool, err error) {
	defer obs.Time(ctx, "directions.cache.redis.Get")(&err)

	// Misses surface as store.NotFound wrapping redis.Nil.
	value, err := r.cache.Get(ctx, key)
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get directions cache key=%q: %w", key, err)
	}

	return []byte(value), true, nil
}

func (r *RedisDirectionsCache) Put(ctx context.Context, key string, payload []byte) (err error) {
	defer obs.Time(ctx, "directions.cache.redis.Put")(&err)

	if err := r.cache.Set(ctx, key, string(payload)); err != nil {
		return fmt.Errorf("set directions cache key=%q: %w", key, err)
	}
	return nil
}
