package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisCache(t *testing.T, ttl time.Duration) (*RedisDirectionsCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisDirectionsCache(client, ttl), mr
}

func TestRedisDirectionsCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, mr := newRedisCache(t, 30*time.Minute)

	_, ok, err := c.Get(ctx, "directions:ors:1,2;3,4")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Put(ctx, "directions:ors:1,2;3,4", []byte(`{"distance_meters":1200}`)))

	got, ok, err := c.Get(ctx, "directions:ors:1,2;3,4")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"distance_meters":1200}`, string(got))
	assert.Equal(t, 30*time.Minute, mr.TTL("directions:ors:1,2;3,4"))
}

func TestRedisDirectionsCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, mr := newRedisCache(t, time.Minute)

	require.NoError(t, c.Put(ctx, "k", []byte("v")))
	mr.FastForward(2 * time.Minute)

	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisDirectionsCacheReportsConnectionErrors(t *testing.T) {
	c, mr := newRedisCache(t, time.Minute)
	mr.Close()

	_, ok, err := c.Get(context.Background(), "k")
	assert.Error(t, err)
	assert.False(t, ok)
	assert.Error(t, c.Put(context.Background(), "k", []byte("v")))
}
