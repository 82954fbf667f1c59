package directions

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
)

type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	getErr  error
	putErr  error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}}
}

func (m *memoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	v, ok := m.entries[key]
	return v, ok, nil
}

func (m *memoryCache) Put(ctx context.Context, key string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.putErr != nil {
		return m.putErr
	}
	m.entries[key] = payload
	return nil
}

func sampleResult() ports.DirectionsResult {
	return ports.DirectionsResult{
		Route:           domain.Route{{Lon: -74.006, Lat: 40.7128}, {Lon: -87.6298, Lat: 41.8781}},
		DistanceMeters:  1270000,
		DurationSeconds: 45000,
		GeoJSON:         []byte(`{"type":"FeatureCollection","features":[]}`),
	}
}

func TestCachedDirectionsProviderServesHits(t *testing.T) {
	mock := NewMockDirectionsProvider(sampleResult(), nil)
	cache := newMemoryCache()
	p := NewCachedDirectionsProvider(mock, cache, "ors:driving-car")

	first, err := p.GetDirections(context.Background(), testWaypoints())
	require.NoError(t, err)
	second, err := p.GetDirections(context.Background(), testWaypoints())
	require.NoError(t, err)

	assert.Len(t, mock.Calls(), 1)
	assert.Equal(t, first.Route, second.Route)
	assert.Equal(t, first.DistanceMeters, second.DistanceMeters)
	assert.Equal(t, first.DurationSeconds, second.DurationSeconds)
	assert.JSONEq(t, string(first.GeoJSON), string(second.GeoJSON))
	assert.Contains(t, cache.entries, CacheKey("ors:driving-car", testWaypoints()))
}

func TestCachedDirectionsProviderToleratesCacheFailures(t *testing.T) {
	mock := NewMockDirectionsProvider(sampleResult(), nil)
	cache := newMemoryCache()
	cache.getErr = errors.New("connection refused")
	cache.putErr = errors.New("connection refused")

	p := NewCachedDirectionsProvider(mock, cache, "ns")
	res, err := p.GetDirections(context.Background(), testWaypoints())
	require.NoError(t, err)
	assert.Equal(t, sampleResult().Route, res.Route)
	assert.Len(t, mock.Calls(), 1)
}

func TestCachedDirectionsProviderDiscardsCorruptEntries(t *testing.T) {
	mock := NewMockDirectionsProvider(sampleResult(), nil)
	cache := newMemoryCache()
	cache.entries[CacheKey("ns", testWaypoints())] = []byte("{broken")

	p := NewCachedDirectionsProvider(mock, cache, "ns")
	_, err := p.GetDirections(context.Background(), testWaypoints())
	require.NoError(t, err)
	assert.Len(t, mock.Calls(), 1)
}

func TestCachedDirectionsProviderPropagatesProviderErrors(t *testing.T) {
	boom := errors.New("upstream down")
	cache := newMemoryCache()
	p := NewCachedDirectionsProvider(NewMockDirectionsProvider(ports.DirectionsResult{}, boom), cache, "ns")

	_, err := p.GetDirections(context.Background(), testWaypoints())
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, cache.entries)
}

func TestCacheKey(t *testing.T) {
	a := CacheKey("ns", []domain.GeoPoint{{Lon: 1.0000001, Lat: 2}, {Lon: 3, Lat: 4}})
	b := CacheKey("ns", []domain.GeoPoint{{Lon: 1.0000002, Lat: 2}, {Lon: 3, Lat: 4}})

	assert.Equal(t, a, b)
	assert.Equal(t, "directions:ns:1.000000,2.000000;3.000000,4.000000", a)
	assert.NotEqual(t, a, CacheKey("other", []domain.GeoPoint{{Lon: 1, Lat: 2}, {Lon: 3, Lat: 4}}))
}
