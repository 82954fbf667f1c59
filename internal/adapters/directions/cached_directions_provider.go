package directions

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/paulmach/orb"
	"github.com/rs/zerolog/log"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
)

// CachedDirectionsProvider serves repeated waypoint lists from a DirectionsCache
// and falls through to the wrapped provider on a miss. Cache failures never
// fail the request.
type CachedDirectionsProvider struct {
	next      ports.DirectionsProvider
	cache     ports.DirectionsCache
	namespace string
}

type cachedDirections struct {
	Route           orb.LineString  `json:"route"`
	DistanceMeters  float64         `json:"distance_meters"`
	DurationSeconds float64         `json:"duration_seconds"`
	GeoJSON         json.RawMessage `json:"geojson"`
}

func NewCachedDirectionsProvider(next ports.DirectionsProvider, cache ports.DirectionsCache, namespace string) *CachedDirectionsProvider {
	return &CachedDirectionsProvider{next: next, cache: cache, namespace: namespace}
}

// CacheKey builds a stable key from the namespace and waypoints rounded to six
// decimal places (about 0.1 m).
func CacheKey(namespace string, waypoints []domain.GeoPoint) string {
	parts := make([]string, 0, len(waypoints))
	for _, w := range waypoints {
		parts = append(parts, fmt.Sprintf("%.6f,%.6f", w.Lon, w.Lat))
	}
	return "directions:" + namespace + ":" + strings.Join(parts, ";")
}

func (c *CachedDirectionsProvider) GetDirections(ctx context.Context, waypoints []domain.GeoPoint) (ports.DirectionsResult, error) {
	key := CacheKey(c.namespace, waypoints)

	payload, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("directions cache read failed")
	}
	if ok {
		result, err := decodeCached(payload)
		if err == nil {
			log.Debug().Str("key", key).Msg("directions cache hit")
			return result, nil
		}
		log.Warn().Err(err).Str("key", key).Msg("discarding unreadable directions cache entry")
	}

	result, err := c.next.GetDirections(ctx, waypoints)
	if err != nil {
		return ports.DirectionsResult{}, err
	}

	if encoded, err := encodeCached(result); err != nil {
		log.Warn().Err(err).Msg("directions cache encode failed")
	} else if err := c.cache.Put(ctx, key, encoded); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("directions cache write failed")
	}

	return result, nil
}

func encodeCached(r ports.DirectionsResult) ([]byte, error) {
	line := make(orb.LineString, 0, len(r.Route))
	for _, p := range r.Route {
		line = append(line, orb.Point{p.Lon, p.Lat})
	}

	return json.Marshal(cachedDirections{
		Route:           line,
		DistanceMeters:  r.DistanceMeters,
		DurationSeconds: r.DurationSeconds,
		GeoJSON:         r.GeoJSON,
	})
}

func decodeCached(payload []byte) (ports.DirectionsResult, error) {
	var c cachedDirections
	if err := json.Unmarshal(payload, &c); err != nil {
		return ports.DirectionsResult{}, fmt.Errorf("decode cached directions: %w", err)
	}

	return ports.DirectionsResult{
		Route:           toRoute(c.Route),
		DistanceMeters:  c.DistanceMeters,
		DurationSeconds: c.DurationSeconds,
		GeoJSON:         c.GeoJSON,
	}, nil
}
