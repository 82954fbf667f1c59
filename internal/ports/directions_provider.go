package ports

import (
	"context"
	"encoding/json"
	"trip-planner-service/internal/domain"
)

// Route geometry and summary returned by a directions service.
type DirectionsResult struct {
	Route           domain.Route
	DistanceMeters  float64
	DurationSeconds float64
	// Provider response as GeoJSON, handed through to clients for map rendering.
	GeoJSON json.RawMessage
}

// Contract for retrieving a driving route through an ordered list of waypoints.
type DirectionsProvider interface {
	// Return the route through waypoints in the given order.
	GetDirections(ctx context.Context, waypoints []domain.GeoPoint) (DirectionsResult, error)
}
