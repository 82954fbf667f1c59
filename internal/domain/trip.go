package domain

import (
	"encoding/json"
	"time"
)

// TripSummary is the distance and duration reported by the directions provider.
type TripSummary struct {
	DistanceMiles float64
	DurationHours float64
}

// Trip is the persisted result of planning a single start -> pickup -> dropoff trip.
// It is computed fresh per request and never mutated after creation.
type Trip struct {
	ID           string
	Start        GeoPoint
	Pickup       GeoPoint
	Dropoff      GeoPoint
	HoursUsed    float64
	RouteGeoJSON json.RawMessage
	Summary      TripSummary
	FuelStops    []StopMarker
	Schedule     Schedule
	CreatedAt    time.Time
}
