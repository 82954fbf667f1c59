// Package geo holds spherical-earth helpers used by the stop interpolator.
package geo

import (
	"math"

	"trip-planner-service/internal/domain"
)

// Mean earth radius in meters.
const EarthRadiusMeters = 6371000.0

func toRadians(deg float64) float64 { return deg * math.Pi / 180 }

func toDegrees(rad float64) float64 { return rad * 180 / math.Pi }

// Haversine returns the great-circle distance between two points in meters.
func Haversine(a, b domain.GeoPoint) float64 {
	lat1 := toRadians(a.Lat)
	lat2 := toRadians(b.Lat)
	dLat := toRadians(b.Lat - a.Lat)
	dLon := toRadians(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusMeters * c
}

// PathLength sums the haversine length of every consecutive segment.
func PathLength(route domain.Route) float64 {
	total := 0.0
	for i := 1; i < len(route); i++ {
		total += Haversine(route[i-1], route[i])
	}
	return total
}
