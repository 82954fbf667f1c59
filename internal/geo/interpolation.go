package geo

import (
	"fmt"
	"math"
	"strings"

	"trip-planner-service/internal/domain"
)

// Interpolation places a point at the given fraction (0..1) of the way from a to b.
type Interpolation func(a, b domain.GeoPoint, fraction float64) domain.GeoPoint

// Linear interpolates longitude and latitude independently in coordinate space.
//
// Segment lengths are measured along the great circle, so the placed point is
// not geodesically exact. The error is negligible for short segments and grows
// near the poles and across wide longitude spans.
func Linear(a, b domain.GeoPoint, fraction float64) domain.GeoPoint {
	return domain.GeoPoint{
		Lon: lerp(a.Lon, b.Lon, fraction),
		Lat: lerp(a.Lat, b.Lat, fraction),
	}
}

// GreatCircle returns the intermediate point on the great circle through a and b.
func GreatCircle(a, b domain.GeoPoint, fraction float64) domain.GeoPoint {
	lat1, lon1 := toRadians(a.Lat), toRadians(a.Lon)
	lat2, lon2 := toRadians(b.Lat), toRadians(b.Lon)

	delta := Haversine(a, b) / EarthRadiusMeters
	if delta == 0 {
		return a
	}

	sinDelta := math.Sin(delta)
	ka := math.Sin((1-fraction)*delta) / sinDelta
	kb := math.Sin(fraction*delta) / sinDelta

	x := ka*math.Cos(lat1)*math.Cos(lon1) + kb*math.Cos(lat2)*math.Cos(lon2)
	y := ka*math.Cos(lat1)*math.Sin(lon1) + kb*math.Cos(lat2)*math.Sin(lon2)
	z := ka*math.Sin(lat1) + kb*math.Sin(lat2)

	return domain.GeoPoint{
		Lon: toDegrees(math.Atan2(y, x)),
		Lat: toDegrees(math.Atan2(z, math.Sqrt(x*x+y*y))),
	}
}

// ParseInterpolation resolves a configured strategy name.
func ParseInterpolation(name string) (Interpolation, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "linear":
		return Linear, nil
	case "great_circle", "greatcircle", "geodesic":
		return GreatCircle, nil
	default:
		return nil, fmt.Errorf("unknown interpolation strategy %q", name)
	}
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}
