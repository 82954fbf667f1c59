package services

import (
	"iter"
	"math"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/geo"
)

// Interpolate yields a fueling stop every intervalMeters of haversine distance
// along route.
//
// The distance since the last stop carries across segment boundaries. Within a
// segment, each stop is placed by strategy at the fraction of the remaining
// segment needed to close the gap to one full interval, and becomes the anchor
// for the next crossing. A nil strategy means geo.Linear.
//
// Routes with fewer than two points, and intervals that are not positive and
// finite, yield nothing. The sequence is deterministic and may be iterated
// more than once.
func Interpolate(route domain.Route, intervalMeters float64, strategy geo.Interpolation) iter.Seq[domain.StopMarker] {
	if strategy == nil {
		strategy = geo.Linear
	}

	return func(yield func(domain.StopMarker) bool) {
		if len(route) < 2 || !(intervalMeters > 0) || math.IsInf(intervalMeters, 0) {
			return
		}

		sinceLast := 0.0
		anchor := route[0]

		for _, next := range route[1:] {
			remaining := geo.Haversine(anchor, next)

			for sinceLast+remaining >= intervalMeters {
				needed := intervalMeters - sinceLast
				stop := strategy(anchor, next, needed/remaining)

				if !yield(domain.StopMarker{Position: stop, Kind: domain.StopFueling}) {
					return
				}

				sinceLast = 0
				anchor = stop
				remaining -= needed
			}

			sinceLast += remaining
			anchor = next
		}
	}
}

// FuelStops collects Interpolate, rejecting inputs for which no path exists
// instead of returning an empty result.
func FuelStops(route domain.Route, intervalMeters float64, strategy geo.Interpolation) ([]domain.StopMarker, error) {
	if len(route) < 2 {
		return nil, domain.ErrInvalidRoute
	}
	if !(intervalMeters > 0) || math.IsInf(intervalMeters, 0) {
		return nil, domain.ErrInvalidInterval
	}

	stops := []domain.StopMarker{}
	for s := range Interpolate(route, intervalMeters, strategy) {
		stops = append(stops, s)
	}
	return stops, nil
}
