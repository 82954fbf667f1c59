package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/geo"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/ports"
)

type PlanTripRequest struct {
	Start     domain.GeoPoint
	Pickup    domain.GeoPoint
	Dropoff   domain.GeoPoint
	HoursUsed float64
}

// PlanOptions tunes PlanTrip. Zero values fall back to the default duty policy,
// linear interpolation, time.Now and random UUIDs.
type PlanOptions struct {
	Policy        domain.DutyPolicy
	Interpolation geo.Interpolation
	Now           func() time.Time
	NewID         func() string
}

func (o PlanOptions) withDefaults() PlanOptions {
	if o.Policy == (domain.DutyPolicy{}) {
		o.Policy = domain.DefaultDutyPolicy()
	}
	if o.Interpolation == nil {
		o.Interpolation = geo.Linear
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.NewID == nil {
		o.NewID = uuid.NewString
	}
	return o
}

// PlanTrip routes start -> pickup -> dropoff, places fueling stops along the
// route, builds the duty schedule and persists the result.
//
// A nil repo skips persistence. Provider failures are reported as
// domain.ErrDirectionsUnavailable; invalid input keeps its domain sentinel.
func PlanTrip(
	ctx context.Context,
	req PlanTripRequest,
	provider ports.DirectionsProvider,
	repo ports.TripRepository,
	opts PlanOptions,
) (_ *domain.Trip, err error) {
	defer obs.Time(ctx, "services.PlanTrip")(&err)

	if provider == nil {
		return nil, errors.New("plan trip: directions provider is nil")
	}

	opts = opts.withDefaults()
	if err := opts.Policy.Validate(); err != nil {
		return nil, fmt.Errorf("plan trip: policy: %w", err)
	}

	waypoints := []domain.GeoPoint{req.Start, req.Pickup, req.Dropoff}
	for i, name := range []string{"start", "pickup", "dropoff"} {
		if err := waypoints[i].Validate(); err != nil {
			return nil, fmt.Errorf("plan trip: %s: %w", name, err)
		}
	}
	if !(req.HoursUsed >= 0) || math.IsInf(req.HoursUsed, 0) {
		return nil, fmt.Errorf("plan trip: %w: got %v", domain.ErrInvalidHoursUsed, req.HoursUsed)
	}

	directions, err := provider.GetDirections(ctx, waypoints)
	if err != nil {
		return nil, fmt.Errorf("plan trip: directions: %w: %w", domain.ErrDirectionsUnavailable, err)
	}

	summary := domain.TripSummary{
		DistanceMiles: directions.DistanceMeters / domain.MetersPerMile,
		DurationHours: directions.DurationSeconds / 3600,
	}

	fuelStops, err := FuelStops(directions.Route, opts.Policy.FuelIntervalMeters(), opts.Interpolation)
	if errors.Is(err, domain.ErrInvalidRoute) {
		log.Warn().
			Str("req_id", obs.RequestID(ctx)).
			Int("points", len(directions.Route)).
			Msg("directions route too short for fuel stops")
		fuelStops = []domain.StopMarker{}
	} else if err != nil {
		return nil, fmt.Errorf("plan trip: fuel stops: %w", err)
	}

	schedule, err := PlanSchedule(opts.Policy, ScheduleInput{
		DistanceMiles: summary.DistanceMiles,
		DurationHours: summary.DurationHours,
		HoursUsed:     req.HoursUsed,
	})
	if err != nil {
		return nil, fmt.Errorf("plan trip: schedule: %w", err)
	}

	trip := &domain.Trip{
		ID:           opts.NewID(),
		Start:        req.Start,
		Pickup:       req.Pickup,
		Dropoff:      req.Dropoff,
		HoursUsed:    req.HoursUsed,
		RouteGeoJSON: directions.GeoJSON,
		Summary:      summary,
		FuelStops:    fuelStops,
		Schedule:     schedule,
		CreatedAt:    opts.Now().UTC(),
	}

	if repo != nil {
		if err := repo.SaveTrip(ctx, trip); err != nil {
			return nil, fmt.Errorf("plan trip: save: %w", err)
		}
	}

	return trip, nil
}
