package repositories

import (
	"encoding/json"
	"fmt"
	"time"

	"trip-planner-service/internal/domain"
)

// tripRecord is the row shape of the trips table. Points, stops and the
// schedule are stored as JSON text so the same schema works on every driver.
type tripRecord struct {
	ID            string
	Start         string
	Pickup        string
	Dropoff       string
	HoursUsed     float64
	DistanceMiles float64
	DurationHours float64
	RouteGeoJSON  string
	FuelStops     string
	Schedule      string
	CreatedAt     time.Time
}

type pointJSON struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

type stopJSON struct {
	Lon  float64 `json:"lon"`
	Lat  float64 `json:"lat"`
	Kind string  `json:"kind"`
}

type dailyLogJSON struct {
	Day          int     `json:"day"`
	DrivingHours float64 `json:"driving_hours"`
	RestHours    float64 `json:"rest_hours"`
	FuelPolicy   string  `json:"fuel_policy"`
}

type dutyDayJSON struct {
	Day          int     `json:"day"`
	DrivingHours float64 `json:"driving_hours"`
}

type scheduleJSON struct {
	Logs []dailyLogJSON `json:"logs"`
	Days []dutyDayJSON  `json:"days"`
}

func toRecord(t *domain.Trip) (tripRecord, error) {
	rec := tripRecord{
		ID:            t.ID,
		HoursUsed:     t.HoursUsed,
		DistanceMiles: t.Summary.DistanceMiles,
		DurationHours: t.Summary.DurationHours,
		RouteGeoJSON:  string(t.RouteGeoJSON),
		CreatedAt:     t.CreatedAt.UTC(),
	}
	if rec.RouteGeoJSON == "" {
		rec.RouteGeoJSON = "null"
	}

	var err error
	if rec.Start, err = encodeColumn(pointJSON(t.Start)); err != nil {
		return tripRecord{}, err
	}
	if rec.Pickup, err = encodeColumn(pointJSON(t.Pickup)); err != nil {
		return tripRecord{}, err
	}
	if rec.Dropoff, err = encodeColumn(pointJSON(t.Dropoff)); err != nil {
		return tripRecord{}, err
	}

	stops := make([]stopJSON, 0, len(t.FuelStops))
	for _, s := range t.FuelStops {
		stops = append(stops, stopJSON{Lon: s.Position.Lon, Lat: s.Position.Lat, Kind: string(s.Kind)})
	}
	if rec.FuelStops, err = encodeColumn(stops); err != nil {
		return tripRecord{}, err
	}

	sched := scheduleJSON{
		Logs: make([]dailyLogJSON, 0, len(t.Schedule.Logs)),
		Days: make([]dutyDayJSON, 0, len(t.Schedule.Days)),
	}
	for _, l := range t.Schedule.Logs {
		sched.Logs = append(sched.Logs, dailyLogJSON(l))
	}
	for _, d := range t.Schedule.Days {
		sched.Days = append(sched.Days, dutyDayJSON(d))
	}
	if rec.Schedule, err = encodeColumn(sched); err != nil {
		return tripRecord{}, err
	}

	return rec, nil
}

func (r tripRecord) toDomain() (*domain.Trip, error) {
	var start, pickup, dropoff pointJSON
	if err := decodeColumn("start_point", r.Start, &start); err != nil {
		return nil, err
	}
	if err := decodeColumn("pickup_point", r.Pickup, &pickup); err != nil {
		return nil, err
	}
	if err := decodeColumn("dropoff_point", r.Dropoff, &dropoff); err != nil {
		return nil, err
	}

	var stops []stopJSON
	if err := decodeColumn("fuel_stops", r.FuelStops, &stops); err != nil {
		return nil, err
	}

	var sched scheduleJSON
	if err := decodeColumn("schedule", r.Schedule, &sched); err != nil {
		return nil, err
	}

	trip := &domain.Trip{
		ID:           r.ID,
		Start:        domain.GeoPoint(start),
		Pickup:       domain.GeoPoint(pickup),
		Dropoff:      domain.GeoPoint(dropoff),
		HoursUsed:    r.HoursUsed,
		RouteGeoJSON: json.RawMessage(r.RouteGeoJSON),
		Summary: domain.TripSummary{
			DistanceMiles: r.DistanceMiles,
			DurationHours: r.DurationHours,
		},
		FuelStops: make([]domain.StopMarker, 0, len(stops)),
		Schedule: domain.Schedule{
			Logs: make([]domain.DailyLog, 0, len(sched.Logs)),
			Days: make([]domain.DutyDay, 0, len(sched.Days)),
		},
		CreatedAt: r.CreatedAt.UTC(),
	}

	for _, s := range stops {
		trip.FuelStops = append(trip.FuelStops, domain.StopMarker{
			Position: domain.GeoPoint{Lon: s.Lon, Lat: s.Lat},
			Kind:     domain.StopKind(s.Kind),
		})
	}
	for _, l := range sched.Logs {
		trip.Schedule.Logs = append(trip.Schedule.Logs, domain.DailyLog(l))
	}
	for _, d := range sched.Days {
		trip.Schedule.Days = append(trip.Schedule.Days, domain.DutyDay(d))
	}

	return trip, nil
}

func encodeColumn(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode column: %w", err)
	}
	return string(b), nil
}

func decodeColumn(name, text string, v any) error {
	if err := json.Unmarshal([]byte(text), v); err != nil {
		return fmt.Errorf("decode column %s: %w", name, err)
	}
	return nil
}
