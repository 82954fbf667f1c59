package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/db"
	"trip-planner-service/internal/platform/obs"
)

// SQL-backed implementation of the TripRepository port.
// Driver selects the placeholder style (db.DriverPostgres or db.DriverSQLite).
type SQLTripRepository struct {
	DB     *sql.DB
	Driver string
}

func NewSQLTripRepository(conn *sql.DB, driver string) *SQLTripRepository {
	return &SQLTripRepository{DB: conn, Driver: driver}
}

const tripColumns = `
		id,
		start_point,
		pickup_point,
		dropoff_point,
		hours_used,
		distance_miles,
		duration_hours,
		route_geojson,
		fuel_stops,
		schedule,
		created_at`

// Persist a newly planned trip. Trips are immutable, so saving an existing id fails.
func (s *SQLTripRepository) SaveTrip(ctx context.Context, trip *domain.Trip) (err error) {
	defer obs.Time(ctx, "trips.SaveTrip")(&err)

	if s.DB == nil {
		return errors.New("sql trip repository: DB is nil")
	}
	if trip == nil || trip.ID == "" {
		return errors.New("save trip: trip id must not be empty")
	}

	rec, err := toRecord(trip)
	if err != nil {
		return fmt.Errorf("save trip %s: %w", trip.ID, err)
	}

	query := db.Rebind(s.Driver, `
	INSERT INTO trips (`+tripColumns+`
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`)

	_, err = s.DB.ExecContext(ctx, query,
		rec.ID,
		rec.Start,
		rec.Pickup,
		rec.Dropoff,
		rec.HoursUsed,
		rec.DistanceMiles,
		rec.DurationHours,
		rec.RouteGeoJSON,
		rec.FuelStops,
		rec.Schedule,
		rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save trip %s: insert: %w", trip.ID, err)
	}

	return nil
}

// Return the trip with the given id, or domain.ErrTripNotFound.
func (s *SQLTripRepository) GetTrip(ctx context.Context, id string) (_ *domain.Trip, err error) {
	defer obs.Time(ctx, "trips.GetTrip")(&err)

	if s.DB == nil {
		return nil, errors.New("sql trip repository: DB is nil")
	}

	query := db.Rebind(s.Driver, `
	SELECT`+tripColumns+`
	FROM trips
	WHERE id = ?;
	`)

	trip, err := scanTrip(s.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get trip %s: %w", id, domain.ErrTripNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get trip %s: %w", id, err)
	}

	return trip, nil
}

// Return up to limit trips, newest first.
func (s *SQLTripRepository) ListTrips(ctx context.Context, limit int) (_ []*domain.Trip, err error) {
	defer obs.Time(ctx, "trips.ListTrips")(&err)

	if s.DB == nil {
		return nil, errors.New("sql trip repository: DB is nil")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("list trips: limit must be positive, got %d", limit)
	}

	query := db.Rebind(s.Driver, `
	SELECT`+tripColumns+`
	FROM trips
	ORDER BY created_at DESC, id DESC
	LIMIT ?;
	`)

	rows, err := s.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list trips: query trips table: %w", err)
	}
	defer rows.Close()

	trips := make([]*domain.Trip, 0, limit)
	for rows.Next() {
		trip, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("list trips: %w", err)
		}
		trips = append(trips, trip)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list trips: row iteration: %w", err)
	}

	return trips, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrip(row rowScanner) (*domain.Trip, error) {
	var rec tripRecord
	err := row.Scan(
		&rec.ID,
		&rec.Start,
		&rec.Pickup,
		&rec.Dropoff,
		&rec.HoursUsed,
		&rec.DistanceMiles,
		&rec.DurationHours,
		&rec.RouteGeoJSON,
		&rec.FuelStops,
		&rec.Schedule,
		&rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	trip, err := rec.toDomain()
	if err != nil {
		return nil, fmt.Errorf("decode trip %s: %w", rec.ID, err)
	}
	return trip, nil
}
