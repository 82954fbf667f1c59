package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// InitSchema creates the trips and directions cache tables. The statements are
// valid for both Postgres and SQLite and are safe to run repeatedly.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createTripsQuery := `
	CREATE TABLE IF NOT EXISTS trips (
		id TEXT PRIMARY KEY,
		start_point TEXT NOT NULL,
		pickup_point TEXT NOT NULL,
		dropoff_point TEXT NOT NULL,
		hours_used DOUBLE PRECISION NOT NULL,
		distance_miles DOUBLE PRECISION NOT NULL,
		duration_hours DOUBLE PRECISION NOT NULL,
		route_geojson TEXT NOT NULL,
		fuel_stops TEXT NOT NULL,
		schedule TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	);
	`

	createTripsIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_trips_created_at
	ON trips(created_at);
	`

	createDirectionsCacheQuery := `
	CREATE TABLE IF NOT EXISTS directions_cache (
		cache_key TEXT PRIMARY KEY,
		payload TEXT NOT NULL,
		expires_at BIGINT NOT NULL
	);
	`

	statements := []string{
		createTripsQuery,
		createTripsIndexQuery,
		createDirectionsCacheQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
