package ports

import (
	"context"
	"trip-planner-service/internal/domain"
)

// Port: a boundary for storing and retrieving planned trips.
type TripRepository interface {
	SaveTrip(ctx context.Context, trip *domain.Trip) error
	// Return domain.ErrTripNotFound when no trip has the given id.
	GetTrip(ctx context.Context, id string) (*domain.Trip, error)
	// Return the most recently created trips first.
	ListTrips(ctx context.Context, limit int) ([]*domain.Trip, error)
}
