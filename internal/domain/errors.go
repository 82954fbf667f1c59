package domain

import "errors"

var (
	ErrInvalidPoint     = errors.New("invalid geographic point")
	ErrInvalidRoute     = errors.New("route must contain at least 2 points")
	ErrInvalidInterval  = errors.New("interval distance must be a positive finite number")
	ErrInvalidDuration  = errors.New("duration must be a non-negative finite number")
	ErrInvalidHoursUsed = errors.New("hours used must be a non-negative finite number")
	ErrInvalidPolicy    = errors.New("invalid duty policy")
	ErrTripNotFound     = errors.New("trip not found")

	ErrDirectionsUnavailable = errors.New("directions service unavailable")
)
