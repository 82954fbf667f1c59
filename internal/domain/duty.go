package domain

import (
	"fmt"
	"math"
)

// MetersPerMile converts provider distances to miles.
const MetersPerMile = 1609.34

const (
	// MinDailyDrivingLimitHours is the smallest daily limit a policy may set.
	MinDailyDrivingLimitHours = 1.0 / 60

	// MaxScheduleDays bounds how many duty days one schedule may span.
	MaxScheduleDays = 3650
)

// DutyPolicy holds the hours-of-service constants applied by the schedule builder.
// Rest hours and the fuel note are informational and do not shorten driving days.
type DutyPolicy struct {
	DailyDrivingLimitHours float64
	PickupHours            float64
	DropoffHours           float64
	RestHours              float64
	FuelIntervalMiles      float64
}

// DefaultDutyPolicy returns the property-carrying driver limits: 11 driving
// hours a day, one hour each for pickup and dropoff, a 10 hour rest and a fuel
// stop every 1000 miles.
func DefaultDutyPolicy() DutyPolicy {
	return DutyPolicy{
		DailyDrivingLimitHours: 11,
		PickupHours:            1,
		DropoffHours:           1,
		RestHours:              10,
		FuelIntervalMiles:      1000,
	}
}

// FuelNote is the textual fueling policy attached to every daily log.
func (p DutyPolicy) FuelNote() string {
	return fmt.Sprintf("every %g miles", p.FuelIntervalMiles)
}

// FuelIntervalMeters converts the fueling interval for the stop interpolator.
func (p DutyPolicy) FuelIntervalMeters() float64 {
	return p.FuelIntervalMiles * MetersPerMile
}

// OverheadHours is the fixed handling time added to every trip.
func (p DutyPolicy) OverheadHours() float64 {
	return p.PickupHours + p.DropoffHours
}

// Validate reports ErrInvalidPolicy when a limit is out of range or non-finite.
func (p DutyPolicy) Validate() error {
	if !positive(p.DailyDrivingLimitHours) {
		return fmt.Errorf("%w: daily driving limit must be positive, got %v", ErrInvalidPolicy, p.DailyDrivingLimitHours)
	}
	if p.DailyDrivingLimitHours < MinDailyDrivingLimitHours {
		return fmt.Errorf("%w: daily driving limit must be at least %v hours, got %v",
			ErrInvalidPolicy, MinDailyDrivingLimitHours, p.DailyDrivingLimitHours)
	}
	if !nonNegative(p.PickupHours) || !nonNegative(p.DropoffHours) {
		return fmt.Errorf("%w: pickup/dropoff hours must be non-negative", ErrInvalidPolicy)
	}
	if !nonNegative(p.RestHours) {
		return fmt.Errorf("%w: rest hours must be non-negative, got %v", ErrInvalidPolicy, p.RestHours)
	}
	if !positive(p.FuelIntervalMiles) {
		return fmt.Errorf("%w: fuel interval must be positive, got %v", ErrInvalidPolicy, p.FuelIntervalMiles)
	}
	return nil
}

// DutyDay is one calendar day's allocation of driving hours.
type DutyDay struct {
	Day          int
	DrivingHours float64
}

// Kind reports the stop type a duty day is published as.
func (DutyDay) Kind() StopKind { return StopDriving }

// DailyLog is the log entry for one duty day, matched to it by day number.
type DailyLog struct {
	Day          int
	DrivingHours float64
	RestHours    float64
	FuelPolicy   string
}

// Schedule is the outcome of duty scheduling. An empty schedule is a valid
// result (zero total hours) and is distinct from a rejected request.
type Schedule struct {
	Logs []DailyLog
	Days []DutyDay
}

// IsEmpty reports whether the schedule has no duty days.
func (s Schedule) IsEmpty() bool { return len(s.Days) == 0 }

// TotalDrivingHours sums the driving hours across all duty days.
func (s Schedule) TotalDrivingHours() float64 {
	total := 0.0
	for _, d := range s.Days {
		total += d.DrivingHours
	}
	return total
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

func nonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0)
}
