package services

import (
	"fmt"
	"math"

	"trip-planner-service/internal/domain"
)

// ScheduleInput is the trip summary handed to the duty scheduler.
type ScheduleInput struct {
	DistanceMiles float64
	DurationHours float64
	HoursUsed     float64
}

// BuildSchedule splits the trip's total on-duty time into consecutive days of
// at most policy.DailyDrivingLimitHours; only the final day may be shorter.
//
// Total time is the driving duration plus fixed pickup and dropoff overhead.
// distanceMiles and hoursUsed are accepted but do not change the allocation
// yet. A non-positive or non-finite total produces no days, and so does a
// total that would span more than domain.MaxScheduleDays.
func BuildSchedule(
	policy domain.DutyPolicy,
	distanceMiles float64,
	durationHours float64,
	hoursUsed float64,
) ([]domain.DailyLog, []domain.DutyDay) {
	logs := []domain.DailyLog{}
	days := []domain.DutyDay{}

	limit := policy.DailyDrivingLimitHours
	total := durationHours + policy.OverheadHours()
	if !(limit > 0) || math.IsInf(total, 0) || math.IsNaN(total) {
		return logs, days
	}

	n := math.Ceil(total / limit)
	if n > domain.MaxScheduleDays {
		return logs, days
	}

	fuelNote := policy.FuelNote()
	hoursLeft := total

	// n+1 absorbs a rounding remainder left after the last full day.
	for day := 1; day <= int(n)+1 && hoursLeft > 0; day++ {
		drive := math.Min(limit, hoursLeft)
		if hoursLeft-drive == hoursLeft {
			break
		}

		days = append(days, domain.DutyDay{Day: day, DrivingHours: drive})
		logs = append(logs, domain.DailyLog{
			Day:          day,
			DrivingHours: drive,
			RestHours:    policy.RestHours,
			FuelPolicy:   fuelNote,
		})

		hoursLeft -= drive
	}

	return logs, days
}

// PlanSchedule validates its input before building the schedule, so callers
// can tell a rejected request apart from a valid empty schedule.
func PlanSchedule(policy domain.DutyPolicy, in ScheduleInput) (domain.Schedule, error) {
	if err := policy.Validate(); err != nil {
		return domain.Schedule{}, fmt.Errorf("plan schedule: %w", err)
	}

	if !(in.DurationHours >= 0) || math.IsInf(in.DurationHours, 0) {
		return domain.Schedule{}, fmt.Errorf("plan schedule: %w: got %v", domain.ErrInvalidDuration, in.DurationHours)
	}

	total := in.DurationHours + policy.OverheadHours()
	if math.Ceil(total/policy.DailyDrivingLimitHours) > domain.MaxScheduleDays {
		return domain.Schedule{}, fmt.Errorf("plan schedule: %w: %v hours exceeds %d duty days",
			domain.ErrInvalidDuration, total, domain.MaxScheduleDays)
	}

	if !(in.HoursUsed >= 0) || math.IsInf(in.HoursUsed, 0) {
		return domain.Schedule{}, fmt.Errorf("plan schedule: %w: got %v", domain.ErrInvalidHoursUsed, in.HoursUsed)
	}

	logs, days := BuildSchedule(policy, in.DistanceMiles, in.DurationHours, in.HoursUsed)
	return domain.Schedule{Logs: logs, Days: days}, nil
}
