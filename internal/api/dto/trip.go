package dto

import (
	"encoding/json"
	"time"
)

// Point fields are pointers so a missing coordinate is distinguishable from 0.
type PointRequest struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

type PlanTripRequest struct {
	Start     *PointRequest `json:"start"`
	Pickup    *PointRequest `json:"pickup"`
	Dropoff   *PointRequest `json:"dropoff"`
	HoursUsed *float64      `json:"hours_used"`
}

type PointResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type SummaryResponse struct {
	DistanceMiles float64 `json:"distance_miles"`
	DurationHours float64 `json:"duration_hours"`
}

type DrivingStopResponse struct {
	Day          int     `json:"day"`
	Type         string  `json:"type"`
	DrivingHours float64 `json:"duration"`
}

type FuelStopResponse struct {
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	Type string  `json:"type"`
}

type DailyLogResponse struct {
	Day          int     `json:"day"`
	DrivingHours float64 `json:"driving"`
	RestHours    float64 `json:"rest"`
	FuelPolicy   string  `json:"fuel"`
}

type TripResponse struct {
	TripID    string                `json:"trip_id"`
	CreatedAt time.Time             `json:"created_at"`
	Start     PointResponse         `json:"start"`
	Pickup    PointResponse         `json:"pickup"`
	Dropoff   PointResponse         `json:"dropoff"`
	HoursUsed float64               `json:"hours_used"`
	Route     json.RawMessage       `json:"route"`
	Summary   SummaryResponse       `json:"summary"`
	Stops     []DrivingStopResponse `json:"stops"`
	FuelStops []FuelStopResponse    `json:"fuel_stops"`
	Logs      []DailyLogResponse    `json:"logs"`
}

type ListTripsResponse struct {
	Trips []TripResponse `json:"trips"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
