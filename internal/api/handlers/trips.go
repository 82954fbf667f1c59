package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"trip-planner-service/internal/api/dto"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
	"trip-planner-service/internal/services"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

type TripHandler struct {
	Repo     ports.TripRepository
	Provider ports.DirectionsProvider
	Options  services.PlanOptions
}

// Plan routes start -> pickup -> dropoff and returns the trip with its fuel
// stops and daily duty logs.
func (h *TripHandler) Plan(c *fiber.Ctx) error {
	var req dto.PlanTripRequest
	if err := decodeStrict(c.Body(), &req); err != nil {
		return writeError(c, fiber.StatusBadRequest, err.Error())
	}

	svcReq, err := toServiceRequest(req)
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, err.Error())
	}

	trip, err := services.PlanTrip(c.UserContext(), svcReq, h.Provider, h.Repo, h.Options)
	if err != nil {
		return writeServiceError(c, "plan trip", err)
	}

	res, err := toTripResponse(trip)
	if err != nil {
		return writeServiceError(c, "render trip", err)
	}
	return writeJSON(c, fiber.StatusOK, res)
}

// Get returns a previously planned trip.
func (h *TripHandler) Get(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return writeError(c, fiber.StatusBadRequest, "trip id is required")
	}

	trip, err := h.Repo.GetTrip(c.UserContext(), id)
	if err != nil {
		return writeServiceError(c, "get trip", err)
	}

	res, err := toTripResponse(trip)
	if err != nil {
		return writeServiceError(c, "render trip", err)
	}
	return writeJSON(c, fiber.StatusOK, res)
}

// List returns the most recent trips, newest first.
func (h *TripHandler) List(c *fiber.Ctx) error {
	limit := defaultListLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxListLimit {
			return writeError(c, fiber.StatusBadRequest, fmt.Sprintf("limit must be between 1 and %d", maxListLimit))
		}
		limit = n
	}

	trips, err := h.Repo.ListTrips(c.UserContext(), limit)
	if err != nil {
		return writeServiceError(c, "list trips", err)
	}

	res := dto.ListTripsResponse{Trips: make([]dto.TripResponse, 0, len(trips))}
	for _, t := range trips {
		tr, err := toTripResponse(t)
		if err != nil {
			return writeServiceError(c, "render trip", err)
		}
		res.Trips = append(res.Trips, tr)
	}

	return writeJSON(c, fiber.StatusOK, res)
}

func toServiceRequest(req dto.PlanTripRequest) (services.PlanTripRequest, error) {
	start, err := toGeoPoint("start", req.Start)
	if err != nil {
		return services.PlanTripRequest{}, err
	}
	pickup, err := toGeoPoint("pickup", req.Pickup)
	if err != nil {
		return services.PlanTripRequest{}, err
	}
	dropoff, err := toGeoPoint("dropoff", req.Dropoff)
	if err != nil {
		return services.PlanTripRequest{}, err
	}

	var hoursUsed float64
	if req.HoursUsed != nil {
		hoursUsed = *req.HoursUsed
	}

	return services.PlanTripRequest{
		Start:     start,
		Pickup:    pickup,
		Dropoff:   dropoff,
		HoursUsed: hoursUsed,
	}, nil
}

func toGeoPoint(name string, p *dto.PointRequest) (domain.GeoPoint, error) {
	if p == nil {
		return domain.GeoPoint{}, fmt.Errorf("%s is required", name)
	}
	if p.Lat == nil || p.Lng == nil {
		return domain.GeoPoint{}, fmt.Errorf("%s.lat and %s.lng are required", name, name)
	}
	return domain.GeoPoint{Lon: *p.Lng, Lat: *p.Lat}, nil
}
