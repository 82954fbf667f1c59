package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"

	"trip-planner-service/internal/api/dto"
	"trip-planner-service/internal/domain"
)

func writeJSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return writeJSON(c, status, dto.ErrorResponse{Error: msg})
}

// ErrorHandler renders errors that escape handlers (unknown routes, panics)
// in the same {"error": msg} shape the handlers use.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return writeError(c, fe.Code, fe.Message)
	}

	log.Error().Err(err).Str("path", c.Path()).Msg("unhandled error")
	return writeError(c, fiber.StatusInternalServerError, "internal server error")
}

// writeServiceError maps domain sentinels to HTTP status codes.
func writeServiceError(c *fiber.Ctx, op string, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidPoint),
		errors.Is(err, domain.ErrInvalidHoursUsed):
		return writeError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrTripNotFound):
		return writeError(c, fiber.StatusNotFound, "trip not found")
	case errors.Is(err, domain.ErrDirectionsUnavailable):
		log.Warn().Err(err).Str("req_id", requestID(c)).Msg(op + " failed")
		return writeError(c, fiber.StatusBadGateway, "directions service unavailable")
	case errors.Is(err, domain.ErrInvalidDuration):
		// Durations come from the directions provider, never from the client.
		log.Warn().Err(err).Str("req_id", requestID(c)).Msg(op + " failed")
		return writeError(c, fiber.StatusBadGateway, "directions service returned an unusable route")
	default:
		log.Error().Err(err).Str("req_id", requestID(c)).Msg(op + " failed")
		return writeError(c, fiber.StatusInternalServerError, "internal server error")
	}
}

// decodeStrict decodes exactly one JSON object, rejecting unknown fields.
func decodeStrict(body []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return errors.New("invalid json body")
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("body must contain only one JSON object")
	}
	return nil
}

func requestID(c *fiber.Ctx) string {
	id, _ := c.Locals("req_id").(string)
	return id
}

func toTripResponse(t *domain.Trip) (dto.TripResponse, error) {
	res := dto.TripResponse{
		TripID:    t.ID,
		CreatedAt: t.CreatedAt,
		Start:     toPoint(t.Start),
		Pickup:    toPoint(t.Pickup),
		Dropoff:   toPoint(t.Dropoff),
		HoursUsed: t.HoursUsed,
		Route:     t.RouteGeoJSON,
		Stops:     []dto.DrivingStopResponse{},
		FuelStops: make([]dto.FuelStopResponse, 0, len(t.FuelStops)),
		Logs:      []dto.DailyLogResponse{},
	}

	if err := copier.Copy(&res.Summary, &t.Summary); err != nil {
		return dto.TripResponse{}, err
	}
	if err := copier.Copy(&res.Logs, &t.Schedule.Logs); err != nil {
		return dto.TripResponse{}, err
	}
	if err := copier.Copy(&res.Stops, &t.Schedule.Days); err != nil {
		return dto.TripResponse{}, err
	}
	if res.Logs == nil {
		res.Logs = []dto.DailyLogResponse{}
	}
	if res.Stops == nil {
		res.Stops = []dto.DrivingStopResponse{}
	}
	for i := range res.Stops {
		res.Stops[i].Type = string(domain.StopDriving)
	}

	for _, s := range t.FuelStops {
		res.FuelStops = append(res.FuelStops, dto.FuelStopResponse{
			Lat:  s.Position.Lat,
			Lng:  s.Position.Lon,
			Type: string(s.Kind),
		})
	}

	return res, nil
}

func toPoint(p domain.GeoPoint) dto.PointResponse {
	return dto.PointResponse{Lat: p.Lat, Lng: p.Lon}
}
