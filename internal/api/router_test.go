package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trip-planner-service/internal/adapters/directions"
	"trip-planner-service/internal/adapters/repositories"
	"trip-planner-service/internal/api/dto"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/db"
	"trip-planner-service/internal/ports"
	"trip-planner-service/internal/services"
)

const planBody = `{
	"start": {"lat": 40.0, "lng": -74.0},
	"pickup": {"lat": 40.0, "lng": -80.0},
	"dropoff": {"lat": 40.0, "lng": -87.0},
	"hours_used": 5
}`

func directionsResult() ports.DirectionsResult {
	return ports.DirectionsResult{
		Route: domain.Route{
			{Lon: -74.0, Lat: 40.0},
			{Lon: -80.0, Lat: 40.0},
			{Lon: -87.0, Lat: 40.0},
		},
		DistanceMeters:  1609.34 * 700,
		DurationSeconds: 12.5 * 3600,
		GeoJSON:         json.RawMessage(`{"type":"LineString","coordinates":[[-74,40],[-80,40],[-87,40]]}`),
	}
}

type testServer struct {
	app      *fiber.App
	repo     *repositories.SQLTripRepository
	provider *directions.MockDirectionsProvider
}

func newTestServer(t *testing.T, providerErr error) testServer {
	t.Helper()

	conn, err := db.Open(context.Background(), db.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, repositories.InitSchema(context.Background(), conn))

	repo := repositories.NewSQLTripRepository(conn, db.DriverSQLite)
	provider := directions.NewMockDirectionsProvider(directionsResult(), providerErr)

	policy := domain.DefaultDutyPolicy()
	policy.FuelIntervalMiles = 250

	return testServer{
		app:      NewRouter(repo, provider, services.PlanOptions{Policy: policy}),
		repo:     repo,
		provider: provider,
	}
}

func doRequest(t *testing.T, app *fiber.App, method, target, body string) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, b
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, nil)

	status, body := doRequest(t, s.app, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))
}

func TestPlanTrip(t *testing.T) {
	s := newTestServer(t, nil)

	status, body := doRequest(t, s.app, http.MethodPost, "/api/trips/plan", planBody)
	require.Equal(t, http.StatusOK, status, string(body))

	var res dto.TripResponse
	require.NoError(t, json.Unmarshal(body, &res))

	assert.NotEmpty(t, res.TripID)
	assert.InDelta(t, 700, res.Summary.DistanceMiles, 1e-9)
	assert.InDelta(t, 12.5, res.Summary.DurationHours, 1e-9)
	assert.JSONEq(t, `{"type":"LineString","coordinates":[[-74,40],[-80,40],[-87,40]]}`, string(res.Route))

	// 12.5 h driving + 2 h overhead.
	assert.Equal(t, []dto.DrivingStopResponse{
		{Day: 1, Type: "Driving", DrivingHours: 11},
		{Day: 2, Type: "Driving", DrivingHours: 3.5},
	}, res.Stops)
	assert.Equal(t, []dto.DailyLogResponse{
		{Day: 1, DrivingHours: 11, RestHours: 10, FuelPolicy: "every 250 miles"},
		{Day: 2, DrivingHours: 3.5, RestHours: 10, FuelPolicy: "every 250 miles"},
	}, res.Logs)

	require.Len(t, res.FuelStops, 2)
	for _, fs := range res.FuelStops {
		assert.Equal(t, "Fueling", fs.Type)
		assert.InDelta(t, 40.0, fs.Lat, 1e-9)
	}

	assert.Equal(t, [][]domain.GeoPoint{{
		{Lon: -74.0, Lat: 40.0},
		{Lon: -80.0, Lat: 40.0},
		{Lon: -87.0, Lat: 40.0},
	}}, s.provider.Calls())

	saved, err := s.repo.GetTrip(context.Background(), res.TripID)
	require.NoError(t, err)
	assert.Equal(t, 5.0, saved.HoursUsed)
}

func TestPlanTripWireFormat(t *testing.T) {
	s := newTestServer(t, nil)

	status, body := doRequest(t, s.app, http.MethodPost, "/api/trips/plan", planBody)
	require.Equal(t, http.StatusOK, status)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body, &raw))
	for _, key := range []string{"trip_id", "route", "summary", "stops", "fuel_stops", "logs"} {
		assert.Contains(t, raw, key)
	}

	var logs []map[string]any
	require.NoError(t, json.Unmarshal(raw["logs"], &logs))
	assert.Equal(t, map[string]any{"day": 1.0, "driving": 11.0, "rest": 10.0, "fuel": "every 250 miles"}, logs[0])

	var stops []map[string]any
	require.NoError(t, json.Unmarshal(raw["stops"], &stops))
	assert.Equal(t, map[string]any{"day": 1.0, "type": "Driving", "duration": 11.0}, stops[0])
}

func TestPlanTripBadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"malformed", `{"start":`, "invalid json body"},
		{"unknown field", `{"start":{"lat":1,"lng":2},"pickup":{"lat":1,"lng":2},"dropoff":{"lat":1,"lng":2},"speed":9}`, "invalid json body"},
		{"trailing object", planBody + `{}`, "body must contain only one JSON object"},
		{"missing pickup", `{"start":{"lat":1,"lng":2},"dropoff":{"lat":1,"lng":2}}`, "pickup is required"},
		{"missing lng", `{"start":{"lat":1},"pickup":{"lat":1,"lng":2},"dropoff":{"lat":1,"lng":2}}`, "start.lat and start.lng are required"},
		{"latitude out of range", `{"start":{"lat":91,"lng":2},"pickup":{"lat":1,"lng":2},"dropoff":{"lat":1,"lng":2}}`, "latitude"},
		{"negative hours used", `{"start":{"lat":1,"lng":2},"pickup":{"lat":1,"lng":2},"dropoff":{"lat":1,"lng":2},"hours_used":-3}`, "hours used"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, nil)

			status, body := doRequest(t, s.app, http.MethodPost, "/api/trips/plan", tt.body)
			assert.Equal(t, http.StatusBadRequest, status)

			var res dto.ErrorResponse
			require.NoError(t, json.Unmarshal(body, &res))
			assert.Contains(t, res.Error, tt.want)
			assert.Empty(t, s.provider.Calls())
		})
	}
}

func TestPlanTripDirectionsFailure(t *testing.T) {
	s := newTestServer(t, errors.New("Code 503: upstream busy"))

	status, body := doRequest(t, s.app, http.MethodPost, "/api/trips/plan", planBody)
	assert.Equal(t, http.StatusBadGateway, status)
	assert.JSONEq(t, `{"error":"directions service unavailable"}`, string(body))
}

func TestPlanTripUnusableDirections(t *testing.T) {
	for _, seconds := range []float64{-3600, 1e20} {
		s := newTestServer(t, nil)
		result := directionsResult()
		result.DurationSeconds = seconds
		provider := directions.NewMockDirectionsProvider(result, nil)
		app := NewRouter(s.repo, provider, services.PlanOptions{})

		status, body := doRequest(t, app, http.MethodPost, "/api/trips/plan", planBody)
		assert.Equal(t, http.StatusBadGateway, status, "seconds=%v", seconds)
		assert.JSONEq(t, `{"error":"directions service returned an unusable route"}`, string(body))

		trips, err := s.repo.ListTrips(context.Background(), 10)
		require.NoError(t, err)
		assert.Empty(t, trips)
	}
}

func TestGetTrip(t *testing.T) {
	s := newTestServer(t, nil)

	_, body := doRequest(t, s.app, http.MethodPost, "/api/trips/plan", planBody)
	var planned dto.TripResponse
	require.NoError(t, json.Unmarshal(body, &planned))

	status, body := doRequest(t, s.app, http.MethodGet, "/api/trips/"+planned.TripID, "")
	require.Equal(t, http.StatusOK, status)

	var got dto.TripResponse
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, planned.TripID, got.TripID)
	assert.Equal(t, planned.Stops, got.Stops)
	assert.Equal(t, planned.Logs, got.Logs)
	assert.Equal(t, planned.FuelStops, got.FuelStops)
	assert.JSONEq(t, string(planned.Route), string(got.Route))

	status, body = doRequest(t, s.app, http.MethodGet, "/api/trips/does-not-exist", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.JSONEq(t, `{"error":"trip not found"}`, string(body))
}

func TestListTrips(t *testing.T) {
	s := newTestServer(t, nil)

	base := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	for i := range 3 {
		require.NoError(t, s.repo.SaveTrip(context.Background(), &domain.Trip{
			ID:        fmt.Sprintf("trip-%d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	status, body := doRequest(t, s.app, http.MethodGet, "/api/trips?limit=2", "")
	require.Equal(t, http.StatusOK, status)

	var res dto.ListTripsResponse
	require.NoError(t, json.Unmarshal(body, &res))
	require.Len(t, res.Trips, 2)
	assert.Equal(t, "trip-2", res.Trips[0].TripID)
	assert.Equal(t, "trip-1", res.Trips[1].TripID)
	assert.NotNil(t, res.Trips[0].Stops)

	status, _ = doRequest(t, s.app, http.MethodGet, "/api/trips", "")
	assert.Equal(t, http.StatusOK, status)

	for _, bad := range []string{"0", "101", "ten"} {
		status, _ = doRequest(t, s.app, http.MethodGet, "/api/trips?limit="+bad, "")
		assert.Equal(t, http.StatusBadRequest, status, bad)
	}
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t, nil)

	status, body := doRequest(t, s.app, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, status)

	var res dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &res))
	assert.NotEmpty(t, res.Error)
}

func TestRequestIDIsEchoed(t *testing.T) {
	s := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "abc-123", resp.Header.Get("X-Request-ID"))
}
