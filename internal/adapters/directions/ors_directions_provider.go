package directions

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/ports"
)

const (
	DefaultORSBaseURL = "https://api.openrouteservice.org"
	DefaultORSProfile = "driving-car"
)

// ORSDirectionsProvider implements DirectionsProvider using the OpenRouteService
// directions endpoint in GeoJSON format.
//
// Transient failures are retried with exponential backoff. The provider is
// safe for concurrent use.
type ORSDirectionsProvider struct {
	session      *http.Client
	apiKey       string
	baseURL      string
	profile      string
	retryBackoff time.Duration
}

type directionsRequest struct {
	Coordinates [][]float64 `json:"coordinates"`
}

func NewORSDirectionsProvider(apiKey, baseURL, profile string) (*ORSDirectionsProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("ORS api key is empty")
	}

	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultORSBaseURL
	}
	if strings.TrimSpace(profile) == "" {
		profile = DefaultORSProfile
	}

	provider := &ORSDirectionsProvider{
		session:      &http.Client{Timeout: 30 * time.Second},
		apiKey:       apiKey,
		baseURL:      strings.TrimRight(baseURL, "/"),
		profile:      profile,
		retryBackoff: 200 * time.Millisecond,
	}

	return provider, nil
}

// Profile identifies the routing profile, used to namespace cached results.
func (o *ORSDirectionsProvider) Profile() string { return "ors:" + o.profile }

// GetDirections requests a route through waypoints in order.
func (o *ORSDirectionsProvider) GetDirections(
	ctx context.Context,
	waypoints []domain.GeoPoint,
) (_ ports.DirectionsResult, err error) {
	defer obs.Time(ctx, "ors.GetDirections")(&err)

	if len(waypoints) < 2 {
		return ports.DirectionsResult{}, fmt.Errorf("get ORS directions: %w", domain.ErrInvalidRoute)
	}

	coords := make([][]float64, 0, len(waypoints))
	for i, w := range waypoints {
		if err := w.Validate(); err != nil {
			return ports.DirectionsResult{}, fmt.Errorf("get ORS directions: waypoint %d: %w", i, err)
		}
		coords = append(coords, w.ToList())
	}

	payload, err := json.Marshal(directionsRequest{Coordinates: coords})
	if err != nil {
		return ports.DirectionsResult{}, fmt.Errorf("marshal directions request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v2/directions/%s/geojson", o.baseURL, o.profile)

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		return o.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	})
	if err != nil {
		return ports.DirectionsResult{}, fmt.Errorf("directions request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return ports.DirectionsResult{}, fmt.Errorf("read directions response: %w", err)
	}

	result, err := DecodeGeoJSON(body)
	if err != nil {
		return ports.DirectionsResult{}, fmt.Errorf("parse directions response: %w", err)
	}

	if len(result.Route) == 0 {
		return ports.DirectionsResult{}, errors.New("ORS directions service returned an empty route")
	}

	return result, nil
}
