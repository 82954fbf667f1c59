package directions

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"googlemaps.github.io/maps"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/ports"
)

// GoogleDirectionsProvider implements DirectionsProvider with the Google Maps
// Directions API. The overview polyline is used as route geometry and the
// response is re-encoded as GeoJSON in the same shape ORS returns.
type GoogleDirectionsProvider struct {
	client *maps.Client
}

func NewGoogleDirectionsProvider(apiKey string, opts ...maps.ClientOption) (*GoogleDirectionsProvider, error) {
	if apiKey == "" {
		return nil, errors.New("google maps api key is empty")
	}

	client, err := maps.NewClient(append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("create google maps client: %w", err)
	}

	return &GoogleDirectionsProvider{client: client}, nil
}

func (g *GoogleDirectionsProvider) Profile() string { return "google:driving" }

func (g *GoogleDirectionsProvider) GetDirections(
	ctx context.Context,
	waypoints []domain.GeoPoint,
) (_ ports.DirectionsResult, err error) {
	defer obs.Time(ctx, "google.GetDirections")(&err)

	if len(waypoints) < 2 {
		return ports.DirectionsResult{}, fmt.Errorf("get google directions: %w", domain.ErrInvalidRoute)
	}

	for i, w := range waypoints {
		if err := w.Validate(); err != nil {
			return ports.DirectionsResult{}, fmt.Errorf("get google directions: waypoint %d: %w", i, err)
		}
	}

	req := &maps.DirectionsRequest{
		Origin:      latLng(waypoints[0]),
		Destination: latLng(waypoints[len(waypoints)-1]),
		Mode:        maps.TravelModeDriving,
	}
	for _, w := range waypoints[1 : len(waypoints)-1] {
		req.Waypoints = append(req.Waypoints, latLng(w))
	}

	routes, _, err := g.client.Directions(ctx, req)
	if err != nil {
		return ports.DirectionsResult{}, fmt.Errorf("google directions request: %w", err)
	}
	if len(routes) == 0 {
		return ports.DirectionsResult{}, errors.New("google directions returned no routes")
	}

	best := routes[0]
	points, err := best.OverviewPolyline.Decode()
	if err != nil {
		return ports.DirectionsResult{}, fmt.Errorf("decode overview polyline: %w", err)
	}

	route := make(domain.Route, 0, len(points))
	for _, p := range points {
		route = append(route, domain.GeoPoint{Lon: p.Lng, Lat: p.Lat})
	}

	var meters, seconds float64
	for _, leg := range best.Legs {
		meters += float64(leg.Distance.Meters)
		seconds += leg.Duration.Seconds()
	}

	geoJSON, err := encodeGeoJSON(route, meters, seconds)
	if err != nil {
		return ports.DirectionsResult{}, err
	}

	return ports.DirectionsResult{
		Route:           route,
		DistanceMeters:  meters,
		DurationSeconds: seconds,
		GeoJSON:         geoJSON,
	}, nil
}

// latLng formats a point the way the Directions API expects ("lat,lng").
func latLng(p domain.GeoPoint) string {
	return strconv.FormatFloat(p.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(p.Lon, 'f', -1, 64)
}
