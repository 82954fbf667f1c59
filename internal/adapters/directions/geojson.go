package directions

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
)

// DecodeGeoJSON extracts the route and summary from a directions GeoJSON document.
// It accepts an ORS FeatureCollection, a single Feature, or a bare LineString;
// the summary is zero when the document carries none.
func DecodeGeoJSON(data []byte) (ports.DirectionsResult, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return ports.DirectionsResult{}, fmt.Errorf("decode geojson: %w", err)
	}

	var feature *geojson.Feature

	switch head.Type {
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return ports.DirectionsResult{}, fmt.Errorf("decode geojson: %w", err)
		}
		if len(fc.Features) == 0 || fc.Features[0] == nil {
			return ports.DirectionsResult{}, errors.New("decode geojson: feature collection has no features")
		}
		feature = fc.Features[0]
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return ports.DirectionsResult{}, fmt.Errorf("decode geojson: %w", err)
		}
		feature = f
	default:
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return ports.DirectionsResult{}, fmt.Errorf("decode geojson: unsupported type %q: %w", head.Type, err)
		}
		feature = geojson.NewFeature(g.Geometry())
	}

	if feature.Geometry == nil {
		return ports.DirectionsResult{}, errors.New("decode geojson: feature has no geometry")
	}
	line, ok := feature.Geometry.(orb.LineString)
	if !ok {
		return ports.DirectionsResult{}, fmt.Errorf("decode geojson: expected LineString geometry, got %s", feature.Geometry.GeoJSONType())
	}

	distance, duration := summaryOf(feature.Properties)

	return ports.DirectionsResult{
		Route:           toRoute(line),
		DistanceMeters:  distance,
		DurationSeconds: duration,
		GeoJSON:         json.RawMessage(data),
	}, nil
}

// encodeGeoJSON renders a route as a single-feature collection in the ORS shape.
func encodeGeoJSON(route domain.Route, distanceMeters, durationSeconds float64) (json.RawMessage, error) {
	line := make(orb.LineString, 0, len(route))
	for _, p := range route {
		line = append(line, orb.Point{p.Lon, p.Lat})
	}

	f := geojson.NewFeature(line)
	f.Properties["summary"] = map[string]float64{
		"distance": distanceMeters,
		"duration": durationSeconds,
	}

	b, err := geojson.NewFeatureCollection().Append(f).MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("encode geojson: %w", err)
	}
	return b, nil
}

// summaryOf reads the ORS properties.summary block; missing or non-numeric
// values read as zero.
func summaryOf(props geojson.Properties) (distance, duration float64) {
	summary, ok := props["summary"].(map[string]interface{})
	if !ok {
		return 0, 0
	}
	distance, _ = summary["distance"].(float64)
	duration, _ = summary["duration"].(float64)
	return distance, duration
}

// toRoute drops any elevation ORS appends; orb keeps only lon and lat.
func toRoute(line orb.LineString) domain.Route {
	route := make(domain.Route, 0, len(line))
	for _, p := range line {
		route = append(route, domain.GeoPoint{Lon: p.Lon(), Lat: p.Lat()})
	}
	return route
}
