package directions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trip-planner-service/internal/domain"
)

func TestDecodeGeoJSON(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		want     domain.Route
		distance float64
	}{
		{
			name:     "feature collection",
			doc:      orsResponse,
			want:     domain.Route{{Lon: -74.006, Lat: 40.7128}, {Lon: -80.8431, Lat: 35.2271}, {Lon: -87.6298, Lat: 41.8781}},
			distance: 1800000.5,
		},
		{
			name:     "feature",
			doc:      `{"type":"Feature","geometry":{"type":"LineString","coordinates":[[1,2],[3,4]]},"properties":{"summary":{"distance":10,"duration":5}}}`,
			want:     domain.Route{{Lon: 1, Lat: 2}, {Lon: 3, Lat: 4}},
			distance: 10,
		},
		{
			name: "line string",
			doc:  `{"type":"LineString","coordinates":[[1,2],[3,4],[5,6]]}`,
			want: domain.Route{{Lon: 1, Lat: 2}, {Lon: 3, Lat: 4}, {Lon: 5, Lat: 6}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := DecodeGeoJSON([]byte(tt.doc))
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Route)
			assert.Equal(t, tt.distance, res.DistanceMeters)
		})
	}
}

func TestDecodeGeoJSONErrors(t *testing.T) {
	for _, doc := range []string{
		`not json`,
		`{"type":"FeatureCollection","features":[]}`,
		`{"type":"Feature"}`,
		`{"type":"Point","coordinates":[1,2]}`,
		`{"type":"LineString","coordinates":[[1,"a"],[2,3]]}`,
		`{"type":"Feature","geometry":null,"properties":{}}`,
		`{"type":"FeatureCollection","features":[{"type":"Feature","geometry":{"type":"Point","coordinates":[1,2]},"properties":null}]}`,
	} {
		_, err := DecodeGeoJSON([]byte(doc))
		assert.Error(t, err, doc)
	}
}

func TestDecodeGeoJSONDropsElevation(t *testing.T) {
	res, err := DecodeGeoJSON([]byte(`{"type":"LineString","coordinates":[[1,2,350.5],[3,4,12]]}`))
	require.NoError(t, err)
	assert.Equal(t, domain.Route{{Lon: 1, Lat: 2}, {Lon: 3, Lat: 4}}, res.Route)
	assert.Zero(t, res.DurationSeconds)
}

func TestDecodeGeoJSONIgnoresMalformedSummary(t *testing.T) {
	doc := `{"type":"Feature","geometry":{"type":"LineString","coordinates":[[1,2],[3,4]]},"properties":{"summary":{"distance":"far"}}}`

	res, err := DecodeGeoJSON([]byte(doc))
	require.NoError(t, err)
	assert.Len(t, res.Route, 2)
	assert.Zero(t, res.DistanceMeters)
}

func TestEncodeGeoJSONRoundTrip(t *testing.T) {
	route := domain.Route{{Lon: -120.2, Lat: 38.5}, {Lon: -126.453, Lat: 43.252}}

	raw, err := encodeGeoJSON(route, 1500, 900)
	require.NoError(t, err)

	res, err := DecodeGeoJSON(raw)
	require.NoError(t, err)
	assert.Equal(t, route, res.Route)
	assert.Equal(t, 1500.0, res.DistanceMeters)
	assert.Equal(t, 900.0, res.DurationSeconds)
	assert.JSONEq(t, `{
		"type": "FeatureCollection",
		"features": [{
			"type": "Feature",
			"geometry": {"type": "LineString", "coordinates": [[-120.2, 38.5], [-126.453, 43.252]]},
			"properties": {"summary": {"distance": 1500, "duration": 900}}
		}]
	}`, string(raw))
}
