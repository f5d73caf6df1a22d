package osm2terrn

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepareWKT(t *testing.T) {
	line := orb.LineString{{0, 0}, {10, 0}, {10, 5}}
	assert.Equal(t, "LINESTRING(0.000000 0.000000,10.000000 0.000000,10.000000 5.000000)", PrepareWKTLinestring(line))
	assert.Equal(t, "POINT(-58.440000 -34.790000)", PrepareWKTPoint(orb.Point{-58.44, -34.79}))
}

func TestPrepareGeoJSON(t *testing.T) {
	line := orb.LineString{{0, 0}, {10, 0}}
	var geometry struct {
		Type        string      `json:"type"`
		Coordinates [][]float64 `json:"coordinates"`
	}
	require.NoError(t, json.Unmarshal([]byte(PrepareGeoJSONLinestring(line)), &geometry))
	assert.Equal(t, "LineString", geometry.Type)
	assert.Equal(t, [][]float64{{0, 0}, {10, 0}}, geometry.Coordinates)

	var point struct {
		Type        string    `json:"type"`
		Coordinates []float64 `json:"coordinates"`
	}
	require.NoError(t, json.Unmarshal([]byte(PrepareGeoJSONPoint(orb.Point{1.5, -2.5})), &point))
	assert.Equal(t, "Point", point.Type)
	assert.Equal(t, []float64{1.5, -2.5}, point.Coordinates)
}

func TestMergedSegmentsToWKT(t *testing.T) {
	segments := []MergedSegment{
		{Geom: orb.LineString{{0, 0}, {10, 0}}, Category: "primary", Name: "Avenida Central", IsBridge: true},
		{Geom: orb.LineString{{0, 5}, {10, 5}}, Category: "residential"},
	}
	dump, err := MergedSegmentsToWKT(segments)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(dump), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "geom;highway;name;bridge", lines[0])
	assert.Contains(t, lines[1], "LINESTRING(0.000000 0.000000,10.000000 0.000000)")
	assert.Contains(t, lines[1], "primary")
	assert.Contains(t, lines[1], "Avenida Central")
	assert.Contains(t, lines[1], "true")
	assert.Contains(t, lines[2], "residential")
	assert.Contains(t, lines[2], "false")
}

func TestMergedSegmentsToGeoJSON(t *testing.T) {
	segments := []MergedSegment{
		{Geom: orb.LineString{{0, 0}, {10, 0}}, Category: "primary", Name: "Avenida Central"},
	}
	dump, err := MergedSegmentsToGeoJSON(segments)
	require.NoError(t, err)

	var fc struct {
		Type     string `json:"type"`
		Features []struct {
			Properties map[string]interface{} `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal([]byte(dump), &fc))
	assert.Equal(t, "FeatureCollection", fc.Type)
	require.Len(t, fc.Features, 1)
	assert.Equal(t, "primary", fc.Features[0].Properties["highway"])
	assert.Equal(t, "Avenida Central", fc.Features[0].Properties["name"])
}
