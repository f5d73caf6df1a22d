package osm2terrn

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRoad(t *testing.T) {
	road, err := NewRoad(
		[]RoadPoint{{0, 10, 0}, {5, 10, 0}, {10, 12, 0}},
		7.0,
		WithKind("road-both"),
		WithName("Avenida Central"),
		WithBridge(true),
		WithBorder(1.5, 0.2),
	)
	require.NoError(t, err)
	assert.Equal(t, "road-both", road.Kind)
	assert.Equal(t, "Avenida Central", road.Name)
	assert.True(t, road.IsBridge)
	assert.Equal(t, 1.5, road.BorderWidth)
	assert.Equal(t, 0.2, road.BorderHeight)
}

func TestNewRoadSinglePoint(t *testing.T) {
	_, err := NewRoad([]RoadPoint{{0, 0, 0}}, 7.0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRoadValidation))
}

func TestNewRoadNonPositiveWidth(t *testing.T) {
	points := []RoadPoint{{0, 0, 0}, {10, 0, 0}}
	for _, width := range []float64{0, -7} {
		_, err := NewRoad(points, width)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrRoadValidation))
	}
}

func TestNewRoadZeroArcLength(t *testing.T) {
	_, err := NewRoad([]RoadPoint{{5, 0, 5}, {5, 0, 5}}, 7.0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRoadValidation))
}

func TestNewRoadNonFiniteCoordinate(t *testing.T) {
	bad := [][]RoadPoint{
		{{0, 0, 0}, {math.NaN(), 0, 10}},
		{{0, 0, 0}, {10, math.Inf(1), 10}},
		{{0, math.Inf(-1), 0}, {10, 0, 10}},
	}
	for _, points := range bad {
		_, err := NewRoad(points, 7.0)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrRoadValidation))
	}
}

func TestNewRoadElevationOnlyChangeRejected(t *testing.T) {
	// distinct elevations with zero planar footprint are still degenerate
	_, err := NewRoad([]RoadPoint{{5, 0, 5}, {5, 100, 5}}, 7.0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRoadValidation))
}
