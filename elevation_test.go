package osm2terrn

import (
	"errors"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestElevationNearestNeighbor(t *testing.T) {
	index := BuildElevationIndex([]ElevationSample{
		{Point: orb.Point{0, 0}, Elevation: 10},
		{Point: orb.Point{20, 0}, Elevation: 20},
	})
	require.False(t, index.Empty())

	points := []orb.Point{{0, 0}, {5, 0}, {10.0 + 1e-3, 0}, {15, 0}, {20, 0}}
	elevations := index.Query(points)
	require.Len(t, elevations, len(points))
	assert.Equal(t, []float64{10, 10, 20, 20, 20}, elevations)
}

func TestElevationNearestNeighborUnbiased(t *testing.T) {
	// queries barely past the midpoint must flip to the nearer sample
	index := BuildElevationIndex([]ElevationSample{
		{Point: orb.Point{0, 0}, Elevation: 10},
		{Point: orb.Point{20, 0}, Elevation: 20},
	})
	assert.Equal(t, 10.0, index.QueryOne(orb.Point{9.999, 0}))
	assert.Equal(t, 20.0, index.QueryOne(orb.Point{10.001, 0}))
}

func TestElevationEmptyIndexFallsBackToZero(t *testing.T) {
	index := BuildElevationIndex(nil)
	assert.True(t, index.Empty())
	assert.True(t, errors.Is(index.lookupError(), ErrElevationLookup))
	elevations := index.Query([]orb.Point{{1, 2}, {3, 4}})
	assert.Equal(t, []float64{0, 0}, elevations)

	populated := BuildElevationIndex([]ElevationSample{{Point: orb.Point{0, 0}, Elevation: 1}})
	assert.NoError(t, populated.lookupError())
}

func TestElevationSingleSample(t *testing.T) {
	index := BuildElevationIndex([]ElevationSample{{Point: orb.Point{100, 100}, Elevation: 42.5}})
	elevations := index.Query([]orb.Point{{0, 0}, {1000, -1000}})
	assert.Equal(t, []float64{42.5, 42.5}, elevations)
}
