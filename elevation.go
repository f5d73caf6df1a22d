package osm2terrn

import (
	"log/slog"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

const (
	rtreeDimensions  = 2
	rtreeMinChildren = 25
	rtreeMaxChildren = 50
	// rtreeTolerance Half side of the rectangle centered on each point
	// sample; small against street-graph node spacing
	rtreeTolerance = 0.01
)

// ElevationSample Elevation in meters observed at a planar coordinate
type ElevationSample struct {
	Point     orb.Point
	Elevation float64
}

// spatialSample wraps a sample to implement the rtreego.Spatial interface
type spatialSample struct {
	sample ElevationSample
	rect   *rtreego.Rect
}

func (s *spatialSample) Bounds() *rtreego.Rect {
	return s.rect
}

// ElevationIndex Nearest-neighbor lookup structure mapping planar
// coordinates to elevation. Read-only after construction. An index built
// from zero samples is a valid no-op: every query yields 0.0.
type ElevationIndex struct {
	tree  *rtreego.Rtree
	count int
}

// BuildElevationIndex constructs the index from graph-node samples. Samples
// must share one metric CRS with the points queried later. An empty sample
// set produces an empty index rather than an error; the zero-elevation
// fallback is logged once at query time.
func BuildElevationIndex(samples []ElevationSample) *ElevationIndex {
	index := &ElevationIndex{
		tree:  rtreego.NewTree(rtreeDimensions, rtreeMinChildren, rtreeMaxChildren),
		count: len(samples),
	}
	for _, sample := range samples {
		// rectangle must be centered on the sample, otherwise the
		// nearest-neighbor distance is biased by the tolerance
		rect := rtreego.Point{sample.Point.X(), sample.Point.Y()}.ToRect(rtreeTolerance)
		index.tree.Insert(&spatialSample{sample: sample, rect: rect})
	}
	return index
}

// Empty reports whether the index holds no samples
func (index *ElevationIndex) Empty() bool {
	return index.count == 0
}

// lookupError reports why lookups cannot resolve, nil for a usable index
func (index *ElevationIndex) lookupError() error {
	if index.count == 0 {
		return errors.Wrap(ErrElevationLookup, "index holds no samples")
	}
	return nil
}

// QueryOne returns the elevation of the nearest sample to given point.
// Squared Euclidean distance in the build CRS; no interpolation between
// neighbors, the exact nearest sample wins.
func (index *ElevationIndex) QueryOne(point orb.Point) float64 {
	if index.count == 0 {
		return 0.0
	}
	nearest := index.tree.NearestNeighbor(rtreego.Point{point.X(), point.Y()})
	if nearest == nil {
		return 0.0
	}
	return nearest.(*spatialSample).sample.Elevation
}

// Query performs batch nearest-neighbor lookup, one elevation per input
// point. With an empty index all elevations fall back to 0.0.
func (index *ElevationIndex) Query(points []orb.Point) []float64 {
	elevations := make([]float64, len(points))
	if err := index.lookupError(); err != nil {
		if len(points) > 0 {
			slog.Warn("falling back to zero elevation", "points", len(points), "error", err)
		}
		return elevations
	}
	for i, point := range points {
		elevations[i] = index.QueryOne(point)
	}
	return elevations
}
