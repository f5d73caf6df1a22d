package osm2terrn

import (
	"math"

	"github.com/pkg/errors"
)

// RoadPoint Single road vertex in local engine meters. X grows east, Y is
// elevation, Z is the planar north/south component per engine convention.
type RoadPoint struct {
	X float64
	Y float64
	Z float64
}

// Road Named, typed polyline with width and border attributes, the unit of
// serializer output. Constructed once per merged-and-resampled segment that
// survives category filtering; immutable after NewRoad returns.
type Road struct {
	Points       []RoadPoint
	Width        float64
	BorderWidth  float64
	BorderHeight float64
	Kind         string
	Name         string
	IsBridge     bool
}

// NewRoad validates a candidate road. Requirements: at least two points,
// strictly positive width, every coordinate finite, and nonzero planar arc
// length (a single point repeated is rejected). Candidates that fail are
// dropped with ErrRoadValidation, the run continues without them.
func NewRoad(points []RoadPoint, width float64, options ...func(*Road)) (*Road, error) {
	road := &Road{
		Points: points,
		Width:  width,
		Kind:   "road",
	}
	for _, option := range options {
		option(road)
	}
	if len(road.Points) < 2 {
		return nil, errors.Wrapf(ErrRoadValidation, "road must contain at least 2 points, got %d", len(road.Points))
	}
	if road.Width <= 0 {
		return nil, errors.Wrapf(ErrRoadValidation, "road width must be positive, got %f", road.Width)
	}
	for _, point := range road.Points {
		for _, v := range [3]float64{point.X, point.Y, point.Z} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, errors.Wrap(ErrRoadValidation, "all point coordinates must be finite")
			}
		}
	}
	if road.planarLength() == 0 {
		return nil, errors.Wrap(ErrRoadValidation, "road polyline planar length must be > 0")
	}
	return road, nil
}

// WithKind sets the category/type label written as the `type` declaration
func WithKind(kind string) func(*Road) {
	return func(road *Road) {
		road.Kind = kind
	}
}

// WithName sets the optional display name of the road
func WithName(name string) func(*Road) {
	return func(road *Road) {
		road.Name = name
	}
}

// WithBridge marks the road as an elevated/bridge object
func WithBridge(isBridge bool) func(*Road) {
	return func(road *Road) {
		road.IsBridge = isBridge
	}
}

// WithBorder sets border width and height in meters
func WithBorder(width, height float64) func(*Road) {
	return func(road *Road) {
		road.BorderWidth = width
		road.BorderHeight = height
	}
}

// planarLength returns cumulative arc length of the polyline in the XZ plane
func (road *Road) planarLength() float64 {
	length := 0.0
	for i := 1; i < len(road.Points); i++ {
		dx := road.Points[i].X - road.Points[i-1].X
		dz := road.Points[i].Z - road.Points[i-1].Z
		length += math.Hypot(dx, dz)
	}
	return length
}
