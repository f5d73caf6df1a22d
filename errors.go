package osm2terrn

import "github.com/pkg/errors"

var (
	// ErrInvalidBounds Malformed or degenerate bounding box
	ErrInvalidBounds = errors.New("invalid bounds")
	// ErrReprojection Coordinate reference system transform failure
	ErrReprojection = errors.New("reprojection failed")
	// ErrInvalidParameter Bad resampling parameters
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrGeometryFusion Unexpected non-linear fusion result
	ErrGeometryFusion = errors.New("geometry fusion failed")
	// ErrRoadValidation Candidate road failed its invariants
	ErrRoadValidation = errors.New("road validation failed")
	// ErrElevationLookup Empty elevation sample set
	ErrElevationLookup = errors.New("elevation lookup failed")
)
