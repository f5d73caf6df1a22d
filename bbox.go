package osm2terrn

import (
	"fmt"
	"math"
	"strings"

	"github.com/pkg/errors"
)

// Extenter Anything exposing a 4-element extent (minx, miny, maxx, maxy).
// Satisfied by area queries, rasters and other geometry containers.
type Extenter interface {
	Extent() [4]float64
}

// BBox Canonical geographic/metric rectangle. Immutable after construction:
// Reproject returns a new instance, the receiver is never mutated.
type BBox struct {
	West  float64
	South float64
	East  float64
	North float64
	// CRS Coordinate reference system identifier, e.g. "EPSG:4326". Empty
	// means unlabeled, which is treated as geographic.
	CRS string
	// Projected True if the CRS is metric rather than geographic
	Projected bool
}

var bboxKeyVariants = [3][4]string{
	{"west", "south", "east", "north"},
	{"minx", "miny", "maxx", "maxy"},
	{"left", "bottom", "right", "top"},
}

// NewBBox builds a validated bounding box from explicit west/south/east/north
func NewBBox(west, south, east, north float64) (*BBox, error) {
	b := &BBox{West: west, South: south, East: east, North: north}
	if err := b.validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// NormalizeBounds accepts heterogeneous bounding box representations and
// returns the canonical form. Supported inputs: *BBox / BBox (copied),
// [4]float64 or []float64 of length 4 as (west, south, east, north), a map
// keyed by any of west/south/east/north, minx/miny/maxx/maxy or
// left/bottom/right/top (case-insensitive, optional "crs" entry), or any
// Extenter. Everything else fails with ErrInvalidBounds.
func NormalizeBounds(src interface{}) (*BBox, error) {
	switch source := src.(type) {
	case nil:
		return nil, errors.Wrap(ErrInvalidBounds, "bounds is nil")
	case *BBox:
		if source == nil {
			return nil, errors.Wrap(ErrInvalidBounds, "bounds is nil")
		}
		copied := *source
		return &copied, nil
	case BBox:
		copied := source
		if err := copied.validate(); err != nil {
			return nil, err
		}
		return &copied, nil
	case [4]float64:
		return NewBBox(source[0], source[1], source[2], source[3])
	case []float64:
		if len(source) != 4 {
			return nil, errors.Wrapf(ErrInvalidBounds, "sequence must contain 4 elements, got %d", len(source))
		}
		return NewBBox(source[0], source[1], source[2], source[3])
	case map[string]float64:
		anyValues := make(map[string]interface{}, len(source))
		for k, v := range source {
			anyValues[k] = v
		}
		return bboxFromMap(anyValues)
	case map[string]interface{}:
		return bboxFromMap(source)
	case Extenter:
		extent := source.Extent()
		b, err := NewBBox(extent[0], extent[1], extent[2], extent[3])
		if err != nil {
			return nil, err
		}
		if withCRS, ok := src.(interface{ CRSName() string }); ok {
			b.CRS = withCRS.CRSName()
			b.Projected = crsIsProjected(b.CRS)
		}
		return b, nil
	}
	return nil, errors.Wrapf(ErrInvalidBounds, "unsupported bounds type %T", src)
}

func bboxFromMap(d map[string]interface{}) (*BBox, error) {
	lower := make(map[string]interface{}, len(d))
	for k, v := range d {
		lower[strings.ToLower(k)] = v
	}
	for _, keys := range bboxKeyVariants {
		values := [4]float64{}
		found := true
		for i, key := range keys {
			v, ok := lower[key]
			if !ok {
				found = false
				break
			}
			num, ok := asFloat(v)
			if !ok {
				return nil, errors.Wrapf(ErrInvalidBounds, "value for key '%s' is not numeric: %v", key, v)
			}
			values[i] = num
		}
		if !found {
			continue
		}
		b, err := NewBBox(values[0], values[1], values[2], values[3])
		if err != nil {
			return nil, err
		}
		if crs, ok := lower["crs"].(string); ok {
			b.CRS = crs
			b.Projected = crsIsProjected(crs)
		}
		return b, nil
	}
	return nil, errors.Wrap(ErrInvalidBounds, "map must contain keys like west/south/east/north or minx/miny/maxx/maxy")
}

func asFloat(v interface{}) (float64, bool) {
	switch num := v.(type) {
	case float64:
		return num, true
	case float32:
		return float64(num), true
	case int:
		return float64(num), true
	case int64:
		return float64(num), true
	}
	return 0, false
}

func (b *BBox) validate() error {
	for _, v := range [4]float64{b.West, b.South, b.East, b.North} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.Wrap(ErrInvalidBounds, "bounds values must be finite")
		}
	}
	if b.West >= b.East || b.South >= b.North {
		return errors.Wrapf(ErrInvalidBounds, "require west < east and south < north, got (%f, %f, %f, %f)", b.West, b.South, b.East, b.North)
	}
	return nil
}

// ToTuple returns (west, south, east, north)
func (b *BBox) ToTuple() [4]float64 {
	return [4]float64{b.West, b.South, b.East, b.North}
}

// Center returns the middle point of the box in its own CRS
func (b *BBox) Center() (x, y float64) {
	return (b.West + b.East) / 2.0, (b.South + b.North) / 2.0
}

// String Pretty printing for BBox
func (b *BBox) String() string {
	return fmt.Sprintf("BBox(west=%f, south=%f, east=%f, north=%f, crs=%s)", b.West, b.South, b.East, b.North, b.CRS)
}

// Reproject returns a new bounding box expressed in target CRS. The receiver
// is left untouched. Fails with ErrReprojection when either CRS cannot be
// resolved or the transform produces non-finite coordinates.
func (b *BBox) Reproject(targetCRS string) (*BBox, error) {
	source, err := resolveCRS(b.CRS)
	if err != nil {
		return nil, errors.Wrapf(ErrReprojection, "source CRS '%s' is not resolvable", b.CRS)
	}
	target, err := resolveCRS(targetCRS)
	if err != nil {
		return nil, errors.Wrapf(ErrReprojection, "target CRS '%s' is not resolvable", targetCRS)
	}
	west, south, err := transformPoint(source, target, b.West, b.South)
	if err != nil {
		return nil, err
	}
	east, north, err := transformPoint(source, target, b.East, b.North)
	if err != nil {
		return nil, err
	}
	reprojected, err := NewBBox(west, south, east, north)
	if err != nil {
		return nil, errors.Wrapf(ErrReprojection, "transform to '%s' produced degenerate bounds", targetCRS)
	}
	reprojected.CRS = targetCRS
	reprojected.Projected = crsIsProjected(targetCRS)
	return reprojected, nil
}
