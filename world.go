package osm2terrn

import (
	"math"

	"github.com/pkg/errors"
)

const (
	minWorldSize = 1024
	maxWorldSize = 1 << 15
)

// BBoxSizeMeters computes the width and height of a geographic bounding box
// in meters by projecting it into the local UTM zone of its centroid
func BBoxSizeMeters(bounds *BBox) (float64, float64, error) {
	if bounds == nil {
		return 0, 0, errors.Wrap(ErrInvalidBounds, "bounds is nil")
	}
	geographic := bounds
	if bounds.Projected {
		reprojected, err := bounds.Reproject("EPSG:4326")
		if err != nil {
			return 0, 0, err
		}
		geographic = reprojected
	}
	cx, cy := geographic.Center()
	zone := UTMZoneFromLonLat(cx, cy)
	minX, minY := zone.Project(geographic.West, geographic.South)
	maxX, maxY := zone.Project(geographic.East, geographic.North)
	return math.Abs(maxX - minX), math.Abs(maxY - minY), nil
}

// ComputeWorldParams derives a square world size in meters and the
// meters-per-pixel resolution for a square heightmap of pageSize pixels
// (2^n+1 recommended by the terrain engine). With snapToPow2 the side is
// rounded up to the next power of two, clamped to [1024, 32768].
func ComputeWorldParams(bounds *BBox, pageSize int, snapToPow2 bool) (int, float64, error) {
	width, height, err := BBoxSizeMeters(bounds)
	if err != nil {
		return 0, 0, err
	}
	side := math.Max(width, height)
	worldSize := int(math.Ceil(side))
	if snapToPow2 {
		worldSize = nextPowerOfTwo(side, minWorldSize, maxWorldSize)
	}
	if pageSize < 2 {
		pageSize = 2
	}
	metersPerPixel := float64(worldSize) / float64(pageSize-1)
	return worldSize, metersPerPixel, nil
}

// nextPowerOfTwo returns the next power-of-two integer >= x, clamped
func nextPowerOfTwo(x float64, minimum, maximum int) int {
	if x <= float64(minimum) {
		return minimum
	}
	n := 1
	for float64(n) < x {
		n <<= 1
	}
	if n > maximum {
		return maximum
	}
	return n
}
