package osm2terrn

import (
	"fmt"

	"github.com/paulmach/orb"
)

// Origin Anchor of the local engine-space frame: a geographic point together
// with its projection into the automatically selected UTM zone.
type Origin struct {
	Lon  float64
	Lat  float64
	X    float64
	Y    float64
	Zone UTMZone
}

// String Pretty printing for Origin
func (origin Origin) String() string {
	return fmt.Sprintf("Origin(lon=%f, lat=%f, x0=%f, y0=%f, zone=%s)", origin.Lon, origin.Lat, origin.X, origin.Y, origin.Zone)
}

// ComputeOrigin projects the chosen anchor point into its local UTM zone
// (6 degrees wide, derived from longitude and hemisphere) to get the metric
// origin of the local frame
func ComputeOrigin(lon, lat float64) Origin {
	zone := UTMZoneFromLonLat(lon, lat)
	x, y := zone.Project(lon, lat)
	return Origin{Lon: lon, Lat: lat, X: x, Y: y, Zone: zone}
}

// LocalFrame Converts metric coordinates into a local, origin-centered frame
// matching the target engine's axis convention. Both knobs are explicit
// configuration, never hidden global state: InvertNorth flips the sign of
// the north axis for engines whose Z grows southward, WorldOffsetX/Z shift
// the frame for corner-origin terrains (e.g. world_size / 2).
type LocalFrame struct {
	Origin       Origin
	InvertNorth  bool
	WorldOffsetX float64
	WorldOffsetZ float64
}

// ToLocal subtracts the origin from projected metric points and applies the
// frame's axis convention. Input points must be in the origin's UTM zone.
// Returns (x, z) pairs in local meters.
func (frame LocalFrame) ToLocal(points []orb.Point) []orb.Point {
	local := make([]orb.Point, len(points))
	for i, point := range points {
		x := point.X() - frame.Origin.X + frame.WorldOffsetX
		z := point.Y() - frame.Origin.Y
		if frame.InvertNorth {
			z = -z
		}
		z += frame.WorldOffsetZ
		local[i] = orb.Point{x, z}
	}
	return local
}

// ToMetric maps local (x, z) pairs back into the origin's UTM zone.
// Inverse of ToLocal; used to query elevation samples that live in metric
// space.
func (frame LocalFrame) ToMetric(points []orb.Point) []orb.Point {
	metric := make([]orb.Point, len(points))
	for i, point := range points {
		x := point.X() - frame.WorldOffsetX + frame.Origin.X
		z := point.Y() - frame.WorldOffsetZ
		if frame.InvertNorth {
			z = -z
		}
		metric[i] = orb.Point{x, z + frame.Origin.Y}
	}
	return metric
}

// ProjectLine converts a geographic lon/lat line into the origin's UTM zone
func (frame LocalFrame) ProjectLine(line orb.LineString) orb.LineString {
	projected := make(orb.LineString, len(line))
	for i, point := range line {
		x, y := frame.Origin.Zone.Project(point.Lon(), point.Lat())
		projected[i] = orb.Point{x, y}
	}
	return projected
}
