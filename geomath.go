package osm2terrn

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// findDistance returns distance between two points (assuming they are Euclidean)
func findDistance(p, q orb.Point) float64 {
	return planar.Distance(p, q)
}

// getLength returns length for given line (assuming points of the line are Euclidean)
func getLength(line orb.LineString) float64 {
	totalLength := 0.0
	if len(line) < 2 {
		return totalLength
	}
	for i := 1; i < len(line); i++ {
		totalLength += findDistance(line[i-1], line[i])
	}
	return totalLength
}

// cumulativeLengths returns arc length accumulated at every vertex of the line.
// Element 0 is always 0.0, the last element equals getLength(line).
func cumulativeLengths(line orb.LineString) []float64 {
	lengths := make([]float64, len(line))
	acc := 0.0
	for i := 1; i < len(line); i++ {
		acc += findDistance(line[i-1], line[i])
		lengths[i] = acc
	}
	return lengths
}

// pointOnSegment returns a point on given segment using distance from its start
func pointOnSegment(p, q orb.Point, distance float64) orb.Point {
	segment := findDistance(p, q)
	if segment == 0 {
		return p
	}
	fraction := distance / segment
	return orb.Point{
		(1-fraction)*p.X() + fraction*q.X(),
		(1-fraction)*p.Y() + fraction*q.Y(),
	}
}

// interpolateAlong returns the point at given arc distance along the line.
// Distances outside [0, length] clamp to the endpoints.
func interpolateAlong(line orb.LineString, distance float64) orb.Point {
	if distance <= 0 {
		return line[0]
	}
	acc := 0.0
	for i := 1; i < len(line); i++ {
		segment := findDistance(line[i-1], line[i])
		if acc+segment >= distance {
			return pointOnSegment(line[i-1], line[i], distance-acc)
		}
		acc += segment
	}
	return line[len(line)-1]
}

// headingDegrees returns direction angle from p to q in degrees
func headingDegrees(p, q orb.Point) float64 {
	return radiansTodegrees(math.Atan2(q.Y()-p.Y(), q.X()-p.X()))
}

// headingDelta returns absolute heading change between two angles, wrapped
// into [0, 180] degrees
func headingDelta(h1, h2 float64) float64 {
	d := math.Mod(h2-h1+180.0, 360.0)
	if d < 0 {
		d += 360.0
	}
	return math.Abs(d - 180.0)
}

// reverseLine reverses order of points in given line. Returns new slice
func reverseLine(line orb.LineString) orb.LineString {
	inputLen := len(line)
	output := make(orb.LineString, inputLen)
	for i, pt := range line {
		output[inputLen-i-1] = pt
	}
	return output
}

// dedupClose drops consecutive points closer than given tolerance on both axes
func dedupClose(line orb.LineString, tolerance float64) orb.LineString {
	if len(line) == 0 {
		return line
	}
	clean := make(orb.LineString, 0, len(line))
	clean = append(clean, line[0])
	for _, pt := range line[1:] {
		last := clean[len(clean)-1]
		if math.Abs(pt.X()-last.X()) > tolerance || math.Abs(pt.Y()-last.Y()) > tolerance {
			clean = append(clean, pt)
		}
	}
	return clean
}
