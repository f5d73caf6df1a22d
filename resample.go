package osm2terrn

import (
	"math"
	"sort"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// dedupTolerance Tolerance for dropping duplicate consecutive points
const dedupTolerance = 1e-9

// ResampleUniform inserts vertices at equal arc-length intervals of step
// meters. Original vertices stay in the output, so the result follows the
// input polyline and keeps its arc length. Geometries shorter than step pass
// through unchanged. Endpoints of the input are preserved exactly.
func ResampleUniform(line orb.LineString, step float64) (orb.LineString, error) {
	if step <= 0 {
		return nil, errors.Wrapf(ErrInvalidParameter, "resample step must be positive, got %f", step)
	}
	length := getLength(line)
	if length <= step {
		return line, nil
	}
	n := int(math.Ceil(length / step))
	distances := make([]float64, 0, n+1+len(line))
	for i := 0; i <= n; i++ {
		distances = append(distances, length*float64(i)/float64(n))
	}
	distances = append(distances, cumulativeLengths(line)...)
	sort.Float64s(distances)

	resampled := make(orb.LineString, 0, len(distances))
	previous := math.Inf(-1)
	for _, distance := range distances {
		if distance-previous <= dedupTolerance {
			continue
		}
		resampled = append(resampled, interpolateAlong(line, distance))
		previous = distance
	}
	resampled[0] = line[0]
	resampled[len(resampled)-1] = line[len(line)-1]
	return resampled, nil
}

// ResamplePreserveVertices densifies like ResampleUniform but guarantees that
// every original vertex remains present in the output, inserting points only
// along straight sub-segments longer than step. No corner smoothing.
func ResamplePreserveVertices(line orb.LineString, step float64) (orb.LineString, error) {
	if step <= 0 {
		return nil, errors.Wrapf(ErrInvalidParameter, "resample step must be positive, got %f", step)
	}
	if getLength(line) <= step {
		return line, nil
	}
	resampled := orb.LineString{line[0]}
	for i := 0; i < len(line)-1; i++ {
		p0 := line[i]
		p1 := line[i+1]
		segment := findDistance(p0, p1)
		if segment > step {
			inserts := int(math.Floor(segment / step))
			for j := 1; j <= inserts; j++ {
				d := float64(j) * step
				if d < segment {
					resampled = append(resampled, pointOnSegment(p0, p1, d))
				}
			}
		}
		resampled = append(resampled, p1)
	}
	return resampled, nil
}

// ResampleAdaptive varies the step length per-location between minStep and
// maxStep inversely with local heading change: sharper turns get denser
// sampling. Heading changes are smoothed with a small moving average before
// mapping to step size. Endpoints are preserved exactly and duplicate
// consecutive points are removed from the result.
func ResampleAdaptive(line orb.LineString, minStep, maxStep float64) (orb.LineString, error) {
	if minStep <= 0 || maxStep < minStep {
		return nil, errors.Wrapf(ErrInvalidParameter, "require 0 < min_step <= max_step, got (%f, %f)", minStep, maxStep)
	}
	length := getLength(line)
	if length <= minStep {
		return line, nil
	}
	if len(line) < 3 {
		return ResampleUniform(line, 0.5*(minStep+maxStep))
	}

	headings := make([]float64, len(line)-1)
	for i := 0; i < len(line)-1; i++ {
		headings[i] = headingDegrees(line[i], line[i+1])
	}
	// normalized heading change per vertex, zero at both endpoints
	norm := make([]float64, len(line))
	for i := 1; i < len(headings); i++ {
		norm[i] = math.Min(headingDelta(headings[i-1], headings[i])/180.0, 1.0)
	}
	if len(norm) >= 5 {
		norm = movingAverage(norm, 5)
	}
	stepPerVertex := make([]float64, len(norm))
	for i, v := range norm {
		stepPerVertex[i] = maxStep - (maxStep-minStep)*v
	}

	cumlen := cumulativeLengths(line)
	stepAt := func(s float64) float64 {
		idx := 0
		for idx < len(cumlen)-1 && cumlen[idx+1] <= s {
			idx++
		}
		return math.Max(minStep, math.Min(maxStep, stepPerVertex[idx]))
	}

	resampled := orb.LineString{line[0]}
	distance := 0.0
	for distance < length {
		distance = math.Min(length, distance+stepAt(distance))
		resampled = append(resampled, interpolateAlong(line, distance))
	}
	resampled[len(resampled)-1] = line[len(line)-1]
	return dedupClose(resampled, dedupTolerance), nil
}

// movingAverage smooths values with a centered window, mirroring a "same"
// mode convolution against a uniform kernel (edges average fewer samples)
func movingAverage(values []float64, window int) []float64 {
	half := window / 2
	smoothed := make([]float64, len(values))
	for i := range values {
		sum := 0.0
		for j := i - half; j <= i+half; j++ {
			if j >= 0 && j < len(values) {
				sum += values[j]
			}
		}
		smoothed[i] = sum / float64(window)
	}
	return smoothed
}
