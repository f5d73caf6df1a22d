package osm2terrn

import (
	"log/slog"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// MergedSegment Maximal continuous linear geometry assembled from edges of a
// single category. Name is chosen by majority vote among contributing edges,
// bridge flag is the logical OR of their bridge indicators.
type MergedSegment struct {
	Geom     orb.LineString
	Category string
	Name     string
	IsBridge bool
}

// MergeByCategory groups edges by their category tag and fuses the geometry
// of every group into maximal chains. A group that fuses into one continuous
// line yields a single segment; disconnected or branching groups yield one
// segment per connected piece. A fused piece degenerating to a non-linear
// geometry is logged and dropped; the second return value counts such drops
// so run reports stay complete. Output order is deterministic: categories in
// first-encounter order, chains in contributing-edge order.
func MergeByCategory(edges []Edge) ([]MergedSegment, int) {
	categories := []string{}
	buckets := make(map[string][]Edge)
	for _, edge := range edges {
		category := edge.Category()
		if _, ok := buckets[category]; !ok {
			categories = append(categories, category)
		}
		buckets[category] = append(buckets[category], edge)
	}

	merged := []MergedSegment{}
	skipped := 0
	for _, category := range categories {
		bucket := buckets[category]
		name := representativeName(bucket)
		isBridge := false
		lines := make([]orb.LineString, 0, len(bucket))
		for _, edge := range bucket {
			if edge.IsBridge() {
				isBridge = true
			}
			lines = append(lines, edge.Geom)
		}
		for _, chain := range fuseLines(lines) {
			if err := chainError(chain); err != nil {
				slog.Warn("skipping degenerate fused geometry", "category", category, "error", err)
				skipped++
				continue
			}
			merged = append(merged, MergedSegment{
				Geom:     chain,
				Category: category,
				Name:     name,
				IsBridge: isBridge,
			})
		}
	}
	return merged, skipped
}

// chainError reports why a fused chain cannot become a segment, nil when the
// chain is a valid linear geometry
func chainError(chain orb.LineString) error {
	if len(chain) < 2 {
		return errors.Wrapf(ErrGeometryFusion, "fused chain has %d points", len(chain))
	}
	if getLength(chain) == 0 {
		return errors.Wrap(ErrGeometryFusion, "fused chain has zero length")
	}
	return nil
}

// representativeName picks the most frequent non-empty name among edges.
// Ties are broken by first-encountered order.
func representativeName(edges []Edge) string {
	counts := make(map[string]int)
	order := []string{}
	for _, edge := range edges {
		name := edge.Name()
		if name == "" {
			continue
		}
		if _, ok := counts[name]; !ok {
			order = append(order, name)
		}
		counts[name]++
	}
	best := ""
	bestCount := 0
	for _, name := range order {
		if counts[name] > bestCount {
			best = name
			bestCount = counts[name]
		}
	}
	return best
}

type endpointKey [2]float64

func lineEndpoints(line orb.LineString) (endpointKey, endpointKey) {
	first := line[0]
	last := line[len(line)-1]
	return endpointKey{first.X(), first.Y()}, endpointKey{last.X(), last.Y()}
}

// fuseLines joins lines sharing endpoints into maximal chains. A join happens
// only at endpoints where exactly two line ends meet; branch points and gaps
// start a new chain. Endpoint matching is exact, which is sufficient for
// edges split out of one street graph (shared nodes carry identical
// coordinates).
func fuseLines(lines []orb.LineString) []orb.LineString {
	degree := make(map[endpointKey]int)
	incident := make(map[endpointKey][]int)
	for i, line := range lines {
		if len(line) < 2 {
			continue
		}
		head, tail := lineEndpoints(line)
		degree[head]++
		degree[tail]++
		incident[head] = append(incident[head], i)
		if tail != head {
			incident[tail] = append(incident[tail], i)
		}
	}

	used := make([]bool, len(lines))
	chains := []orb.LineString{}
	for i, line := range lines {
		if used[i] || len(line) < 2 {
			continue
		}
		used[i] = true
		chain := make(orb.LineString, len(line))
		copy(chain, line)

		// grow forward from the tail, then backward from the head
		for {
			next, reversedNext, ok := takeJoinable(chain[len(chain)-1], lines, incident, degree, used)
			if !ok {
				break
			}
			used[next] = true
			piece := lines[next]
			if reversedNext {
				piece = reverseLine(piece)
			}
			chain = append(chain, piece[1:]...)
		}
		for {
			prev, reversedPrev, ok := takeJoinable(chain[0], lines, incident, degree, used)
			if !ok {
				break
			}
			used[prev] = true
			piece := lines[prev]
			if !reversedPrev {
				piece = reverseLine(piece)
			}
			joined := make(orb.LineString, 0, len(piece)+len(chain)-1)
			joined = append(joined, piece...)
			joined = append(joined, chain[1:]...)
			chain = joined
		}
		chains = append(chains, chain)
	}
	return chains
}

// takeJoinable finds the unused line attached to given chain end. Returns its
// index and whether it must be reversed so that its first point matches the
// chain end. Joins are refused at endpoints with more than two incident line
// ends (branches).
func takeJoinable(end orb.Point, lines []orb.LineString, incident map[endpointKey][]int, degree map[endpointKey]int, used []bool) (int, bool, bool) {
	key := endpointKey{end.X(), end.Y()}
	if degree[key] != 2 {
		return 0, false, false
	}
	for _, candidate := range incident[key] {
		if used[candidate] {
			continue
		}
		head, tail := lineEndpoints(lines[candidate])
		if head == key {
			return candidate, false, true
		}
		if tail == key {
			return candidate, true, true
		}
	}
	return 0, false, false
}
