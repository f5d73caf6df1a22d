package osm2terrn

import (
	"fmt"
	"strings"
)

// RenderProceduralRoads renders roads into the engine's line-oriented
// procedural road block format. With perRoad false a single aggregated block
// holds one road sub-entry per Road; with perRoad true every Road gets its
// own independent begin/end block so it can be toggled on its own in the
// engine. Roads are rendered strictly in caller order, so identical input
// yields byte-identical output.
func RenderProceduralRoads(roads []*Road, perRoad bool) string {
	if perRoad {
		blocks := make([]string, 0, len(roads))
		for _, road := range roads {
			lines := []string{"begin_procedural_roads"}
			lines = appendRoadEntry(lines, road)
			lines = append(lines, "end_procedural_roads")
			blocks = append(blocks, strings.Join(lines, "\n"))
		}
		return strings.Join(blocks, "\n")
	}
	lines := []string{"begin_procedural_roads"}
	for _, road := range roads {
		lines = appendRoadEntry(lines, road)
	}
	lines = append(lines, "end_procedural_roads")
	return strings.Join(lines, "\n")
}

// appendRoadEntry writes one road sub-entry: optional name and bridge
// comments, width declaration, optional border declarations, type
// declaration, then the bracketed point list with 3-decimal fixed point
// coordinates as (x, elevation, planar z).
func appendRoadEntry(lines []string, road *Road) []string {
	if road.Name != "" {
		lines = append(lines, fmt.Sprintf("  // OSM street: %s", road.Name))
	}
	if road.IsBridge {
		lines = append(lines, "  // OSM: bridge=yes")
	}
	lines = append(lines, "  road")
	lines = append(lines, fmt.Sprintf("    width %.2f", road.Width))
	if road.BorderWidth > 0 {
		lines = append(lines, fmt.Sprintf("    border_width %.2f", road.BorderWidth))
		lines = append(lines, fmt.Sprintf("    border_height %.2f", road.BorderHeight))
	}
	lines = append(lines, fmt.Sprintf("    type %s", road.Kind))
	lines = append(lines, "    points")
	for _, point := range road.Points {
		lines = append(lines, fmt.Sprintf("      %.3f %.3f %.3f", point.X, point.Y, point.Z))
	}
	lines = append(lines, "    end_points")
	lines = append(lines, "  end_road")
	return lines
}
