package osm2terrn

import (
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMergeResampleElevateSerialize walks two fragmented primary edges
// through every pipeline stage by hand
func TestMergeResampleElevateSerialize(t *testing.T) {
	edges := []Edge{
		{Geom: orb.LineString{{0, 0}, {10, 0}}, Tags: Tags{"highway": "primary"}},
		{Geom: orb.LineString{{10, 0}, {20, 0}}, Tags: Tags{"highway": "primary"}},
	}
	merged, mergeSkipped := MergeByCategory(edges)
	require.Len(t, merged, 1)
	assert.Equal(t, 0, mergeSkipped)
	assert.Equal(t, orb.Point{0, 0}, merged[0].Geom[0])
	assert.Equal(t, orb.Point{20, 0}, merged[0].Geom[len(merged[0].Geom)-1])

	resampled, err := ResampleUniform(merged[0].Geom, 5.0)
	require.NoError(t, err)
	require.Len(t, resampled, 5)

	index := BuildElevationIndex([]ElevationSample{
		{Point: orb.Point{0, 0}, Elevation: 10},
		{Point: orb.Point{20, 0}, Elevation: 20},
	})
	elevations := index.Query(resampled)
	assert.Equal(t, 10.0, elevations[0])
	assert.Equal(t, 10.0, elevations[1])
	assert.Equal(t, 20.0, elevations[3])
	assert.Equal(t, 20.0, elevations[4])

	points := make([]RoadPoint, len(resampled))
	for i, pt := range resampled {
		points[i] = RoadPoint{X: pt.X(), Y: elevations[i], Z: pt.Y()}
	}
	road, err := NewRoad(points, 7.0, WithKind("road"))
	require.NoError(t, err)

	text := RenderProceduralRoads([]*Road{road}, false)
	assert.Equal(t, 1, strings.Count(text, "  road\n"))
	pointLines := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, "      ") {
			pointLines++
		}
	}
	assert.Equal(t, 5, pointLines)
}

type stubGraphSource struct {
	graph *StreetGraph
	err   error
}

func (s *stubGraphSource) StreetGraph() (*StreetGraph, error) {
	return s.graph, s.err
}

func testGraph() *StreetGraph {
	// a short primary street near Luis Guillón plus a footpath to be skipped
	return &StreetGraph{
		Nodes: []GraphNode{
			{ID: 1, Lon: -58.4450, Lat: -34.7900, Elevation: 12.0, HasElevation: true},
			{ID: 2, Lon: -58.4440, Lat: -34.7900},
			{ID: 3, Lon: -58.4430, Lat: -34.7900, Elevation: 18.0, HasElevation: true},
			{ID: 4, Lon: -58.4450, Lat: -34.7910},
			{ID: 5, Lon: -58.4440, Lat: -34.7910},
		},
		Edges: []GraphEdge{
			{From: 1, To: 2, Geom: orb.LineString{{-58.4450, -34.7900}, {-58.4440, -34.7900}}, Tags: Tags{"highway": "primary", "name": "Avenida Central"}},
			{From: 2, To: 3, Geom: orb.LineString{{-58.4440, -34.7900}, {-58.4430, -34.7900}}, Tags: Tags{"highway": "primary", "name": "Avenida Central"}},
			{From: 4, To: 5, Geom: orb.LineString{{-58.4450, -34.7910}, {-58.4440, -34.7910}}, Tags: Tags{"highway": "footway"}},
		},
	}
}

func TestExporterRun(t *testing.T) {
	source := &stubGraphSource{graph: testGraph()}
	result, err := NewExporter(source).Run()
	require.NoError(t, err)

	assert.Equal(t, 1, result.Included)
	assert.Equal(t, 1, result.Skipped) // footway filtered out
	require.Len(t, result.Roads, 1)

	road := result.Roads[0]
	assert.Equal(t, "road", road.Kind)
	assert.Equal(t, "Avenida Central", road.Name)
	assert.Equal(t, DefaultRoadWidth, road.Width)
	// both fragments fused: the street is ~180 m long, resampled at 5 m
	assert.Greater(t, len(road.Points), 20)
	// elevation attached from the two node samples
	assert.Equal(t, 12.0, road.Points[0].Y)
	assert.Equal(t, 18.0, road.Points[len(road.Points)-1].Y)

	assert.True(t, strings.HasPrefix(result.Text, "begin_procedural_roads"))
	assert.True(t, strings.HasSuffix(result.Text, "end_procedural_roads"))
	assert.Contains(t, result.Text, "// OSM street: Avenida Central")

	// deterministic output
	again, err := NewExporter(source).Run()
	require.NoError(t, err)
	assert.Equal(t, result.Text, again.Text)
}

func TestExporterRunPerRoadBlocks(t *testing.T) {
	source := &stubGraphSource{graph: testGraph()}
	result, err := NewExporter(source,
		WithPerRoadBlocks(true),
		WithSkipCategories(nil),
	).Run()
	require.NoError(t, err)
	assert.Equal(t, 2, result.Included)
	assert.Equal(t, 2, strings.Count(result.Text, "begin_procedural_roads"))
}

func TestExporterRunOptions(t *testing.T) {
	source := &stubGraphSource{graph: testGraph()}
	result, err := NewExporter(source,
		WithResamplePolicy(RESAMPLE_ADAPTIVE),
		WithAdaptiveSteps(2.0, 15.0),
		WithRoadWidth(4.0),
		WithRoadWidthByCategory(map[string]float64{"primary": 9.5}),
		WithRoadBorder(1.0, 0.3),
		WithInvertNorth(false),
		WithWorldOffset(512, 512),
	).Run()
	require.NoError(t, err)
	require.Len(t, result.Roads, 1)
	assert.Equal(t, 9.5, result.Roads[0].Width)
	assert.Equal(t, 1.0, result.Roads[0].BorderWidth)
	assert.Contains(t, result.Text, "border_width 1.00")
}

func TestExporterRunCountsMergeSkips(t *testing.T) {
	graph := testGraph()
	graph.Edges = append(graph.Edges, GraphEdge{
		From: 6, To: 6,
		Geom: orb.LineString{{-58.4445, -34.7905}, {-58.4445, -34.7905}},
		Tags: Tags{"highway": "secondary"},
	})
	result, err := NewExporter(&stubGraphSource{graph: graph}).Run()
	require.NoError(t, err)
	assert.Equal(t, 1, result.Included)
	// one footway filtered, one zero-length secondary dropped during merge
	assert.Equal(t, 2, result.Skipped)
}

func TestExporterRunSourceFailure(t *testing.T) {
	source := &stubGraphSource{err: errors.New("overpass timeout")}
	_, err := NewExporter(source).Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "overpass timeout")
}

func TestExporterRunEmptyGraph(t *testing.T) {
	source := &stubGraphSource{graph: &StreetGraph{}}
	_, err := NewExporter(source).Run()
	require.Error(t, err)
}

func TestStreetGraphBounds(t *testing.T) {
	bounds, err := testGraph().Bounds()
	require.NoError(t, err)
	assert.Equal(t, [4]float64{-58.4450, -34.7910, -58.4430, -34.7900}, bounds.ToTuple())
	assert.Equal(t, "EPSG:4326", bounds.CRS)
	assert.False(t, bounds.Projected)
}
