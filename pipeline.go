package osm2terrn

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// GraphNode Street graph node carrying geographic coordinates and an
// optional elevation sample
type GraphNode struct {
	ID           int64
	Lon          float64
	Lat          float64
	Elevation    float64
	HasElevation bool
}

// GraphEdge Street graph edge: an ordered sequence of geographic
// coordinates plus the free-form tag mapping of the underlying way
type GraphEdge struct {
	From int64
	To   int64
	Geom orb.LineString
	Tags Tags
}

// StreetGraph Directed multigraph returned by a graph source
type StreetGraph struct {
	Nodes []GraphNode
	Edges []GraphEdge
}

// Bounds returns the geographic bounding box covering all graph nodes
func (graph *StreetGraph) Bounds() (*BBox, error) {
	if len(graph.Nodes) == 0 {
		return nil, errors.Wrap(ErrInvalidBounds, "street graph has no nodes")
	}
	west, south := graph.Nodes[0].Lon, graph.Nodes[0].Lat
	east, north := west, south
	for _, node := range graph.Nodes[1:] {
		if node.Lon < west {
			west = node.Lon
		}
		if node.Lon > east {
			east = node.Lon
		}
		if node.Lat < south {
			south = node.Lat
		}
		if node.Lat > north {
			north = node.Lat
		}
	}
	bounds, err := NewBBox(west, south, east, north)
	if err != nil {
		return nil, err
	}
	bounds.CRS = "EPSG:4326"
	return bounds, nil
}

// GraphSource External collaborator providing the raw street graph
type GraphSource interface {
	StreetGraph() (*StreetGraph, error)
}

// ElevationGrid Single-band grid of elevation values covering a requested
// geographic extent
type ElevationGrid struct {
	Values [][]float64
	Min    float64
	Max    float64
}

// ElevationSource External collaborator providing elevation rasters
type ElevationSource interface {
	FetchElevation(bounds *BBox) (*ElevationGrid, error)
}

// ResamplePolicy Selects how merged geometries are densified
type ResamplePolicy uint16

const (
	RESAMPLE_UNIFORM = ResamplePolicy(iota + 1)
	RESAMPLE_PRESERVE_VERTICES
	RESAMPLE_ADAPTIVE
)

func (iotaIdx ResamplePolicy) String() string {
	return [...]string{"uniform", "preserve_vertices", "adaptive"}[iotaIdx-1]
}

// Exporter Single-shot batch transform: street graph in, procedural road
// text out. Every run receives immutable inputs and returns new values, so
// independent exporters may run in parallel.
type Exporter struct {
	source          GraphSource
	policy          ResamplePolicy
	step            float64
	minStep         float64
	maxStep         float64
	roadWidth       float64
	widthByCategory map[string]float64
	borderWidth     float64
	borderHeight    float64
	anchorLon       float64
	anchorLat       float64
	hasAnchor       bool
	invertNorth     bool
	worldOffsetX    float64
	worldOffsetZ    float64
	perRoadBlocks   bool
	skipCategories  map[string]struct{}
	verbose         bool
}

// NewExporter prepares an exporter over given graph source. Defaults: 5 m
// uniform resampling, 7 m road width, inverted north axis, cycleway/footway/
// path categories skipped, one aggregated output block.
func NewExporter(source GraphSource, options ...func(*Exporter)) *Exporter {
	exporter := &Exporter{
		source:         source,
		policy:         RESAMPLE_UNIFORM,
		step:           5.0,
		minStep:        2.0,
		maxStep:        10.0,
		roadWidth:      DefaultRoadWidth,
		invertNorth:    true,
		skipCategories: nonDriveCategories,
	}
	for _, option := range options {
		option(exporter)
	}
	return exporter
}

// WithResamplePolicy selects the densification policy
func WithResamplePolicy(policy ResamplePolicy) func(*Exporter) {
	return func(exporter *Exporter) {
		exporter.policy = policy
	}
}

// WithResampleStep sets the step in meters for the uniform policies
func WithResampleStep(step float64) func(*Exporter) {
	return func(exporter *Exporter) {
		exporter.step = step
	}
}

// WithAdaptiveSteps sets the min/max step in meters for the adaptive policy
func WithAdaptiveSteps(minStep, maxStep float64) func(*Exporter) {
	return func(exporter *Exporter) {
		exporter.minStep = minStep
		exporter.maxStep = maxStep
	}
}

// WithRoadWidth sets the default road width in meters
func WithRoadWidth(width float64) func(*Exporter) {
	return func(exporter *Exporter) {
		exporter.roadWidth = width
	}
}

// WithRoadWidthByCategory overrides road width per category label
func WithRoadWidthByCategory(widths map[string]float64) func(*Exporter) {
	return func(exporter *Exporter) {
		exporter.widthByCategory = widths
	}
}

// WithRoadBorder sets border width and height in meters for every road
func WithRoadBorder(width, height float64) func(*Exporter) {
	return func(exporter *Exporter) {
		exporter.borderWidth = width
		exporter.borderHeight = height
	}
}

// WithOriginAnchor fixes the geographic anchor of the local frame. Without
// it the center of the graph's bounding box is used.
func WithOriginAnchor(lon, lat float64) func(*Exporter) {
	return func(exporter *Exporter) {
		exporter.anchorLon = lon
		exporter.anchorLat = lat
		exporter.hasAnchor = true
	}
}

// WithInvertNorth flips the north axis sign for engines whose planar Z grows
// southward
func WithInvertNorth(invert bool) func(*Exporter) {
	return func(exporter *Exporter) {
		exporter.invertNorth = invert
	}
}

// WithWorldOffset shifts the local frame, e.g. world_size/2 for corner-origin
// terrains
func WithWorldOffset(x, z float64) func(*Exporter) {
	return func(exporter *Exporter) {
		exporter.worldOffsetX = x
		exporter.worldOffsetZ = z
	}
}

// WithPerRoadBlocks renders one independent block per road instead of a
// single aggregated block
func WithPerRoadBlocks(perRoad bool) func(*Exporter) {
	return func(exporter *Exporter) {
		exporter.perRoadBlocks = perRoad
	}
}

// WithSkipCategories replaces the default set of categories excluded from
// road export
func WithSkipCategories(categories []string) func(*Exporter) {
	return func(exporter *Exporter) {
		skip := make(map[string]struct{}, len(categories))
		for _, category := range categories {
			skip[category] = struct{}{}
		}
		exporter.skipCategories = skip
	}
}

// WithVerbose enables progress output
func WithVerbose(verbose bool) func(*Exporter) {
	return func(exporter *Exporter) {
		exporter.verbose = verbose
	}
}

// ExportResult Outcome of a pipeline run. Text is assembled only after the
// full road list passed validation, so a failed run leaves no partial
// output.
type ExportResult struct {
	Text     string
	Roads    []*Road
	Origin   Origin
	Bounds   *BBox
	Included int
	Skipped  int
}

// Run executes the whole transform: fetch graph, merge edges by category,
// resample, attach elevation, convert to the local frame, validate roads and
// serialize. Failures local to one segment are logged and excluded; failures
// invalidating the whole geometry abort the run.
func (exporter *Exporter) Run() (*ExportResult, error) {
	graph, err := exporter.source.StreetGraph()
	if err != nil {
		return nil, errors.Wrap(err, "Can't fetch street graph")
	}
	if len(graph.Edges) == 0 {
		return nil, errors.New("street graph has no edges")
	}
	bounds, err := graph.Bounds()
	if err != nil {
		return nil, errors.Wrap(err, "Can't evaluate graph bounds")
	}

	anchorLon, anchorLat := exporter.anchorLon, exporter.anchorLat
	if !exporter.hasAnchor {
		anchorLon, anchorLat = bounds.Center()
	}
	origin := ComputeOrigin(anchorLon, anchorLat)
	frame := LocalFrame{
		Origin:       origin,
		InvertNorth:  exporter.invertNorth,
		WorldOffsetX: exporter.worldOffsetX,
		WorldOffsetZ: exporter.worldOffsetZ,
	}
	if exporter.verbose {
		fmt.Printf("Local frame: %s\n", origin)
	}

	st := time.Now()
	metricEdges := make([]Edge, 0, len(graph.Edges))
	for _, graphEdge := range graph.Edges {
		if len(graphEdge.Geom) < 2 {
			slog.Warn("skipping edge with degenerate geometry", "from", graphEdge.From, "to", graphEdge.To)
			continue
		}
		metricEdges = append(metricEdges, Edge{
			Geom: frame.ProjectLine(graphEdge.Geom),
			Tags: graphEdge.Tags,
		})
	}
	merged, mergeSkipped := MergeByCategory(metricEdges)
	if exporter.verbose {
		fmt.Printf("Merged %d edges into %d segments in %v\n", len(metricEdges), len(merged), time.Since(st))
	}

	elevationIndex := exporter.buildElevationIndex(graph, origin.Zone)

	st = time.Now()
	roads := make([]*Road, 0, len(merged))
	included, skipped := 0, mergeSkipped
	for _, segment := range merged {
		if _, skip := exporter.skipCategories[segment.Category]; skip {
			skipped++
			continue
		}
		resampled, err := exporter.resample(segment.Geom)
		if err != nil {
			return nil, errors.Wrapf(err, "Can't resample segment of category '%s'", segment.Category)
		}
		// elevation is sampled in metric space, before the local frame
		// subtracts the origin
		elevations := elevationIndex.Query(resampled)
		local := frame.ToLocal(resampled)

		points := make([]RoadPoint, len(local))
		for i, point := range local {
			points[i] = RoadPoint{X: point.X(), Y: elevations[i], Z: point.Y()}
		}
		road, err := NewRoad(points, exporter.widthFor(segment.Category),
			WithKind(RoadObjectForCategory(segment.Category, segment.IsBridge, "road")),
			WithName(segment.Name),
			WithBridge(segment.IsBridge),
			WithBorder(exporter.borderWidth, exporter.borderHeight),
		)
		if err != nil {
			slog.Warn("skipping road candidate", "category", segment.Category, "name", segment.Name, "reason", err)
			skipped++
			continue
		}
		roads = append(roads, road)
		included++
	}
	if exporter.verbose {
		fmt.Printf("Built %d roads (%d skipped) in %v\n", included, skipped, time.Since(st))
	}
	slog.Info("export finished", "included", included, "skipped", skipped)

	return &ExportResult{
		Text:     RenderProceduralRoads(roads, exporter.perRoadBlocks),
		Roads:    roads,
		Origin:   origin,
		Bounds:   bounds,
		Included: included,
		Skipped:  skipped,
	}, nil
}

func (exporter *Exporter) resample(line orb.LineString) (orb.LineString, error) {
	switch exporter.policy {
	case RESAMPLE_PRESERVE_VERTICES:
		return ResamplePreserveVertices(line, exporter.step)
	case RESAMPLE_ADAPTIVE:
		return ResampleAdaptive(line, exporter.minStep, exporter.maxStep)
	default:
		return ResampleUniform(line, exporter.step)
	}
}

func (exporter *Exporter) widthFor(category string) float64 {
	if width, ok := exporter.widthByCategory[category]; ok {
		return width
	}
	return exporter.roadWidth
}

func (exporter *Exporter) buildElevationIndex(graph *StreetGraph, zone UTMZone) *ElevationIndex {
	samples := []ElevationSample{}
	for _, node := range graph.Nodes {
		if !node.HasElevation {
			continue
		}
		x, y := zone.Project(node.Lon, node.Lat)
		samples = append(samples, ElevationSample{Point: orb.Point{x, y}, Elevation: node.Elevation})
	}
	if exporter.verbose {
		fmt.Printf("Elevation samples: %d of %d nodes\n", len(samples), len(graph.Nodes))
	}
	return BuildElevationIndex(samples)
}
