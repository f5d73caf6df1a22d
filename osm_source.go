package osm2terrn

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/pkg/errors"
)

var (
	// negligibleCategories Way classifications that never contribute road
	// geometry and are dropped at scan time
	negligibleCategories = map[string]struct{}{
		"construction": {},
		"proposed":     {},
		"raceway":      {},
		"bridleway":    {},
		"rest_area":    {},
		"abandoned":    {},
		"planned":      {},
		"razed":        {},
		"dismantled":   {},
		"disused":      {},
		"platform":     {},
		"bus_stop":     {},
		"elevator":     {},
		"escalator":    {},
	}
)

// OSMFileSource Graph source backed by a *.osm.pbf extract. Ways carrying a
// highway tag are split at shared nodes into graph edges; node elevation
// samples are read from the `ele` tag when present.
type OSMFileSource struct {
	filename string
	verbose  bool
}

// NewOSMFileSource prepares a graph source reading given PBF file
func NewOSMFileSource(filename string, verbose bool) *OSMFileSource {
	return &OSMFileSource{filename: filename, verbose: verbose}
}

// StreetGraph scans the file twice (ways first, then nodes) and assembles
// the street multigraph
func (source *OSMFileSource) StreetGraph() (*StreetGraph, error) {
	f, err := os.Open(source.filename)
	if err != nil {
		return nil, errors.Wrap(err, "File open")
	}
	defer f.Close()

	scannerWays := osmpbf.New(context.Background(), f, 4)
	defer scannerWays.Close()

	type scannedWay struct {
		nodes osm.WayNodes
		tags  Tags
	}
	ways := []scannedWay{}
	nodesSeen := make(map[osm.NodeID]struct{})

	if source.verbose {
		fmt.Printf("Scanning ways...")
	}
	st := time.Now()
	for scannerWays.Scan() {
		obj := scannerWays.Object()
		if obj.ObjectID().Type() != "way" {
			continue
		}
		way := obj.(*osm.Way)
		tagMap := way.TagMap()
		category, ok := tagMap["highway"]
		if !ok {
			continue
		}
		if _, negligible := negligibleCategories[category]; negligible {
			continue
		}
		if len(way.Nodes) < 2 {
			continue
		}
		tags := make(Tags, len(tagMap))
		for k, v := range tagMap {
			tags[k] = v
		}
		prepared := scannedWay{
			nodes: make(osm.WayNodes, len(way.Nodes)),
			tags:  tags,
		}
		copy(prepared.nodes, way.Nodes)
		ways = append(ways, prepared)
		for _, wayNode := range way.Nodes {
			nodesSeen[wayNode.ID] = struct{}{}
		}
	}
	if scannerWays.Err() != nil {
		return nil, errors.Wrap(scannerWays.Err(), "Scanner error on Ways")
	}
	if source.verbose {
		fmt.Printf("Done in %v\n\tWays: %d\n", time.Since(st), len(ways))
	}

	if _, err := f.Seek(0, 0); err != nil {
		return nil, errors.Wrap(err, "Can't repeat seeking")
	}
	scannerNodes := osmpbf.New(context.Background(), f, 4)
	defer scannerNodes.Close()

	if source.verbose {
		fmt.Printf("Scanning nodes...")
	}
	st = time.Now()
	nodes := make(map[osm.NodeID]GraphNode)
	for scannerNodes.Scan() {
		obj := scannerNodes.Object()
		if obj.ObjectID().Type() != "node" {
			continue
		}
		node := obj.(*osm.Node)
		if _, ok := nodesSeen[node.ID]; !ok {
			continue
		}
		delete(nodesSeen, node.ID)
		graphNode := GraphNode{
			ID:  int64(node.ID),
			Lon: node.Lon,
			Lat: node.Lat,
		}
		if ele, ok := node.TagMap()["ele"]; ok {
			if elevation, err := strconv.ParseFloat(ele, 64); err == nil {
				graphNode.Elevation = elevation
				graphNode.HasElevation = true
			}
		}
		nodes[node.ID] = graphNode
	}
	if scannerNodes.Err() != nil {
		return nil, errors.Wrap(scannerNodes.Err(), "Scanner error on Nodes")
	}
	if source.verbose {
		fmt.Printf("Done in %v\n\tNodes: %d\n", time.Since(st), len(nodes))
	}

	// an interior node shared by several ways is an intersection; ways are
	// split there so the merger can rebuild maximal chains per category
	useCount := make(map[osm.NodeID]int)
	for _, way := range ways {
		for i, wayNode := range way.nodes {
			if i == 0 || i == len(way.nodes)-1 {
				useCount[wayNode.ID] += 2
			} else {
				useCount[wayNode.ID]++
			}
		}
	}

	if source.verbose {
		fmt.Printf("Preparing edges...")
	}
	st = time.Now()
	graph := &StreetGraph{}
	for _, way := range ways {
		var sourceID osm.NodeID
		geometry := orb.LineString{}
		broken := false
		for i, wayNode := range way.nodes {
			node, ok := nodes[wayNode.ID]
			if !ok {
				broken = true
				break
			}
			point := orb.Point{node.Lon, node.Lat}
			if i == 0 {
				sourceID = wayNode.ID
				geometry = orb.LineString{point}
				continue
			}
			geometry = append(geometry, point)
			if useCount[wayNode.ID] > 1 || i == len(way.nodes)-1 {
				graph.Edges = append(graph.Edges, GraphEdge{
					From: int64(sourceID),
					To:   int64(wayNode.ID),
					Geom: geometry,
					Tags: way.tags,
				})
				sourceID = wayNode.ID
				geometry = orb.LineString{point}
			}
		}
		if broken {
			fmt.Printf("\n\t[WARNING]: Way with missing node met, skipping rest of it\n")
		}
	}
	ids := make([]osm.NodeID, 0, len(nodes))
	for id := range nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		graph.Nodes = append(graph.Nodes, nodes[id])
	}
	if source.verbose {
		fmt.Printf("Done in %v\n\tEdges: %d\n", time.Since(st), len(graph.Edges))
	}
	return graph, nil
}
