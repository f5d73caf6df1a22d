package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/Joako360/osm2terrn"
)

var (
	osmFileName = flag.String("file", "my_graph.osm.pbf", "Filename of *.osm.pbf file")
	out         = flag.String("out", "terrain_roads.tobj", "Filename of output procedural roads file")
	policy      = flag.String("resample", "uniform", "Resampling policy. Expected values: uniform / vertices / adaptive")
	step        = flag.Float64("step", 5.0, "Resampling step in meters (uniform / vertices policies)")
	minStep     = flag.Float64("min-step", 2.0, "Minimum step in meters (adaptive policy)")
	maxStep     = flag.Float64("max-step", 10.0, "Maximum step in meters (adaptive policy)")
	width       = flag.Float64("width", osm2terrn.DefaultRoadWidth, "Road width in meters")
	perRoad     = flag.Bool("per-road", false, "Write one independent block per road instead of a single aggregated block")
	invertNorth = flag.Bool("invert-north", true, "Flip north axis sign to match the engine's Z convention")
	offsetX     = flag.Float64("offset-x", 0, "World offset along X in meters (e.g. world_size/2 for corner-origin terrains)")
	offsetZ     = flag.Float64("offset-z", 0, "World offset along Z in meters")
	originLon   = flag.Float64("origin-lon", 0, "Longitude of local frame anchor (defaults to graph bbox center)")
	originLat   = flag.Float64("origin-lat", 0, "Latitude of local frame anchor (defaults to graph bbox center)")
	skipTags    = flag.String("skip", "cycleway,footway,path", "Categories excluded from road export (separated by commas)")
	geojsonOut  = flag.String("geojson", "", "Optional filename for GeoJSON debug dump of merged segments")
	wktOut      = flag.String("wkt", "", "Optional filename for WKT (CSV) debug dump of merged segments")
	pageSize    = flag.Int("page-size", 1025, "Heightmap page size in pixels for world sizing")
	verbose     = flag.Bool("verbose", true, "Print progress")
)

func main() {
	flag.Parse()

	resamplePolicy := osm2terrn.RESAMPLE_UNIFORM
	switch *policy {
	case "uniform":
	case "vertices":
		resamplePolicy = osm2terrn.RESAMPLE_PRESERVE_VERTICES
	case "adaptive":
		resamplePolicy = osm2terrn.RESAMPLE_ADAPTIVE
	default:
		fmt.Printf("Unknown resampling policy '%s'\n", *policy)
		os.Exit(1)
	}

	source := osm2terrn.NewOSMFileSource(*osmFileName, *verbose)
	options := []func(*osm2terrn.Exporter){
		osm2terrn.WithResamplePolicy(resamplePolicy),
		osm2terrn.WithResampleStep(*step),
		osm2terrn.WithAdaptiveSteps(*minStep, *maxStep),
		osm2terrn.WithRoadWidth(*width),
		osm2terrn.WithPerRoadBlocks(*perRoad),
		osm2terrn.WithInvertNorth(*invertNorth),
		osm2terrn.WithWorldOffset(*offsetX, *offsetZ),
		osm2terrn.WithSkipCategories(strings.Split(*skipTags, ",")),
		osm2terrn.WithVerbose(*verbose),
	}
	if *originLon != 0 || *originLat != 0 {
		options = append(options, osm2terrn.WithOriginAnchor(*originLon, *originLat))
	}

	result, err := osm2terrn.NewExporter(source, options...).Run()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	if err := os.WriteFile(*out, []byte(result.Text+"\n"), 0644); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d roads to '%s' (%d segments skipped)\n", result.Included, *out, result.Skipped)

	worldSize, metersPerPixel, err := osm2terrn.ComputeWorldParams(result.Bounds, *pageSize, true)
	if err != nil {
		fmt.Printf("Can't evaluate world sizing: %s\n", err)
	} else {
		fmt.Printf("Suggested world size: %d m (%.3f m/pixel at page size %d)\n", worldSize, metersPerPixel, *pageSize)
	}

	if *geojsonOut != "" || *wktOut != "" {
		graph, err := source.StreetGraph()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		edges := make([]osm2terrn.Edge, 0, len(graph.Edges))
		for _, graphEdge := range graph.Edges {
			if len(graphEdge.Geom) < 2 {
				continue
			}
			edges = append(edges, osm2terrn.Edge{Geom: graphEdge.Geom, Tags: graphEdge.Tags})
		}
		segments, _ := osm2terrn.MergeByCategory(edges)
		if *geojsonOut != "" {
			dump, err := osm2terrn.MergedSegmentsToGeoJSON(segments)
			if err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
			if err := os.WriteFile(*geojsonOut, []byte(dump), 0644); err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
			fmt.Printf("Wrote merged segments debug geometry to '%s'\n", *geojsonOut)
		}
		if *wktOut != "" {
			dump, err := osm2terrn.MergedSegmentsToWKT(segments)
			if err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
			if err := os.WriteFile(*wktOut, []byte(dump), 0644); err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
			fmt.Printf("Wrote merged segments WKT dump to '%s'\n", *wktOut)
		}
	}
}
