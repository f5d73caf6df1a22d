package osm2terrn

import (
	"fmt"

	geojson "github.com/paulmach/go.geojson"
	"github.com/paulmach/orb"
)

// PrepareGeoJSONLinestring returns GeoJSON representation of LineString
func PrepareGeoJSONLinestring(line orb.LineString) string {
	pts2d := make([][]float64, len(line))
	for i := range line {
		pts2d[i] = []float64{line[i].X(), line[i].Y()}
	}
	b, err := geojson.NewLineStringGeometry(pts2d).MarshalJSON()
	if err != nil {
		fmt.Printf("Warning. Can not convert geometry to geojson format: %s", err.Error())
		return ""
	}
	return string(b)
}

// PrepareGeoJSONPoint returns GeoJSON representation of Point
func PrepareGeoJSONPoint(pt orb.Point) string {
	b, err := geojson.NewPointGeometry([]float64{pt.X(), pt.Y()}).MarshalJSON()
	if err != nil {
		fmt.Printf("Warning. Can not convert geometry to geojson format: %s", err.Error())
		return ""
	}
	return string(b)
}

// MergedSegmentsToGeoJSON renders merged segments as a GeoJSON feature
// collection for debugging in external viewers
func MergedSegmentsToGeoJSON(segments []MergedSegment) (string, error) {
	fc := geojson.NewFeatureCollection()
	for _, segment := range segments {
		pts2d := make([][]float64, len(segment.Geom))
		for i := range segment.Geom {
			pts2d[i] = []float64{segment.Geom[i].X(), segment.Geom[i].Y()}
		}
		feature := geojson.NewLineStringFeature(pts2d)
		feature.SetProperty("highway", segment.Category)
		feature.SetProperty("name", segment.Name)
		feature.SetProperty("bridge", segment.IsBridge)
		fc.AddFeature(feature)
	}
	b, err := fc.MarshalJSON()
	if err != nil {
		return "", err
	}
	return string(b), nil
}
