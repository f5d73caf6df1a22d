package osm2terrn

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

// PrepareWKTLinestring returns WKT representation of LineString
func PrepareWKTLinestring(line orb.LineString) string {
	ptsStr := make([]string, len(line))
	for i := range line {
		ptsStr[i] = fmt.Sprintf("%f %f", line[i].X(), line[i].Y())
	}
	return fmt.Sprintf("LINESTRING(%s)", strings.Join(ptsStr, ","))
}

// PrepareWKTPoint returns WKT representation of Point
func PrepareWKTPoint(pt orb.Point) string {
	return fmt.Sprintf("POINT(%f %f)", pt.X(), pt.Y())
}

// MergedSegmentsToWKT renders merged segments as semicolon-separated CSV with
// WKT geometry, for debugging in GIS tools
func MergedSegmentsToWKT(segments []MergedSegment) (string, error) {
	var builder strings.Builder
	writer := csv.NewWriter(&builder)
	writer.Comma = ';'
	if err := writer.Write([]string{"geom", "highway", "name", "bridge"}); err != nil {
		return "", err
	}
	for _, segment := range segments {
		record := []string{
			PrepareWKTLinestring(segment.Geom),
			segment.Category,
			segment.Name,
			strconv.FormatBool(segment.IsBridge),
		}
		if err := writer.Write(record); err != nil {
			return "", err
		}
	}
	writer.Flush()
	return builder.String(), writer.Error()
}
