package osm2terrn

import (
	"fmt"
	"strings"

	"github.com/paulmach/orb"
)

// Tags Free-form tag mapping attached to a street graph edge.
// Values may be scalars (string, numeric) or lists of scalars, depending on
// how the graph source aggregated parallel ways.
type Tags map[string]interface{}

// First returns the first scalar value for given key as a string.
// List values collapse to their first element; missing keys yield "".
func (t Tags) First(key string) string {
	v, ok := t[key]
	if !ok {
		return ""
	}
	return firstScalar(v)
}

// FirstLower returns the first scalar value for given key lowercased.
// Suitable for classification tags (highway, bridge, surface).
func (t Tags) FirstLower(key string) string {
	return strings.ToLower(t.First(key))
}

// Bool interprets the tag value as a boolean flag.
// "yes"/"true"/"1" match, case-insensitive; anything else is false.
func (t Tags) Bool(key string) bool {
	switch t.FirstLower(key) {
	case "yes", "true", "1":
		return true
	}
	return false
}

// firstScalar normalizes a list-or-scalar tag value into a single string
func firstScalar(v interface{}) string {
	switch value := v.(type) {
	case string:
		return strings.TrimSpace(value)
	case []string:
		if len(value) == 0 {
			return ""
		}
		return strings.TrimSpace(value[0])
	case []interface{}:
		if len(value) == 0 {
			return ""
		}
		return firstScalar(value[0])
	case nil:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", value))
	}
}

// Edge Planar linear geometry paired with its source tags.
// Geometry must contain at least 2 points and live in a metric CRS.
// Immutable once produced by the graph source.
type Edge struct {
	Geom orb.LineString
	Tags Tags
}

// Category returns the classification label driving merge grouping and the
// output `type` declaration. Missing or empty tags map to "unknown".
func (edge Edge) Category() string {
	category := edge.Tags.FirstLower("highway")
	if category == "" {
		return "unknown"
	}
	return category
}

// Name returns the display name of the underlying street, "" if unnamed
func (edge Edge) Name() string {
	return edge.Tags.First("name")
}

// IsBridge reports whether the edge carries a bridge indicator
func (edge Edge) IsBridge() bool {
	return edge.Tags.Bool("bridge")
}
