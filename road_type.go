package osm2terrn

// DefaultRoadWidth Road width in meters used when no per-category override
// is configured
const DefaultRoadWidth = 7.0

var (
	// roadObjectByCategory maps OSM way classifications onto the engine's
	// procedural object types
	roadObjectByCategory = map[string]string{
		"motorway":      "road",
		"motorway_link": "road",
		"trunk":         "road",
		"trunk_link":    "road",
		"primary":       "road",
		"primary_link":  "road",
		"secondary":     "road",
		"tertiary":      "road",
		"residential":   "road-both",
		"living_street": "road-both",
		"service":       "road-park",
		"footway":       "road",
		"path":          "road",
		"track":         "road",
	}

	// nonDriveCategories is the default skip set: path-like ways stay
	// available for terrain painting but never become procedural roads
	nonDriveCategories = map[string]struct{}{
		"cycleway": {},
		"footway":  {},
		"path":     {},
	}
)

// RoadObjectForCategory maps a way classification onto the engine object
// type, falling back when the category is unmapped. Bridges always render
// as the elevated object type.
func RoadObjectForCategory(category string, isBridge bool, fallback string) string {
	if isBridge {
		return "roadbridge"
	}
	if category == "" {
		return fallback
	}
	if object, ok := roadObjectByCategory[category]; ok {
		return object
	}
	return fallback
}
