package osm2terrn

import (
	"math"
	"testing"
)

func TestUTMZoneFromLonLat(t *testing.T) {
	cases := []struct {
		lon, lat float64
		number   int
		north    bool
		epsg     int
	}{
		{-58.44, -34.79, 21, false, 32721}, // Buenos Aires
		{37.64, 55.75, 37, true, 32637},    // Moscow
		{-122.42, 37.77, 10, true, 32610},  // San Francisco
		{0.0, 0.0, 31, true, 32631},
		{179.99, -45.0, 60, false, 32760},
	}
	for _, c := range cases {
		zone := UTMZoneFromLonLat(c.lon, c.lat)
		if zone.Number != c.number || zone.North != c.north {
			t.Errorf("Zone for (%f, %f) must be %d (north=%t), but got %d (north=%t)", c.lon, c.lat, c.number, c.north, zone.Number, zone.North)
		}
		if zone.EPSG() != c.epsg {
			t.Errorf("EPSG for (%f, %f) must be %d, but got %d", c.lon, c.lat, c.epsg, zone.EPSG())
		}
	}
}

func TestUTMRoundTrip(t *testing.T) {
	points := [][2]float64{
		{-58.44, -34.79},
		{-58.46, -34.82},
		{37.6417350769043, 55.751849391735284},
		{-122.4194, 37.7749},
		{13.4, 52.52},
	}
	for _, p := range points {
		zone := UTMZoneFromLonLat(p[0], p[1])
		x, y := zone.Project(p[0], p[1])
		lon, lat := zone.Unproject(x, y)
		if math.Abs(lon-p[0]) > 1e-7 || math.Abs(lat-p[1]) > 1e-7 {
			t.Errorf("Round trip for (%f, %f) drifted to (%f, %f)", p[0], p[1], lon, lat)
		}
	}
}

func TestUTMKnownCoordinate(t *testing.T) {
	// Tour Eiffel, zone 31N; reference easting/northing from proj
	zone := UTMZone{Number: 31, North: true}
	x, y := zone.Project(2.2945, 48.8584)
	if math.Abs(x-448252.0) > 50.0 {
		t.Errorf("Easting must be close to 448252, but got %f", x)
	}
	if math.Abs(y-5411935.0) > 50.0 {
		t.Errorf("Northing must be close to 5411935, but got %f", y)
	}
}

func TestWebMercatorRoundTrip(t *testing.T) {
	lon, lat := -58.44, -34.79
	x, y := epsg4326To3857(lon, lat)
	backLon, backLat := epsg3857To4326(x, y)
	if math.Abs(backLon-lon) > 1e-7 || math.Abs(backLat-lat) > 1e-7 {
		t.Errorf("Round trip for (%f, %f) drifted to (%f, %f)", lon, lat, backLon, backLat)
	}
}

func TestSouthernHemisphereNorthing(t *testing.T) {
	zone := UTMZoneFromLonLat(-58.44, -34.79)
	_, y := zone.Project(-58.44, -34.79)
	if y < 0 || y > utmFalseNorthing {
		t.Errorf("Southern hemisphere northing must be within [0, %f], but got %f", utmFalseNorthing, y)
	}
}
