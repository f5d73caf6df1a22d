package osm2terrn

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	earthR   = 20037508.34
	pi180    = math.Pi / 180.0
	pi180Rev = 180.0 / math.Pi

	wgs84A           = 6378137.0
	wgs84F           = 1.0 / 298.257223563
	utmScale         = 0.9996
	utmFalseEasting  = 500000.0
	utmFalseNorthing = 10000000.0
)

var (
	wgs84E2  = wgs84F * (2.0 - wgs84F)
	wgs84EP2 = wgs84E2 / (1.0 - wgs84E2)
)

// degreesToRadians deg = r * pi / 180
func degreesToRadians(d float64) float64 {
	return d * pi180
}

// radiansTodegrees r = deg * 180 / pi
func radiansTodegrees(d float64) float64 {
	return d * pi180Rev
}

func epsg4326To3857(lon, lat float64) (float64, float64) {
	x := lon * earthR / 180
	y := math.Log(math.Tan((90+lat)*math.Pi/360)) / (math.Pi / 180)
	y = y * earthR / 180
	return x, y
}

func epsg3857To4326(x, y float64) (float64, float64) {
	lon := x * 180 / earthR
	lat := math.Atan(math.Exp(y*math.Pi/earthR))*360/math.Pi - 90
	return lon, lat
}

// UTMZone Universal Transverse Mercator zone (6 degrees wide)
type UTMZone struct {
	Number int
	North  bool
}

// UTMZoneFromLonLat selects the local zone covering given anchor point
func UTMZoneFromLonLat(lon, lat float64) UTMZone {
	zone := int(math.Floor((lon+180.0)/6.0)) + 1
	if zone < 1 {
		zone = 1
	}
	if zone > 60 {
		zone = 60
	}
	return UTMZone{Number: zone, North: lat >= 0.0}
}

// EPSG returns the authority code of the zone (326xx north / 327xx south)
func (zone UTMZone) EPSG() int {
	if zone.North {
		return 32600 + zone.Number
	}
	return 32700 + zone.Number
}

// CentralMeridian returns the zone's central meridian in degrees
func (zone UTMZone) CentralMeridian() float64 {
	return float64(zone.Number)*6.0 - 183.0
}

func (zone UTMZone) String() string {
	return fmt.Sprintf("EPSG:%d", zone.EPSG())
}

// meridianArc returns the meridional arc length from the equator to given
// latitude (radians) on the WGS84 ellipsoid
func meridianArc(phi float64) float64 {
	e2 := wgs84E2
	e4 := e2 * e2
	e6 := e4 * e2
	return wgs84A * ((1.0-e2/4.0-3.0*e4/64.0-5.0*e6/256.0)*phi -
		(3.0*e2/8.0+3.0*e4/32.0+45.0*e6/1024.0)*math.Sin(2.0*phi) +
		(15.0*e4/256.0+45.0*e6/1024.0)*math.Sin(4.0*phi) -
		(35.0*e6/3072.0)*math.Sin(6.0*phi))
}

// Project converts geographic lon/lat (degrees) to the zone's easting and
// northing in meters. Transverse Mercator series on the WGS84 ellipsoid.
func (zone UTMZone) Project(lon, lat float64) (float64, float64) {
	phi := degreesToRadians(lat)
	lam := degreesToRadians(lon)
	lam0 := degreesToRadians(zone.CentralMeridian())

	sinPhi := math.Sin(phi)
	cosPhi := math.Cos(phi)
	tanPhi := math.Tan(phi)

	n := wgs84A / math.Sqrt(1.0-wgs84E2*sinPhi*sinPhi)
	t := tanPhi * tanPhi
	c := wgs84EP2 * cosPhi * cosPhi
	a := cosPhi * (lam - lam0)
	a2 := a * a
	a3 := a2 * a
	a4 := a3 * a
	a5 := a4 * a
	a6 := a5 * a
	m := meridianArc(phi)

	x := utmScale*n*(a+(1.0-t+c)*a3/6.0+(5.0-18.0*t+t*t+72.0*c-58.0*wgs84EP2)*a5/120.0) + utmFalseEasting
	y := utmScale * (m + n*tanPhi*(a2/2.0+(5.0-t+9.0*c+4.0*c*c)*a4/24.0+(61.0-58.0*t+t*t+600.0*c-330.0*wgs84EP2)*a6/720.0))
	if !zone.North {
		y += utmFalseNorthing
	}
	return x, y
}

// Unproject converts easting/northing in meters back to geographic lon/lat
// (degrees). Inverse of Project within projection series tolerance.
func (zone UTMZone) Unproject(x, y float64) (float64, float64) {
	x -= utmFalseEasting
	if !zone.North {
		y -= utmFalseNorthing
	}
	e2 := wgs84E2
	e4 := e2 * e2
	e6 := e4 * e2

	m := y / utmScale
	mu := m / (wgs84A * (1.0 - e2/4.0 - 3.0*e4/64.0 - 5.0*e6/256.0))
	e1 := (1.0 - math.Sqrt(1.0-e2)) / (1.0 + math.Sqrt(1.0-e2))

	phi1 := mu +
		(3.0*e1/2.0-27.0*e1*e1*e1/32.0)*math.Sin(2.0*mu) +
		(21.0*e1*e1/16.0-55.0*e1*e1*e1*e1/32.0)*math.Sin(4.0*mu) +
		(151.0*e1*e1*e1/96.0)*math.Sin(6.0*mu) +
		(1097.0*e1*e1*e1*e1/512.0)*math.Sin(8.0*mu)

	sinPhi1 := math.Sin(phi1)
	cosPhi1 := math.Cos(phi1)
	tanPhi1 := math.Tan(phi1)

	c1 := wgs84EP2 * cosPhi1 * cosPhi1
	t1 := tanPhi1 * tanPhi1
	n1 := wgs84A / math.Sqrt(1.0-e2*sinPhi1*sinPhi1)
	r1 := wgs84A * (1.0 - e2) / math.Pow(1.0-e2*sinPhi1*sinPhi1, 1.5)
	d := x / (n1 * utmScale)
	d2 := d * d
	d3 := d2 * d
	d4 := d3 * d
	d5 := d4 * d
	d6 := d5 * d

	phi := phi1 - (n1*tanPhi1/r1)*(d2/2.0-
		(5.0+3.0*t1+10.0*c1-4.0*c1*c1-9.0*wgs84EP2)*d4/24.0+
		(61.0+90.0*t1+298.0*c1+45.0*t1*t1-252.0*wgs84EP2-3.0*c1*c1)*d6/720.0)
	lam := (d - (1.0+2.0*t1+c1)*d3/6.0 +
		(5.0-2.0*c1+28.0*t1-3.0*c1*c1+8.0*wgs84EP2+24.0*t1*t1)*d5/120.0) / cosPhi1

	lat := radiansTodegrees(phi)
	lon := zone.CentralMeridian() + radiansTodegrees(lam)
	return lon, lat
}

type crsKind int

const (
	crsGeographic = crsKind(iota + 1)
	crsWebMercator
	crsUTM
)

type crsRef struct {
	kind crsKind
	zone UTMZone
}

// resolveCRS maps a CRS identifier string onto one of the supported
// reference systems: geographic WGS84, web mercator, or a UTM zone.
// Empty identifiers resolve to geographic.
func resolveCRS(name string) (crsRef, error) {
	s := strings.ToLower(strings.TrimSpace(name))
	switch s {
	case "", "epsg:4326", "wgs84", "wgs 84", "crs84":
		return crsRef{kind: crsGeographic}, nil
	case "epsg:3857", "epsg:900913", "web mercator":
		return crsRef{kind: crsWebMercator}, nil
	}
	if strings.HasPrefix(s, "epsg:") {
		code, err := strconv.Atoi(strings.TrimPrefix(s, "epsg:"))
		if err == nil {
			if code >= 32601 && code <= 32660 {
				return crsRef{kind: crsUTM, zone: UTMZone{Number: code - 32600, North: true}}, nil
			}
			if code >= 32701 && code <= 32760 {
				return crsRef{kind: crsUTM, zone: UTMZone{Number: code - 32700, North: false}}, nil
			}
		}
	}
	return crsRef{}, errors.Errorf("unknown CRS '%s'", name)
}

// crsIsProjected reports whether a CRS identifier names a metric system.
// Exact when the authority code resolves; otherwise a best-effort string
// heuristic kept as documented fallback behavior: 4326/WGS84-ish strings are
// geographic, mercator/meter-ish strings and non-4326 EPSG codes are
// projected, anything else defaults to geographic.
func crsIsProjected(name string) bool {
	if name == "" {
		return false
	}
	if ref, err := resolveCRS(name); err == nil {
		return ref.kind != crsGeographic
	}
	s := strings.ToLower(name)
	if strings.Contains(s, "4326") || strings.Contains(s, "wgs84") || strings.Contains(s, "lonlat") || strings.Contains(s, "geog") {
		return false
	}
	if strings.Contains(s, "3857") || strings.Contains(s, "mercator") || strings.Contains(s, "meter") || strings.Contains(s, "metre") || strings.Contains(s, "utm") {
		return true
	}
	if strings.Contains(s, "epsg") {
		digits := strings.Map(func(r rune) rune {
			if r >= '0' && r <= '9' {
				return r
			}
			return -1
		}, s)
		if code, err := strconv.Atoi(digits); err == nil {
			return code != 4326
		}
		return true
	}
	return false
}

// transformPoint converts a single coordinate between two resolved reference
// systems, passing through geographic lon/lat as the common frame
func transformPoint(source, target crsRef, x, y float64) (float64, float64, error) {
	lon, lat := x, y
	switch source.kind {
	case crsWebMercator:
		lon, lat = epsg3857To4326(x, y)
	case crsUTM:
		lon, lat = source.zone.Unproject(x, y)
	}
	outX, outY := lon, lat
	switch target.kind {
	case crsWebMercator:
		outX, outY = epsg4326To3857(lon, lat)
	case crsUTM:
		outX, outY = target.zone.Project(lon, lat)
	}
	if math.IsNaN(outX) || math.IsNaN(outY) || math.IsInf(outX, 0) || math.IsInf(outY, 0) {
		return 0, 0, errors.Wrapf(ErrReprojection, "transform produced non-finite coordinate for (%f, %f)", x, y)
	}
	return outX, outY, nil
}
