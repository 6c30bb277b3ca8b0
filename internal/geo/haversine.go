// Package geo provides great-circle distance math used to annotate and
// sort venue listings by proximity to the caller.
package geo

import "math"

// earthRadiusMeters is the mean Earth radius.  All distances returned
// by this package are expressed in meters.
const earthRadiusMeters = 6371.0 * 1000

// Point is a WGS84 coordinate pair in decimal degrees.
type Point struct {
	Lat float64
	Lng float64
}

// DistanceMeters returns the haversine great-circle distance between
// two points in meters.
func DistanceMeters(a, b Point) float64 {
	latA := a.Lat * math.Pi / 180
	latB := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(latA)*math.Cos(latB)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadiusMeters * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}
