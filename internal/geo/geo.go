// Borderwatch - Geographic Security Intelligence and Risk Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/borderwatch

// Package geo provides geodesic primitives shared by the scoring engine:
// great-circle distance and discretized compass bearing between coordinate
// pairs. All functions are pure and safe for concurrent use.
package geo

import "math"

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371.0

// Point is a geographic coordinate in decimal degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Valid reports whether the point lies within valid latitude and longitude
// ranges. External feeds do not range-validate coordinates upstream, so
// every boundary that accepts points must check this.
func (p Point) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}

// Direction is one of the eight compass sectors.
type Direction string

// Compass sectors, at 45 degree intervals with boundaries ±22.5° from each
// cardinal direction.
const (
	North     Direction = "north"
	Northeast Direction = "northeast"
	East      Direction = "east"
	Southeast Direction = "southeast"
	South     Direction = "south"
	Southwest Direction = "southwest"
	West      Direction = "west"
	Northwest Direction = "northwest"
)

// DistanceKm returns the great-circle distance between two points in
// kilometers using the haversine formula.
//
// The asin argument is clamped to [0,1]: floating-point rounding can push
// the haversine term fractionally above 1 for near-antipodal points, which
// would otherwise produce NaN.
func DistanceKm(a, b Point) float64 {
	lat1 := a.Lat * math.Pi / 180.0
	lat2 := b.Lat * math.Pi / 180.0
	dLat := (b.Lat - a.Lat) * math.Pi / 180.0
	dLon := (b.Lon - a.Lon) * math.Pi / 180.0

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	s := math.Sqrt(h)
	if s > 1 {
		s = 1
	}

	return earthRadiusKm * 2 * math.Asin(s)
}

// Bearing returns the compass sector from a toward b.
//
// The angle is the planar arctangent of the coordinate deltas, not a true
// geodesic bearing. At the scale this system operates on (a ~100 km
// bounding box) the approximation error is negligible.
func Bearing(a, b Point) Direction {
	dy := b.Lat - a.Lat
	dx := b.Lon - a.Lon

	angle := math.Atan2(dx, dy) * 180.0 / math.Pi

	switch {
	case angle >= -22.5 && angle < 22.5:
		return North
	case angle >= 22.5 && angle < 67.5:
		return Northeast
	case angle >= 67.5 && angle < 112.5:
		return East
	case angle >= 112.5 && angle < 157.5:
		return Southeast
	case angle >= 157.5 || angle < -157.5:
		return South
	case angle >= -157.5 && angle < -112.5:
		return Southwest
	case angle >= -112.5 && angle < -67.5:
		return West
	default:
		return Northwest
	}
}
