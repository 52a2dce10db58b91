// Borderwatch - Geographic Security Intelligence and Risk Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/borderwatch

package geo

import (
	"math"
	"testing"
)

func TestDistanceKm(t *testing.T) {
	tests := []struct {
		name      string
		a, b      Point
		wantKm    float64
		tolerance float64
	}{
		{
			name:      "same point",
			a:         Point{Lat: 12.4539, Lon: 4.1975},
			b:         Point{Lat: 12.4539, Lon: 4.1975},
			wantKm:    0,
			tolerance: 1e-9,
		},
		{
			name:      "state capital to Argungu",
			a:         Point{Lat: 12.4539, Lon: 4.1975}, // Birnin Kebbi
			b:         Point{Lat: 12.7448, Lon: 4.5251}, // Argungu
			wantKm:    48.0,
			tolerance: 2.0,
		},
		{
			name:      "one degree of latitude",
			a:         Point{Lat: 12.0, Lon: 4.0},
			b:         Point{Lat: 13.0, Lon: 4.0},
			wantKm:    111.19,
			tolerance: 0.5,
		},
		{
			name:      "near-antipodal points do not produce NaN",
			a:         Point{Lat: 0, Lon: 0},
			b:         Point{Lat: 0, Lon: 180},
			wantKm:    math.Pi * earthRadiusKm,
			tolerance: 1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistanceKm(tt.a, tt.b)
			if math.IsNaN(got) {
				t.Fatalf("DistanceKm returned NaN")
			}
			if math.Abs(got-tt.wantKm) > tt.tolerance {
				t.Errorf("DistanceKm = %.3f, want %.3f ± %.3f", got, tt.wantKm, tt.tolerance)
			}
		})
	}
}

func TestDistanceKmSymmetry(t *testing.T) {
	pairs := []struct{ a, b Point }{
		{Point{12.4539, 4.1975}, Point{11.4308, 5.2309}},
		{Point{13.45, 3.8}, Point{10.83, 4.77}},
		{Point{-33.87, 151.21}, Point{51.51, -0.13}},
	}

	for _, p := range pairs {
		ab := DistanceKm(p.a, p.b)
		ba := DistanceKm(p.b, p.a)
		if math.Abs(ab-ba) > 1e-9 {
			t.Errorf("distance not symmetric: d(a,b)=%v d(b,a)=%v", ab, ba)
		}
	}
}

func TestBearing(t *testing.T) {
	origin := Point{Lat: 12.0, Lon: 4.0}

	tests := []struct {
		name string
		to   Point
		want Direction
	}{
		{"due north", Point{13.0, 4.0}, North},
		{"due south", Point{11.0, 4.0}, South},
		{"due east", Point{12.0, 5.0}, East},
		{"due west", Point{12.0, 3.0}, West},
		{"northeast", Point{13.0, 5.0}, Northeast},
		{"northwest", Point{13.0, 3.0}, Northwest},
		{"southeast", Point{11.0, 5.0}, Southeast},
		{"southwest", Point{11.0, 3.0}, Southwest},
		// Sector boundaries sit at ±22.5° from each cardinal direction.
		{"just inside north sector", Point{13.0, 4.4}, North},
		{"just inside northeast sector", Point{13.0, 4.42}, Northeast},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Bearing(origin, tt.to); got != tt.want {
				t.Errorf("Bearing = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPointValid(t *testing.T) {
	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"valid", Point{12.0, 4.0}, true},
		{"lat too high", Point{90.5, 0}, false},
		{"lat too low", Point{-91, 0}, false},
		{"lon too high", Point{0, 180.1}, false},
		{"lon too low", Point{0, -181}, false},
		{"boundary lat", Point{90, 180}, true},
		{"boundary negative", Point{-90, -180}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}
