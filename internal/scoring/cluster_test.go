// Borderwatch - Geographic Security Intelligence and Risk Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/borderwatch

package scoring

import (
	"math"
	"testing"

	"github.com/tomtom215/borderwatch/internal/geo"
	"github.com/tomtom215/borderwatch/internal/models"
)

// det builds a minimal thermal detection for tests.
func det(lat, lon, brightness float64) models.ThermalDetection {
	return models.ThermalDetection{
		Location:         geo.Point{Lat: lat, Lon: lon},
		BrightnessKelvin: brightness,
		Confidence:       "nominal",
		SatelliteSource:  "VIIRS_SNPP_NRT",
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestClusterHotspotsEmpty(t *testing.T) {
	if got := ClusterHotspots(nil, 15.0); got != nil {
		t.Errorf("ClusterHotspots(nil) = %v, want nil", got)
	}
	if got := ClusterHotspots([]models.ThermalDetection{}, 15.0); got != nil {
		t.Errorf("ClusterHotspots(empty) = %v, want nil", got)
	}
}

func TestClusterHotspotsPartition(t *testing.T) {
	points := []models.ThermalDetection{
		det(12.0, 4.0, 340),
		det(12.01, 4.0, 340),
		det(12.5, 4.5, 340),
		det(11.0, 3.0, 340),
		det(11.001, 3.001, 340),
	}

	clusters := ClusterHotspots(points, 5.0)

	total := 0
	for _, c := range clusters {
		if c.Size != len(c.Members) {
			t.Errorf("cluster Size = %d, len(Members) = %d", c.Size, len(c.Members))
		}
		total += c.Size
	}
	if total != len(points) {
		t.Errorf("partition lost points: clustered %d of %d", total, len(points))
	}
}

// Membership is measured from the seed, not chained: a point within radius
// of a member but not of the seed starts its own cluster.
func TestClusterHotspotsSeedBased(t *testing.T) {
	// 0.015 deg of latitude is about 1.67 km; 0.030 deg about 3.34 km.
	points := []models.ThermalDetection{
		det(12.000, 4.0, 340), // seed
		det(12.015, 4.0, 340), // ~1.67 km from seed, joins
		det(12.030, 4.0, 340), // ~3.34 km from seed, ~1.67 km from previous
	}

	clusters := ClusterHotspots(points, 2.0)
	if len(clusters) != 2 {
		t.Fatalf("got %d clusters, want 2", len(clusters))
	}
	if clusters[0].Size != 2 {
		t.Errorf("first cluster size = %d, want 2", clusters[0].Size)
	}
	if clusters[1].Size != 1 {
		t.Errorf("second cluster size = %d, want 1", clusters[1].Size)
	}
}

func TestClusterHotspotsDeterministic(t *testing.T) {
	points := []models.ThermalDetection{
		det(12.0, 4.0, 340),
		det(12.05, 4.05, 340),
		det(12.1, 4.1, 340),
		det(13.0, 5.0, 340),
	}

	first := ClusterHotspots(points, 15.0)
	second := ClusterHotspots(points, 15.0)

	if len(first) != len(second) {
		t.Fatalf("cluster counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Size != second[i].Size {
			t.Errorf("cluster %d size differs: %d vs %d", i, first[i].Size, second[i].Size)
		}
		if first[i].Centroid != second[i].Centroid {
			t.Errorf("cluster %d centroid differs: %v vs %v", i, first[i].Centroid, second[i].Centroid)
		}
	}
}

func TestClusterCentroid(t *testing.T) {
	points := []models.ThermalDetection{
		det(12.0, 4.0, 340),
		det(12.02, 4.02, 340),
	}

	clusters := ClusterHotspots(points, 15.0)
	if len(clusters) != 1 {
		t.Fatalf("got %d clusters, want 1", len(clusters))
	}
	c := clusters[0].Centroid
	if !almostEqual(c.Lat, 12.01) || !almostEqual(c.Lon, 4.01) {
		t.Errorf("centroid = (%v, %v), want (12.01, 4.01)", c.Lat, c.Lon)
	}
}

func TestClusterAvgBrightness(t *testing.T) {
	c := Cluster{Members: []models.ThermalDetection{
		det(12.0, 4.0, 400),
		det(12.0, 4.0, 500),
	}}
	if got := c.AvgBrightness(); !almostEqual(got, 450) {
		t.Errorf("AvgBrightness() = %v, want 450", got)
	}

	empty := Cluster{}
	if got := empty.AvgBrightness(); got != 0 {
		t.Errorf("empty AvgBrightness() = %v, want 0", got)
	}
}

func TestClusterAvgFirePower(t *testing.T) {
	frp := func(v float64) *float64 { return &v }

	withPower := det(12.0, 4.0, 400)
	withPower.FirePowerMW = frp(10)
	withMorePower := det(12.0, 4.0, 400)
	withMorePower.FirePowerMW = frp(30)

	c := Cluster{Members: []models.ThermalDetection{
		withPower,
		det(12.0, 4.0, 400), // no FRP reported, excluded from the mean
		withMorePower,
	}}
	if got := c.AvgFirePower(); !almostEqual(got, 20) {
		t.Errorf("AvgFirePower() = %v, want 20", got)
	}

	noPower := Cluster{Members: []models.ThermalDetection{det(12.0, 4.0, 400)}}
	if got := noPower.AvgFirePower(); got != 0 {
		t.Errorf("AvgFirePower() with no FRP = %v, want 0", got)
	}
}
