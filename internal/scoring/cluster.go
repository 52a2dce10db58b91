// Borderwatch - Geographic Security Intelligence and Risk Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/borderwatch

package scoring

import (
	"github.com/tomtom215/borderwatch/internal/geo"
	"github.com/tomtom215/borderwatch/internal/models"
)

// Cluster is a transient group of thermal detections produced by a single
// clustering call.
type Cluster struct {
	Members  []models.ThermalDetection
	Centroid geo.Point
	Size     int
}

// AvgBrightness returns the mean brightness of the cluster members, or 0
// for an empty cluster.
func (c Cluster) AvgBrightness() float64 {
	if len(c.Members) == 0 {
		return 0
	}
	var sum float64
	for _, m := range c.Members {
		sum += m.BrightnessKelvin
	}
	return sum / float64(len(c.Members))
}

// AvgFirePower returns the mean fire radiative power of the members that
// report one, or 0 if none do.
func (c Cluster) AvgFirePower() float64 {
	var sum float64
	var n int
	for _, m := range c.Members {
		if m.FirePowerMW != nil {
			sum += *m.FirePowerMW
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// ClusterHotspots groups detections by proximity using greedy seed-based
// single-link clustering: points are visited in input order; each unvisited
// point seeds a new cluster and absorbs every later unvisited point within
// radiusKm of the seed. Distance is always measured from the seed, not from
// a running centroid, and membership is not chained transitively.
//
// This makes cluster membership depend on input order. That is a deliberate
// simplicity/speed tradeoff, not a bug: downstream anomaly thresholds were
// tuned against this algorithm's cluster-size distribution, and the
// order-determinism makes results reproducible for identical input.
//
// Every input point lands in exactly one cluster (the output is a
// partition).
func ClusterHotspots(points []models.ThermalDetection, radiusKm float64) []Cluster {
	if len(points) == 0 {
		return nil
	}

	visited := make([]bool, len(points))
	var clusters []Cluster

	for i, seed := range points {
		if visited[i] {
			continue
		}
		visited[i] = true
		members := []models.ThermalDetection{seed}

		for j := i + 1; j < len(points); j++ {
			if visited[j] {
				continue
			}
			if geo.DistanceKm(seed.Location, points[j].Location) <= radiusKm {
				visited[j] = true
				members = append(members, points[j])
			}
		}

		clusters = append(clusters, Cluster{
			Members:  members,
			Centroid: centroid(members),
			Size:     len(members),
		})
	}

	return clusters
}

// centroid returns the arithmetic mean of the member coordinates.
func centroid(members []models.ThermalDetection) geo.Point {
	if len(members) == 0 {
		return geo.Point{}
	}
	var lat, lon float64
	for _, m := range members {
		lat += m.Location.Lat
		lon += m.Location.Lon
	}
	n := float64(len(members))
	return geo.Point{Lat: lat / n, Lon: lon / n}
}
