// Borderwatch - Geographic Security Intelligence and Risk Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/borderwatch

package scoring

import (
	"fmt"

	"github.com/tomtom215/borderwatch/internal/models"
)

// Baseline is the historical hotspot-count baseline the z-score is measured
// against.
type Baseline struct {
	Mean float64
	Std  float64
}

// DefaultBaseline matches the historical hotspot distribution for the
// target geography.
func DefaultBaseline() Baseline {
	return Baseline{Mean: 5.0, Std: 3.0}
}

// Anomaly detection thresholds.
const (
	anomalyClusterRadiusKm   = 15.0
	anomalyClusterMinSize    = 3
	anomalyClusterHighSize   = 5
	anomalyBrightnessKelvin  = 400.0
	anomalyZScoreThreshold   = 2.0
	anomalyZScoreCritical    = 3.0
	anomalyZScoreScaleFactor = 5.0
)

// DetectAnomalies runs statistical and spatial anomaly detection over one
// hotspot batch.
//
//   - Frequency spike: z = (count - mean) / max(std, 0.1); emitted only when
//     z is strictly greater than 2.0, critical above 3.0, score min(z/5, 1).
//   - Spatial clusters: greedy clustering at 15 km; clusters of size >= 3
//     emit an anomaly, high severity at size >= 5, score min(size/10, 1).
//   - Brightness: hotspots above 400K contribute to one aggregate anomaly,
//     score min(maxBrightness/600, 1).
//
// The report score is the max of the individual anomaly scores, 0 if none.
// Output is deterministic for identical input order (clustering is
// order-sensitive).
func DetectAnomalies(hotspots []models.ThermalDetection, baseline Baseline) models.AnomalyReport {
	if len(hotspots) == 0 {
		return models.AnomalyReport{Details: []models.Anomaly{}}
	}

	count := len(hotspots)
	std := baseline.Std
	if std < 0.1 {
		std = 0.1 // minimum-floor denominator, never divides by zero
	}
	zScore := (float64(count) - baseline.Mean) / std

	var details []models.Anomaly

	if zScore > anomalyZScoreThreshold {
		severity := models.SeverityHigh
		if zScore > anomalyZScoreCritical {
			severity = models.SeverityCritical
		}
		details = append(details, models.Anomaly{
			Type: models.AnomalyFrequencySpike,
			Description: fmt.Sprintf("hotspot count (%d) is %.1f standard deviations above baseline (%.1f)",
				count, zScore, baseline.Mean),
			Severity: severity,
			Score:    clamp01(zScore / anomalyZScoreScaleFactor),
		})
	}

	for _, cluster := range ClusterHotspots(hotspots, anomalyClusterRadiusKm) {
		if cluster.Size < anomalyClusterMinSize {
			continue
		}
		severity := models.SeverityMedium
		if cluster.Size >= anomalyClusterHighSize {
			severity = models.SeverityHigh
		}
		center := cluster.Centroid
		details = append(details, models.Anomaly{
			Type: models.AnomalySpatialCluster,
			Description: fmt.Sprintf("cluster of %d hotspots near (%.4f°N, %.4f°E)",
				cluster.Size, center.Lat, center.Lon),
			Severity: severity,
			Score:    clamp01(float64(cluster.Size) / 10.0),
			Center:   &center,
		})
	}

	var brightCount int
	var maxBrightness float64
	for _, h := range hotspots {
		if h.BrightnessKelvin > anomalyBrightnessKelvin {
			brightCount++
			if h.BrightnessKelvin > maxBrightness {
				maxBrightness = h.BrightnessKelvin
			}
		}
	}
	if brightCount > 0 {
		details = append(details, models.Anomaly{
			Type: models.AnomalyBrightness,
			Description: fmt.Sprintf("%d hotspots with unusually high brightness (>%.0fK)",
				brightCount, anomalyBrightnessKelvin),
			Severity: models.SeverityHigh,
			Score:    clamp01(maxBrightness / 600.0),
		})
	}

	var overall float64
	for _, a := range details {
		if a.Score > overall {
			overall = a.Score
		}
	}

	if details == nil {
		details = []models.Anomaly{}
	}

	return models.AnomalyReport{
		Detected:     len(details) > 0,
		Count:        len(details),
		Details:      details,
		Score:        overall,
		ZScore:       zScore,
		HotspotCount: count,
	}
}

// clamp01 caps v at 1.0. Negative inputs are not produced by any caller.
func clamp01(v float64) float64 {
	if v > 1.0 {
		return 1.0
	}
	return v
}
