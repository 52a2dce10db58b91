// Borderwatch - Geographic Security Intelligence and Risk Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/borderwatch

package scoring

import (
	"strings"

	"github.com/tomtom215/borderwatch/internal/geo"
	"github.com/tomtom215/borderwatch/internal/models"
	"github.com/tomtom215/borderwatch/internal/regions"
)

// Region risk model constants. The 30 km proximity radius and the additive
// weights below were tuned against the target geography and are shared with
// the threat predictor's fire-proximity factor.
const (
	fireProximityRadiusKm = 30.0
	fireDecayWeight       = 0.15
	fireDensityBonus      = 0.20
	fireDensityThreshold  = 3

	mentionCriticalBonus = 0.20
	mentionHighBonus     = 0.10
	mentionOtherBonus    = 0.05

	riskCorridorBonus = 0.25
	riskBorderBonus   = 0.15
)

// ScoreRegion computes the dynamic risk for one region from nearby thermal
// detections, intel report mentions, and static geographic adjustment.
//
// The score accumulates additively and is capped at 1.0:
//
//   - each hotspot within 30 km adds a linear decay bonus
//     max(0, (30-dist)/30) * 0.15;
//   - three or more hotspots within 30 km add a flat +0.20 density bonus on
//     top of the decay terms;
//   - each report whose title+description contains the region name
//     (case-insensitive substring) adds +0.20 / +0.10 / +0.05 by severity;
//   - southern-corridor regions add +0.25, otherwise border regions add
//     +0.15 (corridor checked first, first match wins).
//
// The label is a monotonic step function of the score: >=0.6 critical,
// >=0.4 high, >=0.2 medium, else low.
//
// Known imprecision: a region name that is a substring of another region's
// name or of an unrelated word over-matches in the textual scan. Downstream
// consumers may rely on the resulting scores, so the substring semantics are
// preserved rather than silently tightened to word-boundary matching.
func ScoreRegion(region regions.Region, tags regions.Tags, hotspots []models.ThermalDetection, reports []models.IntelReport) (models.RiskLevel, float64) {
	score := 0.0

	nearby := 0
	for _, h := range hotspots {
		dist := geo.DistanceKm(region.Center, h.Location)
		if dist < fireProximityRadiusKm {
			score += ((fireProximityRadiusKm - dist) / fireProximityRadiusKm) * fireDecayWeight
			nearby++
		}
	}
	if nearby >= fireDensityThreshold {
		score += fireDensityBonus
	}

	name := strings.ToLower(region.Name)
	for _, r := range reports {
		text := strings.ToLower(r.Title + " " + r.Description)
		if !strings.Contains(text, name) {
			continue
		}
		switch r.Severity {
		case models.SeverityCritical:
			score += mentionCriticalBonus
		case models.SeverityHigh:
			score += mentionHighBonus
		default:
			score += mentionOtherBonus
		}
	}

	switch {
	case tags.RiskCorridor:
		score += riskCorridorBonus
	case tags.Border:
		score += riskBorderBonus
	}

	if score > 1.0 {
		score = 1.0
	}

	return dynamicLabel(score), score
}

// dynamicLabel maps a dynamic risk score onto its label. These breakpoints
// are distinct from the predictor's: the two systems are separate scales.
func dynamicLabel(score float64) models.RiskLevel {
	switch {
	case score >= 0.6:
		return models.RiskCritical
	case score >= 0.4:
		return models.RiskHigh
	case score >= 0.2:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}

// AssessRegions scores every region in the registry against the same input
// batches and returns one assessment per region in registry order.
func AssessRegions(reg *regions.Registry, hotspots []models.ThermalDetection, reports []models.IntelReport) []models.RegionRiskAssessment {
	out := make([]models.RegionRiskAssessment, 0, reg.Len())
	for _, region := range reg.All() {
		label, score := ScoreRegion(region, reg.TagsFor(region.Name), hotspots, reports)
		out = append(out, models.RegionRiskAssessment{
			RegionName:    region.Name,
			Center:        region.Center,
			BaselineRisk:  region.Risk,
			ComputedLabel: label,
			ComputedScore: score,
		})
	}
	return out
}
