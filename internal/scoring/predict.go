// Borderwatch - Geographic Security Intelligence and Risk Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/borderwatch

package scoring

import (
	"sort"
	"strings"

	"github.com/tomtom215/borderwatch/internal/geo"
	"github.com/tomtom215/borderwatch/internal/models"
	"github.com/tomtom215/borderwatch/internal/regions"
)

// Composite model weights and multipliers.
const (
	predictBaseWeight     = 0.4
	predictFireWeight     = 0.2
	predictIntelWeight    = 0.2
	predictBaselineTerm   = 0.2 // flat baseline-awareness term, added before multipliers
	predictBorderFactor   = 1.2
	predictCorridorFactor = 1.3

	predictIntelMentionCap = 5.0
)

// PredictionSummary wraps the ranked predictions with the escalation
// partitions the dashboard consumes.
type PredictionSummary struct {
	Predictions  []models.PredictionRecord `json:"predictions"`
	HighestRisk  *models.PredictionRecord  `json:"highest_risk,omitempty"`
	Escalating   []string                  `json:"escalating_regions"`
	DeEscalating []string                  `json:"de_escalating_regions"`
}

// PredictThreats runs the composite weighted-factor model over every region
// and returns one record per region, sorted descending by composite score.
// Ties retain registry order (stable sort).
//
// Per region:
//
//	composite = min(1, (base*0.4 + fireProx*0.2 + intel*0.2 + 0.2) * border * corridor)
//
// where base is the weight of the region's configured baseline risk (not
// the dynamically computed label — the two label sources are maintained
// independently), fireProx is the max of 1-dist/30 over hotspots within
// 30 km, intel is min(mentions/5, 1) over reports whose combined text
// contains the region name, and the border (1.2) and corridor (1.3)
// multipliers apply after the flat +0.2 baseline-awareness term.
//
// The predicted label uses its own breakpoints (>0.75 critical, >0.55 high,
// >0.35 medium), a different scale from the dynamic risk model's. Direction
// compares the predicted label's weight against the configured base risk.
func PredictThreats(reg *regions.Registry, reports []models.IntelReport, hotspots []models.ThermalDetection) PredictionSummary {
	records := make([]models.PredictionRecord, 0, reg.Len())

	for _, region := range reg.All() {
		baseRisk := region.Risk.Weight()

		fireProximity := 0.0
		for _, h := range hotspots {
			dist := geo.DistanceKm(region.Center, h.Location)
			if dist < fireProximityRadiusKm {
				if p := 1.0 - dist/fireProximityRadiusKm; p > fireProximity {
					fireProximity = p
				}
			}
		}

		name := strings.ToLower(region.Name)
		mentions := 0
		for _, r := range reports {
			if strings.Contains(strings.ToLower(r.Title+r.Description), name) {
				mentions++
			}
		}
		intelScore := clamp01(float64(mentions) / predictIntelMentionCap)

		tags := reg.TagsFor(region.Name)
		borderMultiplier := 1.0
		if tags.Border {
			borderMultiplier = predictBorderFactor
		}
		corridorMultiplier := 1.0
		if tags.Corridor {
			corridorMultiplier = predictCorridorFactor
		}

		composite := (baseRisk*predictBaseWeight +
			fireProximity*predictFireWeight +
			intelScore*predictIntelWeight +
			predictBaselineTerm) * borderMultiplier * corridorMultiplier
		composite = clamp01(composite)

		predicted := predictedLabel(composite)

		direction := models.DirectionFlat
		switch {
		case predicted.Weight() > baseRisk:
			direction = models.DirectionUp
		case predicted.Weight() < baseRisk:
			direction = models.DirectionDown
		}

		records = append(records, models.PredictionRecord{
			RegionName:     region.Name,
			Center:         region.Center,
			CurrentRisk:    region.Risk,
			PredictedRisk:  predicted,
			CompositeScore: composite,
			FactorBreakdown: map[string]float64{
				"base_risk":         baseRisk,
				"fire_proximity":    fireProximity,
				"intel_correlation": intelScore,
				"border_factor":     borderMultiplier,
				"corridor_factor":   corridorMultiplier,
			},
			Direction: direction,
		})
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CompositeScore > records[j].CompositeScore
	})

	summary := PredictionSummary{
		Predictions:  records,
		Escalating:   []string{},
		DeEscalating: []string{},
	}
	if len(records) > 0 {
		summary.HighestRisk = &records[0]
	}
	for _, p := range records {
		switch p.Direction {
		case models.DirectionUp:
			summary.Escalating = append(summary.Escalating, p.RegionName)
		case models.DirectionDown:
			summary.DeEscalating = append(summary.DeEscalating, p.RegionName)
		}
	}

	return summary
}

// predictedLabel maps a composite score onto the predictor's label scale.
// Breakpoints are exclusive lower bounds, unlike the dynamic model's
// inclusive ones.
func predictedLabel(composite float64) models.RiskLevel {
	switch {
	case composite > 0.75:
		return models.RiskCritical
	case composite > 0.55:
		return models.RiskHigh
	case composite > 0.35:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}
