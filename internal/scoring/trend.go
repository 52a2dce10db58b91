// Borderwatch - Geographic Security Intelligence and Risk Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/borderwatch

package scoring

import "github.com/tomtom215/borderwatch/internal/models"

// Trend ratio breakpoints. The threat ratio weighs critical reports 4x and
// high reports 3x against the total report count.
const (
	trendEscalatingRatio = 2.0
	trendElevatedRatio   = 1.0
	trendModerateRatio   = 0.5
)

// trendRecommendations maps each trend label to operator guidance.
var trendRecommendations = map[models.TrendLabel]string{
	models.TrendEscalating: "ALERT: Threat level is escalating. Recommend increased surveillance, force repositioning to high-risk corridors, and enhanced border monitoring.",
	models.TrendElevated:   "CAUTION: Elevated threat activity detected. Maintain heightened alert posture and continue monitoring key indicators.",
	models.TrendModerate:   "ADVISORY: Moderate threat activity. Continue standard surveillance operations with attention to emerging patterns.",
	models.TrendStable:     "NORMAL: Threat environment is stable. Maintain routine operations and scheduled patrols.",
}

// AnalyzeTrends tallies a report batch by severity and category and derives
// a trend label from the weighted threat ratio
// (4*critical + 3*high) / max(total, 1).
//
// Label and direction are independently derived from the same ratio, not a
// strict hierarchy: escalating/elevated report "up", moderate reports
// "stable", and stable reports "down". The dominant category is the argmax
// of category counts with first-seen-wins tie-breaking.
func AnalyzeTrends(reports []models.IntelReport) models.TrendReport {
	severityCounts := map[models.Severity]int{
		models.SeverityCritical: 0,
		models.SeverityHigh:     0,
		models.SeverityMedium:   0,
		models.SeverityLow:      0,
	}
	categoryCounts := make(map[string]int)

	if len(reports) == 0 {
		return models.TrendReport{
			Trend:             models.TrendStable,
			Direction:         models.DirectionFlat,
			SeverityBreakdown: severityCounts,
			CategoryBreakdown: categoryCounts,
			DominantCategory:  "none",
			Recommendation:    trendRecommendations[models.TrendStable],
		}
	}

	// Insertion order of first appearance decides category ties.
	var categoryOrder []string
	for _, r := range reports {
		severityCounts[r.Severity]++
		cat := r.Category
		if cat == "" {
			cat = "general"
		}
		if _, seen := categoryCounts[cat]; !seen {
			categoryOrder = append(categoryOrder, cat)
		}
		categoryCounts[cat]++
	}

	total := len(reports)
	denom := total
	if denom < 1 {
		denom = 1
	}
	ratio := float64(severityCounts[models.SeverityCritical]*4+severityCounts[models.SeverityHigh]*3) / float64(denom)

	var trend models.TrendLabel
	var direction models.TrendDirection
	switch {
	case ratio > trendEscalatingRatio:
		trend, direction = models.TrendEscalating, models.DirectionUp
	case ratio > trendElevatedRatio:
		trend, direction = models.TrendElevated, models.DirectionUp
	case ratio > trendModerateRatio:
		trend, direction = models.TrendModerate, models.DirectionStable
	default:
		trend, direction = models.TrendStable, models.DirectionDown
	}

	dominant := "none"
	best := 0
	for _, cat := range categoryOrder {
		if categoryCounts[cat] > best {
			best = categoryCounts[cat]
			dominant = cat
		}
	}

	return models.TrendReport{
		Trend:             trend,
		Direction:         direction,
		ThreatRatio:       ratio,
		TotalReports:      total,
		SeverityBreakdown: severityCounts,
		CategoryBreakdown: categoryCounts,
		DominantCategory:  dominant,
		Recommendation:    trendRecommendations[trend],
	}
}
