// Borderwatch - Geographic Security Intelligence and Risk Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/borderwatch

package scoring

import (
	"fmt"
	"time"

	"github.com/tomtom215/borderwatch/internal/models"
	"github.com/tomtom215/borderwatch/internal/regions"
)

// ThreatCondition is the global readiness level derived from the combined
// input batches and per-region assessments.
type ThreatCondition string

const (
	ConditionGuarded  ThreatCondition = "GUARDED"
	ConditionElevated ThreatCondition = "ELEVATED"
	ConditionHigh     ThreatCondition = "HIGH"
	ConditionCritical ThreatCondition = "CRITICAL"
)

// Alert is one entry in the dashboard's recent-alert feed.
type Alert struct {
	Type      string          `json:"type"`
	Severity  models.Severity `json:"severity"`
	Title     string          `json:"title"`
	Timestamp string          `json:"timestamp"`
	Source    string          `json:"source"`
}

// Overview is the full dashboard rollup for one scoring pass.
type Overview struct {
	GeneratedAt  time.Time                     `json:"timestamp"`
	ThreatLevel  ThreatCondition               `json:"threat_level"`
	ThreatScore  float64                       `json:"threat_score"`
	Stats        OverviewStats                 `json:"stats"`
	Regions      []models.RegionRiskAssessment `json:"regions"`
	RecentAlerts []Alert                       `json:"recent_alerts"`
	Anomalies    models.AnomalyReport          `json:"anomalies"`
	Trends       models.TrendReport            `json:"trends"`
}

// OverviewStats are the headline counters on the dashboard.
type OverviewStats struct {
	ActiveThreats   int `json:"active_threats"`
	IntelReports    int `json:"intel_reports"`
	FireHotspots    int `json:"fire_hotspots"`
	CriticalRegions int `json:"critical_regions"`
	HighRiskRegions int `json:"high_risk_regions"`
}

// BuildOverview runs the full scoring pass: per-region dynamic risk,
// anomaly detection, trend analysis, and the global condition rollup.
// It always returns a well-formed overview, even for empty input batches.
func BuildOverview(reg *regions.Registry, hotspots []models.ThermalDetection, reports []models.IntelReport, baseline Baseline, now time.Time) Overview {
	assessments := AssessRegions(reg, hotspots, reports)

	var criticalReports, highReports int
	for _, r := range reports {
		switch r.Severity {
		case models.SeverityCritical:
			criticalReports++
		case models.SeverityHigh:
			highReports++
		}
	}

	var criticalRegions, highRegions int
	for _, a := range assessments {
		switch a.ComputedLabel {
		case models.RiskCritical:
			criticalRegions++
		case models.RiskHigh:
			highRegions++
		}
	}

	condition, score := overallCondition(criticalReports, highReports, criticalRegions, highRegions, len(hotspots))

	return Overview{
		GeneratedAt: now,
		ThreatLevel: condition,
		ThreatScore: score,
		Stats: OverviewStats{
			ActiveThreats:   criticalReports + highReports + len(hotspots) + criticalRegions,
			IntelReports:    len(reports),
			FireHotspots:    len(hotspots),
			CriticalRegions: criticalRegions,
			HighRiskRegions: highRegions,
		},
		Regions:      assessments,
		RecentAlerts: BuildAlerts(reports, hotspots),
		Anomalies:    DetectAnomalies(hotspots, baseline),
		Trends:       AnalyzeTrends(reports),
	}
}

// overallCondition maps the counters onto the fixed four-step condition
// ladder. The scores per step are fixed values, not a continuous scale.
func overallCondition(criticalReports, highReports, criticalRegions, highRegions, hotspots int) (ThreatCondition, float64) {
	switch {
	case criticalReports > 2 || criticalRegions > 3:
		return ConditionCritical, 0.85
	case criticalReports > 0 || highReports > 3 || criticalRegions > 1:
		return ConditionHigh, 0.65
	case highReports > 0 || hotspots > 5 || highRegions > 2:
		return ConditionElevated, 0.45
	default:
		return ConditionGuarded, 0.25
	}
}

// Alert feed sizing: top entries from each source, six total.
const (
	alertsPerSource = 3
	alertsTotal     = 6
)

// BuildAlerts assembles the recent-alert feed from the head of each input
// batch: reports arrive pre-sorted by severity from the ingest layer, and
// hotspots in feed order.
func BuildAlerts(reports []models.IntelReport, hotspots []models.ThermalDetection) []Alert {
	alerts := make([]Alert, 0, alertsTotal)

	for i, r := range reports {
		if i >= alertsPerSource {
			break
		}
		alerts = append(alerts, Alert{
			Type:      "intel",
			Severity:  r.Severity,
			Title:     r.Title,
			Timestamp: r.PublishedAt.Format(time.RFC3339),
			Source:    r.Source,
		})
	}

	for i, h := range hotspots {
		if i >= alertsPerSource {
			break
		}
		severity := models.SeverityMedium
		if h.Confidence == "high" {
			severity = models.SeverityHigh
		}
		alerts = append(alerts, Alert{
			Type:      "thermal",
			Severity:  severity,
			Title:     fmt.Sprintf("Thermal anomaly at %.4f°N, %.4f°E", h.Location.Lat, h.Location.Lon),
			Timestamp: fmt.Sprintf("%s %s", h.AcquisitionDate, h.AcquisitionTime),
			Source:    thermalFeedSource,
		})
	}

	if len(alerts) > alertsTotal {
		alerts = alerts[:alertsTotal]
	}
	return alerts
}
