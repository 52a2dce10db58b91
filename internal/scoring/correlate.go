// Borderwatch - Geographic Security Intelligence and Risk Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/borderwatch

package scoring

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/borderwatch/internal/geo"
	"github.com/tomtom215/borderwatch/internal/models"
)

// CorrelatedThreat is a threat picture assembled from more than one
// indicator or source.
type CorrelatedThreat struct {
	Type        string            `json:"type"`
	Confidence  models.Confidence `json:"confidence"`
	Sources     []string          `json:"sources"`
	Description string            `json:"description"`
	Location    *geo.Point        `json:"location,omitempty"`
	Action      string            `json:"action"`
}

// CorrelationResult is the output of one correlation pass.
type CorrelationResult struct {
	Threats         []CorrelatedThreat `json:"correlated_threats"`
	TotalIndicators int                `json:"total_indicators"`
	ConfidenceLevel models.Confidence  `json:"confidence_level"`
}

// CorrelateThreats cross-references fire-derived indicators with intel
// reports mentioning the region to raise the confidence of individual
// observations:
//
//   - a critical/high fire indicator plus any report mentioning the region
//     becomes a confirmed incident;
//   - two or more mining indicators become an active mining operation;
//   - camp indicators are surfaced individually as suspected presence.
func CorrelateThreats(fireIndicators []models.SecurityIndicator, reports []models.IntelReport, regionName string) CorrelationResult {
	var threats []CorrelatedThreat

	name := strings.ToLower(regionName)
	var regionReports []models.IntelReport
	for _, r := range reports {
		if strings.Contains(strings.ToLower(r.Title+" "+r.Description), name) {
			regionReports = append(regionReports, r)
		}
	}

	for _, fire := range fireIndicators {
		if fire.Severity != models.SeverityCritical && fire.Severity != models.SeverityHigh {
			continue
		}
		for _, report := range regionReports {
			loc := fire.Location
			threats = append(threats, CorrelatedThreat{
				Type:        "confirmed_security_incident",
				Confidence:  models.ConfidenceHigh,
				Sources:     []string{thermalFeedSource, "OSINT"},
				Description: fmt.Sprintf("thermal anomaly confirmed by ground report: %s", report.Title),
				Location:    &loc,
				Action:      "Deploy response team immediately. Incident confirmed by multiple sources.",
			})
			break // one confirmation per fire indicator is enough
		}
	}

	var mining []models.SecurityIndicator
	for _, f := range fireIndicators {
		if strings.Contains(f.IndicatorType, "mining") {
			mining = append(mining, f)
		}
	}
	if len(mining) >= 2 {
		loc := mining[0].Location
		threats = append(threats, CorrelatedThreat{
			Type:        "active_illegal_mining_operation",
			Confidence:  models.ConfidenceHigh,
			Sources:     []string{thermalFeedSource},
			Description: fmt.Sprintf("%d separate fire clusters consistent with mining kilns detected", len(mining)),
			Location:    &loc,
			Action:      "Coordinate mining enforcement raid. Multiple active sites detected.",
		})
	}

	for _, f := range fireIndicators {
		if f.IndicatorType != IndicatorBanditCamp {
			continue
		}
		loc := f.Location
		threats = append(threats, CorrelatedThreat{
			Type:        "suspected_bandit_presence",
			Confidence:  models.ConfidenceMedium,
			Sources:     []string{thermalFeedSource},
			Description: f.Description,
			Location:    &loc,
			Action:      f.RecommendedAction,
		})
	}

	confidence := models.ConfidenceMedium
	if len(threats) > 0 {
		confidence = models.ConfidenceHigh
	}
	if threats == nil {
		threats = []CorrelatedThreat{}
	}

	return CorrelationResult{
		Threats:         threats,
		TotalIndicators: len(fireIndicators),
		ConfidenceLevel: confidence,
	}
}

// SecurityReport is a per-region intelligence summary combining fire
// analysis and correlation. It is the structured-fact input the narrative
// layer renders into prose; no prose generation happens here.
type SecurityReport struct {
	RegionName      string                     `json:"region"`
	GeneratedAt     time.Time                  `json:"generated_at"`
	ThreatLevel     models.RiskLevel           `json:"threat_level"`
	TotalHotspots   int                        `json:"total_hotspots"`
	FireIndicators  []models.SecurityIndicator `json:"fire_indicators"`
	Correlated      []CorrelatedThreat         `json:"correlated_threats"`
	Recommendations []string                   `json:"recommendations"`
}

// BuildSecurityReport assembles the full per-region security picture from
// one hotspot batch and one report batch.
func BuildSecurityReport(regionName string, hotspots []models.ThermalDetection, reports []models.IntelReport, now time.Time) SecurityReport {
	indicators := AnalyzeFireSecurity(hotspots, now)
	correlation := CorrelateThreats(indicators, reports, regionName)

	return SecurityReport{
		RegionName:      regionName,
		GeneratedAt:     now,
		ThreatLevel:     reportThreatLevel(indicators, correlation),
		TotalHotspots:   len(hotspots),
		FireIndicators:  indicators,
		Correlated:      correlation.Threats,
		Recommendations: reportRecommendations(indicators),
	}
}

// reportThreatLevel rolls indicator severities and correlation hits up into
// one region-level label.
func reportThreatLevel(indicators []models.SecurityIndicator, correlation CorrelationResult) models.RiskLevel {
	if len(indicators) == 0 {
		return models.RiskLow
	}

	var critical, high int
	for _, i := range indicators {
		switch i.Severity {
		case models.SeverityCritical:
			critical++
		case models.SeverityHigh:
			high++
		}
	}

	switch {
	case critical > 0 || len(correlation.Threats) > 0:
		return models.RiskCritical
	case high >= 2:
		return models.RiskHigh
	case high == 1:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}

// reportRecommendations derives the action list from the indicator types
// present.
func reportRecommendations(indicators []models.SecurityIndicator) []string {
	var recs []string

	has := func(indicatorType string) bool {
		for _, i := range indicators {
			if i.IndicatorType == indicatorType {
				return true
			}
		}
		return false
	}

	if has(IndicatorIllegalMining) {
		recs = append(recs, "Deploy mining enforcement to verify and shut down illegal operations")
	}
	if has(IndicatorArson) {
		recs = append(recs, "URGENT: Dispatch security forces to investigate high-intensity fires")
	}
	if has(IndicatorBanditCamp) {
		recs = append(recs, "Conduct surveillance operation on suspected camp locations. Do not approach without tactical support.")
	}
	if len(recs) == 0 {
		recs = append(recs, "Maintain normal patrol patterns. Continue monitoring.")
	}
	recs = append(recs, "Request high-resolution commercial imagery for detailed tactical assessment")

	return recs
}
