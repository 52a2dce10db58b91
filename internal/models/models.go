// Borderwatch - Geographic Security Intelligence and Risk Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/borderwatch

// Package models defines the typed records exchanged between the data
// acquisition boundary, the scoring engine, and the API layer.
//
// Input records (ThermalDetection, IntelReport) are ephemeral batch inputs:
// they are fetched per request or per refresh cycle and never persisted.
// Derived records (RegionRiskAssessment, PredictionRecord, SecurityIndicator,
// AnomalyReport, TrendReport) are owned exclusively by the call that produced
// them; there is no shared mutable state across concurrent scoring requests.
package models

import (
	"time"

	"github.com/tomtom215/borderwatch/internal/geo"
)

// Severity classifies intel reports and derived indicators.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Valid reports whether s is one of the four known severities.
func (s Severity) Valid() bool {
	switch s {
	case SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow:
		return true
	}
	return false
}

// RiskLevel is a region risk label. The same four labels serve both the
// configured baseline risk and the dynamically computed risk, but the two
// are derived on independent scales and must not be conflated.
type RiskLevel string

const (
	RiskCritical RiskLevel = "critical"
	RiskHigh     RiskLevel = "high"
	RiskMedium   RiskLevel = "medium"
	RiskLow      RiskLevel = "low"
)

// Weight maps a risk level onto the predictor's base-risk scale.
func (r RiskLevel) Weight() float64 {
	switch r {
	case RiskCritical:
		return 1.0
	case RiskHigh:
		return 0.75
	case RiskMedium:
		return 0.5
	default:
		return 0.25
	}
}

// Valid reports whether r is one of the four known risk levels.
func (r RiskLevel) Valid() bool {
	switch r {
	case RiskCritical, RiskHigh, RiskMedium, RiskLow:
		return true
	}
	return false
}

// Confidence grades how much weight an indicator carries.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// ThermalDetection is a single geolocated thermal-anomaly detection from a
// remote-sensing feed. Coordinates are not range-validated upstream; the
// ingest boundary drops records with invalid coordinates before they reach
// the scoring engine.
type ThermalDetection struct {
	Location         geo.Point `json:"location"`
	BrightnessKelvin float64   `json:"brightness_kelvin"`
	Confidence       string    `json:"confidence"`
	AcquisitionDate  string    `json:"acq_date"`
	AcquisitionTime  string    `json:"acq_time"`
	SatelliteSource  string    `json:"satellite"`
	FirePowerMW      *float64  `json:"frp,omitempty"`
	DayNight         string    `json:"daynight,omitempty"`
}

// IntelReport is a normalized open-source intelligence report. Severity and
// category are pre-assigned by the upstream keyword classifier; the scoring
// engine trusts these labels as-is.
type IntelReport struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Source      string    `json:"source"`
	URL         string    `json:"url,omitempty"`
	Severity    Severity  `json:"severity"`
	Category    string    `json:"category"`
	PublishedAt time.Time `json:"published_at"`
}

// RegionRiskAssessment is the dynamically computed risk for one region,
// recomputed on every call as a pure function of its inputs.
type RegionRiskAssessment struct {
	RegionName string    `json:"region"`
	Center     geo.Point `json:"center"`
	// BaselineRisk is the statically configured risk for the region.
	BaselineRisk RiskLevel `json:"baseline_risk"`
	// ComputedLabel is a monotonic step function of ComputedScore with fixed
	// breakpoints (0.6 critical, 0.4 high, 0.2 medium).
	ComputedLabel RiskLevel `json:"risk"`
	ComputedScore float64   `json:"risk_score"`
}

// SecurityIndicator is a security-relevant observation derived from thermal
// cluster analysis. Output-only, except as input to the correlation step.
type SecurityIndicator struct {
	ID                string     `json:"id"`
	IndicatorType     string     `json:"indicator_type"`
	Source            string     `json:"source"`
	Location          geo.Point  `json:"location"`
	Timestamp         time.Time  `json:"timestamp"`
	Confidence        Confidence `json:"confidence"`
	Severity          Severity   `json:"severity"`
	Description       string     `json:"description"`
	RecommendedAction string     `json:"recommended_action"`
}

// TrendDirection describes the movement of a trend or prediction.
type TrendDirection string

const (
	DirectionUp   TrendDirection = "up"
	DirectionDown TrendDirection = "down"
	DirectionFlat TrendDirection = "flat"
	// DirectionStable is emitted by trend analysis for the moderate band.
	// Trend label and direction are independently derived from the threat
	// ratio, so "moderate"/"stable" and "stable"/"down" pairs both occur.
	DirectionStable TrendDirection = "stable"
)

// PredictionRecord is one region's output from the composite threat model.
type PredictionRecord struct {
	RegionName string    `json:"region"`
	Center     geo.Point `json:"center"`
	// CurrentRisk is the configured baseline risk, not the dynamically
	// computed one. The predictor deliberately keeps the two apart.
	CurrentRisk     RiskLevel          `json:"current_risk"`
	PredictedRisk   RiskLevel          `json:"predicted_risk"`
	CompositeScore  float64            `json:"composite_score"`
	FactorBreakdown map[string]float64 `json:"factors"`
	Direction       TrendDirection     `json:"direction"`
}

// AnomalyType identifies the kind of statistical anomaly detected.
type AnomalyType string

const (
	AnomalyFrequencySpike AnomalyType = "frequency_spike"
	AnomalySpatialCluster AnomalyType = "spatial_cluster"
	AnomalyBrightness     AnomalyType = "brightness_anomaly"
)

// Anomaly is one detected anomaly within an AnomalyReport.
type Anomaly struct {
	Type        AnomalyType `json:"type"`
	Description string      `json:"description"`
	Severity    Severity    `json:"severity"`
	Score       float64     `json:"score"`
	Center      *geo.Point  `json:"center,omitempty"`
}

// AnomalyReport aggregates the anomalies found in one hotspot batch.
type AnomalyReport struct {
	Detected     bool      `json:"anomalies_detected"`
	Count        int       `json:"count"`
	Details      []Anomaly `json:"details"`
	Score        float64   `json:"score"`
	ZScore       float64   `json:"z_score"`
	HotspotCount int       `json:"hotspot_count"`
}

// TrendLabel classifies the report-severity trend.
type TrendLabel string

const (
	TrendEscalating TrendLabel = "escalating"
	TrendElevated   TrendLabel = "elevated"
	TrendModerate   TrendLabel = "moderate"
	TrendStable     TrendLabel = "stable"
)

// TrendReport summarizes severity and category distribution over a report
// batch.
type TrendReport struct {
	Trend             TrendLabel       `json:"trend"`
	Direction         TrendDirection   `json:"direction"`
	ThreatRatio       float64          `json:"threat_ratio"`
	TotalReports      int              `json:"total_reports"`
	SeverityBreakdown map[Severity]int `json:"severity_breakdown"`
	CategoryBreakdown map[string]int   `json:"category_breakdown"`
	DominantCategory  string           `json:"dominant_category"`
	Recommendation    string           `json:"recommendation"`
}
