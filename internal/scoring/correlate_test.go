// Borderwatch - Geographic Security Intelligence and Risk Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/borderwatch

package scoring

import (
	"strings"
	"testing"

	"github.com/tomtom215/borderwatch/internal/geo"
	"github.com/tomtom215/borderwatch/internal/models"
)

func indicator(indicatorType string, severity models.Severity) models.SecurityIndicator {
	return models.SecurityIndicator{
		ID:                "test-id",
		IndicatorType:     indicatorType,
		Source:            "NASA_FIRMS",
		Location:          geo.Point{Lat: 12.0, Lon: 4.0},
		Timestamp:         fixedNow,
		Confidence:        models.ConfidenceMedium,
		Severity:          severity,
		Description:       "test indicator",
		RecommendedAction: "test action",
	}
}

func TestCorrelateThreatsConfirmedIncident(t *testing.T) {
	fires := []models.SecurityIndicator{indicator(IndicatorArson, models.SeverityCritical)}
	reports := []models.IntelReport{
		intel("Gunmen attack village in Argungu", models.SeverityCritical),
		intel("Second Argungu report", models.SeverityHigh),
	}

	result := CorrelateThreats(fires, reports, "Argungu")

	// One confirmation per fire indicator, even with two matching reports.
	var confirmed int
	for _, th := range result.Threats {
		if th.Type == "confirmed_security_incident" {
			confirmed++
			if th.Confidence != models.ConfidenceHigh {
				t.Errorf("confidence = %v, want high", th.Confidence)
			}
			if th.Location == nil {
				t.Error("confirmed incident has no location")
			}
		}
	}
	if confirmed != 1 {
		t.Errorf("got %d confirmed incidents, want 1", confirmed)
	}
	if result.ConfidenceLevel != models.ConfidenceHigh {
		t.Errorf("ConfidenceLevel = %v, want high", result.ConfidenceLevel)
	}
}

func TestCorrelateThreatsIgnoresOtherRegions(t *testing.T) {
	fires := []models.SecurityIndicator{indicator(IndicatorArson, models.SeverityCritical)}
	reports := []models.IntelReport{intel("Attack in Zuru", models.SeverityCritical)}

	result := CorrelateThreats(fires, reports, "Argungu")
	for _, th := range result.Threats {
		if th.Type == "confirmed_security_incident" {
			t.Error("confirmed incident from a report about a different region")
		}
	}
}

func TestCorrelateThreatsLowSeverityFireNotConfirmed(t *testing.T) {
	fires := []models.SecurityIndicator{indicator(IndicatorUnknownFire, models.SeverityMedium)}
	reports := []models.IntelReport{intel("Argungu report", models.SeverityCritical)}

	result := CorrelateThreats(fires, reports, "Argungu")
	if len(result.Threats) != 0 {
		t.Errorf("got %d threats, want 0: medium fires do not confirm", len(result.Threats))
	}
	if result.ConfidenceLevel != models.ConfidenceMedium {
		t.Errorf("ConfidenceLevel = %v, want medium", result.ConfidenceLevel)
	}
}

func TestCorrelateThreatsMiningOperation(t *testing.T) {
	tests := []struct {
		name      string
		miners    int
		wantFound bool
	}{
		{name: "single site below threshold", miners: 1, wantFound: false},
		{name: "two sites confirm operation", miners: 2, wantFound: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fires []models.SecurityIndicator
			for i := 0; i < tt.miners; i++ {
				fires = append(fires, indicator(IndicatorIllegalMining, models.SeverityHigh))
			}

			result := CorrelateThreats(fires, nil, "Argungu")
			var found bool
			for _, th := range result.Threats {
				if th.Type == "active_illegal_mining_operation" {
					found = true
				}
			}
			if found != tt.wantFound {
				t.Errorf("mining operation found = %v, want %v", found, tt.wantFound)
			}
		})
	}
}

func TestCorrelateThreatsBanditCamps(t *testing.T) {
	fires := []models.SecurityIndicator{
		indicator(IndicatorBanditCamp, models.SeverityHigh),
		indicator(IndicatorBanditCamp, models.SeverityHigh),
	}

	result := CorrelateThreats(fires, nil, "Argungu")

	var camps int
	for _, th := range result.Threats {
		if th.Type == "suspected_bandit_presence" {
			camps++
			if th.Confidence != models.ConfidenceMedium {
				t.Errorf("camp confidence = %v, want medium", th.Confidence)
			}
		}
	}
	if camps != 2 {
		t.Errorf("got %d camp threats, want 2 (one per indicator)", camps)
	}
}

func TestCorrelateThreatsEmpty(t *testing.T) {
	result := CorrelateThreats(nil, nil, "Argungu")

	if result.Threats == nil {
		t.Error("Threats is nil, want empty slice")
	}
	if len(result.Threats) != 0 || result.TotalIndicators != 0 {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestBuildSecurityReport(t *testing.T) {
	// A kiln cluster near Argungu plus a report mentioning the region.
	hotspots := []models.ThermalDetection{
		det(12.744, 4.525, 430),
		det(12.745, 4.525, 450),
		det(12.746, 4.525, 470),
	}
	reports := []models.IntelReport{intel("Illegal mining resumes in Argungu", models.SeverityHigh)}

	sr := BuildSecurityReport("Argungu", hotspots, reports, fixedNow)

	if sr.RegionName != "Argungu" {
		t.Errorf("RegionName = %q", sr.RegionName)
	}
	if sr.TotalHotspots != 3 {
		t.Errorf("TotalHotspots = %d, want 3", sr.TotalHotspots)
	}
	if len(sr.FireIndicators) != 1 || sr.FireIndicators[0].IndicatorType != IndicatorIllegalMining {
		t.Fatalf("FireIndicators = %+v, want one mining indicator", sr.FireIndicators)
	}
	// High-severity fire plus a region mention correlates, which rolls the
	// threat level up to critical.
	if len(sr.Correlated) == 0 {
		t.Error("no correlated threats")
	}
	if sr.ThreatLevel != models.RiskCritical {
		t.Errorf("ThreatLevel = %v, want critical", sr.ThreatLevel)
	}

	var hasMiningRec bool
	for _, rec := range sr.Recommendations {
		if strings.Contains(rec, "mining enforcement") {
			hasMiningRec = true
		}
	}
	if !hasMiningRec {
		t.Errorf("Recommendations = %v, want mining enforcement guidance", sr.Recommendations)
	}
}

func TestBuildSecurityReportQuiet(t *testing.T) {
	sr := BuildSecurityReport("Argungu", nil, nil, fixedNow)

	if sr.ThreatLevel != models.RiskLow {
		t.Errorf("ThreatLevel = %v, want low", sr.ThreatLevel)
	}
	if len(sr.Recommendations) != 2 {
		t.Fatalf("Recommendations = %v, want patrol baseline plus imagery request", sr.Recommendations)
	}
	if !strings.Contains(sr.Recommendations[0], "normal patrol") {
		t.Errorf("first recommendation = %q", sr.Recommendations[0])
	}
}

func TestReportThreatLevel(t *testing.T) {
	noCorrelation := CorrelationResult{Threats: []CorrelatedThreat{}}

	tests := []struct {
		name        string
		indicators  []models.SecurityIndicator
		correlation CorrelationResult
		want        models.RiskLevel
	}{
		{name: "no indicators", indicators: nil, correlation: noCorrelation, want: models.RiskLow},
		{
			name:        "critical indicator",
			indicators:  []models.SecurityIndicator{indicator(IndicatorArson, models.SeverityCritical)},
			correlation: noCorrelation,
			want:        models.RiskCritical,
		},
		{
			name:        "correlation forces critical",
			indicators:  []models.SecurityIndicator{indicator(IndicatorUnknownFire, models.SeverityMedium)},
			correlation: CorrelationResult{Threats: []CorrelatedThreat{{Type: "confirmed_security_incident"}}},
			want:        models.RiskCritical,
		},
		{
			name: "two high indicators",
			indicators: []models.SecurityIndicator{
				indicator(IndicatorBanditCamp, models.SeverityHigh),
				indicator(IndicatorIllegalMining, models.SeverityHigh),
			},
			correlation: noCorrelation,
			want:        models.RiskHigh,
		},
		{
			name:        "one high indicator",
			indicators:  []models.SecurityIndicator{indicator(IndicatorBanditCamp, models.SeverityHigh)},
			correlation: noCorrelation,
			want:        models.RiskMedium,
		},
		{
			name:        "only medium indicators",
			indicators:  []models.SecurityIndicator{indicator(IndicatorUnknownFire, models.SeverityMedium)},
			correlation: noCorrelation,
			want:        models.RiskLow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := reportThreatLevel(tt.indicators, tt.correlation); got != tt.want {
				t.Errorf("reportThreatLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}
