// Borderwatch - Geographic Security Intelligence and Risk Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/borderwatch

package scoring

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/borderwatch/internal/models"
)

// Fire signature bands. A cluster's size and average brightness decide
// which threat category it most plausibly represents. Artisanal mining
// kilns burn in the 400-600K band in small clusters; evidence/arson burns
// run hotter in ones and twos; camp cooking fires sit in the 300-400K band.
const (
	fireClusterRadiusKm = 2.0

	miningMinSize       = 3
	miningMinBrightness = 400.0
	miningMaxBrightness = 600.0

	arsonMinBrightness = 500.0
	arsonMaxSize       = 3

	campMinSize       = 2
	campMinBrightness = 300.0
	campMaxBrightness = 400.0
)

// Indicator type names emitted by the classifier.
const (
	IndicatorIllegalMining = "suspected_illegal_mining"
	IndicatorArson         = "suspected_arson_evidence_burning"
	IndicatorBanditCamp    = "suspected_bandit_camp"
	IndicatorUnknownFire   = "unknown_fire"
)

// thermalFeedSource labels indicators derived from the thermal feed.
const thermalFeedSource = "NASA_FIRMS"

// ClassifyFireCluster classifies one thermal cluster into a candidate
// threat category. The bands are evaluated in priority order and the first
// match wins; a cluster matching none of them still emits a low-confidence
// generic indicator, so no cluster is ever silently dropped.
func ClassifyFireCluster(cluster Cluster, now time.Time) models.SecurityIndicator {
	avg := cluster.AvgBrightness()

	indicator := models.SecurityIndicator{
		ID:                uuid.NewString(),
		IndicatorType:     IndicatorUnknownFire,
		Source:            thermalFeedSource,
		Location:          cluster.Centroid,
		Timestamp:         now,
		Confidence:        models.ConfidenceLow,
		Severity:          models.SeverityMedium,
		Description:       fmt.Sprintf("%d thermal anomalies detected", cluster.Size),
		RecommendedAction: "Investigate source of fires",
	}

	switch {
	case cluster.Size >= miningMinSize && avg >= miningMinBrightness && avg <= miningMaxBrightness:
		indicator.IndicatorType = IndicatorIllegalMining
		indicator.Confidence = models.ConfidenceMedium
		indicator.Severity = models.SeverityHigh
		indicator.Description = fmt.Sprintf("cluster of %d fires (avg brightness %.0fK) consistent with artisanal mining kilns",
			cluster.Size, avg)
		indicator.RecommendedAction = "Deploy mining enforcement team to verify illegal mining activity. Check for unauthorized pits and equipment."

	case avg > arsonMinBrightness && cluster.Size <= arsonMaxSize:
		indicator.IndicatorType = IndicatorArson
		indicator.Confidence = models.ConfidenceHigh
		indicator.Severity = models.SeverityCritical
		indicator.Description = fmt.Sprintf("high-intensity fire (%.0fK) may indicate arson or evidence destruction", avg)
		indicator.RecommendedAction = "URGENT: Dispatch patrol to verify if settlement/farm under attack. Alert nearby communities."

	case cluster.Size >= campMinSize && avg >= campMinBrightness && avg < campMaxBrightness:
		indicator.IndicatorType = IndicatorBanditCamp
		indicator.Confidence = models.ConfidenceMedium
		indicator.Severity = models.SeverityHigh
		indicator.Description = fmt.Sprintf("small fires (%d) in remote area consistent with temporary camp cooking/heating",
			cluster.Size)
		indicator.RecommendedAction = "Surveillance recommended. Check for associated vehicle tracks or temporary structures. DO NOT approach without backup."
	}

	return indicator
}

// AnalyzeFireSecurity clusters a hotspot batch at close range (2 km) and
// classifies every cluster. Returns one indicator per cluster, in cluster
// discovery order.
func AnalyzeFireSecurity(hotspots []models.ThermalDetection, now time.Time) []models.SecurityIndicator {
	clusters := ClusterHotspots(hotspots, fireClusterRadiusKm)
	if len(clusters) == 0 {
		return []models.SecurityIndicator{}
	}

	indicators := make([]models.SecurityIndicator, 0, len(clusters))
	for _, c := range clusters {
		indicators = append(indicators, ClassifyFireCluster(c, now))
	}
	return indicators
}
