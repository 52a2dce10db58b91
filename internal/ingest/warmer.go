// Borderwatch - Geographic Security Intelligence and Risk Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/borderwatch

package ingest

import (
	"context"
	"time"

	"github.com/tomtom215/borderwatch/internal/cache"
	"github.com/tomtom215/borderwatch/internal/logging"
	"github.com/tomtom215/borderwatch/internal/models"
)

// Cache keys owned by the warmer.
const (
	KeyIntel    = "feed:intel"
	KeyHotspots = "feed:hotspots"
)

// Cache lifetimes. Fallback data lives longer than live data so a dead
// upstream never leaves the dashboard empty.
const (
	liveTTL     = 3 * time.Minute
	fallbackTTL = 5 * time.Minute
)

// HotspotFetcher is the thermal feed dependency of the Warmer.
type HotspotFetcher interface {
	FetchAllSensors(ctx context.Context) ([]models.ThermalDetection, error)
}

// ReportFetcher is the news feed dependency of the Warmer.
type ReportFetcher interface {
	FetchAll(ctx context.Context) []models.IntelReport
}

// Warmer keeps the feed caches populated. On startup it seeds fallback
// intel so the API has data before the first upstream fetch completes, then
// replaces it with live data; Refresh is run on the background schedule.
type Warmer struct {
	store    cache.Store
	hotspots HotspotFetcher
	reports  ReportFetcher
	now      func() time.Time
}

// NewWarmer builds a warmer. Either fetcher may be nil when the
// corresponding feed is disabled.
func NewWarmer(store cache.Store, hotspots HotspotFetcher, reports ReportFetcher) *Warmer {
	return &Warmer{store: store, hotspots: hotspots, reports: reports, now: time.Now}
}

// WarmAll seeds fallback intel, then performs the first live refresh.
func (w *Warmer) WarmAll(ctx context.Context) {
	if err := cache.SetJSON(ctx, w.store, KeyIntel, FallbackReports(w.now()), fallbackTTL); err != nil {
		logging.Err(err).Msg("failed to seed fallback intel")
	}
	if err := cache.SetJSON(ctx, w.store, KeyHotspots, []models.ThermalDetection{}, fallbackTTL); err != nil {
		logging.Err(err).Msg("failed to seed empty hotspot batch")
	}
	logging.Info().Msg("caches seeded with fallback data")

	w.Refresh(ctx)
}

// Refresh fetches live data from every enabled feed and replaces the cached
// batches. A feed that returns nothing keeps its previous cache entry.
func (w *Warmer) Refresh(ctx context.Context) {
	if w.reports != nil {
		reports := w.reports.FetchAll(ctx)
		if len(reports) > 0 {
			if err := cache.SetJSON(ctx, w.store, KeyIntel, reports, liveTTL); err != nil {
				logging.Err(err).Msg("failed to cache intel batch")
			} else {
				logging.Info().Int("reports", len(reports)).Msg("intel cache refreshed")
			}
		} else {
			logging.Warn().Msg("news feeds returned no reports, keeping previous batch")
		}
	}

	if w.hotspots != nil {
		detections, err := w.hotspots.FetchAllSensors(ctx)
		if err != nil && len(detections) == 0 {
			logging.Err(err).Msg("thermal feed refresh failed, keeping previous batch")
			return
		}
		if err := cache.SetJSON(ctx, w.store, KeyHotspots, detections, liveTTL); err != nil {
			logging.Err(err).Msg("failed to cache hotspot batch")
		} else {
			logging.Info().Int("hotspots", len(detections)).Msg("hotspot cache refreshed")
		}
	}
}

// Hotspots returns the cached thermal batch, or an empty batch on miss.
func (w *Warmer) Hotspots(ctx context.Context) []models.ThermalDetection {
	var out []models.ThermalDetection
	if ok, err := cache.GetJSON(ctx, w.store, KeyHotspots, &out); err != nil || !ok || out == nil {
		return []models.ThermalDetection{}
	}
	return out
}

// Reports returns the cached intel batch, or the fallback batch on miss.
func (w *Warmer) Reports(ctx context.Context) []models.IntelReport {
	var out []models.IntelReport
	if ok, err := cache.GetJSON(ctx, w.store, KeyIntel, &out); err != nil || !ok {
		return FallbackReports(w.now())
	}
	return out
}

// FallbackReports is the built-in intel batch served while the upstream
// feeds are unreachable or still warming.
func FallbackReports(now time.Time) []models.IntelReport {
	return []models.IntelReport{
		{
			Title:       "Security Forces Deploy to Kebbi Border Communities",
			Description: "Nigerian military and paramilitary forces have been deployed to border LGAs including Zuru, Fakai, and Sakaba following recent security assessments. Patrols increased along Sokoto and Zamfara borders.",
			Source:      "Borderwatch Monitor",
			Severity:    models.SeverityHigh,
			Category:    "military",
			PublishedAt: now,
		},
		{
			Title:       "Farmers-Herders Tensions Reported in Southern Kebbi",
			Description: "Local authorities report tensions in Fakai and Danko/Wasagu LGAs. Security personnel deployed to prevent escalation. Community leaders engaged in peace talks.",
			Source:      "Borderwatch Monitor",
			Severity:    models.SeverityMedium,
			Category:    "conflict",
			PublishedAt: now,
		},
		{
			Title:       "Bandit Activity Detected Near Zamfara Border",
			Description: "Intelligence reports indicate armed group movement near border with Zamfara State. Security forces on high alert in affected LGAs including Shanga and Bagudo.",
			Source:      "Borderwatch Monitor",
			Severity:    models.SeverityCritical,
			Category:    "banditry",
			PublishedAt: now,
		},
	}
}
