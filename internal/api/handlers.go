// Borderwatch - Geographic Security Intelligence and Risk Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/borderwatch

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"

	"github.com/tomtom215/borderwatch/internal/auth"
	"github.com/tomtom215/borderwatch/internal/cache"
	"github.com/tomtom215/borderwatch/internal/logging"
	"github.com/tomtom215/borderwatch/internal/metrics"
	"github.com/tomtom215/borderwatch/internal/models"
	"github.com/tomtom215/borderwatch/internal/regions"
	"github.com/tomtom215/borderwatch/internal/scoring"
)

// responseCacheTTL bounds how stale a cached dashboard response can be.
const responseCacheTTL = 5 * time.Minute

// FeedSource supplies the current feed batches. The ingest warmer
// satisfies it.
type FeedSource interface {
	Hotspots(ctx context.Context) []models.ThermalDetection
	Reports(ctx context.Context) []models.IntelReport
}

// Handler carries the dependencies shared by all HTTP handlers.
type Handler struct {
	feeds    FeedSource
	registry *regions.Registry
	baseline scoring.Baseline
	store    cache.Store
	jwt      *auth.JWTManager
	creds    *auth.CredentialStore
	started  time.Time
	now      func() time.Time
}

// HandlerOptions configures a Handler.
type HandlerOptions struct {
	Feeds    FeedSource
	Registry *regions.Registry
	Baseline scoring.Baseline
	Store    cache.Store
	JWT      *auth.JWTManager
	Creds    *auth.CredentialStore
}

// NewHandler builds the handler set.
func NewHandler(opts HandlerOptions) *Handler {
	if opts.Registry == nil {
		opts.Registry = regions.Default()
	}
	if opts.Baseline == (scoring.Baseline{}) {
		opts.Baseline = scoring.DefaultBaseline()
	}
	return &Handler{
		feeds:    opts.Feeds,
		registry: opts.Registry,
		baseline: opts.Baseline,
		store:    opts.Store,
		jwt:      opts.JWT,
		creds:    opts.Creds,
		started:  time.Now(),
		now:      time.Now,
	}
}

// cachedJSON serves a response from the cache store, building and caching
// it on a miss. Cache failures fall back to building the response.
func (h *Handler) cachedJSON(w http.ResponseWriter, r *http.Request, key string, build func() (interface{}, error)) {
	ctx := r.Context()

	if h.store != nil {
		if body, found, err := h.store.Get(ctx, key); err == nil && found {
			metrics.CacheHits.WithLabelValues("response").Inc()
			writeJSONBytes(w, http.StatusOK, body)
			return
		}
		metrics.CacheMisses.WithLabelValues("response").Inc()
	}

	v, err := build()
	if err != nil {
		logging.Ctx(ctx).Err(err).Str("cache_key", key).Msg("failed to build response")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	body, err := json.Marshal(v)
	if err != nil {
		logging.Ctx(ctx).Err(err).Msg("failed to marshal response")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if h.store != nil {
		if err := h.store.Set(ctx, key, body, responseCacheTTL); err != nil {
			logging.Ctx(ctx).Err(err).Str("cache_key", key).Msg("failed to cache response")
		}
	}
	writeJSONBytes(w, http.StatusOK, body)
}

// DashboardOverview serves the full threat overview.
func (h *Handler) DashboardOverview(w http.ResponseWriter, r *http.Request) {
	h.cachedJSON(w, r, "resp:overview", func() (interface{}, error) {
		defer metrics.TimeScoringPass("overview")()
		ctx := r.Context()
		overview := scoring.BuildOverview(
			h.registry,
			h.feeds.Hotspots(ctx),
			h.feeds.Reports(ctx),
			h.baseline,
			h.now(),
		)
		metrics.ThreatLevel.Set(overview.ThreatScore)
		metrics.RegionsCritical.Set(float64(overview.Stats.CriticalRegions))
		return overview, nil
	})
}

// DashboardRegions serves the per-region risk assessments.
func (h *Handler) DashboardRegions(w http.ResponseWriter, r *http.Request) {
	h.cachedJSON(w, r, "resp:regions", func() (interface{}, error) {
		defer metrics.TimeScoringPass("region_risk")()
		ctx := r.Context()
		assessments := scoring.AssessRegions(h.registry, h.feeds.Hotspots(ctx), h.feeds.Reports(ctx))
		return map[string]interface{}{
			"generated_at": h.now(),
			"regions":      assessments,
		}, nil
	})
}

// DashboardThreatLevel serves the headline threat condition only.
func (h *Handler) DashboardThreatLevel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	overview := scoring.BuildOverview(
		h.registry,
		h.feeds.Hotspots(ctx),
		h.feeds.Reports(ctx),
		h.baseline,
		h.now(),
	)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"threat_level": overview.ThreatLevel,
		"threat_score": overview.ThreatScore,
		"generated_at": overview.GeneratedAt,
	})
}

// mlInsights is the combined analytics payload for the insights panel.
type mlInsights struct {
	GeneratedAt time.Time                 `json:"generated_at"`
	Predictions scoring.PredictionSummary `json:"predictions"`
	Anomalies   models.AnomalyReport      `json:"anomalies"`
	Trends      models.TrendReport        `json:"trends"`
}

// DashboardMLInsights serves predictions, anomalies, and trends in one
// payload.
func (h *Handler) DashboardMLInsights(w http.ResponseWriter, r *http.Request) {
	h.cachedJSON(w, r, "resp:ml-insights", func() (interface{}, error) {
		defer metrics.TimeScoringPass("ml_insights")()
		ctx := r.Context()
		hotspots := h.feeds.Hotspots(ctx)
		reports := h.feeds.Reports(ctx)

		anomalies := scoring.DetectAnomalies(hotspots, h.baseline)
		metrics.AnomaliesDetected.Set(float64(len(anomalies.Details)))

		return mlInsights{
			GeneratedAt: h.now(),
			Predictions: scoring.PredictThreats(h.registry, reports, hotspots),
			Anomalies:   anomalies,
			Trends:      scoring.AnalyzeTrends(reports),
		}, nil
	})
}

// SecurityReport serves the per-region fire security and correlation
// report. Unknown regions are a 404.
func (h *Handler) SecurityReport(w http.ResponseWriter, r *http.Request) {
	regionName := chi.URLParam(r, "region")
	region, found := h.registry.Get(regionName)
	if !found {
		writeError(w, http.StatusNotFound, "unknown region")
		return
	}

	ctx := r.Context()
	report := scoring.BuildSecurityReport(region.Name, h.feeds.Hotspots(ctx), h.feeds.Reports(ctx), h.now())
	writeJSON(w, http.StatusOK, report)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	Role      auth.Role `json:"role"`
	ExpiresIn int64     `json:"expires_in"`
}

// Login verifies credentials and issues a JWT.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	role, err := h.creds.Authenticate(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid username or password")
			return
		}
		logging.Ctx(r.Context()).Err(err).Msg("login failed")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	token, err := h.jwt.GenerateToken(req.Username, role)
	if err != nil {
		logging.Ctx(r.Context()).Err(err).Msg("token generation failed")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Token:     token,
		Role:      role,
		ExpiresIn: int64(h.jwt.TokenTTL().Seconds()),
	})
}

// Verify validates the bearer token and echoes its identity.
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"username":   claims.Username,
		"role":       claims.Role,
		"expires_at": claims.ExpiresAt.Time,
	})
}

// Health is the liveness probe.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(h.started).Round(time.Second).String(),
	})
}

// HealthDetailed reports component health including the cache backend.
func (h *Handler) HealthDetailed(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	overall := "ok"
	status := http.StatusOK
	cacheStatus := "ok"
	if h.store != nil {
		if err := h.store.Ping(ctx); err != nil {
			cacheStatus = "unavailable"
			overall = "degraded"
			status = http.StatusServiceUnavailable
		}
	} else {
		cacheStatus = "disabled"
	}

	writeJSON(w, status, map[string]interface{}{
		"status":  overall,
		"uptime":  time.Since(h.started).Round(time.Second).String(),
		"cache":   cacheStatus,
		"regions": h.registry.Len(),
	})
}
