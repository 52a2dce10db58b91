// Borderwatch - Geographic Security Intelligence and Risk Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/borderwatch

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/borderwatch/internal/auth"
)

// RouterConfig holds the router-level knobs from configuration.
type RouterConfig struct {
	CORSAllowedOrigins []string
	RateLimitRequests  int
	RateLimitWindow    time.Duration

	// WSHandler serves websocket upgrades on /api/v1/ws when set.
	WSHandler http.HandlerFunc
}

// rateLimit pairs a request budget with its window.
type rateLimit struct {
	requests int
	window   time.Duration
}

// Endpoint-specific rate limits. Login is strict to slow credential
// stuffing; health is permissive for monitoring probes.
var (
	rateLimitLogin  = rateLimit{requests: 5, window: 5 * time.Minute}
	rateLimitHealth = rateLimit{requests: 1000, window: time.Minute}
)

// NewRouter wires the full route tree.
func NewRouter(h *Handler, authn *Authenticator, cfg RouterConfig) http.Handler {
	if cfg.RateLimitRequests <= 0 {
		cfg.RateLimitRequests = 100
	}
	if cfg.RateLimitWindow <= 0 {
		cfg.RateLimitWindow = time.Minute
	}

	r := chi.NewRouter()

	// Global middleware, applied to every route in order.
	r.Use(RequestID())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(RequestLogger())
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         86400,
	}))

	r.Route("/api/health", func(r chi.Router) {
		r.Use(httprate.LimitByIP(rateLimitHealth.requests, rateLimitHealth.window))
		r.Get("/", h.Health)
		r.Get("/detailed", h.HealthDetailed)
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(
			httprate.LimitByIP(rateLimitLogin.requests, rateLimitLogin.window),
			Metrics("/api/v1/auth/login"),
		).Post("/login", h.Login)

		r.With(
			httprate.LimitByIP(cfg.RateLimitRequests, cfg.RateLimitWindow),
			Metrics("/api/v1/auth/verify"),
			authn.Require(auth.PermDashboardRead),
		).Get("/verify", h.Verify)
	})

	r.Route("/api/v1/dashboard", func(r chi.Router) {
		r.Use(httprate.LimitByIP(cfg.RateLimitRequests, cfg.RateLimitWindow))
		r.Use(authn.Require(auth.PermDashboardRead))

		r.With(Metrics("/api/v1/dashboard/overview")).Get("/overview", h.DashboardOverview)
		r.With(Metrics("/api/v1/dashboard/regions")).Get("/regions", h.DashboardRegions)
		r.With(Metrics("/api/v1/dashboard/threat-level")).Get("/threat-level", h.DashboardThreatLevel)
		r.With(Metrics("/api/v1/dashboard/ml-insights")).Get("/ml-insights", h.DashboardMLInsights)
	})

	r.Route("/api/v1/security", func(r chi.Router) {
		r.Use(httprate.LimitByIP(cfg.RateLimitRequests, cfg.RateLimitWindow))
		r.Use(authn.Require(auth.PermSecurityRead))

		r.With(Metrics("/api/v1/security/report")).Get("/report/{region}", h.SecurityReport)
	})

	if cfg.WSHandler != nil {
		r.With(
			httprate.LimitByIP(cfg.RateLimitRequests, cfg.RateLimitWindow),
			authn.Require(auth.PermDashboardRead),
		).Get("/api/v1/ws", cfg.WSHandler)
	}

	r.Handle("/metrics", promhttp.Handler())

	return r
}
