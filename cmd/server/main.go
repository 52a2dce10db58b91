// Borderwatch - Geographic Security Intelligence and Risk Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/borderwatch

// Package main is the entry point for the Borderwatch server.
//
// Borderwatch fuses NASA FIRMS thermal anomaly detections with open-source
// security reporting into a per-region geographic risk picture for the
// monitored border state. The server initializes components in order:
//
//  1. Configuration: layered load from defaults, config file, and
//     environment variables (Koanf v2)
//  2. Cache: in-memory or Redis backend for feed batches and responses
//  3. Feed clients: FIRMS thermal client (circuit breaker + rate limiter)
//     and the RSS OSINT client
//  4. Warmer: seeds fallback intel, then refreshes on a cron schedule
//  5. WebSocket hub: pushes threat updates after each refresh
//  6. Authentication: JWT with role-based access control (optional)
//  7. HTTP server: Chi router with dashboard, security, and auth routes
//
// Configuration (highest priority wins): environment variables, config
// file (CONFIG_PATH or config.yaml), built-in defaults. A .env file in the
// working directory is loaded into the environment first.
//
// Required for authenticated deployments:
//   - AUTH_ENABLED=true
//   - JWT_SECRET: 32+ byte secret for token signing
//   - ADMIN_USERNAME / ADMIN_PASSWORD: bootstrap admin account
//
// For live thermal data:
//   - FIRMS_ENABLED=true
//   - NASA_FIRMS_KEY: MAP_KEY from the FIRMS API portal
//
// The server handles graceful shutdown on SIGINT and SIGTERM: it stops the
// refresh scheduler, closes websocket clients, drains in-flight requests
// (10s timeout), and closes the cache backend.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/tomtom215/borderwatch/internal/api"
	"github.com/tomtom215/borderwatch/internal/auth"
	"github.com/tomtom215/borderwatch/internal/cache"
	"github.com/tomtom215/borderwatch/internal/config"
	"github.com/tomtom215/borderwatch/internal/ingest"
	"github.com/tomtom215/borderwatch/internal/logging"
	"github.com/tomtom215/borderwatch/internal/regions"
	"github.com/tomtom215/borderwatch/internal/scoring"
	ws "github.com/tomtom215/borderwatch/internal/websocket"
)

const (
	shutdownTimeout = 10 * time.Second

	// broadcastInterval is how often the live overview is pushed to
	// websocket clients between feed refreshes.
	broadcastInterval = 2 * time.Minute
)

func main() {
	// A missing .env is fine; explicit config paths and env vars still work.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	registry, err := cfg.RegionRegistry()
	if err != nil {
		logging.Fatal().Err(err).Msg("invalid region configuration")
	}

	logging.Info().
		Int("regions", registry.Len()).
		Bool("firms_enabled", cfg.Ingest.FIRMS.Enabled).
		Bool("news_enabled", cfg.Ingest.News.Enabled).
		Bool("auth_enabled", cfg.Auth.Enabled).
		Str("cache_backend", cfg.Cache.Backend).
		Msg("configuration loaded")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Cache backend.
	var store cache.Store
	switch cfg.Cache.Backend {
	case "redis":
		store, err = cache.NewRedis(ctx, cache.RedisOptions{
			Addr:       cfg.Cache.Redis.Addr,
			Password:   cfg.Cache.Redis.Password,
			DB:         cfg.Cache.Redis.DB,
			DefaultTTL: cfg.Cache.TTL,
		})
		if err != nil {
			logging.Fatal().Err(err).Str("addr", cfg.Cache.Redis.Addr).Msg("failed to connect to redis")
		}
		logging.Info().Str("addr", cfg.Cache.Redis.Addr).Msg("redis cache connected")
	default:
		store = cache.NewMemory(cfg.Cache.TTL, cfg.Cache.MaxEntries)
		logging.Info().Int("max_entries", cfg.Cache.MaxEntries).Msg("in-memory cache initialized")
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.Err(err).Msg("error closing cache")
		}
	}()

	// Feed clients. Either feed may be disabled; the warmer serves fallback
	// intel and an empty hotspot batch in that case.
	var hotspotFetcher ingest.HotspotFetcher
	if cfg.Ingest.FIRMS.Enabled {
		hotspotFetcher = ingest.NewFIRMSClient(ingest.FIRMSOptions{
			BaseURL:  cfg.Ingest.FIRMS.BaseURL,
			APIKey:   cfg.Ingest.FIRMS.APIKey,
			Area:     cfg.Ingest.FIRMS.Area,
			DayRange: cfg.Ingest.FIRMS.DayRange,
			Timeout:  cfg.Ingest.FIRMS.Timeout,
		})
	} else {
		logging.Warn().Msg("FIRMS feed disabled, thermal data will be empty")
	}

	var reportFetcher ingest.ReportFetcher
	if cfg.Ingest.News.Enabled {
		reportFetcher = ingest.NewNewsClient(ingest.NewsOptions{
			FeedURLs:        cfg.Ingest.News.FeedURLs,
			MaxItemsPerFeed: cfg.Ingest.News.MaxItemsPerFeed,
			Timeout:         cfg.Ingest.News.Timeout,
		})
	} else {
		logging.Warn().Msg("news feeds disabled, serving fallback intel")
	}

	warmer := ingest.NewWarmer(store, hotspotFetcher, reportFetcher)
	warmer.WarmAll(ctx)

	// WebSocket hub for live dashboard updates.
	hub := ws.NewHub()
	go func() {
		if err := hub.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logging.Err(err).Msg("websocket hub exited")
		}
	}()

	baseline := scoring.Baseline{Mean: cfg.Scoring.BaselineMean, Std: cfg.Scoring.BaselineStd}
	broadcastThreatUpdate(ctx, warmer, registry, baseline, hub)

	// Keep connected dashboards current even when no refresh fires.
	go func() {
		ticker := time.NewTicker(broadcastInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				broadcastThreatUpdate(ctx, warmer, registry, baseline, hub)
			}
		}
	}()

	// Background feed refresh.
	var scheduler *cron.Cron
	if cfg.Ingest.RefreshSchedule != "" {
		scheduler = cron.New()
		_, err := scheduler.AddFunc(cfg.Ingest.RefreshSchedule, func() {
			warmer.Refresh(ctx)
			broadcastThreatUpdate(ctx, warmer, registry, baseline, hub)
		})
		if err != nil {
			logging.Fatal().Err(err).Str("schedule", cfg.Ingest.RefreshSchedule).Msg("invalid refresh schedule")
		}
		scheduler.Start()
		logging.Info().Str("schedule", cfg.Ingest.RefreshSchedule).Msg("feed refresh scheduled")
	} else {
		logging.Warn().Msg("refresh schedule empty, feeds will not refresh in the background")
	}

	// Authentication.
	var jwtManager *auth.JWTManager
	creds := auth.NewCredentialStore()
	if cfg.Auth.Enabled {
		jwtManager, err = auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
		if err != nil {
			logging.Fatal().Err(err).Msg("failed to initialize JWT manager")
		}
		if err := creds.AddUser(cfg.Auth.AdminUsername, cfg.Auth.AdminPassword, auth.RoleAdmin); err != nil {
			logging.Fatal().Err(err).Msg("failed to register admin account")
		}
		logging.Info().Str("admin", cfg.Auth.AdminUsername).Msg("JWT authentication enabled")
	} else {
		logging.Warn().Msg("authentication is DISABLED, all endpoints are public")
	}

	handler := api.NewHandler(api.HandlerOptions{
		Feeds:    warmer,
		Registry: registry,
		Baseline: baseline,
		Store:    store,
		JWT:      jwtManager,
		Creds:    creds,
	})

	router := api.NewRouter(handler, api.NewAuthenticator(jwtManager, cfg.Auth.Enabled), api.RouterConfig{
		CORSAllowedOrigins: cfg.Server.CORSOrigins,
		RateLimitRequests:  cfg.Server.RateLimitReqs,
		RateLimitWindow:    cfg.Server.RateLimitWindow,
		WSHandler:          ws.ServeWS(hub),
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  2 * cfg.Server.Timeout,
	}

	go func() {
		logging.Info().Str("addr", addr).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	logging.Info().Msg("shutdown signal received")

	if scheduler != nil {
		<-scheduler.Stop().Done()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Err(err).Msg("server shutdown failed")
	}
	logging.Info().Msg("server stopped")
}

// broadcastThreatUpdate recomputes the headline threat picture from the
// current feed batches and pushes it to websocket clients.
func broadcastThreatUpdate(ctx context.Context, feeds api.FeedSource, registry *regions.Registry, baseline scoring.Baseline, hub *ws.Hub) {
	hotspots := feeds.Hotspots(ctx)
	reports := feeds.Reports(ctx)

	overview := scoring.BuildOverview(registry, hotspots, reports, baseline, time.Now())
	hub.BroadcastThreatUpdate(string(overview.ThreatLevel), overview.ThreatScore, len(hotspots), len(reports))
}
