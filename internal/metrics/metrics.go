// Borderwatch - Geographic Security Intelligence and Risk Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/borderwatch

// Package metrics provides Prometheus instrumentation for the API layer,
// feed ingestion, scoring passes, and the cache.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API endpoint metrics.
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Feed ingestion metrics.
	IngestFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ingest_fetch_duration_seconds",
			Help:    "Duration of external feed fetches in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"feed"},
	)

	IngestFetchErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ingest_fetch_errors_total",
			Help: "Total number of feed fetch failures",
		},
		[]string{"feed", "reason"},
	)

	IngestRecords = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ingest_records_total",
			Help: "Total number of records ingested per feed",
		},
		[]string{"feed"},
	)

	IngestRecordsSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ingest_records_skipped_total",
			Help: "Total number of feed records skipped (malformed or duplicate)",
		},
		[]string{"feed", "reason"},
	)

	IngestBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "ingest_breaker_open",
			Help: "Whether the circuit breaker for a feed is open (1) or closed (0)",
		},
		[]string{"feed"},
	)

	// Scoring metrics.
	ScoringPassDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scoring_pass_duration_seconds",
			Help:    "Duration of analytic scoring passes in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"model"},
	)

	ThreatLevel = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "threat_level_score",
			Help: "Current global threat level score (0.25 guarded to 0.85 critical)",
		},
	)

	RegionsCritical = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "regions_critical",
			Help: "Number of regions currently assessed critical",
		},
	)

	AnomaliesDetected = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "anomalies_detected",
			Help: "Number of anomalies found in the most recent detection pass",
		},
	)

	// Cache metrics.
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"key_prefix"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"key_prefix"},
	)

	// WebSocket metrics.
	WSConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_connections",
			Help: "Current number of WebSocket connections",
		},
	)

	WSMessagesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_messages_sent_total",
			Help: "Total number of WebSocket messages broadcast",
		},
	)

	// Auth metrics.
	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
		[]string{"result"},
	)
)

// ObserveAPIRequest records one completed API request.
func ObserveAPIRequest(method, endpoint string, status int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TimeScoringPass starts a timer for one scoring model pass and returns the
// function that records it. Intended for use with defer.
func TimeScoringPass(model string) func() {
	start := time.Now()
	return func() {
		ScoringPassDuration.WithLabelValues(model).Observe(time.Since(start).Seconds())
	}
}

// ObserveIngest records one feed fetch outcome.
func ObserveIngest(feed string, records int, duration time.Duration, err error) {
	IngestFetchDuration.WithLabelValues(feed).Observe(duration.Seconds())
	if err != nil {
		IngestFetchErrors.WithLabelValues(feed, "fetch").Inc()
		return
	}
	IngestRecords.WithLabelValues(feed).Add(float64(records))
}
