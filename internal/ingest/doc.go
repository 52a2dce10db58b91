// Borderwatch - Geographic Security Intelligence and Risk Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/borderwatch

// Package ingest fetches and normalizes the external data feeds: NASA FIRMS
// thermal detections and OSINT news reports.
//
// Feed clients are resilient by construction: every upstream call goes
// through a circuit breaker and a rate limiter, malformed records are
// skipped and counted rather than failing the batch, and the Warmer keeps
// the cache populated with fallback data so the API always has something to
// serve.
package ingest
