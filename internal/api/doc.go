// Borderwatch - Geographic Security Intelligence and Risk Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/borderwatch

// Package api provides HTTP routing and handlers using the Chi router.
// Dashboard endpoints serve the threat overview, region assessments, and
// ML insights computed from the warmed feed caches; expensive responses
// are cached for five minutes.
package api
