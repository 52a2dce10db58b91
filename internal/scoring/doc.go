// Borderwatch - Geographic Security Intelligence and Risk Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/borderwatch

// Package scoring is the risk-scoring and multi-source correlation engine.
//
// It converts raw, heterogeneous signals (thermal hotspot detections,
// free-text intelligence reports, static geographic metadata) into ranked,
// explainable per-region threat scores, plus the statistical anomaly, trend,
// and prediction layer built on top of them.
//
// Every function in this package is a pure, synchronous, CPU-bound function
// over caller-supplied in-memory collections: no I/O, no blocking, no
// internal mutable state. All functions may be invoked concurrently as long
// as the region registry is read-only after initialization, which the
// regions package guarantees. Timeouts belong at the data-acquisition
// boundary, not here.
//
// Empty batches never raise: each function returns a well-defined zero
// result, so the system always produces a usable score even with no live
// data.
package scoring
