// Borderwatch - Geographic Security Intelligence and Risk Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/borderwatch

// Package cache provides the response and feed cache behind a pluggable
// Store interface, with in-memory and Redis backends.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// Store is the cache backend contract. Implementations must be safe for
// concurrent use.
type Store interface {
	// Get retrieves the raw value for key. The bool reports whether the key
	// was present and unexpired; error is reserved for backend failures.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key for ttl. A non-positive ttl falls back to
	// the backend's default.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Ping reports backend health.
	Ping(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}

// Stats tracks cache performance counters.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Keys      int64
}

// HitRate returns the hit percentage, 0 when the cache is untouched.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}

// GetJSON retrieves key and unmarshals it into out. The bool reports a
// usable hit; undecodable entries are treated as misses and removed.
func GetJSON(ctx context.Context, s Store, key string, out interface{}) (bool, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		// Stale schema from a previous version; drop it.
		_ = s.Delete(ctx, key)
		return false, nil
	}
	return true, nil
}

// SetJSON marshals value and stores it under key.
func SetJSON(ctx context.Context, s Store, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal %s: %w", key, err)
	}
	return s.Set(ctx, key, raw, ttl)
}
