// Borderwatch - Geographic Security Intelligence and Risk Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/borderwatch

package cache

import (
	"context"
	"sync"
	"time"
)

// cleanupInterval is how often the background sweeper removes expired
// entries.
const cleanupInterval = 5 * time.Minute

type entry struct {
	value     []byte
	expiresAt time.Time
}

// Memory is a thread-safe in-memory Store with TTL expiration and a bounded
// entry count. When full, Set evicts the entry closest to expiry.
type Memory struct {
	mu         sync.RWMutex
	entries    map[string]entry
	defaultTTL time.Duration
	maxEntries int
	stats      Stats
	stop       chan struct{}
	stopOnce   sync.Once
}

// NewMemory creates an in-memory store and starts its background sweeper.
// Call Close to stop the sweeper.
func NewMemory(defaultTTL time.Duration, maxEntries int) *Memory {
	if defaultTTL <= 0 {
		defaultTTL = 5 * time.Minute
	}
	if maxEntries <= 0 {
		maxEntries = 1024
	}
	m := &Memory{
		entries:    make(map[string]entry),
		defaultTTL: defaultTTL,
		maxEntries: maxEntries,
		stop:       make(chan struct{}),
	}
	go m.cleanupLoop()
	return m
}

// Get implements Store.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok {
		m.mu.Lock()
		m.stats.Misses++
		m.mu.Unlock()
		return nil, false, nil
	}

	if time.Now().After(e.expiresAt) {
		m.mu.Lock()
		// Recheck under the write lock; another goroutine may have replaced
		// the entry since the read.
		if cur, still := m.entries[key]; still && time.Now().After(cur.expiresAt) {
			delete(m.entries, key)
			m.stats.Evictions++
		}
		m.stats.Misses++
		m.mu.Unlock()
		return nil, false, nil
	}

	m.mu.Lock()
	m.stats.Hits++
	m.mu.Unlock()
	return e.value, true, nil
}

// Set implements Store.
func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = m.defaultTTL
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.entries[key]; !exists && len(m.entries) >= m.maxEntries {
		m.evictSoonestLocked()
	}
	m.entries[key] = entry{value: value, expiresAt: time.Now().Add(ttl)}
	return nil
}

// evictSoonestLocked removes the entry nearest to expiry. Caller holds mu.
func (m *Memory) evictSoonestLocked() {
	var victim string
	var soonest time.Time
	for k, e := range m.entries {
		if victim == "" || e.expiresAt.Before(soonest) {
			victim, soonest = k, e.expiresAt
		}
	}
	if victim != "" {
		delete(m.entries, victim)
		m.stats.Evictions++
	}
}

// Delete implements Store.
func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

// Ping implements Store. The in-memory backend is always healthy.
func (m *Memory) Ping(context.Context) error {
	return nil
}

// Close stops the background sweeper. Safe to call multiple times.
func (m *Memory) Close() error {
	m.stopOnce.Do(func() { close(m.stop) })
	return nil
}

// GetStats returns a snapshot of the cache counters.
func (m *Memory) GetStats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s := m.stats
	s.Keys = int64(len(m.entries))
	return s
}

func (m *Memory) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			m.removeExpired()
		}
	}
}

func (m *Memory) removeExpired() {
	now := time.Now()
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, e := range m.entries {
		if now.After(e.expiresAt) {
			delete(m.entries, k)
			m.stats.Evictions++
		}
	}
}

var _ Store = (*Memory)(nil)
