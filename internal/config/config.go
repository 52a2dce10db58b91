// Borderwatch - Geographic Security Intelligence and Risk Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/borderwatch

// Package config loads and validates the Borderwatch configuration.
//
// Configuration is layered with clear precedence: environment variables
// override the optional YAML config file, which overrides built-in defaults.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/tomtom215/borderwatch/internal/regions"
)

// Config is the root configuration for the Borderwatch server.
type Config struct {
	Server  ServerConfig  `koanf:"server" validate:"required"`
	Logging LoggingConfig `koanf:"logging"`
	Cache   CacheConfig   `koanf:"cache"`
	Ingest  IngestConfig  `koanf:"ingest"`
	Auth    AuthConfig    `koanf:"auth"`
	Scoring ScoringConfig `koanf:"scoring"`

	// Regions optionally replaces the built-in region table. Leave empty to
	// use the defaults.
	Regions []regions.Region `koanf:"regions" validate:"omitempty,dive"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port" validate:"min=1,max=65535"`
	Timeout time.Duration `koanf:"timeout" validate:"min=1s"`

	// RateLimitReqs requests per RateLimitWindow per client IP. Zero
	// disables rate limiting.
	RateLimitReqs   int           `koanf:"rate_limit_reqs" validate:"min=0"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`

	CORSOrigins []string `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// CacheConfig selects and tunes the response/feed cache backend.
type CacheConfig struct {
	// Backend is "memory" or "redis".
	Backend string `koanf:"backend" validate:"oneof=memory redis"`

	// TTL is the default entry lifetime.
	TTL time.Duration `koanf:"ttl" validate:"min=1s"`

	// MaxEntries bounds the in-memory backend. Ignored by redis.
	MaxEntries int `koanf:"max_entries" validate:"min=1"`

	Redis RedisConfig `koanf:"redis"`
}

// RedisConfig holds connection settings for the redis cache backend.
type RedisConfig struct {
	Addr     string `koanf:"addr"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db" validate:"min=0"`
}

// IngestConfig holds the external feed settings.
type IngestConfig struct {
	// FIRMS is the thermal hotspot feed.
	FIRMS FIRMSConfig `koanf:"firms"`

	// News is the OSINT report feed.
	News NewsConfig `koanf:"news"`

	// RefreshSchedule is a cron expression for background feed refresh.
	// Empty disables the scheduler.
	RefreshSchedule string `koanf:"refresh_schedule"`
}

// FIRMSConfig configures the NASA FIRMS thermal detection client.
type FIRMSConfig struct {
	Enabled bool   `koanf:"enabled"`
	BaseURL string `koanf:"base_url" validate:"omitempty,url"`
	APIKey  string `koanf:"api_key"`

	// Area is the bounding box west,south,east,north passed to the API.
	Area string `koanf:"area"`

	// DayRange is how many days of detections to request (1-10).
	DayRange int `koanf:"day_range" validate:"min=1,max=10"`

	Timeout time.Duration `koanf:"timeout" validate:"min=1s"`
}

// NewsConfig configures the OSINT RSS feed clients.
type NewsConfig struct {
	Enabled bool `koanf:"enabled"`

	// FeedURLs are the RSS/Atom feeds polled for security reporting.
	FeedURLs []string `koanf:"feed_urls" validate:"omitempty,dive,url"`

	// MaxItemsPerFeed caps how many entries are taken from each feed.
	MaxItemsPerFeed int `koanf:"max_items_per_feed" validate:"min=1"`

	Timeout time.Duration `koanf:"timeout" validate:"min=1s"`
}

// AuthConfig holds authentication settings.
type AuthConfig struct {
	// Enabled toggles JWT authentication on the API. When disabled, all
	// endpoints are open; intended for local development only.
	Enabled bool `koanf:"enabled"`

	// JWTSecret signs access tokens. Required when Enabled.
	JWTSecret string `koanf:"jwt_secret"`

	TokenTTL time.Duration `koanf:"token_ttl" validate:"min=1m"`

	// AdminUsername/AdminPassword bootstrap the initial admin account.
	AdminUsername string `koanf:"admin_username"`
	AdminPassword string `koanf:"admin_password"`
}

// ScoringConfig tunes the analytic models.
type ScoringConfig struct {
	// BaselineMean and BaselineStd parameterize the anomaly detector's
	// hotspot-count baseline.
	BaselineMean float64 `koanf:"baseline_mean" validate:"min=0"`
	BaselineStd  float64 `koanf:"baseline_std" validate:"min=0"`
}

var validate = validator.New()

// Validate checks the configuration for consistency beyond struct tags.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}

	if c.Auth.Enabled {
		if c.Auth.JWTSecret == "" {
			return fmt.Errorf("auth.jwt_secret is required when auth is enabled")
		}
		if len(c.Auth.JWTSecret) < 32 {
			return fmt.Errorf("auth.jwt_secret must be at least 32 bytes, got %d", len(c.Auth.JWTSecret))
		}
		if c.Auth.AdminUsername == "" || c.Auth.AdminPassword == "" {
			return fmt.Errorf("auth.admin_username and auth.admin_password are required when auth is enabled")
		}
	}

	if c.Cache.Backend == "redis" && c.Cache.Redis.Addr == "" {
		return fmt.Errorf("cache.redis.addr is required for the redis backend")
	}

	if c.Ingest.FIRMS.Enabled && c.Ingest.FIRMS.APIKey == "" {
		return fmt.Errorf("ingest.firms.api_key is required when the FIRMS feed is enabled")
	}

	return nil
}

// RegionRegistry builds the region registry from configuration, falling back
// to the built-in table when none is configured.
func (c *Config) RegionRegistry() (*regions.Registry, error) {
	if len(c.Regions) == 0 {
		return regions.Default(), nil
	}
	return regions.NewRegistry(c.Regions)
}
