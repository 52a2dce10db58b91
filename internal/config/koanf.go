// Borderwatch - Geographic Security Intelligence and Risk Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/borderwatch

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists where the config file is searched, first hit wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/borderwatch/config.yaml",
	"/etc/borderwatch/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns the built-in defaults, applied before the config
// file and environment variables.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			Timeout:         30 * time.Second,
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
			CORSOrigins:     []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Cache: CacheConfig{
			Backend:    "memory",
			TTL:        5 * time.Minute,
			MaxEntries: 1024,
			Redis: RedisConfig{
				Addr: "",
				DB:   0,
			},
		},
		Ingest: IngestConfig{
			FIRMS: FIRMSConfig{
				Enabled: false,
				BaseURL: "https://firms.modaps.eosdis.nasa.gov/api/area/csv",
				// Bounding box for the monitored state and its border strip.
				Area:     "3.5,10.5,6.0,13.5",
				DayRange: 3,
				Timeout:  30 * time.Second,
			},
			News: NewsConfig{
				Enabled:         false,
				FeedURLs:        []string{},
				MaxItemsPerFeed: 20,
				Timeout:         20 * time.Second,
			},
			RefreshSchedule: "@every 10m",
		},
		Auth: AuthConfig{
			Enabled:  false,
			TokenTTL: 24 * time.Hour,
		},
		Scoring: ScoringConfig{
			BaselineMean: 5.0,
			BaselineStd:  3.0,
		},
	}
}

// Load builds the configuration from layered sources:
//  1. Built-in defaults
//  2. Optional YAML config file
//  3. Environment variables (highest priority)
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths are parsed from comma-separated env var strings.
var sliceConfigPaths = []string{
	"server.cors_origins",
	"ingest.news.feed_urls",
}

// processSliceFields converts comma-separated env values into slices. YAML
// values arrive as slices already and are left alone.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envTransformFunc maps environment variable names to koanf config paths.
// Unmapped variables are dropped so stray environment state cannot pollute
// the configuration.
func envTransformFunc(key string) string {
	envMappings := map[string]string{
		"http_host":           "server.host",
		"http_port":           "server.port",
		"http_timeout":        "server.timeout",
		"rate_limit_requests": "server.rate_limit_reqs",
		"rate_limit_window":   "server.rate_limit_window",
		"cors_origins":        "server.cors_origins",

		"log_level":  "logging.level",
		"log_format": "logging.format",
		"log_caller": "logging.caller",

		"cache_backend":     "cache.backend",
		"cache_ttl":         "cache.ttl",
		"cache_max_entries": "cache.max_entries",
		"redis_addr":        "cache.redis.addr",
		"redis_password":    "cache.redis.password",
		"redis_db":          "cache.redis.db",

		"firms_enabled":    "ingest.firms.enabled",
		"firms_base_url":   "ingest.firms.base_url",
		"nasa_firms_key":   "ingest.firms.api_key",
		"firms_area":       "ingest.firms.area",
		"firms_day_range":  "ingest.firms.day_range",
		"firms_timeout":    "ingest.firms.timeout",
		"news_enabled":     "ingest.news.enabled",
		"news_feed_urls":   "ingest.news.feed_urls",
		"news_max_items":   "ingest.news.max_items_per_feed",
		"news_timeout":     "ingest.news.timeout",
		"refresh_schedule": "ingest.refresh_schedule",

		"auth_enabled":   "auth.enabled",
		"jwt_secret":     "auth.jwt_secret",
		"token_ttl":      "auth.token_ttl",
		"admin_username": "auth.admin_username",
		"admin_password": "auth.admin_password",

		"baseline_mean": "scoring.baseline_mean",
		"baseline_std":  "scoring.baseline_std",
	}

	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}
