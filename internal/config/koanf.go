// Forkcast - Food Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

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

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/forkcast/config.yaml",
	"/etc/forkcast/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8480,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Sources: SourcesConfig{
			DefaultMode:     "hybrid",
			PrimaryTimeout:  3 * time.Second,
			LocalTimeout:    1 * time.Second,
			MaxRestaurants:  500,
			MenuConcurrency: 8,
			PrimaryRPS:      0, // Unlimited
			PrimaryBurst:    10,
			Breaker: BreakerConfig{
				MaxRequests:  3,
				Interval:     1 * time.Minute,
				Timeout:      30 * time.Second,
				MinRequests:  10,
				FailureRatio: 0.6,
			},
		},
		Database: DatabaseConfig{
			Path:      "/data/forkcast.duckdb",
			MaxMemory: "1GB",
			Threads:   0, // 0 = use runtime.NumCPU()
		},
		Local: LocalConfig{
			Path:       "/data/local",
			InMemory:   false,
			SeedFile:   "",
			GCInterval: 10 * time.Minute,
			GCRatio:    0.5,
		},
		Events: EventsConfig{
			Backend:                    "gochannel",
			Topic:                      "forkcast.local.changed",
			NATSURL:                    "nats://127.0.0.1:4222",
			EmbeddedServer:             false,
			EmbeddedHost:               "127.0.0.1",
			EmbeddedPort:               4222,
			RouterRetryCount:           3,
			RouterRetryInitialInterval: 100 * time.Millisecond,
			RouterCloseTimeout:         30 * time.Second,
		},
		Ranking: RankingConfig{
			DefaultLimit:         10,
			MaxLimit:             50,
			DefaultPerRestaurant: 3,
			MaxPerRestaurant:     10,
			DefaultRadiusKm:      10,
			RelevanceNoise:       true,
			Seed:                 0,
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     100,
			RateLimitWindow:   1 * time.Minute,
			RateLimitDisabled: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Built-in defaults (lowest priority)
//  2. Config file (config.yaml or CONFIG_PATH)
//  3. Environment variables (highest priority)
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// HTTP_PORT -> server.port, DUCKDB_PATH -> database.path
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
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

// findConfigFile returns CONFIG_PATH when it exists, else the first
// existing default path, else "".
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

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// This is necessary because env vars come in as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		// If it's already a slice (from YAML file), skip
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
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

// envMappings maps environment variable names (lowercased) to koanf paths.
var envMappings = map[string]string{
	// Server
	"http_host":             "server.host",
	"http_port":             "server.port",
	"http_timeout":          "server.timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Sources
	"source_mode":            "sources.default_mode",
	"primary_timeout":        "sources.primary_timeout",
	"local_timeout":          "sources.local_timeout",
	"source_max_restaurants": "sources.max_restaurants",
	"menu_fetch_concurrency": "sources.menu_concurrency",
	"primary_rps":            "sources.primary_rps",
	"primary_burst":          "sources.primary_burst",
	"breaker_max_requests":   "sources.breaker.max_requests",
	"breaker_interval":       "sources.breaker.interval",
	"breaker_timeout":        "sources.breaker.timeout",
	"breaker_min_requests":   "sources.breaker.min_requests",
	"breaker_failure_ratio":  "sources.breaker.failure_ratio",

	// Primary store (DuckDB)
	"duckdb_path":       "database.path",
	"duckdb_max_memory": "database.max_memory",
	"duckdb_threads":    "database.threads",

	// Local store (BadgerDB)
	"local_store_path":      "local.path",
	"local_store_in_memory": "local.in_memory",
	"local_seed_file":       "local.seed_file",
	"local_gc_interval":     "local.gc_interval",
	"local_gc_ratio":        "local.gc_ratio",

	// Event bus
	"events_backend":               "events.backend",
	"events_topic":                 "events.topic",
	"nats_url":                     "events.nats_url",
	"nats_embedded":                "events.embedded_server",
	"nats_embedded_host":           "events.embedded_host",
	"nats_embedded_port":           "events.embedded_port",
	"events_router_retry_count":    "events.router_retry_count",
	"events_router_retry_interval": "events.router_retry_initial_interval",
	"events_router_close_timeout":  "events.router_close_timeout",

	// Ranking
	"ranking_default_limit":          "ranking.default_limit",
	"ranking_max_limit":              "ranking.max_limit",
	"ranking_default_per_restaurant": "ranking.default_per_restaurant",
	"ranking_max_per_restaurant":     "ranking.max_per_restaurant",
	"ranking_default_radius_km":      "ranking.default_radius_km",
	"ranking_relevance_noise":        "ranking.relevance_noise",
	"ranking_seed":                   "ranking.seed",

	// Security
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
}

// envTransformFunc transforms environment variable names to koanf config paths.
// Unmapped variables return "" and are skipped.
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}
