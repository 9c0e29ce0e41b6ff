// Forkcast - Food Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package config

import "time"

// Config holds all application configuration loaded from defaults, an
// optional YAML file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all settings
//  2. Config File: Optional YAML config file (config.yaml)
//  3. Environment Variables: Override any mapped setting
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal("Failed to load config:", err)
//	}
//	db, err := database.New(&cfg.Database)
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Logging  LoggingConfig  `koanf:"logging"`
	Sources  SourcesConfig  `koanf:"sources"`
	Database DatabaseConfig `koanf:"database"`
	Local    LocalConfig    `koanf:"local"`
	Events   EventsConfig   `koanf:"events"`
	Ranking  RankingConfig  `koanf:"ranking"`
	Security SecurityConfig `koanf:"security"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// SourcesConfig controls how the primary and local stores are read for
// each search.
//
// Environment Variables:
//   - SOURCE_MODE: Default source selection, hybrid|primary|local (default: hybrid)
//   - PRIMARY_TIMEOUT: Per-request primary fetch budget (default: 3s)
//   - LOCAL_TIMEOUT: Per-request local fetch budget (default: 1s)
//   - SOURCE_MAX_RESTAURANTS: Records requested from each source (default: 500)
//   - MENU_FETCH_CONCURRENCY: Parallel menu lookups per source (default: 8)
//   - PRIMARY_RPS: Token-bucket rate for primary reads, 0 disables (default: 0)
//   - PRIMARY_BURST: Token-bucket burst (default: 10)
type SourcesConfig struct {
	DefaultMode     string        `koanf:"default_mode"`
	PrimaryTimeout  time.Duration `koanf:"primary_timeout"`
	LocalTimeout    time.Duration `koanf:"local_timeout"`
	MaxRestaurants  int           `koanf:"max_restaurants"`
	MenuConcurrency int           `koanf:"menu_concurrency"`
	PrimaryRPS      float64       `koanf:"primary_rps"`
	PrimaryBurst    int           `koanf:"primary_burst"`
	Breaker         BreakerConfig `koanf:"breaker"`
}

// BreakerConfig configures the circuit breaker around the primary store.
type BreakerConfig struct {
	MaxRequests  uint32        `koanf:"max_requests"`  // Requests allowed while half-open
	Interval     time.Duration `koanf:"interval"`      // Closed-state counter reset period
	Timeout      time.Duration `koanf:"timeout"`       // Open-state duration before half-open
	MinRequests  uint32        `koanf:"min_requests"`  // Requests before the ratio is considered
	FailureRatio float64       `koanf:"failure_ratio"` // Trip threshold
}

// DatabaseConfig holds DuckDB settings for the primary store.
type DatabaseConfig struct {
	Path      string `koanf:"path"` // Empty or ":memory:" for an in-memory database
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"` // Number of DuckDB threads (0 = use NumCPU)
}

// LocalConfig holds BadgerDB settings for the local store.
type LocalConfig struct {
	Path     string `koanf:"path"`
	InMemory bool   `koanf:"in_memory"`
	// SeedFile is a JSON array of local-shape records imported when the
	// store is empty.
	SeedFile string `koanf:"seed_file"`

	// Value log garbage collection. A zero interval disables it.
	GCInterval time.Duration `koanf:"gc_interval"`
	GCRatio    float64       `koanf:"gc_ratio"`
}

// EventsConfig configures the bus that propagates local-store writes.
//
// Environment Variables:
//   - EVENTS_BACKEND: gochannel (in-process) or nats (default: gochannel)
//   - EVENTS_TOPIC: Topic for local-store changes (default: forkcast.local.changed)
//   - NATS_URL: NATS server URL (default: nats://127.0.0.1:4222)
//   - NATS_EMBEDDED: Run an embedded NATS server (default: false)
type EventsConfig struct {
	Backend        string `koanf:"backend"`
	Topic          string `koanf:"topic"`
	NATSURL        string `koanf:"nats_url"`
	EmbeddedServer bool   `koanf:"embedded_server"`
	EmbeddedHost   string `koanf:"embedded_host"`
	EmbeddedPort   int    `koanf:"embedded_port"`

	// Router defaults (Watermill Router middleware)
	RouterRetryCount           int           `koanf:"router_retry_count"`
	RouterRetryInitialInterval time.Duration `koanf:"router_retry_initial_interval"`
	RouterCloseTimeout         time.Duration `koanf:"router_close_timeout"`
}

// RankingConfig holds search limits and the relevance noise settings.
type RankingConfig struct {
	DefaultLimit         int     `koanf:"default_limit"`
	MaxLimit             int     `koanf:"max_limit"`
	DefaultPerRestaurant int     `koanf:"default_per_restaurant"`
	MaxPerRestaurant     int     `koanf:"max_per_restaurant"`
	DefaultRadiusKm      float64 `koanf:"default_radius_km"`
	RelevanceNoise       bool    `koanf:"relevance_noise"`
	Seed                 int64   `koanf:"seed"` // 0 = fixed default seed
}

// SecurityConfig holds CORS and rate limiting settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// Load loads configuration using Koanf v2.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
