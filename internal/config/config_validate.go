// Forkcast - Food Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package config

import (
	"fmt"
	"strings"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateSources(); err != nil {
		return err
	}
	if err := c.validateLocal(); err != nil {
		return err
	}
	if err := c.validateEvents(); err != nil {
		return err
	}
	if err := c.validateRanking(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	return nil
}

// validSourceModes defines the allowed default source modes
var validSourceModes = map[string]bool{
	"hybrid":  true,
	"primary": true,
	"local":   true,
}

func (c *Config) validateSources() error {
	s := c.Sources
	if !validSourceModes[s.DefaultMode] {
		return fmt.Errorf("SOURCE_MODE must be one of: hybrid, primary, local")
	}
	if s.PrimaryTimeout <= 0 || s.LocalTimeout <= 0 {
		return fmt.Errorf("PRIMARY_TIMEOUT and LOCAL_TIMEOUT must be positive")
	}
	if s.MaxRestaurants < 1 {
		return fmt.Errorf("SOURCE_MAX_RESTAURANTS must be at least 1")
	}
	if s.MenuConcurrency < 1 {
		return fmt.Errorf("MENU_FETCH_CONCURRENCY must be at least 1")
	}
	if s.PrimaryRPS < 0 {
		return fmt.Errorf("PRIMARY_RPS must be non-negative")
	}
	if s.PrimaryRPS > 0 && s.PrimaryBurst < 1 {
		return fmt.Errorf("PRIMARY_BURST must be at least 1 when PRIMARY_RPS is set")
	}
	if s.Breaker.FailureRatio <= 0 || s.Breaker.FailureRatio > 1 {
		return fmt.Errorf("BREAKER_FAILURE_RATIO must be in (0, 1]")
	}
	if s.Breaker.Timeout <= 0 {
		return fmt.Errorf("BREAKER_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateLocal() error {
	if !c.Local.InMemory && strings.TrimSpace(c.Local.Path) == "" {
		return fmt.Errorf("LOCAL_STORE_PATH is required unless LOCAL_STORE_IN_MEMORY=true")
	}
	if c.Local.GCInterval < 0 {
		return fmt.Errorf("LOCAL_GC_INTERVAL must not be negative")
	}
	if c.Local.GCInterval > 0 && (c.Local.GCRatio <= 0 || c.Local.GCRatio >= 1) {
		return fmt.Errorf("LOCAL_GC_RATIO must be between 0 and 1, got %v", c.Local.GCRatio)
	}
	return nil
}

func (c *Config) validateEvents() error {
	switch c.Events.Backend {
	case "gochannel":
	case "nats":
		if !c.Events.EmbeddedServer {
			if err := validateNATSURL(c.Events.NATSURL); err != nil {
				return fmt.Errorf("NATS_URL: %w", err)
			}
		}
		if c.Events.EmbeddedServer && (c.Events.EmbeddedPort < 1 || c.Events.EmbeddedPort > 65535) {
			return fmt.Errorf("NATS_EMBEDDED_PORT must be between 1 and 65535")
		}
	default:
		return fmt.Errorf("EVENTS_BACKEND must be one of: gochannel, nats")
	}
	if c.Events.Topic == "" {
		return fmt.Errorf("EVENTS_TOPIC is required")
	}
	if c.Events.RouterRetryCount < 0 {
		return fmt.Errorf("EVENTS_ROUTER_RETRY_COUNT must be non-negative")
	}
	return nil
}

func (c *Config) validateRanking() error {
	r := c.Ranking
	if r.DefaultLimit < 1 {
		return fmt.Errorf("RANKING_DEFAULT_LIMIT must be at least 1")
	}
	if r.MaxLimit < r.DefaultLimit {
		return fmt.Errorf("RANKING_MAX_LIMIT must be >= RANKING_DEFAULT_LIMIT")
	}
	if r.DefaultPerRestaurant < 1 {
		return fmt.Errorf("RANKING_DEFAULT_PER_RESTAURANT must be at least 1")
	}
	if r.MaxPerRestaurant < r.DefaultPerRestaurant {
		return fmt.Errorf("RANKING_MAX_PER_RESTAURANT must be >= RANKING_DEFAULT_PER_RESTAURANT")
	}
	if r.DefaultRadiusKm <= 0 {
		return fmt.Errorf("RANKING_DEFAULT_RADIUS_KM must be positive")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1")
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
	}
	return nil
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}
