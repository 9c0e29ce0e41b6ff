// Forkcast - Food Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package ranking

import (
	"fmt"

	"github.com/tomtom215/forkcast/internal/models"
)

// Config contains all configuration for the ranking engine.
type Config struct {
	// Limits contains request size limits.
	Limits LimitsConfig `json:"limits"`

	// DefaultRadiusKm applies when a query has coordinates but no radius.
	DefaultRadiusKm float64 `json:"default_radius_km"`

	// DefaultMode is the source-selection mode used when a query names none.
	DefaultMode models.SourceMode `json:"default_mode"`

	// RelevanceNoise enables the [0, 5) random base term of the relevance
	// score. Disabled, the base term is zero and rankings are reproducible.
	RelevanceNoise bool `json:"relevance_noise"`

	// Seed is the random seed for the relevance noise.
	// If zero, a fixed default seed is used.
	Seed int64 `json:"seed"`
}

// LimitsConfig bounds result sizes.
type LimitsConfig struct {
	// DefaultLimit is used when a query's limit is zero.
	DefaultLimit int `json:"default_limit"`

	// MaxLimit is the largest limit a query may ask for.
	MaxLimit int `json:"max_limit"`

	// DefaultPerRestaurant is the number of sample items per shortlist entry.
	DefaultPerRestaurant int `json:"default_per_restaurant"`

	// MaxPerRestaurant is the largest per-restaurant sample a query may ask for.
	MaxPerRestaurant int `json:"max_per_restaurant"`
}

// DefaultConfig returns the default ranking configuration.
func DefaultConfig() *Config {
	return &Config{
		Limits: LimitsConfig{
			DefaultLimit:         10,
			MaxLimit:             50,
			DefaultPerRestaurant: 3,
			MaxPerRestaurant:     10,
		},
		DefaultRadiusKm: 10,
		DefaultMode:     models.ModeHybrid,
		RelevanceNoise:  true,
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.Limits.DefaultLimit < 1 {
		return fmt.Errorf("limits.default_limit must be positive, got %d", c.Limits.DefaultLimit)
	}
	if c.Limits.MaxLimit < c.Limits.DefaultLimit {
		return fmt.Errorf("limits.max_limit (%d) must be >= limits.default_limit (%d)",
			c.Limits.MaxLimit, c.Limits.DefaultLimit)
	}
	if c.Limits.DefaultPerRestaurant < 1 {
		return fmt.Errorf("limits.default_per_restaurant must be positive, got %d", c.Limits.DefaultPerRestaurant)
	}
	if c.Limits.MaxPerRestaurant < c.Limits.DefaultPerRestaurant {
		return fmt.Errorf("limits.max_per_restaurant (%d) must be >= limits.default_per_restaurant (%d)",
			c.Limits.MaxPerRestaurant, c.Limits.DefaultPerRestaurant)
	}
	if c.DefaultRadiusKm <= 0 {
		return fmt.Errorf("default_radius_km must be positive, got %f", c.DefaultRadiusKm)
	}
	switch c.DefaultMode {
	case models.ModeHybrid, models.ModePrimary, models.ModeLocal:
	default:
		return fmt.Errorf("default_mode must be hybrid, primary or local, got %q", c.DefaultMode)
	}
	return nil
}
