// Forkcast - Food Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package models

import "time"

// OpenStatus is the availability verdict for a restaurant at an instant.
type OpenStatus string

const (
	StatusOpen        OpenStatus = "open"
	StatusClosingSoon OpenStatus = "closing_soon"
	StatusClosed      OpenStatus = "closed"
	StatusUnknown     OpenStatus = "unknown"
)

// Availability is the result of an opening-hours check.
type Availability struct {
	Status   OpenStatus `json:"status"`
	Label    string     `json:"label"`
	OpensAt  string     `json:"opens_at,omitempty"`
	ClosesAt string     `json:"closes_at,omitempty"`
}

// Link is the single outbound link chosen for a restaurant.
type Link struct {
	URL   string `json:"url"`
	Type  string `json:"type"`
	Label string `json:"label"`
}

// RestaurantSummary is the restaurant projection carried on every result.
type RestaurantSummary struct {
	ID           string     `json:"restaurant_id"`
	Name         string     `json:"name"`
	City         string     `json:"city"`
	CountryCode  string     `json:"country_code"`
	Neighborhood string     `json:"neighborhood,omitempty"`
	Cuisine      string     `json:"cuisine,omitempty"`
	PriceRange   string     `json:"price_range"`
	HeroImage    string     `json:"hero_image,omitempty"`
	DataSource   DataSource `json:"data_source"`
}

// ScoredResult is one matched dish with both scores attached.
type ScoredResult struct {
	Item           MenuItem          `json:"item"`
	Restaurant     RestaurantSummary `json:"restaurant"`
	RelevanceScore float64           `json:"relevance_score"`
	GemScore       float64           `json:"gem_score"`
	Badge          string            `json:"badge,omitempty"`
	// DistanceKm is nil when either side lacks coordinates.
	DistanceKm    *float64      `json:"distance_km,omitempty"`
	DistanceLabel string        `json:"distance_label"`
	Availability  *Availability `json:"availability,omitempty"`
	Link          Link          `json:"link"`
}

// ShortlistEntry aggregates a restaurant's matched dishes.
type ShortlistEntry struct {
	Restaurant      RestaurantSummary `json:"restaurant"`
	SampleItems     []ScoredResult    `json:"sample_items"`
	MatchCount      int               `json:"match_count"`
	AvgRelevance    float64           `json:"avg_relevance"`
	AvgGem          float64           `json:"avg_gem"`
	ExperienceScore int               `json:"experience_score"`
	Badge           string            `json:"badge,omitempty"`
	Vibes           []string          `json:"vibes"`
	DistanceKm      *float64          `json:"distance_km,omitempty"`
	DistanceLabel   string            `json:"distance_label"`
	Availability    *Availability     `json:"availability,omitempty"`
	Link            Link              `json:"link"`
}

// SourceStatus values reported per backing store.
const (
	SourceStatusOK          = "ok"
	SourceStatusSkipped     = "skipped"
	SourceStatusUnavailable = "unavailable"
)

// SourceOutcome describes what one backing store contributed.
type SourceOutcome struct {
	Status      string `json:"status"`
	Restaurants int    `json:"restaurants"`
	Items       int    `json:"items"`
	Dropped     int    `json:"dropped"`
	Error       string `json:"error,omitempty"`
}

// SourceReport tells the caller which sources actually served the response.
type SourceReport struct {
	Mode    SourceMode    `json:"mode"`
	Primary SourceOutcome `json:"primary"`
	Local   SourceOutcome `json:"local"`
	// Degraded is true when a selected source failed and results come from
	// the remaining one.
	Degraded   bool `json:"degraded"`
	Duplicates int  `json:"duplicates"`
}

// SearchMetadata mirrors the engine's bookkeeping for a request.
type SearchMetadata struct {
	RequestID  string    `json:"request_id"`
	LatencyMS  int64     `json:"latency_ms"`
	Candidates int       `json:"candidates"`
	Timestamp  time.Time `json:"timestamp"`
}

// SearchResponse is the complete engine output for one query.
type SearchResponse struct {
	Items     []ScoredResult   `json:"items"`
	Shortlist []ShortlistEntry `json:"shortlist"`
	Sources   SourceReport     `json:"sources"`
	Metadata  SearchMetadata   `json:"metadata"`
}
