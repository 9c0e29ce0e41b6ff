// Forkcast - Food Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package models

// DataSource identifies which backing store produced a record.
type DataSource string

const (
	// SourcePrimary is the managed document store. Its records win merge conflicts.
	SourcePrimary DataSource = "primary"
	// SourceLocal is the local cache store.
	SourceLocal DataSource = "local"
)

// Merge priorities. Higher wins on key collision.
const (
	PriorityLocal   = 1
	PriorityPrimary = 2
)

// Priority returns the merge priority for records of this source.
func (s DataSource) Priority() int {
	if s == SourcePrimary {
		return PriorityPrimary
	}
	return PriorityLocal
}

// DefaultPriceRange is substituted when a source omits the price tier.
const DefaultPriceRange = "$$"

// TierLegendary forces the hidden-gem score to at least 90.
const TierLegendary = "legendary"

// Coordinates is a WGS84 point.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Location describes where a restaurant is.
type Location struct {
	City         string       `json:"city"`
	CountryCode  string       `json:"country_code"`
	Neighborhood string       `json:"neighborhood,omitempty"`
	Address      string       `json:"address,omitempty"`
	Coordinates  *Coordinates `json:"coordinates,omitempty"`
}

// DayHours is one weekday entry of the opening-hours table.
// Open and Close are "HH:MM" in the restaurant's local time.
type DayHours struct {
	Open   string `json:"open,omitempty"`
	Close  string `json:"close,omitempty"`
	Closed bool   `json:"closed,omitempty"`
}

// WeeklyHours maps lowercase weekday names ("monday") to that day's hours.
// A nil table means the restaurant publishes no hours.
type WeeklyHours map[string]DayHours

// LinkCandidates holds every outbound link a restaurant might expose.
type LinkCandidates struct {
	ReservationURL string `json:"reservation_url,omitempty"`
	Website        string `json:"website,omitempty"`
	// DeliveryPlatforms maps a platform key (e.g. "deliveroo") to the
	// restaurant's identifier on that platform.
	DeliveryPlatforms map[string]string `json:"delivery_platforms,omitempty"`
}

// Media holds imagery references.
type Media struct {
	HeroImage string   `json:"hero_image,omitempty"`
	Gallery   []string `json:"gallery,omitempty"`
}

// HasAny reports whether any image is present.
func (m Media) HasAny() bool {
	return m.HeroImage != "" || len(m.Gallery) > 0
}

// Reputation holds optional quality signals. Nil means unknown.
type Reputation struct {
	AvgRating       *float64 `json:"avg_rating,omitempty"`
	ReviewCount     *int     `json:"review_count,omitempty"`
	PopularityScore *float64 `json:"popularity_score,omitempty"`
}

// GemOverride is a manual adjustment to the hidden-gem score.
type GemOverride struct {
	Score *float64 `json:"score,omitempty"`
	Tier  string   `json:"tier,omitempty"`
}

// Restaurant is the canonical, source-independent restaurant view.
// Restaurants are built per request and never mutated after normalization.
type Restaurant struct {
	ID         string         `json:"restaurant_id"`
	Name       string         `json:"name"`
	Location   Location       `json:"location"`
	Cuisine    string         `json:"cuisine,omitempty"`
	PriceRange string         `json:"price_range"`
	Hours      WeeklyHours    `json:"hours,omitempty"`
	Links      LinkCandidates `json:"links"`
	Media      Media          `json:"media"`
	Reputation Reputation     `json:"reputation"`
	// Goals are normalized goal tags such as "highlight specialties".
	Goals       []string    `json:"goals,omitempty"`
	GemOverride GemOverride `json:"gem_override"`
	DataSource  DataSource  `json:"data_source"`
	Priority    int         `json:"priority"`
	Menu        []MenuItem  `json:"-"`
}

// HasGoal reports whether the restaurant carries the normalized goal tag.
func (r *Restaurant) HasGoal(goal string) bool {
	for _, g := range r.Goals {
		if g == goal {
			return true
		}
	}
	return false
}

// Goal tags recognized by the scorers.
const (
	GoalIncreaseVisibility   = "increase visibility"
	GoalHighlightSpecialties = "highlight specialties"
	GoalAttractDietary       = "attract dietary"
)
