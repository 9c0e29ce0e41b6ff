// Forkcast - Food Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package models

import "time"

// SortMode selects the ordering of the flat result list.
type SortMode string

const (
	SortRelevance SortMode = "relevance"
	SortHiddenGem SortMode = "hidden_gem"
	SortDistance  SortMode = "distance"
)

// SourceMode selects which backing stores a search reads.
type SourceMode string

const (
	ModeHybrid  SourceMode = "hybrid"
	ModePrimary SourceMode = "primary"
	ModeLocal   SourceMode = "local"
)

// Includes reports whether the mode reads the given source.
func (m SourceMode) Includes(src DataSource) bool {
	switch m {
	case ModePrimary:
		return src == SourcePrimary
	case ModeLocal:
		return src == SourceLocal
	default:
		return true
	}
}

// TimeContext is a point in time expressed the way opening hours are.
type TimeContext struct {
	Day    time.Weekday `json:"day" validate:"min=0,max=6"`
	Hour   int          `json:"hour" validate:"min=0,max=23"`
	Minute int          `json:"minute" validate:"min=0,max=59"`
}

// MinutesSinceMidnight returns the whole minutes elapsed since 00:00.
func (t TimeContext) MinutesSinceMidnight() int {
	return t.Hour*60 + t.Minute
}

// QueryLocation is where the user is searching.
type QueryLocation struct {
	City        string   `json:"city,omitempty"`
	CountryCode string   `json:"country_code,omitempty"`
	Lat         *float64 `json:"lat,omitempty" validate:"omitempty,latitude"`
	Lon         *float64 `json:"lon,omitempty" validate:"omitempty,longitude"`
	RadiusKm    float64  `json:"radius_km,omitempty" validate:"min=0"`
}

// Coordinates returns the query point, or nil when incomplete.
func (l QueryLocation) Coordinates() *Coordinates {
	if l.Lat == nil || l.Lon == nil {
		return nil
	}
	return &Coordinates{Lat: *l.Lat, Lon: *l.Lon}
}

// SearchQuery is the caller's request to the ranking engine.
type SearchQuery struct {
	Location   QueryLocation `json:"location"`
	Mood       string        `json:"mood,omitempty" validate:"max=500"`
	Dietary    []Dietary     `json:"dietary,omitempty" validate:"dive,oneof=vegetarian vegan gluten_free dairy_free halal kosher"`
	MealPeriod MealPeriod    `json:"meal_period,omitempty" validate:"omitempty,oneof=breakfast lunch dinner snack all_day"`
	// Time is nil when the caller does not want open/closed filtering.
	Time   *TimeContext `json:"time,omitempty"`
	SortBy SortMode     `json:"sort_by,omitempty" validate:"omitempty,oneof=relevance hidden_gem distance"`
	// Limit of zero selects the configured default.
	Limit         int        `json:"limit" validate:"min=0"`
	PerRestaurant int        `json:"per_restaurant,omitempty" validate:"min=0"`
	Mode          SourceMode `json:"mode,omitempty" validate:"omitempty,oneof=hybrid primary local"`
}
