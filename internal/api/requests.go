// Forkcast - Food Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package api

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/forkcast/internal/availability"
	"github.com/tomtom215/forkcast/internal/models"
	"github.com/tomtom215/forkcast/internal/normalize"
	"github.com/tomtom215/forkcast/internal/validation"
)

// Query parameter names accepted by /search and /shortlist.
const (
	paramCity          = "city"
	paramCountryCode   = "country_code"
	paramLat           = "lat"
	paramLon           = "lon"
	paramRadiusKm      = "radius_km"
	paramMood          = "mood"
	paramDietary       = "dietary"
	paramMealPeriod    = "meal_period"
	paramDay           = "day"
	paramHour          = "hour"
	paramMinute        = "minute"
	paramAt            = "at"
	paramSortBy        = "sort_by"
	paramLimit         = "limit"
	paramPerRestaurant = "per_restaurant"
	paramMode          = "mode"
)

// PrimaryRestaurantRequest is the body of PUT /primary/restaurants/{id}.
// Menu items without a restaurantId inherit the path ID.
type PrimaryRestaurantRequest struct {
	Restaurant normalize.PrimaryRestaurant `json:"restaurant"`
	Menu       []normalize.PrimaryMenuItem `json:"menu,omitempty"`
}

// parseSearchQuery builds a SearchQuery from URL parameters. It reports
// malformed numbers and times; range and enum checks are left to the engine.
// now is used only when at=now is given.
func parseSearchQuery(values url.Values, now time.Time) (models.SearchQuery, error) {
	var q models.SearchQuery
	var err error

	q.Location.City = strings.TrimSpace(values.Get(paramCity))
	q.Location.CountryCode = strings.TrimSpace(values.Get(paramCountryCode))
	if q.Location.Lat, err = optionalFloat(values, paramLat); err != nil {
		return q, err
	}
	if q.Location.Lon, err = optionalFloat(values, paramLon); err != nil {
		return q, err
	}
	if radius, err := optionalFloat(values, paramRadiusKm); err != nil {
		return q, err
	} else if radius != nil {
		q.Location.RadiusKm = *radius
	}

	q.Mood = strings.TrimSpace(values.Get(paramMood))
	for _, d := range parseCommaSeparated(values.Get(paramDietary)) {
		q.Dietary = append(q.Dietary, models.Dietary(strings.ToLower(d)))
	}
	q.MealPeriod = models.MealPeriod(strings.ToLower(strings.TrimSpace(values.Get(paramMealPeriod))))
	q.SortBy = models.SortMode(strings.ToLower(strings.TrimSpace(values.Get(paramSortBy))))
	q.Mode = models.SourceMode(strings.ToLower(strings.TrimSpace(values.Get(paramMode))))

	if q.Limit, err = optionalInt(values, paramLimit); err != nil {
		return q, err
	}
	if q.PerRestaurant, err = optionalInt(values, paramPerRestaurant); err != nil {
		return q, err
	}

	if q.Time, err = parseTimeContext(values, now); err != nil {
		return q, err
	}
	return q, nil
}

// parseTimeContext reads at=now or day/hour/minute. Without any of them
// the query carries no time and opening hours are not checked.
func parseTimeContext(values url.Values, now time.Time) (*models.TimeContext, error) {
	if at := strings.TrimSpace(values.Get(paramAt)); at != "" {
		if !strings.EqualFold(at, "now") {
			return nil, paramError(paramAt, "oneof", "now", at, "at must be 'now'")
		}
		tc := availability.TimeContextFrom(now)
		return &tc, nil
	}

	dayRaw := strings.TrimSpace(values.Get(paramDay))
	hourRaw := strings.TrimSpace(values.Get(paramHour))
	minuteRaw := strings.TrimSpace(values.Get(paramMinute))
	if dayRaw == "" && hourRaw == "" && minuteRaw == "" {
		return nil, nil
	}
	if dayRaw == "" || hourRaw == "" {
		return nil, paramError(paramDay, "required_with", "hour", dayRaw,
			"day and hour must be given together")
	}

	day, ok := parseWeekday(dayRaw)
	if !ok {
		return nil, paramError(paramDay, "weekday", "", dayRaw,
			"day must be a weekday name or 0-6 (0 = Sunday)")
	}
	hour, err := optionalInt(values, paramHour)
	if err != nil {
		return nil, err
	}
	minute, err := optionalInt(values, paramMinute)
	if err != nil {
		return nil, err
	}
	return &models.TimeContext{Day: day, Hour: hour, Minute: minute}, nil
}

// parseWeekday accepts "monday", "mon" or a number 0-6 with 0 = Sunday.
func parseWeekday(s string) (time.Weekday, bool) {
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n > 6 {
			return 0, false
		}
		return time.Weekday(n), true
	}
	s = strings.ToLower(s)
	for d := time.Sunday; d <= time.Saturday; d++ {
		key := availability.DayKey(d)
		if s == key || (len(s) == 3 && strings.HasPrefix(key, s)) {
			return d, true
		}
	}
	return 0, false
}

func optionalFloat(values url.Values, key string) (*float64, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, paramError(key, "numeric", "", raw, key+" must be a number")
	}
	return &v, nil
}

func optionalInt(values url.Values, key string) (int, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, paramError(key, "number", "", raw, key+" must be an integer")
	}
	return v, nil
}

// parseCommaSeparated parses a comma-separated string into a slice
func parseCommaSeparated(value string) []string {
	if value == "" {
		return nil
	}

	var result []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func paramError(field, tag, param, value, message string) error {
	return validation.NewRequestValidationError(field, tag, param, value, message)
}
