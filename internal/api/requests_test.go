// Forkcast - Food Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package api

import (
	"errors"
	"net/url"
	"reflect"
	"testing"
	"time"

	"github.com/tomtom215/forkcast/internal/models"
	"github.com/tomtom215/forkcast/internal/validation"
)

// Wednesday 2026-03-18 19:45 UTC.
var fixedNow = time.Date(2026, 3, 18, 19, 45, 0, 0, time.UTC)

func TestParseSearchQuery_AllParameters(t *testing.T) {
	t.Parallel()

	values := url.Values{
		"city":           {" London "},
		"country_code":   {"GB"},
		"lat":            {"51.5074"},
		"lon":            {"-0.1278"},
		"radius_km":      {"2.5"},
		"mood":           {"cozy comfort"},
		"dietary":        {"Vegan, halal,,"},
		"meal_period":    {"Dinner"},
		"day":            {"friday"},
		"hour":           {"20"},
		"minute":         {"30"},
		"sort_by":        {"hidden_gem"},
		"limit":          {"15"},
		"per_restaurant": {"2"},
		"mode":           {"LOCAL"},
	}

	q, err := parseSearchQuery(values, fixedNow)
	if err != nil {
		t.Fatalf("parseSearchQuery() error = %v", err)
	}

	if q.Location.City != "London" || q.Location.CountryCode != "GB" {
		t.Errorf("location = %+v", q.Location)
	}
	if q.Location.Lat == nil || *q.Location.Lat != 51.5074 || q.Location.Lon == nil || *q.Location.Lon != -0.1278 {
		t.Errorf("coordinates = %v, %v", q.Location.Lat, q.Location.Lon)
	}
	if q.Location.RadiusKm != 2.5 {
		t.Errorf("radius = %v, want 2.5", q.Location.RadiusKm)
	}
	if q.Mood != "cozy comfort" {
		t.Errorf("mood = %q", q.Mood)
	}
	if want := []models.Dietary{"vegan", "halal"}; !reflect.DeepEqual(q.Dietary, want) {
		t.Errorf("dietary = %v, want %v", q.Dietary, want)
	}
	if q.MealPeriod != "dinner" || q.SortBy != models.SortHiddenGem || q.Mode != models.ModeLocal {
		t.Errorf("enums = %q %q %q", q.MealPeriod, q.SortBy, q.Mode)
	}
	if q.Limit != 15 || q.PerRestaurant != 2 {
		t.Errorf("limit = %d, per_restaurant = %d", q.Limit, q.PerRestaurant)
	}
	want := &models.TimeContext{Day: time.Friday, Hour: 20, Minute: 30}
	if !reflect.DeepEqual(q.Time, want) {
		t.Errorf("time = %+v, want %+v", q.Time, want)
	}
}

func TestParseSearchQuery_Empty(t *testing.T) {
	t.Parallel()

	q, err := parseSearchQuery(url.Values{}, fixedNow)
	if err != nil {
		t.Fatalf("parseSearchQuery() error = %v", err)
	}
	if q.Time != nil || q.Location.Lat != nil || q.Limit != 0 || len(q.Dietary) != 0 {
		t.Errorf("expected zero query, got %+v", q)
	}
}

func TestParseSearchQuery_Time(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		values url.Values
		want   *models.TimeContext
	}{
		{"at now", url.Values{"at": {"now"}}, &models.TimeContext{Day: time.Wednesday, Hour: 19, Minute: 45}},
		{"at overrides day", url.Values{"at": {"NOW"}, "day": {"monday"}, "hour": {"8"}}, &models.TimeContext{Day: time.Wednesday, Hour: 19, Minute: 45}},
		{"numeric day", url.Values{"day": {"0"}, "hour": {"9"}}, &models.TimeContext{Day: time.Sunday, Hour: 9}},
		{"short day", url.Values{"day": {"Sat"}, "hour": {"11"}, "minute": {"5"}}, &models.TimeContext{Day: time.Saturday, Hour: 11, Minute: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			q, err := parseSearchQuery(tt.values, fixedNow)
			if err != nil {
				t.Fatalf("parseSearchQuery() error = %v", err)
			}
			if !reflect.DeepEqual(q.Time, tt.want) {
				t.Errorf("time = %+v, want %+v", q.Time, tt.want)
			}
		})
	}
}

func TestParseSearchQuery_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		values url.Values
		field  string
	}{
		{"bad lat", url.Values{"lat": {"north"}}, "lat"},
		{"bad radius", url.Values{"radius_km": {"far"}}, "radius_km"},
		{"bad limit", url.Values{"limit": {"ten"}}, "limit"},
		{"bad per_restaurant", url.Values{"per_restaurant": {"1.5"}}, "per_restaurant"},
		{"bad at", url.Values{"at": {"yesterday"}}, "at"},
		{"day without hour", url.Values{"day": {"monday"}}, "day"},
		{"minute alone", url.Values{"minute": {"15"}}, "day"},
		{"bad day name", url.Values{"day": {"funday"}, "hour": {"9"}}, "day"},
		{"day out of range", url.Values{"day": {"7"}, "hour": {"9"}}, "day"},
		{"bad hour", url.Values{"day": {"monday"}, "hour": {"noon"}}, "hour"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := parseSearchQuery(tt.values, fixedNow)

			var verr *validation.RequestValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("error = %v, want RequestValidationError", err)
			}
			if got := verr.Errors()[0].Field(); got != tt.field {
				t.Errorf("field = %q, want %q", got, tt.field)
			}
		})
	}
}

func TestParseWeekday(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want time.Weekday
		ok   bool
	}{
		{"monday", time.Monday, true},
		{"TUESDAY", time.Tuesday, true},
		{"thu", time.Thursday, true},
		{"6", time.Saturday, true},
		{"-1", 0, false},
		{"mo", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseWeekday(tt.in)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("parseWeekday(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
