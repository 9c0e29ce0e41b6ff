// Forkcast - Food Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package validation

import (
	"strings"
	"testing"

	"github.com/tomtom215/forkcast/internal/models"
)

func f64(v float64) *float64 { return &v }

func TestGetValidator_Singleton(t *testing.T) {
	t.Parallel()

	if GetValidator() != GetValidator() {
		t.Error("GetValidator() should return the same instance")
	}
}

func TestValidateStruct_ValidQueries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		q    models.SearchQuery
	}{
		{"empty query", models.SearchQuery{}},
		{"full query", models.SearchQuery{
			Location:   models.QueryLocation{City: "London", CountryCode: "GB", Lat: f64(51.5), Lon: f64(-0.12), RadiusKm: 5},
			Mood:       "something spicy",
			Dietary:    []models.Dietary{models.DietVegan, models.DietHalal},
			MealPeriod: models.MealDinner,
			Time:       &models.TimeContext{Day: 5, Hour: 19, Minute: 30},
			SortBy:     models.SortDistance,
			Limit:      10,
			Mode:       models.ModeLocal,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if err := ValidateStruct(&tt.q); err != nil {
				t.Errorf("ValidateStruct() = %v, want nil", err)
			}
		})
	}
}

func TestValidateStruct_InvalidQueries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		q         models.SearchQuery
		wantField string
		wantTag   string
	}{
		{"negative limit", models.SearchQuery{Limit: -1}, "limit", "min"},
		{"negative radius", models.SearchQuery{Location: models.QueryLocation{RadiusKm: -3}}, "radius_km", "min"},
		{"latitude out of range", models.SearchQuery{Location: models.QueryLocation{Lat: f64(91), Lon: f64(0)}}, "lat", "latitude"},
		{"longitude out of range", models.SearchQuery{Location: models.QueryLocation{Lat: f64(0), Lon: f64(-181)}}, "lon", "longitude"},
		{"lat without lon", models.SearchQuery{Location: models.QueryLocation{Lat: f64(10)}}, "lon", "required_with"},
		{"lon without lat", models.SearchQuery{Location: models.QueryLocation{Lon: f64(10)}}, "lat", "required_with"},
		{"unknown dietary", models.SearchQuery{Dietary: []models.Dietary{"paleo"}}, "dietary[0]", "oneof"},
		{"unknown meal period", models.SearchQuery{MealPeriod: "brunch"}, "meal_period", "oneof"},
		{"unknown sort", models.SearchQuery{SortBy: "price"}, "sort_by", "oneof"},
		{"unknown mode", models.SearchQuery{Mode: "remote"}, "mode", "oneof"},
		{"hour out of range", models.SearchQuery{Time: &models.TimeContext{Hour: 24}}, "hour", "max"},
		{"day out of range", models.SearchQuery{Time: &models.TimeContext{Day: 7}}, "day", "max"},
		{"mood too long", models.SearchQuery{Mood: strings.Repeat("a", 501)}, "mood", "max"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateStruct(&tt.q)
			if err == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}
			found := false
			for _, fe := range err.Errors() {
				if fe.Field() == tt.wantField && fe.Tag() == tt.wantTag {
					found = true
				}
			}
			if !found {
				t.Errorf("errors = %v, want field %q tag %q", err, tt.wantField, tt.wantTag)
			}
		})
	}
}

func TestToAPIError_SingleError(t *testing.T) {
	t.Parallel()

	err := ValidateStruct(&models.SearchQuery{Limit: -5})
	apiErr := err.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %q, want VALIDATION_ERROR", apiErr.Code)
	}
	if apiErr.Message != "limit must be at least 0" {
		t.Errorf("Message = %q", apiErr.Message)
	}
	if apiErr.Details["field"] != "limit" {
		t.Errorf("Details = %v", apiErr.Details)
	}
}

func TestToAPIError_MultipleErrors(t *testing.T) {
	t.Parallel()

	err := ValidateStruct(&models.SearchQuery{Limit: -1, SortBy: "price"})
	apiErr := err.ToAPIError()
	fields, ok := apiErr.Details["fields"].([]map[string]interface{})
	if !ok || len(fields) != 2 {
		t.Fatalf("Details[fields] = %v, want 2 entries", apiErr.Details["fields"])
	}
	if !strings.Contains(apiErr.Message, "; ") {
		t.Errorf("Message = %q, want joined messages", apiErr.Message)
	}
}

func TestNewRequestValidationError(t *testing.T) {
	t.Parallel()

	err := NewRequestValidationError("limit", "max", "50", 80, "limit must be at most 50")
	if err.Error() != "limit must be at most 50" {
		t.Errorf("Error() = %q", err.Error())
	}
	if len(err.Errors()) != 1 || err.Errors()[0].Param() != "50" || err.Errors()[0].Value() != 80 {
		t.Errorf("Errors() = %+v", err.Errors())
	}
}
