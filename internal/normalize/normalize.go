// Forkcast - Food Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package normalize

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tomtom215/forkcast/internal/models"
)

// ErrMalformedRecord marks a record that lacks a required identity field.
var ErrMalformedRecord = errors.New("malformed record")

// MalformedRecordError describes which record was rejected and why.
type MalformedRecordError struct {
	Source models.DataSource
	Kind   string // "restaurant" or "menu_item"
	ID     string
	Field  string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("%s %s %q: missing %s", e.Source, e.Kind, e.ID, e.Field)
}

func (e *MalformedRecordError) Unwrap() error { return ErrMalformedRecord }

// Record kinds used in MalformedRecordError and metrics labels.
const (
	KindRestaurant = "restaurant"
	KindMenuItem   = "menu_item"
)

// Report counts records dropped during normalization.
type Report struct {
	DroppedRestaurants int `json:"dropped_restaurants"`
	DroppedItems       int `json:"dropped_items"`
}

// Add accumulates another report.
func (r *Report) Add(o Report) {
	r.DroppedRestaurants += o.DroppedRestaurants
	r.DroppedItems += o.DroppedItems
}

// Total returns all dropped records.
func (r Report) Total() int {
	return r.DroppedRestaurants + r.DroppedItems
}

// Convert applies fn to every raw record, keeping the successes. Records
// that fail are passed to onDrop when it is non-nil and counted.
func Convert[R, M any](raws []R, fn func(R) (M, error), onDrop func(error)) ([]M, int) {
	out := make([]M, 0, len(raws))
	dropped := 0
	for _, raw := range raws {
		m, err := fn(raw)
		if err != nil {
			dropped++
			if onDrop != nil {
				onDrop(err)
			}
			continue
		}
		out = append(out, m)
	}
	return out, dropped
}

// Tag folds a free-form tag to the comparison form: lowercase, with
// underscores and hyphens read as spaces and runs of whitespace collapsed.
func Tag(s string) string {
	s = strings.ToLower(s)
	s = strings.NewReplacer("_", " ", "-", " ").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// Tags normalizes and de-duplicates a tag list, keeping first-seen order.
func Tags(in ...[]string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, list := range in {
		for _, raw := range list {
			t := Tag(raw)
			if t == "" {
				continue
			}
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	return out
}

func mealPeriod(s string) models.MealPeriod {
	return models.ParseMealPeriod(strings.ReplaceAll(Tag(s), " ", "_"))
}

func availabilityType(s string) models.AvailabilityType {
	switch strings.ReplaceAll(Tag(s), " ", "_") {
	case "weekends_only", "weekend_only", "weekends":
		return models.AvailabilityWeekendsOnly
	case "seasonal":
		return models.AvailabilitySeasonal
	case "chef_special", "chefs_special":
		return models.AvailabilityChefSpecial
	default:
		return models.AvailabilityRegular
	}
}

func priceRange(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return models.DefaultPriceRange
	}
	return s
}

func available(p *bool) bool {
	return p == nil || *p
}

func price(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

func dietaryFromList(list []string) models.DietaryFlags {
	var f models.DietaryFlags
	for _, raw := range list {
		switch models.Dietary(strings.ReplaceAll(Tag(raw), " ", "_")) {
		case models.DietVegetarian:
			f.Vegetarian = true
		case models.DietVegan:
			f.Vegan = true
		case models.DietGlutenFree:
			f.GlutenFree = true
		case models.DietDairyFree:
			f.DairyFree = true
		case models.DietHalal:
			f.Halal = true
		case models.DietKosher:
			f.Kosher = true
		}
	}
	return f
}
