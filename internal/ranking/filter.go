// Forkcast - Food Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package ranking

import (
	"strings"

	"github.com/tomtom215/forkcast/internal/availability"
	"github.com/tomtom215/forkcast/internal/geo"
	"github.com/tomtom215/forkcast/internal/models"
)

// Candidate is a menu item that survived filtering, with the per-restaurant
// facts the filter already computed.
type Candidate struct {
	Restaurant *models.Restaurant
	Item       *models.MenuItem
	// DistanceKm is nil when either side lacks coordinates.
	DistanceKm   *float64
	Availability *models.Availability
}

// Filter selects the menu items matching the query. Candidates keep the
// order of restaurants and their menus. q.Location.RadiusKm is used as-is;
// callers apply any default radius first.
func Filter(restaurants []models.Restaurant, q *models.SearchQuery) []Candidate {
	var out []Candidate
	queryPoint := q.Location.Coordinates()

	for i := range restaurants {
		r := &restaurants[i]

		dist := geo.Between(queryPoint, r.Location.Coordinates)
		if !matchLocation(r, &q.Location, dist) {
			continue
		}

		var avail *models.Availability
		if q.Time != nil {
			a := availability.CheckOpen(r, *q.Time)
			if a.Status == models.StatusClosed {
				continue
			}
			avail = &a
		}

		for j := range r.Menu {
			item := &r.Menu[j]
			if !matchItem(item, q) {
				continue
			}
			out = append(out, Candidate{
				Restaurant:   r,
				Item:         item,
				DistanceKm:   dist,
				Availability: avail,
			})
		}
	}
	return out
}

// matchLocation applies the radius test when both sides have coordinates
// and the loose "{country}_{city}" substring test otherwise.
func matchLocation(r *models.Restaurant, loc *models.QueryLocation, dist *float64) bool {
	if loc.City == "" && loc.CountryCode == "" && loc.Coordinates() == nil {
		return true
	}
	if dist != nil {
		return *dist <= loc.RadiusKm
	}
	want := locationKey(loc.CountryCode, loc.City)
	have := locationKey(r.Location.CountryCode, r.Location.City)
	return strings.Contains(have, want) || strings.Contains(want, have)
}

func locationKey(country, city string) string {
	return strings.Join(strings.Fields(strings.ToLower(country)), "_") + "_" +
		strings.Join(strings.Fields(strings.ToLower(city)), "_")
}

func matchItem(item *models.MenuItem, q *models.SearchQuery) bool {
	if !item.Available {
		return false
	}
	if q.MealPeriod != "" && q.MealPeriod != models.MealAllDay &&
		item.MealPeriod != models.MealAllDay && item.MealPeriod != q.MealPeriod {
		return false
	}
	return satisfiesAll(item.Dietary, q.Dietary)
}

// satisfiesAll reports whether every requested flag is set.
func satisfiesAll(flags models.DietaryFlags, required []models.Dietary) bool {
	for _, d := range required {
		if !flags.Has(d) {
			return false
		}
	}
	return true
}
