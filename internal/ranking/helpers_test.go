// Forkcast - Food Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package ranking

import (
	"time"

	"github.com/tomtom215/forkcast/internal/availability"
	"github.com/tomtom215/forkcast/internal/models"
)

func ptrFloat(v float64) *float64 { return &v }

func ptrInt(v int) *int { return &v }

func testRestaurant(id, city, country string, items ...models.MenuItem) models.Restaurant {
	for i := range items {
		items[i].RestaurantID = id
	}
	return models.Restaurant{
		ID:         id,
		Name:       "Restaurant " + id,
		Location:   models.Location{City: city, CountryCode: country},
		PriceRange: models.DefaultPriceRange,
		DataSource: models.SourceLocal,
		Priority:   models.SourceLocal.Priority(),
		Menu:       items,
	}
}

func testItem(id string, period models.MealPeriod) models.MenuItem {
	return models.MenuItem{
		ID:           id,
		Name:         "Dish " + id,
		MealPeriod:   period,
		Available:    true,
		Availability: models.AvailabilityRegular,
	}
}

func openAllWeek(open, closeAt string) models.WeeklyHours {
	h := models.WeeklyHours{}
	for d := time.Sunday; d <= time.Saturday; d++ {
		h[availability.DayKey(d)] = models.DayHours{Open: open, Close: closeAt}
	}
	return h
}
