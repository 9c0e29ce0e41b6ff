// Forkcast - Food Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package normalize

import (
	"strings"

	"github.com/tomtom215/forkcast/internal/models"
)

// LocalRestaurantToModel converts a local record. Embedded menu items are
// converted too and attached to the restaurant; malformed ones are counted
// in the returned number.
//
//nolint:gocritic // hugeParam: raw records are passed by value through Convert
func LocalRestaurantToModel(raw LocalRestaurant) (models.Restaurant, int, error) {
	id := strings.TrimSpace(raw.RestaurantID)
	name := strings.TrimSpace(raw.RestaurantName)
	if id == "" {
		return models.Restaurant{}, 0, &MalformedRecordError{Source: models.SourceLocal, Kind: KindRestaurant, ID: raw.RestaurantName, Field: "restaurant_id"}
	}
	if name == "" {
		return models.Restaurant{}, 0, &MalformedRecordError{Source: models.SourceLocal, Kind: KindRestaurant, ID: id, Field: "restaurant_name"}
	}

	r := models.Restaurant{
		ID:   id,
		Name: name,
		Location: models.Location{
			City:         strings.TrimSpace(raw.City),
			CountryCode:  strings.ToUpper(strings.TrimSpace(raw.CountryCode)),
			Neighborhood: raw.Area,
			Address:      raw.Address,
		},
		Cuisine:    raw.CuisineType,
		PriceRange: priceRange(raw.PriceRange),
		Hours:      localHours(raw.Hours),
		Links: models.LinkCandidates{
			ReservationURL:    strings.TrimSpace(raw.ReservationURL),
			Website:           strings.TrimSpace(raw.Website),
			DeliveryPlatforms: platforms(raw.DeliveryPlatforms),
		},
		Media: models.Media{HeroImage: raw.HeroImage, Gallery: raw.Gallery},
		Reputation: models.Reputation{
			AvgRating:       raw.Rating,
			ReviewCount:     raw.ReviewCount,
			PopularityScore: raw.PopularityScore,
		},
		Goals:       Tags(raw.Goals),
		GemOverride: models.GemOverride{Score: raw.GemScoreOverride, Tier: Tag(raw.GemTier)},
		DataSource:  models.SourceLocal,
		Priority:    models.PriorityLocal,
	}

	if raw.Latitude != nil && raw.Longitude != nil {
		r.Location.Coordinates = &models.Coordinates{Lat: *raw.Latitude, Lon: *raw.Longitude}
	}

	menu, dropped := Convert(raw.Menu, func(item LocalMenuItem) (models.MenuItem, error) {
		return LocalMenuItemToModel(item, id)
	}, nil)
	r.Menu = menu

	return r, dropped, nil
}

// LocalMenuItemToModel converts an embedded local dish owned by restaurantID.
//
//nolint:gocritic // hugeParam: raw records are passed by value through Convert
func LocalMenuItemToModel(raw LocalMenuItem, restaurantID string) (models.MenuItem, error) {
	id := strings.TrimSpace(raw.ItemID)
	if id == "" {
		return models.MenuItem{}, &MalformedRecordError{Source: models.SourceLocal, Kind: KindMenuItem, ID: raw.DishName, Field: "item_id"}
	}
	if strings.TrimSpace(raw.DishName) == "" {
		return models.MenuItem{}, &MalformedRecordError{Source: models.SourceLocal, Kind: KindMenuItem, ID: id, Field: "dish_name"}
	}

	var rarity []string
	if raw.IsFamilyRecipe {
		rarity = append(rarity, models.TagFamilyRecipe)
	}
	if raw.IsSecretRecipe {
		rarity = append(rarity, models.TagSecretRecipe)
	}
	if raw.TraditionalMethod {
		rarity = append(rarity, models.TagTraditional)
	}

	return models.MenuItem{
		ID:           id,
		RestaurantID: restaurantID,
		Name:         strings.TrimSpace(raw.DishName),
		Description:  raw.Description,
		Price:        price(raw.Price),
		Category:     raw.Category,
		MealPeriod:   mealPeriod(raw.MealType),
		Tags:         Tags(raw.CuisineTags, rarity),
		Dietary: models.DietaryFlags{
			Vegetarian: raw.IsVegetarian,
			Vegan:      raw.IsVegan,
			GlutenFree: raw.IsGlutenFree,
			DairyFree:  raw.IsDairyFree,
			Halal:      raw.IsHalal,
			Kosher:     raw.IsKosher,
		},
		Available:    available(raw.Available),
		DailyLimit:   raw.DailyQuantityLimit,
		Availability: availabilityType(raw.AvailabilityType),
	}, nil
}

// localHours parses "09:00-22:00" or "closed" per day. Entries in any other
// form are left out, which reads as closed for that day.
func localHours(in map[string]string) models.WeeklyHours {
	if in == nil {
		return nil
	}
	out := make(models.WeeklyHours, len(in))
	for day, spec := range in {
		key := strings.ToLower(strings.TrimSpace(day))
		spec = strings.TrimSpace(spec)
		if strings.EqualFold(spec, "closed") {
			out[key] = models.DayHours{Closed: true}
			continue
		}
		open, closeAt, ok := strings.Cut(spec, "-")
		if !ok {
			continue
		}
		out[key] = models.DayHours{Open: strings.TrimSpace(open), Close: strings.TrimSpace(closeAt)}
	}
	return out
}
