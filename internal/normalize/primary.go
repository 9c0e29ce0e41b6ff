// Forkcast - Food Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package normalize

import (
	"strings"

	"github.com/tomtom215/forkcast/internal/models"
)

// PrimaryRestaurantToModel converts a primary document to the canonical view.
//
//nolint:gocritic // hugeParam: raw records are passed by value through Convert
func PrimaryRestaurantToModel(raw PrimaryRestaurant) (models.Restaurant, error) {
	id := strings.TrimSpace(raw.ID)
	name := strings.TrimSpace(raw.Name)
	if id == "" {
		return models.Restaurant{}, &MalformedRecordError{Source: models.SourcePrimary, Kind: KindRestaurant, ID: raw.Name, Field: "id"}
	}
	if name == "" {
		return models.Restaurant{}, &MalformedRecordError{Source: models.SourcePrimary, Kind: KindRestaurant, ID: id, Field: "name"}
	}

	r := models.Restaurant{
		ID:   id,
		Name: name,
		Location: models.Location{
			City:         strings.TrimSpace(raw.Location.City),
			CountryCode:  strings.ToUpper(strings.TrimSpace(raw.Location.CountryCode)),
			Neighborhood: raw.Location.Neighborhood,
			Address:      raw.Location.Address,
		},
		Cuisine:    raw.Cuisine,
		PriceRange: priceRange(raw.PriceRange),
		Links: models.LinkCandidates{
			ReservationURL:    strings.TrimSpace(raw.BookingURL),
			Website:           strings.TrimSpace(raw.Website),
			DeliveryPlatforms: platforms(raw.Delivery),
		},
		Media:      models.Media{HeroImage: raw.HeroImage, Gallery: raw.Gallery},
		Goals:      Tags(raw.Goals),
		DataSource: models.SourcePrimary,
		Priority:   models.PriorityPrimary,
	}

	if raw.Location.Geo != nil {
		r.Location.Coordinates = &models.Coordinates{Lat: raw.Location.Geo.Lat, Lon: raw.Location.Geo.Lng}
	}

	if raw.OpeningHours != nil {
		r.Hours = make(models.WeeklyHours, len(raw.OpeningHours))
		for day, h := range raw.OpeningHours {
			r.Hours[strings.ToLower(day)] = models.DayHours{Open: h.Open, Close: h.Close, Closed: h.Closed}
		}
	}

	if raw.Metrics != nil {
		r.Reputation = models.Reputation{
			AvgRating:       raw.Metrics.AvgRating,
			ReviewCount:     raw.Metrics.ReviewCount,
			PopularityScore: raw.Metrics.PopularityScore,
		}
	}

	if raw.HiddenGem != nil {
		r.GemOverride = models.GemOverride{Score: raw.HiddenGem.OverrideScore, Tier: Tag(raw.HiddenGem.Tier)}
	}

	return r, nil
}

// PrimaryMenuItemToModel converts a primary menu document.
//
//nolint:gocritic // hugeParam: raw records are passed by value through Convert
func PrimaryMenuItemToModel(raw PrimaryMenuItem) (models.MenuItem, error) {
	id := strings.TrimSpace(raw.ID)
	switch {
	case id == "":
		return models.MenuItem{}, &MalformedRecordError{Source: models.SourcePrimary, Kind: KindMenuItem, ID: raw.Name, Field: "id"}
	case strings.TrimSpace(raw.RestaurantID) == "":
		return models.MenuItem{}, &MalformedRecordError{Source: models.SourcePrimary, Kind: KindMenuItem, ID: id, Field: "restaurantId"}
	case strings.TrimSpace(raw.Name) == "":
		return models.MenuItem{}, &MalformedRecordError{Source: models.SourcePrimary, Kind: KindMenuItem, ID: id, Field: "name"}
	}

	return models.MenuItem{
		ID:           id,
		RestaurantID: strings.TrimSpace(raw.RestaurantID),
		Name:         strings.TrimSpace(raw.Name),
		Description:  raw.Description,
		Price:        price(raw.Price),
		Category:     raw.Category,
		MealPeriod:   mealPeriod(raw.MealPeriod),
		Tags:         Tags(raw.Tags, raw.Rarity),
		Dietary:      dietaryFromList(raw.Dietary),
		Available:    available(raw.Available),
		DailyLimit:   raw.DailyLimit,
		Availability: availabilityType(raw.Availability),
	}, nil
}

func platforms(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		key := strings.ReplaceAll(Tag(k), " ", "")
		if v = strings.TrimSpace(v); key != "" && v != "" {
			out[key] = v
		}
	}
	return out
}
