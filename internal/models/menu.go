// Forkcast - Food Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package models

// MealPeriod is the coarse time-of-day classification of a dish.
type MealPeriod string

const (
	MealBreakfast MealPeriod = "breakfast"
	MealLunch     MealPeriod = "lunch"
	MealDinner    MealPeriod = "dinner"
	MealSnack     MealPeriod = "snack"
	MealAllDay    MealPeriod = "all_day"
)

// ParseMealPeriod maps a raw value to a MealPeriod, defaulting to all_day.
func ParseMealPeriod(s string) MealPeriod {
	switch MealPeriod(s) {
	case MealBreakfast, MealLunch, MealDinner, MealSnack, MealAllDay:
		return MealPeriod(s)
	default:
		return MealAllDay
	}
}

// Dietary is a single dietary requirement.
type Dietary string

const (
	DietVegetarian Dietary = "vegetarian"
	DietVegan      Dietary = "vegan"
	DietGlutenFree Dietary = "gluten_free"
	DietDairyFree  Dietary = "dairy_free"
	DietHalal      Dietary = "halal"
	DietKosher     Dietary = "kosher"
)

// AllDietary lists every supported dietary requirement.
var AllDietary = []Dietary{DietVegetarian, DietVegan, DietGlutenFree, DietDairyFree, DietHalal, DietKosher}

// DietaryFlags are declared by the restaurant, never inferred.
type DietaryFlags struct {
	Vegetarian bool `json:"vegetarian"`
	Vegan      bool `json:"vegan"`
	GlutenFree bool `json:"gluten_free"`
	DairyFree  bool `json:"dairy_free"`
	Halal      bool `json:"halal"`
	Kosher     bool `json:"kosher"`
}

// Has reports whether the flag for d is set. Unknown values are false.
func (f DietaryFlags) Has(d Dietary) bool {
	switch d {
	case DietVegetarian:
		return f.Vegetarian
	case DietVegan:
		return f.Vegan
	case DietGlutenFree:
		return f.GlutenFree
	case DietDairyFree:
		return f.DairyFree
	case DietHalal:
		return f.Halal
	case DietKosher:
		return f.Kosher
	default:
		return false
	}
}

// AvailabilityType describes how often a dish can be ordered.
type AvailabilityType string

const (
	AvailabilityRegular      AvailabilityType = "regular"
	AvailabilityWeekendsOnly AvailabilityType = "weekends_only"
	AvailabilitySeasonal     AvailabilityType = "seasonal"
	AvailabilityChefSpecial  AvailabilityType = "chef_special"
)

// Normalized item tags with scoring meaning.
const (
	TagSignature    = "signature"
	TagFamilyRecipe = "family recipe"
	TagSecretRecipe = "secret recipe"
	TagTraditional  = "traditional"
)

// MenuItem is the canonical dish view.
type MenuItem struct {
	ID           string       `json:"menu_item_id"`
	RestaurantID string       `json:"restaurant_id"`
	Name         string       `json:"name"`
	Description  string       `json:"description,omitempty"`
	Price        float64      `json:"price"`
	Category     string       `json:"category,omitempty"`
	MealPeriod   MealPeriod   `json:"meal_period"`
	Tags         []string     `json:"tags,omitempty"`
	Dietary      DietaryFlags `json:"dietary"`
	Available    bool         `json:"available"`
	// DailyLimit is nil when the dish is not quantity-limited.
	DailyLimit   *int             `json:"daily_limit,omitempty"`
	Availability AvailabilityType `json:"availability_type"`
}

// HasTag reports whether the item carries the normalized tag.
func (m *MenuItem) HasTag(tag string) bool {
	for _, t := range m.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
