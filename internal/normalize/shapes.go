// Forkcast - Food Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package normalize

// PrimaryRestaurant is the document layout of the managed primary store.
type PrimaryRestaurant struct {
	ID           string                  `json:"id"`
	Name         string                  `json:"name"`
	Location     PrimaryLocation         `json:"location"`
	Cuisine      string                  `json:"cuisine,omitempty"`
	PriceRange   string                  `json:"priceRange,omitempty"`
	OpeningHours map[string]PrimaryHours `json:"openingHours,omitempty"`
	BookingURL   string                  `json:"bookingUrl,omitempty"`
	Website      string                  `json:"website,omitempty"`
	Delivery     map[string]string       `json:"deliveryPlatforms,omitempty"`
	HeroImage    string                  `json:"heroImage,omitempty"`
	Gallery      []string                `json:"gallery,omitempty"`
	Metrics      *PrimaryMetrics         `json:"metrics,omitempty"`
	Goals        []string                `json:"goals,omitempty"`
	HiddenGem    *PrimaryGemOverride     `json:"hiddenGem,omitempty"`
}

// PrimaryLocation is the nested location object of a primary document.
type PrimaryLocation struct {
	City         string           `json:"city"`
	CountryCode  string           `json:"countryCode"`
	Neighborhood string           `json:"neighborhood,omitempty"`
	Address      string           `json:"address,omitempty"`
	Geo          *PrimaryGeoPoint `json:"geo,omitempty"`
}

// PrimaryGeoPoint uses the document store's lat/lng naming.
type PrimaryGeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// PrimaryHours is one weekday entry.
type PrimaryHours struct {
	Open   string `json:"open,omitempty"`
	Close  string `json:"close,omitempty"`
	Closed bool   `json:"closed,omitempty"`
}

// PrimaryMetrics holds reputation numbers.
type PrimaryMetrics struct {
	AvgRating       *float64 `json:"avgRating,omitempty"`
	ReviewCount     *int     `json:"reviewCount,omitempty"`
	PopularityScore *float64 `json:"popularityScore,omitempty"`
}

// PrimaryGemOverride is the curator's manual adjustment.
type PrimaryGemOverride struct {
	OverrideScore *float64 `json:"overrideScore,omitempty"`
	Tier          string   `json:"tier,omitempty"`
}

// PrimaryMenuItem is a menu document. Dietary and rarity are string lists.
type PrimaryMenuItem struct {
	ID           string   `json:"id"`
	RestaurantID string   `json:"restaurantId"`
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Price        *float64 `json:"price,omitempty"`
	Category     string   `json:"category,omitempty"`
	MealPeriod   string   `json:"mealPeriod,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	Dietary      []string `json:"dietary,omitempty"`
	Available    *bool    `json:"available,omitempty"`
	DailyLimit   *int     `json:"dailyLimit,omitempty"`
	Availability string   `json:"availability,omitempty"`
	Rarity       []string `json:"rarity,omitempty"`
}

// LocalRestaurant is the flat record layout of the local store. Menu items
// are embedded.
type LocalRestaurant struct {
	RestaurantID      string            `json:"restaurant_id"`
	RestaurantName    string            `json:"restaurant_name"`
	City              string            `json:"city"`
	CountryCode       string            `json:"country_code"`
	Area              string            `json:"area,omitempty"`
	Address           string            `json:"address,omitempty"`
	Latitude          *float64          `json:"latitude,omitempty"`
	Longitude         *float64          `json:"longitude,omitempty"`
	CuisineType       string            `json:"cuisine_type,omitempty"`
	PriceRange        string            `json:"price_range,omitempty"`
	Hours             map[string]string `json:"hours,omitempty"`
	ReservationURL    string            `json:"reservation_url,omitempty"`
	Website           string            `json:"website,omitempty"`
	DeliveryPlatforms map[string]string `json:"delivery_platforms,omitempty"`
	HeroImage         string            `json:"hero_image,omitempty"`
	Gallery           []string          `json:"gallery,omitempty"`
	Rating            *float64          `json:"rating,omitempty"`
	ReviewCount       *int              `json:"review_count,omitempty"`
	PopularityScore   *float64          `json:"popularity_score,omitempty"`
	Goals             []string          `json:"goals,omitempty"`
	GemScoreOverride  *float64          `json:"gem_score_override,omitempty"`
	GemTier           string            `json:"gem_tier,omitempty"`
	Menu              []LocalMenuItem   `json:"menu,omitempty"`
}

// LocalMenuItem is a dish embedded in a LocalRestaurant.
type LocalMenuItem struct {
	ItemID             string   `json:"item_id"`
	DishName           string   `json:"dish_name"`
	Description        string   `json:"description,omitempty"`
	Price              *float64 `json:"price,omitempty"`
	Category           string   `json:"category,omitempty"`
	MealType           string   `json:"meal_type,omitempty"`
	CuisineTags        []string `json:"cuisine_tags,omitempty"`
	IsVegetarian       bool     `json:"is_vegetarian,omitempty"`
	IsVegan            bool     `json:"is_vegan,omitempty"`
	IsGlutenFree       bool     `json:"is_gluten_free,omitempty"`
	IsDairyFree        bool     `json:"is_dairy_free,omitempty"`
	IsHalal            bool     `json:"is_halal,omitempty"`
	IsKosher           bool     `json:"is_kosher,omitempty"`
	Available          *bool    `json:"available,omitempty"`
	DailyQuantityLimit *int     `json:"daily_quantity_limit,omitempty"`
	AvailabilityType   string   `json:"availability_type,omitempty"`
	IsFamilyRecipe     bool     `json:"is_family_recipe,omitempty"`
	IsSecretRecipe     bool     `json:"is_secret_recipe,omitempty"`
	TraditionalMethod  bool     `json:"traditional_method,omitempty"`
}
