// Forkcast - Food Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package normalize

import (
	"errors"
	"reflect"
	"testing"

	"github.com/tomtom215/forkcast/internal/models"
)

func ptr[T any](v T) *T { return &v }

func TestPrimaryRestaurantToModel(t *testing.T) {
	t.Parallel()

	raw := PrimaryRestaurant{
		ID:   "p-1",
		Name: " Dishoom ",
		Location: PrimaryLocation{
			City:        "London",
			CountryCode: "gb",
			Geo:         &PrimaryGeoPoint{Lat: 51.5, Lng: -0.12},
		},
		OpeningHours: map[string]PrimaryHours{"Monday": {Open: "08:00", Close: "23:00"}},
		BookingURL:   "https://book.example/dishoom",
		Delivery:     map[string]string{"Uber-Eats": "abc"},
		Metrics:      &PrimaryMetrics{AvgRating: ptr(4.5), ReviewCount: ptr(320)},
		Goals:        []string{"Highlight_Specialties", "increase-visibility"},
		HiddenGem:    &PrimaryGemOverride{OverrideScore: ptr(5.0), Tier: "Legendary"},
	}

	got, err := PrimaryRestaurantToModel(raw)
	if err != nil {
		t.Fatalf("PrimaryRestaurantToModel() error = %v", err)
	}

	if got.Name != "Dishoom" {
		t.Errorf("Name = %q, want Dishoom", got.Name)
	}
	if got.Location.CountryCode != "GB" {
		t.Errorf("CountryCode = %q, want GB", got.Location.CountryCode)
	}
	if got.Location.Coordinates == nil || got.Location.Coordinates.Lon != -0.12 {
		t.Errorf("Coordinates = %+v, want lon -0.12", got.Location.Coordinates)
	}
	if got.PriceRange != models.DefaultPriceRange {
		t.Errorf("PriceRange = %q, want default %q", got.PriceRange, models.DefaultPriceRange)
	}
	if _, ok := got.Hours["monday"]; !ok {
		t.Errorf("Hours keys not lowercased: %v", got.Hours)
	}
	if got.Links.DeliveryPlatforms["ubereats"] != "abc" {
		t.Errorf("DeliveryPlatforms = %v, want ubereats key", got.Links.DeliveryPlatforms)
	}
	wantGoals := []string{models.GoalHighlightSpecialties, models.GoalIncreaseVisibility}
	if !reflect.DeepEqual(got.Goals, wantGoals) {
		t.Errorf("Goals = %v, want %v", got.Goals, wantGoals)
	}
	if got.GemOverride.Tier != models.TierLegendary {
		t.Errorf("Tier = %q, want legendary", got.GemOverride.Tier)
	}
	if got.DataSource != models.SourcePrimary || got.Priority != models.PriorityPrimary {
		t.Errorf("DataSource/Priority = %q/%d", got.DataSource, got.Priority)
	}
}

func TestPrimaryRestaurantToModel_Malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		raw       PrimaryRestaurant
		wantField string
	}{
		{"missing id", PrimaryRestaurant{Name: "X"}, "id"},
		{"blank name", PrimaryRestaurant{ID: "p-1", Name: "   "}, "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := PrimaryRestaurantToModel(tt.raw)
			if !errors.Is(err, ErrMalformedRecord) {
				t.Fatalf("error = %v, want ErrMalformedRecord", err)
			}
			var mre *MalformedRecordError
			if !errors.As(err, &mre) || mre.Field != tt.wantField {
				t.Errorf("field = %v, want %q", mre, tt.wantField)
			}
		})
	}
}

func TestPrimaryMenuItemToModel_Defaults(t *testing.T) {
	t.Parallel()

	got, err := PrimaryMenuItemToModel(PrimaryMenuItem{ID: "m-1", RestaurantID: "p-1", Name: "Black Daal"})
	if err != nil {
		t.Fatalf("PrimaryMenuItemToModel() error = %v", err)
	}
	if got.MealPeriod != models.MealAllDay {
		t.Errorf("MealPeriod = %q, want all_day", got.MealPeriod)
	}
	if got.Dietary != (models.DietaryFlags{}) {
		t.Errorf("Dietary = %+v, want all false", got.Dietary)
	}
	if !got.Available {
		t.Error("Available should default to true")
	}
	if got.Availability != models.AvailabilityRegular {
		t.Errorf("Availability = %q, want regular", got.Availability)
	}
}

func TestPrimaryMenuItemToModel_Fields(t *testing.T) {
	t.Parallel()

	got, err := PrimaryMenuItemToModel(PrimaryMenuItem{
		ID:           "m-2",
		RestaurantID: "p-1",
		Name:         "Jackfruit Biryani",
		MealPeriod:   "Dinner",
		Tags:         []string{"Signature", "spicy"},
		Rarity:       []string{"family_recipe", "signature"},
		Dietary:      []string{"Vegan", "gluten-free", "paleo"},
		Available:    ptr(false),
		DailyLimit:   ptr(12),
		Availability: "Weekends Only",
	})
	if err != nil {
		t.Fatalf("PrimaryMenuItemToModel() error = %v", err)
	}
	if got.MealPeriod != models.MealDinner {
		t.Errorf("MealPeriod = %q, want dinner", got.MealPeriod)
	}
	wantTags := []string{"signature", "spicy", "family recipe"}
	if !reflect.DeepEqual(got.Tags, wantTags) {
		t.Errorf("Tags = %v, want %v", got.Tags, wantTags)
	}
	want := models.DietaryFlags{Vegan: true, GlutenFree: true}
	if got.Dietary != want {
		t.Errorf("Dietary = %+v, want %+v", got.Dietary, want)
	}
	if got.Available {
		t.Error("Available = true, want false")
	}
	if got.Availability != models.AvailabilityWeekendsOnly {
		t.Errorf("Availability = %q, want weekends_only", got.Availability)
	}
}

func TestLocalRestaurantToModel(t *testing.T) {
	t.Parallel()

	raw := LocalRestaurant{
		RestaurantID:   "l-1",
		RestaurantName: "Nonna's Kitchen",
		City:           "Bologna",
		CountryCode:    "it",
		Latitude:       ptr(44.49),
		Longitude:      ptr(11.34),
		PriceRange:     "$$$",
		Hours:          map[string]string{"Tuesday": "12:00-15:00", "monday": "closed", "sunday": "by appointment"},
		Rating:         ptr(4.8),
		GemTier:        "legendary",
		Menu: []LocalMenuItem{
			{ItemID: "i-1", DishName: "Tagliatelle", MealType: "lunch", IsVegetarian: true, IsFamilyRecipe: true, TraditionalMethod: true, DailyQuantityLimit: ptr(15)},
			{ItemID: "", DishName: "Nameless"},
			{ItemID: "i-3", DishName: ""},
		},
	}

	got, dropped, err := LocalRestaurantToModel(raw)
	if err != nil {
		t.Fatalf("LocalRestaurantToModel() error = %v", err)
	}
	if dropped != 2 {
		t.Errorf("dropped = %d, want 2", dropped)
	}
	if len(got.Menu) != 1 {
		t.Fatalf("len(Menu) = %d, want 1", len(got.Menu))
	}

	item := got.Menu[0]
	if item.RestaurantID != "l-1" {
		t.Errorf("item.RestaurantID = %q, want l-1", item.RestaurantID)
	}
	if !item.HasTag(models.TagFamilyRecipe) || !item.HasTag(models.TagTraditional) {
		t.Errorf("item.Tags = %v, want family recipe and traditional", item.Tags)
	}
	if !item.Dietary.Vegetarian {
		t.Error("item should be vegetarian")
	}

	if got.Hours["tuesday"] != (models.DayHours{Open: "12:00", Close: "15:00"}) {
		t.Errorf("tuesday = %+v", got.Hours["tuesday"])
	}
	if !got.Hours["monday"].Closed {
		t.Error("monday should be closed")
	}
	if _, ok := got.Hours["sunday"]; ok {
		t.Error("unparseable sunday entry should be left out")
	}
	if got.Location.Coordinates == nil {
		t.Error("Coordinates should be set")
	}
	if got.DataSource != models.SourceLocal || got.Priority != models.PriorityLocal {
		t.Errorf("DataSource/Priority = %q/%d", got.DataSource, got.Priority)
	}
}

func TestLocalRestaurantToModel_PartialCoordinates(t *testing.T) {
	t.Parallel()

	got, _, err := LocalRestaurantToModel(LocalRestaurant{RestaurantID: "l-2", RestaurantName: "Half", Latitude: ptr(1.0)})
	if err != nil {
		t.Fatalf("error = %v", err)
	}
	if got.Location.Coordinates != nil {
		t.Errorf("Coordinates = %+v, want nil without longitude", got.Location.Coordinates)
	}
}

func TestConvert_CountsDrops(t *testing.T) {
	t.Parallel()

	raws := []PrimaryMenuItem{
		{ID: "a", RestaurantID: "r", Name: "A"},
		{ID: "b", Name: "B"},
		{ID: "", RestaurantID: "r", Name: "C"},
		{ID: "d", RestaurantID: "r", Name: "D"},
	}

	var errs []error
	items, dropped := Convert(raws, PrimaryMenuItemToModel, func(err error) { errs = append(errs, err) })
	if len(items) != 2 || dropped != 2 {
		t.Fatalf("Convert() = %d items, %d dropped; want 2, 2", len(items), dropped)
	}
	if len(errs) != 2 {
		t.Errorf("onDrop called %d times, want 2", len(errs))
	}
	if items[0].ID != "a" || items[1].ID != "d" {
		t.Errorf("order not preserved: %s, %s", items[0].ID, items[1].ID)
	}
}

func TestTag(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"Highlight_Specialties": "highlight specialties",
		"  secret-recipe ":      "secret recipe",
		"FAMILY   RECIPE":       "family recipe",
		"":                      "",
	}
	for in, want := range tests {
		if got := Tag(in); got != want {
			t.Errorf("Tag(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestReport(t *testing.T) {
	t.Parallel()

	r := Report{DroppedRestaurants: 1}
	r.Add(Report{DroppedRestaurants: 2, DroppedItems: 3})
	if r.Total() != 6 {
		t.Errorf("Total() = %d, want 6", r.Total())
	}
}
