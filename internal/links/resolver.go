// Forkcast - Food Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package links

import (
	"net/url"
	"strings"

	"github.com/tomtom215/forkcast/internal/models"
)

// Link types, in resolution priority order.
const (
	TypeReservation = "reservation"
	TypeWebsite     = "website"
	TypeDelivery    = "delivery"
	TypeMap         = "map"
)

// deliveryPlatform builds an order URL from a platform identifier.
type deliveryPlatform struct {
	key      string
	label    string
	template string
}

// deliveryPlatforms are tried in this order; the first one the restaurant
// lists wins.
var deliveryPlatforms = []deliveryPlatform{
	{key: "deliveroo", label: "Order on Deliveroo", template: "https://deliveroo.co.uk/menu/%s"},
	{key: "ubereats", label: "Order on Uber Eats", template: "https://www.ubereats.com/store/%s"},
	{key: "doordash", label: "Order on DoorDash", template: "https://www.doordash.com/store/%s"},
	{key: "justeat", label: "Order on Just Eat", template: "https://www.just-eat.co.uk/restaurants-%s"},
	{key: "grubhub", label: "Order on Grubhub", template: "https://www.grubhub.com/restaurant/%s"},
}

const mapSearchBase = "https://www.google.com/maps/search/?api=1&query="

// Resolve picks the single outbound link for a restaurant: reservation URL,
// then website, then a delivery platform, then a map search. The map search
// always succeeds.
func Resolve(r *models.Restaurant) models.Link {
	if u := strings.TrimSpace(r.Links.ReservationURL); u != "" {
		return models.Link{URL: u, Type: TypeReservation, Label: "Reserve a table"}
	}
	if u := strings.TrimSpace(r.Links.Website); u != "" {
		return models.Link{URL: u, Type: TypeWebsite, Label: "Visit website"}
	}
	for _, p := range deliveryPlatforms {
		id := strings.TrimSpace(r.Links.DeliveryPlatforms[p.key])
		if id == "" {
			continue
		}
		return models.Link{
			URL:   strings.Replace(p.template, "%s", url.PathEscape(id), 1),
			Type:  TypeDelivery,
			Label: p.label,
		}
	}
	return models.Link{URL: MapSearchURL(r), Type: TypeMap, Label: "Find on map"}
}

// MapSearchURL builds a map search for the address, or for "name city"
// when no address is known.
func MapSearchURL(r *models.Restaurant) string {
	query := strings.TrimSpace(r.Location.Address)
	if query == "" {
		query = strings.TrimSpace(strings.Join(strings.Fields(r.Name+" "+r.Location.City), " "))
	}
	return mapSearchBase + url.QueryEscape(query)
}
