// Forkcast - Food Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package geo

import (
	"fmt"
	"math"

	"github.com/tomtom215/forkcast/internal/models"
)

// EarthRadiusKm is the mean Earth radius used by DistanceKm.
const EarthRadiusKm = 6371.0

// DistanceKm returns the great-circle distance between two points using the
// haversine formula.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

// Between returns the distance between two optional points, or nil when
// either is missing.
func Between(a, b *models.Coordinates) *float64 {
	if a == nil || b == nil {
		return nil
	}
	d := DistanceKm(a.Lat, a.Lon, b.Lat, b.Lon)
	return &d
}

// FormatDistance renders a distance for display:
//   - under 1 km: whole meters, "850m away"
//   - under 10 km: one decimal, "3.2km away"
//   - otherwise: whole kilometers, "15km away"
func FormatDistance(km float64) string {
	switch {
	case km < 1:
		return fmt.Sprintf("%dm away", int(math.Round(km*1000)))
	case km < 10:
		return fmt.Sprintf("%.1fkm away", km)
	default:
		return fmt.Sprintf("%dkm away", int(math.Round(km)))
	}
}

// DisplayDistance returns the formatted distance when known, otherwise the
// restaurant's neighborhood and city.
func DisplayDistance(km *float64, loc models.Location) string {
	if km != nil {
		return FormatDistance(*km)
	}
	switch {
	case loc.Neighborhood != "" && loc.City != "":
		return loc.Neighborhood + ", " + loc.City
	case loc.Neighborhood != "":
		return loc.Neighborhood
	default:
		return loc.City
	}
}
