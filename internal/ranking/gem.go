// Forkcast - Food Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package ranking

import (
	"math"

	"github.com/tomtom215/forkcast/internal/models"
)

// Hidden-gem badges.
const (
	BadgeLegendaryFind    = "Legendary Find"
	BadgeHiddenGem        = "Hidden Gem"
	BadgeLocalFavorite    = "Local Favorite"
	BadgeWorthDiscovering = "Worth Discovering"
)

// legendaryFloor is the minimum score of a restaurant tiered "legendary".
const legendaryFloor = 90.0

// GemScore estimates how under-the-radar a dish is, in [0, 100].
// It does not depend on the query.
func GemScore(item *models.MenuItem, r *models.Restaurant) float64 {
	score := 0.0

	switch item.Availability {
	case models.AvailabilityWeekendsOnly:
		score += 30
	case models.AvailabilitySeasonal:
		score += 25
	case models.AvailabilityChefSpecial:
		score += 20
	}
	if item.DailyLimit != nil && *item.DailyLimit < 20 {
		score += 25
	}

	if item.HasTag(models.TagFamilyRecipe) {
		score += 20
	}
	if item.HasTag(models.TagTraditional) {
		score += 10
	}
	if item.HasTag(models.TagSecretRecipe) {
		score += 25
	}

	if !r.HasGoal(models.GoalIncreaseVisibility) {
		score += 12
	}
	if r.HasGoal(models.GoalHighlightSpecialties) && item.HasTag(models.TagSignature) {
		score += 10
	}

	rep := r.Reputation
	if rep.AvgRating != nil {
		score += math.Max(0, (*rep.AvgRating-4)*12)
	}
	if rep.ReviewCount != nil {
		switch {
		case *rep.ReviewCount < 25:
			score += 8
		case *rep.ReviewCount > 200:
			score -= 6
		}
	}
	if r.Media.HasAny() {
		score += 5
	}
	if rep.PopularityScore != nil {
		score += math.Max(0, 18-*rep.PopularityScore)
	}
	if r.GemOverride.Score != nil {
		score += *r.GemOverride.Score
	}

	score = clamp(score, 0, 100)
	if r.GemOverride.Tier == models.TierLegendary {
		score = math.Max(score, legendaryFloor)
	}
	return score
}

// BadgeFor maps a gem score to its badge, or "" below every threshold.
func BadgeFor(score float64) string {
	switch {
	case score >= 90:
		return BadgeLegendaryFind
	case score >= 70:
		return BadgeHiddenGem
	case score >= 50:
		return BadgeLocalFavorite
	case score >= 30:
		return BadgeWorthDiscovering
	default:
		return ""
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
