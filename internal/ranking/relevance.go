// Forkcast - Food Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package ranking

import (
	"strings"
	"unicode/utf8"

	"github.com/tomtom215/forkcast/internal/models"
)

// Relevance contributions.
const (
	noiseRange         = 5.0
	moodWordBoost      = 10.0
	visibilityBoost    = 3.0
	specialtyBoost     = 15.0
	dietaryGoalBoost   = 12.0
	primarySourceBoost = 5.0
)

// RelevanceScorer scores how well an item fits a query. The result is
// comparative and has no upper bound.
type RelevanceScorer struct {
	rng RandomSource
}

// NewRelevanceScorer returns a scorer. A nil source disables the random
// base term.
func NewRelevanceScorer(rng RandomSource) *RelevanceScorer {
	return &RelevanceScorer{rng: rng}
}

// Score returns the relevance of item at r for q.
func (s *RelevanceScorer) Score(item *models.MenuItem, r *models.Restaurant, q *models.SearchQuery) float64 {
	score := 0.0
	if s.rng != nil {
		score = s.rng.Float64() * noiseRange
	}

	score += moodWordBoost * float64(moodMatches(item, q.Mood))

	if r.HasGoal(models.GoalIncreaseVisibility) {
		score += visibilityBoost
	}
	if r.HasGoal(models.GoalHighlightSpecialties) && item.HasTag(models.TagSignature) {
		score += specialtyBoost
	}
	if r.HasGoal(models.GoalAttractDietary) && satisfiesAny(item.Dietary, q.Dietary) {
		score += dietaryGoalBoost
	}
	if r.DataSource == models.SourcePrimary {
		score += primarySourceBoost
	}
	return score
}

// moodMatches counts mood words longer than two characters found in the
// item text. Repeated words count each time.
func moodMatches(item *models.MenuItem, mood string) int {
	if mood == "" {
		return 0
	}
	text := strings.ToLower(item.Name + " " + item.Description + " " + strings.Join(item.Tags, " "))

	n := 0
	for _, w := range strings.Fields(strings.ToLower(mood)) {
		w = strings.Trim(w, ".,;:!?\"'()")
		if utf8.RuneCountInString(w) <= 2 {
			continue
		}
		if strings.Contains(text, w) {
			n++
		}
	}
	return n
}

func satisfiesAny(flags models.DietaryFlags, requested []models.Dietary) bool {
	for _, d := range requested {
		if flags.Has(d) {
			return true
		}
	}
	return false
}
