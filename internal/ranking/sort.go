// Forkcast - Food Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package ranking

import (
	"sort"

	"github.com/tomtom215/forkcast/internal/models"
)

// SortResults orders results in place for the given mode. Ties keep their
// input order. Unknown modes sort by relevance.
func SortResults(results []models.ScoredResult, mode models.SortMode) {
	switch mode {
	case models.SortHiddenGem:
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].GemScore > results[j].GemScore
		})
	case models.SortDistance:
		sort.SliceStable(results, func(i, j int) bool {
			a, b := results[i].DistanceKm, results[j].DistanceKm
			switch {
			case a == nil:
				return false
			case b == nil:
				return true
			default:
				return *a < *b
			}
		})
	default:
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].RelevanceScore > results[j].RelevanceScore
		})
	}
}
