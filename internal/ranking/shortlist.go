// Forkcast - Food Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package ranking

import (
	"math"
	"sort"

	"github.com/tomtom215/forkcast/internal/models"
)

type group struct {
	entry   models.ShortlistEntry
	relSum  float64
	gemSum  float64
	bestGem float64
	vibes   map[string]struct{}
}

// Shortlist groups sorted results by restaurant. Samples are the first
// perRestaurant results seen for each restaurant; averages cover every
// result. Entries are ordered by descending experience score, ties in
// encounter order, and truncated to limit.
func Shortlist(results []models.ScoredResult, perRestaurant, limit int) []models.ShortlistEntry {
	groups := make(map[string]*group)
	var order []string

	for i := range results {
		res := &results[i]
		id := res.Restaurant.ID

		g, ok := groups[id]
		if !ok {
			g = &group{
				entry: models.ShortlistEntry{
					Restaurant:    res.Restaurant,
					Vibes:         []string{},
					DistanceKm:    res.DistanceKm,
					DistanceLabel: res.DistanceLabel,
					Availability:  res.Availability,
					Link:          res.Link,
					Badge:         res.Badge,
				},
				bestGem: res.GemScore,
				vibes:   make(map[string]struct{}),
			}
			groups[id] = g
			order = append(order, id)
		}

		if len(g.entry.SampleItems) < perRestaurant {
			g.entry.SampleItems = append(g.entry.SampleItems, *res)
		}
		g.entry.MatchCount++
		g.relSum += res.RelevanceScore
		g.gemSum += res.GemScore
		if res.GemScore > g.bestGem {
			g.bestGem = res.GemScore
			g.entry.Badge = res.Badge
		}
		for _, tag := range res.Item.Tags {
			if _, seen := g.vibes[tag]; !seen {
				g.vibes[tag] = struct{}{}
				g.entry.Vibes = append(g.entry.Vibes, tag)
			}
		}
	}

	out := make([]models.ShortlistEntry, 0, len(order))
	for _, id := range order {
		g := groups[id]
		n := float64(g.entry.MatchCount)
		g.entry.AvgRelevance = g.relSum / n
		g.entry.AvgGem = g.gemSum / n
		g.entry.ExperienceScore = ExperienceScore(g.entry.AvgRelevance, g.entry.AvgGem)
		out = append(out, g.entry)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ExperienceScore > out[j].ExperienceScore
	})

	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// ExperienceScore blends average relevance and average gem score into
// an integer in [0, 100].
func ExperienceScore(avgRelevance, avgGem float64) int {
	return int(math.Round(clamp(avgRelevance*0.6+avgGem*0.4, 0, 100)))
}
