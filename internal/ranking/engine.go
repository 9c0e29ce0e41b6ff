// Forkcast - Food Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package ranking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/forkcast/internal/geo"
	"github.com/tomtom215/forkcast/internal/links"
	"github.com/tomtom215/forkcast/internal/logging"
	"github.com/tomtom215/forkcast/internal/metrics"
	"github.com/tomtom215/forkcast/internal/models"
	"github.com/tomtom215/forkcast/internal/sources"
	"github.com/tomtom215/forkcast/internal/validation"
)

// Fetcher builds the merged working set for one request.
// *sources.Merger implements it.
type Fetcher interface {
	Fetch(ctx context.Context, mode models.SourceMode) (*sources.WorkingSet, error)
}

// Engine runs the search pipeline: validate, fetch, filter, score, sort and
// aggregate. It holds no per-request state and is safe for concurrent use.
type Engine struct {
	config    *Config
	logger    zerolog.Logger
	fetcher   Fetcher
	relevance *RelevanceScorer
}

// NewEngine creates a ranking engine reading from fetcher.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, fetcher Fetcher, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if fetcher == nil {
		return nil, errors.New("fetcher is required")
	}

	var rng RandomSource
	if cfg.RelevanceNoise {
		rng = NewRandomSource(cfg.Seed)
	}

	return &Engine{
		config:    cfg,
		logger:    logger.With().Str("component", "ranking").Logger(),
		fetcher:   fetcher,
		relevance: NewRelevanceScorer(rng),
	}, nil
}

// Search answers a query with a flat list of dishes and a per-restaurant
// shortlist. Invalid queries fail with ErrInvalidQuery before any source is
// read. A source failure degrades the response; only when every selected
// source fails is an error returned.
//
//nolint:gocritic // hugeParam: q passed by value for immutability
func (e *Engine) Search(ctx context.Context, q models.SearchQuery) (*models.SearchResponse, error) {
	start := time.Now()

	if err := e.validateQuery(&q); err != nil {
		metrics.RecordSearch("invalid", time.Since(start), 0)
		return nil, err
	}

	q = e.prepareQuery(q)
	requestID := logging.RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	logger := e.createRequestLogger(requestID, &q)
	logger.Debug().Msg("processing search request")

	ws, err := e.fetcher.Fetch(ctx, q.Mode)
	if err != nil {
		metrics.RecordSearch("unavailable", time.Since(start), 0)
		return nil, fmt.Errorf("fetch working set: %w", err)
	}

	candidates := Filter(ws.Restaurants, &q)
	results := e.scoreCandidates(candidates, &q)
	SortResults(results, q.SortBy)

	shortlist := Shortlist(results, q.PerRestaurant, q.Limit)
	if len(results) > q.Limit {
		results = results[:q.Limit]
	}

	resp := &models.SearchResponse{
		Items:     results,
		Shortlist: shortlist,
		Sources:   ws.Report,
		Metadata: models.SearchMetadata{
			RequestID:  requestID,
			LatencyMS:  time.Since(start).Milliseconds(),
			Candidates: len(candidates),
			Timestamp:  start.UTC(),
		},
	}

	metrics.RecordSearch(searchOutcome(resp), time.Since(start), len(candidates))
	logger.Debug().
		Int("restaurants", len(ws.Restaurants)).
		Int("menu_items", ws.ItemCount()).
		Int("candidates", len(candidates)).
		Int("returned", len(results)).
		Int("shortlisted", len(shortlist)).
		Bool("degraded", ws.Report.Degraded).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("search complete")

	return resp, nil
}

// validateQuery applies struct rules and the configured limits.
func (e *Engine) validateQuery(q *models.SearchQuery) error {
	if verr := validation.ValidateStruct(q); verr != nil {
		return fmt.Errorf("%w: %w", ErrInvalidQuery, verr)
	}
	if q.Limit > e.config.Limits.MaxLimit {
		maxLimit := e.config.Limits.MaxLimit
		return fmt.Errorf("%w: %w", ErrInvalidQuery, validation.NewRequestValidationError(
			"limit", "max", fmt.Sprint(maxLimit), q.Limit,
			fmt.Sprintf("limit must be at most %d", maxLimit)))
	}
	if q.PerRestaurant > e.config.Limits.MaxPerRestaurant {
		maxPer := e.config.Limits.MaxPerRestaurant
		return fmt.Errorf("%w: %w", ErrInvalidQuery, validation.NewRequestValidationError(
			"per_restaurant", "max", fmt.Sprint(maxPer), q.PerRestaurant,
			fmt.Sprintf("per_restaurant must be at most %d", maxPer)))
	}
	return nil
}

// prepareQuery fills configured defaults.
//
//nolint:gocritic // hugeParam: q passed by value for immutability
func (e *Engine) prepareQuery(q models.SearchQuery) models.SearchQuery {
	if q.Limit == 0 {
		q.Limit = e.config.Limits.DefaultLimit
	}
	if q.PerRestaurant == 0 {
		q.PerRestaurant = e.config.Limits.DefaultPerRestaurant
	}
	if q.SortBy == "" {
		q.SortBy = models.SortRelevance
	}
	if q.Mode == "" {
		q.Mode = e.config.DefaultMode
	}
	if q.MealPeriod == "" {
		q.MealPeriod = models.MealAllDay
	}
	if q.Location.RadiusKm == 0 {
		q.Location.RadiusKm = e.config.DefaultRadiusKm
	}
	return q
}

func (e *Engine) createRequestLogger(requestID string, q *models.SearchQuery) zerolog.Logger {
	return e.logger.With().
		Str("request_id", requestID).
		Str("mode", string(q.Mode)).
		Str("sort_by", string(q.SortBy)).
		Int("limit", q.Limit).
		Logger()
}

// scoreCandidates turns filtered candidates into results.
func (e *Engine) scoreCandidates(candidates []Candidate, q *models.SearchQuery) []models.ScoredResult {
	results := make([]models.ScoredResult, 0, len(candidates))
	for _, c := range candidates {
		gem := GemScore(c.Item, c.Restaurant)
		results = append(results, models.ScoredResult{
			Item:           *c.Item,
			Restaurant:     summarize(c.Restaurant),
			RelevanceScore: e.relevance.Score(c.Item, c.Restaurant, q),
			GemScore:       gem,
			Badge:          BadgeFor(gem),
			DistanceKm:     c.DistanceKm,
			DistanceLabel:  geo.DisplayDistance(c.DistanceKm, c.Restaurant.Location),
			Availability:   c.Availability,
			Link:           links.Resolve(c.Restaurant),
		})
	}
	return results
}

func summarize(r *models.Restaurant) models.RestaurantSummary {
	return models.RestaurantSummary{
		ID:           r.ID,
		Name:         r.Name,
		City:         r.Location.City,
		CountryCode:  r.Location.CountryCode,
		Neighborhood: r.Location.Neighborhood,
		Cuisine:      r.Cuisine,
		PriceRange:   r.PriceRange,
		HeroImage:    r.Media.HeroImage,
		DataSource:   r.DataSource,
	}
}

func searchOutcome(resp *models.SearchResponse) string {
	switch {
	case resp.Sources.Degraded:
		return "degraded"
	case len(resp.Items) == 0:
		return "empty"
	default:
		return "ok"
	}
}
