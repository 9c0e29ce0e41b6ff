// Forkcast - Food Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package api

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/forkcast/internal/models"
	"github.com/tomtom215/forkcast/internal/normalize"
)

// Searcher answers search queries. *ranking.Engine implements it.
type Searcher interface {
	Search(ctx context.Context, q models.SearchQuery) (*models.SearchResponse, error)
}

// LocalWriter writes local-store records and announces the change.
// *eventprocessor.LocalWriter implements it.
type LocalWriter interface {
	Upsert(ctx context.Context, rec *normalize.LocalRestaurant) error
	Delete(ctx context.Context, restaurantID string) error
}

// PrimaryWriter upserts primary-store documents. *database.DB implements it.
type PrimaryWriter interface {
	UpsertRestaurant(ctx context.Context, doc normalize.PrimaryRestaurant) error
	UpsertMenuItem(ctx context.Context, doc normalize.PrimaryMenuItem) error
	DeleteRestaurant(ctx context.Context, id string) error
}

// Pinger checks a backing store's connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// BreakerStater reports a circuit breaker state name.
type BreakerStater interface {
	State() string
}

// CatalogReporter reports the local catalog's size and cache hit rate.
// *localstore.Catalog implements it.
type CatalogReporter interface {
	Len() int
	HitRate() float64
}

// RunningChecker reports whether the event router is consuming.
type RunningChecker interface {
	IsRunning() bool
}

// Deps are the handler's collaborators. Only Searcher is required; a nil
// writer disables its routes with 503, and nil health probes are reported
// as not configured.
type Deps struct {
	Searcher Searcher
	Local    LocalWriter
	Primary  PrimaryWriter

	Database Pinger
	Breaker  BreakerStater
	Catalog  CatalogReporter
	Events   RunningChecker

	// DefaultMode is reported by /health.
	DefaultMode models.SourceMode

	// Now is the clock used for at=now. Defaults to time.Now.
	Now func() time.Time
}

// Handler serves the REST API.
//
// Methods are split across files:
//   - handlers_search.go: search and shortlist
//   - handlers_local.go: local store writes
//   - handlers_primary.go: primary store upserts
//   - handlers_health.go: health and probes
type Handler struct {
	deps      Deps
	logger    zerolog.Logger
	startTime time.Time
}

// NewHandler creates the API handler.
//
//nolint:gocritic // hugeParam: deps is copied once at construction
func NewHandler(deps Deps, logger zerolog.Logger) (*Handler, error) {
	if deps.Searcher == nil {
		return nil, errors.New("searcher is required")
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.DefaultMode == "" {
		deps.DefaultMode = models.ModeHybrid
	}
	return &Handler{
		deps:      deps,
		logger:    logger.With().Str("component", "api").Logger(),
		startTime: time.Now(),
	}, nil
}
