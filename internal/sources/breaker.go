// Forkcast - Food Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package sources

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/forkcast/internal/metrics"
	"github.com/tomtom215/forkcast/internal/models"
	"github.com/tomtom215/forkcast/internal/normalize"
)

// BreakerConfig tunes the circuit breaker and rate limiter around a provider.
type BreakerConfig struct {
	// MaxRequests allowed through while half-open. Default: 3.
	MaxRequests uint32
	// Interval after which closed-state counts reset. Default: 1m.
	Interval time.Duration
	// Timeout spent open before probing again. Default: 30s.
	Timeout time.Duration
	// MinRequests before the failure ratio is considered. Default: 10.
	MinRequests uint32
	// FailureRatio that opens the breaker. Default: 0.6.
	FailureRatio float64
	// RequestsPerSecond throttles calls to the wrapped provider. Zero disables.
	RequestsPerSecond float64
	// Burst is the limiter bucket size. Default: 10.
	Burst int
}

// DefaultBreakerConfig returns production defaults.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxRequests:       3,
		Interval:          time.Minute,
		Timeout:           30 * time.Second,
		MinRequests:       10,
		FailureRatio:      0.6,
		RequestsPerSecond: 0,
		Burst:             10,
	}
}

type restaurantsResult struct {
	restaurants []models.Restaurant
	report      normalize.Report
}

type menuResult struct {
	items  []models.MenuItem
	report normalize.Report
}

// BreakerProvider wraps a Provider with a circuit breaker and an optional
// token bucket. An open breaker fails fast with ErrSourceUnavailable so the
// merger can degrade without waiting on a dead store.
type BreakerProvider struct {
	next    Provider
	cb      *gobreaker.CircuitBreaker[any]
	limiter *rate.Limiter
	name    string
	logger  zerolog.Logger
}

// NewBreakerProvider wraps next.
//
//nolint:gocritic // hugeParam: config is read once at construction
func NewBreakerProvider(next Provider, cfg BreakerConfig, logger zerolog.Logger) *BreakerProvider {
	name := string(next.Source()) + "-source"
	log := logger.With().Str("component", "circuit-breaker").Str("breaker", name).Logger()

	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	minRequests := cfg.MinRequests
	failureRatio := cfg.FailureRatio
	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < minRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			if ratio >= failureRatio {
				log.Warn().Uint32("failures", counts.TotalFailures).Float64("failure_rate", ratio*100).Msg("Opening circuit")
				return true
			}
			return false
		},
		// A caller hanging up says nothing about the store's health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Info().Str("from", stateToString(from)).Str("to", stateToString(to)).Msg("Circuit breaker state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, stateToString(from), stateToString(to)).Inc()
		},
	})

	bp := &BreakerProvider{next: next, cb: cb, name: name, logger: log}
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		bp.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}
	return bp
}

// Source implements Provider.
func (b *BreakerProvider) Source() models.DataSource { return b.next.Source() }

// State returns the breaker state as a string for health reporting.
func (b *BreakerProvider) State() string { return stateToString(b.cb.State()) }

// ListRestaurants implements Provider.
func (b *BreakerProvider) ListRestaurants(ctx context.Context, filter ListFilter) ([]models.Restaurant, normalize.Report, error) {
	res, err := castResult[restaurantsResult](b.execute(ctx, func() (any, error) {
		rs, report, err := b.next.ListRestaurants(ctx, filter)
		if err != nil {
			return nil, err
		}
		return &restaurantsResult{restaurants: rs, report: report}, nil
	}))
	if err != nil {
		return nil, normalize.Report{}, err
	}
	return res.restaurants, res.report, nil
}

// ListMenuItems implements Provider.
func (b *BreakerProvider) ListMenuItems(ctx context.Context, restaurantID string) ([]models.MenuItem, normalize.Report, error) {
	res, err := castResult[menuResult](b.execute(ctx, func() (any, error) {
		items, report, err := b.next.ListMenuItems(ctx, restaurantID)
		if err != nil {
			return nil, err
		}
		return &menuResult{items: items, report: report}, nil
	}))
	if err != nil {
		return nil, normalize.Report{}, err
	}
	return res.items, res.report, nil
}

func (b *BreakerProvider) execute(ctx context.Context, fn func() (any, error)) (any, error) {
	if b.limiter != nil {
		if err := b.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %s rate limit wait: %w", ErrSourceUnavailable, b.name, err)
		}
	}

	result, err := b.cb.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
			b.logger.Debug().Err(err).Msg("Request rejected by circuit breaker")
			return nil, fmt.Errorf("%w: %s: %w", ErrSourceUnavailable, b.name, err)
		}
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	return result, nil
}

func castResult[T any](result any, err error) (*T, error) {
	if err != nil {
		return nil, err
	}
	typed, ok := result.(*T)
	if !ok {
		return nil, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
