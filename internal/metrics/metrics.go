// Forkcast - Food Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for:
// - search requests and their outcome
// - per-source fetch latency, record counts and malformed drops
// - circuit breaker state around the primary store
// - local catalog cache size and refreshes
// - event bus publishing
// - HTTP API latency

var (
	// Search Metrics
	SearchRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forkcast_search_requests_total",
			Help: "Total number of search requests by outcome",
		},
		[]string{"outcome"}, // "ok", "empty", "degraded", "invalid", "unavailable"
	)

	SearchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "forkcast_search_duration_seconds",
			Help:    "End-to-end search latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	SearchCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "forkcast_search_candidates",
			Help:    "Number of menu items surviving the filter stage",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
	)

	// Source Metrics
	SourceFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "forkcast_source_fetch_duration_seconds",
			Help:    "Duration of a full source fetch (restaurants and menus)",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source", "outcome"},
	)

	SourceRecords = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forkcast_source_records_total",
			Help: "Restaurants contributed to merged working sets by source",
		},
		[]string{"source"},
	)

	MalformedRecords = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forkcast_malformed_records_total",
			Help: "Records dropped during normalization",
		},
		[]string{"source", "kind"},
	)

	DegradedResponses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forkcast_degraded_responses_total",
			Help: "Searches answered with a reduced source set",
		},
		[]string{"failed_source"},
	)

	MergeDuplicates = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "forkcast_merge_duplicates_total",
			Help: "Local restaurants discarded because a primary record had the same key",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "forkcast_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forkcast_circuit_breaker_requests_total",
			Help: "Requests through the circuit breaker by result",
		},
		[]string{"name", "result"}, // "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forkcast_circuit_breaker_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	// Local Catalog Metrics
	LocalCacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "forkcast_local_cache_entries",
			Help: "Restaurants held in the local read-through cache",
		},
	)

	LocalCacheRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forkcast_local_cache_refresh_total",
			Help: "Local cache refreshes by reason",
		},
		[]string{"reason"}, // "startup", "upsert", "delete", "miss"
	)

	LocalStoreGCRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forkcast_local_store_gc_runs_total",
			Help: "BadgerDB value log GC runs by result",
		},
		[]string{"result"}, // "rewritten", "noop", "failure"
	)

	// Event Bus Metrics
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forkcast_events_published_total",
			Help: "Events published to the bus by topic",
		},
		[]string{"topic"},
	)

	EventsHandled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forkcast_events_handled_total",
			Help: "Events consumed from the bus by topic and result",
		},
		[]string{"topic", "result"},
	)

	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "forkcast_duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forkcast_duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table"},
	)

	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forkcast_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "forkcast_api_request_duration_seconds",
			Help:    "API request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)
)

// RecordSearch records the outcome and latency of one search.
func RecordSearch(outcome string, duration time.Duration, candidates int) {
	SearchRequests.WithLabelValues(outcome).Inc()
	SearchDuration.Observe(duration.Seconds())
	SearchCandidates.Observe(float64(candidates))
}

// RecordSourceFetch records a source fetch and the restaurants it yielded.
func RecordSourceFetch(source string, duration time.Duration, restaurants int, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	SourceFetchDuration.WithLabelValues(source, outcome).Observe(duration.Seconds())
	if err == nil && restaurants > 0 {
		SourceRecords.WithLabelValues(source).Add(float64(restaurants))
	}
}

// RecordMalformed counts records dropped during normalization.
func RecordMalformed(source, kind string, n int) {
	if n <= 0 {
		return
	}
	MalformedRecords.WithLabelValues(source, kind).Add(float64(n))
}

// RecordDegraded counts a response served without the named source.
func RecordDegraded(failedSource string) {
	DegradedResponses.WithLabelValues(failedSource).Inc()
}

// RecordDBQuery records a DuckDB query.
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table).Inc()
	}
}

// RecordAPIRequest records an HTTP request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordEventHandled counts a consumed event.
func RecordEventHandled(topic string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	EventsHandled.WithLabelValues(topic, result).Inc()
}
