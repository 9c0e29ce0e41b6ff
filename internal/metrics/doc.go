// Forkcast - Food Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

/*
Package metrics provides Prometheus metrics collection and export.

Metrics are registered on the default registry through promauto and exposed
at /metrics by the API router:

	curl http://localhost:8480/metrics

# Available Metrics

Search:
  - forkcast_search_requests_total{outcome}
  - forkcast_search_duration_seconds
  - forkcast_search_candidates

Sources:
  - forkcast_source_fetch_duration_seconds{source,outcome}
  - forkcast_source_records_total{source}
  - forkcast_malformed_records_total{source,kind}
  - forkcast_degraded_responses_total{failed_source}
  - forkcast_merge_duplicates_total

Resilience and caching:
  - forkcast_circuit_breaker_state{name}
  - forkcast_circuit_breaker_requests_total{name,result}
  - forkcast_local_cache_entries
  - forkcast_local_cache_refresh_total{reason}

The Record* helpers keep label sets consistent across call sites.
*/
package metrics
