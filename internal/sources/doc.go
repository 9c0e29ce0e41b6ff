// Forkcast - Food Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

/*
Package sources fetches restaurant records from the two backing stores and
merges them into one per-request working set.

# Providers

Provider is the narrow read interface (ListRestaurants, ListMenuItems). Each
store gets one adapter that owns its normalization:

  - PrimaryProvider wraps a PrimaryStore (DuckDB document tables)
  - LocalProvider wraps a LocalStore (badger-backed catalog)
  - BreakerProvider adds a gobreaker circuit breaker and an x/time/rate
    token bucket in front of any Provider

# Merging

Merger.Fetch issues the selected fetches concurrently, each under its own
timeout, and waits for both before merging. Dedup uses MergeKey; on a
collision the primary record is kept whole and the local record discarded.

# Degradation

A failed or timed-out source is wrapped in ErrSourceUnavailable, reported in
models.SourceReport and flagged Degraded. Fetch only returns an error when
every selected source failed.
*/
package sources
