// Forkcast - Food Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

/*
Package models defines the canonical data structures shared by every Forkcast
component.

Both backing stores deliver records in their own layout. The normalize package
converts them into the types defined here, and nothing downstream of that
boundary looks at source-specific fields.

Key Components:

  - Restaurant: merged, read-only restaurant view tagged with its DataSource
  - MenuItem: a dish with meal period, dietary flags and rarity tags
  - SearchQuery: location, mood text, dietary requirements, time context
  - ScoredResult: a matched dish with relevance and hidden-gem scores
  - ShortlistEntry: per-restaurant aggregation of ScoredResults
  - SearchResponse: items, shortlist and the SourceReport for one request

Thread Safety:

All types are plain values. Instances are built per request and must be
treated as immutable once returned from the engine.
*/
package models
