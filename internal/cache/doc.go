// Forkcast - Food Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

/*
Package cache provides a thread-safe, generic in-memory cache with optional TTL.

It backs the local catalog: the local store is loaded into a Cache once at
start and individual entries are replaced when a write event arrives. Search
requests only read from it.

# Overview

  - Typed values through generics, no interface{} assertions at call sites
  - Optional TTL per entry; zero means the entry lives until replaced
  - Lazy expiration on Get; Values skips expired entries
  - Replace swaps the full content atomically for reloads
  - Hit, miss and eviction counters for monitoring

# Usage Example

	c := cache.New[normalize.LocalRestaurant](0)
	c.Set("r1", record)

	if rec, ok := c.Get("r1"); ok {
	    // use rec
	}

	for _, rec := range c.Values() {
	    // ordered by key
	}

# Thread Safety

All methods are safe for concurrent use. Values returns copies of the stored
values; values holding maps or slices share that backing storage with the
cache and must be treated as read-only.
*/
package cache
