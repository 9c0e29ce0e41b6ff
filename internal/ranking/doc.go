// Forkcast - Food Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

/*
Package ranking turns a merged working set into ranked search results.

The pipeline for one query:

 1. Validate the query (struct rules plus configured limits). Failures wrap
    ErrInvalidQuery and are returned before any source is read.
 2. Fetch the working set through a Fetcher (normally *sources.Merger).
 3. Filter restaurants by location and open status, then items by
    availability, meal period and dietary flags (every flag must hold).
 4. Score each item for relevance to the query and for hidden-gem rarity.
 5. Sort the flat list by the requested mode and build the shortlist.

Relevance starts from a uniform random term in [0, 5) that breaks ties
between otherwise equal dishes. It is seeded (a zero seed means 42) and can
be disabled with Config.RelevanceNoise, which makes scores reproducible.

Hidden-gem scores do not depend on the query and are clamped to [0, 100];
restaurants tiered "legendary" never score below 90.

Shortlist entries are ordered by experience score, a 60/40 blend of average
relevance and average gem score, using a stable sort so equal scores keep
the order in which the restaurants first appeared in the sorted list.
*/
package ranking
