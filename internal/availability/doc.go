// Forkcast - Food Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

/*
Package availability decides whether a restaurant is open at a point in time.

A restaurant's weekly table holds one entry per weekday. CheckOpen compares
whole minutes since midnight against today's entry only and reports one of
open, closing_soon (open with at most 60 minutes left), closed, or unknown
when no table exists.

Known Limitation:

Opening hours that run past midnight are not wrapped into the next day. A bar
closing at 02:00 has to publish "02:00" as the close time of the same day, and
an entry whose close time is before its open time never reports open.
*/
package availability
