// Forkcast - Food Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

/*
Package normalize converts source-specific records into the canonical models.

Each backing store has one adapter:

  - PrimaryRestaurantToModel / PrimaryMenuItemToModel: camelCase documents
    from the managed store, menu items stored separately
  - LocalRestaurantToModel / LocalMenuItemToModel: flat snake_case records
    from the local store, menu items embedded

Defaults for missing optional fields:

  - price range: "$$"
  - meal period: all_day
  - dietary flags: false
  - available: true
  - availability type: regular

Records without their identity fields return a *MalformedRecordError (which
matches ErrMalformedRecord). Callers drop and count them with Convert rather
than failing the batch.
*/
package normalize
