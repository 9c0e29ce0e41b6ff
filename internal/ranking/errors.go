// Forkcast - Food Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package ranking

import "errors"

// ErrInvalidQuery is returned before any source is read when the query is
// malformed. The wrapped *validation.RequestValidationError has the details.
var ErrInvalidQuery = errors.New("invalid query")
