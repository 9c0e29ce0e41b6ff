// Forkcast - Food Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/forkcast/internal/logging"
	"github.com/tomtom215/forkcast/internal/models"
	"github.com/tomtom215/forkcast/internal/ranking"
	"github.com/tomtom215/forkcast/internal/sources"
	"github.com/tomtom215/forkcast/internal/validation"
)

// ShortlistResponse is the /shortlist payload: the aggregated view without
// the flat dish list.
type ShortlistResponse struct {
	Shortlist []models.ShortlistEntry `json:"shortlist"`
	Sources   models.SourceReport     `json:"sources"`
	Metadata  models.SearchMetadata   `json:"metadata"`
}

// Search handles GET /api/v1/search.
//
// A degraded response (one source failed) is still 200; sources.degraded
// tells the client. 503 means every selected source failed.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	resp, ok := h.runSearch(rw, r)
	if !ok {
		return
	}
	rw.Success(resp)
}

// Shortlist handles GET /api/v1/shortlist.
func (h *Handler) Shortlist(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	resp, ok := h.runSearch(rw, r)
	if !ok {
		return
	}
	rw.Success(ShortlistResponse{
		Shortlist: resp.Shortlist,
		Sources:   resp.Sources,
		Metadata:  resp.Metadata,
	})
}

func (h *Handler) runSearch(rw *ResponseWriter, r *http.Request) (*models.SearchResponse, bool) {
	q, err := parseSearchQuery(r.URL.Query(), h.deps.Now())
	if err != nil {
		writeValidationError(rw, err)
		return nil, false
	}

	resp, err := h.deps.Searcher.Search(r.Context(), q)
	if err != nil {
		h.writeSearchError(rw, r, err)
		return nil, false
	}
	return resp, true
}

func (h *Handler) writeSearchError(rw *ResponseWriter, r *http.Request, err error) {
	logger := logging.Ctx(r.Context())
	switch {
	case errors.Is(err, ranking.ErrInvalidQuery):
		writeValidationError(rw, err)
	case errors.Is(err, sources.ErrSourceUnavailable),
		errors.Is(err, context.DeadlineExceeded):
		logger.Warn().Err(err).Msg("Search failed: no source available")
		rw.ServiceUnavailable("No restaurant source is available")
	case errors.Is(err, context.Canceled):
		logger.Debug().Err(err).Msg("Search canceled by client")
		rw.ServiceUnavailable("Request canceled")
	default:
		logger.Error().Err(err).Msg("Search failed")
		rw.InternalError("Search failed")
	}
}

// writeValidationError renders a RequestValidationError anywhere in err's
// chain as 400 VALIDATION_ERROR.
func writeValidationError(rw *ResponseWriter, err error) {
	var verr *validation.RequestValidationError
	if errors.As(err, &verr) {
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}
	rw.ValidationError(err.Error(), nil)
}
