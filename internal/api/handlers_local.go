// Forkcast - Food Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/forkcast/internal/eventprocessor"
	"github.com/tomtom215/forkcast/internal/localstore"
	"github.com/tomtom215/forkcast/internal/logging"
	"github.com/tomtom215/forkcast/internal/normalize"
)

// LocalWriteResponse acknowledges a local store write. The catalog picks the
// change up when the change event is handled, so a search issued right after
// the write may not see it yet.
type LocalWriteResponse struct {
	RestaurantID string `json:"restaurant_id"`
	Operation    string `json:"operation"`
}

// UpsertLocalRestaurant handles PUT /api/v1/local/restaurants/{id}.
// The body is a local-shape record; its restaurant_id may be omitted but
// must match the path when present.
func (h *Handler) UpsertLocalRestaurant(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.deps.Local == nil {
		rw.ServiceUnavailable("Local store is not configured")
		return
	}

	id := pathID(r)
	var rec normalize.LocalRestaurant
	if err := decodeJSONBody(w, r, &rec); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if rec.RestaurantID == "" {
		rec.RestaurantID = id
	}
	if rec.RestaurantID != id {
		rw.BadRequest("restaurant_id in body does not match path")
		return
	}

	if err := h.deps.Local.Upsert(r.Context(), &rec); err != nil {
		h.writeLocalError(rw, r, id, err)
		return
	}

	logging.Ctx(r.Context()).Info().
		Str("restaurant_id", sanitizeLogValue(id)).
		Int("menu_items", len(rec.Menu)).
		Msg("Local restaurant upserted")
	rw.Status(http.StatusAccepted, LocalWriteResponse{RestaurantID: id, Operation: eventprocessor.OpUpsert})
}

// DeleteLocalRestaurant handles DELETE /api/v1/local/restaurants/{id}.
func (h *Handler) DeleteLocalRestaurant(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.deps.Local == nil {
		rw.ServiceUnavailable("Local store is not configured")
		return
	}

	id := pathID(r)
	if err := h.deps.Local.Delete(r.Context(), id); err != nil {
		h.writeLocalError(rw, r, id, err)
		return
	}

	logging.Ctx(r.Context()).Info().
		Str("restaurant_id", sanitizeLogValue(id)).
		Msg("Local restaurant deleted")
	rw.Status(http.StatusAccepted, LocalWriteResponse{RestaurantID: id, Operation: eventprocessor.OpDelete})
}

func (h *Handler) writeLocalError(rw *ResponseWriter, r *http.Request, id string, err error) {
	switch {
	case errors.Is(err, localstore.ErrInvalidRecord):
		rw.BadRequest(err.Error())
	case errors.Is(err, localstore.ErrNotFound):
		rw.NotFound("Local restaurant not found")
	case errors.Is(err, eventprocessor.ErrPublishFailed):
		// The record is stored; only the announcement failed.
		logging.Ctx(r.Context()).Error().Err(err).
			Str("restaurant_id", sanitizeLogValue(id)).
			Msg("Local change event not published")
		rw.Error(http.StatusInternalServerError, ErrCodeEventPublish,
			"Record stored but change event was not published")
	default:
		logging.Ctx(r.Context()).Error().Err(err).
			Str("restaurant_id", sanitizeLogValue(id)).
			Msg("Local store write failed")
		rw.InternalError("Local store write failed")
	}
}
