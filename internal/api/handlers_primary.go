// Forkcast - Food Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/forkcast/internal/database"
	"github.com/tomtom215/forkcast/internal/logging"
)

// PrimaryWriteResponse acknowledges a primary store upsert.
type PrimaryWriteResponse struct {
	RestaurantID string `json:"restaurant_id"`
	MenuItems    int    `json:"menu_items"`
}

// UpsertPrimaryRestaurant handles PUT /api/v1/primary/restaurants/{id}.
//
// The restaurant document is written first, then each menu item. The writes
// are not one transaction: a failing item leaves the restaurant and the
// items before it in place, and the response names the failing item.
// Primary reads are uncached, so the next search sees the change.
func (h *Handler) UpsertPrimaryRestaurant(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.deps.Primary == nil {
		rw.ServiceUnavailable("Primary store is not configured")
		return
	}

	id := pathID(r)
	var req PrimaryRestaurantRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if req.Restaurant.ID == "" {
		req.Restaurant.ID = id
	}
	if req.Restaurant.ID != id {
		rw.BadRequest("restaurant id in body does not match path")
		return
	}
	for i := range req.Menu {
		if req.Menu[i].RestaurantID == "" {
			req.Menu[i].RestaurantID = id
		}
		if req.Menu[i].RestaurantID != id {
			rw.BadRequest("menu item " + req.Menu[i].ID + " belongs to another restaurant")
			return
		}
	}

	ctx := r.Context()
	if err := h.deps.Primary.UpsertRestaurant(ctx, req.Restaurant); err != nil {
		writePrimaryError(rw, err)
		return
	}
	for i := range req.Menu {
		if err := h.deps.Primary.UpsertMenuItem(ctx, req.Menu[i]); err != nil {
			if errors.Is(err, database.ErrInvalidDocument) {
				rw.ValidationError(err.Error(), map[string]interface{}{"menu_index": i})
				return
			}
			writePrimaryError(rw, err)
			return
		}
	}

	logging.Ctx(ctx).Info().
		Str("restaurant_id", sanitizeLogValue(id)).
		Int("menu_items", len(req.Menu)).
		Msg("Primary restaurant upserted")
	rw.Success(PrimaryWriteResponse{RestaurantID: id, MenuItems: len(req.Menu)})
}

// DeletePrimaryRestaurant handles DELETE /api/v1/primary/restaurants/{id}.
// The restaurant and its menu are removed in one transaction.
func (h *Handler) DeletePrimaryRestaurant(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.deps.Primary == nil {
		rw.ServiceUnavailable("Primary store is not configured")
		return
	}

	id := pathID(r)
	if err := h.deps.Primary.DeleteRestaurant(r.Context(), id); err != nil {
		writePrimaryError(rw, err)
		return
	}

	logging.Ctx(r.Context()).Info().
		Str("restaurant_id", sanitizeLogValue(id)).
		Msg("Primary restaurant deleted")
	rw.Success(PrimaryWriteResponse{RestaurantID: id})
}

func writePrimaryError(rw *ResponseWriter, err error) {
	switch {
	case errors.Is(err, database.ErrInvalidDocument):
		rw.ValidationError(err.Error(), nil)
	case errors.Is(err, database.ErrNotFound):
		rw.NotFound(err.Error())
	default:
		rw.DatabaseError(err)
	}
}
