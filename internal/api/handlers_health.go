// Forkcast - Food Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/forkcast/internal/models"
)

// healthPingTimeout bounds the primary store ping.
const healthPingTimeout = 2 * time.Second

// Health status values.
const (
	StatusHealthy  = "healthy"
	StatusDegraded = "degraded"
)

// HealthStatus is the /health payload.
type HealthStatus struct {
	Status      string            `json:"status"`
	DefaultMode models.SourceMode `json:"default_mode"`
	Primary     PrimaryHealth     `json:"primary"`
	Local       LocalHealth       `json:"local"`
	Events      EventsHealth      `json:"events"`
	Uptime      float64           `json:"uptime_seconds"`
}

// PrimaryHealth describes the managed document store.
type PrimaryHealth struct {
	Configured      bool   `json:"configured"`
	Connected       bool   `json:"connected"`
	BreakerState    string `json:"breaker_state,omitempty"`
	RestaurantCount int64  `json:"restaurant_count,omitempty"`
}

// RestaurantCounter is optionally implemented by the Database probe.
type RestaurantCounter interface {
	CountRestaurants(ctx context.Context) (int64, error)
}

// LocalHealth describes the local cache source.
type LocalHealth struct {
	Configured   bool    `json:"configured"`
	CatalogSize  int     `json:"catalog_size"`
	CacheHitRate float64 `json:"cache_hit_rate"`
}

// EventsHealth describes the change event router.
type EventsHealth struct {
	Configured bool `json:"configured"`
	Running    bool `json:"running"`
}

// Health handles GET /api/v1/health. It always answers 200; status is
// "degraded" when a configured dependency is down or the primary breaker is
// not closed.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(h.healthStatus(r.Context()))
}

// HealthLive handles liveness probes.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles readiness probes: 503 until at least one source can
// serve searches and, when configured, the event router is consuming.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	status := h.healthStatus(r.Context())

	sourceUp := (status.Primary.Configured && status.Primary.Connected) || status.Local.Configured
	eventsUp := !status.Events.Configured || status.Events.Running
	if !sourceUp || !eventsUp {
		rw.ErrorWithDetails(http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Service is not ready", status)
		return
	}
	rw.Success(map[string]interface{}{"ready": true})
}

func (h *Handler) healthStatus(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:      StatusHealthy,
		DefaultMode: h.deps.DefaultMode,
		Uptime:      time.Since(h.startTime).Seconds(),
	}

	if h.deps.Database != nil {
		status.Primary.Configured = true
		pingCtx, cancel := context.WithTimeout(ctx, healthPingTimeout)
		status.Primary.Connected = h.deps.Database.Ping(pingCtx) == nil
		if counter, ok := h.deps.Database.(RestaurantCounter); ok && status.Primary.Connected {
			if n, err := counter.CountRestaurants(pingCtx); err == nil {
				status.Primary.RestaurantCount = n
			} else {
				h.logger.Debug().Err(err).Msg("Primary restaurant count failed")
			}
		}
		cancel()
		if !status.Primary.Connected {
			status.Status = StatusDegraded
		}
	}
	if h.deps.Breaker != nil {
		status.Primary.BreakerState = h.deps.Breaker.State()
		if status.Primary.BreakerState != "closed" {
			status.Status = StatusDegraded
		}
	}
	if h.deps.Catalog != nil {
		status.Local.Configured = true
		status.Local.CatalogSize = h.deps.Catalog.Len()
		status.Local.CacheHitRate = h.deps.Catalog.HitRate()
	}
	if h.deps.Events != nil {
		status.Events.Configured = true
		status.Events.Running = h.deps.Events.IsRunning()
		if !status.Events.Running {
			status.Status = StatusDegraded
		}
	}
	return status
}
