// Menuwise - Restaurant Menu Dish Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuwise

package api

import (
	"net/http"
	"time"
)

// HealthStatus is the payload of GET /api/v1/health.
type HealthStatus struct {
	Status               string  `json:"status"`
	Version              string  `json:"version"`
	Environment          string  `json:"environment,omitempty"`
	ExtractionConfigured bool    `json:"extraction_configured"`
	ActiveSessions       int     `json:"active_sessions"`
	WebSocketClients     int     `json:"websocket_clients"`
	Uptime               float64 `json:"uptime_seconds"`
}

// Health reports overall service status. The service is "degraded" when no
// model API key is configured: sessions still work, but every extraction
// fails.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	if !h.config.ExtractionConfigured {
		status = "degraded"
	}

	health := HealthStatus{
		Status:               status,
		Version:              Version,
		Environment:          h.config.Environment,
		ExtractionConfigured: h.config.ExtractionConfigured,
		ActiveSessions:       h.sessions.Len(),
		Uptime:               time.Since(h.startTime).Seconds(),
	}
	if h.hub != nil {
		health.WebSocketClients = h.hub.GetClientCount()
	}

	NewResponseWriter(w, r).Success(health)
}

// HealthLive is the liveness probe: 200 while the process serves HTTP.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady is the readiness probe. It fails while the WebSocket hub is
// stopped, which only happens during shutdown.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	if h.hub != nil {
		select {
		case <-h.hub.Done():
			rw.ServiceUnavailable("Shutting down")
			return
		default:
		}
	}

	rw.Success(map[string]interface{}{
		"ready":           true,
		"active_sessions": h.sessions.Len(),
	})
}
