// Menuwise - Restaurant Menu Dish Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuwise

package api

import (
	"time"

	"github.com/gorilla/websocket"

	"github.com/tomtom215/menuwise/internal/session"
	ws "github.com/tomtom215/menuwise/internal/websocket"
)

// Version is reported by the health endpoint. Overridden at build time.
var Version = "dev"

// DefaultMaxUploadBytes caps input bodies when no limit is configured.
const DefaultMaxUploadBytes = 15 << 20

// HandlerConfig carries the settings handlers need from the config package.
type HandlerConfig struct {
	// MaxUploadBytes caps the size of menu input bodies.
	MaxUploadBytes int64

	// AllowedOrigins is checked on WebSocket upgrades.
	AllowedOrigins []string

	// ExtractionConfigured reports whether a model API key is set; it is
	// surfaced by the health endpoint.
	ExtractionConfigured bool

	// Environment is echoed by the health endpoint.
	Environment string
}

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_session.go: session lifecycle and flow endpoints
//   - handlers_health.go: health and readiness probes
type Handler struct {
	sessions  *session.Manager
	hub       *ws.Hub
	upgrader  websocket.Upgrader
	config    HandlerConfig
	startTime time.Time
}

// NewHandler creates the API handler.
//
//	handler := api.NewHandler(sessions, hub, api.HandlerConfig{MaxUploadBytes: 15 << 20})
//	router := api.NewRouter(handler, chiMiddleware)
//	http.ListenAndServe(":8080", router.SetupChi())
func NewHandler(sessions *session.Manager, hub *ws.Hub, cfg HandlerConfig) *Handler {
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = DefaultMaxUploadBytes
	}

	upgrader := ws.NewUpgrader(cfg.AllowedOrigins)
	upgrader.HandshakeTimeout = 10 * time.Second

	return &Handler{
		sessions:  sessions,
		hub:       hub,
		upgrader:  upgrader,
		config:    cfg,
		startTime: time.Now(),
	}
}
