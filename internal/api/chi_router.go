// Menuwise - Restaurant Menu Dish Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuwise

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/menuwise/internal/middleware"
)

// Router wires handlers and middleware into a chi mux.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router. A nil chiMiddleware uses the defaults.
func NewRouter(handler *Handler, chiMw *ChiMiddleware) *Router {
	if chiMw == nil {
		chiMw = NewChiMiddleware(DefaultChiMiddlewareConfig())
	}
	return &Router{handler: handler, chiMiddleware: chiMw}
}

// chiMiddleware adapts http.HandlerFunc middleware to Chi's func(http.Handler) http.Handler.
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // global so OPTIONS preflight is answered everywhere

	// ========================
	// Health and Metrics
	// ========================
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
		r.Get("/", router.handler.Health)
	})
	r.Handle("/metrics", promhttp.Handler())

	// ========================
	// Diner Flow
	// ========================
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(chiMiddleware(middleware.AccessLog(middleware.DefaultSlowRequestThreshold)))
		r.Use(chiMiddleware(middleware.PrometheusMetrics))
		r.Use(chiMiddleware(middleware.Compression))

		r.Get("/questions", router.handler.Questions)
		r.With(router.chiMiddleware.RateLimitSessionCreate()).Post("/sessions", router.handler.CreateSession)

		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Use(router.handler.sessionContext)

			r.Get("/", router.handler.GetSession)
			r.Delete("/", router.handler.DeleteSession)
			r.Post("/start", router.handler.Start)
			r.Post("/cancel", router.handler.Cancel)
			r.Post("/restart", router.handler.Restart)
			r.With(router.chiMiddleware.RateLimitExtraction()).Post("/input", router.handler.SubmitInput)
			r.Post("/questionnaire", router.handler.CompleteQuestionnaire)
			r.Get("/preview", router.handler.GetPreview)
			r.With(router.chiMiddleware.RateLimitExtraction()).Post("/preview/retry", router.handler.RetryMenu)
			r.Post("/preview/confirm", router.handler.ConfirmPreview)
			r.Get("/results", router.handler.GetResults)
			r.With(router.chiMiddleware.RateLimitWebSocket()).Get("/ws", router.handler.WebSocket)
		})
	})

	return r
}
