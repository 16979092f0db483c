// Menuwise - Restaurant Menu Dish Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuwise

/*
Package middleware provides HTTP middleware for the Menuwise API.

All middleware uses the http.HandlerFunc signature; the api package adapts
them to chi with a small wrapper.

Components:

  - RequestID: reuses or generates X-Request-ID and stores it in the
    logging context
  - AccessLog: one structured line per request, warn level above a
    latency threshold
  - PrometheusMetrics: request count, latency and in-flight gauge labelled
    by chi route pattern
  - Compression: gzip for JSON and text responses of at least 1KB

Typical order inside the /api/v1 route group:

	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chiMiddleware(middleware.AccessLog(time.Second)))
	r.Use(chiMiddleware(middleware.PrometheusMetrics))
	r.Use(chiMiddleware(middleware.Compression))

PrometheusMetrics and AccessLog wrap the response writer with chi's
WrapResponseWriter, which keeps http.Hijacker available for the WebSocket
upgrade. Compression skips upgrade requests entirely.
*/
package middleware
