// Menuwise - Restaurant Menu Dish Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuwise

package middleware

import (
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/tomtom215/menuwise/internal/logging"
)

// DefaultSlowRequestThreshold marks requests worth a warning. Input
// submission returns before extraction finishes, so only a stalled
// handler crosses it.
const DefaultSlowRequestThreshold = time.Second

// AccessLog writes one structured line per request through the request's
// context logger, so request_id and session_id are attached. Requests
// slower than threshold are logged at warn level; a threshold of zero
// uses DefaultSlowRequestThreshold.
func AccessLog(threshold time.Duration) func(http.HandlerFunc) http.HandlerFunc {
	if threshold <= 0 {
		threshold = DefaultSlowRequestThreshold
	}

	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next(ww, r)

			duration := time.Since(start)
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			logger := logging.Ctx(r.Context())
			var event *zerolog.Event
			switch {
			case status >= http.StatusInternalServerError:
				event = logger.Error()
			case duration > threshold:
				event = logger.Warn().Int64("threshold_ms", threshold.Milliseconds())
			default:
				event = logger.Debug()
			}

			event.
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", status).
				Int("bytes", ww.BytesWritten()).
				Int64("duration_ms", duration.Milliseconds()).
				Msg("HTTP request")
		}
	}
}
