// Menuwise - Restaurant Menu Dish Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuwise

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/menuwise/internal/extract"
	"github.com/tomtom215/menuwise/internal/logging"
	"github.com/tomtom215/menuwise/internal/preferences"
	"github.com/tomtom215/menuwise/internal/recommend"
	"github.com/tomtom215/menuwise/internal/session"
)

var (
	// ErrUnsupportedMediaType is returned for input bodies that are neither
	// JSON nor multipart form data.
	ErrUnsupportedMediaType = errors.New("unsupported content type")

	// ErrMalformedBody is returned for bodies that cannot be decoded.
	ErrMalformedBody = errors.New("malformed request body")
)

// writeSessionError maps domain errors onto HTTP responses. Anything
// unrecognised is logged and reported as a 500 without leaking detail.
func writeSessionError(w http.ResponseWriter, r *http.Request, err error) {
	rw := NewResponseWriter(w, r)

	var failed *session.ExtractionFailedError
	var tooLarge *http.MaxBytesError

	switch {
	case errors.As(err, &failed):
		rw.ErrorWithDetails(http.StatusConflict, ErrCodeExtractionFailed, failed.Message,
			map[string]string{"step": string(session.StepInput)})

	case errors.Is(err, session.ErrNotFound), errors.Is(err, session.ErrClosed):
		rw.NotFound("Session not found or expired")

	case errors.Is(err, session.ErrInvalidTransition):
		rw.Conflict(ErrCodeInvalidTransition, err.Error())

	case errors.Is(err, session.ErrTooManySessions):
		rw.ServiceUnavailable("Too many active sessions, try again shortly")

	case errors.As(err, &tooLarge):
		rw.Error(http.StatusRequestEntityTooLarge, ErrCodePayloadTooLarge, "Upload exceeds the size limit")

	case errors.Is(err, ErrUnsupportedMediaType):
		rw.Error(http.StatusUnsupportedMediaType, ErrCodeBadRequest, err.Error())

	case errors.Is(err, ErrMalformedBody),
		errors.Is(err, extract.ErrInvalidRequest):
		rw.BadRequest(err.Error())

	case errors.Is(err, preferences.ErrInvalid),
		errors.Is(err, preferences.ErrInvalidAnswer),
		errors.Is(err, preferences.ErrUnknownQuestion),
		errors.Is(err, preferences.ErrIncomplete),
		errors.Is(err, recommend.ErrInvalidPreferences),
		errors.Is(err, recommend.ErrTooManyItems):
		rw.ValidationError(err.Error(), nil)

	case errors.Is(err, context.DeadlineExceeded):
		rw.Error(http.StatusGatewayTimeout, ErrCodeTimeout, "Request timed out")

	case errors.Is(err, context.Canceled):
		// Client went away; nothing useful to send.
		logging.Ctx(r.Context()).Debug().Err(err).Msg("request canceled")

	default:
		logging.CtxErr(r.Context(), err).Msg("Unhandled API error")
		rw.InternalError("Internal server error")
	}
}
