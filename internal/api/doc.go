// Menuwise - Restaurant Menu Dish Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuwise

/*
Package api provides the HTTP API for Menuwise.

A diner session is a server-side state machine (see package session). The
API exposes its events as POST endpoints and its state as JSON snapshots,
so a thin frontend can drive the Landing, Input, Questionnaire, Preview and
Results screens without holding any logic of its own.

# Routes

Health and metrics:

	GET    /api/v1/health              overall status ("degraded" without an API key)
	GET    /api/v1/health/live         liveness probe
	GET    /api/v1/health/ready        readiness probe
	GET    /metrics                    Prometheus metrics

Diner flow:

	GET    /api/v1/questions                       quiz questions in order
	POST   /api/v1/sessions                        create a session (201)
	GET    /api/v1/sessions/{id}                   current snapshot
	DELETE /api/v1/sessions/{id}                   end the session (204)
	POST   /api/v1/sessions/{id}/start             landing -> input
	POST   /api/v1/sessions/{id}/cancel            input -> landing
	POST   /api/v1/sessions/{id}/input             submit a photo, text or URL (202)
	POST   /api/v1/sessions/{id}/questionnaire     submit all answers
	GET    /api/v1/sessions/{id}/preview           preview, ?wait=10s to long-poll
	POST   /api/v1/sessions/{id}/preview/retry     back to input
	POST   /api/v1/sessions/{id}/preview/confirm   preview -> results
	POST   /api/v1/sessions/{id}/restart           back to landing, state cleared
	GET    /api/v1/sessions/{id}/results           scored and curated dishes
	GET    /api/v1/sessions/{id}/ws                live state snapshots (WebSocket)

# Menu Input

POST .../input accepts either JSON:

	{"kind": "text", "text": "https://example.com/menu"}
	{"kind": "image", "data": "data:image/png;base64,iVBOR...", "mime_type": "image/png"}

or multipart form data with an "image" file part or a "text" field. Bodies
are capped by HandlerConfig.MaxUploadBytes (413 when exceeded).

# Responses

Every JSON response uses the APIResponse envelope:

	{"success": true, "data": {...}, "meta": {"request_id": "...", "timestamp": "..."}}
	{"success": false, "error": {"code": "INVALID_TRANSITION", "message": "..."}, "meta": {...}}

Domain errors map to status codes in writeSessionError: 404 for unknown or
expired sessions, 409 for events sent from the wrong step and for failed
extractions, 400 for invalid input or answers.

# Middleware

Global: request id, real IP, panic recovery and CORS (go-chi/cors).
Under /api/v1: per-IP rate limiting (go-chi/httprate, with tighter limits
on extraction and session creation), security headers, access logging,
Prometheus request metrics and gzip compression.
*/
package api
