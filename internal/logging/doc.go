// Menuwise - Restaurant Menu Dish Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuwise

// Package logging provides zerolog-based structured logging for Menuwise.
//
// JSON output is the default; console output is available for local work.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json", Service: "menuwise"})
//
//	logging.Info().Int("port", 8080).Msg("Server starting")
//	logging.Error().Err(err).Str("source", "gemini").Msg("Extraction failed")
//
// # Context Fields
//
// The HTTP layer stores the request ID and, for session routes, the session
// ID in the request context. Ctx and CtxWith read them back so that every
// line logged while serving a request can be correlated:
//
//	ctx = logging.ContextWithSessionID(ctx, id)
//	logging.Ctx(ctx).Info().Str("step", "preview").Msg("Step changed")
//
// # Component Loggers
//
// Long-lived components take a zerolog.Logger by value and tag it:
//
//	logger := logging.WithComponent("session")
//
// # slog Bridge
//
// SlogHandler adapts zerolog to log/slog for libraries that only speak slog.
// The supervisor tree uses it through sutureslog.
//
// # Redaction
//
// SanitizeToken, SanitizeURL and SanitizeError keep the model API key and
// URL credentials out of log output.
package logging
