// Menuwise - Restaurant Menu Dish Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuwise

/*
Command server runs the Menuwise HTTP API.

A diner photographs or pastes a restaurant menu, answers a short
questionnaire, and gets back a handful of dishes picked for them. Menu
extraction is delegated to a Gemini model; scoring and curation are local
and deterministic.

Startup order:

 1. Configuration (Koanf: defaults, optional YAML file, environment)
 2. Logging (zerolog, JSON by default)
 3. Extraction stack: Gemini client, page resolver, rate limiter and
    circuit breaker, result cache
 4. Recommendation engine with the course curator
 5. Session manager, WebSocket hub, HTTP router
 6. Suture supervisor tree, which runs until SIGINT or SIGTERM

See package config for the environment variables.
*/
package main
