// Menuwise - Restaurant Menu Dish Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuwise

/*
Package config provides centralized configuration management for Menuwise.

# Configuration Sources

Configuration is layered with Koanf v2, later sources winning:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML file: $CONFIG_PATH, ./config.yaml, ./config.yml,
    /etc/menuwise/config.yaml or /etc/menuwise/config.yml
 3. Environment variables, mapped explicitly (unmapped variables are ignored)

# Sections

  - server: listen address, timeouts, upload size, environment
  - gemini: model API key, model name, endpoint
  - extraction: overall deadline, rate limit, circuit breaker, result cache
    and restaurant page fetching limits
  - recommend: how many top picks and other options are returned
  - session: idle TTL and capacity of live sessions
  - security: HTTP rate limiting and CORS origins
  - logging: zerolog level, format and caller info

# Environment Variables

Server:
  - HTTP_HOST, HTTP_PORT (default: 8080), HTTP_TIMEOUT, HTTP_SHUTDOWN_TIMEOUT
  - MAX_UPLOAD_BYTES: request body cap (default: 15MB)
  - ENVIRONMENT: development or production

Gemini:
  - GEMINI_API_KEY: required in production
  - GEMINI_MODEL, GEMINI_BASE_URL, GEMINI_TIMEOUT, GEMINI_MAX_OUTPUT_TOKENS

Extraction:
  - EXTRACTION_TIMEOUT (default: 90s)
  - EXTRACTION_RATE_LIMIT, EXTRACTION_RATE_BURST
  - EXTRACTION_BREAKER_MAX_REQUESTS, EXTRACTION_BREAKER_INTERVAL,
    EXTRACTION_BREAKER_TIMEOUT, EXTRACTION_BREAKER_MIN_REQUESTS,
    EXTRACTION_BREAKER_FAILURE_RATIO
  - EXTRACTION_CACHE_TTL: 0 disables the result cache
  - PAGE_TIMEOUT, PAGE_MAX_BODY_BYTES, PAGE_MAX_TEXT_BYTES, PAGE_USER_AGENT

Recommendation and sessions:
  - RECOMMEND_MAX_ITEMS, RECOMMEND_TOP_PICKS, RECOMMEND_OTHER_OPTIONS
  - SESSION_IDLE_TTL, SESSION_SWEEP_INTERVAL, SESSION_MAX

Security and logging:
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT
  - CORS_ORIGINS: comma-separated
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

# Validation

Load validates the merged configuration and fails fast with a message naming
the offending environment variable. Production mode additionally requires an
API key and explicit CORS origins.
*/
package config
