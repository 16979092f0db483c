// Menuwise - Restaurant Menu Dish Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuwise

/*
Package metrics provides Prometheus metrics collection and export.

All collectors are registered on the default registry through promauto at
package init, so importing the package is enough to expose them on /metrics.

# Available Metrics

Extraction:
  - menuwise_extraction_requests_total (kind, outcome)
  - menuwise_extraction_duration_seconds (kind)
  - menuwise_extraction_items
  - menuwise_extraction_rate_limited_total
  - circuit_breaker_* (name)

Session:
  - menuwise_session_transitions_total (event, from, to)
  - menuwise_session_rejected_events_total (event, step)
  - menuwise_session_stale_extractions_total
  - menuwise_session_extractions_in_flight

Recommendation:
  - menuwise_recommend_requests_total (outcome)
  - menuwise_recommend_duration_seconds
  - menuwise_recommend_items

HTTP:
  - api_requests_total, api_request_duration_seconds, api_active_requests
  - websocket_connections_active, websocket_messages_sent_total

# Usage

	start := time.Now()
	records, err := extractor.Extract(ctx, req)
	metrics.RecordExtraction("image", time.Since(start), len(records), err)
*/
package metrics
