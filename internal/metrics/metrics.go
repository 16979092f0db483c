// Menuwise - Restaurant Menu Dish Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuwise

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for:
// - Menu extraction calls (latency, outcomes, item counts)
// - Circuit breaker and rate limiter around the extraction provider
// - Session state machine transitions
// - Recommendation latency
// - API endpoint latency and WebSocket connections

var (
	// Extraction Metrics
	ExtractionRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "menuwise_extraction_requests_total",
			Help: "Total number of menu extraction calls",
		},
		[]string{"kind", "outcome"}, // outcome: "success", "empty", "error"
	)

	ExtractionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "menuwise_extraction_duration_seconds",
			Help:    "Duration of menu extraction calls in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 30, 60}, // LLM calls are slow
		},
		[]string{"kind"},
	)

	ExtractionItems = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "menuwise_extraction_items",
			Help:    "Number of menu items returned per successful extraction",
			Buckets: []float64{0, 1, 5, 10, 20, 40, 80, 160},
		},
	)

	ExtractionRateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "menuwise_extraction_rate_limited_total",
			Help: "Total number of extraction calls rejected by the local rate limiter",
		},
	)

	ExtractionCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "menuwise_extraction_cache_lookups_total",
			Help: "Extraction result cache lookups",
		},
		[]string{"result"}, // result: "hit", "miss"
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Session Metrics
	SessionTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "menuwise_session_transitions_total",
			Help: "Total number of session state machine transitions",
		},
		[]string{"event", "from", "to"},
	)

	SessionRejectedEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "menuwise_session_rejected_events_total",
			Help: "Total number of session events fired from a step that does not accept them",
		},
		[]string{"event", "step"},
	)

	SessionStaleExtractions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "menuwise_session_stale_extractions_total",
			Help: "Total number of extraction results discarded because a newer submission superseded them",
		},
	)

	SessionExtractionsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "menuwise_session_extractions_in_flight",
			Help: "Current number of extraction goroutines running",
		},
	)

	SessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "menuwise_sessions_active",
			Help: "Current number of live sessions",
		},
	)

	SessionsExpired = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "menuwise_sessions_expired_total",
			Help: "Total number of sessions removed after idling past their TTL",
		},
	)

	// Recommendation Metrics
	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "menuwise_recommend_duration_seconds",
			Help:    "Time to score, rank and curate a menu",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
	)

	RecommendItems = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "menuwise_recommend_items",
			Help:    "Number of menu items scored per recommendation",
			Buckets: []float64{0, 1, 5, 10, 20, 40, 80, 160},
		},
	)

	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "menuwise_recommend_requests_total",
			Help: "Total number of recommendation requests",
		},
		[]string{"outcome"}, // outcome: "success", "invalid"
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// WebSocket Metrics
	WSConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_connections_active",
			Help: "Current number of active WebSocket connections",
		},
	)

	WSMessagesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_messages_sent_total",
			Help: "Total number of WebSocket messages sent",
		},
	)
)

// RecordExtraction records one extraction call. A call that succeeds with
// zero items is counted as "empty".
func RecordExtraction(kind string, duration time.Duration, items int, err error) {
	ExtractionDuration.WithLabelValues(kind).Observe(duration.Seconds())
	switch {
	case err != nil:
		ExtractionRequests.WithLabelValues(kind, "error").Inc()
	case items == 0:
		ExtractionRequests.WithLabelValues(kind, "empty").Inc()
	default:
		ExtractionRequests.WithLabelValues(kind, "success").Inc()
		ExtractionItems.Observe(float64(items))
	}
}

// RecordSessionTransition records a state machine transition
func RecordSessionTransition(event, from, to string) {
	SessionTransitions.WithLabelValues(event, from, to).Inc()
}

// RecordSessionRejected records an event fired from the wrong step
func RecordSessionRejected(event, step string) {
	SessionRejectedEvents.WithLabelValues(event, step).Inc()
}

// RecordRecommendation records a completed recommendation
func RecordRecommendation(duration time.Duration, items int) {
	RecommendRequests.WithLabelValues("success").Inc()
	RecommendDuration.Observe(duration.Seconds())
	RecommendItems.Observe(float64(items))
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
