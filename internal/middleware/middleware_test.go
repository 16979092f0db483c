// Menuwise - Restaurant Menu Dish Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuwise

package middleware

import (
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/menuwise/internal/logging"
	"github.com/tomtom215/menuwise/internal/metrics"
)

func adapt(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		incoming string
		reuse    bool
	}{
		{"generated when absent", "", false},
		{"upstream id reused", "edge-7f3a.42", true},
		{"oversized id replaced", strings.Repeat("a", 65), false},
		{"unprintable id replaced", "abc\ndef", false},
		{"spaces replaced", "abc def", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var seen string
			handler := RequestID(func(w http.ResponseWriter, r *http.Request) {
				seen = GetRequestID(r.Context())
			})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/questions", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}
			rec := httptest.NewRecorder()
			handler(rec, req)

			header := rec.Header().Get(RequestIDHeader)
			if header == "" || header != seen {
				t.Fatalf("header %q, context %q: want equal and non-empty", header, seen)
			}
			if tt.reuse && header != tt.incoming {
				t.Errorf("request id = %q, want upstream %q", header, tt.incoming)
			}
			if !tt.reuse && header == tt.incoming {
				t.Errorf("request id %q should have been replaced", header)
			}
		})
	}
}

func TestPrometheusMetrics_UsesRoutePattern(t *testing.T) {
	t.Parallel()

	r := chi.NewRouter()
	r.Use(adapt(PrometheusMetrics))
	r.Get("/test/prom/sessions/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
	})

	counter := metrics.APIRequestsTotal.WithLabelValues(http.MethodGet, "/test/prom/sessions/{id}", "409")
	before := testutil.ToFloat64(counter)

	for _, id := range []string{"a", "b", "c"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/test/prom/sessions/"+id, nil))
		if rec.Code != http.StatusConflict {
			t.Fatalf("status = %d, want 409", rec.Code)
		}
	}

	if got := testutil.ToFloat64(counter) - before; got != 3 {
		t.Errorf("counter delta = %v, want 3 (one series for all ids)", got)
	}
}

func TestPrometheusMetrics_ImplicitOK(t *testing.T) {
	t.Parallel()

	r := chi.NewRouter()
	r.Use(adapt(PrometheusMetrics))
	r.Get("/test/prom/implicit", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	counter := metrics.APIRequestsTotal.WithLabelValues(http.MethodGet, "/test/prom/implicit", "200")
	before := testutil.ToFloat64(counter)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/test/prom/implicit", nil))

	if got := testutil.ToFloat64(counter) - before; got != 1 {
		t.Errorf("counter delta = %v, want 1", got)
	}
}

func TestRoutePattern_NoRouter(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/anything", nil)
	if got := routePattern(req); got != unmatchedRoute {
		t.Errorf("routePattern() = %q, want %q", got, unmatchedRoute)
	}
}

func TestCompression(t *testing.T) {
	t.Parallel()

	large := `{"items":"` + strings.Repeat("tiramisu ", 300) + `"}`

	tests := []struct {
		name        string
		accept      string
		contentType string
		body        string
		status      int
		wantGzip    bool
	}{
		{"large json gzipped", "gzip, deflate", "application/json", large, http.StatusOK, true},
		{"small json plain", "gzip", "application/json", `{"ok":true}`, http.StatusOK, false},
		{"client without gzip", "", "application/json", large, http.StatusOK, false},
		{"binary not compressed", "gzip", "image/png", large, http.StatusOK, false},
		{"status preserved", "gzip", "application/json", large, http.StatusConflict, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			handler := Compression(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", tt.contentType)
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions/x/results", nil)
			if tt.accept != "" {
				req.Header.Set("Accept-Encoding", tt.accept)
			}
			rec := httptest.NewRecorder()
			handler(rec, req)

			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}

			gzipped := rec.Header().Get("Content-Encoding") == "gzip"
			if gzipped != tt.wantGzip {
				t.Fatalf("gzipped = %v, want %v", gzipped, tt.wantGzip)
			}

			body := rec.Body.Bytes()
			if gzipped {
				zr, err := gzip.NewReader(bytes.NewReader(body))
				if err != nil {
					t.Fatalf("gzip.NewReader: %v", err)
				}
				body, err = io.ReadAll(zr)
				if err != nil {
					t.Fatalf("read gzip body: %v", err)
				}
			}
			if string(body) != tt.body {
				t.Errorf("body mismatch: got %d bytes, want %d", len(body), len(tt.body))
			}
		})
	}
}

func TestCompression_NoBody(t *testing.T) {
	t.Parallel()

	handler := Compression(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/sessions/x", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
	if rec.Body.Len() != 0 || rec.Header().Get("Content-Encoding") != "" {
		t.Errorf("204 response must be empty and unencoded, got %d bytes", rec.Body.Len())
	}
}

func TestCompression_SkipsWebSocket(t *testing.T) {
	t.Parallel()

	var passedThrough bool
	handler := Compression(func(w http.ResponseWriter, _ *http.Request) {
		_, wrapped := w.(*gzipResponseWriter)
		passedThrough = !wrapped
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions/x/ws", nil)
	req.Header.Set("Upgrade", "websocket")
	req.Header.Set("Accept-Encoding", "gzip")
	handler(httptest.NewRecorder(), req)

	if !passedThrough {
		t.Error("WebSocket upgrade should receive the original writer")
	}
}

func TestAccessLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		status    int
		wantLevel string
	}{
		{"server error logged at error", http.StatusBadGateway, `"level":"error"`},
		{"fast success logged at debug", http.StatusOK, `"level":"debug"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			handler := AccessLog(0)(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			})

			ctx := logging.ContextWithLogger(context.Background(), logging.NewTestLogger(&buf).Level(-1))
			ctx = logging.ContextWithRequestID(ctx, "req-access")
			req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/x/input", nil).WithContext(ctx)
			handler(httptest.NewRecorder(), req)

			out := buf.String()
			if tt.status >= http.StatusInternalServerError && !strings.Contains(out, tt.wantLevel) {
				t.Errorf("log line %q missing %s", out, tt.wantLevel)
			}
			if out != "" && !strings.Contains(out, `"request_id":"req-access"`) {
				t.Errorf("request id missing from %q", out)
			}
		})
	}
}
