// Menuwise - Restaurant Menu Dish Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuwise

package extract

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// fakeGemini records requests and replies with a canned candidate text.
type fakeGemini struct {
	mu       sync.Mutex
	status   int
	reply    string
	raw      string
	requests []generateRequest
	paths    []string
	keys     []string
}

func (f *fakeGemini) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	var req generateRequest
	_ = json.Unmarshal(body, &req)

	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.paths = append(f.paths, r.URL.Path)
	f.keys = append(f.keys, r.Header.Get("x-goog-api-key"))
	status, reply, raw := f.status, f.reply, f.raw
	f.mu.Unlock()

	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if raw != "" {
		_, _ = io.WriteString(w, raw)
		return
	}
	resp := map[string]any{
		"candidates": []any{
			map[string]any{"content": map[string]any{"parts": []any{map[string]any{"text": reply}}}},
		},
	}
	_ = json.NewEncoder(w).Encode(resp)
}

func newTestGemini(t *testing.T, fake *fakeGemini) *GeminiClient {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)
	return NewGeminiClient(GeminiConfig{APIKey: "test-key", BaseURL: srv.URL + "/"}, zerolog.Nop())
}

const twoItems = `[
  {"name": "Pad Thai", "description": "rice noodles", "price": "$14", "tags": {"course": "main", "protein": "chicken", "cuisine": "thai", "spiciness": "medium", "dietary": []}},
  {"name": "Mango Sticky Rice", "description": "", "price": "", "tags": {"course": "dessert", "protein": "none", "spiciness": "none", "dietary": ["vegan"]}}
]`

func TestGeminiClient_ExtractImage(t *testing.T) {
	fake := &fakeGemini{reply: twoItems}
	g := newTestGemini(t, fake)

	records, err := g.Extract(context.Background(), Request{Kind: KindImage, Data: []byte("jpegbytes")})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(records) != 2 || records[0].Name != "Pad Thai" || records[1].Tags.Dietary[0] != "vegan" {
		t.Fatalf("records = %+v", records)
	}

	if fake.paths[0] != "/models/"+DefaultGeminiModel+":generateContent" {
		t.Errorf("path = %q", fake.paths[0])
	}
	if fake.keys[0] != "test-key" {
		t.Errorf("api key header = %q", fake.keys[0])
	}

	req := fake.requests[0]
	parts := req.Contents[0].Parts
	if len(parts) != 2 || parts[0].InlineData == nil {
		t.Fatalf("parts = %+v, want inline image then prompt", parts)
	}
	if parts[0].InlineData.MIMEType != DefaultImageMIMEType {
		t.Errorf("mime = %q, want default", parts[0].InlineData.MIMEType)
	}
	if parts[0].InlineData.Data != base64.StdEncoding.EncodeToString([]byte("jpegbytes")) {
		t.Error("image not base64 encoded")
	}
	if !strings.Contains(parts[1].Text, "VISIBLE in this image") {
		t.Errorf("image prompt missing: %q", parts[1].Text)
	}
	if req.GenerationConfig == nil || req.GenerationConfig.ResponseMIMEType != "application/json" {
		t.Errorf("generationConfig = %+v", req.GenerationConfig)
	}
	if req.SystemInstruction == nil || !strings.Contains(req.SystemInstruction.Parts[0].Text, "strict data extraction engine") {
		t.Error("system instruction missing")
	}
}

func TestGeminiClient_ExtractText(t *testing.T) {
	fake := &fakeGemini{reply: "[]"}
	g := newTestGemini(t, fake)

	records, err := g.Extract(context.Background(), Request{Kind: KindText, Text: "  Soup of the day $6  "})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if records == nil || len(records) != 0 {
		t.Errorf("records = %#v, want empty non-nil", records)
	}
	prompt := fake.requests[0].Contents[0].Parts[0].Text
	if !strings.Contains(prompt, "----------------\nSoup of the day $6\n----------------") {
		t.Errorf("source text not embedded: %q", prompt)
	}
}

func TestGeminiClient_Errors(t *testing.T) {
	t.Run("missing key", func(t *testing.T) {
		g := NewGeminiClient(GeminiConfig{}, zerolog.Nop())
		_, err := g.Extract(context.Background(), Request{Kind: KindText, Text: "x"})
		if !errors.Is(err, ErrMissingAPIKey) {
			t.Errorf("error = %v, want ErrMissingAPIKey", err)
		}
	})

	t.Run("invalid request", func(t *testing.T) {
		g := newTestGemini(t, &fakeGemini{})
		_, err := g.Extract(context.Background(), Request{Kind: KindText})
		if !errors.Is(err, ErrInvalidRequest) {
			t.Errorf("error = %v, want ErrInvalidRequest", err)
		}
	})

	t.Run("api error", func(t *testing.T) {
		g := newTestGemini(t, &fakeGemini{status: http.StatusServiceUnavailable, raw: `{"error":"overloaded"}`})
		_, err := g.Extract(context.Background(), Request{Kind: KindText, Text: "x"})
		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("error = %v, want *APIError", err)
		}
		if apiErr.StatusCode != http.StatusServiceUnavailable || !apiErr.Temporary() {
			t.Errorf("APIError = %+v", apiErr)
		}
	})

	t.Run("blocked prompt", func(t *testing.T) {
		g := newTestGemini(t, &fakeGemini{raw: `{"promptFeedback":{"blockReason":"SAFETY"}}`})
		_, err := g.Extract(context.Background(), Request{Kind: KindText, Text: "x"})
		if err == nil || !strings.Contains(err.Error(), "SAFETY") {
			t.Errorf("error = %v, want blocked", err)
		}
	})

	t.Run("no candidates is empty menu", func(t *testing.T) {
		g := newTestGemini(t, &fakeGemini{raw: `{"candidates":[]}`})
		records, err := g.Extract(context.Background(), Request{Kind: KindText, Text: "x"})
		if err != nil || len(records) != 0 {
			t.Errorf("Extract() = %v, %v; want empty, nil", records, err)
		}
	})

	t.Run("garbage", func(t *testing.T) {
		g := newTestGemini(t, &fakeGemini{raw: `not json`})
		_, err := g.Extract(context.Background(), Request{Kind: KindText, Text: "x"})
		if !errors.Is(err, ErrMalformedResponse) {
			t.Errorf("error = %v, want ErrMalformedResponse", err)
		}
	})
}

func TestGeminiClient_Resolve(t *testing.T) {
	fake := &fakeGemini{reply: "Menu: Burger $10, Fries $4"}
	g := newTestGemini(t, fake)

	text, err := g.Resolve(context.Background(), "https://diner.example")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if text != "Menu: Burger $10, Fries $4" {
		t.Errorf("text = %q", text)
	}
	req := fake.requests[0]
	if len(req.Tools) != 1 || req.Tools[0].GoogleSearch == nil {
		t.Errorf("tools = %+v, want google search", req.Tools)
	}
	if req.GenerationConfig != nil {
		t.Error("search call should not force a JSON schema")
	}
	if !strings.Contains(req.Contents[0].Parts[0].Text, "https://diner.example") {
		t.Error("url missing from search prompt")
	}
}

func TestDecodeRecords(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    int
		wantErr bool
	}{
		{name: "plain", text: twoItems, want: 2},
		{name: "empty", text: "  ", want: 0},
		{name: "fenced", text: "```json\n" + twoItems + "\n```", want: 2},
		{name: "trailing comma", text: `[{"name":"Soup","description":"","price":"","tags":{"course":"starter","protein":"","spiciness":"none","dietary":[]}},]`, want: 1},
		{name: "truncated", text: `[{"name":"Soup","description":"hot","price":"$5"`, want: 1},
		{name: "not an array", text: `{"name": "Soup"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := decodeRecords(tt.text)
			if (err != nil) != tt.wantErr {
				t.Fatalf("decodeRecords() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && len(records) != tt.want {
				t.Errorf("len = %d, want %d", len(records), tt.want)
			}
		})
	}
}
