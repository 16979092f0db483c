// Menuwise - Restaurant Menu Dish Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuwise

package extract

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/menuwise/internal/menu"
)

type stubResolver struct {
	name  string
	text  string
	err   error
	calls int
}

func (s *stubResolver) Name() string { return s.name }

func (s *stubResolver) Resolve(_ context.Context, _ string) (string, error) {
	s.calls++
	return s.text, s.err
}

// recordingExtractor captures the last request and returns one record.
type recordingExtractor struct {
	last  Request
	calls int
}

func (r *recordingExtractor) Extract(_ context.Context, req Request) ([]menu.Record, error) {
	r.last = req
	r.calls++
	return []menu.Record{{Name: "Dish"}}, nil
}

var longMenu = strings.Repeat("Burger $10. ", 10)

func TestPipeline_PassesThroughNonURL(t *testing.T) {
	inner := &recordingExtractor{}
	resolver := &stubResolver{name: "page", text: longMenu}
	p := NewPipeline(inner, []Resolver{resolver}, zerolog.Nop())

	if _, err := p.Extract(context.Background(), Request{Kind: KindText, Text: " Soup $5 "}); err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if resolver.calls != 0 {
		t.Error("resolver should not run for plain text")
	}
	if inner.last.Text != "Soup $5" {
		t.Errorf("text = %q, want trimmed", inner.last.Text)
	}

	if _, err := p.Extract(context.Background(), Request{Kind: KindImage, Data: []byte{1}}); err != nil {
		t.Fatalf("Extract(image) error = %v", err)
	}
	if inner.last.MIMEType != DefaultImageMIMEType {
		t.Errorf("MIMEType = %q, want default", inner.last.MIMEType)
	}
}

func TestPipeline_URLWithoutResolversGoesToModel(t *testing.T) {
	inner := &recordingExtractor{}
	p := NewPipeline(inner, nil, zerolog.Nop())

	const link = "https://example.com/menu"
	if _, err := p.Extract(context.Background(), Request{Kind: KindText, Text: link}); err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if inner.calls != 1 || inner.last.Text != link {
		t.Errorf("extractor got %d calls with text %q, want the URL once", inner.calls, inner.last.Text)
	}
}

func TestPipeline_RedactsURLInResolverLogs(t *testing.T) {
	var buf bytes.Buffer
	resolver := &stubResolver{name: "page", err: errors.New("connection refused")}
	p := NewPipeline(&recordingExtractor{}, []Resolver{resolver}, zerolog.New(&buf))

	req := Request{Kind: KindText, Text: "https://example.com/menu?token=s3cret&table=4"}
	if _, err := p.Extract(context.Background(), req); !errors.Is(err, ErrResolveFailed) {
		t.Fatalf("Extract() error = %v, want ErrResolveFailed", err)
	}

	out := buf.String()
	if strings.Contains(out, "s3cret") {
		t.Errorf("log leaked token: %s", out)
	}
	if !strings.Contains(out, "example.com/menu") {
		t.Errorf("log should still name the host and path: %s", out)
	}
}

func TestPipeline_ResolvesURL(t *testing.T) {
	tests := []struct {
		name      string
		resolvers []*stubResolver
		wantText  string
		wantCalls []int
		wantErr   error
		wantEmpty bool
	}{
		{
			name:      "first resolver wins",
			resolvers: []*stubResolver{{name: "page", text: longMenu}, {name: "search", text: "other"}},
			wantText:  longMenu,
			wantCalls: []int{1, 0},
		},
		{
			name:      "falls back after failure",
			resolvers: []*stubResolver{{name: "page", err: errors.New("403")}, {name: "search", text: longMenu}},
			wantText:  longMenu,
			wantCalls: []int{1, 1},
		},
		{
			name:      "short text tries next and keeps longest",
			resolvers: []*stubResolver{{name: "page", text: "Closed today"}, {name: "search", text: "no"}},
			wantText:  "Closed today",
			wantCalls: []int{1, 1},
		},
		{
			name:      "all fail",
			resolvers: []*stubResolver{{name: "page", err: errors.New("timeout")}, {name: "search", err: errors.New("503")}},
			wantErr:   ErrResolveFailed,
			wantCalls: []int{1, 1},
		},
		{
			name:      "empty page is an empty menu",
			resolvers: []*stubResolver{{name: "page", text: ""}},
			wantEmpty: true,
			wantCalls: []int{1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inner := &recordingExtractor{}
			resolvers := make([]Resolver, len(tt.resolvers))
			for i, r := range tt.resolvers {
				resolvers[i] = r
			}
			p := NewPipeline(inner, resolvers, zerolog.Nop())

			records, err := p.Extract(context.Background(), Request{Kind: KindText, Text: "https://diner.example/menu"})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
			} else if err != nil {
				t.Fatalf("Extract() error = %v", err)
			}

			for i, r := range tt.resolvers {
				if r.calls != tt.wantCalls[i] {
					t.Errorf("resolver %s calls = %d, want %d", r.name, r.calls, tt.wantCalls[i])
				}
			}

			switch {
			case tt.wantErr != nil:
				if inner.calls != 0 {
					t.Error("extractor should not run after resolve failure")
				}
			case tt.wantEmpty:
				if records == nil || len(records) != 0 || inner.calls != 0 {
					t.Errorf("records = %v, extractor calls = %d; want empty without extraction", records, inner.calls)
				}
			default:
				if inner.last.Text != tt.wantText {
					t.Errorf("extractor text = %q, want %q", inner.last.Text, tt.wantText)
				}
			}
		})
	}
}

func TestPipeline_NoResolversSendsURLAsText(t *testing.T) {
	inner := &recordingExtractor{}
	p := NewPipeline(inner, nil, zerolog.Nop())

	if _, err := p.Extract(context.Background(), Request{Kind: KindText, Text: "www.diner.example"}); err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if inner.last.Text != "www.diner.example" {
		t.Errorf("text = %q", inner.last.Text)
	}
}

func TestPipeline_InvalidRequest(t *testing.T) {
	inner := &recordingExtractor{}
	p := NewPipeline(inner, nil, zerolog.Nop())
	if _, err := p.Extract(context.Background(), Request{Kind: KindText}); !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("error = %v, want ErrInvalidRequest", err)
	}
	if inner.calls != 0 {
		t.Error("extractor should not run for invalid request")
	}
}
