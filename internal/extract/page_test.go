// Menuwise - Restaurant Menu Dish Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuwise

package extract

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

const menuPage = `<!doctype html>
<html>
<head><title>Luigi's Trattoria</title><style>body{color:red}</style></head>
<body>
<nav><a href="/">Home</a><a href="/book">Book a table</a></nav>
<header>Call us!</header>
<h1>Dinner Menu</h1>
<p>Short note.</p>
<p>All pasta is made fresh in house every morning by our chefs.</p>
<ul>
  <li>Spaghetti Carbonara   $16</li>
  <li>Margherita Pizza $14</li>
</ul>
<table>
  <tr><th>Dessert</th><th>Price</th></tr>
  <tr><td>Tiramisu</td><td>$8</td></tr>
  <tr><td></td><td></td></tr>
</table>
<script>var tracking = "Spaghetti";</script>
<footer>Copyright</footer>
</body>
</html>`

func TestHTMLToText(t *testing.T) {
	text, err := htmlToText(strings.NewReader(menuPage), 15000)
	if err != nil {
		t.Fatalf("htmlToText() error = %v", err)
	}

	for _, want := range []string{
		"Luigi's Trattoria",
		"Dinner Menu",
		"All pasta is made fresh in house every morning by our chefs.",
		"Spaghetti Carbonara $16",
		"Margherita Pizza $14",
		"Dessert | Price",
		"Tiramisu | $8",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("text missing %q:\n%s", want, text)
		}
	}

	for _, unwanted := range []string{"Short note.", "Book a table", "Call us!", "tracking", "Copyright", "color:red"} {
		if strings.Contains(text, unwanted) {
			t.Errorf("text should not contain %q:\n%s", unwanted, text)
		}
	}
}

func TestHTMLToText_Truncates(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("<ul>")
	for i := 0; i < 200; i++ {
		sb.WriteString("<li>Crème brûlée with caramelised sugar</li>")
	}
	sb.WriteString("</ul>")

	text, err := htmlToText(strings.NewReader(sb.String()), 100)
	if err != nil {
		t.Fatalf("htmlToText() error = %v", err)
	}
	if len(text) > 100 {
		t.Errorf("len = %d, want <= 100", len(text))
	}
	if !strings.HasPrefix(text, "Crème") {
		t.Errorf("text = %q", text)
	}
}

func TestTruncateUTF8(t *testing.T) {
	s := "aé" // 'é' is two bytes
	if got := truncateUTF8(s, 2); got != "a" {
		t.Errorf("truncateUTF8 = %q, want %q", got, "a")
	}
	if got := truncateUTF8(s, 3); got != s {
		t.Errorf("truncateUTF8 = %q, want %q", got, s)
	}
}

func TestNormalizeURL(t *testing.T) {
	tests := map[string]string{
		"www.example.com":      "https://www.example.com",
		" WWW.example.com ":    "https://WWW.example.com",
		"http://example.com":   "http://example.com",
		"https://example.com/": "https://example.com/",
	}
	for in, want := range tests {
		if got := normalizeURL(in); got != want {
			t.Errorf("normalizeURL(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPageResolver_Resolve(t *testing.T) {
	var userAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent = r.Header.Get("User-Agent")
		switch r.URL.Path {
		case "/menu":
			w.Header().Set("Content-Type", "text/html")
			_, _ = io.WriteString(w, menuPage)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	p := NewPageResolver(PageConfig{}, zerolog.Nop())
	if p.Name() != "page" {
		t.Errorf("Name() = %q", p.Name())
	}

	text, err := p.Resolve(context.Background(), srv.URL+"/menu")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if !strings.Contains(text, "Spaghetti Carbonara $16") {
		t.Errorf("text = %q", text)
	}
	if userAgent != DefaultPageConfig().UserAgent {
		t.Errorf("User-Agent = %q", userAgent)
	}

	if _, err := p.Resolve(context.Background(), srv.URL+"/missing"); err == nil {
		t.Error("expected error for 404")
	}
}
