// Menuwise - Restaurant Menu Dish Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuwise

package extract

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
)

// PageConfig configures PageResolver.
type PageConfig struct {
	// Timeout bounds a single page fetch.
	Timeout time.Duration

	// MaxBodyBytes caps how much HTML is read.
	MaxBodyBytes int64

	// MaxTextBytes caps the extracted text handed to the model.
	MaxTextBytes int

	UserAgent string
}

// DefaultPageConfig returns the production defaults.
func DefaultPageConfig() PageConfig {
	return PageConfig{
		Timeout:      15 * time.Second,
		MaxBodyBytes: 5 << 20,
		MaxTextBytes: 15000,
		UserAgent:    "Menuwise/1.0 (Menu Fetcher)",
	}
}

// PageResolver downloads a restaurant page and reduces it to readable text.
type PageResolver struct {
	cfg        PageConfig
	httpClient *http.Client
	logger     zerolog.Logger
}

var _ Resolver = (*PageResolver)(nil)

// NewPageResolver creates a resolver. Zero config fields take their defaults.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewPageResolver(cfg PageConfig, logger zerolog.Logger) *PageResolver {
	def := DefaultPageConfig()
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = def.MaxBodyBytes
	}
	if cfg.MaxTextBytes <= 0 {
		cfg.MaxTextBytes = def.MaxTextBytes
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = def.UserAgent
	}
	return &PageResolver{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger.With().Str("component", "page_resolver").Logger(),
	}
}

// Name returns the resolver identifier.
func (p *PageResolver) Name() string {
	return "page"
}

// Resolve fetches url and returns its visible text. A bare "www." address is
// fetched over https.
func (p *PageResolver) Resolve(ctx context.Context, url string) (string, error) {
	url = normalizeURL(url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", p.cfg.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.5")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch page: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch page: HTTP %d", resp.StatusCode)
	}

	text, err := htmlToText(io.LimitReader(resp.Body, p.cfg.MaxBodyBytes), p.cfg.MaxTextBytes)
	if err != nil {
		return "", fmt.Errorf("parse HTML: %w", err)
	}

	p.logger.Debug().
		Str("url", url).
		Int("chars", len(text)).
		Msg("page resolved")
	return text, nil
}

func normalizeURL(url string) string {
	url = strings.TrimSpace(url)
	if strings.HasPrefix(strings.ToLower(url), "www.") {
		return "https://" + url
	}
	return url
}

// htmlToText keeps the title, headings, longer paragraphs, table rows and list
// items, which is where menus live. Output is capped at maxBytes.
func htmlToText(r io.Reader, maxBytes int) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", err
	}

	doc.Find("script, style, noscript, nav, footer, header, aside, iframe, form").Remove()

	var sb strings.Builder
	write := func(s string) {
		if s = collapseSpace(s); s != "" {
			sb.WriteString(s)
			sb.WriteString("\n")
		}
	}

	write(doc.Find("title").First().Text())

	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		write(s.Text())
	})

	// Short paragraphs are usually boilerplate; prices and dish names survive
	// through list items and table rows below.
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		if text := collapseSpace(s.Text()); len(text) > 30 {
			write(text)
		}
	})

	doc.Find("li").Each(func(_ int, s *goquery.Selection) {
		write(s.Text())
	})

	doc.Find("tr").Each(func(_ int, row *goquery.Selection) {
		var cells []string
		row.Find("th, td").Each(func(_ int, c *goquery.Selection) {
			if text := collapseSpace(c.Text()); text != "" {
				cells = append(cells, text)
			}
		})
		write(strings.Join(cells, " | "))
	})

	text := sb.String()
	if len(text) > maxBytes {
		text = truncateUTF8(text, maxBytes)
	}
	return strings.TrimSpace(text), nil
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune.
func truncateUTF8(s string, n int) string {
	for n > 0 && n < len(s) && !isRuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
