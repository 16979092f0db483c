// Menuwise - Restaurant Menu Dish Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuwise

// Package extract turns a menu photo, pasted menu text or a restaurant URL into
// structured menu records.
//
// The heavy lifting is done by a multimodal model (GeminiClient). URL inputs
// are first resolved to page text by a Resolver chain inside Pipeline, and the
// whole call is wrapped by Resilient, which adds rate limiting, a circuit
// breaker and metrics:
//
//	Resilient -> Pipeline -> [PageResolver | GeminiClient search] -> GeminiClient
//
// Extractors never assign item ids and never invent dishes; the prompts
// require the model to return only what is present in the source.
package extract

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/tomtom215/menuwise/internal/menu"
)

// Kind distinguishes image uploads from text input.
type Kind string

const (
	KindImage Kind = "image"
	KindText  Kind = "text"
)

// DefaultImageMIMEType is assumed when an image arrives without a MIME type.
const DefaultImageMIMEType = "image/jpeg"

var (
	// ErrInvalidRequest is returned for empty or malformed extraction requests.
	ErrInvalidRequest = errors.New("invalid extraction request")

	// ErrMissingAPIKey is returned when no model API key is configured.
	ErrMissingAPIKey = errors.New("missing GEMINI_API_KEY")

	// ErrRateLimited is returned when the local rate limiter rejects a call.
	ErrRateLimited = errors.New("extraction rate limit exceeded")

	// ErrUnavailable is returned while the circuit breaker is open.
	ErrUnavailable = errors.New("extraction service temporarily unavailable")
)

// Request is a single extraction job.
type Request struct {
	Kind Kind

	// Data holds the raw image bytes for KindImage.
	Data []byte

	// MIMEType of Data, e.g. "image/png".
	MIMEType string

	// Text holds pasted menu text or a URL for KindText.
	Text string
}

// Validate checks the request carries content for its kind.
func (r *Request) Validate() error {
	switch r.Kind {
	case KindImage:
		if len(r.Data) == 0 {
			return fmt.Errorf("%w: empty image", ErrInvalidRequest)
		}
	case KindText:
		if strings.TrimSpace(r.Text) == "" {
			return fmt.Errorf("%w: empty text", ErrInvalidRequest)
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidRequest, r.Kind)
	}
	return nil
}

// Normalized returns a copy with defaults applied: image MIME type falls back
// to DefaultImageMIMEType and text is trimmed.
func (r Request) Normalized() Request {
	switch r.Kind {
	case KindImage:
		if strings.TrimSpace(r.MIMEType) == "" {
			r.MIMEType = DefaultImageMIMEType
		}
	case KindText:
		r.Text = strings.TrimSpace(r.Text)
	}
	return r
}

// Extractor turns a request into menu records. An empty result with a nil
// error means the source contained no dishes.
type Extractor interface {
	Extract(ctx context.Context, req Request) ([]menu.Record, error)
}

// ExtractorFunc adapts a function to the Extractor interface.
type ExtractorFunc func(ctx context.Context, req Request) ([]menu.Record, error)

// Extract calls f.
func (f ExtractorFunc) Extract(ctx context.Context, req Request) ([]menu.Record, error) {
	return f(ctx, req)
}

// Resolver fetches the menu text behind a URL.
type Resolver interface {
	Name() string
	Resolve(ctx context.Context, url string) (string, error)
}

var urlPattern = regexp.MustCompile(`^(?:https?|www\.)[^\s"]+$`)

// IsURL reports whether the trimmed text looks like a single URL.
func IsURL(text string) bool {
	return urlPattern.MatchString(strings.TrimSpace(text))
}
