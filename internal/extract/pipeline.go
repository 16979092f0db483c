// Menuwise - Restaurant Menu Dish Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuwise

package extract

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/menuwise/internal/logging"
	"github.com/tomtom215/menuwise/internal/menu"
)

// minResolvedChars is the length below which resolved page text probably is
// not a menu.
const minResolvedChars = 50

// ErrResolveFailed is returned when every resolver failed for a URL.
var ErrResolveFailed = errors.New("could not retrieve menu from URL")

// Pipeline resolves URL input to page text and hands everything to the
// underlying extractor.
type Pipeline struct {
	extractor Extractor
	resolvers []Resolver
	logger    zerolog.Logger
}

var _ Extractor = (*Pipeline)(nil)

// NewPipeline creates a pipeline. Resolvers are tried in order; with none, a
// URL is sent to the extractor as plain text.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewPipeline(extractor Extractor, resolvers []Resolver, logger zerolog.Logger) *Pipeline {
	return &Pipeline{
		extractor: extractor,
		resolvers: append([]Resolver(nil), resolvers...),
		logger:    logger.With().Str("component", "extract_pipeline").Logger(),
	}
}

// Extract implements Extractor.
func (p *Pipeline) Extract(ctx context.Context, req Request) ([]menu.Record, error) {
	req = req.Normalized()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.Kind == KindText && IsURL(req.Text) && len(p.resolvers) > 0 {
		text, err := p.resolve(ctx, req.Text)
		if err != nil {
			return nil, err
		}
		if text == "" {
			return []menu.Record{}, nil
		}
		req.Text = text
	}

	return p.extractor.Extract(ctx, req)
}

// resolve returns the first resolver output that looks like a menu, or the
// longest output seen when none does.
func (p *Pipeline) resolve(ctx context.Context, url string) (string, error) {
	var (
		best string
		errs []error
	)

	for _, r := range p.resolvers {
		text, err := r.Resolve(ctx, url)
		if err != nil {
			p.logger.Warn().Err(err).Str("resolver", r.Name()).Str("url", logging.SanitizeURL(url)).Msg("resolver failed")
			errs = append(errs, fmt.Errorf("%s: %w", r.Name(), err))
			if ctx.Err() != nil {
				break
			}
			continue
		}

		if len(text) >= minResolvedChars {
			p.logger.Debug().Str("resolver", r.Name()).Int("chars", len(text)).Msg("url resolved")
			return text, nil
		}

		p.logger.Warn().
			Str("resolver", r.Name()).
			Int("chars", len(text)).
			Msg("resolved text too short, might have failed to find menu")
		if len(text) > len(best) {
			best = text
		}
	}

	if best == "" && len(errs) > 0 {
		return "", fmt.Errorf("%w: %w", ErrResolveFailed, errors.Join(errs...))
	}
	return best, nil
}
