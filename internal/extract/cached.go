// Menuwise - Restaurant Menu Dish Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuwise

package extract

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"github.com/rs/zerolog"

	"github.com/tomtom215/menuwise/internal/cache"
	"github.com/tomtom215/menuwise/internal/menu"
	"github.com/tomtom215/menuwise/internal/metrics"
)

// Cached remembers successful, non-empty extraction results keyed by the
// request content. Errors and empty results are never cached, so a retry
// after a failure always reaches the model again.
type Cached struct {
	next   Extractor
	store  *cache.Cache[[]menu.Record]
	logger zerolog.Logger
}

// NewCached wraps next with store.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCached(next Extractor, store *cache.Cache[[]menu.Record], logger zerolog.Logger) *Cached {
	return &Cached{
		next:   next,
		store:  store,
		logger: logger.With().Str("component", "extract-cache").Logger(),
	}
}

// Extract returns a cached result when the same content was extracted
// recently, otherwise delegates to the wrapped extractor.
func (c *Cached) Extract(ctx context.Context, req Request) ([]menu.Record, error) {
	key := requestKey(req.Normalized())

	if records, ok := c.store.Get(key); ok {
		metrics.ExtractionCacheLookups.WithLabelValues("hit").Inc()
		c.logger.Debug().Str("key", key).Int("items", len(records)).Msg("extraction cache hit")
		return cloneRecords(records), nil
	}
	metrics.ExtractionCacheLookups.WithLabelValues("miss").Inc()

	records, err := c.next.Extract(ctx, req)
	if err != nil || len(records) == 0 {
		return records, err
	}

	c.store.Set(key, cloneRecords(records))
	return records, nil
}

// requestKey hashes the request content. Image bytes are digested first so
// the key stays small.
func requestKey(req Request) string {
	params := struct {
		Kind     Kind   `json:"kind"`
		MIMEType string `json:"mime_type,omitempty"`
		Digest   string `json:"digest,omitempty"`
		Text     string `json:"text,omitempty"`
	}{Kind: req.Kind, Text: req.Text}

	if req.Kind == KindImage {
		sum := sha256.Sum256(req.Data)
		params.MIMEType = req.MIMEType
		params.Digest = hex.EncodeToString(sum[:])
	}
	return cache.GenerateKey("extract", params)
}

func cloneRecords(records []menu.Record) []menu.Record {
	out := make([]menu.Record, len(records))
	for i := range records {
		out[i] = records[i]
		if records[i].Tags.Dietary != nil {
			out[i].Tags.Dietary = append([]string(nil), records[i].Tags.Dietary...)
		}
	}
	return out
}
