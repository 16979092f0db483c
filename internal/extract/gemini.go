// Menuwise - Restaurant Menu Dish Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuwise

package extract

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/kaptinlin/jsonrepair"
	"github.com/rs/zerolog"

	"github.com/tomtom215/menuwise/internal/menu"
)

const (
	// DefaultGeminiBaseURL is the public Generative Language API endpoint.
	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	// DefaultGeminiModel is a fast multimodal model.
	DefaultGeminiModel = "gemini-2.5-flash"

	maxResponseBytes = 10 << 20
	maxErrorBody     = 512
)

// ErrMalformedResponse is returned when the model output cannot be decoded
// into menu records, even after repair.
var ErrMalformedResponse = errors.New("malformed model response")

// APIError is returned when the model API answers with a non-200 status.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gemini api error: status %d: %s", e.StatusCode, e.Body)
}

// Temporary reports whether retrying later may succeed.
func (e *APIError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// GeminiConfig configures the model client.
type GeminiConfig struct {
	APIKey          string
	Model           string
	BaseURL         string
	Timeout         time.Duration
	MaxOutputTokens int
}

// DefaultGeminiConfig returns the defaults without an API key.
func DefaultGeminiConfig() GeminiConfig {
	return GeminiConfig{
		Model:           DefaultGeminiModel,
		BaseURL:         DefaultGeminiBaseURL,
		Timeout:         60 * time.Second,
		MaxOutputTokens: 8192,
	}
}

// GeminiClient calls the generateContent REST endpoint.
//
// It implements Extractor for images and text, and Resolver by asking the
// model to look the URL up with its search tool.
type GeminiClient struct {
	cfg        GeminiConfig
	httpClient *http.Client
	logger     zerolog.Logger
}

var (
	_ Extractor = (*GeminiClient)(nil)
	_ Resolver  = (*GeminiClient)(nil)
)

// NewGeminiClient creates a client. Zero config fields take their defaults.
// A missing API key is reported on the first call, not here.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewGeminiClient(cfg GeminiConfig, logger zerolog.Logger) *GeminiClient {
	def := DefaultGeminiConfig()
	if cfg.Model == "" {
		cfg.Model = def.Model
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.MaxOutputTokens <= 0 {
		cfg.MaxOutputTokens = def.MaxOutputTokens
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return &GeminiClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger.With().Str("component", "gemini").Str("model", cfg.Model).Logger(),
	}
}

// Name returns the resolver identifier.
func (g *GeminiClient) Name() string {
	return "gemini-search"
}

// Extract sends the image or text to the model and decodes the JSON array it
// returns. URL detection is not done here; see Pipeline.
func (g *GeminiClient) Extract(ctx context.Context, req Request) ([]menu.Record, error) {
	req = req.Normalized()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var parts []part
	switch req.Kind {
	case KindImage:
		parts = []part{
			{InlineData: &inlineData{MIMEType: req.MIMEType, Data: base64.StdEncoding.EncodeToString(req.Data)}},
			{Text: imagePrompt},
		}
	case KindText:
		parts = []part{{Text: textPrompt(req.Text)}}
	}

	body := generateRequest{
		SystemInstruction: &content{Parts: []part{{Text: systemInstruction}}},
		Contents:          []content{{Role: "user", Parts: parts}},
		GenerationConfig: &generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   menuSchema,
			MaxOutputTokens:  g.cfg.MaxOutputTokens,
		},
	}

	text, err := g.generate(ctx, &body)
	if err != nil {
		return nil, err
	}

	records, err := decodeRecords(text)
	if err != nil {
		return nil, err
	}

	g.logger.Debug().
		Str("kind", string(req.Kind)).
		Int("records", len(records)).
		Msg("menu extracted")
	return records, nil
}

// Resolve asks the model to find the menu behind url using its search tool and
// returns the raw text it found.
func (g *GeminiClient) Resolve(ctx context.Context, url string) (string, error) {
	body := generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: searchPrompt(url)}}}},
		Tools:    []tool{{GoogleSearch: &struct{}{}}},
	}
	return g.generate(ctx, &body)
}

// generate performs one generateContent call and returns the concatenated
// text of the first candidate.
func (g *GeminiClient) generate(ctx context.Context, body *generateRequest) (string, error) {
	if g.cfg.APIKey == "" {
		return "", ErrMissingAPIKey
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", g.cfg.BaseURL, g.cfg.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.cfg.APIKey)

	start := time.Now()
	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	g.logger.Debug().
		Int("status", resp.StatusCode).
		Int("bytes", len(raw)).
		Dur("duration", time.Since(start)).
		Msg("generateContent returned")

	if resp.StatusCode != http.StatusOK {
		msg := string(raw)
		if len(msg) > maxErrorBody {
			msg = msg[:maxErrorBody]
		}
		return "", &APIError{StatusCode: resp.StatusCode, Body: msg}
	}

	var result generateResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	if result.PromptFeedback != nil && result.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("gemini blocked prompt: %s", result.PromptFeedback.BlockReason)
	}
	if len(result.Candidates) == 0 {
		return "", nil
	}

	var sb strings.Builder
	for _, p := range result.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String(), nil
}

// decodeRecords parses the model's JSON array. Code fences are stripped and
// truncated or sloppy JSON is repaired before giving up.
func decodeRecords(text string) ([]menu.Record, error) {
	text = stripCodeFence(strings.TrimSpace(text))
	if text == "" {
		return []menu.Record{}, nil
	}

	var records []menu.Record
	if err := json.Unmarshal([]byte(text), &records); err == nil {
		return nonNil(records), nil
	}

	repaired, err := jsonrepair.JSONRepair(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	if err := json.Unmarshal([]byte(repaired), &records); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return nonNil(records), nil
}

func stripCodeFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimPrefix(text, "json")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}

func nonNil(records []menu.Record) []menu.Record {
	if records == nil {
		return []menu.Record{}
	}
	return records
}

// Wire types for generateContent.

type generateRequest struct {
	SystemInstruction *content          `json:"systemInstruction,omitempty"`
	Contents          []content         `json:"contents"`
	Tools             []tool            `json:"tools,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"`
}

type tool struct {
	GoogleSearch *struct{} `json:"googleSearch,omitempty"`
}

type generationConfig struct {
	ResponseMIMEType string `json:"responseMimeType,omitempty"`
	ResponseSchema   any    `json:"responseSchema,omitempty"`
	MaxOutputTokens  int    `json:"maxOutputTokens,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}
