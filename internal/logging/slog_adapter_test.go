// Menuwise - Restaurant Menu Dish Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuwise

package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestSlogHandler_Enabled(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		zerologLevel zerolog.Level
		slogLevel    slog.Level
		want         bool
	}{
		{"debug logger enables debug", zerolog.DebugLevel, slog.LevelDebug, true},
		{"info logger disables debug", zerolog.InfoLevel, slog.LevelDebug, false},
		{"info logger enables warn", zerolog.InfoLevel, slog.LevelWarn, true},
		{"error logger disables warn", zerolog.ErrorLevel, slog.LevelWarn, false},
		{"error logger enables error", zerolog.ErrorLevel, slog.LevelError, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			handler := NewSlogHandlerWithLogger(zerolog.New(nil).Level(tt.zerologLevel))
			if got := handler.Enabled(context.Background(), tt.slogLevel); got != tt.want {
				t.Errorf("Enabled(%v) = %v, want %v", tt.slogLevel, got, tt.want)
			}
		})
	}
}

func TestSlogHandler_Handle(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	slogger := slog.New(NewSlogHandlerWithLogger(zerolog.New(&buf)))

	slogger.Warn("service restarted",
		"service", "session-sweeper",
		"attempt", 3,
		"backoff", 15*time.Second,
		"healthy", false,
		"err", errors.New("panic: boom"),
	)

	output := buf.String()
	for _, want := range []string{
		`"level":"warn"`,
		`"service":"session-sweeper"`,
		`"attempt":3`,
		`"healthy":false`,
		`"err":"panic: boom"`,
		`"message":"service restarted"`,
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %s: %s", want, output)
		}
	}
}

func TestSlogHandler_ContextIDs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	slogger := slog.New(NewSlogHandlerWithLogger(zerolog.New(&buf)))

	ctx := ContextWithRequestID(context.Background(), "req-7")
	ctx = ContextWithSessionID(ctx, "sess-7")
	slogger.InfoContext(ctx, "extraction settled")

	output := buf.String()
	if !strings.Contains(output, `"request_id":"req-7"`) || !strings.Contains(output, `"session_id":"sess-7"`) {
		t.Errorf("context ids missing: %s", output)
	}
}

func TestSlogHandler_AttrsAndGroups(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	slogger := slog.New(NewSlogHandlerWithLogger(zerolog.New(&buf))).
		With("component", "supervisor").
		WithGroup("tree").
		With("name", "root")

	slogger.Info("started", slog.Group("limits", slog.Int("threshold", 5)))

	output := buf.String()
	for _, want := range []string{
		`"component":"supervisor"`,
		`"tree.name":"root"`,
		`"tree.limits.threshold":5`,
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %s: %s", want, output)
		}
	}
}

func TestSlogHandler_WithAttrsDoesNotShare(t *testing.T) {
	t.Parallel()

	base := NewSlogHandlerWithLogger(zerolog.New(nil))
	a := base.WithAttrs([]slog.Attr{slog.String("a", "1")}).(*SlogHandler)
	b := base.WithAttrs([]slog.Attr{slog.String("b", "2")}).(*SlogHandler)

	if len(base.attrs) != 0 {
		t.Errorf("base handler mutated: %v", base.attrs)
	}
	if a.attrs[0].Key != "a" || b.attrs[0].Key != "b" {
		t.Errorf("derived handlers share attrs: %v %v", a.attrs, b.attrs)
	}
	if base.WithGroup("") != base {
		t.Error("WithGroup(\"\") should return the same handler")
	}
}

func TestSlogToZerologLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   slog.Level
		want zerolog.Level
	}{
		{slog.LevelDebug - 4, zerolog.TraceLevel},
		{slog.LevelDebug, zerolog.DebugLevel},
		{slog.LevelInfo, zerolog.InfoLevel},
		{slog.LevelWarn, zerolog.WarnLevel},
		{slog.LevelError, zerolog.ErrorLevel},
		{slog.LevelError + 4, zerolog.ErrorLevel},
	}
	for _, tt := range tests {
		if got := slogToZerologLevel(tt.in); got != tt.want {
			t.Errorf("slogToZerologLevel(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewSlogLoggerWithLevel(t *testing.T) {
	t.Parallel()

	slogger := NewSlogLoggerWithLevel("error")
	if slogger.Enabled(context.Background(), slog.LevelWarn) {
		t.Error("warn should be disabled for an error-level slog logger")
	}
	if !slogger.Enabled(context.Background(), slog.LevelError) {
		t.Error("error should be enabled")
	}
}
