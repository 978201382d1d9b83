// FraudForge - Synthetic Card Transaction Stream Generator
// Copyright 2026 FraudForge Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fraudforge/fraudforge

package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"INFO", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"disabled", zerolog.Disabled},
		{"garbage", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNewTestLogger_CapturesOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewTestLogger(&buf)

	logger.Info().Str("component", "driver").Msg("batch sent")

	out := buf.String()
	if !strings.Contains(out, `"component":"driver"`) || !strings.Contains(out, "batch sent") {
		t.Errorf("unexpected log output: %s", out)
	}
}

func TestSlogHandler_WritesThroughZerolog(t *testing.T) {
	var buf bytes.Buffer
	handler := NewSlogHandlerWithLogger(NewTestLogger(&buf))
	logger := slog.New(handler)

	logger.Info("service started", "service", "generation-layer")

	out := buf.String()
	if !strings.Contains(out, `"service":"generation-layer"`) || !strings.Contains(out, "service started") {
		t.Errorf("unexpected log output: %s", out)
	}
}

func TestSlogHandler_Groups(t *testing.T) {
	var buf bytes.Buffer
	handler := NewSlogHandlerWithLogger(NewTestLogger(&buf))
	logger := slog.New(handler).WithGroup("supervisor")

	logger.Warn("service failed", "name", "driver")

	out := buf.String()
	if !strings.Contains(out, `"supervisor.name":"driver"`) {
		t.Errorf("grouped attribute missing: %s", out)
	}
}

func TestWatermillAdapter_With(t *testing.T) {
	var buf bytes.Buffer
	adapter := &WatermillAdapter{logger: NewTestLogger(&buf)}

	child := adapter.With(map[string]interface{}{"topic": "transactions.usd"})
	child.Info("published", nil)

	out := buf.String()
	if !strings.Contains(out, `"topic":"transactions.usd"`) || !strings.Contains(out, "published") {
		t.Errorf("unexpected log output: %s", out)
	}
}
