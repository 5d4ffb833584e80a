package log

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
		"loud":  slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewHandlerFormats(t *testing.T) {
	for _, format := range []string{"text", "json", "tint", ""} {
		var buf bytes.Buffer
		h, err := NewHandler(format, slog.LevelInfo, &buf)
		if err != nil {
			t.Fatalf("NewHandler(%q): %v", format, err)
		}
		slog.New(h).Info("hello", "k", "v")
		if !strings.Contains(buf.String(), "hello") {
			t.Errorf("%q handler wrote %q", format, buf.String())
		}
	}
	if _, err := NewHandler("xml", slog.LevelInfo, &bytes.Buffer{}); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestLoggerAddsComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelDebug, Format: "json", Component: ComponentStorage, Output: &buf})

	logger.Info("saved", FieldEntityID, 7)

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("decode: %v (%s)", err, buf.String())
	}
	if rec[FieldComponent] != ComponentStorage {
		t.Errorf("component = %v", rec[FieldComponent])
	}
	if rec[FieldEntityID] != float64(7) {
		t.Errorf("entity_id = %v", rec[FieldEntityID])
	}
}

func TestStructuredLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	sl := NewStructuredLogger(New(Config{Level: slog.LevelDebug, Format: "json", Output: &buf}))
	r := httptest.NewRequest("GET", "/Category?x=1", nil)

	sl.LogHTTPEnd(context.Background(), r, "req-1", 503, 12, "127.0.0.1")
	sl.LogError(context.Background(), "boom", errors.New("disk full"), ComponentStorage, OpCreate, nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 records, got %d: %s", len(lines), buf.String())
	}
	var end, failure map[string]any
	json.Unmarshal([]byte(lines[0]), &end)
	json.Unmarshal([]byte(lines[1]), &failure)

	if end["level"] != "ERROR" || end[FieldStatusCode] != float64(503) || end[FieldRequestID] != "req-1" {
		t.Errorf("unexpected completion record %v", end)
	}
	if failure[FieldError] != "disk full" || failure[FieldOperation] != OpCreate {
		t.Errorf("unexpected error record %v", failure)
	}
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	if FromContext(context.Background()) == nil {
		t.Fatal("expected default logger")
	}
	l := New(DefaultConfig())
	if FromContext(WithLogger(context.Background(), l)) != l {
		t.Fatal("expected stored logger")
	}
}
