package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" INFO ":  slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "json", "info")

	l.WithWidget("w.yaml").CountryDetected("RU", "trunk_prefix")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("expected JSON line, got %q: %v", buf.String(), err)
	}
	if rec["msg"] != "country detected" {
		t.Errorf("expected msg 'country detected', got %v", rec["msg"])
	}
	if rec["region"] != "RU" || rec["widget"] != "w.yaml" {
		t.Errorf("expected region and widget attrs, got %v", rec)
	}
}

func TestTransitionIsDebug(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "text", "info")
	l.Transition("USER_TYPED", "", "8", "+8")
	if buf.Len() != 0 {
		t.Errorf("expected transition suppressed at info, got %q", buf.String())
	}

	l = NewWithWriter(&buf, "text", "debug")
	l.Transition("USER_TYPED", "", "8", "+8")
	if !strings.Contains(buf.String(), "event=USER_TYPED") {
		t.Errorf("expected transition logged at debug, got %q", buf.String())
	}
}

func TestPolicyReloaded(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "text", "info")

	l.PolicyReloaded("w.yaml", errors.New("boom"))
	if !strings.Contains(buf.String(), "level=ERROR") || !strings.Contains(buf.String(), "boom") {
		t.Errorf("expected error record, got %q", buf.String())
	}

	buf.Reset()
	l.PolicyReloaded("w.yaml", nil)
	if !strings.Contains(buf.String(), "policy reloaded") {
		t.Errorf("expected info record, got %q", buf.String())
	}
}

func TestNewDevelopment(t *testing.T) {
	l := New("Development")
	if !l.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("expected debug enabled in development")
	}
	if New("production").Enabled(context.Background(), slog.LevelDebug) {
		t.Error("expected debug disabled outside development")
	}
}
