package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestInitToJSON(t *testing.T) {
	defer slog.SetDefault(slog.Default())
	var buf bytes.Buffer
	l := InitTo(&buf, "debug", "json")
	l.Debug("hello", "k", "v")

	var m map[string]any
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("expected json line, got %q: %v", buf.String(), err)
	}
	if m["msg"] != "hello" || m["k"] != "v" {
		t.Fatalf("unexpected record %v", m)
	}
}

func TestInitToTextFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	l := InitTo(&buf, "warn", "text")
	l.Info("hidden")
	l.Warn("shown")
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	if ParseLevel("bogus") != slog.LevelInfo {
		t.Fatalf("expected info default")
	}
	if ParseLevel("error") != slog.LevelError {
		t.Fatalf("expected error level")
	}
}
