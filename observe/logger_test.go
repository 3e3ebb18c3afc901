package observe

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func decodeEntries(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("decoding log line %q: %v", line, err)
		}
		entries = append(entries, entry)
	}
	return entries
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithWriter("warn", &buf)
	ctx := context.Background()

	l.Debug(ctx, "debug msg")
	l.Info(ctx, "info msg")
	l.Warn(ctx, "warn msg")
	l.Error(ctx, "error msg")

	entries := decodeEntries(t, &buf)
	if len(entries) != 2 {
		t.Fatalf("got %d entries at warn level, want 2", len(entries))
	}
	if entries[0]["level"] != "warn" || entries[1]["level"] != "error" {
		t.Errorf("levels = %v/%v, want warn/error", entries[0]["level"], entries[1]["level"])
	}
}

func TestLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithWriter("info", &buf)

	l.Info(context.Background(), "reconnected",
		Field{Key: "endpoint", Value: "service:9400"},
		Field{Key: "took", Value: "120ms"},
	)

	entries := decodeEntries(t, &buf)
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	e := entries[0]
	if e["msg"] != "reconnected" {
		t.Errorf("msg = %v, want reconnected", e["msg"])
	}
	if e["endpoint"] != "service:9400" || e["took"] != "120ms" {
		t.Errorf("fields not recorded: %v", e)
	}
	if e["timestamp"] == nil {
		t.Error("timestamp missing")
	}
}

func TestLogger_WithGuard(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithWriter("info", &buf).WithGuard("orders-db")

	l.Info(context.Background(), "reconnected")

	entries := decodeEntries(t, &buf)
	if entries[0]["guard"] != "orders-db" {
		t.Errorf("guard = %v, want orders-db", entries[0]["guard"])
	}
}

func TestLogger_RedactsSecrets(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithWriter("info", &buf)

	l.Info(context.Background(), "target resolved",
		Field{Key: "credential", Value: "super-secret"},
		Field{Key: "token", Value: "eyJ..."},
		Field{Key: "endpoint", Value: "service:9400"},
	)

	entries := decodeEntries(t, &buf)
	e := entries[0]
	if e["credential"] != "[REDACTED]" || e["token"] != "[REDACTED]" {
		t.Errorf("secret fields not redacted: %v", e)
	}
	if e["endpoint"] != "service:9400" {
		t.Errorf("endpoint = %v, want passthrough", e["endpoint"])
	}
}

func TestParseLogLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"debug":   LevelDebug,
		"info":    LevelInfo,
		"warn":    LevelWarn,
		"error":   LevelError,
		"":        LevelInfo,
		"bananas": LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLogLevel(in); got != want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNopLogger(t *testing.T) {
	l := NopLogger()
	ctx := context.Background()

	// Must be safe to call everything, including WithGuard chains.
	l.WithGuard("a").Info(ctx, "ignored", Field{Key: "k", Value: "v"})
	l.Debug(ctx, "ignored")
	l.Warn(ctx, "ignored")
	l.Error(ctx, "ignored")
}
