package observe

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("invalid log line %q: %v", line, err)
		}
		entries = append(entries, entry)
	}
	return entries
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("warn", &buf)

	ctx := context.Background()
	logger.Debug(ctx, "debug msg")
	logger.Info(ctx, "info msg")
	logger.Warn(ctx, "warn msg")
	logger.Error(ctx, "error msg")

	entries := decodeLines(t, &buf)
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0]["level"] != "warn" || entries[1]["level"] != "error" {
		t.Errorf("levels = %v, %v, want warn, error", entries[0]["level"], entries[1]["level"])
	}
}

func TestLogger_WithOp(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)

	opLogger := logger.WithOp(OpMeta{Name: "loyalty.class.create", Provider: "google-wallet"})
	opLogger.Info(context.Background(), "created")

	entries := decodeLines(t, &buf)
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	if entries[0]["op.id"] != "google-wallet.loyalty.class.create" {
		t.Errorf("op.id = %v, want google-wallet.loyalty.class.create", entries[0]["op.id"])
	}
	if entries[0]["op.provider"] != "google-wallet" {
		t.Errorf("op.provider = %v, want google-wallet", entries[0]["op.provider"])
	}
}

func TestLogger_Redaction(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)

	logger.Info(context.Background(), "token issued",
		Field{Key: "save_token", Value: "eyJhbGciOi..."},
		Field{Key: "token", Value: "secret-value"},
		Field{Key: "object_id", Value: "3388000000012.abc"},
	)

	entries := decodeLines(t, &buf)
	if entries[0]["save_token"] != "[REDACTED]" {
		t.Errorf("save_token = %v, want [REDACTED]", entries[0]["save_token"])
	}
	if entries[0]["token"] != "[REDACTED]" {
		t.Errorf("token = %v, want [REDACTED]", entries[0]["token"])
	}
	if entries[0]["object_id"] != "3388000000012.abc" {
		t.Errorf("object_id = %v, want passed through", entries[0]["object_id"])
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"bogus", LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLogLevel(tt.in); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestOpMeta_Identifiers(t *testing.T) {
	meta := OpMeta{Name: "points.add", Provider: "google-wallet"}
	if meta.OpID() != "google-wallet.points.add" {
		t.Errorf("OpID() = %q", meta.OpID())
	}
	if meta.SpanName() != "wallet.call.google-wallet.points.add" {
		t.Errorf("SpanName() = %q", meta.SpanName())
	}

	bare := OpMeta{Name: "points.add"}
	if bare.OpID() != "points.add" {
		t.Errorf("OpID() = %q", bare.OpID())
	}
	if bare.SpanName() != "wallet.call.points.add" {
		t.Errorf("SpanName() = %q", bare.SpanName())
	}
}
