package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
)

func captureContext(opts *slog.HandlerOptions) (context.Context, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, opts))
	return WithLogger(context.Background(), logger), &buf
}

func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to unmarshal %q: %v", buf.String(), err)
	}
	return entry
}

func TestLoggerFromContext(t *testing.T) {
	//nolint:staticcheck // nil context is handled explicitly.
	if LoggerFromContext(nil) != Logger() {
		t.Fatal("expected process logger for nil context")
	}
	if LoggerFromContext(context.Background()) != Logger() {
		t.Fatal("expected process logger when none is attached")
	}

	custom := slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil))
	if LoggerFromContext(WithLogger(context.Background(), custom)) != custom {
		t.Fatal("expected attached logger")
	}
}

func TestWithLogger_NilContext(t *testing.T) {
	//nolint:staticcheck // nil context is handled explicitly.
	ctx := WithLogger(nil, slog.Default())
	if ctx == nil {
		t.Fatal("expected non-nil context")
	}
	if LoggerFromContext(ctx) != slog.Default() {
		t.Fatal("expected logger to be attached")
	}
}

func TestTraceIDFromContext(t *testing.T) {
	if TraceIDFromContext(context.Background()) != nil {
		t.Fatal("expected nil without trace id")
	}
	if TraceIDFromContext(contextWithTraceID(context.Background(), "")) != nil {
		t.Fatal("expected nil for empty trace id")
	}

	id := TraceIDFromContext(contextWithTraceID(context.Background(), "trace-abc"))
	if id == nil || *id != "trace-abc" {
		t.Fatalf("expected 'trace-abc', got %v", id)
	}

	//nolint:staticcheck // nil context is handled explicitly.
	if got := contextWithTraceID(nil, "trace-xyz"); TraceIDFromContext(got) == nil {
		t.Fatal("expected trace id on context created from nil")
	}
}

func TestLogHelpers(t *testing.T) {
	tests := []struct {
		name  string
		log   func(ctx context.Context)
		level string
		msg   string
	}{
		{"debug", func(ctx context.Context) { LogDebug(ctx, "loading items") }, "DEBUG", "loading items"},
		{"info", func(ctx context.Context) { LogInfo(ctx, "items seeded", slog.Int("created", 10)) }, "INFO", "items seeded"},
		{"warn", func(ctx context.Context) { LogWarn(ctx, "demo project") }, "WARN", "demo project"},
		{"error", func(ctx context.Context) { LogError(ctx, "save failed", nil) }, "ERROR", "save failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, buf := captureContext(&slog.HandlerOptions{Level: slog.LevelDebug})

			tt.log(ctx)

			entry := decodeEntry(t, buf)
			if entry["level"] != tt.level || entry["msg"] != tt.msg {
				t.Fatalf("unexpected entry %v", entry)
			}
			if _, ok := entry["error"]; ok {
				t.Fatal("expected no error attribute")
			}
		})
	}
}

func TestLogError_WithError(t *testing.T) {
	ctx, buf := captureContext(nil)

	LogError(ctx, "update item position failed", errors.New("disk full"), slog.Int("position", 3))

	entry := decodeEntry(t, buf)
	if entry["error"] != "disk full" {
		t.Fatalf("expected error 'disk full', got %v", entry["error"])
	}
	if entry["position"] != float64(3) {
		t.Fatalf("expected position 3, got %v", entry["position"])
	}
}

func TestWith_AddsAttributes(t *testing.T) {
	ctx, buf := captureContext(nil)

	ctx = With(ctx, slog.String("item_id", "7"))
	LogInfo(ctx, "reorder")

	if entry := decodeEntry(t, buf); entry["item_id"] != "7" {
		t.Fatalf("expected item_id 7, got %v", entry["item_id"])
	}
}

func TestWith_NoAttrsKeepsContext(t *testing.T) {
	ctx := context.Background()
	if With(ctx) != ctx {
		t.Fatal("expected the same context when no attrs are given")
	}
}
