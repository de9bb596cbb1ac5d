package observe

import (
	"bytes"
	"context"
	"errors"
	"testing"
)

func TestMiddleware_WrapSuccess(t *testing.T) {
	var buf bytes.Buffer
	mw := NewMiddleware(newNoopTracer(), &noopMetrics{}, NewLoggerWithWriter("debug", &buf))

	meta := OpMeta{Name: "loyalty.object.create", Provider: "google-wallet"}
	calls := 0
	fn := mw.Wrap(meta, func(ctx context.Context) error {
		calls++
		return nil
	})

	if err := fn(context.Background()); err != nil {
		t.Fatalf("wrapped call error = %v, want nil", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}

	entries := decodeLines(t, &buf)
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	if entries[0]["msg"] != "upstream call completed" {
		t.Errorf("msg = %v, want %q", entries[0]["msg"], "upstream call completed")
	}
	if entries[0]["op.id"] != "google-wallet.loyalty.object.create" {
		t.Errorf("op.id = %v, want %q", entries[0]["op.id"], "google-wallet.loyalty.object.create")
	}
	if _, ok := entries[0]["duration_ms"]; !ok {
		t.Error("entry missing duration_ms")
	}
}

func TestMiddleware_WrapError(t *testing.T) {
	var buf bytes.Buffer
	mw := NewMiddleware(newNoopTracer(), &noopMetrics{}, NewLoggerWithWriter("debug", &buf))

	wantErr := errors.New("quota exceeded")
	fn := mw.Wrap(OpMeta{Name: "loyalty.points.add"}, func(ctx context.Context) error {
		return wantErr
	})

	if err := fn(context.Background()); !errors.Is(err, wantErr) {
		t.Fatalf("wrapped call error = %v, want %v", err, wantErr)
	}

	entries := decodeLines(t, &buf)
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	if entries[0]["level"] != "error" || entries[0]["msg"] != "upstream call failed" {
		t.Errorf("entry = %v/%v, want error/upstream call failed", entries[0]["level"], entries[0]["msg"])
	}
	if entries[0]["error"] != "quota exceeded" {
		t.Errorf("error field = %v, want %q", entries[0]["error"], "quota exceeded")
	}
}

func TestMiddlewareFromObserver(t *testing.T) {
	var buf bytes.Buffer
	mw, err := MiddlewareFromObserver(newTestObserver(&buf))
	if err != nil {
		t.Fatalf("MiddlewareFromObserver() error = %v", err)
	}
	if mw == nil {
		t.Fatal("MiddlewareFromObserver() returned nil middleware")
	}

	fn := mw.Wrap(OpMeta{Name: "loyalty.class.get"}, func(ctx context.Context) error {
		return nil
	})
	if err := fn(context.Background()); err != nil {
		t.Fatalf("wrapped call error = %v, want nil", err)
	}
}

func TestMiddlewareFromObserver_Nil(t *testing.T) {
	if _, err := MiddlewareFromObserver(nil); !errors.Is(err, ErrNilObserver) {
		t.Errorf("MiddlewareFromObserver(nil) error = %v, want ErrNilObserver", err)
	}
}
