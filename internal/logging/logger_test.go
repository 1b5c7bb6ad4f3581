package logging

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"reelcast/internal/services"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "reelcast.log")
	logger, err := New(Options{Level: "info", Format: "json", OutputPaths: []string{path}})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	logger.Info("run started", String(FieldRunID, "run-1"))

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), `"run_id":"run-1"`) {
		t.Fatalf("expected run_id field in output, got %q", string(data))
	}
	if !strings.Contains(string(data), `"level":"info"`) {
		t.Fatalf("expected lowercase level key, got %q", string(data))
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestConsoleHandlerSortsFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "console.log")
	logger, err := New(Options{Format: "console", OutputPaths: []string{path}})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	logger.Info("step completed", String("zeta", "1"), String("alpha", "2"))

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	line := string(data)
	if strings.Index(line, "alpha=") > strings.Index(line, "zeta=") {
		t.Fatalf("expected deterministic field order, got %q", line)
	}
}

func TestWithContextAddsFields(t *testing.T) {
	ctx := services.WithRunID(context.Background(), "run-42")
	ctx = services.WithStep(ctx, "subtitle")

	var captured []slog.Attr
	base := slog.New(captureHandler{attrs: &captured})
	WithContext(ctx, base).Info("hello")

	keys := map[string]bool{}
	for _, attr := range captured {
		keys[attr.Key] = true
	}
	if !keys[FieldRunID] || !keys[FieldStep] {
		t.Fatalf("expected run and step fields, got %v", captured)
	}
}

type captureHandler struct {
	attrs *[]slog.Attr
}

func (captureHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h captureHandler) Handle(_ context.Context, record slog.Record) error {
	record.Attrs(func(attr slog.Attr) bool {
		*h.attrs = append(*h.attrs, attr)
		return true
	})
	return nil
}

func (h captureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	*h.attrs = append(*h.attrs, attrs...)
	return h
}

func (h captureHandler) WithGroup(string) slog.Handler { return h }
