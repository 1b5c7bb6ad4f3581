package workflow

import (
	"context"
	"errors"
	"sync"
	"testing"

	"reelcast/internal/config"
	"reelcast/internal/services"
)

type fakeHistory struct {
	mu       sync.Mutex
	starts   int
	steps    []StepResult
	finished Status
}

func (f *fakeHistory) RecordRunStart(ctx context.Context, run *RunContext, preset string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.starts++
	return nil
}

func (f *fakeHistory) RecordStep(ctx context.Context, runID string, result StepResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.steps = append(f.steps, result)
	return nil
}

func (f *fakeHistory) FinishRun(ctx context.Context, runID string, status Status, runErr error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.finished = status
	return nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Paths.WorkDir = t.TempDir()
	return &cfg
}

// testManager builds a manager whose registry executes the recorded handlers
// for the minimal preset steps plus the non-critical transformation steps.
func testManager(t *testing.T, handlers map[string]Handler, history HistoryRecorder) *Manager {
	t.Helper()
	registry := NewRegistry()
	for _, id := range []string{StepAcquire, StepConcat, StepSubtitle, StepTranslate, StepEmbed, StepWatermark, StepSplit, StepUpload} {
		handler := handlers[id]
		if handler == nil {
			handler = noopHandler
		}
		critical := id == StepAcquire || id == StepUpload
		if err := registry.Register(Definition{ID: id, Handler: handler, Critical: critical}); err != nil {
			t.Fatalf("register %s: %v", id, err)
		}
	}
	return NewManager(testConfig(t), registry, NewExecutor(nil), history, nil)
}

func TestRunCompletesAndRecordsResultsInOrder(t *testing.T) {
	var order []string
	var mu sync.Mutex
	record := func(id string) Handler {
		return func(ctx context.Context, run *RunContext) error {
			mu.Lock()
			order = append(order, id)
			mu.Unlock()
			return nil
		}
	}
	history := &fakeHistory{}
	m := testManager(t, map[string]Handler{
		StepAcquire: record(StepAcquire),
		StepUpload:  record(StepUpload),
	}, history)

	run, err := m.Run(context.Background(), []string{"https://example.com/v"}, Options{Preset: "minimal"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if run.Status() != StatusCompleted {
		t.Fatalf("expected completed, got %s", run.Status())
	}
	if len(order) != 2 || order[0] != StepAcquire || order[1] != StepUpload {
		t.Fatalf("unexpected execution order %v", order)
	}
	results := run.Results()
	if len(results) != 2 || results[0].StepID != StepAcquire || results[1].StepID != StepUpload {
		t.Fatalf("unexpected recorded results %v", results)
	}
	if history.starts != 1 || history.finished != StatusCompleted {
		t.Fatalf("history not recorded: %+v", history)
	}
}

func TestRunContinuesAfterNonCriticalFailure(t *testing.T) {
	uploaded := false
	m := testManager(t, map[string]Handler{
		StepWatermark: func(ctx context.Context, run *RunContext) error {
			return services.Wrap(services.ErrExternalTool, StepWatermark, "render", "drawtext failed", nil)
		},
		StepUpload: func(ctx context.Context, run *RunContext) error {
			uploaded = true
			return nil
		},
	}, nil)

	run, err := m.Run(context.Background(), []string{"https://example.com/v"}, Options{Preset: "full"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if run.Status() != StatusCompleted {
		t.Fatalf("expected completed despite degraded step, got %s", run.Status())
	}
	if !uploaded {
		t.Fatal("upload should still run after watermark failure")
	}
	report := BuildReport(run)
	if len(report.Degraded) != 1 || report.Degraded[0] != StepWatermark {
		t.Fatalf("expected watermark in degraded list, got %v", report.Degraded)
	}
}

func TestRunStopsOnCriticalFailure(t *testing.T) {
	boom := services.Wrap(services.ErrExternalTool, StepAcquire, "download", "unreachable", nil)
	ran := false
	history := &fakeHistory{}
	m := testManager(t, map[string]Handler{
		StepAcquire: func(ctx context.Context, run *RunContext) error { return boom },
		StepUpload:  func(ctx context.Context, run *RunContext) error { ran = true; return nil },
	}, history)

	run, err := m.Run(context.Background(), []string{"https://example.com/v"}, Options{Preset: "minimal"})
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected critical failure surfaced, got %v", err)
	}
	if run.Status() != StatusFailed {
		t.Fatalf("expected failed, got %s", run.Status())
	}
	if ran {
		t.Fatal("upload must not run after critical failure")
	}
	if len(run.Results()) != 1 {
		t.Fatalf("expected partial results preserved, got %v", run.Results())
	}
	if history.finished != StatusFailed {
		t.Fatalf("history status %s", history.finished)
	}
}

func TestRunContinuesAfterNonCriticalValidationFailure(t *testing.T) {
	m := testManager(t, map[string]Handler{
		StepConcat: func(ctx context.Context, run *RunContext) error {
			return services.Wrap(services.ErrValidation, StepConcat, "inputs", "no files", nil)
		},
	}, nil)

	run, err := m.Run(context.Background(), []string{"https://example.com/v"}, Options{Preset: "full"})
	if err != nil {
		t.Fatalf("non-critical failure must not abort the run: %v", err)
	}
	if run.Status() != StatusCompleted {
		t.Fatalf("expected completed, got %s", run.Status())
	}
	report := BuildReport(run)
	if len(report.Degraded) != 1 || report.Degraded[0] != StepConcat {
		t.Fatalf("expected concat in degraded list, got %v", report.Degraded)
	}
}

func TestRunCancellationBetweenSteps(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	m := testManager(t, map[string]Handler{
		StepAcquire: func(ctx context.Context, run *RunContext) error {
			cancel()
			return nil
		},
	}, nil)

	run, err := m.Run(ctx, []string{"https://example.com/v"}, Options{Preset: "minimal"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if run.Status() != StatusCancelled {
		t.Fatalf("expected cancelled, got %s", run.Status())
	}
	if len(run.Results()) != 1 {
		t.Fatalf("acquire result should be kept, got %v", run.Results())
	}
}

func TestRunRejectsEmptySources(t *testing.T) {
	m := testManager(t, nil, nil)
	if _, err := m.Run(context.Background(), nil, Options{Preset: "minimal"}); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRunUnknownPresetFailsFast(t *testing.T) {
	m := testManager(t, nil, nil)
	if _, err := m.Run(context.Background(), []string{"u"}, Options{Preset: "bogus"}); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
