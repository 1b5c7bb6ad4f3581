package history

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"reelcast/internal/workflow"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"), nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRunLifecycleRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	run := workflow.NewRunContext("run-42", []string{"https://example.com/v"}, workflow.Options{}, "/tmp/run-42")
	if err := store.RecordRunStart(ctx, run, "full"); err != nil {
		t.Fatalf("RecordRunStart: %v", err)
	}
	if err := store.RecordStep(ctx, run.RunID, workflow.StepResult{
		StepID: workflow.StepAcquire, Success: true, Critical: true, Elapsed: 1500 * time.Millisecond,
	}); err != nil {
		t.Fatalf("RecordStep: %v", err)
	}
	if err := store.RecordStep(ctx, run.RunID, workflow.StepResult{
		StepID: workflow.StepUpload, Success: false, Critical: true,
		Elapsed: 2 * time.Second, Err: errors.New("api down"),
	}); err != nil {
		t.Fatalf("RecordStep: %v", err)
	}
	if err := store.FinishRun(ctx, run.RunID, workflow.StatusFailed, errors.New("api down")); err != nil {
		t.Fatalf("FinishRun: %v", err)
	}

	runs, err := store.RecentRuns(ctx, 10)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	rec := runs[0]
	if rec.RunID != "run-42" || rec.Preset != "full" || rec.Status != "failed" {
		t.Fatalf("unexpected record %+v", rec)
	}
	if rec.Error != "api down" {
		t.Fatalf("error %q", rec.Error)
	}
	if rec.FinishedAt.IsZero() {
		t.Fatal("finished_at not recorded")
	}

	steps, err := store.RunSteps(ctx, run.RunID)
	if err != nil {
		t.Fatalf("RunSteps: %v", err)
	}
	if len(steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(steps))
	}
	if steps[0].StepID != workflow.StepAcquire || !steps[0].Success {
		t.Fatalf("first step %+v", steps[0])
	}
	if steps[1].Success || steps[1].Error != "api down" {
		t.Fatalf("second step %+v", steps[1])
	}
}

func TestRecentRunsNewestFirst(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for i, id := range []string{"old", "new"} {
		run := workflow.NewRunContext(id, []string{"u"}, workflow.Options{}, "/tmp/"+id)
		run.StartedAt = time.Now().Add(time.Duration(i) * time.Hour)
		if err := store.RecordRunStart(ctx, run, "minimal"); err != nil {
			t.Fatalf("RecordRunStart: %v", err)
		}
	}

	runs, err := store.RecentRuns(ctx, 1)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 1 || runs[0].RunID != "new" {
		t.Fatalf("expected newest run, got %+v", runs)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	first, err := Open(path, nil)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	first.Close()

	second, err := Open(path, nil)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	second.Close()
}
