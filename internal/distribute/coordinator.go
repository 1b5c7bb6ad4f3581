package distribute

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"reelcast/internal/logging"
)

// Outcome is the recorded result of one destination upload.
type Outcome struct {
	Destination string `json:"destination"`
	Success     bool   `json:"success"`
	ElapsedMS   int64  `json:"elapsed_ms"`
	Error       string `json:"error,omitempty"`
}

// Coordinator runs upload jobs concurrently, never more than its limit at
// once. Failures are isolated per destination.
type Coordinator struct {
	limit  int
	logger *slog.Logger
}

// NewCoordinator creates a coordinator with the given concurrency limit. A
// limit below one falls back to two.
func NewCoordinator(limit int, logger *slog.Logger) *Coordinator {
	if limit < 1 {
		limit = 2
	}
	return &Coordinator{limit: limit, logger: logging.NewComponentLogger(logger, "distribute")}
}

// Distribute runs every job and returns outcomes in the same order as jobs.
// A failed or panicking handler only marks its own outcome.
func (c *Coordinator) Distribute(ctx context.Context, jobs []Job) []Outcome {
	outcomes := make([]Outcome, len(jobs))
	sem := make(chan struct{}, c.limit)
	var wg sync.WaitGroup

	for i, job := range jobs {
		wg.Add(1)
		go func(i int, job Job) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			outcomes[i] = c.runJob(ctx, job)
		}(i, job)
	}
	wg.Wait()
	return outcomes
}

func (c *Coordinator) runJob(ctx context.Context, job Job) (outcome Outcome) {
	name := job.Handler.Name()
	outcome = Outcome{Destination: name}
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			outcome.Success = false
			outcome.Error = fmt.Sprintf("upload panicked: %v", r)
		}
		outcome.ElapsedMS = time.Since(start).Milliseconds()
		if outcome.Success {
			c.logger.Info("upload finished",
				logging.String(logging.FieldDestination, name),
				logging.Int64("elapsed_ms", outcome.ElapsedMS))
		} else {
			c.logger.Warn("upload failed",
				logging.String(logging.FieldDestination, name),
				logging.String("reason", outcome.Error))
		}
	}()

	if err := ctx.Err(); err != nil {
		outcome.Error = err.Error()
		return outcome
	}
	if err := job.Handler.Upload(ctx, job.Request); err != nil {
		outcome.Error = err.Error()
		return outcome
	}
	outcome.Success = true
	return outcome
}

// AllSucceeded reports whether every outcome succeeded. An empty slice counts
// as failure since nothing was delivered.
func AllSucceeded(outcomes []Outcome) bool {
	if len(outcomes) == 0 {
		return false
	}
	for _, o := range outcomes {
		if !o.Success {
			return false
		}
	}
	return true
}

// SaveResults persists outcomes as JSON at path.
func SaveResults(path string, outcomes []Outcome) error {
	data, err := json.MarshalIndent(outcomes, "", "  ")
	if err != nil {
		return fmt.Errorf("encode upload results: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write upload results: %w", err)
	}
	return nil
}
