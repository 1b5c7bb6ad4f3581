package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"reelcast/internal/logging"
	"reelcast/internal/services"
)

// StepResult is the recorded outcome of a single step execution.
type StepResult struct {
	StepID   string
	Success  bool
	Critical bool
	Elapsed  time.Duration
	Err      error
}

// Executor runs step handlers with timeout enforcement and structured logging.
type Executor struct {
	logger *slog.Logger
}

// NewExecutor creates a step executor. A nil logger disables logging.
func NewExecutor(logger *slog.Logger) *Executor {
	return &Executor{logger: logging.NewComponentLogger(logger, "executor")}
}

// Execute runs one step against the run context. The handler gets a context
// annotated with the step name and bounded by the definition's timeout, but
// shielded from the caller's cancellation: an in-flight step finishes or
// times out, and the manager observes cancellation only between steps. A
// deadline overrun is reported as a timeout error, and a handler panic as a
// failed result rather than a crashed run.
func (e *Executor) Execute(ctx context.Context, def Definition, run *RunContext) StepResult {
	stepCtx := services.WithStep(context.WithoutCancel(ctx), def.ID)
	cancel := context.CancelFunc(func() {})
	if def.Timeout > 0 {
		stepCtx, cancel = context.WithTimeout(stepCtx, def.Timeout)
	}
	defer cancel()

	e.logger.Info("step started", logging.String(logging.FieldStep, def.ID),
		logging.String(logging.FieldRunID, run.RunID))

	start := time.Now()
	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- services.Wrap(nil, def.ID, "execute", fmt.Sprintf("step panicked: %v", r), nil)
			}
		}()
		done <- def.Handler(stepCtx, run)
	}()

	var err error
	select {
	case err = <-done:
	case <-stepCtx.Done():
		// Prefer a handler result that raced with the deadline.
		select {
		case err = <-done:
		default:
			if def.Timeout > 0 && stepCtx.Err() == context.DeadlineExceeded {
				err = services.Wrap(services.ErrTimeout, def.ID, "execute",
					fmt.Sprintf("exceeded %s", def.Timeout), nil)
			} else {
				err = stepCtx.Err()
			}
		}
	}

	result := StepResult{
		StepID:   def.ID,
		Success:  err == nil,
		Critical: def.Critical,
		Elapsed:  time.Since(start),
		Err:      err,
	}
	if err != nil {
		e.logger.Warn("step failed", logging.String(logging.FieldStep, def.ID),
			logging.String(logging.FieldRunID, run.RunID),
			logging.Duration("elapsed", result.Elapsed), logging.Error(err))
	} else {
		e.logger.Info("step finished", logging.String(logging.FieldStep, def.ID),
			logging.String(logging.FieldRunID, run.RunID),
			logging.Duration("elapsed", result.Elapsed))
	}
	return result
}
