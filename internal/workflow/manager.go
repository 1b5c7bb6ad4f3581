package workflow

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"reelcast/internal/config"
	"reelcast/internal/logging"
	"reelcast/internal/services"
)

// HistoryRecorder persists run lifecycle events. Recording failures degrade
// to log warnings; they never fail a run.
type HistoryRecorder interface {
	RecordRunStart(ctx context.Context, run *RunContext, preset string) error
	RecordStep(ctx context.Context, runID string, result StepResult) error
	FinishRun(ctx context.Context, runID string, status Status, runErr error) error
}

// Manager resolves a preset into a plan and drives it step by step.
type Manager struct {
	cfg      *config.Config
	registry *Registry
	executor *Executor
	history  HistoryRecorder
	logger   *slog.Logger
}

// NewManager creates a workflow manager. history may be nil.
func NewManager(cfg *config.Config, registry *Registry, executor *Executor, history HistoryRecorder, logger *slog.Logger) *Manager {
	return &Manager{
		cfg:      cfg,
		registry: registry,
		executor: executor,
		history:  history,
		logger:   logging.NewComponentLogger(logger, "workflow"),
	}
}

// Run executes the preset named in opts against the given sources. It returns
// the run context in all cases so callers can inspect partial results; the
// error is non-nil when the run did not complete.
func (m *Manager) Run(ctx context.Context, sources []string, opts Options) (*RunContext, error) {
	preset := opts.Preset
	if preset == "" {
		preset = DefaultPreset
	}

	stepIDs, err := PresetSteps(preset)
	if err != nil {
		return nil, err
	}
	plan, err := m.registry.Resolve(stepIDs)
	if err != nil {
		return nil, err
	}
	if err := ValidatePlan(plan); err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return nil, services.Wrap(services.ErrValidation, "", "run", "at least one source is required", nil)
	}
	plan = m.applyTimeouts(plan)

	runID := uuid.NewString()
	workDir := filepath.Join(m.cfg.Paths.WorkDir, runID)
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "", "run", "create work directory", err)
	}

	run := NewRunContext(runID, sources, opts, workDir)
	ctx = services.WithRunID(ctx, runID)
	ctx = services.WithPreset(ctx, preset)

	m.logger.Info("run started",
		logging.String(logging.FieldRunID, runID),
		logging.String(logging.FieldPreset, preset),
		logging.Int("steps", len(plan)),
		logging.Int("sources", len(sources)))

	run.MarkRunning()
	m.recordStart(ctx, run, preset)

	for _, def := range plan {
		if ctx.Err() != nil {
			run.MarkCancelled()
			m.finish(ctx, run)
			return run, ctx.Err()
		}

		result := m.executor.Execute(ctx, def, run)
		run.RecordResult(result)
		m.recordStep(ctx, run.RunID, result)

		if result.Err == nil {
			continue
		}
		if def.Critical {
			run.MarkFailed(result.Err)
			m.finish(ctx, run)
			return run, result.Err
		}
		m.logger.Warn("continuing after non-critical step failure",
			logging.String(logging.FieldRunID, run.RunID),
			logging.String(logging.FieldStep, def.ID),
			logging.Error(result.Err))
	}

	run.MarkCompleted()
	m.finish(ctx, run)
	return run, nil
}

// applyTimeouts overlays configured per-step timeouts on the plan defaults.
func (m *Manager) applyTimeouts(plan []Definition) []Definition {
	out := make([]Definition, len(plan))
	copy(out, plan)
	for i := range out {
		var override int
		switch out[i].ID {
		case StepAcquire:
			override = m.cfg.Workflow.AcquireTimeout
		case StepSubtitle:
			override = m.cfg.Workflow.SubtitleTimeout
		case StepUpload:
			override = m.cfg.Workflow.UploadTimeout
		default:
			override = m.cfg.Workflow.StepTimeout
		}
		if override > 0 {
			out[i].Timeout = time.Duration(override) * time.Second
		}
	}
	return out
}

func (m *Manager) recordStart(ctx context.Context, run *RunContext, preset string) {
	if m.history == nil {
		return
	}
	if err := m.history.RecordRunStart(ctx, run, preset); err != nil {
		m.logger.Warn("history record failed", logging.String(logging.FieldRunID, run.RunID), logging.Error(err))
	}
}

func (m *Manager) recordStep(ctx context.Context, runID string, result StepResult) {
	if m.history == nil {
		return
	}
	if err := m.history.RecordStep(ctx, runID, result); err != nil {
		m.logger.Warn("history record failed", logging.String(logging.FieldRunID, runID), logging.Error(err))
	}
}

func (m *Manager) finish(ctx context.Context, run *RunContext) {
	m.logger.Info("run finished",
		logging.String(logging.FieldRunID, run.RunID),
		logging.String("status", run.Status().String()),
		logging.Duration("elapsed", run.Elapsed()))
	if m.history == nil {
		return
	}
	if err := m.history.FinishRun(ctx, run.RunID, run.Status(), run.Err()); err != nil {
		m.logger.Warn("history record failed", logging.String(logging.FieldRunID, run.RunID), logging.Error(err))
	}
}
