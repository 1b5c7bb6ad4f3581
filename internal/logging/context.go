package logging

import (
	"context"
	"log/slog"

	"reelcast/internal/services"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldRunID is the standardized structured logging key for workflow run identifiers.
	FieldRunID = "run_id"
	// FieldStep is the standardized structured logging key for workflow step names.
	FieldStep = "step"
	// FieldPreset is the standardized structured logging key for workflow preset identifiers.
	FieldPreset = "preset"
	// FieldDestination is the standardized structured logging key for upload destinations.
	FieldDestination = "destination"
	// FieldEventType tags log lines with a machine-readable event class.
	FieldEventType = "event_type"
	// FieldErrorHint carries a short operator-facing remediation hint.
	FieldErrorHint = "error_hint"
)

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 3)
	if id, ok := services.RunIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldRunID, id))
	}
	if step, ok := services.StepFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldStep, step))
	}
	if preset, ok := services.PresetFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldPreset, preset))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(attrsToArgs(fields)...)
}
