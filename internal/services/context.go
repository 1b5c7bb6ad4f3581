package services

import "context"

type contextKey string

const (
	runIDKey  contextKey = "run_id"
	stepKey   contextKey = "step"
	presetKey contextKey = "preset"
)

// WithRunID annotates context with the workflow run identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the run identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(runIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithStep annotates context with the workflow step name.
func WithStep(ctx context.Context, step string) context.Context {
	if step == "" {
		return ctx
	}
	return context.WithValue(ctx, stepKey, step)
}

// StepFromContext returns the step name if present.
func StepFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(stepKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithPreset annotates context with the workflow preset identifier.
func WithPreset(ctx context.Context, preset string) context.Context {
	if preset == "" {
		return ctx
	}
	return context.WithValue(ctx, presetKey, preset)
}

// PresetFromContext returns the preset identifier if present.
func PresetFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(presetKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
