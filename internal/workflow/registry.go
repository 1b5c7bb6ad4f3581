package workflow

import (
	"context"
	"fmt"
	"sort"
	"time"

	"reelcast/internal/services"
)

// Step identifiers shared by the registry, presets, and step handlers.
const (
	StepAcquire   = "acquire"
	StepConcat    = "concat"
	StepSubtitle  = "subtitle"
	StepTranslate = "translate"
	StepEmbed     = "embed"
	StepWatermark = "watermark"
	StepSplit     = "split"
	StepUpload    = "upload"
)

// Handler executes one step against the run's shared state.
type Handler func(ctx context.Context, run *RunContext) error

// Definition describes a registered step.
type Definition struct {
	ID      string
	Handler Handler
	// Timeout bounds a single execution. Zero means no per-step limit.
	Timeout time.Duration
	// Critical steps abort the run on failure; others degrade it.
	Critical bool
	// DependsOn lists step IDs that must run earlier in the same plan.
	DependsOn []string
}

// Registry holds the known step definitions.
type Registry struct {
	defs map[string]Definition
}

// NewRegistry creates an empty step registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]Definition)}
}

// Register adds a step definition. Duplicate IDs and nil handlers are
// configuration errors.
func (r *Registry) Register(def Definition) error {
	if def.ID == "" {
		return services.Wrap(services.ErrConfiguration, "", "register", "step id must not be empty", nil)
	}
	if def.Handler == nil {
		return services.Wrap(services.ErrConfiguration, def.ID, "register", "step handler must not be nil", nil)
	}
	if _, exists := r.defs[def.ID]; exists {
		return services.Wrap(services.ErrConfiguration, def.ID, "register", "step already registered", nil)
	}
	r.defs[def.ID] = def
	return nil
}

// MustRegister registers every definition, panicking on configuration errors.
// Intended for the static step set assembled at startup.
func (r *Registry) MustRegister(defs ...Definition) {
	for _, def := range defs {
		if err := r.Register(def); err != nil {
			panic(err)
		}
	}
}

// Known returns the registered step IDs, sorted.
func (r *Registry) Known() []string {
	ids := make([]string, 0, len(r.defs))
	for id := range r.defs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Resolve maps step IDs to their definitions, preserving order.
func (r *Registry) Resolve(ids []string) ([]Definition, error) {
	defs := make([]Definition, 0, len(ids))
	for _, id := range ids {
		def, ok := r.defs[id]
		if !ok {
			return nil, services.Wrap(services.ErrNotFound, id, "resolve", "unknown step", nil)
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// ValidatePlan checks a resolved plan for duplicates and dependency order:
// every dependency must appear earlier in the same plan.
func ValidatePlan(defs []Definition) error {
	seen := make(map[string]bool, len(defs))
	for _, def := range defs {
		if seen[def.ID] {
			return services.Wrap(services.ErrValidation, def.ID, "plan", "step listed twice", nil)
		}
		for _, dep := range def.DependsOn {
			if !seen[dep] {
				return services.Wrap(services.ErrValidation, def.ID, "plan",
					fmt.Sprintf("requires %s earlier in the plan", dep), nil)
			}
		}
		seen[def.ID] = true
	}
	return nil
}

var presets = map[string][]string{
	"minimal":       {StepAcquire, StepUpload},
	"subtitle_only": {StepAcquire, StepSubtitle, StepTranslate, StepEmbed},
	"process_only":  {StepAcquire, StepConcat, StepSubtitle, StepTranslate, StepEmbed, StepWatermark, StepSplit},
	"full":          {StepAcquire, StepConcat, StepSubtitle, StepTranslate, StepEmbed, StepWatermark, StepSplit, StepUpload},
}

// DefaultPreset is used when the caller does not name one.
const DefaultPreset = "full"

// Presets returns the known preset names, sorted.
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PresetSteps returns the ordered step IDs for a preset.
func PresetSteps(name string) ([]string, error) {
	if name == "" {
		name = DefaultPreset
	}
	steps, ok := presets[name]
	if !ok {
		return nil, services.Wrap(services.ErrNotFound, "", "preset", fmt.Sprintf("unknown preset %q", name), nil)
	}
	return append([]string(nil), steps...), nil
}
