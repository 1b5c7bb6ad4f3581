package workflow

import (
	"sync"
	"time"
)

// Options carries per-run overrides supplied by the caller.
type Options struct {
	// Preset names the step list to run. Empty means the full pipeline.
	Preset string
	// Platforms restricts upload destinations. Empty means the configured set.
	Platforms []string
	// SplitDuration overrides the segment length in seconds. Zero means
	// unset, letting platform strategy or configuration decide.
	SplitDuration int
	// UploadProfile selects a named browser profile for automation uploads.
	UploadProfile string
}

// ArtifactKind classifies run outputs.
type ArtifactKind string

const (
	ArtifactVideo    ArtifactKind = "video"
	ArtifactSubtitle ArtifactKind = "subtitle"
	ArtifactSegment  ArtifactKind = "segment"
	ArtifactReport   ArtifactKind = "report"
)

// OutputArtifact is a file a run produced that outlives the run.
type OutputArtifact struct {
	Path      string
	Kind      ArtifactKind
	CreatedAt time.Time
}

// RunContext is the shared state a run's steps read and write. Artifact and
// result mutation is serialized so the upload fan-out can record safely.
type RunContext struct {
	RunID     string
	Sources   []string
	Options   Options
	WorkDir   string
	StartedAt time.Time

	mu         sync.Mutex
	status     Status
	finishedAt time.Time
	video      string
	subtitles  []string
	outputs    []OutputArtifact
	results    []StepResult
	err        error
}

// NewRunContext creates a pending run for the given sources.
func NewRunContext(runID string, sources []string, opts Options, workDir string) *RunContext {
	return &RunContext{
		RunID:     runID,
		Sources:   append([]string(nil), sources...),
		Options:   opts,
		WorkDir:   workDir,
		StartedAt: time.Now(),
		status:    StatusPending,
	}
}

// Status returns the current lifecycle status.
func (r *RunContext) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// transition moves to next unless the run already reached a terminal status.
func (r *RunContext) transition(next Status) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.status.IsTerminal() {
		return false
	}
	r.status = next
	if next.IsTerminal() {
		r.finishedAt = time.Now()
	}
	return true
}

// MarkRunning moves a pending run into the running state.
func (r *RunContext) MarkRunning() bool { return r.transition(StatusRunning) }

// MarkCompleted finishes the run successfully.
func (r *RunContext) MarkCompleted() bool { return r.transition(StatusCompleted) }

// MarkCancelled finishes the run as cancelled.
func (r *RunContext) MarkCancelled() bool { return r.transition(StatusCancelled) }

// MarkFailed finishes the run with err. Only the first failure is kept.
func (r *RunContext) MarkFailed(err error) bool {
	if !r.transition(StatusFailed) {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err == nil {
		r.err = err
	}
	return true
}

// Err returns the failure recorded by MarkFailed, if any.
func (r *RunContext) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// FinishedAt returns when the run reached a terminal status.
func (r *RunContext) FinishedAt() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.finishedAt
}

// Elapsed returns the run duration so far, or the total once terminal.
func (r *RunContext) Elapsed() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.finishedAt.IsZero() {
		return r.finishedAt.Sub(r.StartedAt)
	}
	return time.Since(r.StartedAt)
}

// SetVideo records the current primary video artifact. Transformation steps
// replace it as they produce new renditions.
func (r *RunContext) SetVideo(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.video = path
}

// Video returns the current primary video artifact, empty before acquisition.
func (r *RunContext) Video() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.video
}

// AddSubtitle appends a subtitle artifact. Subtitles are append-only so the
// original transcription survives translation.
func (r *RunContext) AddSubtitle(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subtitles = append(r.subtitles, path)
}

// Subtitles returns all subtitle artifacts in creation order.
func (r *RunContext) Subtitles() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.subtitles...)
}

// LatestSubtitle returns the most recent subtitle artifact, empty when none.
func (r *RunContext) LatestSubtitle() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.subtitles) == 0 {
		return ""
	}
	return r.subtitles[len(r.subtitles)-1]
}

// AddOutput records a deliverable artifact.
func (r *RunContext) AddOutput(path string, kind ArtifactKind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outputs = append(r.outputs, OutputArtifact{Path: path, Kind: kind, CreatedAt: time.Now()})
}

// Outputs returns deliverable artifacts in creation order.
func (r *RunContext) Outputs() []OutputArtifact {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]OutputArtifact(nil), r.outputs...)
}

// RecordResult appends a step outcome in execution order.
func (r *RunContext) RecordResult(result StepResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, result)
}

// Results returns step outcomes in execution order.
func (r *RunContext) Results() []StepResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]StepResult(nil), r.results...)
}
