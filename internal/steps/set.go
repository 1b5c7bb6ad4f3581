package steps

import (
	"log/slog"
	"time"

	"reelcast/internal/config"
	"reelcast/internal/distribute"
	"reelcast/internal/logging"
	"reelcast/internal/workflow"
)

// Default per-step execution limits. Configuration overrides them per run.
const (
	acquireTimeout  = 3600 * time.Second
	subtitleTimeout = 1800 * time.Second
	uploadTimeout   = 1800 * time.Second
	defaultTimeout  = 900 * time.Second
)

// Set wires the collaborator services into step handlers.
type Set struct {
	cfg         *config.Config
	logger      *slog.Logger
	downloader  Downloader
	media       Media
	transcriber Transcriber
	translator  SubtitleTranslator
	uploader    Uploader
	credentials distribute.Credentials
}

// New builds the step set around the given collaborators.
func New(cfg *config.Config, logger *slog.Logger, downloader Downloader, media Media, transcriber Transcriber, translator SubtitleTranslator, uploader Uploader, creds distribute.Credentials) *Set {
	return &Set{
		cfg:         cfg,
		logger:      logging.NewComponentLogger(logger, "steps"),
		downloader:  downloader,
		media:       media,
		transcriber: transcriber,
		translator:  translator,
		uploader:    uploader,
		credentials: creds,
	}
}

// Definitions returns every pipeline step ready for registration. Acquisition
// and upload are critical; the transformations degrade the run on failure.
func (s *Set) Definitions() []workflow.Definition {
	return []workflow.Definition{
		{
			ID:       workflow.StepAcquire,
			Handler:  s.Acquire,
			Timeout:  acquireTimeout,
			Critical: true,
		},
		{
			ID:        workflow.StepConcat,
			Handler:   s.Concat,
			Timeout:   defaultTimeout,
			DependsOn: []string{workflow.StepAcquire},
		},
		{
			ID:        workflow.StepSubtitle,
			Handler:   s.Subtitle,
			Timeout:   subtitleTimeout,
			DependsOn: []string{workflow.StepAcquire},
		},
		{
			ID:        workflow.StepTranslate,
			Handler:   s.Translate,
			Timeout:   defaultTimeout,
			DependsOn: []string{workflow.StepSubtitle},
		},
		{
			ID:        workflow.StepEmbed,
			Handler:   s.Embed,
			Timeout:   defaultTimeout,
			DependsOn: []string{workflow.StepSubtitle},
		},
		{
			ID:        workflow.StepWatermark,
			Handler:   s.Watermark,
			Timeout:   defaultTimeout,
			DependsOn: []string{workflow.StepAcquire},
		},
		{
			ID:        workflow.StepSplit,
			Handler:   s.Split,
			Timeout:   defaultTimeout,
			DependsOn: []string{workflow.StepAcquire},
		},
		{
			ID:        workflow.StepUpload,
			Handler:   s.Upload,
			Timeout:   uploadTimeout,
			Critical:  true,
			DependsOn: []string{workflow.StepAcquire},
		},
	}
}

// platforms returns the destinations for a run: the caller's override when
// present, otherwise the configured set.
func (s *Set) platforms(run *workflow.RunContext) []string {
	if len(run.Options.Platforms) > 0 {
		return run.Options.Platforms
	}
	return s.cfg.Platforms.Enabled
}

// splitDuration resolves the segment length for a run. Caller override wins,
// then configuration; with neither set, a tiktok destination implies the
// platform's preferred 180 second segments.
func (s *Set) splitDuration(run *workflow.RunContext) int {
	if run.Options.SplitDuration > 0 {
		return run.Options.SplitDuration
	}
	if s.cfg.Processing.SplitDuration > 0 {
		return s.cfg.Processing.SplitDuration
	}
	for _, platform := range s.platforms(run) {
		if platform == "tiktok" {
			return 180
		}
	}
	return 0
}
