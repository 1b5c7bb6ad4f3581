package steps

import (
	"context"
	"path/filepath"
	"strings"

	"reelcast/internal/logging"
	"reelcast/internal/services"
	"reelcast/internal/workflow"
)

// Concat merges multiple downloaded files into one video. With a single
// source the step is a no-op because acquisition already set the video.
func (s *Set) Concat(ctx context.Context, run *workflow.RunContext) error {
	if len(run.Sources) <= 1 && run.Video() != "" {
		s.logger.Debug("concat skipped, single source",
			logging.String(logging.FieldRunID, run.RunID))
		return nil
	}

	output := filepath.Join(run.WorkDir, "combined.mp4")
	if err := s.media.Concat(ctx, filepath.Join(run.WorkDir, "downloads"), output); err != nil {
		return services.Wrap(services.ErrExternalTool, workflow.StepConcat, "merge", "concatenate downloads", err)
	}
	run.SetVideo(output)
	return nil
}

// Watermark burns the configured watermark text into the current video. With
// no text configured the step skips.
func (s *Set) Watermark(ctx context.Context, run *workflow.RunContext) error {
	text := strings.TrimSpace(s.cfg.Processing.WatermarkText)
	if text == "" {
		s.logger.Debug("watermark skipped, no text configured",
			logging.String(logging.FieldRunID, run.RunID))
		return nil
	}
	video := run.Video()
	if video == "" {
		s.logger.Warn("watermark skipped, no video available",
			logging.String(logging.FieldRunID, run.RunID))
		return nil
	}

	output := filepath.Join(run.WorkDir, "watermarked.mp4")
	if err := s.media.Watermark(ctx, video, output, text, s.cfg.Processing.WatermarkPosition); err != nil {
		return services.Wrap(services.ErrExternalTool, workflow.StepWatermark, "render", "burn watermark", err)
	}
	run.SetVideo(output)
	return nil
}

// Split cuts the current video into bounded segments when a split duration
// applies, recording each segment as an output artifact.
func (s *Set) Split(ctx context.Context, run *workflow.RunContext) error {
	seconds := s.splitDuration(run)
	if seconds <= 0 {
		s.logger.Debug("split skipped, no duration applies",
			logging.String(logging.FieldRunID, run.RunID))
		return nil
	}
	video := run.Video()
	if video == "" {
		s.logger.Warn("split skipped, no video available",
			logging.String(logging.FieldRunID, run.RunID))
		return nil
	}

	segments, err := s.media.Split(ctx, video, filepath.Join(run.WorkDir, "segments"), seconds)
	if err != nil {
		return services.Wrap(services.ErrExternalTool, workflow.StepSplit, "segment", "split video", err)
	}
	for _, segment := range segments {
		run.AddOutput(segment, workflow.ArtifactSegment)
	}
	s.logger.Info("video split",
		logging.String(logging.FieldRunID, run.RunID),
		logging.Int("segments", len(segments)),
		logging.Int("seconds", seconds))
	return nil
}
