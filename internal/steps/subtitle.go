package steps

import (
	"context"
	"path/filepath"
	"strings"

	"reelcast/internal/logging"
	"reelcast/internal/services"
	"reelcast/internal/workflow"
)

// Subtitle extracts audio from the current video and transcribes it to SRT.
func (s *Set) Subtitle(ctx context.Context, run *workflow.RunContext) error {
	video := run.Video()
	if video == "" {
		s.logger.Warn("subtitle skipped, no video available",
			logging.String(logging.FieldRunID, run.RunID))
		return nil
	}

	stem := strings.TrimSuffix(filepath.Base(video), filepath.Ext(video))
	audioPath := filepath.Join(run.WorkDir, "audio", stem+".wav")
	if err := s.media.ExtractAudio(ctx, video, audioPath); err != nil {
		return services.Wrap(services.ErrExternalTool, workflow.StepSubtitle, "extract", "extract audio", err)
	}

	srt, err := s.transcriber.Transcribe(ctx, audioPath, filepath.Join(run.WorkDir, "subtitles"))
	if err != nil {
		return services.Wrap(services.ErrExternalTool, workflow.StepSubtitle, "transcribe", "generate subtitles", err)
	}
	run.AddSubtitle(srt)
	run.AddOutput(srt, workflow.ArtifactSubtitle)
	return nil
}

// Translate renders the latest subtitle file into the target language. With
// no subtitles available the step skips.
func (s *Set) Translate(ctx context.Context, run *workflow.RunContext) error {
	source := run.LatestSubtitle()
	if source == "" {
		s.logger.Warn("translate skipped, no subtitles available",
			logging.String(logging.FieldRunID, run.RunID))
		return nil
	}

	target := s.cfg.Processing.TargetLanguage
	output := strings.TrimSuffix(source, ".srt") + "." + target + ".srt"
	if err := s.translator.TranslateSRT(ctx, source, output); err != nil {
		return services.Wrap(services.ErrTransient, workflow.StepTranslate, "translate", "translate subtitles", err)
	}
	run.AddSubtitle(output)
	run.AddOutput(output, workflow.ArtifactSubtitle)
	return nil
}

// Embed burns the latest subtitle file into the current video. Without
// subtitles the step skips.
func (s *Set) Embed(ctx context.Context, run *workflow.RunContext) error {
	subtitle := run.LatestSubtitle()
	if subtitle == "" {
		s.logger.Warn("embed skipped, no subtitles available",
			logging.String(logging.FieldRunID, run.RunID))
		return nil
	}
	video := run.Video()
	if video == "" {
		s.logger.Warn("embed skipped, no video available",
			logging.String(logging.FieldRunID, run.RunID))
		return nil
	}

	output := filepath.Join(run.WorkDir, "embedded.mp4")
	if err := s.media.EmbedSubtitles(ctx, video, subtitle, output, s.cfg.Processing.SubtitleFontSize); err != nil {
		return services.Wrap(services.ErrExternalTool, workflow.StepEmbed, "embed", "burn subtitles", err)
	}
	run.SetVideo(output)
	return nil
}
