package steps

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"reelcast/internal/config"
	"reelcast/internal/distribute"
	"reelcast/internal/logging"
	"reelcast/internal/services"
	"reelcast/internal/workflow"
)

// Upload distributes the run's deliverables to every enabled destination.
// Segments produced by splitting take precedence over the whole video. The
// step succeeds once every destination has an outcome; per-destination
// failures live in the persisted record and the report, never in the run's
// success flag.
func (s *Set) Upload(ctx context.Context, run *workflow.RunContext) error {
	videos := s.deliverables(run)
	if len(videos) == 0 {
		return services.Wrap(services.ErrValidation, workflow.StepUpload, "prepare", "nothing to upload", nil)
	}

	platforms := s.platforms(run)
	if len(platforms) == 0 {
		return services.Wrap(services.ErrConfiguration, workflow.StepUpload, "prepare", "no destinations enabled", nil)
	}

	var jobs []distribute.Job
	for _, video := range videos {
		title := distribute.TitleFromFile(video)
		for _, platform := range platforms {
			handler, caption, err := s.destination(platform, title, run.Options.UploadProfile)
			if err != nil {
				return err
			}
			jobs = append(jobs, distribute.Job{
				Handler: handler,
				Request: distribute.Request{
					VideoPath: video,
					Caption:   caption,
					Profile:   run.Options.UploadProfile,
				},
			})
		}
	}

	outcomes := s.uploader.Distribute(ctx, jobs)

	resultsPath := filepath.Join(run.WorkDir, "upload_results.json")
	if err := distribute.SaveResults(resultsPath, outcomes); err != nil {
		s.logger.Warn("could not persist upload results",
			logging.String(logging.FieldRunID, run.RunID), logging.Error(err))
	} else {
		run.AddOutput(resultsPath, workflow.ArtifactReport)
	}

	if !distribute.AllSucceeded(outcomes) {
		var failed []string
		for _, outcome := range outcomes {
			if !outcome.Success {
				failed = append(failed, outcome.Destination)
			}
		}
		s.logger.Warn("some destinations failed",
			logging.String(logging.FieldRunID, run.RunID),
			logging.String("destinations", strings.Join(failed, ", ")))
	}
	return nil
}

// deliverables returns the files to upload: split segments when present,
// otherwise the current primary video.
func (s *Set) deliverables(run *workflow.RunContext) []string {
	var segments []string
	for _, output := range run.Outputs() {
		if output.Kind == workflow.ArtifactSegment {
			segments = append(segments, output.Path)
		}
	}
	if len(segments) > 0 {
		return segments
	}
	if video := run.Video(); video != "" {
		return []string{video}
	}
	return nil
}

// destination builds the handler and rendered caption for a platform name.
func (s *Set) destination(platform, title, profile string) (distribute.Handler, string, error) {
	switch platform {
	case "telegram":
		caption := renderFor(s.cfg.Platforms.Telegram, title)
		return distribute.NewTelegramHandler(s.credentials.TelegramBotToken, s.credentials.TelegramChatID), caption, nil
	case "tiktok":
		caption := renderFor(s.cfg.Platforms.TikTok.PlatformCaption, title)
		profileDir := s.cfg.Platforms.TikTok.ProfileDir
		return distribute.NewTikTokHandler(s.cfg.Tools.TikTokUpload, profileDir), caption, nil
	default:
		return nil, "", services.Wrap(services.ErrValidation, workflow.StepUpload, "prepare",
			fmt.Sprintf("unknown destination %q", platform), nil)
	}
}

func renderFor(pc config.PlatformCaption, title string) string {
	return distribute.RenderCaption(pc.CaptionTemplate, title, pc.Hashtags, pc.HashtagLimit)
}
