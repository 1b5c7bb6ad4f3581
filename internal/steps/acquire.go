package steps

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"reelcast/internal/fileutil"
	"reelcast/internal/logging"
	"reelcast/internal/services"
	"reelcast/internal/workflow"
)

// Acquire materializes every source in the run's downloads directory: remote
// URLs go through the downloader, local paths are verified and staged with a
// copy. With a single source the result becomes the primary video
// immediately; multiple sources wait for concatenation.
func (s *Set) Acquire(ctx context.Context, run *workflow.RunContext) error {
	destDir := filepath.Join(run.WorkDir, "downloads")
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return services.Wrap(services.ErrConfiguration, workflow.StepAcquire, "acquire", "create downloads directory", err)
	}

	paths := make([]string, 0, len(run.Sources))
	for _, source := range run.Sources {
		if isRemote(source) {
			path, err := s.downloader.Download(ctx, source, destDir)
			if err != nil {
				return services.Wrap(services.ErrExternalTool, workflow.StepAcquire, "download", source, err)
			}
			paths = append(paths, path)
			continue
		}
		staged, err := stageLocalSource(source, destDir)
		if err != nil {
			return err
		}
		paths = append(paths, staged)
	}

	if len(paths) == 1 {
		run.SetVideo(paths[0])
	}
	s.logger.Info("sources acquired",
		logging.String(logging.FieldRunID, run.RunID),
		logging.Int("files", len(paths)))
	return nil
}

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// stageLocalSource verifies a local path and copies it into destDir so the
// run's working tree is self-contained.
func stageLocalSource(source, destDir string) (string, error) {
	info, err := os.Stat(source)
	if err != nil {
		return "", services.Wrap(services.ErrNotFound, workflow.StepAcquire, "stage", source, err)
	}
	if info.IsDir() {
		return "", services.Wrap(services.ErrValidation, workflow.StepAcquire, "stage",
			source+" is a directory, not a video file", nil)
	}

	staged := filepath.Join(destDir, filepath.Base(source))
	if err := fileutil.CopyFile(source, staged); err != nil {
		return "", services.Wrap(services.ErrConfiguration, workflow.StepAcquire, "stage", "copy local source", err)
	}
	return staged, nil
}
