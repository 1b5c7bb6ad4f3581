package ytdlp

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"reelcast/internal/fileutil"
)

// CommandRunner executes an external command. Tests inject a fake.
type CommandRunner func(ctx context.Context, name string, args ...string) error

// Service wraps the yt-dlp binary for source acquisition.
type Service struct {
	binary string
	runner CommandRunner
}

// NewService creates a downloader for the given yt-dlp binary.
func NewService(binary string) *Service {
	if binary == "" {
		binary = "yt-dlp"
	}
	return &Service{binary: binary}
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Service) WithCommandRunner(runner CommandRunner) {
	s.runner = runner
}

func (s *Service) run(ctx context.Context, args ...string) error {
	if s.runner != nil {
		return s.runner(ctx, s.binary, args...)
	}
	cmd := exec.CommandContext(ctx, s.binary, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", s.binary, err, strings.TrimSpace(string(output)))
	}
	return nil
}

// Download fetches the video at url into destDir and returns the path of the
// downloaded file.
func (s *Service) Download(ctx context.Context, url, destDir string) (string, error) {
	if strings.TrimSpace(url) == "" {
		return "", fmt.Errorf("source url must not be empty")
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("ensure download dir: %w", err)
	}

	args := []string{
		"-f", "bv*+ba/b",
		"--no-playlist",
		"--merge-output-format", "mp4",
		"--restrict-filenames",
		"-o", filepath.Join(destDir, "%(title)s.%(ext)s"),
		url,
	}
	if err := s.run(ctx, args...); err != nil {
		return "", err
	}

	downloaded, err := fileutil.NewestFile(destDir, "*.mp4")
	if err != nil {
		return "", fmt.Errorf("locate download: %w", err)
	}
	if downloaded == "" {
		return "", fmt.Errorf("no downloaded file found in %s", destDir)
	}
	return downloaded, nil
}
