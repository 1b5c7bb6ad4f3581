package whisper

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// CommandRunner executes an external command. Tests inject a fake.
type CommandRunner func(ctx context.Context, name string, args ...string) error

// Service generates SRT subtitles from audio via the whisper CLI, invoked
// through uvx so no local install is required.
type Service struct {
	uvx      string
	model    string
	language string
	runner   CommandRunner
}

// NewService creates a transcription service. model and language fall back to
// sensible defaults when empty.
func NewService(uvx, model, language string) *Service {
	if uvx == "" {
		uvx = "uvx"
	}
	if model == "" {
		model = "small"
	}
	return &Service{uvx: uvx, model: model, language: language}
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Service) WithCommandRunner(runner CommandRunner) {
	s.runner = runner
}

func (s *Service) run(ctx context.Context, args ...string) error {
	if s.runner != nil {
		return s.runner(ctx, s.uvx, args...)
	}
	cmd := exec.CommandContext(ctx, s.uvx, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", s.uvx, err, strings.TrimSpace(string(output)))
	}
	return nil
}

// Transcribe produces an SRT for audioPath beneath outputDir and returns the
// subtitle path. Whisper names the SRT after the audio file's stem.
func (s *Service) Transcribe(ctx context.Context, audioPath, outputDir string) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("ensure subtitle dir: %w", err)
	}

	args := []string{
		"--from", "openai-whisper", "whisper",
		audioPath,
		"--model", s.model,
		"--output_format", "srt",
		"--output_dir", outputDir,
	}
	if s.language != "" {
		args = append(args, "--language", s.language)
	}
	if err := s.run(ctx, args...); err != nil {
		return "", err
	}

	srt := SubtitlePath(audioPath, outputDir)
	if info, err := os.Stat(srt); err != nil || info.Size() == 0 {
		return "", fmt.Errorf("transcription produced no subtitles at %s", srt)
	}
	return srt, nil
}

// SubtitlePath returns where whisper writes the SRT for the given audio file.
func SubtitlePath(audioPath, outputDir string) string {
	stem := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	return filepath.Join(outputDir, stem+".srt")
}
