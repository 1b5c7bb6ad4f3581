package ffmpeg

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

// Service wraps the ffmpeg binary for the transformation steps.
type Service struct {
	binary string
	runner CommandRunner
}

// NewService creates an ffmpeg service for the given binary.
func NewService(binary string) *Service {
	if binary == "" {
		binary = "ffmpeg"
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

// Concat joins every .mp4 in sourceDir (lexical order) into output using the
// concat demuxer with stream copy.
func (s *Service) Concat(ctx context.Context, sourceDir, output string) error {
	files, err := fileutil.SortedFiles(sourceDir, "*.mp4")
	if err != nil {
		return fmt.Errorf("list videos: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no .mp4 files in %s", sourceDir)
	}

	listFile := strings.TrimSuffix(output, filepath.Ext(output)) + ".txt"
	var b strings.Builder
	for _, file := range files {
		fmt.Fprintf(&b, "file '%s'\n", filepath.ToSlash(file))
	}
	if err := os.WriteFile(listFile, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write concat list: %w", err)
	}
	defer os.Remove(listFile)

	return s.run(ctx, concatArgs(listFile, output)...)
}

// Split cuts input into parts of at most seconds each, written beneath
// outputDir. Returns the ordered part paths.
func (s *Service) Split(ctx context.Context, input, outputDir string, seconds int) ([]string, error) {
	if seconds <= 0 {
		return nil, fmt.Errorf("split duration must be positive, got %d", seconds)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure split dir: %w", err)
	}
	stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	pattern := filepath.Join(outputDir, stem+"_part_%03d.mp4")
	if err := s.run(ctx, splitArgs(input, pattern, seconds)...); err != nil {
		return nil, err
	}
	return fileutil.SortedFiles(outputDir, "*.mp4")
}

// Watermark burns a text watermark into input at the given position.
func (s *Service) Watermark(ctx context.Context, input, output, text, position string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("watermark text must not be empty")
	}
	return s.run(ctx, watermarkArgs(input, output, text, position)...)
}

// EmbedSubtitles burns the subtitle file into input.
func (s *Service) EmbedSubtitles(ctx context.Context, input, subtitle, output string, fontSize int) error {
	return s.run(ctx, embedSubtitleArgs(input, subtitle, output, fontSize)...)
}

// ExtractAudio produces a WAV suitable for transcription, trying progressively
// laxer argument sets until one yields a non-trivial file.
func (s *Service) ExtractAudio(ctx context.Context, input, output string) error {
	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return fmt.Errorf("ensure audio dir: %w", err)
	}
	var lastErr error
	for _, args := range extractAudioArgSets(input, output) {
		if err := s.run(ctx, args...); err != nil {
			lastErr = err
			continue
		}
		if info, err := os.Stat(output); err == nil && info.Size() > 1024 {
			return nil
		}
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("extracted audio below minimum size")
	}
	return fmt.Errorf("extract audio: %w", lastErr)
}
