package steps

import (
	"context"

	"reelcast/internal/distribute"
)

// Downloader fetches a remote source video into destDir.
type Downloader interface {
	Download(ctx context.Context, url, destDir string) (string, error)
}

// Media performs ffmpeg-backed transformations.
type Media interface {
	Concat(ctx context.Context, sourceDir, output string) error
	Split(ctx context.Context, input, outputDir string, seconds int) ([]string, error)
	Watermark(ctx context.Context, input, output, text, position string) error
	EmbedSubtitles(ctx context.Context, input, subtitle, output string, fontSize int) error
	ExtractAudio(ctx context.Context, input, output string) error
}

// Transcriber produces SRT subtitles from extracted audio.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath, outputDir string) (string, error)
}

// SubtitleTranslator renders an SRT into the target language.
type SubtitleTranslator interface {
	TranslateSRT(ctx context.Context, inputPath, outputPath string) error
}

// Uploader fans upload jobs out to destinations.
type Uploader interface {
	Distribute(ctx context.Context, jobs []distribute.Job) []distribute.Outcome
}
