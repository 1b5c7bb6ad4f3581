package ffmpeg

import (
	"fmt"
	"strings"
)

var watermarkPositions = map[string]string{
	"top_left":     "x=10:y=10",
	"top_right":    "x=w-tw-10:y=10",
	"bottom_left":  "x=10:y=h-th-10",
	"bottom_right": "x=w-tw-10:y=h-th-10",
	"center":       "x=(w-tw)/2:y=(h-th)/2",
}

func concatArgs(listFile, output string) []string {
	return []string{
		"-y", "-hide_banner", "-loglevel", "error",
		"-f", "concat", "-safe", "0",
		"-i", listFile,
		"-c", "copy",
		output,
	}
}

func splitArgs(input, outputPattern string, seconds int) []string {
	return []string{
		"-y", "-hide_banner", "-loglevel", "error",
		"-i", input,
		"-c", "copy", "-map", "0",
		"-segment_time", fmt.Sprintf("%d", seconds),
		"-f", "segment",
		"-reset_timestamps", "1",
		outputPattern,
	}
}

func watermarkArgs(input, output, text, position string) []string {
	pos, ok := watermarkPositions[position]
	if !ok {
		pos = watermarkPositions["bottom_right"]
	}
	draw := fmt.Sprintf(
		"drawtext=text='%s':fontsize=24:fontcolor=white:shadowcolor=black:shadowx=2:shadowy=2:%s",
		escapeFilterText(text), pos,
	)
	return []string{
		"-y", "-hide_banner", "-loglevel", "error",
		"-i", input,
		"-vf", draw,
		"-c:v", "libx264", "-c:a", "copy",
		output,
	}
}

func embedSubtitleArgs(input, subtitle, output string, fontSize int) []string {
	style := fmt.Sprintf("FontSize=%d,OutlineColour=&H40000000,BorderStyle=3", fontSize)
	filter := fmt.Sprintf("subtitles=%s:force_style='%s'", escapeFilterText(subtitle), style)
	return []string{
		"-y", "-hide_banner", "-loglevel", "error",
		"-i", input,
		"-vf", filter,
		"-c:v", "libx264", "-c:a", "copy",
		output,
	}
}

// extractAudioArgSets returns the ffmpeg argument sets tried in order when
// extracting audio for transcription. Later entries are progressively less
// strict about the output format.
func extractAudioArgSets(input, output string) [][]string {
	return [][]string{
		{"-y", "-i", input, "-ar", "16000", "-ac", "1", "-c:a", "pcm_s16le", output},
		{"-y", "-i", input, "-ar", "22050", "-ac", "1", "-c:a", "pcm_s16le", output},
		{"-y", "-i", input, "-q:a", "0", "-map", "a", output},
	}
}

// escapeFilterText escapes characters with special meaning inside ffmpeg
// filter descriptions.
func escapeFilterText(text string) string {
	replacer := strings.NewReplacer(
		`\`, `\\`,
		`'`, `\'`,
		`:`, `\:`,
	)
	return replacer.Replace(text)
}
