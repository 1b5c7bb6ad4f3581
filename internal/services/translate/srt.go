package translate

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

// TranslateSRT translates the text lines of the SRT at inputPath and writes
// the result to outputPath. Index and timing lines pass through untouched,
// and a line that fails to translate keeps its original text.
func (c *Client) TranslateSRT(ctx context.Context, inputPath, outputPath string) error {
	input, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("open subtitles: %w", err)
	}
	defer input.Close()

	output, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create translated subtitles: %w", err)
	}
	defer output.Close()

	writer := bufio.NewWriter(output)
	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		out := line
		if isTextLine(line) {
			if translated, err := c.Translate(ctx, line); err == nil {
				out = translated
			} else if ctx.Err() != nil {
				return ctx.Err()
			}
		}
		if _, err := fmt.Fprintln(writer, out); err != nil {
			return fmt.Errorf("write translated subtitles: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read subtitles: %w", err)
	}
	return writer.Flush()
}

// isTextLine reports whether an SRT line carries dialogue rather than
// structure (cue index, timing, blank separator).
func isTextLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	if strings.Contains(trimmed, "-->") {
		return false
	}
	if isCueIndex(trimmed) {
		return false
	}
	return true
}

func isCueIndex(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
