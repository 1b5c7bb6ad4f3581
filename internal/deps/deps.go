package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"reelcast/internal/config"
)

// Requirement defines an external dependency reelcast relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Requirements returns the external binaries the pipeline shells out to for
// the given configuration.
func Requirements(cfg *config.Config) []Requirement {
	return []Requirement{
		{
			Name:        "FFmpeg",
			Command:     cfg.Tools.FFmpeg,
			Description: "Concat, split, watermark, and subtitle embedding",
		},
		{
			Name:        "yt-dlp",
			Command:     cfg.Tools.YtDlp,
			Description: "URL acquisition",
		},
		{
			Name:        "uvx",
			Command:     cfg.Tools.Uvx,
			Description: "Runs whisper for subtitle generation",
		},
		{
			Name:        "TikTok uploader",
			Command:     cfg.Tools.TikTokUpload,
			Description: "Browser automation for TikTok distribution",
			Optional:    true,
		},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}
