package distribute

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"

	"reelcast/internal/services"
)

// CommandRunner executes an external command. Tests inject a fake.
type CommandRunner func(ctx context.Context, name string, args ...string) error

// TikTokHandler delivers videos through an external browser-automation
// uploader. The browser profile directory is file-locked so concurrent runs
// cannot share a session.
type TikTokHandler struct {
	binary     string
	profileDir string
	runner     CommandRunner
}

// NewTikTokHandler creates a handler around the uploader binary.
func NewTikTokHandler(binary, profileDir string) *TikTokHandler {
	return &TikTokHandler{binary: binary, profileDir: profileDir}
}

// WithCommandRunner sets a custom command runner (for testing).
func (h *TikTokHandler) WithCommandRunner(runner CommandRunner) {
	h.runner = runner
}

func (h *TikTokHandler) Name() string { return "tiktok" }

// Upload locks the browser profile and runs the uploader.
func (h *TikTokHandler) Upload(ctx context.Context, req Request) error {
	if h.binary == "" {
		return services.Wrap(services.ErrConfiguration, "upload", h.Name(), "uploader binary not configured", nil)
	}

	profile := h.profileDir
	if req.Profile != "" {
		profile = filepath.Join(filepath.Dir(h.profileDir), req.Profile)
	}
	if profile != "" {
		if err := os.MkdirAll(profile, 0o755); err != nil {
			return services.Wrap(services.ErrConfiguration, "upload", h.Name(), "ensure profile dir", err)
		}
		lock := flock.New(filepath.Join(profile, ".reelcast.lock"))
		locked, err := lock.TryLockContext(ctx, lockRetryDelay)
		if err != nil {
			return services.Wrap(services.ErrTransient, "upload", h.Name(), "acquire profile lock", err)
		}
		if !locked {
			return services.Wrap(services.ErrTransient, "upload", h.Name(), "profile in use", nil)
		}
		defer lock.Unlock()
	}

	args := []string{"--video", req.VideoPath}
	if req.Caption != "" {
		args = append(args, "--description", req.Caption)
	}
	if profile != "" {
		args = append(args, "--profile", profile)
	}
	if err := h.run(ctx, args...); err != nil {
		return services.Wrap(services.ErrExternalTool, "upload", h.Name(), "uploader failed", err)
	}
	return nil
}

func (h *TikTokHandler) run(ctx context.Context, args ...string) error {
	if h.runner != nil {
		return h.runner(ctx, h.binary, args...)
	}
	cmd := exec.CommandContext(ctx, h.binary, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", h.binary, err, strings.TrimSpace(string(output)))
	}
	return nil
}
