package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"reelcast/internal/language"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTools()
	c.normalizeProcessing()
	c.normalizeWorkflow()
	c.normalizePlatforms()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.WorkDir) == "" {
		c.Paths.WorkDir = defaultWorkDir
	}
	if c.Paths.WorkDir, err = ExpandPath(c.Paths.WorkDir); err != nil {
		return fmt.Errorf("paths.work_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = ExpandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.EnvFile) != "" {
		if c.Paths.EnvFile, err = ExpandPath(c.Paths.EnvFile); err != nil {
			return fmt.Errorf("paths.env_file: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeTools() {
	if strings.TrimSpace(c.Tools.FFmpeg) == "" {
		c.Tools.FFmpeg = defaultFFmpegBinary
	}
	if strings.TrimSpace(c.Tools.YtDlp) == "" {
		c.Tools.YtDlp = defaultYtDlpBinary
	}
	if strings.TrimSpace(c.Tools.Uvx) == "" {
		c.Tools.Uvx = defaultUvxBinary
	}
}

func (c *Config) normalizeProcessing() {
	if code := language.ToISO2(c.Processing.SubtitleLanguage); code != "" {
		c.Processing.SubtitleLanguage = code
	} else if strings.TrimSpace(c.Processing.SubtitleLanguage) == "" {
		c.Processing.SubtitleLanguage = defaultSubtitleLanguage
	}
	if code := language.ToISO2(c.Processing.TargetLanguage); code != "" {
		c.Processing.TargetLanguage = code
	} else if strings.TrimSpace(c.Processing.TargetLanguage) == "" {
		c.Processing.TargetLanguage = defaultTargetLanguage
	}
	if strings.TrimSpace(c.Processing.WhisperModel) == "" {
		c.Processing.WhisperModel = defaultWhisperModel
	}
	if strings.TrimSpace(c.Processing.WatermarkPosition) == "" {
		c.Processing.WatermarkPosition = defaultWatermarkPosition
	}
	if c.Processing.SubtitleFontSize <= 0 {
		c.Processing.SubtitleFontSize = defaultSubtitleFontSize
	}
}

func (c *Config) normalizeWorkflow() {
	if c.Workflow.AcquireTimeout <= 0 {
		c.Workflow.AcquireTimeout = defaultAcquireTimeout
	}
	if c.Workflow.SubtitleTimeout <= 0 {
		c.Workflow.SubtitleTimeout = defaultSubtitleTimeout
	}
	if c.Workflow.UploadTimeout <= 0 {
		c.Workflow.UploadTimeout = defaultUploadTimeout
	}
	if c.Workflow.StepTimeout <= 0 {
		c.Workflow.StepTimeout = defaultStepTimeout
	}
	if c.Workflow.UploadConcurrency <= 0 {
		c.Workflow.UploadConcurrency = defaultUploadConcurrency
	}
}

func (c *Config) normalizePlatforms() {
	cleaned := make([]string, 0, len(c.Platforms.Enabled))
	seen := map[string]struct{}{}
	for _, platform := range c.Platforms.Enabled {
		platform = strings.ToLower(strings.TrimSpace(platform))
		if platform == "" {
			continue
		}
		if _, ok := seen[platform]; ok {
			continue
		}
		seen[platform] = struct{}{}
		cleaned = append(cleaned, platform)
	}
	c.Platforms.Enabled = cleaned

	if c.Platforms.TikTok.HashtagLimit <= 0 {
		c.Platforms.TikTok.HashtagLimit = defaultHashtagLimit
	}
	if strings.TrimSpace(c.Platforms.TikTok.ProfileDir) == "" {
		c.Platforms.TikTok.ProfileDir = defaultTikTokProfileDir
	}
	if expanded, err := ExpandPath(c.Platforms.TikTok.ProfileDir); err == nil {
		c.Platforms.TikTok.ProfileDir = expanded
	}
}

func (c *Config) normalizeLogging() {
	if strings.TrimSpace(c.Logging.Format) == "" {
		c.Logging.Format = defaultLogFormat
	}
	if strings.TrimSpace(c.Logging.Level) == "" {
		c.Logging.Level = defaultLogLevel
	}
}

// ExpandPath resolves a leading ~ to the user home directory and returns an
// absolute path.
func ExpandPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", nil
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return filepath.Abs(path)
}
