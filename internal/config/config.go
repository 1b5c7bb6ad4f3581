package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	// WorkDir is the root under which every run creates its working directory.
	WorkDir string `toml:"work_dir"`
	// LogDir holds the log file and the run-history database.
	LogDir string `toml:"log_dir"`
	// EnvFile optionally points at a dotenv file with destination credentials.
	EnvFile string `toml:"env_file"`
}

// Tools names the external binaries the pipeline shells out to.
type Tools struct {
	FFmpeg       string `toml:"ffmpeg"`
	YtDlp        string `toml:"ytdlp"`
	Uvx          string `toml:"uvx"`
	TikTokUpload string `toml:"tiktok_upload"`
}

// Processing contains transformation settings shared by the media steps.
type Processing struct {
	SubtitleLanguage  string `toml:"subtitle_language"`
	TargetLanguage    string `toml:"target_language"`
	WhisperModel      string `toml:"whisper_model"`
	SplitDuration     int    `toml:"split_duration"`
	WatermarkText     string `toml:"watermark_text"`
	WatermarkPosition string `toml:"watermark_position"`
	SubtitleFontSize  int    `toml:"subtitle_font_size"`
}

// Workflow contains per-step timeout and concurrency settings. Timeouts are in
// seconds and override the registry defaults when positive.
type Workflow struct {
	AcquireTimeout    int `toml:"acquire_timeout"`
	SubtitleTimeout   int `toml:"subtitle_timeout"`
	UploadTimeout     int `toml:"upload_timeout"`
	StepTimeout       int `toml:"step_timeout"`
	UploadConcurrency int `toml:"upload_concurrency"`
}

// PlatformCaption configures per-platform caption rendering.
type PlatformCaption struct {
	CaptionTemplate string   `toml:"caption_template"`
	Hashtags        []string `toml:"hashtags"`
	HashtagLimit    int      `toml:"hashtag_limit"`
}

// Platforms contains upload destination configuration.
type Platforms struct {
	Enabled  []string        `toml:"enabled"`
	Telegram PlatformCaption `toml:"telegram"`
	TikTok   TikTok          `toml:"tiktok"`
}

// TikTok configures the browser-automation upload handler.
type TikTok struct {
	PlatformCaption
	ProfileDir string `toml:"profile_dir"`
}

// Translate configures the subtitle translation endpoint.
type Translate struct {
	Endpoint string `toml:"endpoint"`
	Timeout  int    `toml:"timeout"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for reelcast.
//
// Configuration sections by subsystem:
//   - Paths: work root, log directory, credential env file
//   - Tools: external binary names/paths
//   - Processing: languages, whisper model, split/watermark/embed settings
//   - Workflow: step timeouts and upload fan-out concurrency
//   - Platforms: enabled destinations and caption templates
//   - Translate: subtitle translation endpoint
//   - Logging: log format and level
type Config struct {
	Paths      Paths      `toml:"paths"`
	Tools      Tools      `toml:"tools"`
	Processing Processing `toml:"processing"`
	Workflow   Workflow   `toml:"workflow"`
	Platforms  Platforms  `toml:"platforms"`
	Translate  Translate  `toml:"translate"`
	Logging    Logging    `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return ExpandPath("~/.config/reelcast/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. The second return value
// is the resolved path, the third reports whether the file existed.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := ExpandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}

	projectPath, err := filepath.Abs("reelcast.toml")
	if err != nil {
		return "", false, err
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// WriteSample writes the embedded sample configuration to path, refusing to
// overwrite an existing file.
func WriteSample(path string) error {
	expanded, err := ExpandPath(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(expanded); err == nil {
		return fmt.Errorf("config file already exists at %s", expanded)
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return fmt.Errorf("ensure config directory: %w", err)
	}
	return os.WriteFile(expanded, []byte(sampleConfig), 0o644)
}

// EnsureDirectories creates the work and log directories if missing.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.WorkDir, c.Paths.LogDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// Clone returns a deep copy so a run can freeze its own snapshot without
// sharing mutable slices with concurrent runs.
func (c *Config) Clone() *Config {
	cp := *c
	cp.Platforms.Enabled = append([]string(nil), c.Platforms.Enabled...)
	cp.Platforms.Telegram.Hashtags = append([]string(nil), c.Platforms.Telegram.Hashtags...)
	cp.Platforms.TikTok.Hashtags = append([]string(nil), c.Platforms.TikTok.Hashtags...)
	return &cp
}
