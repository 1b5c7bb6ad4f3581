package config

const (
	defaultWorkDir           = "~/.local/share/reelcast/runs"
	defaultLogDir            = "~/.local/share/reelcast/logs"
	defaultFFmpegBinary      = "ffmpeg"
	defaultYtDlpBinary       = "yt-dlp"
	defaultUvxBinary         = "uvx"
	defaultSubtitleLanguage  = "zh"
	defaultTargetLanguage    = "id"
	defaultWhisperModel      = "base"
	defaultWatermarkPosition = "bottom_right"
	defaultSubtitleFontSize  = 24
	defaultAcquireTimeout    = 3600
	defaultSubtitleTimeout   = 1800
	defaultUploadTimeout     = 1800
	defaultStepTimeout       = 900
	defaultUploadConcurrency = 2
	defaultTranslateEndpoint = "https://translate.googleapis.com/translate_a/single"
	defaultTranslateTimeout  = 30
	defaultTikTokProfileDir  = "~/.local/share/reelcast/profiles"
	defaultHashtagLimit      = 8
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkDir: defaultWorkDir,
			LogDir:  defaultLogDir,
		},
		Tools: Tools{
			FFmpeg:       defaultFFmpegBinary,
			YtDlp:        defaultYtDlpBinary,
			Uvx:          defaultUvxBinary,
			TikTokUpload: "tiktok-upload",
		},
		Processing: Processing{
			SubtitleLanguage:  defaultSubtitleLanguage,
			TargetLanguage:    defaultTargetLanguage,
			WhisperModel:      defaultWhisperModel,
			WatermarkPosition: defaultWatermarkPosition,
			SubtitleFontSize:  defaultSubtitleFontSize,
		},
		Workflow: Workflow{
			AcquireTimeout:    defaultAcquireTimeout,
			SubtitleTimeout:   defaultSubtitleTimeout,
			UploadTimeout:     defaultUploadTimeout,
			StepTimeout:       defaultStepTimeout,
			UploadConcurrency: defaultUploadConcurrency,
		},
		Platforms: Platforms{
			Enabled: []string{"telegram"},
			Telegram: PlatformCaption{
				CaptionTemplate: "{title}",
			},
			TikTok: TikTok{
				PlatformCaption: PlatformCaption{
					CaptionTemplate: "{title}\n{hashtags}",
					HashtagLimit:    defaultHashtagLimit,
				},
				ProfileDir: defaultTikTokProfileDir,
			},
		},
		Translate: Translate{
			Endpoint: defaultTranslateEndpoint,
			Timeout:  defaultTranslateTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
