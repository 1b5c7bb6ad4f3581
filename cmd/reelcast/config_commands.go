package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"reelcast/internal/config"
	"reelcast/internal/language"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigShowCommand(ctx))

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			}

			if err := config.WriteSample(target); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote sample configuration to %s\n", target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	return cmd
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Work directory:     %s\n", cfg.Paths.WorkDir)
			fmt.Fprintf(out, "Log directory:      %s\n", cfg.Paths.LogDir)
			fmt.Fprintf(out, "Env file:           %s\n", valueOrNone(cfg.Paths.EnvFile))
			fmt.Fprintf(out, "FFmpeg:             %s\n", cfg.Tools.FFmpeg)
			fmt.Fprintf(out, "yt-dlp:             %s\n", cfg.Tools.YtDlp)
			fmt.Fprintf(out, "uvx:                %s\n", cfg.Tools.Uvx)
			fmt.Fprintf(out, "TikTok uploader:    %s\n", valueOrNone(cfg.Tools.TikTokUpload))
			fmt.Fprintf(out, "Subtitle language:  %s (%s)\n", cfg.Processing.SubtitleLanguage, language.DisplayName(cfg.Processing.SubtitleLanguage))
			fmt.Fprintf(out, "Target language:    %s (%s)\n", cfg.Processing.TargetLanguage, language.DisplayName(cfg.Processing.TargetLanguage))
			fmt.Fprintf(out, "Whisper model:      %s\n", cfg.Processing.WhisperModel)
			fmt.Fprintf(out, "Split duration:     %s\n", secondsOrUnset(cfg.Processing.SplitDuration))
			fmt.Fprintf(out, "Watermark:          %s\n", valueOrNone(cfg.Processing.WatermarkText))
			fmt.Fprintf(out, "Platforms:          %s\n", strings.Join(cfg.Platforms.Enabled, ", "))
			fmt.Fprintf(out, "Upload concurrency: %d\n", cfg.Workflow.UploadConcurrency)
			fmt.Fprintf(out, "Log format/level:   %s/%s\n", cfg.Logging.Format, cfg.Logging.Level)
			return nil
		},
	}
}

func valueOrNone(v string) string {
	if strings.TrimSpace(v) == "" {
		return "(none)"
	}
	return v
}

func secondsOrUnset(v int) string {
	if v <= 0 {
		return "(platform default)"
	}
	return fmt.Sprintf("%ds", v)
}
