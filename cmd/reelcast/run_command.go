package main

import (
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"reelcast/internal/distribute"
	"reelcast/internal/history"
	"reelcast/internal/logging"
	"reelcast/internal/preflight"
	"reelcast/internal/services/ffmpeg"
	"reelcast/internal/services/translate"
	"reelcast/internal/services/whisper"
	"reelcast/internal/services/ytdlp"
	"reelcast/internal/steps"
	"reelcast/internal/workflow"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var preset string
	var platforms []string
	var splitSeconds int
	var profile string

	cmd := &cobra.Command{
		Use:   "run [source...]",
		Short: "Run the pipeline against source URLs or local video files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("initialize logging: %w", err)
			}

			if failure, failed := preflight.FirstFailure(preflight.CheckRun(cfg)); failed {
				return fmt.Errorf("preflight: %s: %s", failure.Name, failure.Detail)
			}

			creds, err := distribute.LoadCredentials(cfg.Paths.EnvFile)
			if err != nil {
				return fmt.Errorf("load credentials: %w", err)
			}

			downloader := ytdlp.NewService(cfg.Tools.YtDlp)
			media := ffmpeg.NewService(cfg.Tools.FFmpeg)
			transcriber := whisper.NewService(cfg.Tools.Uvx, cfg.Processing.WhisperModel, cfg.Processing.SubtitleLanguage)
			translator := translate.NewClient(cfg.Translate.Endpoint, cfg.Processing.SubtitleLanguage,
				cfg.Processing.TargetLanguage, time.Duration(cfg.Translate.Timeout)*time.Second)
			coordinator := distribute.NewCoordinator(cfg.Workflow.UploadConcurrency, logger)

			set := steps.New(cfg, logger, downloader, media, transcriber, translator, coordinator, creds)
			registry := workflow.NewRegistry()
			registry.MustRegister(set.Definitions()...)

			store, err := history.Open(historyPath(cfg), logger)
			if err != nil {
				return fmt.Errorf("open run history: %w", err)
			}
			defer store.Close()

			manager := workflow.NewManager(cfg, registry, workflow.NewExecutor(logger), store, logger)

			signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			run, runErr := manager.Run(signalCtx, args, workflow.Options{
				Preset:        preset,
				Platforms:     platforms,
				SplitDuration: splitSeconds,
				UploadProfile: profile,
			})
			if run != nil {
				printReport(cmd, workflow.BuildReport(run))
			}
			return runErr
		},
	}

	cmd.Flags().StringVar(&preset, "preset", "", "Pipeline preset (default: full)")
	cmd.Flags().StringSliceVar(&platforms, "platforms", nil, "Override upload destinations")
	cmd.Flags().IntVar(&splitSeconds, "split", 0, "Override split segment length in seconds")
	cmd.Flags().StringVar(&profile, "profile", "", "Browser profile for automation uploads")
	return cmd
}

func printReport(cmd *cobra.Command, report workflow.Report) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Run %s (%s): %s in %s\n", report.RunID, report.Preset, report.Status, report.Elapsed.Round(time.Millisecond))

	if len(report.Steps) > 0 {
		rows := make([][]string, 0, len(report.Steps))
		for _, step := range report.Steps {
			state := "ok"
			if !step.Success {
				state = "failed"
				if !step.Critical {
					state = "degraded"
				}
			}
			detail := ""
			if step.Err != nil {
				detail = step.Err.Error()
			}
			rows = append(rows, []string{step.StepID, state, step.Elapsed.Round(time.Millisecond).String(), detail})
		}
		fmt.Fprintln(out, renderTable(
			[]string{"Step", "State", "Elapsed", "Detail"}, rows,
			[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft}))
	}

	if len(report.Outputs) > 0 {
		fmt.Fprintln(out, "Outputs:")
		for _, output := range report.Outputs {
			fmt.Fprintf(out, "  %-9s %s\n", output.Kind, output.Path)
		}
	}
	if len(report.Degraded) > 0 {
		fmt.Fprintf(out, "Degraded steps: %s\n", strings.Join(report.Degraded, ", "))
	}
	if report.Err != nil {
		fmt.Fprintf(out, "Error: %v\n", report.Err)
	}
}
