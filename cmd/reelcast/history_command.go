package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"reelcast/internal/config"
	"reelcast/internal/history"
)

func historyPath(cfg *config.Config) string {
	return filepath.Join(cfg.Paths.LogDir, "history.db")
}

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var runID string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent pipeline runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := history.Open(historyPath(cfg), nil)
			if err != nil {
				return fmt.Errorf("open run history: %w", err)
			}
			defer store.Close()

			if runID != "" {
				return printRunSteps(cmd, store, runID)
			}

			runs, err := store.RecentRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded yet.")
				return nil
			}

			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				elapsed := ""
				if !run.FinishedAt.IsZero() {
					elapsed = run.FinishedAt.Sub(run.StartedAt).Round(time.Second).String()
				}
				rows = append(rows, []string{
					run.RunID,
					run.Preset,
					run.Status,
					run.StartedAt.Local().Format("2006-01-02 15:04:05"),
					elapsed,
					run.Sources,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Run", "Preset", "Status", "Started", "Elapsed", "Sources"}, rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft}))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to show")
	cmd.Flags().StringVar(&runID, "run", "", "Show step details for a single run")
	return cmd
}

func printRunSteps(cmd *cobra.Command, store *history.Store, runID string) error {
	steps, err := store.RunSteps(cmd.Context(), runID)
	if err != nil {
		return err
	}
	if len(steps) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No steps recorded for run %s.\n", runID)
		return nil
	}

	rows := make([][]string, 0, len(steps))
	for _, step := range steps {
		state := "ok"
		if !step.Success {
			state = "failed"
		}
		rows = append(rows, []string{step.StepID, state, step.Elapsed.Round(time.Millisecond).String(), step.Error})
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable(
		[]string{"Step", "State", "Elapsed", "Error"}, rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft}))
	return nil
}
