package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"reelcast/internal/workflow"
)

func newPresetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "presets",
		Short:       "List available pipeline presets",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := make([][]string, 0, 4)
			for _, name := range workflow.Presets() {
				steps, err := workflow.PresetSteps(name)
				if err != nil {
					return err
				}
				label := name
				if name == workflow.DefaultPreset {
					label += " (default)"
				}
				rows = append(rows, []string{label, strings.Join(steps, " -> ")})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Preset", "Steps"}, rows,
				[]columnAlignment{alignLeft, alignLeft}))
			return nil
		},
	}
}
