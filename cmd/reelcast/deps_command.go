package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"reelcast/internal/deps"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check availability of required external tools",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			statuses := deps.CheckBinaries(deps.Requirements(cfg))
			rows := make([][]string, 0, len(statuses))
			missingRequired := false
			for _, status := range statuses {
				state := "ok"
				detail := status.Command
				if !status.Available {
					detail = status.Detail
					if status.Optional {
						state = "missing (optional)"
					} else {
						state = "missing"
						missingRequired = true
					}
				}
				rows = append(rows, []string{status.Name, state, detail, status.Description})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Tool", "State", "Detail", "Used for"}, rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft}))

			if missingRequired {
				return fmt.Errorf("required tools are missing")
			}
			return nil
		},
	}
}
