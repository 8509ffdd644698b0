// Package backfill implements the backfill command that fills in
// structured weapon types on already-stored cards.
package backfill

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	cmdcommon "github.com/spellforge/cardcrawl/cmd/common"
	importerpkg "github.com/spellforge/cardcrawl/internal/importer"
)

// Command returns the backfill command for use in the root command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "backfill",
		Short: "Backfill weapon types on stored cards",
		Long: `Walk the stored cards and set the structured weapon type for each
card whose name matches a reference weapon. Cards that already carry a
weapon type are left untouched, so the command can be re-run safely.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := cmdcommon.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("failed to initialize dependencies: %w", err)
			}

			backfiller, err := cmdcommon.NewBackfiller(deps)
			if err != nil {
				return fmt.Errorf("failed to construct backfiller: %w", err)
			}

			report, runErr := backfiller.Run(cmd.Context())
			if runErr != nil {
				return fmt.Errorf("backfill run failed: %w", runErr)
			}

			renderReport(report)
			return nil
		},
	}
}

// renderReport prints the backfill totals.
func renderReport(report *importerpkg.BackfillReport) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)

	t.AppendHeader(table.Row{"Updated", "Skipped", "Failed"})
	t.AppendRow(table.Row{report.Updated, report.Skipped, report.Failed})

	t.Render()
}
