// Package importer implements the import command that runs the full
// discover, extract, classify and upload pipeline.
package importer

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	cmdcommon "github.com/spellforge/cardcrawl/cmd/common"
	importerpkg "github.com/spellforge/cardcrawl/internal/importer"
)

// Command returns the import command for use in the root command.
func Command() *cobra.Command {
	var (
		maxItems int
		maxPages int
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Run a full catalog import",
		Long: `This command discovers item links on the catalog index, then fetches,
extracts, classifies and uploads each item to the card catalog API.

The --max-items and --max-pages flags override the corresponding
config values for this run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := cmdcommon.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("failed to initialize dependencies: %w", err)
			}

			if maxItems > 0 {
				deps.Config.Crawl.MaxItems = maxItems
			}
			if maxPages > 0 {
				deps.Config.Crawl.MaxPages = maxPages
			}

			imp := cmdcommon.NewImporter(deps)

			report, runErr := imp.Run(cmd.Context())
			if runErr != nil {
				return fmt.Errorf("import run failed: %w", runErr)
			}

			renderReport(report)
			return nil
		},
	}

	cmd.Flags().IntVar(&maxItems, "max-items", 0,
		"Override the crawl.max_items setting (0 means use config value)")
	cmd.Flags().IntVar(&maxPages, "max-pages", 0,
		"Override the crawl.max_pages setting (0 means use config value)")

	return cmd
}

// renderReport prints the per-item outcomes and run totals.
func renderReport(report *importerpkg.Report) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)

	t.AppendHeader(table.Row{"Name", "URL", "Status", "Reason"})

	for _, outcome := range report.Outcomes {
		t.AppendRow(table.Row{
			outcome.Name,
			outcome.URL,
			outcome.Status,
			outcome.Reason,
		})
	}

	t.AppendFooter(table.Row{
		fmt.Sprintf("created %d", report.Created),
		fmt.Sprintf("skipped %d", report.Skipped),
		fmt.Sprintf("failed %d", report.Failed),
		fmt.Sprintf("total %d", report.Attempted()),
	})

	t.Render()
}
