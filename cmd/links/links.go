// Package links implements the links command that runs discovery only
// and displays the found item links in a formatted table.
package links

import (
	"context"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	cmdcommon "github.com/spellforge/cardcrawl/cmd/common"
	"github.com/spellforge/cardcrawl/internal/domain"
	"github.com/spellforge/cardcrawl/internal/logger"
)

// TableRenderer handles the display of discovered links in a table format
type TableRenderer struct {
	logger logger.Interface
}

// NewTableRenderer creates a new TableRenderer instance
func NewTableRenderer(log logger.Interface) *TableRenderer {
	return &TableRenderer{
		logger: log,
	}
}

// RenderTable formats and displays the links in a table format
func (r *TableRenderer) RenderTable(links []domain.SourceLink) error {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)

	t.AppendHeader(table.Row{"#", "URL", "Index Page"})

	for i, link := range links {
		t.AppendRow(table.Row{i + 1, link.URL, link.Page})
	}

	t.Render()
	return nil
}

// Lister handles running discovery and displaying the result
type Lister struct {
	discoverer interface {
		Discover(ctx context.Context) ([]domain.SourceLink, error)
	}
	logger   logger.Interface
	renderer *TableRenderer
}

// Start begins the list operation
func (l *Lister) Start(ctx context.Context) error {
	l.logger.Info("Discovering item links")

	links, err := l.discoverer.Discover(ctx)
	if err != nil {
		return fmt.Errorf("failed to discover links: %w", err)
	}

	if len(links) == 0 {
		l.logger.Info("No item links found")
		return nil
	}

	return l.renderer.RenderTable(links)
}

// Command returns the links command for use in the root command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "links",
		Short: "Discover and list catalog item links",
		Long: `Run index discovery only and print the item links that a full
import would process. Useful for checking crawl configuration before
an import run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := cmdcommon.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("failed to initialize dependencies: %w", err)
			}

			lister := &Lister{
				discoverer: cmdcommon.NewDiscoverer(deps),
				logger:     deps.Logger,
				renderer:   NewTableRenderer(deps.Logger),
			}

			return lister.Start(cmd.Context())
		},
	}
}
