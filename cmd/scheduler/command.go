package scheduler

import (
	"fmt"

	"github.com/spf13/cobra"

	cmdcommon "github.com/spellforge/cardcrawl/cmd/common"
)

// Command returns the schedule command for use in the root command.
func Command() *cobra.Command {
	var cronSpec string

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Run imports on a recurring schedule",
		Long: `Start a long-running process that executes a full import on a cron
schedule. The process runs until interrupted with Ctrl+C. A tick that
fires while the previous run is still active is skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := cmdcommon.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("failed to initialize dependencies: %w", err)
			}

			spec := deps.Config.Schedule.Cron
			if cronSpec != "" {
				spec = cronSpec
			}

			service := NewService(cmdcommon.NewImporter(deps), spec, deps.Logger)

			if startErr := service.Start(cmd.Context()); startErr != nil {
				return fmt.Errorf("failed to start scheduler: %w", startErr)
			}

			// Wait for interrupt signal
			<-cmd.Context().Done()

			deps.Logger.Info("Shutdown signal received")
			service.Stop()
			return nil
		},
	}

	cmd.Flags().StringVar(&cronSpec, "cron", "",
		"Override the schedule.cron setting (standard 5-field expression)")

	return cmd
}
