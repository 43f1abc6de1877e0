package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iliyamo/meal-planner/internal/database"
	"github.com/iliyamo/meal-planner/internal/repository"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Drop, create and seed every table",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		pool := database.NewPool(cfg.DB)
		if err := pool.Initialize(ctx); err != nil {
			return err
		}
		defer func() { _ = pool.Shutdown(cfg.ShutdownGrace) }()

		report, err := repository.NewSetupRepo(pool).Run(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "setup complete: %d statements executed, %d skipped\n", report.Executed, report.Skipped)
		return nil
	},
}
