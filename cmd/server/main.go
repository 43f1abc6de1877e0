package main // entry point for the meal planner service

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/iliyamo/meal-planner/internal/config"
	"github.com/iliyamo/meal-planner/internal/logging"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "mealplanner",
	Short: "Meal planner dashboard and API",
	Long: `mealplanner serves the meal planning dashboard and its JSON API on top of
an Oracle, MySQL or SQLite database.

Run without a subcommand to start the HTTP server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(); err != nil {
			return err
		}
		logging.Init(cfg.Log)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func main() {
	// SIGINT and SIGTERM both cancel the same context; shutdown runs once
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd.AddCommand(serveCmd, setupCmd, consumeCmd, tokenCmd)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
