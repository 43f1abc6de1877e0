package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/iliyamo/meal-planner/internal/logging"
	"github.com/iliyamo/meal-planner/internal/queue"
)

var consumeCmd = &cobra.Command{
	Use:   "consume",
	Short: "Record change events from RabbitMQ into the change log",
	RunE: func(cmd *cobra.Command, args []string) error {
		logging.L().Info().Str("queue", cfg.Queue.Name).Str("log_path", cfg.Queue.LogPath).Msg("change consumer started")
		err := queue.StartChangeConsumer(cmd.Context(), cfg.Queue)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}
