package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"coverapi/internal/config"
	"coverapi/internal/database"
	"coverapi/internal/database/migration"
	"coverapi/internal/http/middleware"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "migrate [up|down|status]",
		Short:     "Apply or inspect database migrations",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down", "status"},
		RunE: func(cmd *cobra.Command, args []string) error {
			direction := "up"
			if len(args) == 1 {
				direction = args[0]
			}

			// Migrations only need the database settings.
			cfg := config.Load()
			log := middleware.NewJSONLogger(cfg.LogLevel)
			ctx := cmd.Context()

			db, err := database.NewPostgres(ctx, cfg.Database)
			if err != nil {
				log.WithError(err).Error("database connection failed")
				return err
			}
			defer db.Close()

			switch direction {
			case "up":
				return migration.Up(ctx, db, log, cfg.Database.Host)
			case "down":
				return migration.Down(ctx, db, log)
			case "status":
				return migration.Status(ctx, db, log)
			default:
				return fmt.Errorf("unknown migrate direction %q", direction)
			}
		},
	}
	return cmd
}
