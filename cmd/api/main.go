package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"

	"coverapi/internal/config"
	"coverapi/internal/http/middleware"
)

// @title Cover Letter API
// @version 1.0
// @description Cover letter, CV and career assistant backend.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "coverapi",
		Short:         "Cover letter and CV generation API",
		SilenceUsage:  true,
		SilenceErrors: true,
		// Running without a subcommand serves the API.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
	root.AddCommand(newServeCmd(), newMigrateCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

// loadConfig reads the environment and fails fast on missing settings.
func loadConfig() (*config.AppConfig, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		middleware.NewJSONLogger("info").WithError(err).Error("invalid configuration")
		return nil, err
	}
	return cfg, nil
}
