package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yigit/coursehub/internal/bootstrap"
	"github.com/yigit/coursehub/internal/config"
	"github.com/yigit/coursehub/internal/pkg/logger"
	"github.com/yigit/coursehub/internal/server"
)

// rootOptions holds global flags for all commands.
type rootOptions struct {
	ConfigPath string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "coursehub",
		Short:         "CourseHub course API",
		Long:          "An HTTP API for creating, listing, updating and deleting courses.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c",
		filepath.Join("configs", "config.yaml"), "path to the YAML config file")

	cmd.AddCommand(newServeCommand(opts))
	cmd.AddCommand(newMigrateCommand(opts))

	return cmd
}

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Start the HTTP server.

The store is opened and migrated before the listener starts. Configured
seed courses are inserted when the store is empty.

Example:
  coursehub serve --config ./configs/config.yaml
  DB_DRIVER=sqlite DB_PATH=/tmp/courses.db coursehub serve`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
}

func newMigrateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(opts.ConfigPath)
			if err != nil {
				return err
			}
			if cfg.Database.Driver == config.DriverMemory {
				lgr.Info().Msg("Memory store has no schema to migrate")
				return nil
			}
			if err := bootstrap.RunMigrations(ctxOrBackground(cmd.Context()), cfg, lgr); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			lgr.Info().Str("driver", cfg.Database.Driver).Msg("Schema is up to date")
			return nil
		},
	}
}

func runServe(ctx context.Context, opts *rootOptions) error {
	srv, err := server.NewServer(ctxOrBackground(ctx), opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	if err := srv.Run(); err != nil {
		return fmt.Errorf("server execution failed: %w", err)
	}

	logger.Info().Msg("Application finished gracefully.")
	return nil
}

func ctxOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
