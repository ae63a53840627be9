package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	httpserver "github.com/Clark-Hu/rtfilms/internal/http"
	"github.com/Clark-Hu/rtfilms/internal/render"
	"github.com/Clark-Hu/rtfilms/internal/resolver"
)

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "rtfilms",
		Short:         "Movie detail pages backed by the films database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "optional config file (.env, yaml, toml); environment variables take precedence")

	serve := newServeCmd(&configPath)
	root.RunE = serve.RunE
	root.Flags().AddFlagSet(serve.Flags())

	root.AddCommand(
		serve,
		newMigrateCmd(&configPath),
		newSeedCmd(&configPath),
		newLookupCmd(&configPath),
	)
	return root
}

func newServeCmd(configPath *string) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := bootstrap(ctx, bootOptions{configPath: *configPath})
			if err != nil {
				return err
			}
			defer a.close()

			if migrate {
				if err := a.store.Migrate(ctx); err != nil {
					return fmt.Errorf("migrate: %w", err)
				}
			}

			posters, images, err := a.posterBackend()
			if err != nil {
				return err
			}
			res, err := a.newResolver(posters)
			if err != nil {
				return err
			}
			pages, err := render.New()
			if err != nil {
				return err
			}

			server := httpserver.New(a.cfg, httpserver.Deps{
				Health:   a.store,
				Resolver: res,
				Pages:    pages,
				Images:   images,
				Logger:   a.logger,
			})

			a.logger.Info("Starting server",
				zap.String("port", a.cfg.Port),
				zap.String("db_driver", a.cfg.DBDriver),
				zap.String("lookup_mode", string(res.Mode())),
				zap.String("asset_backend", a.cfg.AssetBackend),
			)
			if err := server.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				a.logger.Error("Server error", zap.Error(err))
				return err
			}
			a.logger.Info("Server stopped")
			return nil
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply migrations before serving")
	return cmd
}

func newMigrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(cmd.Context(), bootOptions{configPath: *configPath, quiet: true})
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.store.Migrate(cmd.Context()); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
}

func newSeedCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Apply migrations and load the fixture films and reviews",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(cmd.Context(), bootOptions{configPath: *configPath, quiet: true})
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.store.Migrate(cmd.Context()); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			if err := a.store.Seed(cmd.Context()); err != nil {
				return fmt.Errorf("seed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "seed data loaded")
			return nil
		},
	}
}

func newLookupCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <title>",
		Short: "Resolve a title once and print the view model as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(cmd.Context(), bootOptions{configPath: *configPath, quiet: true})
			if err != nil {
				return err
			}
			defer a.close()

			posters, _, err := a.posterBackend()
			if err != nil {
				return err
			}
			res, err := a.newResolver(posters)
			if err != nil {
				return err
			}

			vm, err := res.Resolve(cmd.Context(), args[0])
			switch {
			case errors.Is(err, resolver.ErrMissingParameter):
				return fmt.Errorf("a non-empty title is required")
			case errors.Is(err, resolver.ErrNotFound):
				return fmt.Errorf("no movie matches %q", args[0])
			case err != nil:
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(vm)
		},
	}
}
