package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/societyhub/apartment-system/internal/infrastructure/config"
	"github.com/societyhub/apartment-system/pkg/logger"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create collections indexes or SQL tables for the configured store",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()

			cfg, err := config.Load(ctx)
			if err != nil {
				return err
			}
			log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: !cfg.IsProduction(), Service: "societyd"})

			st, err := openStore(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer func() { _ = st.close(context.Background()) }()

			if err := st.migrate(ctx); err != nil {
				return err
			}
			log.Info().Str("driver", cfg.Store.Driver).Msg("migration complete")
			return nil
		},
	}
}
