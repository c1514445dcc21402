package cmd

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/calviaapp/bizdir/internal/store/postgres"
	"github.com/calviaapp/bizdir/pkg/logging"
)

func newSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Project stored businesses into the listings catalog",
		Long: `Sync upserts every stored business into the listings catalog. Source
categories are mapped onto the listings taxonomy through a static slug
map; a missing target category is created on demand under a keyword-
routed parent bucket with a stable identifier, so repeated syncs are
idempotent.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			tables, err := loadTables(cfg)
			if err != nil {
				return err
			}

			ctx := logging.WithRunID(cmd.Context(), uuid.NewString())
			log := logging.Ctx(ctx)

			store, err := postgres.Connect(ctx, cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer store.Close()

			result, err := store.SyncListings(ctx, tables)
			if err != nil {
				return err
			}
			log.Info().
				Int("upserted", result.Upserted).
				Int("categories_materialized", result.Materialized).
				Msg("Synced businesses to listings")
			return nil
		},
	}
}
