package cmd

import (
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/calviaapp/bizdir/internal/directory"
	"github.com/calviaapp/bizdir/internal/ingest"
	"github.com/calviaapp/bizdir/internal/reconcile"
	"github.com/calviaapp/bizdir/internal/report"
	"github.com/calviaapp/bizdir/internal/store/postgres"
	"github.com/calviaapp/bizdir/pkg/errors"
	"github.com/calviaapp/bizdir/pkg/logging"
)

func newImportCmd() *cobra.Command {
	var (
		input      string
		reportsDir string
		apply      bool
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Reconcile a sheet bundle against the store",
		Long: `Import ingests a bundle of business sheets, evaluates every row against
the store snapshot and writes two CSV reports: the INSERT candidates and
the skipped or held rows. Nothing is written to the store unless --apply
is given, in which case candidates are inserted conflict-tolerantly
keyed on their derived slug.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if reportsDir != "" {
				cfg.ReportsDir = reportsDir
			}

			ctx := logging.WithRunID(cmd.Context(), uuid.NewString())
			log := logging.Ctx(ctx)

			tables, err := loadTables(cfg)
			if err != nil {
				return err
			}

			records, err := ingest.ReadBundle(input)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				return errors.WrapResource(errors.ErrNoSourceRecords, "bundle", input)
			}
			log.Info().Str("bundle", input).Int("rows", len(records)).Msg("Ingested source records")

			store, err := postgres.Connect(ctx, cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer store.Close()

			snapshot, err := store.LoadSnapshot(ctx)
			if err != nil {
				return err
			}
			if len(snapshot.CategoriesBySlug) == 0 {
				return errors.ErrEmptyTaxonomy
			}
			log.Info().
				Int("categories", len(snapshot.CategoriesBySlug)).
				Int("areas", len(snapshot.AreasBySlug)).
				Int("businesses", len(snapshot.Businesses)).
				Msg("Loaded store snapshot")

			plan := reconcile.NewRun(tables, snapshot).Evaluate(records)
			inserts, others := reconcile.Partition(plan)

			candidatePath := filepath.Join(cfg.ReportsDir, "import_candidates.csv")
			skippedPath := filepath.Join(cfg.ReportsDir, "import_skipped_or_hold.csv")
			if err := report.WriteCSV(candidatePath, inserts); err != nil {
				return err
			}
			if err := report.WriteCSV(skippedPath, others); err != nil {
				return err
			}
			log.Info().Str("candidates", candidatePath).Str("skipped", skippedPath).Msg("Wrote reports")

			summary := reconcile.Summary(plan)
			log.Info().
				Int("insert", summary[directory.ActionInsert]).
				Int("skip_duplicate", summary[directory.ActionSkipDuplicate]).
				Int("hold_ambiguous", summary[directory.ActionHoldAmbiguous]).
				Int("hold_out_of_scope", summary[directory.ActionHoldOutOfScope]).
				Msg("Plan summary")

			if !apply {
				log.Info().Msg("Dry run complete. Use --apply to import INSERT rows")
				return nil
			}

			result, err := store.ApplyInserts(ctx, inserts)
			if err != nil {
				return err
			}
			log.Info().
				Int("inserted", result.Inserted).
				Int("slug_conflicts_skipped", result.Conflicts).
				Msg("Applied import")
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Sheet bundle to import (.zip, .xlsx or .csv)")
	cmd.Flags().StringVar(&reportsDir, "reports-dir", "", "Directory for dry-run reports (default \"reports\")")
	cmd.Flags().BoolVar(&apply, "apply", false, "Insert candidate rows into the store")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}
