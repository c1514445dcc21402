// Package cmd implements the bizdir CLI commands.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/calviaapp/bizdir/internal/config"
	"github.com/calviaapp/bizdir/internal/taxonomy"
	"github.com/calviaapp/bizdir/pkg/logging"
)

// flags shared across subcommands.
var (
	flagDBURL  string
	flagTables string
)

// NewRootCmd builds the bizdir command tree.
func NewRootCmd(version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "bizdir",
		Short: "Import and reconcile business-directory sheets",
		Long: `bizdir imports semi-structured business-directory sheets (ZIP bundles
of CSV exports or XLSX workbooks) into the canonical Calvia store.

Imports are reconciled before anything is written: raw rows are
normalized, classified against the category and area taxonomies, checked
for duplicates against the store and the batch itself, and assigned
stable identifiers. Repeated imports of overlapping sheets never create
duplicate businesses.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagDBURL, "db-url", "", "Postgres connection string (defaults to $BIZDIR_DB_URL)")
	root.PersistentFlags().StringVar(&flagTables, "tables", "", "YAML file overriding the built-in resolution tables")

	root.AddCommand(newImportCmd())
	root.AddCommand(newSyncCmd())
	root.AddCommand(newVersionCmd(version))

	return root
}

// loadConfig merges environment configuration with command-line flags
// and configures logging.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if flagDBURL != "" {
		cfg.DatabaseURL = flagDBURL
	}
	if flagTables != "" {
		cfg.TablesPath = flagTables
	}

	logging.Configure(&logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	return cfg, nil
}

// loadTables returns the embedded resolution tables or the override file.
func loadTables(cfg *config.Config) (*taxonomy.Tables, error) {
	if cfg.TablesPath == "" {
		return taxonomy.Default(), nil
	}
	return taxonomy.Load(cfg.TablesPath)
}
