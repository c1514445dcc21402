// Package config loads run-level configuration for the bizdir CLI from
// flags, environment variables and .env files, in that precedence.
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the settings shared by the import and sync commands.
type Config struct {
	// DatabaseURL is the Postgres connection string for the canonical store.
	DatabaseURL string

	// TablesPath optionally overrides the embedded resolution tables.
	TablesPath string

	// ReportsDir is where dry-run reports are written.
	ReportsDir string

	// Logging configuration
	LogLevel  string
	LogFormat string
}

// Load reads configuration from the environment. A .env file in the
// working directory is honored but never required.
func Load() (*Config, error) {
	loadEnvFiles()

	viper.AutomaticEnv()
	viper.SetEnvPrefix("BIZDIR")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	viper.SetDefault("reports_dir", "reports")
	viper.SetDefault("log_level", "info")
	viper.SetDefault("log_format", "auto")

	cfg := &Config{
		DatabaseURL: viper.GetString("db_url"),
		TablesPath:  viper.GetString("tables"),
		ReportsDir:  viper.GetString("reports_dir"),
		LogLevel:    viper.GetString("log_level"),
		LogFormat:   viper.GetString("log_format"),
	}

	// The import scripts historically read CALVIA_DB_URL; keep honoring it.
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("CALVIA_DB_URL")
	}

	return cfg, nil
}

// loadEnvFiles loads .env files if present. Missing files are fine.
func loadEnvFiles() {
	for _, file := range []string{".env.local", ".env"} {
		if _, err := os.Stat(file); err == nil {
			_ = godotenv.Load(file)
		}
	}
}
