package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/wagonlab/railscan/internal/contract"
	"github.com/wagonlab/railscan/internal/runstore"
	"github.com/wagonlab/railscan/schema"
)

// storeSetup loads minimal configuration needed for store operations.
// This is used by commands that need store access without full shared setup.
func storeSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get store-related config values
	backendStr := viper.GetString("store-backend")
	connStr := viper.GetString("store-db-connect")

	// Handle empty backend as NoneBackend
	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.NoneBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

	switch backend {
	case schema.SQLiteBackend, schema.MySQLBackend, schema.PostgreSQLBackend, schema.NoneBackend:
	default:
		return fmt.Errorf("unsupported store backend: %s", backendStr)
	}
	if (backend == schema.MySQLBackend || backend == schema.PostgreSQLBackend) && connStr == "" {
		return fmt.Errorf("--store-db-connect is required for %s backend", backend)
	}

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")

	return nil
}

// storeSetupWrapper wraps storeSetup to provide PreRunE for store commands.
func storeSetupWrapper(_ *cobra.Command, _ []string) error {
	return storeSetup()
}

// storeCmd focused on run tracking data management.
//
// Note: Store subcommands use minimal initialization (storeSetup) instead of
// the full sharedSetup used by analysis commands. This avoids input file
// validation for simple store operations.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage historical run tracking and exports",
	Long: `Manage historical analysis run data used for trend tracking and reporting.

When enabled, railscan tracks every change-detection run, storing:
- Run metadata (timestamp, configuration)
- Per-parameter change verdicts and statistics

This enables longitudinal analysis across exports from the same fleet.

Supported backends: SQLite (default file store), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show run tracking statistics
  export  - Export data to Parquet for analytics
  clear   - Remove all tracking data
  migrate - Run database schema migrations

Examples:
  # Check tracking status
  railscan store status --store-backend sqlite

  # Export for analysis in pandas/DuckDB
  railscan store export --store-backend sqlite --output-file runs.parquet`,
}

// storeStatusCmd shows run store status.
var storeStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display run tracking statistics and connection details",
	Long: `Show detailed information about historical run tracking.

Displays:
- Backend type and location
- Total number of runs and parameter results stored
- Last run timestamp
- Applied schema version

Examples:
  # Check run tracking status
  railscan store status --store-backend sqlite`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store, err := runstore.New(cfg.StoreBackend, cfg.StoreDBConnect)
		if err != nil {
			contract.LogFatal("Failed to open run store", err)
		}
		defer func() { _ = store.Close() }()

		status, err := store.Status()
		if err != nil {
			contract.LogFatal("Failed to get store status", err)
		}
		printStoreStatus(status)
	},
}

// storeClearCmd clears the run tracking data.
var storeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all historical run tracking data",
	Long: `Delete all stored analysis runs and parameter result history.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  # Export before clearing
  railscan store export --store-backend sqlite --output-file backup
  railscan store clear --store-backend sqlite`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store, err := runstore.New(cfg.StoreBackend, cfg.StoreDBConnect)
		if err != nil {
			contract.LogFatal("Failed to open run store", err)
		}
		defer func() { _ = store.Close() }()

		if err := store.Clear(); err != nil {
			contract.LogFatal("Failed to clear run data", err)
		}
		fmt.Println("Run data cleared successfully.")
	},
}

// storeExportCmd exports run data to Parquet files.
var storeExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export historical run data to Parquet for analytics",
	Long: `Export all stored run data to Parquet format for use with analytics tools.

Exports two datasets:
- Analysis runs - metadata about each run
- Parameter results - per-parameter change verdicts and statistics

Requires: --output-file parameter

Examples:
  # Export all data
  railscan store export --store-backend sqlite --output-file railscan-data

  # Use with DuckDB for analysis
  duckdb -c "SELECT * FROM read_parquet('railscan-data.parameter_results.parquet') LIMIT 10"`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runstore.ExecuteExport(cfg.StoreBackend, cfg.StoreDBConnect, cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export run data", err)
		}
	},
}

// storeMigrateCmd runs database migrations for the run store.
var storeMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the run tracking store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  railscan store migrate --store-backend sqlite

  # Rollback everything
  railscan store migrate --store-backend sqlite --target-version 0`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := runstore.Migrate(cfg.StoreBackend, cfg.StoreDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}

// printStoreStatus renders the store status summary.
func printStoreStatus(status schema.StoreStatus) {
	fmt.Printf("Backend:        %s\n", status.Backend)
	if status.Location != "" {
		fmt.Printf("Location:       %s\n", status.Location)
	}
	fmt.Printf("Runs:           %d\n", status.Runs)
	fmt.Printf("Result rows:    %d\n", status.ResultRows)
	if !status.LastRunAt.IsZero() {
		fmt.Printf("Last run:       %s\n", schema.FormatTimestamp(status.LastRunAt))
	}
	if status.SchemaVersion > 0 {
		fmt.Printf("Schema version: %d\n", status.SchemaVersion)
	}
}
