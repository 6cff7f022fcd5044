// Package cmd defines the command-line interface for railscan.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/wagonlab/railscan/internal/contract"
	"github.com/wagonlab/railscan/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(paramsCmd)
	rootCmd.AddCommand(changedCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(timestampsCmd)
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the store subcommands to the parent store command
	storeCmd.AddCommand(storeStatusCmd)
	storeCmd.AddCommand(storeClearCmd)
	storeCmd.AddCommand(storeExportCmd)
	storeCmd.AddCommand(storeMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().Float64P("threshold", "t", contract.DefaultThreshold, "Change-detection threshold in (0,1]")
	rootCmd.PersistentFlags().String("from", "", "Analysis window start (e.g. '2024-03-15 10:00:00')")
	rootCmd.PersistentFlags().String("to", "", "Analysis window end (e.g. '2024-03-15 11:00:00')")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Bool("detail", false, "Print per-parameter statistics columns")
	rootCmd.PersistentFlags().Bool("priority", false, "Expose problematic parameters to filtering")
	rootCmd.PersistentFlags().String("store-backend", string(schema.NoneBackend), "Run tracking backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of timestampsCmd to Viper
	timestampsCmd.Flags().String("repair", "", "Repair method: interpolate, forward_fill, sequence")
	timestampsCmd.Flags().String("sample-period", "", "Sampling period for sequence repair (e.g. 500ms)")
	if err := viper.BindPFlags(timestampsCmd.Flags()); err != nil {
		contract.LogFatal("Error binding timestamps flags", err)
	}

	// Bind all flags of storeMigrateCmd to Viper
	storeMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(storeMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding store migrate flags", err)
	}
}
