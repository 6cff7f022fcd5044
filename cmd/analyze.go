package cmd

import (
	"github.com/spf13/cobra"
	"github.com/wagonlab/railscan/core"
	"github.com/wagonlab/railscan/internal/contract"
)

// analyzeCmd runs the full detailed analysis.
var analyzeCmd = &cobra.Command{
	Use:   "analyze <input.csv>",
	Short: "Show the full change analysis with per-parameter statistics.",
	Long: `Run the full change analysis: every parameter's verdict plus its
complete statistics bundle (counts, unique ratio, min/max/mean, standard
deviation, variance, coefficient of variation).

Unlike 'changed', this reports unchanged parameters as well, which is
useful when tuning the threshold for a new fleet or export format.

Examples:
  # Full report at the default threshold
  railscan analyze train_export.csv

  # Tune a threshold against a known-good export
  railscan analyze train_export.csv --threshold 0.25

  # Flat CSV of all statistics
  railscan analyze train_export.csv --output csv --output-file report.csv`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteAnalyze(cfg); err != nil {
			contract.LogFatal("Cannot run analysis", err)
		}
	},
}
