package cmd

import (
	"github.com/spf13/cobra"
	"github.com/wagonlab/railscan/core"
	"github.com/wagonlab/railscan/internal/contract"
)

// changedCmd performs change detection and ranks the results.
var changedCmd = &cobra.Command{
	Use:   "changed <input.csv>",
	Short: "Show the parameters that changed, ranked by change score.",
	Long: `Run change detection over every parameter and rank the changed ones.

Numeric columns are judged changed when the unique-value ratio or the
normalized standard deviation exceeds the threshold; categorical columns
use the unique-value ratio alone. Results are sorted by change score.

Examples:
  # Find changed parameters with the default threshold
  railscan changed train_export.csv

  # Use a stricter threshold and show statistics
  railscan changed train_export.csv --threshold 0.3 --detail

  # Restrict the analysis to a time window
  railscan changed train_export.csv --from "2024-03-15 10:00:00" --to "2024-03-15 11:00:00"

  # Export findings to CSV for tracking
  railscan changed train_export.csv --output csv --output-file changed.csv

  # Record the run in a local SQLite store
  railscan changed train_export.csv --store-backend sqlite`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteChanged(cfg); err != nil {
			contract.LogFatal("Cannot run change detection", err)
		}
	},
}
