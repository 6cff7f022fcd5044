package cmd

import (
	"github.com/spf13/cobra"
	"github.com/wagonlab/railscan/core"
	"github.com/wagonlab/railscan/internal/contract"
)

// timestampsCmd inspects and optionally repairs the reconstructed time axis.
var timestampsCmd = &cobra.Command{
	Use:   "timestamps <input.csv>",
	Short: "Show the reconstructed time axis of a telemetry export.",
	Long: `Rebuild the time axis from the export's timestamp component columns
and report how it went: the covered range, the number of valid timestamps,
and which reconstruction tier was used.

Reconstruction prefers complete component columns from the lowest-numbered
wagon, falls back to a synthetic one-second grid, and as a last resort
generates a uniform axis so analysis can always proceed.

The --repair flag fixes gaps in place:
  interpolate   spread gaps evenly between valid neighbors
  forward_fill  carry the last valid timestamp forward
  sequence      regenerate the whole axis at a fixed sampling period

Examples:
  # Inspect the time axis
  railscan timestamps train_export.csv

  # Fill gaps by interpolation
  railscan timestamps train_export.csv --repair interpolate

  # Regenerate a 500ms sampling grid
  railscan timestamps train_export.csv --repair sequence --sample-period 500ms`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteTimestamps(cfg); err != nil {
			contract.LogFatal("Cannot inspect timestamps", err)
		}
	},
}
