package cmd

import (
	"github.com/spf13/cobra"
	"github.com/wagonlab/railscan/core"
	"github.com/wagonlab/railscan/internal/contract"
)

// paramsCmd lists the decoded parameter inventory.
var paramsCmd = &cobra.Command{
	Use:   "params <input.csv>",
	Short: "List the decoded parameters of a telemetry export.",
	Long: `Decode every column header of a telemetry export into a typed parameter.

Each header is split into its data type code, signal parts and wagon number,
then classified by component system (doors, brakes, traction, climate, power)
and hardware kind. Headers that fail the naming grammar are flagged as
problematic and kept out of analysis unless priority mode is on.

Examples:
  # List the clean parameters
  railscan params train_export.csv

  # Include classification detail columns
  railscan params train_export.csv --detail

  # Inspect problematic headers too
  railscan params train_export.csv --priority

  # Export the inventory for further processing
  railscan params train_export.csv --output csv --output-file params.csv`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteParams(cfg); err != nil {
			contract.LogFatal("Cannot list parameters", err)
		}
	},
}
