package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/wagonlab/railscan/internal/contract"
	"github.com/wagonlab/railscan/internal/mcp"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp [input.csv]",
	Short: "Start the Railscan MCP server",
	Long:  `Launch an MCP server that allows AI agents to run telemetry change analysis via standard tools.`,
	Args:  cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// The input path is optional here; tools can pass their own.
		if len(args) == 0 {
			return mcpSetup()
		}
		return sharedSetup(cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(cfg)
	},
}

// mcpSetup loads minimal configuration when no input path is given.
func mcpSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}
	cfg.Threshold = viper.GetFloat64("threshold")
	if cfg.Threshold <= 0 || cfg.Threshold > 1 {
		cfg.Threshold = contract.DefaultThreshold
	}
	return nil
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
