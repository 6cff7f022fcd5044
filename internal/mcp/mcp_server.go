// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/wagonlab/railscan/internal/contract"
)

// NewMCPServer initializes and configures the Railscan MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config) *server.MCPServer {
	s := server.NewMCPServer(
		"Railscan Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := newToolHandler(baseCfg)

	// --- 1. Tool: list_parameters ---
	s.AddTool(mcp.NewTool("list_parameters",
		mcp.WithDescription("Decode the column headers of a telemetry export into typed parameters."),
		mcp.WithString("input_path", mcp.Description("Path to the telemetry CSV export (defaults to the configured input).")),
		mcp.WithBoolean("priority", mcp.Description("Include problematic parameters in the listing.")),
	), h.handleListParameters)

	// --- 2. Tool: find_changed_parameters ---
	s.AddTool(mcp.NewTool("find_changed_parameters",
		mcp.WithDescription("Find the parameters whose values changed, ranked by change score."),
		mcp.WithString("input_path", mcp.Description("Path to the telemetry CSV export.")),
		mcp.WithNumber("threshold", mcp.Description("Change-detection threshold in (0,1]. Defaults to the configured threshold.")),
		mcp.WithString("from", mcp.Description("Analysis window start (e.g. '2024-03-15 10:00:00').")),
		mcp.WithString("to", mcp.Description("Analysis window end.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
	), h.handleFindChanged)

	// --- 3. Tool: analyze_detailed ---
	s.AddTool(mcp.NewTool("analyze_detailed",
		mcp.WithDescription("Run the full change analysis with per-parameter statistics, including unchanged parameters."),
		mcp.WithString("input_path", mcp.Description("Path to the telemetry CSV export.")),
		mcp.WithNumber("threshold", mcp.Description("Change-detection threshold in (0,1].")),
		mcp.WithString("from", mcp.Description("Analysis window start.")),
		mcp.WithString("to", mcp.Description("Analysis window end.")),
	), h.handleAnalyzeDetailed)

	// --- 4. Tool: get_time_range ---
	s.AddTool(mcp.NewTool("get_time_range",
		mcp.WithDescription("Report the reconstructed time axis of a telemetry export."),
		mcp.WithString("input_path", mcp.Description("Path to the telemetry CSV export.")),
	), h.handleGetTimeRange)

	// --- 5. Tool: quick_check ---
	s.AddTool(mcp.NewTool("quick_check",
		mcp.WithDescription("Cheaply check whether a single parameter changed, without the full statistics bundle."),
		mcp.WithString("signal_code", mcp.Description("The decoded signal code to check."), mcp.Required()),
		mcp.WithString("input_path", mcp.Description("Path to the telemetry CSV export.")),
		mcp.WithNumber("threshold", mcp.Description("Change-detection threshold in (0,1].")),
	), h.handleQuickCheck)

	return s
}

// StartMCPServer starts the Railscan MCP server.
func StartMCPServer(baseCfg *contract.Config) error {
	s := NewMCPServer(baseCfg)
	return server.ServeStdio(s)
}
