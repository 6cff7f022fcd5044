package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/wagonlab/railscan/core"
	"github.com/wagonlab/railscan/core/detect"
	"github.com/wagonlab/railscan/internal/contract"
	"github.com/wagonlab/railscan/internal/loader"
	"github.com/wagonlab/railscan/schema"
)

// toolHandler holds common dependencies for MCP tool handlers. Models are
// kept per input path so repeated tool calls against the same export hit
// the analysis caches instead of reloading.
type toolHandler struct {
	baseCfg *contract.Config

	mu         sync.Mutex
	model      *core.Model
	loadedPath string
}

func newToolHandler(baseCfg *contract.Config) *toolHandler {
	return &toolHandler{baseCfg: baseCfg}
}

// modelFor returns a loaded model for the requested path, reusing the
// current one when the path matches.
func (h *toolHandler) modelFor(path string) (*core.Model, error) {
	if path == "" {
		path = h.baseCfg.InputPath
	}
	if path == "" {
		return nil, fmt.Errorf("input_path is required when no default input is configured")
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.model != nil && h.loadedPath == path {
		return h.model, nil
	}

	src, err := loader.FromCSVFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	model := core.NewModel(nil)
	if _, err := model.Load(src); err != nil {
		return nil, err
	}

	h.model = model
	h.loadedPath = path
	return model, nil
}

// applyWindow narrows the model window from from/to arguments, resetting to
// the full range when both are empty.
func applyWindow(model *core.Model, fromStr, toStr string) error {
	if fromStr == "" && toStr == "" {
		model.ResetTimeRange()
		return nil
	}
	if fromStr == "" || toStr == "" {
		return fmt.Errorf("both from and to are required to set a window")
	}
	from, err := schema.ParseTimestamp(fromStr)
	if err != nil {
		return fmt.Errorf("invalid from: %w", err)
	}
	to, err := schema.ParseTimestamp(toStr)
	if err != nil {
		return fmt.Errorf("invalid to: %w", err)
	}
	if !model.SetUserTimeRange(from, to) {
		return fmt.Errorf("invalid window: %s to %s", fromStr, toStr)
	}
	return nil
}

func (h *toolHandler) handleListParameters(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	model, err := h.modelFor(request.GetString("input_path", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("load failed: %v", err)), nil
	}

	model.SetPriorityMode(request.GetBool("priority", false))
	params := model.FilterParameters()

	jsonData, _ := json.MarshalIndent(params, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleFindChanged(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	model, err := h.modelFor(request.GetString("input_path", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("load failed: %v", err)), nil
	}

	if err := applyWindow(model, request.GetString("from", ""), request.GetString("to", "")); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid window parameters: %v", err)), nil
	}

	threshold := request.GetFloat("threshold", h.baseCfg.Threshold)
	if threshold <= 0 || threshold > 1 {
		return mcp.NewToolResultError(fmt.Sprintf("threshold must be in (0,1] (received %g)", threshold)), nil
	}

	changed, err := model.FindChangedParameters(threshold)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	if limit := request.GetInt("limit", 0); limit > 0 {
		changed = core.RankChanges(changed, limit)
	}

	jsonData, _ := json.MarshalIndent(changed, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleAnalyzeDetailed(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	model, err := h.modelFor(request.GetString("input_path", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("load failed: %v", err)), nil
	}

	if err := applyWindow(model, request.GetString("from", ""), request.GetString("to", "")); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid window parameters: %v", err)), nil
	}

	threshold := request.GetFloat("threshold", h.baseCfg.Threshold)
	if threshold <= 0 || threshold > 1 {
		return mcp.NewToolResultError(fmt.Sprintf("threshold must be in (0,1] (received %g)", threshold)), nil
	}

	report, err := model.AnalyzeDetailed(threshold)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetTimeRange(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	model, err := h.modelFor(request.GetString("input_path", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("load failed: %v", err)), nil
	}

	fields, err := model.TimeRangeFields()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("time range unavailable: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(fields, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleQuickCheck(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	signalCode := request.GetString("signal_code", "")
	if signalCode == "" {
		return mcp.NewToolResultError("signal_code is required"), nil
	}

	model, err := h.modelFor(request.GetString("input_path", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("load failed: %v", err)), nil
	}

	param, ok := model.Parameter(signalCode)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown signal code: %s", signalCode)), nil
	}

	tbl := model.Table()
	values, ok := tbl.Columns[param.FullColumn]
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("no column data for: %s", signalCode)), nil
	}

	threshold := request.GetFloat("threshold", h.baseCfg.Threshold)
	if threshold <= 0 || threshold > 1 {
		return mcp.NewToolResultError(fmt.Sprintf("threshold must be in (0,1] (received %g)", threshold)), nil
	}

	result := map[string]any{
		"signal_code": signalCode,
		"is_changed":  detect.QuickChanged(values, threshold),
		"threshold":   threshold,
	}
	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
