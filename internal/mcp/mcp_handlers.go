package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/huangsam/shiftgrid/core"
	"github.com/huangsam/shiftgrid/internal/contract"
	"github.com/huangsam/shiftgrid/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.CacheManager
}

// configFor clones the base config and applies the request's range arguments.
func (h *toolHandler) configFor(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()
	err := contract.RevalidateRange(cfg,
		request.GetString("range", ""),
		request.GetString("pivot", ""),
		request.GetString("selection", ""),
		request.GetString("site", ""),
	)
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}
	return cfg, err
}

func textResult(data any) *mcp.CallToolResult {
	jsonData, _ := json.MarshalIndent(data, "", "  ")
	return mcp.NewToolResultText(string(jsonData))
}

func (h *toolHandler) handleGetRangeOptions(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configFor(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid range parameters: %v", err)), nil
	}

	opts, selected := core.GetRangeOptions(cfg)
	return textResult(map[string]any{
		"type":     opts.Type,
		"selected": selected.Label,
		"options":  opts.Options,
	}), nil
}

func (h *toolHandler) handleGetDays(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configFor(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid range parameters: %v", err)), nil
	}
	return textResult(core.GetDays(cfg)), nil
}

func (h *toolHandler) handleGetStreaks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configFor(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid range parameters: %v", err)), nil
	}

	output, err := core.GetAnalysisResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}
	return textResult(map[string]any{
		"range":     output.Selected,
		"summaries": output.Summaries,
		"streaks":   output.Streaks.Keyed(),
	}), nil
}

func (h *toolHandler) handleGetContinuousWindows(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configFor(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid range parameters: %v", err)), nil
	}

	output, err := core.GetAnalysisResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}
	return textResult(map[string]any{
		"range":  output.Selected,
		"days":   schema.CellDays(output.Days),
		"status": output.Status.Keyed(),
	}), nil
}
