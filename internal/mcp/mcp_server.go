// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/huangsam/shiftgrid/internal/contract"
)

var rangeTypes = []string{"daily", "weekly", "biweekly", "monthly"}

// NewMCPServer initializes and configures the shiftgrid MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Shiftgrid Schedule Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: get_range_options ---
	s.AddTool(mcp.NewTool("get_range_options",
		mcp.WithDescription("List the selectable calendar ranges around a pivot (two on either side)."),
		mcp.WithString("range", mcp.Description("Range type. Defaults to the server configuration."), mcp.Enum(rangeTypes...)),
		mcp.WithString("pivot", mcp.Description("Pivot label: YYYY-MM-DD (daily), YYYY-Www (weekly, biweekly) or YYYY-MM (monthly). Defaults to today.")),
	), h.handleGetRangeOptions)

	// --- 2. Tool: get_days ---
	s.AddTool(mcp.NewTool("get_days",
		mcp.WithDescription("Flatten the selected range into one entry per day. An unknown selection falls back to the current range."),
		mcp.WithString("range", mcp.Description("Range type."), mcp.Enum(rangeTypes...)),
		mcp.WithString("pivot", mcp.Description("Pivot label used to generate the options.")),
		mcp.WithString("selection", mcp.Description("Label of the selected option.")),
	), h.handleGetDays)

	// --- 3. Tool: get_streaks ---
	s.AddTool(mcp.NewTool("get_streaks",
		mcp.WithDescription("Compute consecutive-day work streaks per person. Days are keyed DD/MM/YYYY."),
		mcp.WithString("range", mcp.Description("Range type."), mcp.Enum(rangeTypes...)),
		mcp.WithString("pivot", mcp.Description("Pivot label used to generate the options.")),
		mcp.WithString("selection", mcp.Description("Label of the selected option.")),
		mcp.WithString("site", mcp.Description("Only include people who belong to this site.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of summaries returned.")),
	), h.handleGetStreaks)

	// --- 4. Tool: get_continuous_windows ---
	s.AddTool(mcp.NewTool("get_continuous_windows",
		mcp.WithDescription("Classify each visible day per person: 1 = edge of a 7-day run, 2 = inside one, 3 = neither."),
		mcp.WithString("range", mcp.Description("Range type."), mcp.Enum(rangeTypes...)),
		mcp.WithString("pivot", mcp.Description("Pivot label used to generate the options.")),
		mcp.WithString("selection", mcp.Description("Label of the selected option.")),
		mcp.WithString("site", mcp.Description("Only include people who belong to this site.")),
	), h.handleGetContinuousWindows)

	return s
}

// StartMCPServer starts the shiftgrid MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
