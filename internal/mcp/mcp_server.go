// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/cudkit/udsnap/core"
	"github.com/cudkit/udsnap/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// defaultCacheCapacity is used when the base config carries no capacity.
const defaultCacheCapacity = 128

// NewMCPServer initializes and configures the udsnap MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager) (*server.MCPServer, error) {
	capacity := baseCfg.CacheCapacity
	if capacity <= 0 {
		capacity = defaultCacheCapacity
	}
	cache, err := core.NewResultCache(capacity)
	if err != nil {
		return nil, err
	}

	s := server.NewMCPServer(
		"udsnap Palette Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
		cache:   cache,
	}

	// --- 1. Tool: optimize_palette ---
	s.AddTool(mcp.NewTool("optimize_palette",
		mcp.WithDescription("Snap candidate brand colors toward the CUD catalogue and score their harmony with an anchor color."),
		mcp.WithString("anchor", mcp.Description("Anchor brand color as hex (e.g. #FF3010)."), mcp.Required()),
		mcp.WithArray("colors", mcp.Description("Candidate colors as hex strings, in palette order."), mcp.WithStringItems(), mcp.Required()),
		mcp.WithString("mode", mcp.Description("Snap mode. Defaults to 'soft'."), mcp.Enum("soft", "strict")),
		mcp.WithNumber("lambda", mcp.Description("Weight of the harmony penalty in the objective. Defaults to 0.5.")),
		mcp.WithString("priority", mcp.Description("Anchor priority. Defaults to the suggested one."), mcp.Enum("prefer-brand", "prefer-reference")),
		mcp.WithString("locale", mcp.Description("Language of explanations and warnings."), mcp.Enum("en", "ja")),
	), h.handleOptimizePalette)

	// --- 2. Tool: generate_brand_tokens ---
	s.AddTool(mcp.NewTool("generate_brand_tokens",
		mcp.WithDescription("Optimize a palette and assign stable design token identifiers to the results."),
		mcp.WithString("anchor", mcp.Description("Anchor brand color as hex."), mcp.Required()),
		mcp.WithArray("colors", mcp.Description("Candidate colors as hex strings."), mcp.WithStringItems(), mcp.Required()),
		mcp.WithString("namespace", mcp.Description("Prefix for token identifiers (e.g. 'acme').")),
		mcp.WithArray("roles", mcp.Description("Role names by position, replacing brand-primary, brand-secondary and so on."), mcp.WithStringItems()),
		mcp.WithString("mode", mcp.Description("Snap mode."), mcp.Enum("soft", "strict")),
		mcp.WithNumber("lambda", mcp.Description("Weight of the harmony penalty in the objective.")),
		mcp.WithString("locale", mcp.Description("Language of explanations and warnings."), mcp.Enum("en", "ja")),
	), h.handleGenerateBrandTokens)

	// --- 3. Tool: snap_colors ---
	s.AddTool(mcp.NewTool("snap_colors",
		mcp.WithDescription("Snap each color toward its nearest catalogue color on its own."),
		mcp.WithArray("colors", mcp.Description("Colors as hex strings."), mcp.WithStringItems(), mcp.Required()),
		mcp.WithString("mode", mcp.Description("Snap mode. Defaults to 'soft'."), mcp.Enum("soft", "strict", "prefer")),
		mcp.WithNumber("return_factor", mcp.Description("Fraction of the way a warning-zone color moves toward its reference (0 to 1).")),
		mcp.WithNumber("prefer_threshold", mcp.Description("Distance limit for prefer mode. Defaults to the warning ceiling.")),
		mcp.WithBoolean("unique", mcp.Description("Give every color a different catalogue reference while unused ones remain.")),
		mcp.WithString("locale", mcp.Description("Language of explanations."), mcp.Enum("en", "ja")),
	), h.handleSnapColors)

	// --- 4. Tool: harmony_score ---
	s.AddTool(mcp.NewTool("harmony_score",
		mcp.WithDescription("Score how well a palette harmonizes with an anchor color and suggest an improved palette."),
		mcp.WithString("anchor", mcp.Description("Anchor color as hex."), mcp.Required()),
		mcp.WithArray("colors", mcp.Description("Palette colors as hex strings."), mcp.WithStringItems(), mcp.Required()),
		mcp.WithString("locale", mcp.Description("Language of warnings and explanations."), mcp.Enum("en", "ja")),
	), h.handleHarmonyScore)

	// --- 5. Tool: classify_distance ---
	s.AddTool(mcp.NewTool("classify_distance",
		mcp.WithDescription("Classify colors into safe, warning or off zones by their distance to the nearest catalogue color."),
		mcp.WithArray("colors", mcp.Description("Colors as hex strings."), mcp.WithStringItems(), mcp.Required()),
	), h.handleClassifyDistance)

	// --- 6. Tool: list_catalogue ---
	s.AddTool(mcp.NewTool("list_catalogue",
		mcp.WithDescription("List the CUD reference catalogue with OKLab coordinates."),
	), h.handleListCatalogue)

	return s, nil
}

// StartMCPServer starts the udsnap MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.CacheManager) error {
	s, err := NewMCPServer(baseCfg, mgr)
	if err != nil {
		return err
	}
	return server.ServeStdio(s)
}
