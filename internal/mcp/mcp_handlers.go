package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/cudkit/udsnap/core"
	"github.com/cudkit/udsnap/internal/catalogue"
	"github.com/cudkit/udsnap/internal/contract"
	"github.com/cudkit/udsnap/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.CacheManager
	cache   *core.ResultCache
}

// runContext suppresses headers and attaches the server's result cache.
func (h *toolHandler) runContext(ctx context.Context) context.Context {
	return core.WithResultCache(core.WithSuppressHeader(ctx), h.cache)
}

func (h *toolHandler) handleOptimizePalette(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if err := applyPaletteArgs(cfg, request); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid optimize parameters: %v", err)), nil
	}

	result, _, err := core.GetOptimizeResults(h.runContext(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("optimization failed: %v", err)), nil
	}
	return jsonResult(result)
}

func (h *toolHandler) handleGenerateBrandTokens(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if err := applyPaletteArgs(cfg, request); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid token parameters: %v", err)), nil
	}
	if ns := request.GetString("namespace", ""); ns != "" {
		cfg.Namespace = ns
	}
	if roles := request.GetStringSlice("roles", nil); len(roles) > 0 {
		cfg.Roles = roles
	}

	result, _, err := core.GetTokenResults(h.runContext(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("token generation failed: %v", err)), nil
	}
	return jsonResult(result)
}

func (h *toolHandler) handleSnapColors(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if err := applyCommonArgs(cfg, request, schema.ValidSnapModes); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid snap parameters: %v", err)), nil
	}
	cfg.ReturnFactor = request.GetFloat("return_factor", cfg.ReturnFactor)
	cfg.PreferThreshold = request.GetFloat("prefer_threshold", cfg.PreferThreshold)
	cfg.Unique = request.GetBool("unique", cfg.Unique)

	results, _, err := core.GetSnapResults(h.runContext(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("snapping failed: %v", err)), nil
	}
	return jsonResult(results)
}

func (h *toolHandler) handleHarmonyScore(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if err := applyCommonArgs(cfg, request, nil); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid harmony parameters: %v", err)), nil
	}
	cfg.Anchor = request.GetString("anchor", "")

	report, _, err := core.GetHarmonyResults(h.runContext(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("harmony scoring failed: %v", err)), nil
	}
	return jsonResult(report)
}

func (h *toolHandler) handleClassifyDistance(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.Colors = request.GetStringSlice("colors", nil)

	reports, _, err := core.GetZoneResults(h.runContext(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("classification failed: %v", err)), nil
	}
	return jsonResult(reports)
}

func (h *toolHandler) handleListCatalogue(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(catalogue.Default().Entries())
}

// applyPaletteArgs reads the arguments shared by the optimizer tools.
func applyPaletteArgs(cfg *contract.Config, request mcp.CallToolRequest) error {
	if err := applyCommonArgs(cfg, request, schema.ValidOptimizeModes); err != nil {
		return err
	}
	cfg.Anchor = request.GetString("anchor", "")
	if cfg.Anchor == "" {
		return fmt.Errorf("anchor is required")
	}

	cfg.Lambda = request.GetFloat("lambda", cfg.Lambda)
	if cfg.Lambda < 0 || math.IsNaN(cfg.Lambda) {
		return fmt.Errorf("lambda must be a non-negative number (received %g)", cfg.Lambda)
	}

	if p := request.GetString("priority", ""); p != "" {
		cfg.Priority = schema.Priority(p)
		if _, ok := schema.ValidPriorities[cfg.Priority]; !ok {
			return fmt.Errorf("invalid priority '%s'. must be prefer-brand, prefer-reference", p)
		}
	}
	return nil
}

// applyCommonArgs reads colors, mode and locale. A nil modes set leaves the mode unchecked.
func applyCommonArgs(cfg *contract.Config, request mcp.CallToolRequest, modes map[schema.SnapMode]struct{}) error {
	cfg.Colors = request.GetStringSlice("colors", nil)
	if len(cfg.Colors) == 0 {
		return fmt.Errorf("at least one color is required")
	}

	if m := request.GetString("mode", ""); m != "" {
		cfg.Mode = schema.SnapMode(m)
	}
	if modes != nil {
		if _, ok := modes[cfg.Mode]; !ok {
			return fmt.Errorf("invalid mode '%s'", cfg.Mode)
		}
	}

	if l := request.GetString("locale", ""); l != "" {
		cfg.Locale = schema.Locale(l)
		if _, ok := schema.ValidLocales[cfg.Locale]; !ok {
			return fmt.Errorf("invalid locale '%s'. must be en, ja", l)
		}
	}
	return nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}
