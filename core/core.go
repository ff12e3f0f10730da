// Package core has the snapping, harmony and optimization engine and the command executors built on it.
package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cudkit/udsnap/core/algo"
	"github.com/cudkit/udsnap/internal/catalogue"
	"github.com/cudkit/udsnap/internal/contract"
	"github.com/cudkit/udsnap/internal/outwriter"
	"github.com/cudkit/udsnap/schema"
)

// out renders every executor result in the configured output format.
var out = outwriter.NewOutWriter()

// ExecutorFunc defines the function signature for executing the udsnap commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error

// ExecuteOptimize optimizes the configured palette against the anchor and prints the result.
// It serves as the main entry point for the 'optimize' command.
func ExecuteOptimize(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	result, duration, err := GetOptimizeResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return out.WritePalette(result, cfg, duration)
}

// GetOptimizeResults runs the optimizer through the configured caches and records the run.
func GetOptimizeResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (schema.PaletteResult, time.Duration, error) {
	start := time.Now()
	cat := catalogue.Default()
	logRunHeader(ctx, cfg, "Optimize")

	result, err := generatePalette(cat, paletteRequestFromConfig(cfg), optimizerFor(ctx, cat, mgr))
	if err != nil {
		return schema.PaletteResult{}, 0, err
	}
	recordRun(cfg, mgr, start, result.Optimization)
	return result, time.Since(start), nil
}

// ExecuteTokens generates brand tokens for the configured palette and prints them.
func ExecuteTokens(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	result, duration, err := GetTokenResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return out.WriteTokens(result, cfg, duration)
}

// GetTokenResults is GetOptimizeResults plus namespaced token identifiers.
func GetTokenResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (schema.BrandTokenResult, time.Duration, error) {
	start := time.Now()
	cat := catalogue.Default()
	logRunHeader(ctx, cfg, "Tokens")

	topts := TokenOptions{Namespace: cfg.Namespace, RoleNames: cfg.Roles}
	result, err := generateBrandTokens(cat, paletteRequestFromConfig(cfg), topts, optimizerFor(ctx, cat, mgr))
	if err != nil {
		return schema.BrandTokenResult{}, 0, err
	}
	recordRun(cfg, mgr, start, result.Optimization)
	return result, time.Since(start), nil
}

// ExecuteSnap snaps each configured color on its own and prints the results.
func ExecuteSnap(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	results, duration, err := GetSnapResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return out.WriteSnaps(results, cfg, duration)
}

// GetSnapResults snaps the configured colors. With cfg.Unique every color targets a
// different reference while unused ones remain.
func GetSnapResults(ctx context.Context, cfg *contract.Config, _ contract.CacheManager) ([]schema.SnapResult, time.Duration, error) {
	start := time.Now()
	cat := catalogue.Default()
	logRunHeader(ctx, cfg, "Snap")

	opts := snapOptionsFromConfig(cfg)
	var results []schema.SnapResult
	var err error
	if cfg.Unique {
		results, err = SnapPaletteUnique(cat, cfg.Colors, opts)
	} else {
		results, err = SoftSnapPalette(cat, cfg.Colors, opts)
	}
	if err != nil {
		return nil, 0, err
	}
	return results, time.Since(start), nil
}

// ExecuteHarmony scores the configured palette against the anchor and prints the report.
func ExecuteHarmony(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	report, duration, err := GetHarmonyResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return out.WriteHarmony(report, cfg, duration)
}

// GetHarmonyResults scores the palette as given, without snapping it first.
func GetHarmonyResults(ctx context.Context, cfg *contract.Config, _ contract.CacheManager) (schema.HarmonyReport, time.Duration, error) {
	start := time.Now()
	if cfg.Anchor == "" {
		return schema.HarmonyReport{}, 0, errors.New("--anchor is required")
	}
	logRunHeader(ctx, cfg, "Harmony")

	score, err := HarmonyScore(cfg.Anchor, cfg.Colors, cfg.Weights)
	if err != nil {
		return schema.HarmonyReport{}, 0, err
	}
	alt, err := SuggestAlternative(cfg.Anchor, cfg.Colors, cfg.Weights, cfg.Locale)
	if err != nil {
		return schema.HarmonyReport{}, 0, err
	}
	anchor, _, _ := parseColor(cfg.Anchor)
	return schema.HarmonyReport{
		Anchor:      anchor,
		Palette:     alt.OriginalPalette,
		Score:       score,
		Warning:     GenerateWarning(score, cfg.HarmonyThreshold, cfg.Locale),
		Alternative: alt,
	}, time.Since(start), nil
}

// ExecuteAnchor creates the anchor state and prints it.
func ExecuteAnchor(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	anchor, duration, err := GetAnchorResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return out.WriteAnchor(anchor, cfg, duration)
}

// GetAnchorResults uses --anchor, or the first color when no anchor flag is given.
func GetAnchorResults(_ context.Context, cfg *contract.Config, _ contract.CacheManager) (schema.AnchorState, time.Duration, error) {
	start := time.Now()
	hex := cfg.Anchor
	if hex == "" && len(cfg.Colors) > 0 {
		hex = cfg.Colors[0]
	}
	if hex == "" {
		return schema.AnchorState{}, 0, fmt.Errorf("%w: no anchor color", schema.ErrEmptyInput)
	}
	anchor, err := resolveAnchor(catalogue.Default(), PaletteRequest{Anchor: hex, Priority: cfg.Priority})
	if err != nil {
		return schema.AnchorState{}, 0, err
	}
	return anchor, time.Since(start), nil
}

// ExecuteZone classifies each configured color and prints the zones.
func ExecuteZone(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	reports, duration, err := GetZoneResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return out.WriteZones(reports, cfg, duration)
}

// GetZoneResults measures each color against its nearest reference and classifies the distance.
func GetZoneResults(_ context.Context, cfg *contract.Config, _ contract.CacheManager) ([]schema.ColorZoneReport, time.Duration, error) {
	start := time.Now()
	if len(cfg.Colors) == 0 {
		return nil, 0, fmt.Errorf("%w: no colors to classify", schema.ErrEmptyInput)
	}
	if err := algo.CheckThresholds(cfg.Thresholds); err != nil {
		return nil, 0, err
	}
	cat := catalogue.Default()
	reports := make([]schema.ColorZoneReport, len(cfg.Colors))
	for i, s := range cfg.Colors {
		hex, c, err := parseColor(s)
		if err != nil {
			return nil, 0, fmt.Errorf("color %d: %w", i, err)
		}
		nearest := cat.Nearest(c)
		reports[i] = schema.ColorZoneReport{
			Color:   hex,
			Nearest: nearest,
			Detail:  algo.ClassifyWithDetail(nearest.Distance, cfg.Thresholds),
		}
	}
	return reports, time.Since(start), nil
}

// ExecuteCatalogue prints the reference catalogue. It needs no input colors.
func ExecuteCatalogue(_ context.Context, cfg *contract.Config, _ contract.CacheManager) error {
	return out.WriteCatalogue(catalogue.Default().Entries(), cfg)
}

// optimizerFor chains the in-process cache from ctx, the durable result store and the optimizer.
func optimizerFor(ctx context.Context, cat contract.Catalogue, mgr contract.CacheManager) optimizeFunc {
	next := durableOptimizer(cat, mgr.GetResultStore())
	if cache := resultCacheFrom(ctx); cache != nil {
		return cache.wrap(next)
	}
	return next
}

func paletteRequestFromConfig(cfg *contract.Config) PaletteRequest {
	return PaletteRequest{
		Anchor:     cfg.Anchor,
		Candidates: cfg.Colors,
		Priority:   cfg.Priority,
		Options: OptimizeOptions{
			Lambda:           cfg.Lambda,
			Mode:             cfg.Mode,
			Thresholds:       cfg.Thresholds,
			ReturnFactor:     cfg.ReturnFactor,
			Weights:          cfg.Weights,
			Locale:           cfg.Locale,
			HarmonyThreshold: cfg.HarmonyThreshold,
		},
	}
}

func snapOptionsFromConfig(cfg *contract.Config) SnapOptions {
	return SnapOptions{
		Mode:            cfg.Mode,
		ReturnFactor:    cfg.ReturnFactor,
		Thresholds:      cfg.Thresholds,
		PreferThreshold: cfg.PreferThreshold,
		Locale:          cfg.Locale,
	}
}

// recordRun stores a finished optimization in the run store when one is configured.
// Tracking failures are reported as warnings and never fail the command.
func recordRun(cfg *contract.Config, mgr contract.CacheManager, start time.Time, result schema.OptimizationResult) {
	store := mgr.GetRunStore()
	if store == nil {
		return
	}
	configParams := map[string]any{
		"anchor":            cfg.Anchor,
		"mode":              string(cfg.Mode),
		"lambda":            cfg.Lambda,
		"return_factor":     cfg.ReturnFactor,
		"harmony_threshold": cfg.HarmonyThreshold,
		"thresholds":        cfg.Thresholds,
		"weights":           cfg.Weights,
		"locale":            string(cfg.Locale),
		"cache_hit":         result.CacheHit,
	}
	runID, _, err := store.BeginRun(start, result.Mode, result.Lambda, configParams)
	if err != nil {
		contract.LogWarn("Run tracking initialization failed", err)
		return
	}
	if runID <= 0 {
		return
	}
	if err := store.RecordColors(runID, result.Colors); err != nil {
		contract.LogWarn("Failed to record run colors", err)
	}
	summary := schema.RunSummary{
		EndTime:        time.Now(),
		TotalColors:    len(result.Colors),
		ComplianceRate: result.ComplianceRate,
		HarmonyTotal:   result.Harmony.Total,
		Objective:      result.Objective,
	}
	if err := store.EndRun(runID, summary); err != nil {
		contract.LogWarn("Failed to finalize run tracking", err)
	}
}
