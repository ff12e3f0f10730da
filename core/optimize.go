package core

import (
	"fmt"
	"math"
	"time"

	"github.com/cudkit/udsnap/core/algo"
	"github.com/cudkit/udsnap/internal/colorspace"
	"github.com/cudkit/udsnap/internal/contract"
	"github.com/cudkit/udsnap/schema"
	"github.com/lucasb-eyer/go-colorful"
)

// OptimizeOptions configures OptimizePalette. Lambda, ReturnFactor and HarmonyThreshold are
// used as given, so start from DefaultOptimizeOptions. An empty Mode means soft, and zero
// Thresholds, Weights or Locale mean their defaults.
type OptimizeOptions struct {
	Lambda           float64               `json:"lambda"`
	Mode             schema.SnapMode       `json:"mode"`
	Thresholds       schema.ZoneThresholds `json:"thresholds"`
	ReturnFactor     float64               `json:"return_factor"`
	Weights          schema.HarmonyWeights `json:"weights"`
	Locale           schema.Locale         `json:"locale"`
	HarmonyThreshold float64               `json:"harmony_threshold"`
}

// DefaultOptimizeOptions returns soft mode with lambda 0.5 and a return factor of 0.5.
func DefaultOptimizeOptions() OptimizeOptions {
	return OptimizeOptions{
		Lambda:           schema.DefaultLambda,
		Mode:             schema.SoftMode,
		Thresholds:       schema.DefaultZoneThresholds(),
		ReturnFactor:     schema.DefaultReturnFactor,
		Weights:          schema.DefaultHarmonyWeights(),
		Locale:           schema.EnglishLocale,
		HarmonyThreshold: schema.DefaultHarmonyThreshold,
	}
}

// resolve validates the options and fills the documented defaults.
func (o OptimizeOptions) resolve() (OptimizeOptions, error) {
	if o.Lambda < 0 || math.IsNaN(o.Lambda) || math.IsInf(o.Lambda, 0) {
		return o, fmt.Errorf("%w: lambda must be a non-negative number (received %g)", schema.ErrInvalidParameter, o.Lambda)
	}
	if o.Mode == "" {
		o.Mode = schema.SoftMode
	}
	if _, ok := schema.ValidOptimizeModes[o.Mode]; !ok {
		return o, fmt.Errorf("%w: optimizer mode must be soft or strict (received %q)", schema.ErrInvalidParameter, o.Mode)
	}
	if o.Weights == (schema.HarmonyWeights{}) {
		o.Weights = schema.DefaultHarmonyWeights()
	}
	w, err := algo.NormalizeWeights(o.Weights)
	if err != nil {
		return o, err
	}
	o.Weights = w

	snap, err := o.snapOptions().resolve()
	if err != nil {
		return o, err
	}
	o.Thresholds = snap.Thresholds
	o.Locale = snap.Locale
	return o, nil
}

func (o OptimizeOptions) snapOptions() SnapOptions {
	return SnapOptions{
		Mode:         o.Mode,
		ReturnFactor: o.ReturnFactor,
		Thresholds:   o.Thresholds,
		Locale:       o.Locale,
	}
}

// SuggestedID returns the per-position token identifier.
func SuggestedID(position int) string {
	switch position {
	case 0:
		return "brand-primary"
	case 1:
		return "brand-secondary"
	case 2:
		return "brand-tertiary"
	default:
		return fmt.Sprintf("brand-accent-%d", position-2)
	}
}

// CalculateObjective sums the post-snap distances of palette and adds the harmony penalty.
func CalculateObjective(palette []schema.OptimizedColor, harmonyTotal, lambda float64) float64 {
	distances := make([]float64, len(palette))
	for i, c := range palette {
		distances[i] = c.ResultDistance
	}
	return algo.CalculateObjective(distances, harmonyTotal, lambda)
}

// OptimizePalette snaps every candidate, scores the result against the anchor's effective
// color and reports compliance, warnings and alternatives. The output mirrors candidate order.
func OptimizePalette(cat contract.Catalogue, candidates []string, anchor schema.AnchorState, opts OptimizeOptions) (schema.OptimizationResult, error) {
	start := time.Now()

	if len(candidates) == 0 {
		return schema.OptimizationResult{}, fmt.Errorf("%w: no candidate colors", schema.ErrEmptyInput)
	}
	opts, err := opts.resolve()
	if err != nil {
		return schema.OptimizationResult{}, err
	}
	_, effective, err := parseColor(anchor.EffectiveColor)
	if err != nil {
		return schema.OptimizationResult{}, fmt.Errorf("anchor: %w", err)
	}

	hexes := make([]string, len(candidates))
	parsed := make([]colorful.Color, len(candidates))
	for i, s := range candidates {
		if hexes[i], parsed[i], err = parseColor(s); err != nil {
			return schema.OptimizationResult{}, fmt.Errorf("candidate %d: %w", i, err)
		}
	}

	snapOpts := opts.snapOptions()
	colors := make([]schema.OptimizedColor, len(parsed))
	snappedColors := make([]colorful.Color, len(parsed))
	compliant := 0
	for i, c := range parsed {
		sr := snapWithMatch(c, hexes[i], cat.Nearest(c), snapOpts)
		id := SuggestedID(i)
		colors[i] = schema.OptimizedColor{
			SnapResult:  sr,
			Position:    i,
			SuggestedID: id,
			Token:       schema.BrandTokenRef{ID: id, Derivation: sr.Derivation},
		}
		snappedColors[i] = colorspace.MustParse(sr.ResultColor)
		if sr.Zone.IsCompliant() {
			compliant++
		}
	}

	harmony := scoreHarmony(effective, snappedColors, opts.Weights)
	result := schema.OptimizationResult{
		Colors:         colors,
		Objective:      CalculateObjective(colors, harmony.Total, opts.Lambda),
		ComplianceRate: algo.ComplianceRate(compliant, len(colors)),
		Harmony:        harmony,
		HarmonyWarning: GenerateWarning(harmony, opts.HarmonyThreshold, opts.Locale),
		Warnings:       []string{},
		Alternatives:   []schema.Alternative{},
		Mode:           opts.Mode,
		Lambda:         opts.Lambda,
	}

	if opts.Mode == schema.SoftMode {
		reportOffZone(&result, opts.Locale)
	}

	result.ComputedIn = time.Since(start)
	return result, nil
}

// reportOffZone adds one summary warning, one warning per off-zone color and one
// alternative per off-zone color.
func reportOffZone(result *schema.OptimizationResult, locale schema.Locale) {
	var off []schema.OptimizedColor
	for _, c := range result.Colors {
		if c.Zone == schema.OffZone {
			off = append(off, c)
		}
	}
	result.OffZoneCount = len(off)
	if len(off) == 0 {
		return
	}

	p := newPrinter(locale)
	result.Warnings = append(result.Warnings, p.Sprintf(msgOptimizeOffSummary, len(off), len(result.Colors)))
	for _, c := range off {
		ref := c.Nearest.Reference
		result.Warnings = append(result.Warnings,
			p.Sprintf(msgOptimizeOffColor, c.OriginalColor, c.Distance, ref.ID, ref.Name(locale)))
		result.Alternatives = append(result.Alternatives, schema.Alternative{
			OriginalColor:      c.OriginalColor,
			SuggestedColor:     ref.Hex,
			SuggestedReference: ref.ID,
			Reason:             p.Sprintf(msgOptimizeAlternative, ref.ID, ref.Name(locale)),
		})
	}
}
