package core

import (
	"fmt"
	"math"
	"strings"

	"github.com/cudkit/udsnap/core/algo"
	"github.com/cudkit/udsnap/internal/colorspace"
	"github.com/cudkit/udsnap/schema"
	"github.com/lucasb-eyer/go-colorful"
)

// Harmony adjustment constants.
const (
	subScoreFloor       = 60.0 // sub-scores below this get a suggestion
	highSeverityGap     = 30.0
	mediumSeverityGap   = 15.0
	hueShiftFraction    = 0.3
	lightnessMinGap     = 0.3
	lightnessPush       = 0.2
	darkAnchorLightness = 0.5
)

// HarmonyScore scores palette against anchor. Weights are normalized to sum 1.
func HarmonyScore(anchor string, palette []string, weights schema.HarmonyWeights) (schema.HarmonyScoreResult, error) {
	if len(palette) == 0 {
		return schema.HarmonyScoreResult{}, fmt.Errorf("%w: palette is empty", schema.ErrEmptyInput)
	}
	_, a, err := parseColor(anchor)
	if err != nil {
		return schema.HarmonyScoreResult{}, fmt.Errorf("anchor: %w", err)
	}
	colors := make([]colorful.Color, len(palette))
	for i, s := range palette {
		if _, colors[i], err = parseColor(s); err != nil {
			return schema.HarmonyScoreResult{}, fmt.Errorf("color %d: %w", i, err)
		}
	}
	w, err := algo.NormalizeWeights(weights)
	if err != nil {
		return schema.HarmonyScoreResult{}, err
	}
	return scoreHarmony(a, colors, w), nil
}

// scoreHarmony computes the three sub-scores with already normalized weights.
func scoreHarmony(anchor colorful.Color, palette []colorful.Color, w schema.HarmonyWeights) schema.HarmonyScoreResult {
	lchs := make([]algo.LCh, len(palette))
	ratios := make([]float64, len(palette))
	for i, c := range palette {
		lchs[i] = toLCh(c)
		ratios[i] = colorspace.ContrastRatio(c, anchor)
	}
	b := schema.HarmonyBreakdown{
		Hue:       algo.HueDistanceScore(toLCh(anchor), lchs),
		Lightness: algo.LightnessDistributionScore(lchs),
		Contrast:  algo.ContrastFitScore(ratios),
	}
	return schema.HarmonyScoreResult{
		Total:     algo.WeightedTotal(b, w),
		Breakdown: b,
		Weights:   w,
	}
}

func toLCh(c colorful.Color) algo.LCh {
	l, ch, h := colorspace.LCh(c)
	return algo.LCh{L: l, C: ch, H: h}
}

// GenerateWarning returns nil when the total reaches threshold. Otherwise severity grows
// with the gap below threshold and there is one suggestion per weak sub-score.
func GenerateWarning(result schema.HarmonyScoreResult, threshold float64, locale schema.Locale) *schema.HarmonyWarning {
	if result.Total >= threshold {
		return nil
	}
	p := newPrinter(locale)

	gap := threshold - result.Total
	severity := schema.LowSeverity
	switch {
	case gap >= highSeverityGap:
		severity = schema.HighSeverity
	case gap >= mediumSeverityGap:
		severity = schema.MediumSeverity
	}

	var suggestions []string
	if result.Breakdown.Hue < subScoreFloor {
		suggestions = append(suggestions, p.Sprintf(msgHarmonyHue))
	}
	if result.Breakdown.Lightness < subScoreFloor {
		suggestions = append(suggestions, p.Sprintf(msgHarmonyLightness))
	}
	if result.Breakdown.Contrast < subScoreFloor {
		suggestions = append(suggestions, p.Sprintf(msgHarmonyContrast))
	}
	if len(suggestions) == 0 {
		suggestions = append(suggestions, p.Sprintf(msgHarmonyGeneric))
	}

	return &schema.HarmonyWarning{
		Severity:    severity,
		Total:       result.Total,
		Threshold:   threshold,
		Message:     p.Sprintf(msgHarmonyBelow, result.Total, threshold),
		Suggestions: suggestions,
	}
}

// SuggestAlternative nudges every palette color toward the anchor hue and away from the
// anchor lightness. When the nudged palette would score lower, the original palette is
// returned as the improved one, so ImprovedScore never falls below OriginalScore.
func SuggestAlternative(anchor string, palette []string, weights schema.HarmonyWeights, locale schema.Locale) (schema.HarmonyAlternative, error) {
	original, err := HarmonyScore(anchor, palette, weights)
	if err != nil {
		return schema.HarmonyAlternative{}, err
	}
	_, a, _ := parseColor(anchor)
	al, ac, ah := colorspace.LCh(a)
	p := newPrinter(locale)

	originalHex := make([]string, len(palette))
	improved := make([]colorful.Color, len(palette))
	improvedHex := make([]string, len(palette))
	explanations := make([]string, len(palette))

	for i, s := range palette {
		hex, c, _ := parseColor(s)
		originalHex[i] = hex

		l, ch, h := colorspace.LCh(c)
		var actions []string
		if ch >= algo.NeutralChroma && ac >= algo.NeutralChroma {
			h = shiftHue(h, ah, hueShiftFraction)
			actions = append(actions, p.Sprintf(msgAltHueShift))
		}
		if math.Abs(l-al) < lightnessMinGap {
			if al < darkAnchorLightness {
				l = math.Min(1, l+lightnessPush)
				actions = append(actions, p.Sprintf(msgAltLighter))
			} else {
				l = math.Max(0, l-lightnessPush)
				actions = append(actions, p.Sprintf(msgAltDarker))
			}
		}

		improvedHex[i] = hex
		improved[i] = c
		if len(actions) == 0 {
			actions = append(actions, p.Sprintf(msgAltUnchanged))
		} else {
			improvedHex[i] = colorspace.Hex(colorspace.FromLCh(l, ch, h))
			improved[i] = colorspace.MustParse(improvedHex[i])
		}
		explanations[i] = hex + ": " + strings.Join(actions, "; ")
	}

	w, _ := algo.NormalizeWeights(weights)
	better := scoreHarmony(a, improved, w)

	if better.Total < original.Total {
		for i, hex := range originalHex {
			explanations[i] = hex + ": " + p.Sprintf(msgAltReverted)
		}
		return schema.HarmonyAlternative{
			OriginalPalette: originalHex,
			ImprovedPalette: append([]string(nil), originalHex...),
			OriginalScore:   original.Total,
			ImprovedScore:   original.Total,
			Explanations:    explanations,
		}, nil
	}

	return schema.HarmonyAlternative{
		OriginalPalette: originalHex,
		ImprovedPalette: improvedHex,
		OriginalScore:   original.Total,
		ImprovedScore:   better.Total,
		Explanations:    explanations,
	}, nil
}

// shiftHue moves hue by fraction of the shorter signed arc toward target.
func shiftHue(hue, target, fraction float64) float64 {
	diff := math.Mod(target-hue+540, 360) - 180
	return math.Mod(hue+fraction*diff+360, 360)
}
