package algo

import (
	"fmt"
	"math"

	"github.com/cudkit/udsnap/internal/colorspace"
	"github.com/cudkit/udsnap/schema"
)

// Harmony scoring constants.
const (
	// NeutralChroma is the OKLCh chroma under which a color has no meaningful hue.
	NeutralChroma = 0.02

	// NeutralScore is returned when a sub-score has nothing to measure.
	NeutralScore = 50.0

	// IdealLightnessSpread is the lightness standard deviation scored at 100.
	IdealLightnessSpread = 0.25

	// MinHueScore is the score of hues 180 degrees away from the anchor.
	MinHueScore = 30.0
)

// LCh is a color in OKLCh coordinates with hue in degrees.
type LCh struct {
	L float64
	C float64
	H float64
}

// IsNeutral reports whether the color is too desaturated to carry a hue.
func (c LCh) IsNeutral() bool {
	return c.C < NeutralChroma
}

// HueDistanceScore averages the circular hue distance of chromatic palette colors to the
// anchor hue and maps 0 degrees to 100 and 180 degrees to MinHueScore.
// A neutral anchor or an all-neutral palette scores NeutralScore.
func HueDistanceScore(anchor LCh, palette []LCh) float64 {
	if anchor.IsNeutral() {
		return NeutralScore
	}
	var sum float64
	var n int
	for _, c := range palette {
		if c.IsNeutral() {
			continue
		}
		sum += colorspace.HueDistance(anchor.H, c.H)
		n++
	}
	if n == 0 {
		return NeutralScore
	}
	avg := sum / float64(n)
	return 100 - avg/180*(100-MinHueScore)
}

// LightnessDistributionScore scores the population standard deviation of palette lightness.
// It peaks at 100 for IdealLightnessSpread and falls linearly to 0 at a departure of
// IdealLightnessSpread in either direction. Palettes of fewer than two colors score NeutralScore.
func LightnessDistributionScore(palette []LCh) float64 {
	if len(palette) < 2 {
		return NeutralScore
	}
	var mean float64
	for _, c := range palette {
		mean += c.L
	}
	mean /= float64(len(palette))
	var variance float64
	for _, c := range palette {
		variance += (c.L - mean) * (c.L - mean)
	}
	sd := math.Sqrt(variance / float64(len(palette)))
	score := 100 * (1 - math.Abs(sd-IdealLightnessSpread)/IdealLightnessSpread)
	return math.Max(0, score)
}

// ContrastFitScore is the percentage of ratios meeting the 4.5:1 target. Empty input scores NeutralScore.
func ContrastFitScore(ratios []float64) float64 {
	if len(ratios) == 0 {
		return NeutralScore
	}
	var passing int
	for _, r := range ratios {
		if r >= schema.ContrastTarget {
			passing++
		}
	}
	return 100 * float64(passing) / float64(len(ratios))
}

// NormalizeWeights scales weights to sum to 1. Negative weights and a zero sum are rejected.
func NormalizeWeights(w schema.HarmonyWeights) (schema.HarmonyWeights, error) {
	if w.Hue < 0 || w.Lightness < 0 || w.Contrast < 0 {
		return schema.HarmonyWeights{}, fmt.Errorf("%w: harmony weights must be non-negative", schema.ErrInvalidParameter)
	}
	sum := w.Sum()
	if sum <= 0 || math.IsInf(sum, 0) || math.IsNaN(sum) {
		return schema.HarmonyWeights{}, fmt.Errorf("%w: harmony weights must have a positive sum", schema.ErrInvalidParameter)
	}
	return schema.HarmonyWeights{
		Hue:       w.Hue / sum,
		Lightness: w.Lightness / sum,
		Contrast:  w.Contrast / sum,
	}, nil
}

// WeightedTotal combines the breakdown with normalized weights.
func WeightedTotal(b schema.HarmonyBreakdown, w schema.HarmonyWeights) float64 {
	return b.Hue*w.Hue + b.Lightness*w.Lightness + b.Contrast*w.Contrast
}
