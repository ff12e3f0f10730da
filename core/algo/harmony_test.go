package algo

import (
	"errors"
	"testing"

	"github.com/cudkit/udsnap/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHueDistanceScore(t *testing.T) {
	anchor := LCh{L: 0.6, C: 0.2, H: 30}
	tests := []struct {
		name     string
		palette  []LCh
		expected float64
	}{
		{"same hue", []LCh{{L: 0.5, C: 0.1, H: 30}}, 100},
		{"opposite hue", []LCh{{L: 0.5, C: 0.1, H: 210}}, 30},
		{"quarter turn", []LCh{{L: 0.5, C: 0.1, H: 120}}, 65},
		{"wraps around zero", []LCh{{L: 0.5, C: 0.1, H: 300}}, 65},
		{"neutral colors skipped", []LCh{{L: 0.5, C: 0.1, H: 30}, {L: 0.9, C: 0.001, H: 250}}, 100},
		{"all neutral", []LCh{{L: 0.2, C: 0.01, H: 200}, {L: 0.8, C: 0, H: 0}}, NeutralScore},
		{"empty", nil, NeutralScore},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, HueDistanceScore(anchor, tt.palette), 1e-9)
		})
	}

	t.Run("neutral anchor", func(t *testing.T) {
		gray := LCh{L: 0.6, C: 0.015, H: 250}
		assert.Equal(t, NeutralScore, HueDistanceScore(gray, []LCh{{L: 0.5, C: 0.2, H: 30}}))
	})
}

func TestLightnessDistributionScore(t *testing.T) {
	tests := []struct {
		name     string
		palette  []LCh
		expected float64
	}{
		{"empty", nil, NeutralScore},
		{"single", []LCh{{L: 0.5}}, NeutralScore},
		{"ideal spread", []LCh{{L: 0.25}, {L: 0.75}}, 100},
		{"no spread", []LCh{{L: 0.5}, {L: 0.5}}, 0},
		{"half spread", []LCh{{L: 0.375}, {L: 0.625}}, 50},
		{"too much spread", []LCh{{L: 0}, {L: 1}}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, LightnessDistributionScore(tt.palette), 1e-9)
		})
	}
}

func TestContrastFitScore(t *testing.T) {
	assert.Equal(t, NeutralScore, ContrastFitScore(nil))
	assert.Equal(t, 100.0, ContrastFitScore([]float64{4.5, 21}))
	assert.Equal(t, 50.0, ContrastFitScore([]float64{4.49, 7}))
	assert.Equal(t, 0.0, ContrastFitScore([]float64{1, 2, 3}))
}

func TestNormalizeWeights(t *testing.T) {
	w, err := NormalizeWeights(schema.HarmonyWeights{Hue: 2, Lightness: 1, Contrast: 1})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, w.Hue, 1e-9)
	assert.InDelta(t, 0.25, w.Lightness, 1e-9)
	assert.InDelta(t, 1.0, w.Sum(), 1e-9)

	_, err = NormalizeWeights(schema.HarmonyWeights{})
	assert.True(t, errors.Is(err, schema.ErrInvalidParameter))

	_, err = NormalizeWeights(schema.HarmonyWeights{Hue: -1, Lightness: 1, Contrast: 1})
	assert.True(t, errors.Is(err, schema.ErrInvalidParameter))
}

func TestWeightedTotal(t *testing.T) {
	b := schema.HarmonyBreakdown{Hue: 100, Lightness: 50, Contrast: 0}
	assert.InDelta(t, 55, WeightedTotal(b, schema.DefaultHarmonyWeights()), 1e-9)
}

func BenchmarkHarmonySubScores(b *testing.B) {
	anchor := LCh{L: 0.6, C: 0.2, H: 30}
	palette := make([]LCh, 20)
	ratios := make([]float64, 20)
	for i := range palette {
		palette[i] = LCh{L: float64(i) / 20, C: 0.1, H: float64(i * 18)}
		ratios[i] = float64(i)
	}
	for b.Loop() {
		_ = HueDistanceScore(anchor, palette)
		_ = LightnessDistributionScore(palette)
		_ = ContrastFitScore(ratios)
	}
}
