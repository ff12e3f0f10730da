package core

import (
	"testing"

	"github.com/cudkit/udsnap/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHarmonyScore(t *testing.T) {
	tests := []struct {
		name          string
		anchor        string
		palette       []string
		weights       schema.HarmonyWeights
		wantHue       float64
		wantLightness float64
		wantContrast  float64
		wantTotal     float64
	}{
		{
			name:          "single color equal to anchor",
			anchor:        "#FF0000",
			palette:       []string{"#FF0000"},
			weights:       schema.DefaultHarmonyWeights(),
			wantHue:       100,
			wantLightness: 50,
			wantContrast:  0,
			wantTotal:     55,
		},
		{
			name:          "neutral anchor with black and white",
			anchor:        "#FFFFFF",
			palette:       []string{"#000000", "#FFFFFF"},
			weights:       schema.DefaultHarmonyWeights(),
			wantHue:       50,
			wantLightness: 0,
			wantContrast:  50,
			wantTotal:     35,
		},
		{
			name:          "hue only weights",
			anchor:        "#FF0000",
			palette:       []string{"#FF0000"},
			weights:       schema.HarmonyWeights{Hue: 2},
			wantHue:       100,
			wantLightness: 50,
			wantContrast:  0,
			wantTotal:     100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := HarmonyScore(tt.anchor, tt.palette, tt.weights)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantHue, result.Breakdown.Hue, 1e-6)
			assert.InDelta(t, tt.wantLightness, result.Breakdown.Lightness, 1e-3)
			assert.InDelta(t, tt.wantContrast, result.Breakdown.Contrast, 1e-6)
			assert.InDelta(t, tt.wantTotal, result.Total, 1e-3)
			assert.InDelta(t, 1, result.Weights.Sum(), 1e-9)
		})
	}
}

func TestHarmonyScoreRange(t *testing.T) {
	result, err := HarmonyScore("#0041FF", []string{"#FF2800", "#35A16B", "#FAF500", "#000000"}, schema.DefaultHarmonyWeights())
	require.NoError(t, err)
	for _, v := range []float64{result.Total, result.Breakdown.Hue, result.Breakdown.Lightness, result.Breakdown.Contrast} {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 100.0)
	}
}

func TestHarmonyScoreErrors(t *testing.T) {
	_, err := HarmonyScore("#FF0000", nil, schema.DefaultHarmonyWeights())
	assert.ErrorIs(t, err, schema.ErrEmptyInput)

	_, err = HarmonyScore("#XYZXYZ", []string{"#FF0000"}, schema.DefaultHarmonyWeights())
	assert.ErrorIs(t, err, schema.ErrInvalidColor)

	_, err = HarmonyScore("#FF0000", []string{"#FF0000", "oops"}, schema.DefaultHarmonyWeights())
	assert.ErrorIs(t, err, schema.ErrInvalidColor)

	_, err = HarmonyScore("#FF0000", []string{"#FF0000"}, schema.HarmonyWeights{})
	assert.ErrorIs(t, err, schema.ErrInvalidParameter)

	_, err = HarmonyScore("#FF0000", []string{"#FF0000"}, schema.HarmonyWeights{Hue: -1, Contrast: 2})
	assert.ErrorIs(t, err, schema.ErrInvalidParameter)
}

func TestGenerateWarning(t *testing.T) {
	breakdown := func(h, l, c float64) schema.HarmonyBreakdown {
		return schema.HarmonyBreakdown{Hue: h, Lightness: l, Contrast: c}
	}

	tests := []struct {
		name            string
		result          schema.HarmonyScoreResult
		threshold       float64
		wantNil         bool
		wantSeverity    schema.Severity
		wantSuggestions int
	}{
		{"at threshold", schema.HarmonyScoreResult{Total: 70, Breakdown: breakdown(70, 70, 70)}, 70, true, "", 0},
		{"low", schema.HarmonyScoreResult{Total: 65, Breakdown: breakdown(80, 50, 65)}, 70, false, schema.LowSeverity, 1},
		{"medium", schema.HarmonyScoreResult{Total: 50, Breakdown: breakdown(40, 50, 65)}, 70, false, schema.MediumSeverity, 2},
		{"high", schema.HarmonyScoreResult{Total: 20, Breakdown: breakdown(10, 20, 30)}, 70, false, schema.HighSeverity, 3},
		{"generic suggestion", schema.HarmonyScoreResult{Total: 62, Breakdown: breakdown(62, 62, 62)}, 70, false, schema.LowSeverity, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := GenerateWarning(tt.result, tt.threshold, schema.EnglishLocale)
			if tt.wantNil {
				assert.Nil(t, w)
				return
			}
			require.NotNil(t, w)
			assert.Equal(t, tt.wantSeverity, w.Severity)
			assert.Len(t, w.Suggestions, tt.wantSuggestions)
			assert.Equal(t, tt.threshold, w.Threshold)
			assert.Equal(t, tt.result.Total, w.Total)
			assert.Contains(t, w.Message, "below the threshold")
		})
	}

	w := GenerateWarning(schema.HarmonyScoreResult{Total: 62, Breakdown: breakdown(62, 62, 62)}, 70, schema.EnglishLocale)
	require.NotNil(t, w)
	assert.Contains(t, w.Suggestions[0], "overall balance")

	ja := GenerateWarning(schema.HarmonyScoreResult{Total: 30, Breakdown: breakdown(90, 90, 0)}, 70, schema.JapaneseLocale)
	require.NotNil(t, ja)
	assert.Contains(t, ja.Message, "調和スコア")
	assert.Contains(t, ja.Suggestions[0], "4.5:1")
}

func TestSuggestAlternative(t *testing.T) {
	palette := []string{"#ff2800", "#35A16B", "#0041FF"}
	alt, err := SuggestAlternative("#0041FF", palette, schema.DefaultHarmonyWeights(), schema.EnglishLocale)
	require.NoError(t, err)

	assert.Equal(t, []string{"#FF2800", "#35A16B", "#0041FF"}, alt.OriginalPalette)
	assert.Len(t, alt.ImprovedPalette, len(palette))
	assert.Len(t, alt.Explanations, len(palette))
	assert.GreaterOrEqual(t, alt.ImprovedScore, alt.OriginalScore)

	original, err := HarmonyScore("#0041FF", palette, schema.DefaultHarmonyWeights())
	require.NoError(t, err)
	assert.InDelta(t, original.Total, alt.OriginalScore, 1e-9)

	for i, hex := range alt.OriginalPalette {
		assert.Contains(t, alt.Explanations[i], hex+": ")
	}
}

func TestSuggestAlternativeNeutralPalette(t *testing.T) {
	// Far-apart neutrals are left alone
	alt, err := SuggestAlternative("#000000", []string{"#FFFFFF"}, schema.DefaultHarmonyWeights(), schema.EnglishLocale)
	require.NoError(t, err)
	assert.Equal(t, []string{"#FFFFFF"}, alt.ImprovedPalette)
	assert.Equal(t, alt.OriginalScore, alt.ImprovedScore)
	assert.Equal(t, []string{"#FFFFFF: kept unchanged"}, alt.Explanations)
}

func TestSuggestAlternativeErrors(t *testing.T) {
	_, err := SuggestAlternative("#FF0000", []string{}, schema.DefaultHarmonyWeights(), schema.EnglishLocale)
	assert.ErrorIs(t, err, schema.ErrEmptyInput)
}

func TestShiftHue(t *testing.T) {
	tests := []struct {
		hue, target, fraction, want float64
	}{
		{0, 90, 0.3, 27},
		{350, 10, 0.5, 0},
		{10, 350, 0.5, 0},
		{180, 180, 0.3, 180},
		{90, 0, 1, 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, shiftHue(tt.hue, tt.target, tt.fraction), 1e-9, "shiftHue(%v, %v, %v)", tt.hue, tt.target, tt.fraction)
	}
}

func BenchmarkHarmonyScore(b *testing.B) {
	palette := []string{"#FF2800", "#35A16B", "#0041FF", "#FAF500", "#663300", "#C8C8CB"}
	weights := schema.DefaultHarmonyWeights()
	for b.Loop() {
		_, _ = HarmonyScore("#0041FF", palette, weights)
	}
}
