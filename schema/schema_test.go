package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZoneRank(t *testing.T) {
	assert.Less(t, SafeZone.Rank(), WarningZone.Rank())
	assert.Less(t, WarningZone.Rank(), OffZone.Rank())
	assert.True(t, SafeZone.IsCompliant())
	assert.True(t, WarningZone.IsCompliant())
	assert.False(t, OffZone.IsCompliant())
}

func TestDefaults(t *testing.T) {
	th := DefaultZoneThresholds()
	assert.Equal(t, 0.05, th.SafeMax)
	assert.Equal(t, 0.12, th.WarningMax)

	w := DefaultHarmonyWeights()
	assert.InDelta(t, 1.0, w.Sum(), 1e-9)
	assert.Equal(t, 0.4, w.Hue)
}

func TestLadderSeparation(t *testing.T) {
	// The match class ladder is coarser and must not line up with the zone ladder.
	assert.NotEqual(t, DefaultSafeMax, ExactMatchMax)
	assert.NotEqual(t, DefaultWarningMax, NearMatchMax)
}

func TestReferenceColorName(t *testing.T) {
	r := ReferenceColor{NameEN: "Red", NameJA: "赤"}
	assert.Equal(t, "Red", r.Name(EnglishLocale))
	assert.Equal(t, "赤", r.Name(JapaneseLocale))
	assert.Equal(t, "Green", ReferenceColor{NameEN: "Green"}.Name(JapaneseLocale))
}
