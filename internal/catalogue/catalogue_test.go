package catalogue

import (
	"errors"
	"testing"

	"github.com/cudkit/udsnap/internal/colorspace"
	"github.com/cudkit/udsnap/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogue(t *testing.T) {
	cat := Default()
	require.Equal(t, 20, cat.Len())
	assert.Len(t, cat.Group(schema.AccentGroup), 9)
	assert.Len(t, cat.Group(schema.BaseGroup), 7)
	assert.Len(t, cat.Group(schema.AchromaticGroup), 4)

	red, ok := cat.Lookup("red")
	require.True(t, ok)
	assert.Equal(t, "#FF2800", red.Hex)
	assert.Equal(t, [3]uint8{255, 40, 0}, red.RGB)
	assert.Equal(t, "赤", red.NameJA)

	_, ok = cat.Lookup("magenta")
	assert.False(t, ok)
}

func TestEntriesAreCopies(t *testing.T) {
	cat := Default()
	entries := cat.Entries()
	entries[0].Hex = "#000001"
	again, _ := cat.Lookup(entries[0].ID)
	assert.Equal(t, "#FF2800", again.Hex)
}

func TestNearestSelf(t *testing.T) {
	cat := Default()
	for _, e := range cat.Entries() {
		m := cat.Nearest(colorspace.MustParse(e.Hex))
		assert.Equal(t, e.ID, m.Reference.ID)
		assert.InDelta(t, 0, m.Distance, 1e-9)
		assert.Equal(t, schema.ExactMatch, m.MatchClass)
	}
}

func TestNearest(t *testing.T) {
	tests := []struct {
		name      string
		hex       string
		wantID    string
		wantClass schema.MatchClass
	}{
		{"slightly off red", "#FF3010", "red", schema.ExactMatch},
		{"gold", "#D4AF37", "orange", schema.NearMatch},
		{"navy", "#123456", "brown", schema.ModerateMatch},
		{"midnight", "#1A1A40", "brown", schema.OffMatch},
	}

	cat := Default()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := cat.Nearest(colorspace.MustParse(tt.hex))
			assert.Equal(t, tt.wantID, m.Reference.ID)
			assert.Equal(t, tt.wantClass, m.MatchClass)
		})
	}
}

func TestNearestExcluding(t *testing.T) {
	cat := Default()
	c := colorspace.MustParse("#FF3010")

	m, ok := cat.NearestExcluding(c, map[string]bool{"red": true})
	require.True(t, ok)
	assert.NotEqual(t, "red", m.Reference.ID)
	assert.Greater(t, m.Distance, cat.Nearest(c).Distance)

	all := make(map[string]bool)
	for _, e := range cat.Entries() {
		all[e.ID] = true
	}
	_, ok = cat.NearestExcluding(c, all)
	assert.False(t, ok)
}

func TestClassifyMatch(t *testing.T) {
	assert.Equal(t, schema.ExactMatch, ClassifyMatch(0))
	assert.Equal(t, schema.ExactMatch, ClassifyMatch(0.03))
	assert.Equal(t, schema.NearMatch, ClassifyMatch(0.031))
	assert.Equal(t, schema.NearMatch, ClassifyMatch(0.10))
	assert.Equal(t, schema.ModerateMatch, ClassifyMatch(0.15))
	assert.Equal(t, schema.ModerateMatch, ClassifyMatch(0.20))
	assert.Equal(t, schema.OffMatch, ClassifyMatch(0.2001))
}

func TestNewErrors(t *testing.T) {
	_, err := New(nil)
	assert.True(t, errors.Is(err, schema.ErrEmptyInput))

	_, err = New([]schema.ReferenceColor{{ID: "a", Hex: "#000000"}, {ID: "a", Hex: "#FFFFFF"}})
	assert.True(t, errors.Is(err, schema.ErrInvalidParameter))

	_, err = New([]schema.ReferenceColor{{ID: "bad", Hex: "nope"}})
	assert.True(t, errors.Is(err, schema.ErrInvalidColor))
}

func BenchmarkNearest(b *testing.B) {
	cat := Default()
	c := colorspace.MustParse("#123456")
	for b.Loop() {
		_ = cat.Nearest(c)
	}
}
