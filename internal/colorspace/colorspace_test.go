package colorspace

import (
	"errors"
	"testing"

	"github.com/cudkit/udsnap/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeHex(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{"lowercase no hash", "ff2800", "#FF2800", false},
		{"mixed case with hash", "#fF2800", "#FF2800", false},
		{"short form", "#abc", "#AABBCC", false},
		{"surrounding space", "  #35a16b ", "#35A16B", false},
		{"non hex digit", "#GG0000", "", true},
		{"too short", "#12345", "", true},
		{"too long", "#1234567", "", true},
		{"empty", "", "", true},
		{"named color", "red", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeHex(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, schema.ErrInvalidColor))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseRoundTrip(t *testing.T) {
	for _, hex := range []string{"#FF2800", "#000000", "#FFFFFF", "#7F878F", "#123456"} {
		c, err := Parse(hex)
		require.NoError(t, err)
		assert.Equal(t, hex, Hex(c))
	}
}

func TestDistance(t *testing.T) {
	red := MustParse("#FF2800")
	blue := MustParse("#0041FF")

	assert.InDelta(t, 0, Distance(red, red), 1e-12)
	assert.InDelta(t, Distance(red, blue), Distance(blue, red), 1e-12)
	assert.Greater(t, Distance(red, blue), 0.2)

	// Black to white spans the full OKLab lightness axis.
	assert.InDelta(t, 1.0, Distance(MustParse("#000000"), MustParse("#FFFFFF")), 0.01)
}

func TestInterpolate(t *testing.T) {
	teal := MustParse("#008080")
	gray := MustParse("#7F878F")

	assert.Equal(t, "#008080", Hex(Interpolate(teal, gray, 0)))
	assert.Equal(t, "#7F878F", Hex(Interpolate(teal, gray, 1)))

	half := Interpolate(teal, gray, 0.5)
	d := Distance(half, gray)
	assert.InDelta(t, Distance(teal, gray)/2, d, 0.01)

	// Naive RGB byte interpolation lands on a different color.
	assert.NotEqual(t, "#408488", Hex(half))
}

func TestLChRoundTrip(t *testing.T) {
	c := MustParse("#35A16B")
	l, ch, h := LCh(c)
	assert.InDelta(t, 0.634, l, 0.01)
	assert.InDelta(t, 0.128, ch, 0.01)
	assert.InDelta(t, 157.4, h, 1.0)

	back := FromLCh(l, ch, h)
	assert.Less(t, Distance(c, back), 0.001)
}

func TestHueDistance(t *testing.T) {
	assert.Equal(t, 0.0, HueDistance(10, 10))
	assert.Equal(t, 20.0, HueDistance(350, 10))
	assert.Equal(t, 180.0, HueDistance(0, 180))
	assert.Equal(t, 90.0, HueDistance(45, 315))
}

func TestContrastRatio(t *testing.T) {
	black := MustParse("#000000")
	white := MustParse("#FFFFFF")

	assert.InDelta(t, 21.0, ContrastRatio(black, white), 0.01)
	assert.InDelta(t, 21.0, ContrastRatio(white, black), 0.01)
	assert.InDelta(t, 1.0, ContrastRatio(white, white), 1e-9)
}

func FuzzNormalizeHex(f *testing.F) {
	for _, seed := range []string{"#FF2800", "abc", "#zzzzzz", "", "  #123456"} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, s string) {
		got, err := NormalizeHex(s)
		if err != nil {
			return
		}
		if len(got) != 7 || got[0] != '#' {
			t.Fatalf("unexpected canonical form %q for %q", got, s)
		}
		again, err := NormalizeHex(got)
		if err != nil || again != got {
			t.Fatalf("normalization not idempotent: %q -> %q", got, again)
		}
	})
}
