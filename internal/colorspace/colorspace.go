// Package colorspace wraps go-colorful with the perceptual primitives used by udsnap:
// hex normalization, OKLab distance and interpolation, OKLCh and WCAG contrast.
package colorspace

import (
	"fmt"
	"math"
	"strings"

	"github.com/cudkit/udsnap/schema"
	"github.com/lucasb-eyer/go-colorful"
)

// NormalizeHex accepts an optional '#' and 3 or 6 hex digits in any case and
// returns the canonical uppercase "#RRGGBB" form.
func NormalizeHex(s string) (string, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return "", fmt.Errorf("%w: %q must have 3 or 6 hex digits", schema.ErrInvalidColor, s)
	}
	for i := 0; i < len(h); i++ {
		if !isHexDigit(h[i]) {
			return "", fmt.Errorf("%w: %q contains non-hex character %q", schema.ErrInvalidColor, s, h[i])
		}
	}
	return "#" + strings.ToUpper(h), nil
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// Parse normalizes s and converts it to a color.
func Parse(s string) (colorful.Color, error) {
	hex, err := NormalizeHex(s)
	if err != nil {
		return colorful.Color{}, err
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("%w: %v", schema.ErrInvalidColor, err)
	}
	return c, nil
}

// MustParse is Parse for literals known to be valid.
func MustParse(s string) colorful.Color {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex clamps c into the sRGB gamut and renders it as uppercase "#RRGGBB".
func Hex(c colorful.Color) string {
	return strings.ToUpper(c.Clamped().Hex())
}

// Lab returns the OKLab coordinates of c.
func Lab(c colorful.Color) [3]float64 {
	l, a, b := c.OkLab()
	return [3]float64{l, a, b}
}

// DistanceLab is the Euclidean distance between two OKLab points.
func DistanceLab(p, q [3]float64) float64 {
	dl := p[0] - q[0]
	da := p[1] - q[1]
	db := p[2] - q[2]
	return math.Sqrt(dl*dl + da*da + db*db)
}

// Distance is the perceptual distance between two colors (Euclidean in OKLab).
func Distance(c1, c2 colorful.Color) float64 {
	return DistanceLab(Lab(c1), Lab(c2))
}

// Interpolate moves from c1 toward c2 by fraction t in OKLab and clamps the
// result back into gamut. t=0 returns c1, t=1 returns c2.
func Interpolate(c1, c2 colorful.Color, t float64) colorful.Color {
	t = math.Max(0, math.Min(1, t))
	p := Lab(c1)
	q := Lab(c2)
	return colorful.OkLab(
		p[0]+t*(q[0]-p[0]),
		p[1]+t*(q[1]-p[1]),
		p[2]+t*(q[2]-p[2]),
	).Clamped()
}

// LCh returns OKLCh lightness, chroma and hue in degrees [0, 360).
func LCh(c colorful.Color) (l, chroma, hue float64) {
	l, a, b := c.OkLab()
	chroma = math.Hypot(a, b)
	hue = math.Atan2(b, a) * 180 / math.Pi
	if hue < 0 {
		hue += 360
	}
	return l, chroma, hue
}

// FromLCh builds a gamut-clamped color from OKLCh coordinates.
func FromLCh(l, chroma, hue float64) colorful.Color {
	rad := hue * math.Pi / 180
	return colorful.OkLab(l, chroma*math.Cos(rad), chroma*math.Sin(rad)).Clamped()
}

// HueDistance is the shorter circular distance between two hues in degrees (0-180).
func HueDistance(h1, h2 float64) float64 {
	d := math.Mod(math.Abs(h1-h2), 360)
	if d > 180 {
		d = 360 - d
	}
	return d
}

// RelativeLuminance is the WCAG 2.x relative luminance of c.
func RelativeLuminance(c colorful.Color) float64 {
	r, g, b := c.Clamped().LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// ContrastRatio is the WCAG 2.x contrast ratio between two colors (1 to 21).
func ContrastRatio(c1, c2 colorful.Color) float64 {
	l1 := RelativeLuminance(c1)
	l2 := RelativeLuminance(c2)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}
