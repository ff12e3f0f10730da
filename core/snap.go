package core

import (
	"fmt"
	"math"

	"github.com/cudkit/udsnap/core/algo"
	"github.com/cudkit/udsnap/internal/colorspace"
	"github.com/cudkit/udsnap/internal/contract"
	"github.com/cudkit/udsnap/schema"
	"github.com/lucasb-eyer/go-colorful"
)

// SnapOptions configures one snap call. ReturnFactor is used as given, so start from
// DefaultSnapOptions when the default of 0.5 is wanted. An empty Mode means soft, zero
// Thresholds mean the defaults, a zero PreferThreshold means Thresholds.WarningMax and an
// empty Locale means English.
type SnapOptions struct {
	Mode            schema.SnapMode       `json:"mode"`
	ReturnFactor    float64               `json:"return_factor"`
	Thresholds      schema.ZoneThresholds `json:"thresholds"`
	PreferThreshold float64               `json:"prefer_threshold"`
	Locale          schema.Locale         `json:"locale"`
}

// DefaultSnapOptions returns soft mode with a return factor of 0.5 and default thresholds.
func DefaultSnapOptions() SnapOptions {
	return SnapOptions{
		Mode:         schema.SoftMode,
		ReturnFactor: schema.DefaultReturnFactor,
		Thresholds:   schema.DefaultZoneThresholds(),
		Locale:       schema.EnglishLocale,
	}
}

// resolve validates the options and fills the documented defaults. The return factor is
// checked first so it fails the same way in every mode and zone.
func (o SnapOptions) resolve() (SnapOptions, error) {
	if math.IsNaN(o.ReturnFactor) || o.ReturnFactor < 0 || o.ReturnFactor > 1 {
		return o, fmt.Errorf("%w: return factor must be within [0, 1] (received %g)", schema.ErrInvalidParameter, o.ReturnFactor)
	}
	if o.Mode == "" {
		o.Mode = schema.SoftMode
	}
	if _, ok := schema.ValidSnapModes[o.Mode]; !ok {
		return o, fmt.Errorf("%w: unknown snap mode %q", schema.ErrInvalidParameter, o.Mode)
	}
	if o.Thresholds == (schema.ZoneThresholds{}) {
		o.Thresholds = schema.DefaultZoneThresholds()
	}
	if err := algo.CheckThresholds(o.Thresholds); err != nil {
		return o, err
	}
	if o.PreferThreshold < 0 || math.IsNaN(o.PreferThreshold) {
		return o, fmt.Errorf("%w: prefer threshold cannot be negative (received %g)", schema.ErrInvalidParameter, o.PreferThreshold)
	}
	if o.Locale == "" {
		o.Locale = schema.EnglishLocale
	}
	if _, ok := schema.ValidLocales[o.Locale]; !ok {
		return o, fmt.Errorf("%w: unknown locale %q", schema.ErrInvalidParameter, o.Locale)
	}
	return o, nil
}

// preferLimit is the distance up to which prefer mode replaces a color.
func (o SnapOptions) preferLimit() float64 {
	if o.PreferThreshold > 0 {
		return o.PreferThreshold
	}
	return o.Thresholds.WarningMax
}

// SoftSnap applies the snap policy of opts to a single color.
func SoftSnap(cat contract.Catalogue, color string, opts SnapOptions) (schema.SnapResult, error) {
	opts, err := opts.resolve()
	if err != nil {
		return schema.SnapResult{}, err
	}
	hex, c, err := parseColor(color)
	if err != nil {
		return schema.SnapResult{}, err
	}
	return snapWithMatch(c, hex, cat.Nearest(c), opts), nil
}

// SoftSnapPalette snaps every color with the same options, preserving order.
// A malformed entry fails the whole call before any color is snapped.
func SoftSnapPalette(cat contract.Catalogue, colors []string, opts SnapOptions) ([]schema.SnapResult, error) {
	opts, hexes, parsed, err := preparePalette(colors, opts)
	if err != nil {
		return nil, err
	}
	results := make([]schema.SnapResult, len(parsed))
	for i, c := range parsed {
		results[i] = snapWithMatch(c, hexes[i], cat.Nearest(c), opts)
	}
	return results, nil
}

// SnapPaletteUnique is SoftSnapPalette that snaps each color toward the nearest reference
// not yet used by an earlier color. Once every reference is used, the plain nearest
// reference is reused.
func SnapPaletteUnique(cat contract.Catalogue, colors []string, opts SnapOptions) ([]schema.SnapResult, error) {
	opts, hexes, parsed, err := preparePalette(colors, opts)
	if err != nil {
		return nil, err
	}
	used := make(map[string]bool, cat.Len())
	results := make([]schema.SnapResult, len(parsed))
	for i, c := range parsed {
		match, ok := cat.NearestExcluding(c, used)
		if !ok {
			match = cat.Nearest(c)
		}
		used[match.Reference.ID] = true
		results[i] = snapWithMatch(c, hexes[i], match, opts)
	}
	return results, nil
}

func preparePalette(colors []string, opts SnapOptions) (SnapOptions, []string, []colorful.Color, error) {
	opts, err := opts.resolve()
	if err != nil {
		return opts, nil, nil, err
	}
	if len(colors) == 0 {
		return opts, nil, nil, fmt.Errorf("%w: no colors to snap", schema.ErrEmptyInput)
	}
	hexes := make([]string, len(colors))
	parsed := make([]colorful.Color, len(colors))
	for i, s := range colors {
		hexes[i], parsed[i], err = parseColor(s)
		if err != nil {
			return opts, nil, nil, fmt.Errorf("color %d: %w", i, err)
		}
	}
	return opts, hexes, parsed, nil
}

func parseColor(s string) (string, colorful.Color, error) {
	hex, err := colorspace.NormalizeHex(s)
	if err != nil {
		return "", colorful.Color{}, err
	}
	c, err := colorspace.Parse(hex)
	if err != nil {
		return "", colorful.Color{}, err
	}
	return hex, c, nil
}

// snapWithMatch is the per-color decision. opts must already be resolved. The zone is
// always the zone of the original distance.
func snapWithMatch(c colorful.Color, hex string, match schema.NearestMatch, opts SnapOptions) schema.SnapResult {
	ref := colorspace.MustParse(match.Reference.Hex)
	zone := algo.Classify(match.Distance, opts.Thresholds)

	out := c
	snapped := false
	derivation := schema.ReferenceDerivation
	// Distances are measured on the OKLab path, before 8-bit rounding of ResultColor.
	resultDistance := match.Distance

	switch opts.Mode {
	case schema.StrictMode:
		out, snapped, derivation = ref, true, schema.StrictSnapDerivation
		resultDistance = 0
	case schema.PreferMode:
		if match.Distance <= opts.preferLimit() {
			out, snapped, derivation = ref, true, schema.StrictSnapDerivation
			resultDistance = 0
		}
	default:
		switch zone {
		case schema.WarningZone:
			if opts.ReturnFactor > 0 {
				out = colorspace.Interpolate(c, ref, opts.ReturnFactor)
				if colorspace.Hex(out) != hex {
					snapped, derivation = true, schema.SoftSnapDerivation
					resultDistance = (1 - opts.ReturnFactor) * match.Distance
				}
			}
		case schema.OffZone:
			// Stop where the remaining distance equals WarningMax.
			t := 1 - opts.Thresholds.WarningMax/match.Distance
			out = colorspace.Interpolate(c, ref, t)
			snapped, derivation = true, schema.SoftSnapDerivation
			resultDistance = opts.Thresholds.WarningMax
		}
	}

	resultHex := colorspace.Hex(out)
	if !snapped {
		resultHex = hex
	}

	r := schema.SnapResult{
		OriginalColor:  hex,
		ResultColor:    resultHex,
		Zone:           zone,
		Distance:       match.Distance,
		ResultDistance: resultDistance,
		Snapped:        snapped,
		Nearest:        match,
		DistanceDelta:  match.Distance - resultDistance,
		Derivation: schema.Derivation{
			Type:           derivation,
			ReferenceID:    match.Reference.ID,
			ReferenceColor: match.Reference.Hex,
			BrandColor:     hex,
		},
	}
	r.Explanation = explainSnap(opts.Locale, r, opts, opts.preferLimit())
	return r
}
