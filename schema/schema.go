// Package schema has models, constants and sentinel errors for all parts of udsnap.
package schema

import "time"

// ReferenceColor is one entry of the universal design catalogue.
// Entries are defined once and never mutated.
type ReferenceColor struct {
	ID     string     `json:"id"`
	Group  ColorGroup `json:"group"`
	NameEN string     `json:"name_en"`
	NameJA string     `json:"name_ja"`
	Hex    string     `json:"hex"`
	RGB    [3]uint8   `json:"rgb"`
	OKLab  [3]float64 `json:"oklab"`
}

// Name returns the localized display name, falling back to English.
func (r ReferenceColor) Name(locale Locale) string {
	if locale == JapaneseLocale && r.NameJA != "" {
		return r.NameJA
	}
	return r.NameEN
}

// NearestMatch is the answer of the catalogue distance service.
type NearestMatch struct {
	Reference  ReferenceColor `json:"reference"`
	Distance   float64        `json:"distance"`
	MatchClass MatchClass     `json:"match_class"`
}

// ZoneThresholds holds the two ordered zone ceilings. Invariant: 0 < SafeMax < WarningMax.
type ZoneThresholds struct {
	SafeMax    float64 `json:"safe_max"`
	WarningMax float64 `json:"warning_max"`
}

// ZoneDetail is the audit form of a classification.
type ZoneDetail struct {
	Zone       Zone           `json:"zone"`
	Distance   float64        `json:"distance"`
	Thresholds ZoneThresholds `json:"thresholds"`
}

// AnchorState wraps the anchor brand color. EffectiveColor is derived from the other fields.
type AnchorState struct {
	OriginalColor  string       `json:"original_color"`
	Nearest        NearestMatch `json:"nearest"`
	Priority       Priority     `json:"priority"`
	EffectiveColor string       `json:"effective_color"`
}

// Derivation records how a result color relates to the catalogue and the brand.
type Derivation struct {
	Type           DerivationType `json:"type"`
	ReferenceID    string         `json:"reference_id"`
	ReferenceColor string         `json:"reference_color"`
	BrandColor     string         `json:"brand_color"`
}

// SnapResult is the outcome of snapping one color.
type SnapResult struct {
	OriginalColor  string       `json:"original_color"`
	ResultColor    string       `json:"result_color"`
	Zone           Zone         `json:"zone"`
	Distance       float64      `json:"distance"` // pre-snap distance
	ResultDistance float64      `json:"result_distance"`
	Snapped        bool         `json:"snapped"`
	Nearest        NearestMatch `json:"nearest"`
	DistanceDelta  float64      `json:"distance_delta"` // Distance minus ResultDistance
	Derivation     Derivation   `json:"derivation"`
	Explanation    string       `json:"explanation"`
}

// BrandTokenRef is the persistence record attached to every optimized color.
type BrandTokenRef struct {
	ID         string     `json:"id"`
	Derivation Derivation `json:"derivation"`
}

// OptimizedColor is a SnapResult placed in a palette.
type OptimizedColor struct {
	SnapResult
	Position    int           `json:"position"`
	SuggestedID string        `json:"suggested_id"`
	Token       BrandTokenRef `json:"token"`
}

// HarmonyBreakdown holds the three harmony sub-scores (0-100 each).
type HarmonyBreakdown struct {
	Hue       float64 `json:"hue"`
	Lightness float64 `json:"lightness"`
	Contrast  float64 `json:"contrast"`
}

// HarmonyWeights holds the sub-score weights.
type HarmonyWeights struct {
	Hue       float64 `json:"hue" mapstructure:"hue"`
	Lightness float64 `json:"lightness" mapstructure:"lightness"`
	Contrast  float64 `json:"contrast" mapstructure:"contrast"`
}

// Sum returns the sum of all weights.
func (w HarmonyWeights) Sum() float64 {
	return w.Hue + w.Lightness + w.Contrast
}

// HarmonyScoreResult is the weighted harmony of a palette relative to an anchor.
type HarmonyScoreResult struct {
	Total     float64          `json:"total"`
	Breakdown HarmonyBreakdown `json:"breakdown"`
	Weights   HarmonyWeights   `json:"weights"` // normalized, sum 1
}

// HarmonyWarning is produced when the harmony total falls below a threshold.
type HarmonyWarning struct {
	Severity    Severity `json:"severity"`
	Total       float64  `json:"total"`
	Threshold   float64  `json:"threshold"`
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions"`
}

// HarmonyAlternative is an adjusted palette with its before and after totals.
type HarmonyAlternative struct {
	OriginalPalette []string `json:"original_palette"`
	ImprovedPalette []string `json:"improved_palette"`
	OriginalScore   float64  `json:"original_score"`
	ImprovedScore   float64  `json:"improved_score"`
	Explanations    []string `json:"explanations"`
}

// Alternative is a suggestion for a color left in the off zone.
type Alternative struct {
	OriginalColor      string `json:"original_color"`
	SuggestedColor     string `json:"suggested_color"`
	SuggestedReference string `json:"suggested_reference"`
	Reason             string `json:"reason"`
}

// OptimizationResult is the outcome of optimizing a palette. Colors mirror the candidate order.
type OptimizationResult struct {
	Colors         []OptimizedColor   `json:"colors"`
	Objective      float64            `json:"objective"`
	ComplianceRate float64            `json:"compliance_rate"`
	Harmony        HarmonyScoreResult `json:"harmony"`
	HarmonyWarning *HarmonyWarning    `json:"harmony_warning,omitempty"`
	Warnings       []string           `json:"warnings"`
	Alternatives   []Alternative      `json:"alternatives"`
	OffZoneCount   int                `json:"off_zone_count"`
	Mode           SnapMode           `json:"mode"`
	Lambda         float64            `json:"lambda"`
	ComputedIn     time.Duration      `json:"computed_in_ns"`
	CacheHit       bool               `json:"cache_hit"`
}

// PaletteResult is the plain palette shape: anchor plus optimization.
type PaletteResult struct {
	Anchor       AnchorState        `json:"anchor"`
	Optimization OptimizationResult `json:"optimization"`
}

// BrandToken is a stable output unit pairing a final color with its derivation.
type BrandToken struct {
	ID         string     `json:"id"`
	Role       string     `json:"role"`
	Hex        string     `json:"hex"`
	Position   int        `json:"position"`
	Zone       Zone       `json:"zone"`
	Derivation Derivation `json:"derivation"`
}

// ReferenceUsage lists the tokens derived from one catalogue entry.
type ReferenceUsage struct {
	ReferenceID string   `json:"reference_id"`
	Hex         string   `json:"hex"`
	NameEN      string   `json:"name_en"`
	TokenIDs    []string `json:"token_ids"`
}

// BrandTokenResult is the rich token shape with namespaced identifiers and catalogue references.
type BrandTokenResult struct {
	Anchor       AnchorState        `json:"anchor"`
	Optimization OptimizationResult `json:"optimization"`
	Tokens       []BrandToken       `json:"tokens"`
	References   []ReferenceUsage   `json:"references"`
}
