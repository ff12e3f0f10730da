package schema

// HarmonyReport bundles a harmony score with its warning and the suggested alternative.
type HarmonyReport struct {
	Anchor      string             `json:"anchor"`
	Palette     []string           `json:"palette"`
	Score       HarmonyScoreResult `json:"score"`
	Warning     *HarmonyWarning    `json:"warning,omitempty"`
	Alternative HarmonyAlternative `json:"alternative"`
}

// ColorZoneReport is the classification of one color against the catalogue.
type ColorZoneReport struct {
	Color   string       `json:"color"`
	Nearest NearestMatch `json:"nearest"`
	Detail  ZoneDetail   `json:"detail"`
}
