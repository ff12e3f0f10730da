package schema

// Custom string types for type safety.
type (
	// Zone is the optimizer-level bucket of a color's distance to its nearest reference.
	Zone string

	// MatchClass is the catalogue-level bucket of a color's distance to its nearest reference.
	MatchClass string

	// SnapMode selects the snapping policy.
	SnapMode string

	// DerivationType records how a result color was obtained.
	DerivationType string

	// Priority decides whether the anchor keeps the brand color or adopts the reference.
	Priority string

	// ColorGroup is the catalogue grouping of a reference color.
	ColorGroup string

	// Severity grades a harmony warning.
	Severity string

	// Locale selects the language of generated explanations.
	Locale string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for caching.
	DatabaseBackend string
)

// All zones, ordered from most to least conformant.
const (
	SafeZone    Zone = "safe"
	WarningZone Zone = "warning"
	OffZone     Zone = "off"
)

// All catalogue match classes.
const (
	ExactMatch    MatchClass = "exact"
	NearMatch     MatchClass = "near"
	ModerateMatch MatchClass = "moderate"
	OffMatch      MatchClass = "off"
)

// All snap modes supported.
const (
	StrictMode SnapMode = "strict"
	PreferMode SnapMode = "prefer"
	SoftMode   SnapMode = "soft" // default
)

// All derivation types.
const (
	ReferenceDerivation  DerivationType = "reference"
	SoftSnapDerivation   DerivationType = "soft-snap"
	StrictSnapDerivation DerivationType = "strict-snap"
)

// All anchor priorities.
const (
	PreferBrand     Priority = "prefer-brand"
	PreferReference Priority = "prefer-reference"
)

// All catalogue groups.
const (
	AccentGroup     ColorGroup = "accent"
	BaseGroup       ColorGroup = "base"
	AchromaticGroup ColorGroup = "achromatic"
)

// All harmony warning severities.
const (
	LowSeverity    Severity = "low"
	MediumSeverity Severity = "medium"
	HighSeverity   Severity = "high"
)

// All explanation locales.
const (
	EnglishLocale  Locale = "en" // default
	JapaneseLocale Locale = "ja"
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All cache backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// Zone thresholds in OKLab distance units.
const (
	DefaultSafeMax    = 0.05
	DefaultWarningMax = 0.12
)

// Match class ceilings in OKLab distance units. Kept apart from the zone thresholds.
const (
	ExactMatchMax    = 0.03
	NearMatchMax     = 0.10
	ModerateMatchMax = 0.20
)

// Optimizer and harmony defaults.
const (
	DefaultReturnFactor     = 0.5
	DefaultLambda           = 0.5
	DefaultHarmonyThreshold = 70.0
	ContrastTarget          = 4.5
)

// ValidSnapModes lists all valid snap modes.
var ValidSnapModes = map[SnapMode]struct{}{
	StrictMode: {},
	PreferMode: {},
	SoftMode:   {},
}

// ValidOptimizeModes lists the snap modes the optimizer accepts.
var ValidOptimizeModes = map[SnapMode]struct{}{
	StrictMode: {},
	SoftMode:   {},
}

// ValidPriorities lists all valid anchor priorities.
var ValidPriorities = map[Priority]struct{}{
	PreferBrand:     {},
	PreferReference: {},
}

// ValidLocales lists all valid explanation locales.
var ValidLocales = map[Locale]struct{}{
	EnglishLocale:  {},
	JapaneseLocale: {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid cache backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// Rank returns the position of the zone in the order safe < warning < off.
func (z Zone) Rank() int {
	switch z {
	case SafeZone:
		return 0
	case WarningZone:
		return 1
	default:
		return 2
	}
}

// IsCompliant reports whether the zone counts toward the compliance rate.
func (z Zone) IsCompliant() bool {
	return z == SafeZone || z == WarningZone
}

// DefaultZoneThresholds returns the default safe and warning ceilings.
func DefaultZoneThresholds() ZoneThresholds {
	return ZoneThresholds{SafeMax: DefaultSafeMax, WarningMax: DefaultWarningMax}
}

// DefaultHarmonyWeights returns the default sub-score weights.
func DefaultHarmonyWeights() HarmonyWeights {
	return HarmonyWeights{Hue: 0.4, Lightness: 0.3, Contrast: 0.3}
}
