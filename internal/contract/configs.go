package contract

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/cudkit/udsnap/schema"
)

// Default values for configuration.
const (
	DefaultPrecision     = 3
	MaxPrecision         = 6
	DefaultCacheCapacity = 128
)

// ZonesRawInput holds zone threshold overrides from the YAML config file.
type ZonesRawInput struct {
	Safe    *float64 `mapstructure:"safe"`
	Warning *float64 `mapstructure:"warning"`
}

// WeightsRawInput holds harmony weight overrides from the YAML config file.
type WeightsRawInput struct {
	Hue       *float64 `mapstructure:"hue"`
	Lightness *float64 `mapstructure:"lightness"`
	Contrast  *float64 `mapstructure:"contrast"`
}

// Config holds the runtime configuration for a udsnap command.
// This struct remains the "final, validated" config.
type Config struct {
	Anchor   string
	Colors   []string
	Priority schema.Priority // empty means the suggested priority

	Mode             schema.SnapMode
	Lambda           float64
	ReturnFactor     float64
	PreferThreshold  float64
	HarmonyThreshold float64
	Thresholds       schema.ZoneThresholds
	Weights          schema.HarmonyWeights
	Locale           schema.Locale
	Unique           bool

	Namespace string
	Roles     []string

	Precision  int
	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)

	CacheCapacity  int
	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext

	RunsBackend   schema.DatabaseBackend
	RunsDBConnect string // Please use env var as this is plaintext

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	ColorArgs []string

	// --- Fields from rootCmd.PersistentFlags() ---
	Precision      int    `mapstructure:"precision"`
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	Width          int    `mapstructure:"width"`
	Locale         string `mapstructure:"locale"`
	CacheCapacity  int    `mapstructure:"cache-capacity"`
	CacheBackend   string `mapstructure:"cache-backend"`
	CacheDBConnect string `mapstructure:"cache-db-connect"`
	RunsBackend    string `mapstructure:"runs-backend"`
	RunsDBConnect  string `mapstructure:"runs-db-connect"`
	Emoji          string `mapstructure:"emoji"`
	Color          string `mapstructure:"color"`

	// --- Fields shared by the palette commands ---
	Input            string  `mapstructure:"input"`
	Anchor           string  `mapstructure:"anchor"`
	Priority         string  `mapstructure:"priority"`
	Mode             string  `mapstructure:"mode"`
	Lambda           float64 `mapstructure:"lambda"`
	ReturnFactor     float64 `mapstructure:"return-factor"`
	PreferThreshold  float64 `mapstructure:"prefer-threshold"`
	HarmonyThreshold float64 `mapstructure:"harmony-threshold"`
	ZonesStr         string  `mapstructure:"zones-override"`
	WeightsStr       string  `mapstructure:"weights-override"`

	// --- Fields from snapCmd.Flags() ---
	Unique bool `mapstructure:"unique"`

	// --- Fields from tokensCmd.Flags() ---
	Namespace string `mapstructure:"namespace"`
	Roles     string `mapstructure:"roles"`

	// --- Zone thresholds from config file ---
	Zones ZonesRawInput `mapstructure:"zones"`

	// --- Harmony weights from config file ---
	Weights WeightsRawInput `mapstructure:"weights"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Colors != nil {
		clone.Colors = make([]string, len(c.Colors))
		copy(clone.Colors, c.Colors)
	}
	if c.Roles != nil {
		clone.Roles = make([]string, len(c.Roles))
		copy(clone.Roles, c.Roles)
	}
	return &clone
}

// ProcessAndValidate performs all complex parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processEngineOptions(cfg, input); err != nil {
		return err
	}
	if err := processZoneThresholds(cfg, input); err != nil {
		return err
	}
	if err := processHarmonyWeights(cfg, input); err != nil {
		return err
	}
	if err := resolvePaletteInput(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates cache and run history backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Cache Backend Validation ---
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return err
	}

	// --- Runs Backend Validation ---
	cfg.RunsBackend = schema.DatabaseBackend(strings.ToLower(input.RunsBackend))
	if cfg.RunsBackend == "" {
		return nil
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.RunsBackend]; !ok {
		return fmt.Errorf("invalid runs backend '%s'. must be sqlite, mysql, postgresql, none", input.RunsBackend)
	}
	cfg.RunsDBConnect = input.RunsDBConnect
	if err := ValidateDatabaseConnectionString(cfg.RunsBackend, cfg.RunsDBConnect); err != nil {
		return err
	}

	// SQLite cache and runs must not share a file
	if cfg.CacheBackend == schema.SQLiteBackend && cfg.RunsBackend == schema.SQLiteBackend {
		cacheDBPath := cfg.CacheDBConnect
		if cacheDBPath == "" {
			cacheDBPath = GetCacheDBFilePath()
		}
		runsDBPath := cfg.RunsDBConnect
		if runsDBPath == "" {
			runsDBPath = GetRunsDBFilePath()
		}
		if cacheDBPath == runsDBPath {
			return fmt.Errorf("cache and runs storage must use different SQLite database files. Both resolve to %q", cacheDBPath)
		}
	}
	return nil
}

// validateSimpleInputs processes and validates the output and storage fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.Unique = input.Unique
	cfg.Namespace = strings.TrimSpace(input.Namespace)

	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Precision < 1 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 1 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", cfg.Output)
	}

	cfg.Locale = schema.Locale(strings.ToLower(input.Locale))
	if _, ok := schema.ValidLocales[cfg.Locale]; !ok {
		return fmt.Errorf("invalid locale '%s'. must be en, ja", input.Locale)
	}

	if input.CacheCapacity <= 0 {
		return fmt.Errorf("cache-capacity must be greater than 0 (received %d)", input.CacheCapacity)
	}
	cfg.CacheCapacity = input.CacheCapacity

	if input.Roles != "" {
		cfg.Roles = nil
		for r := range strings.SplitSeq(input.Roles, ",") {
			if trimmed := strings.TrimSpace(r); trimmed != "" {
				cfg.Roles = append(cfg.Roles, trimmed)
			}
		}
	}

	return validateBackendConfigs(cfg, input)
}

// processEngineOptions validates the snap and optimizer parameters. Out-of-range values
// are rejected, never clamped.
func processEngineOptions(cfg *Config, input *ConfigRawInput) error {
	cfg.Mode = schema.SnapMode(strings.ToLower(input.Mode))
	if _, ok := schema.ValidSnapModes[cfg.Mode]; !ok {
		return fmt.Errorf("invalid mode '%s'. must be soft, strict, prefer", input.Mode)
	}

	if input.Priority != "" {
		cfg.Priority = schema.Priority(strings.ToLower(input.Priority))
		if _, ok := schema.ValidPriorities[cfg.Priority]; !ok {
			return fmt.Errorf("invalid priority '%s'. must be prefer-brand, prefer-reference", input.Priority)
		}
	}

	if input.Lambda < 0 || math.IsNaN(input.Lambda) || math.IsInf(input.Lambda, 0) {
		return fmt.Errorf("lambda must be a non-negative number (received %g)", input.Lambda)
	}
	cfg.Lambda = input.Lambda

	if input.ReturnFactor < 0 || input.ReturnFactor > 1 || math.IsNaN(input.ReturnFactor) {
		return fmt.Errorf("return-factor must be between 0 and 1 (received %g)", input.ReturnFactor)
	}
	cfg.ReturnFactor = input.ReturnFactor

	if input.PreferThreshold < 0 {
		return fmt.Errorf("prefer-threshold cannot be negative (received %g)", input.PreferThreshold)
	}
	cfg.PreferThreshold = input.PreferThreshold

	if input.HarmonyThreshold < 0 || input.HarmonyThreshold > 100 {
		return fmt.Errorf("harmony-threshold must be between 0 and 100 (received %g)", input.HarmonyThreshold)
	}
	cfg.HarmonyThreshold = input.HarmonyThreshold

	return nil
}

// processZoneThresholds starts from the defaults, applies the config file section and then
// the --zones-override flag. The result must satisfy 0 < safe < warning.
func processZoneThresholds(cfg *Config, input *ConfigRawInput) error {
	th := schema.DefaultZoneThresholds()
	if input.Zones.Safe != nil {
		th.SafeMax = *input.Zones.Safe
	}
	if input.Zones.Warning != nil {
		th.WarningMax = *input.Zones.Warning
	}

	if input.ZonesStr != "" {
		parsed, err := parseKeyValueString(input.ZonesStr, "safe", "warning")
		if err != nil {
			return fmt.Errorf("invalid --zones-override format: %w", err)
		}
		if v, ok := parsed["safe"]; ok {
			th.SafeMax = v
		}
		if v, ok := parsed["warning"]; ok {
			th.WarningMax = v
		}
	}

	if th.SafeMax <= 0 || th.WarningMax <= 0 || th.SafeMax >= th.WarningMax {
		return fmt.Errorf("zone thresholds must satisfy 0 < safe < warning (received safe=%g, warning=%g)", th.SafeMax, th.WarningMax)
	}
	cfg.Thresholds = th
	return nil
}

// processHarmonyWeights starts from the defaults, applies the config file section and then
// the --weights-override flag. Weights are normalized later by the scorer.
func processHarmonyWeights(cfg *Config, input *ConfigRawInput) error {
	w := schema.DefaultHarmonyWeights()
	if input.Weights.Hue != nil {
		w.Hue = *input.Weights.Hue
	}
	if input.Weights.Lightness != nil {
		w.Lightness = *input.Weights.Lightness
	}
	if input.Weights.Contrast != nil {
		w.Contrast = *input.Weights.Contrast
	}

	if input.WeightsStr != "" {
		parsed, err := parseKeyValueString(input.WeightsStr, "hue", "lightness", "contrast")
		if err != nil {
			return fmt.Errorf("invalid --weights-override format: %w", err)
		}
		if v, ok := parsed["hue"]; ok {
			w.Hue = v
		}
		if v, ok := parsed["lightness"]; ok {
			w.Lightness = v
		}
		if v, ok := parsed["contrast"]; ok {
			w.Contrast = v
		}
	}

	if w.Hue < 0 || w.Lightness < 0 || w.Contrast < 0 {
		return fmt.Errorf("harmony weights cannot be negative (received %+v)", w)
	}
	if w.Sum() <= 0 {
		return fmt.Errorf("harmony weights must have a positive sum")
	}
	cfg.Weights = w
	return nil
}

// resolvePaletteInput collects the anchor and candidate colors. Positional arguments win
// over the --input file and --anchor wins over the file's anchor. Hex values are validated
// by the engine, not here.
func resolvePaletteInput(cfg *Config, input *ConfigRawInput) error {
	var file PaletteFile
	if input.Input != "" {
		var err error
		file, err = LoadPaletteFile(input.Input)
		if err != nil {
			return err
		}
	}

	cfg.Anchor = strings.TrimSpace(input.Anchor)
	if cfg.Anchor == "" {
		cfg.Anchor = file.Anchor
	}

	cfg.Colors = nil
	for _, c := range input.ColorArgs {
		for part := range strings.SplitSeq(c, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				cfg.Colors = append(cfg.Colors, trimmed)
			}
		}
	}
	if len(cfg.Colors) == 0 {
		cfg.Colors = file.Colors
	}
	if len(cfg.Roles) == 0 {
		cfg.Roles = file.Roles
	}
	return nil
}

// parseKeyValueString parses a string like "safe:0.05,warning:0.12" restricted to the
// allowed keys.
func parseKeyValueString(s string, allowed ...string) (map[string]float64, error) {
	result := make(map[string]float64)

	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		keyValue := strings.Split(part, ":")
		if len(keyValue) != 2 {
			return nil, fmt.Errorf("invalid format '%s', expected 'key:value'", part)
		}

		key := strings.ToLower(strings.TrimSpace(keyValue[0]))
		valueStr := strings.TrimSpace(keyValue[1])

		if !slices.Contains(allowed, key) {
			return nil, fmt.Errorf("invalid key '%s', must be one of %s", key, strings.Join(allowed, ", "))
		}

		value, err := strconv.ParseFloat(valueStr, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value '%s' for %s: %w", valueStr, key, err)
		}
		result[key] = value
	}

	return result, nil
}
