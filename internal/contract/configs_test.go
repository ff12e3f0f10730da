package contract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cudkit/udsnap/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validInput returns the raw input produced by the default flag values.
func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		Precision:        DefaultPrecision,
		Output:           string(schema.TextOut),
		Locale:           string(schema.EnglishLocale),
		CacheCapacity:    DefaultCacheCapacity,
		CacheBackend:     string(schema.SQLiteBackend),
		Emoji:            "no",
		Color:            "yes",
		Mode:             string(schema.SoftMode),
		Lambda:           schema.DefaultLambda,
		ReturnFactor:     schema.DefaultReturnFactor,
		HarmonyThreshold: schema.DefaultHarmonyThreshold,
	}
}

func ptr(v float64) *float64 { return &v }

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		modify      func(*ConfigRawInput)
		expectError bool
	}{
		{"valid defaults", func(*ConfigRawInput) {}, false},
		{"strict mode", func(in *ConfigRawInput) { in.Mode = "STRICT" }, false},
		{"prefer mode", func(in *ConfigRawInput) { in.Mode = "prefer" }, false},
		{"invalid mode", func(in *ConfigRawInput) { in.Mode = "aggressive" }, true},
		{"negative lambda", func(in *ConfigRawInput) { in.Lambda = -0.1 }, true},
		{"zero lambda", func(in *ConfigRawInput) { in.Lambda = 0 }, false},
		{"return factor above one", func(in *ConfigRawInput) { in.ReturnFactor = 1.5 }, true},
		{"return factor below zero", func(in *ConfigRawInput) { in.ReturnFactor = -0.1 }, true},
		{"return factor one", func(in *ConfigRawInput) { in.ReturnFactor = 1 }, false},
		{"negative prefer threshold", func(in *ConfigRawInput) { in.PreferThreshold = -1 }, true},
		{"harmony threshold too high", func(in *ConfigRawInput) { in.HarmonyThreshold = 101 }, true},
		{"invalid priority", func(in *ConfigRawInput) { in.Priority = "prefer-nothing" }, true},
		{"valid priority", func(in *ConfigRawInput) { in.Priority = "prefer-reference" }, false},
		{"invalid precision (zero)", func(in *ConfigRawInput) { in.Precision = 0 }, true},
		{"invalid precision (too high)", func(in *ConfigRawInput) { in.Precision = MaxPrecision + 1 }, true},
		{"invalid output format", func(in *ConfigRawInput) { in.Output = "xml" }, true},
		{"parquet output", func(in *ConfigRawInput) { in.Output = "parquet" }, false},
		{"invalid locale", func(in *ConfigRawInput) { in.Locale = "fr" }, true},
		{"japanese locale", func(in *ConfigRawInput) { in.Locale = "JA" }, false},
		{"invalid cache capacity", func(in *ConfigRawInput) { in.CacheCapacity = 0 }, true},
		{"invalid emoji", func(in *ConfigRawInput) { in.Emoji = "sometimes" }, true},
		{"invalid cache backend", func(in *ConfigRawInput) { in.CacheBackend = "redis" }, true},
		{"mysql backend without connection string", func(in *ConfigRawInput) { in.CacheBackend = "mysql" }, true},
		{"postgresql backend without connection string", func(in *ConfigRawInput) { in.CacheBackend = "postgresql" }, true},
		{
			"mysql backend with connection string",
			func(in *ConfigRawInput) {
				in.CacheBackend = "mysql"
				in.CacheDBConnect = "user:pass@tcp(localhost:3306)/udsnap"
			},
			false,
		},
		{"none backend", func(in *ConfigRawInput) { in.CacheBackend = "none" }, false},
		{"invalid runs backend", func(in *ConfigRawInput) { in.RunsBackend = "mongo" }, true},
		{
			"same sqlite file for cache and runs",
			func(in *ConfigRawInput) {
				in.RunsBackend = "sqlite"
				in.CacheDBConnect = "/tmp/same.db"
				in.RunsDBConnect = "/tmp/same.db"
			},
			true,
		},
		{"default sqlite files differ", func(in *ConfigRawInput) { in.RunsBackend = "sqlite" }, false},
		{"inverted zones from file", func(in *ConfigRawInput) { in.Zones = ZonesRawInput{Safe: ptr(0.2), Warning: ptr(0.1)} }, true},
		{"zero safe zone", func(in *ConfigRawInput) { in.ZonesStr = "safe:0" }, true},
		{"valid zones override", func(in *ConfigRawInput) { in.ZonesStr = "safe:0.04,warning:0.15" }, false},
		{"malformed zones override", func(in *ConfigRawInput) { in.ZonesStr = "safe=0.04" }, true},
		{"unknown zone key", func(in *ConfigRawInput) { in.ZonesStr = "danger:0.3" }, true},
		{"negative weight", func(in *ConfigRawInput) { in.WeightsStr = "hue:-1" }, true},
		{"zero weights", func(in *ConfigRawInput) { in.WeightsStr = "hue:0,lightness:0,contrast:0" }, true},
		{"valid weights override", func(in *ConfigRawInput) { in.WeightsStr = "hue:2,lightness:1,contrast:1" }, false},
		{"missing input file", func(in *ConfigRawInput) { in.Input = "/does/not/exist.toml" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.modify(input)

			cfg := &Config{}
			err := ProcessAndValidate(cfg, input)

			if tt.expectError {
				assert.Error(t, err, "ProcessAndValidate should return an error for %s", tt.name)
			} else {
				assert.NoError(t, err, "ProcessAndValidate should not return an error for %s", tt.name)
			}
		})
	}
}

func TestProcessAndValidateOverridePrecedence(t *testing.T) {
	input := validInput()
	input.Zones = ZonesRawInput{Safe: ptr(0.04), Warning: ptr(0.2)}
	input.ZonesStr = "warning:0.15"
	input.Weights = WeightsRawInput{Hue: ptr(0.6)}
	input.WeightsStr = "contrast:0.1"

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))

	assert.Equal(t, schema.ZoneThresholds{SafeMax: 0.04, WarningMax: 0.15}, cfg.Thresholds)
	assert.Equal(t, schema.HarmonyWeights{Hue: 0.6, Lightness: 0.3, Contrast: 0.1}, cfg.Weights)
}

func TestProcessAndValidatePaletteInput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "palette.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
anchor = "#FF2800"
colors = ["#35A16B", "#0041FF"]
roles = ["primary", "secondary"]
`), 0o644))

	t.Run("file supplies anchor and colors", func(t *testing.T) {
		input := validInput()
		input.Input = path

		cfg := &Config{}
		require.NoError(t, ProcessAndValidate(cfg, input))
		assert.Equal(t, "#FF2800", cfg.Anchor)
		assert.Equal(t, []string{"#35A16B", "#0041FF"}, cfg.Colors)
		assert.Equal(t, []string{"primary", "secondary"}, cfg.Roles)
	})

	t.Run("flags and args win over the file", func(t *testing.T) {
		input := validInput()
		input.Input = path
		input.Anchor = "#123456"
		input.ColorArgs = []string{"#FFFFFF, #000000", "#808080"}
		input.Roles = "a,b"

		cfg := &Config{}
		require.NoError(t, ProcessAndValidate(cfg, input))
		assert.Equal(t, "#123456", cfg.Anchor)
		assert.Equal(t, []string{"#FFFFFF", "#000000", "#808080"}, cfg.Colors)
		assert.Equal(t, []string{"a", "b"}, cfg.Roles)
	})
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{Colors: []string{"#FF2800"}, Roles: []string{"primary"}, Lambda: 0.5}
	clone := cfg.Clone()
	clone.Colors[0] = "#000000"
	clone.Roles[0] = "secondary"
	clone.Lambda = 1

	assert.Equal(t, "#FF2800", cfg.Colors[0])
	assert.Equal(t, "primary", cfg.Roles[0])
	assert.Equal(t, 0.5, cfg.Lambda)
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		name    string
		backend schema.DatabaseBackend
		conn    string
		wantErr bool
	}{
		{"sqlite empty", schema.SQLiteBackend, "", false},
		{"none empty", schema.NoneBackend, "", false},
		{"mysql valid", schema.MySQLBackend, "root:pw@tcp(localhost:3306)/udsnap", false},
		{"mysql missing tcp", schema.MySQLBackend, "root:pw@localhost/udsnap", true},
		{"mysql missing db", schema.MySQLBackend, "root:pw@tcp(localhost:3306)", true},
		{"postgres valid", schema.PostgreSQLBackend, "host=localhost dbname=udsnap", false},
		{"postgres missing host", schema.PostgreSQLBackend, "dbname=udsnap", true},
		{"postgres missing dbname", schema.PostgreSQLBackend, "host=localhost", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tt.backend, tt.conn)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
