package contract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cudkit/udsnap/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPlainLabel(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected string
	}{
		{
			name:     "smallest value possible",
			input:    0.0,
			expected: WeakValue,
		},
		{
			name:     "just before fair",
			input:    39.9,
			expected: WeakValue,
		},
		{
			name:     "exactly fair",
			input:    40.0,
			expected: FairValue,
		},
		{
			name:     "just before good",
			input:    59.9,
			expected: FairValue,
		},
		{
			name:     "exactly good",
			input:    60.0,
			expected: GoodValue,
		},
		{
			name:     "just before strong",
			input:    79.9,
			expected: GoodValue,
		},
		{
			name:     "exactly strong",
			input:    80.0,
			expected: StrongValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetPlainLabel(tt.input))
		})
	}
}

func TestGetColorLabel(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		label string
	}{
		{"weak", 30, WeakValue},
		{"fair", 50, FairValue},
		{"good", 70, GoodValue},
		{"strong", 90, StrongValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Should contain the plain label
			assert.Contains(t, GetColorLabel(tt.score), tt.label)
		})
	}
}

func TestGetColorZoneAndSeverityLabels(t *testing.T) {
	for _, z := range []schema.Zone{schema.SafeZone, schema.WarningZone, schema.OffZone} {
		assert.Contains(t, GetColorZoneLabel(z), string(z))
	}
	for _, s := range []schema.Severity{schema.LowSeverity, schema.MediumSeverity, schema.HighSeverity} {
		assert.Contains(t, GetColorSeverityLabel(s), string(s))
	}
}

func TestSelectOutputFile(t *testing.T) {
	t.Run("empty path returns stdout", func(t *testing.T) {
		file, err := SelectOutputFile("")
		require.NoError(t, err)
		assert.Equal(t, os.Stdout, file)
	})

	t.Run("valid path creates file", func(t *testing.T) {
		tempFile := filepath.Join(t.TempDir(), "test_output.txt")

		file, err := SelectOutputFile(tempFile)
		require.NoError(t, err)
		assert.NotNil(t, file)
		_ = file.Close()

		_, err = os.Stat(tempFile)
		assert.NoError(t, err)
	})
}

func TestGetDBFilePaths(t *testing.T) {
	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)

	cachePath := GetCacheDBFilePath()
	assert.Contains(t, cachePath, ".udsnap_cache.db")
	assert.True(t, strings.HasPrefix(cachePath, homeDir), "path %s should start with home dir %s", cachePath, homeDir)

	runsPath := GetRunsDBFilePath()
	assert.Contains(t, runsPath, ".udsnap_runs.db")
	assert.NotEqual(t, cachePath, runsPath)
}

func TestTruncateText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		width    int
		expected string
	}{
		{"short text untouched", "safe", 10, "safe"},
		{"exact width untouched", "abcdef", 6, "abcdef"},
		{"long text truncated", "preserves brand color", 10, "preserv..."},
		{"tiny width untouched", "abcdef", 3, "abcdef"},
		{"multibyte runes", "安全圏内の色です", 6, "安全圏..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncateText(tt.text, tt.width))
		})
	}
}

func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"yes", "TRUE", "1"} {
		v, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.True(t, v)
	}
	for _, s := range []string{"no", "False", "0"} {
		v, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.False(t, v)
	}
	_, err := ParseBoolString("maybe")
	assert.Error(t, err)
}

// FuzzTruncateText checks that truncation never exceeds the requested width.
func FuzzTruncateText(f *testing.F) {
	f.Add("preserves brand color", 10)
	f.Add("", 0)
	f.Add("安全圏内の色です", 4)

	f.Fuzz(func(t *testing.T, text string, width int) {
		out := TruncateText(text, width)
		if width > 3 && len([]rune(out)) > width {
			t.Fatalf("TruncateText(%q, %d) = %q exceeds width", text, width, out)
		}
	})
}
