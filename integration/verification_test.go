//go:build integration

// Package integration contains integration tests for udsnap.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags integration ./integration
package integration

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/cudkit/udsnap/internal/catalogue"
	"github.com/cudkit/udsnap/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// readOutput decodes a JSON output file written by the CLI.
func readOutput[T any](t *testing.T, path string) T {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var v T
	require.NoError(t, json.Unmarshal(data, &v))
	return v
}

// TestCatalogueVerification compares the CLI catalogue listing against the built-in catalogue.
func TestCatalogueVerification(t *testing.T) {
	t.Setenv("UDSNAP_CACHE_BACKEND", "none")
	outFile := filepath.Join(t.TempDir(), "catalogue.csv")

	_, err := runUdsnap(t, "catalogue", "--output", "csv", "--output-file", outFile)
	require.NoError(t, err)

	f, err := os.Open(outFile)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	entries := catalogue.Default().Entries()
	require.Len(t, records, len(entries)+1)
	for i, entry := range entries {
		assert.Equal(t, entry.ID, records[i+1][0])
		assert.Equal(t, entry.Hex, records[i+1][4])
	}
}

// TestReferenceZoneVerification checks every reference color classifies as safe against itself.
func TestReferenceZoneVerification(t *testing.T) {
	t.Setenv("UDSNAP_CACHE_BACKEND", "none")
	entries := catalogue.Default().Entries()
	args := []string{"zone", "--output", "json", "--output-file", filepath.Join(t.TempDir(), "zones.json")}
	for _, entry := range entries {
		args = append(args, entry.Hex)
	}

	_, err := runUdsnap(t, args...)
	require.NoError(t, err)

	reports := readOutput[[]schema.ColorZoneReport](t, args[4])
	require.Len(t, reports, len(entries))
	for i, report := range reports {
		t.Run(entries[i].ID, func(t *testing.T) {
			assert.Equal(t, schema.SafeZone, report.Detail.Zone)
			assert.InDelta(t, 0, report.Detail.Distance, 1e-9)
			assert.Equal(t, entries[i].ID, report.Nearest.Reference.ID)
		})
	}
}

// TestStrictOptimizeVerification checks strict mode lands every color on its reference.
func TestStrictOptimizeVerification(t *testing.T) {
	t.Setenv("UDSNAP_CACHE_BACKEND", "none")
	outFile := filepath.Join(t.TempDir(), "palette.json")

	_, err := runUdsnap(t, "optimize", "--mode", "strict", "--anchor", "#FF3010",
		"--output", "json", "--output-file", outFile,
		"#FF3010", "#D4AF37", "#123456", "#7F7F7F")
	require.NoError(t, err)

	result := readOutput[schema.PaletteResult](t, outFile)
	require.Len(t, result.Optimization.Colors, 4)
	for _, c := range result.Optimization.Colors {
		assert.Equal(t, c.Nearest.Reference.Hex, c.ResultColor, "strict result for %s", c.OriginalColor)
		assert.InDelta(t, 0, c.ResultDistance, 1e-9)
		assert.InDelta(t, c.Distance, c.DistanceDelta, 1e-9)
	}
	assert.Empty(t, result.Optimization.Alternatives)
}
