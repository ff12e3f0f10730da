package parquet

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cudkit/udsnap/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRuns() []Run {
	now := time.Now()
	start := now.Add(-2 * time.Hour)
	end := start.Add(1500 * time.Millisecond)
	duration := int32(1500)
	params := `{"mode":"soft","lambda":0.5}`

	return []Run{
		{
			RunID:          1,
			RunUUID:        "4b4ea5c9-9d0b-4f2a-8b7e-0c1f6f0c9a11",
			StartTime:      start,
			EndTime:        &end,
			RunDurationMs:  &duration,
			Mode:           "soft",
			Lambda:         0.5,
			TotalColors:    3,
			ComplianceRate: 66.67,
			HarmonyTotal:   71.2,
			Objective:      14.53,
			ConfigParams:   &params,
		},
		{
			RunID:     2,
			RunUUID:   "0e0a4a5e-7f61-4c55-9d55-1b6f1f3d2b22",
			StartTime: now.Add(-10 * time.Minute),
			Mode:      "strict",
			Lambda:    1,
			// EndTime, RunDurationMs and ConfigParams stay nil
		},
	}
}

func TestRunStructTags(t *testing.T) {
	s := parquet.SchemaOf(new(Run))
	require.NotNil(t, s)

	for _, colName := range []string{
		"run_id", "run_uuid", "start_time", "end_time", "run_duration_ms", "mode", "lambda",
		"total_colors", "compliance_rate", "harmony_total", "objective", "config_params",
	} {
		col, ok := s.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestColorRowStructTags(t *testing.T) {
	s := parquet.SchemaOf(new(ColorRow))
	require.NotNil(t, s)

	for _, colName := range []string{
		"position", "id", "original_color", "result_color", "zone", "distance",
		"result_distance", "snapped", "reference_id", "reference_color", "derivation_type",
	} {
		_, ok := s.Lookup(colName)
		assert.True(t, ok, "Column %s should exist in schema", colName)
	}
}

func TestWriteRunsParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "runs.parquet")
	data := sampleRuns()

	require.NoError(t, WriteRunsParquet(data, outputPath))

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should not be empty")

	file, err := os.Open(outputPath)
	require.NoError(t, err)
	defer file.Close()

	reader := parquet.NewGenericReader[Run](file)
	defer reader.Close()

	readData := make([]Run, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err, "Should be able to read data")
	}
	assert.Equal(t, len(data), n, "Should read all records")

	for i := range data {
		assert.Equal(t, data[i].RunID, readData[i].RunID)
		assert.Equal(t, data[i].RunUUID, readData[i].RunUUID)
		assert.Equal(t, data[i].Mode, readData[i].Mode)
		assert.InDelta(t, data[i].Lambda, readData[i].Lambda, 1e-9)

		if data[i].EndTime == nil {
			assert.Nil(t, readData[i].EndTime, "EndTime should be nil")
		} else {
			require.NotNil(t, readData[i].EndTime)
			assert.WithinDuration(t, *data[i].EndTime, *readData[i].EndTime, time.Nanosecond)
		}
		if data[i].ConfigParams == nil {
			assert.Nil(t, readData[i].ConfigParams)
		} else {
			require.NotNil(t, readData[i].ConfigParams)
			assert.Equal(t, *data[i].ConfigParams, *readData[i].ConfigParams)
		}
	}
}

func TestWriteRunColorsParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "run_colors.parquet")
	data := ConvertRunColorRecords([]schema.RunColorRecord{
		{RunID: 1, Position: 0, SuggestedID: "brand-primary", OriginalColor: "#FF3010", ResultColor: "#FF3010", Zone: "safe", Distance: 0.0069, ReferenceID: "red", DerivationType: "reference"},
		{RunID: 1, Position: 1, SuggestedID: "brand-secondary", OriginalColor: "#123456", ResultColor: "#333744", Zone: "off", Distance: 0.1745, Snapped: true, ReferenceID: "brown", DerivationType: "soft-snap"},
	})

	require.NoError(t, WriteRunColorsParquet(data, outputPath))

	rows, err := parquet.ReadFile[RunColor](outputPath)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "brand-secondary", rows[1].SuggestedID)
	assert.True(t, rows[1].Snapped)
	assert.InDelta(t, 0.1745, rows[1].Distance, 1e-9)
}

func TestWriteRunsParquet_EmptyData(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "empty_runs.parquet")

	require.NoError(t, WriteRunsParquet([]Run{}, outputPath), "Writing empty data should not produce error")

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Even an empty file carries the schema footer")
}

func TestWriteRunsParquet_InvalidPath(t *testing.T) {
	err := WriteRunsParquet(sampleRuns(), filepath.Join(t.TempDir(), "missing", "dir", "runs.parquet"))
	assert.Error(t, err)
}

func TestConvertRunRecords(t *testing.T) {
	end := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	records := []schema.RunRecord{{
		RunID:       7,
		RunUUID:     "uuid-7",
		StartTime:   end.Add(-time.Second),
		EndTime:     &end,
		Mode:        "soft",
		TotalColors: 4,
	}}

	runs := ConvertRunRecords(records)
	require.Len(t, runs, 1)
	assert.Equal(t, int64(7), runs[0].RunID)
	assert.Equal(t, "uuid-7", runs[0].RunUUID)
	assert.Equal(t, &end, runs[0].EndTime)
	assert.Equal(t, int32(4), runs[0].TotalColors)
}

func TestColorRows(t *testing.T) {
	snap := schema.SnapResult{
		OriginalColor: "#D4AF37",
		ResultColor:   "#E3A324",
		Zone:          schema.WarningZone,
		Distance:      0.0796,
		Snapped:       true,
		Derivation: schema.Derivation{
			Type:           schema.SoftSnapDerivation,
			ReferenceID:    "orange",
			ReferenceColor: "#FF9900",
		},
	}

	t.Run("snap results", func(t *testing.T) {
		rows := ColorRowsFromSnapResults([]schema.SnapResult{snap, snap})
		require.Len(t, rows, 2)
		assert.Equal(t, int32(1), rows[1].Position)
		assert.Empty(t, rows[0].ID)
		assert.Equal(t, "warning", rows[0].Zone)
		assert.Equal(t, "soft-snap", rows[0].DerivationType)
		assert.Equal(t, "#FF9900", rows[0].ReferenceColor)
	})

	t.Run("tokens override ids", func(t *testing.T) {
		result := schema.BrandTokenResult{
			Optimization: schema.OptimizationResult{Colors: []schema.OptimizedColor{
				{SnapResult: snap, Position: 0, SuggestedID: "brand-primary"},
			}},
			Tokens: []schema.BrandToken{{ID: "acme-primary", Position: 0}},
		}
		rows := ColorRowsFromTokens(result)
		require.Len(t, rows, 1)
		assert.Equal(t, "acme-primary", rows[0].ID)
	})

	t.Run("write to buffer", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteRows(&buf, ColorRowsFromSnapResults([]schema.SnapResult{snap})))

		rows, err := parquet.Read[ColorRow](bytes.NewReader(buf.Bytes()), int64(buf.Len()))
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "#E3A324", rows[0].ResultColor)
	})
}
