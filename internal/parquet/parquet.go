// Package parquet provides row types and writers for exporting udsnap results and run
// history to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/cudkit/udsnap/schema"
	"github.com/parquet-go/parquet-go"
)

// Run represents a single optimization run with its summary.
// This struct maps to the udsnap_runs database table.
type Run struct {
	// RunID is the numeric identifier assigned by the store
	RunID int64 `parquet:"run_id,snappy"`

	// RunUUID is the globally unique identifier of the run
	RunUUID string `parquet:"run_uuid,snappy"`

	// StartTime is when the run began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	Mode           string  `parquet:"mode,snappy"`
	Lambda         float64 `parquet:"lambda,snappy"`
	TotalColors    int32   `parquet:"total_colors,snappy"`
	ComplianceRate float64 `parquet:"compliance_rate,snappy"`
	HarmonyTotal   float64 `parquet:"harmony_total,snappy"`
	Objective      float64 `parquet:"objective,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// RunColor represents one optimized color of a run.
// This struct maps to the udsnap_run_colors database table.
type RunColor struct {
	RunID          int64   `parquet:"run_id,snappy"`
	Position       int32   `parquet:"position,snappy"`
	SuggestedID    string  `parquet:"suggested_id,snappy"`
	OriginalColor  string  `parquet:"original_color,snappy"`
	ResultColor    string  `parquet:"result_color,snappy"`
	Zone           string  `parquet:"zone,snappy"`
	Distance       float64 `parquet:"distance,snappy"`
	Snapped        bool    `parquet:"snapped,snappy"`
	ReferenceID    string  `parquet:"reference_id,snappy"`
	DerivationType string  `parquet:"derivation_type,snappy"`
}

// ColorRow is the flat output row of the snap, optimize and tokens commands.
type ColorRow struct {
	Position       int32   `parquet:"position,snappy"`
	ID             string  `parquet:"id,snappy"`
	OriginalColor  string  `parquet:"original_color,snappy"`
	ResultColor    string  `parquet:"result_color,snappy"`
	Zone           string  `parquet:"zone,snappy"`
	Distance       float64 `parquet:"distance,snappy"`
	ResultDistance float64 `parquet:"result_distance,snappy"`
	Snapped        bool    `parquet:"snapped,snappy"`
	ReferenceID    string  `parquet:"reference_id,snappy"`
	ReferenceColor string  `parquet:"reference_color,snappy"`
	DerivationType string  `parquet:"derivation_type,snappy"`
}

// ZoneRow is the output row of the zone command.
type ZoneRow struct {
	Color       string  `parquet:"color,snappy"`
	Zone        string  `parquet:"zone,snappy"`
	Distance    float64 `parquet:"distance,snappy"`
	SafeMax     float64 `parquet:"safe_max,snappy"`
	WarningMax  float64 `parquet:"warning_max,snappy"`
	ReferenceID string  `parquet:"reference_id,snappy"`
	MatchClass  string  `parquet:"match_class,snappy"`
}

// ReferenceRow is the output row of the catalogue command.
type ReferenceRow struct {
	ID     string  `parquet:"id,snappy"`
	Group  string  `parquet:"group,snappy"`
	NameEN string  `parquet:"name_en,snappy"`
	NameJA string  `parquet:"name_ja,snappy"`
	Hex    string  `parquet:"hex,snappy"`
	L      float64 `parquet:"oklab_l,snappy"`
	A      float64 `parquet:"oklab_a,snappy"`
	B      float64 `parquet:"oklab_b,snappy"`
}

// WriteRows writes rows to w using the schema inferred from the struct tags of T.
func WriteRows[T any](w io.Writer, rows []T) error {
	writer := parquet.NewGenericWriter[T](w)
	if _, err := writer.Write(rows); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// writeFile creates outputPath and writes rows to it.
func writeFile[T any](rows []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()
	return WriteRows(file, rows)
}

// WriteRunsParquet writes a slice of Run structs to a Parquet file.
func WriteRunsParquet(data []Run, outputPath string) error {
	return writeFile(data, outputPath)
}

// WriteRunColorsParquet writes a slice of RunColor structs to a Parquet file.
func WriteRunColorsParquet(data []RunColor, outputPath string) error {
	return writeFile(data, outputPath)
}

// ConvertRunRecords converts schema.RunRecord to Run for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []Run {
	result := make([]Run, len(records))
	for i, record := range records {
		result[i] = Run{
			RunID:          record.RunID,
			RunUUID:        record.RunUUID,
			StartTime:      record.StartTime,
			EndTime:        record.EndTime,
			RunDurationMs:  record.RunDurationMs,
			Mode:           record.Mode,
			Lambda:         record.Lambda,
			TotalColors:    record.TotalColors,
			ComplianceRate: record.ComplianceRate,
			HarmonyTotal:   record.HarmonyTotal,
			Objective:      record.Objective,
			ConfigParams:   record.ConfigParams,
		}
	}
	return result
}

// ConvertRunColorRecords converts schema.RunColorRecord to RunColor for Parquet export.
func ConvertRunColorRecords(records []schema.RunColorRecord) []RunColor {
	result := make([]RunColor, len(records))
	for i, record := range records {
		result[i] = RunColor(record)
	}
	return result
}

// ColorRowsFromSnapResults flattens snap results; the id column is left empty.
func ColorRowsFromSnapResults(results []schema.SnapResult) []ColorRow {
	rows := make([]ColorRow, len(results))
	for i, r := range results {
		rows[i] = colorRow(int32(i), "", r)
	}
	return rows
}

// ColorRowsFromOptimized flattens optimized colors using their suggested ids.
func ColorRowsFromOptimized(colors []schema.OptimizedColor) []ColorRow {
	rows := make([]ColorRow, len(colors))
	for i, c := range colors {
		rows[i] = colorRow(int32(c.Position), c.SuggestedID, c.SnapResult)
	}
	return rows
}

// ColorRowsFromTokens flattens optimized colors using the final token ids.
func ColorRowsFromTokens(result schema.BrandTokenResult) []ColorRow {
	rows := ColorRowsFromOptimized(result.Optimization.Colors)
	for _, t := range result.Tokens {
		if t.Position >= 0 && t.Position < len(rows) {
			rows[t.Position].ID = t.ID
		}
	}
	return rows
}

func colorRow(position int32, id string, r schema.SnapResult) ColorRow {
	return ColorRow{
		Position:       position,
		ID:             id,
		OriginalColor:  r.OriginalColor,
		ResultColor:    r.ResultColor,
		Zone:           string(r.Zone),
		Distance:       r.Distance,
		ResultDistance: r.ResultDistance,
		Snapped:        r.Snapped,
		ReferenceID:    r.Derivation.ReferenceID,
		ReferenceColor: r.Derivation.ReferenceColor,
		DerivationType: string(r.Derivation.Type),
	}
}

// ZoneRowsFromReports flattens zone reports.
func ZoneRowsFromReports(reports []schema.ColorZoneReport) []ZoneRow {
	rows := make([]ZoneRow, len(reports))
	for i, r := range reports {
		rows[i] = ZoneRow{
			Color:       r.Color,
			Zone:        string(r.Detail.Zone),
			Distance:    r.Detail.Distance,
			SafeMax:     r.Detail.Thresholds.SafeMax,
			WarningMax:  r.Detail.Thresholds.WarningMax,
			ReferenceID: r.Nearest.Reference.ID,
			MatchClass:  string(r.Nearest.MatchClass),
		}
	}
	return rows
}

// ReferenceRowsFromCatalogue flattens catalogue entries.
func ReferenceRowsFromCatalogue(entries []schema.ReferenceColor) []ReferenceRow {
	rows := make([]ReferenceRow, len(entries))
	for i, e := range entries {
		rows[i] = ReferenceRow{
			ID:     e.ID,
			Group:  string(e.Group),
			NameEN: e.NameEN,
			NameJA: e.NameJA,
			Hex:    e.Hex,
			L:      e.OKLab[0],
			A:      e.OKLab[1],
			B:      e.OKLab[2],
		}
	}
	return rows
}
