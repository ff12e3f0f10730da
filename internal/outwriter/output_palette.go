package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/cudkit/udsnap/internal/contract"
	"github.com/cudkit/udsnap/internal/parquet"
	"github.com/cudkit/udsnap/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// colorCSVHeader is shared by the snap, optimize and tokens CSV outputs.
var colorCSVHeader = []string{
	"position",
	"id",
	"original_color",
	"result_color",
	"zone",
	"distance",
	"result_distance",
	"snapped",
	"reference_id",
	"reference_color",
	"derivation_type",
}

// PrintOptimizeResults outputs an optimized palette, dispatching based on the output format configured.
func PrintOptimizeResults(result schema.PaletteResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	rows := parquet.ColorRowsFromOptimized(result.Optimization.Colors)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeColorRowsCSV(w, rows, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeParquetFile(cfg, rows)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			if err := writeColorTable(w, rows, optimizedExplanations(result.Optimization.Colors), true, cfg, fmtFloat); err != nil {
				return err
			}
			return writeOptimizationSummary(w, result.Optimization, cfg, fmtFloat, duration)
		}, "Wrote table")
	}
}

// PrintTokenResults outputs brand tokens, dispatching based on the output format configured.
func PrintTokenResults(result schema.BrandTokenResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	rows := parquet.ColorRowsFromTokens(result)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeColorRowsCSV(w, rows, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeParquetFile(cfg, rows)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			if err := writeColorTable(w, rows, optimizedExplanations(result.Optimization.Colors), true, cfg, fmtFloat); err != nil {
				return err
			}
			if err := writeReferenceUsage(w, result.References); err != nil {
				return err
			}
			return writeOptimizationSummary(w, result.Optimization, cfg, fmtFloat, duration)
		}, "Wrote table")
	}
}

// writeColorTable renders flattened color rows with their explanations.
func writeColorTable(w io.Writer, rows []parquet.ColorRow, explanations []string, showID bool, cfg *contract.Config, fmtFloat func(float64) string) error {
	table := tablewriter.NewWriter(w)

	headers := []string{"#"}
	if showID {
		headers = append(headers, "ID")
	}
	headers = append(headers, "Original", "Result", "Zone", "Distance", "Result Dist", "Reference", "Snapped", "Explanation")
	table.Header(headers)

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	fixed := 90
	if showID {
		fixed += 20
	}
	maxExplain := getMaxExplanationWidth(cfg, fixed)

	var data [][]string
	for i, r := range rows {
		row := []string{strconv.Itoa(int(r.Position) + 1)}
		if showID {
			row = append(row, r.ID)
		}
		explanation := ""
		if i < len(explanations) {
			explanation = contract.TruncateText(explanations[i], maxExplain)
		}
		row = append(row,
			r.OriginalColor,
			r.ResultColor,
			zoneLabel(schema.Zone(r.Zone), cfg),
			fmtFloat(r.Distance),
			fmtFloat(r.ResultDistance),
			r.ReferenceID,
			yesNo(r.Snapped),
			explanation,
		)
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeColorRowsCSV writes flattened color rows in CSV format.
func writeColorRowsCSV(w io.Writer, rows []parquet.ColorRow, fmtFloat func(float64) string) error {
	return writeCSVWithHeader(w, colorCSVHeader, func(cw *csv.Writer) error {
		for _, r := range rows {
			rec := []string{
				strconv.Itoa(int(r.Position)),
				r.ID,
				r.OriginalColor,
				r.ResultColor,
				r.Zone,
				fmtFloat(r.Distance),
				fmtFloat(r.ResultDistance),
				strconv.FormatBool(r.Snapped),
				r.ReferenceID,
				r.ReferenceColor,
				r.DerivationType,
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeOptimizationSummary prints the palette-level figures below the color table.
func writeOptimizationSummary(w io.Writer, opt schema.OptimizationResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	compliant := len(opt.Colors) - opt.OffZoneCount
	if _, err := fmt.Fprintf(w, "Compliance: %s%% (%d/%d colors, %d off zone)\n",
		fmtFloat(opt.ComplianceRate), compliant, len(opt.Colors), opt.OffZoneCount); err != nil {
		return err
	}

	label := contract.GetPlainLabel(opt.Harmony.Total)
	if cfg.UseColors {
		label = contract.GetColorLabel(opt.Harmony.Total)
	}
	if _, err := fmt.Fprintf(w, "Harmony: %s (%s) hue=%s lightness=%s contrast=%s\n",
		fmtFloat(opt.Harmony.Total), label,
		fmtFloat(opt.Harmony.Breakdown.Hue), fmtFloat(opt.Harmony.Breakdown.Lightness), fmtFloat(opt.Harmony.Breakdown.Contrast)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Objective: %s (mode: %s, lambda: %s)\n", fmtFloat(opt.Objective), opt.Mode, fmtFloat(opt.Lambda)); err != nil {
		return err
	}

	if opt.HarmonyWarning != nil {
		if err := writeHarmonyWarning(w, opt.HarmonyWarning, cfg); err != nil {
			return err
		}
	}
	for _, warning := range opt.Warnings {
		if _, err := fmt.Fprintf(w, "Warning: %s\n", warning); err != nil {
			return err
		}
	}
	for _, alt := range opt.Alternatives {
		if _, err := fmt.Fprintf(w, "Alternative: %s -> %s (%s) %s\n", alt.OriginalColor, alt.SuggestedColor, alt.SuggestedReference, alt.Reason); err != nil {
			return err
		}
	}

	cacheNote := "miss"
	if opt.CacheHit {
		cacheNote = "hit"
	}
	_, err := fmt.Fprintf(w, "Optimized in %v (cache %s). Cache backend: %s\n", duration, cacheNote, cfg.CacheBackend)
	return err
}

// writeHarmonyWarning prints a harmony warning and its suggestions.
func writeHarmonyWarning(w io.Writer, warning *schema.HarmonyWarning, cfg *contract.Config) error {
	severity := string(warning.Severity)
	if cfg.UseColors {
		severity = contract.GetColorSeverityLabel(warning.Severity)
	}
	if _, err := fmt.Fprintf(w, "Harmony warning [%s]: %s\n", severity, warning.Message); err != nil {
		return err
	}
	for _, s := range warning.Suggestions {
		if _, err := fmt.Fprintf(w, "  - %s\n", s); err != nil {
			return err
		}
	}
	return nil
}

// writeReferenceUsage lists which tokens derive from each catalogue entry.
func writeReferenceUsage(w io.Writer, refs []schema.ReferenceUsage) error {
	if len(refs) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "References:"); err != nil {
		return err
	}
	for _, ref := range refs {
		if _, err := fmt.Fprintf(w, "  %s %s (%s): %s\n", ref.ReferenceID, ref.Hex, ref.NameEN, strings.Join(ref.TokenIDs, ", ")); err != nil {
			return err
		}
	}
	return nil
}

func optimizedExplanations(colors []schema.OptimizedColor) []string {
	out := make([]string, len(colors))
	for i, c := range colors {
		out[i] = c.Explanation
	}
	return out
}
