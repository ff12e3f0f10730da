package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/cudkit/udsnap/internal/contract"
	"github.com/cudkit/udsnap/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintHarmonyResults outputs a harmony report, dispatching based on the output format configured.
// The report is not tabular, so parquet is rejected.
func PrintHarmonyResults(report schema.HarmonyReport, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeHarmonyCSV(w, report, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return fmt.Errorf("%w: parquet output is not available for harmony reports", schema.ErrInvalidParameter)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeHarmonyTable(w, report, cfg, fmtFloat, duration)
		}, "Wrote table")
	}
}

func writeHarmonyTable(w io.Writer, report schema.HarmonyReport, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Component", "Score", "Weight"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	s := report.Score
	label := contract.GetPlainLabel(s.Total)
	if cfg.UseColors {
		label = contract.GetColorLabel(s.Total)
	}
	data := [][]string{
		{"Hue", fmtFloat(s.Breakdown.Hue), fmtFloat(s.Weights.Hue)},
		{"Lightness", fmtFloat(s.Breakdown.Lightness), fmtFloat(s.Weights.Lightness)},
		{"Contrast", fmtFloat(s.Breakdown.Contrast), fmtFloat(s.Weights.Contrast)},
		{"Total (" + label + ")", fmtFloat(s.Total), fmtFloat(1)},
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if report.Warning != nil {
		if err := writeHarmonyWarning(w, report.Warning, cfg); err != nil {
			return err
		}
	}

	alt := report.Alternative
	if !slices.EqualFunc(alt.OriginalPalette, alt.ImprovedPalette, strings.EqualFold) {
		if _, err := fmt.Fprintf(w, "Alternative: %s -> %s (%s -> %s)\n",
			strings.Join(alt.OriginalPalette, " "), strings.Join(alt.ImprovedPalette, " "),
			fmtFloat(alt.OriginalScore), fmtFloat(alt.ImprovedScore)); err != nil {
			return err
		}
		for _, e := range alt.Explanations {
			if _, err := fmt.Fprintf(w, "  - %s\n", e); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintf(w, "Scored %d colors against %s in %v\n", len(report.Palette), report.Anchor, duration)
	return err
}

func writeHarmonyCSV(w io.Writer, report schema.HarmonyReport, fmtFloat func(float64) string) error {
	header := []string{"anchor", "total", "hue", "lightness", "contrast", "improved_palette", "improved_total", "severity"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		severity := ""
		if report.Warning != nil {
			severity = string(report.Warning.Severity)
		}
		return cw.Write([]string{
			report.Anchor,
			fmtFloat(report.Score.Total),
			fmtFloat(report.Score.Breakdown.Hue),
			fmtFloat(report.Score.Breakdown.Lightness),
			fmtFloat(report.Score.Breakdown.Contrast),
			strings.Join(report.Alternative.ImprovedPalette, "|"),
			fmtFloat(report.Alternative.ImprovedScore),
			severity,
		})
	})
}

// PrintAnchorResults outputs an anchor state, dispatching based on the output format configured.
func PrintAnchorResults(anchor schema.AnchorState, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, anchor)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"original_color", "effective_color", "priority", "reference_id", "reference_color", "distance", "match_class"}
			return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
				return cw.Write([]string{
					anchor.OriginalColor,
					anchor.EffectiveColor,
					string(anchor.Priority),
					anchor.Nearest.Reference.ID,
					anchor.Nearest.Reference.Hex,
					fmtFloat(anchor.Nearest.Distance),
					string(anchor.Nearest.MatchClass),
				})
			})
		}, "Wrote CSV")
	case schema.ParquetOut:
		return fmt.Errorf("%w: parquet output is not available for anchors", schema.ErrInvalidParameter)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			ref := anchor.Nearest.Reference
			lines := []string{
				fmt.Sprintf("Brand color:     %s", anchor.OriginalColor),
				fmt.Sprintf("Nearest:         %s %s (%s)", ref.ID, ref.Hex, ref.Name(cfg.Locale)),
				fmt.Sprintf("Distance:        %s (%s match)", fmtFloat(anchor.Nearest.Distance), anchor.Nearest.MatchClass),
				fmt.Sprintf("Priority:        %s", anchor.Priority),
				fmt.Sprintf("Effective color: %s", anchor.EffectiveColor),
				fmt.Sprintf("Resolved in %v", duration),
			}
			_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
			return err
		}, "Wrote table")
	}
}
