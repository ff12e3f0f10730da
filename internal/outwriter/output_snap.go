package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/cudkit/udsnap/internal/contract"
	"github.com/cudkit/udsnap/internal/parquet"
	"github.com/cudkit/udsnap/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintSnapResults outputs per-color snap results, dispatching based on the output format configured.
func PrintSnapResults(results []schema.SnapResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	rows := parquet.ColorRowsFromSnapResults(results)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, results)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeColorRowsCSV(w, rows, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeParquetFile(cfg, rows)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			explanations := make([]string, len(results))
			snapped := 0
			for i, r := range results {
				explanations[i] = r.Explanation
				if r.Snapped {
					snapped++
				}
			}
			if err := writeColorTable(w, rows, explanations, false, cfg, fmtFloat); err != nil {
				return err
			}
			_, err := fmt.Fprintf(w, "Snapped %d of %d colors (mode: %s) in %v\n", snapped, len(results), cfg.Mode, duration)
			return err
		}, "Wrote table")
	}
}

// PrintZoneResults outputs zone classifications, dispatching based on the output format configured.
func PrintZoneResults(reports []schema.ColorZoneReport, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, reports)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeZoneCSV(w, reports, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeParquetFile(cfg, parquet.ZoneRowsFromReports(reports))
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeZoneTable(w, reports, cfg, fmtFloat, duration)
		}, "Wrote table")
	}
}

func writeZoneTable(w io.Writer, reports []schema.ColorZoneReport, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Color", "Zone", "Distance", "Nearest", "Name", "Match"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	counts := map[schema.Zone]int{}
	var data [][]string
	for _, r := range reports {
		counts[r.Detail.Zone]++
		data = append(data, []string{
			r.Color,
			zoneLabel(r.Detail.Zone, cfg),
			fmtFloat(r.Detail.Distance),
			r.Nearest.Reference.Hex,
			r.Nearest.Reference.Name(cfg.Locale),
			string(r.Nearest.MatchClass),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	th := cfg.Thresholds
	if len(reports) > 0 {
		th = reports[0].Detail.Thresholds
	}
	if _, err := fmt.Fprintf(w, "Zones: %d safe, %d warning, %d off (safe ≤ %s, warning ≤ %s)\n",
		counts[schema.SafeZone], counts[schema.WarningZone], counts[schema.OffZone],
		fmtFloat(th.SafeMax), fmtFloat(th.WarningMax)); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Classified in %v\n", duration)
	return err
}

func writeZoneCSV(w io.Writer, reports []schema.ColorZoneReport, fmtFloat func(float64) string) error {
	header := []string{"color", "zone", "distance", "safe_max", "warning_max", "reference_id", "match_class"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, row := range parquet.ZoneRowsFromReports(reports) {
			rec := []string{
				row.Color,
				row.Zone,
				fmtFloat(row.Distance),
				strconv.FormatFloat(row.SafeMax, 'f', -1, 64),
				strconv.FormatFloat(row.WarningMax, 'f', -1, 64),
				row.ReferenceID,
				row.MatchClass,
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
