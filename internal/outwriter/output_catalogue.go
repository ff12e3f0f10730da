package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/cudkit/udsnap/internal/contract"
	"github.com/cudkit/udsnap/internal/parquet"
	"github.com/cudkit/udsnap/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintCatalogue outputs the reference catalogue, dispatching based on the output format configured.
func PrintCatalogue(entries []schema.ReferenceColor, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	rows := parquet.ReferenceRowsFromCatalogue(entries)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, entries)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"id", "group", "name_en", "name_ja", "hex", "oklab_l", "oklab_a", "oklab_b"}
			return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
				for _, r := range rows {
					if err := cw.Write([]string{r.ID, r.Group, r.NameEN, r.NameJA, r.Hex, fmtFloat(r.L), fmtFloat(r.A), fmtFloat(r.B)}); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeParquetFile(cfg, rows)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			table := tablewriter.NewWriter(w)
			table.Header([]string{"ID", "Group", "Name", "Hex", "L", "a", "b"})
			table.Configure(func(cfg *tablewriter.Config) {
				cfg.Row.Alignment.Global = tw.AlignRight
			})

			var data [][]string
			for _, e := range entries {
				data = append(data, []string{
					e.ID,
					string(e.Group),
					e.Name(cfg.Locale),
					e.Hex,
					fmtFloat(e.OKLab[0]),
					fmtFloat(e.OKLab[1]),
					fmtFloat(e.OKLab[2]),
				})
			}
			if err := table.Bulk(data); err != nil {
				return err
			}
			if err := table.Render(); err != nil {
				return err
			}
			_, err := fmt.Fprintf(w, "%d reference colors\n", len(entries))
			return err
		}, "Wrote table")
	}
}
