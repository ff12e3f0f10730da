package iocache

import (
	"errors"
	"fmt"
	"io"

	"github.com/cudkit/udsnap/internal/contract"
	"github.com/cudkit/udsnap/internal/parquet"
)

// ExportRuns writes the run history of store to two Parquet files named after prefix.
// It returns the paths written.
func ExportRuns(w io.Writer, store contract.RunStore, prefix string) ([]string, error) {
	if prefix == "" {
		return nil, errors.New("--output-file is required for export command")
	}
	if store == nil {
		return nil, errors.New("run tracking is disabled. Set --runs-backend to enable it")
	}

	status, err := store.GetStatus()
	if err != nil {
		return nil, fmt.Errorf("failed to get run status: %w", err)
	}
	if status.TotalRuns == 0 {
		return nil, errors.New("no run data found to export")
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total runs: %d\n", status.TotalRuns)
	_, _ = fmt.Fprintf(w, "Total color records: %d\n", status.TableSizes[runColorsTable])

	runs, err := store.GetAllRuns()
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve runs: %w", err)
	}
	colors, err := store.GetAllRunColors()
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve run colors: %w", err)
	}

	runsFile := prefix + ".runs.parquet"
	if err := parquet.WriteRunsParquet(parquet.ConvertRunRecords(runs), runsFile); err != nil {
		return nil, fmt.Errorf("failed to write runs: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d runs to: %s\n", len(runs), runsFile)

	colorsFile := prefix + ".run_colors.parquet"
	if err := parquet.WriteRunColorsParquet(parquet.ConvertRunColorRecords(colors), colorsFile); err != nil {
		return nil, fmt.Errorf("failed to write run colors: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d color records to: %s\n", len(colors), colorsFile)

	return []string{runsFile, colorsFile}, nil
}
