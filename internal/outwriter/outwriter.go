// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"github.com/cudkit/udsnap/internal/contract"
	"github.com/cudkit/udsnap/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WritePalette prints an optimized palette using the configured output format.
func (ow *OutWriter) WritePalette(result schema.PaletteResult, cfg *contract.Config, duration time.Duration) error {
	return PrintOptimizeResults(result, cfg, duration)
}

// WriteTokens prints brand tokens using the configured output format.
func (ow *OutWriter) WriteTokens(result schema.BrandTokenResult, cfg *contract.Config, duration time.Duration) error {
	return PrintTokenResults(result, cfg, duration)
}

// WriteSnaps prints per-color snap results using the configured output format.
func (ow *OutWriter) WriteSnaps(results []schema.SnapResult, cfg *contract.Config, duration time.Duration) error {
	return PrintSnapResults(results, cfg, duration)
}

// WriteHarmony prints a harmony report using the configured output format.
func (ow *OutWriter) WriteHarmony(report schema.HarmonyReport, cfg *contract.Config, duration time.Duration) error {
	return PrintHarmonyResults(report, cfg, duration)
}

// WriteAnchor prints an anchor state using the configured output format.
func (ow *OutWriter) WriteAnchor(anchor schema.AnchorState, cfg *contract.Config, duration time.Duration) error {
	return PrintAnchorResults(anchor, cfg, duration)
}

// WriteZones prints zone classifications using the configured output format.
func (ow *OutWriter) WriteZones(reports []schema.ColorZoneReport, cfg *contract.Config, duration time.Duration) error {
	return PrintZoneResults(reports, cfg, duration)
}

// WriteCatalogue prints the reference catalogue using the configured output format.
func (ow *OutWriter) WriteCatalogue(entries []schema.ReferenceColor, cfg *contract.Config) error {
	return PrintCatalogue(entries, cfg)
}

// getTerminalWidth returns the width override, the detected terminal width, or 80.
func getTerminalWidth(cfg *contract.Config) int {
	if cfg.Width > 0 {
		return cfg.Width
	}
	detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detectedWidth <= 0 {
		return 80 // Conservative default for narrow terminals and CI
	}
	return detectedWidth
}

// getMaxExplanationWidth calculates how much of the terminal is left for the free-text
// explanation column once the fixed columns are laid out.
func getMaxExplanationWidth(cfg *contract.Config, fixedWidth int) int {
	// Reserve generous space for table borders, separators, and padding
	available := getTerminalWidth(cfg) - fixedWidth - 20
	if available < 20 {
		return 20
	}
	if available > 90 {
		return 90
	}
	return available
}
