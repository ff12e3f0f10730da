package core

import (
	"context"
	"fmt"

	"github.com/cudkit/udsnap/internal/contract"
	"github.com/cudkit/udsnap/schema"
)

// logRunHeader prints the command summary above text output.
// Other formats are machine-read, so they never get a header.
func logRunHeader(ctx context.Context, cfg *contract.Config, command string) {
	if shouldSuppressHeader(ctx) || cfg.Output != schema.TextOut {
		return
	}
	palette, anchor := "", ""
	if cfg.UseEmojis {
		palette, anchor = "🎨 ", "⚓ "
	}

	// Line 1: the command and its engine settings
	fmt.Printf("%s%s: %d colors (Mode: %s, Locale: %s)\n", palette, command, len(cfg.Colors), cfg.Mode, cfg.Locale)

	// Line 2: the anchor and the zone ceilings
	if cfg.Anchor != "" {
		fmt.Printf("%sAnchor: %s (Zones: safe ≤ %.3f, warning ≤ %.3f)\n", anchor, cfg.Anchor, cfg.Thresholds.SafeMax, cfg.Thresholds.WarningMax)
	}
}
