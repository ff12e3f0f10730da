package cmd

import (
	"github.com/cudkit/udsnap/core"
	"github.com/cudkit/udsnap/internal/contract"
	"github.com/spf13/cobra"
)

// runExecutor runs a core executor against the shared config and exits on failure.
func runExecutor(name string, exec core.ExecutorFunc) func(*cobra.Command, []string) {
	return func(_ *cobra.Command, _ []string) {
		if err := exec(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot run "+name, err)
		}
	}
}

// optimizeCmd snaps a candidate palette and scores it against the anchor.
var optimizeCmd = &cobra.Command{
	Use:   "optimize [colors...]",
	Short: "Optimize a brand palette for CUD conformance and harmony.",
	Long: `Snap every candidate color toward its nearest CUD reference and score the
resulting palette against the anchor color.

Soft mode keeps safe colors, moves warning colors part of the way and pulls
off-zone colors only to the warning limit, reporting an alternative for each.
Strict mode replaces every color with its reference.

Examples:
  # Optimize three colors around a red anchor
  udsnap optimize --anchor "#FF3010" "#D4AF37" "#123456"

  # Read the palette from a file and favor harmony more
  udsnap optimize --input palette.toml --lambda 2

  # Export the optimized colors for tracking
  udsnap optimize --input palette.toml --output csv --output-file palette.csv`,
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor("palette optimization", core.ExecuteOptimize),
}

// tokensCmd optimizes a palette and names the results as design tokens.
var tokensCmd = &cobra.Command{
	Use:   "tokens [colors...]",
	Short: "Generate brand design tokens from an optimized palette.",
	Long: `Optimize the palette like 'optimize' and assign each result a stable token
identifier of the form [namespace-]role. Colliding identifiers get -2, -3 and so on.

Examples:
  udsnap tokens --anchor "#FF3010" --namespace acme --roles primary,accent "#FF3010" "#0041FF"
  udsnap tokens --input palette.toml --output json --output-file tokens.json`,
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor("token generation", core.ExecuteTokens),
}

// snapCmd snaps each color on its own.
var snapCmd = &cobra.Command{
	Use:   "snap [colors...]",
	Short: "Snap each color toward its nearest CUD reference.",
	Long: `Snap colors one by one without an anchor or harmony scoring.

Modes:
  soft   - keep safe colors, move warning colors by --return-factor, cap off colors at the warning limit
  strict - replace every color with its reference
  prefer - replace colors within --prefer-threshold, keep the rest

Examples:
  udsnap snap "#D4AF37" "#123456"
  udsnap snap --mode prefer --prefer-threshold 0.08 "#D4AF37"
  udsnap snap --unique "#FF2800" "#FF3010"`,
	Args:    cobra.ArbitraryArgs,
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor("snapping", core.ExecuteSnap),
}

// harmonyCmd scores a palette against the anchor.
var harmonyCmd = &cobra.Command{
	Use:   "harmony [colors...]",
	Short: "Score palette harmony against the anchor and suggest improvements.",
	Long: `Score hue coherence, lightness distribution and contrast of the palette as
given, then suggest a palette with hues nudged toward the anchor.

Examples:
  udsnap harmony --anchor "#0041FF" "#FF2800" "#35A16B"
  udsnap harmony --anchor "#0041FF" --weights-override "hue:1,lightness:0,contrast:1" "#FF2800"`,
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor("harmony scoring", core.ExecuteHarmony),
}

// anchorCmd shows how an anchor color relates to the catalogue.
var anchorCmd = &cobra.Command{
	Use:   "anchor [color]",
	Short: "Show the anchor state and suggested priority for a brand color.",
	Long: `Match the anchor to its nearest CUD reference and show which color the
optimizer will score harmony against. Without --anchor the first color is used.

Examples:
  udsnap anchor "#FF3010"
  udsnap anchor --priority prefer-brand "#FF3010"`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor("anchor creation", core.ExecuteAnchor),
}

// zoneCmd classifies colors into zones.
var zoneCmd = &cobra.Command{
	Use:   "zone [colors...]",
	Short: "Classify colors into safe, warning and off zones.",
	Long: `Measure each color against its nearest CUD reference and classify the distance.

Examples:
  udsnap zone "#FF3010" "#D4AF37" "#123456"
  udsnap zone --zones-override "safe:0.03,warning:0.08" "#D4AF37"`,
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor("zone classification", core.ExecuteZone),
}

// catalogueCmd lists the reference catalogue.
var catalogueCmd = &cobra.Command{
	Use:     "catalogue",
	Aliases: []string{"catalog"},
	Short:   "List the CUD reference colors.",
	Long: `Print the Color Universal Design reference catalogue with OKLab coordinates.

Examples:
  udsnap catalogue
  udsnap catalogue --locale ja
  udsnap catalogue --output csv --output-file cud.csv`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor("catalogue listing", core.ExecuteCatalogue),
}
