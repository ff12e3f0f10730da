// Package cmd defines the command-line interface for udsnap.
package cmd

import (
	"github.com/cudkit/udsnap/internal/contract"
	"github.com/cudkit/udsnap/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(optimizeCmd)
	rootCmd.AddCommand(tokensCmd)
	rootCmd.AddCommand(snapCmd)
	rootCmd.AddCommand(harmonyCmd)
	rootCmd.AddCommand(anchorCmd)
	rootCmd.AddCommand(zoneCmd)
	rootCmd.AddCommand(catalogueCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(mcpCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)

	// Add the runs subcommands to the parent runs command
	runsCmd.AddCommand(runsClearCmd)
	runsCmd.AddCommand(runsStatusCmd)
	runsCmd.AddCommand(runsExportCmd)
	runsCmd.AddCommand(runsMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("anchor", "", "Anchor brand color as hex (e.g. #FF3010)")
	rootCmd.PersistentFlags().StringP("input", "i", "", "Palette file: .toml, .json, or one color per line")
	rootCmd.PersistentFlags().String("priority", "", "Anchor priority: prefer-brand or prefer-reference (default: suggested)")
	rootCmd.PersistentFlags().String("mode", string(schema.SoftMode), "Snap mode: soft or strict or prefer")
	rootCmd.PersistentFlags().Float64("lambda", schema.DefaultLambda, "Weight of the harmony penalty in the objective")
	rootCmd.PersistentFlags().Float64("return-factor", schema.DefaultReturnFactor, "Fraction of the way warning-zone colors move toward their reference (0-1)")
	rootCmd.PersistentFlags().Float64("prefer-threshold", 0, "Snap distance limit in prefer mode (0 = warning ceiling)")
	rootCmd.PersistentFlags().Float64("harmony-threshold", schema.DefaultHarmonyThreshold, "Harmony score below which a warning is raised (0-100)")
	rootCmd.PersistentFlags().String("zones-override", "", "Zone ceilings (format: 'safe:0.05,warning:0.12')")
	rootCmd.PersistentFlags().String("weights-override", "", "Harmony weights (format: 'hue:0.4,lightness:0.3,contrast:0.3')")
	rootCmd.PersistentFlags().String("locale", string(schema.EnglishLocale), "Language of explanations and warnings: en or ja")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().Int("cache-capacity", contract.DefaultCacheCapacity, "Entries kept by the in-process result cache (mcp)")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.SQLiteBackend), "Cache backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("runs-backend", "", "Run history backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("runs-db-connect", "", "Database connection string for run history (must differ from cache-db-connect)")
	rootCmd.PersistentFlags().String("emoji", "no", "Enable emojis in output headers (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of snapCmd to Viper
	snapCmd.Flags().Bool("unique", false, "Give every color a different catalogue reference while unused ones remain")
	if err := viper.BindPFlags(snapCmd.Flags()); err != nil {
		contract.LogFatal("Error binding snap flags", err)
	}

	// Bind all flags of tokensCmd to Viper
	tokensCmd.Flags().String("namespace", "", "Prefix for token identifiers (e.g. 'acme')")
	tokensCmd.Flags().String("roles", "", "Comma-separated role names by position (e.g. 'primary,accent')")
	if err := viper.BindPFlags(tokensCmd.Flags()); err != nil {
		contract.LogFatal("Error binding tokens flags", err)
	}

	// Bind all flags of runsMigrateCmd to Viper
	runsMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(runsMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding runs migrate flags", err)
	}
}
