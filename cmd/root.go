package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/pprof"
	"strings"

	"github.com/cudkit/udsnap/internal/contract"
	"github.com/cudkit/udsnap/internal/iocache"
	"github.com/cudkit/udsnap/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Set through -ldflags by the release build.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	rootCtx = context.Background()

	// cfg is the validated configuration shared by every palette command.
	cfg = &contract.Config{}

	// input receives the merged defaults, config file, UDSNAP_* variables and flags.
	input = &contract.ConfigRawInput{}

	cacheManager contract.CacheManager

	prof profiler
)

// profiler writes <prefix>.cpu.prof and <prefix>.mem.prof around a command run.
type profiler struct {
	prefix string
}

func (p *profiler) start(prefix string) error {
	p.prefix = strings.TrimSpace(prefix)
	if p.prefix == "" {
		return nil
	}
	cpuFile, err := os.Create(p.prefix + ".cpu.prof")
	if err != nil {
		return fmt.Errorf("could not create CPU profile: %w", err)
	}
	if err := pprof.StartCPUProfile(cpuFile); err != nil {
		_ = cpuFile.Close()
		return fmt.Errorf("could not start CPU profiling: %w", err)
	}
	_, err = fmt.Fprintf(os.Stderr, "Profiling to %[1]s.cpu.prof and %[1]s.mem.prof\n", p.prefix)
	return err
}

func (p *profiler) stop() error {
	if p.prefix == "" {
		return nil
	}
	pprof.StopCPUProfile()

	memFile, err := os.Create(p.prefix + ".mem.prof")
	if err != nil {
		return fmt.Errorf("could not create memory profile: %w", err)
	}
	defer func() { _ = memFile.Close() }()
	if err := pprof.WriteHeapProfile(memFile); err != nil {
		return fmt.Errorf("could not write memory profile: %w", err)
	}
	_, err = fmt.Fprintf(os.Stderr, "Profiles written; inspect with 'go tool pprof %s.cpu.prof'\n", p.prefix)
	return err
}

var rootCmd = &cobra.Command{
	Use:                "udsnap",
	Short:              "Snap brand palettes toward the Color Universal Design catalogue.",
	Long:               `udsnap keeps brand colors recognizable while pulling them toward color-blind safe CUD references, and scores how well the palette holds together.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// useConfigSource points viper at --config, or at .udsnap.yaml in the
// working directory and then $HOME.
func useConfigSource() {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
		return
	}
	viper.SetConfigName(".udsnap")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME")
}

// readConfigFile merges the config file into viper. A missing file is not an error.
func readConfigFile() error {
	err := viper.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err != nil && !errors.As(err, &notFound) {
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}

func initConfig() {
	useConfigSource()

	viper.SetEnvPrefix("UDSNAP")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	for key, value := range map[string]any{
		"mode":              schema.SoftMode,
		"lambda":            schema.DefaultLambda,
		"return-factor":     schema.DefaultReturnFactor,
		"harmony-threshold": schema.DefaultHarmonyThreshold,
		"precision":         contract.DefaultPrecision,
		"output":            schema.TextOut,
		"locale":            schema.EnglishLocale,
		"cache-capacity":    contract.DefaultCacheCapacity,
		"cache-backend":     schema.SQLiteBackend,
		"cache-db-connect":  "",
		"runs-backend":      "",
		"runs-db-connect":   "",
		"emoji":             "no",
		"color":             "yes",
	} {
		viper.SetDefault(key, value)
	}
}

// sharedSetup resolves and validates the configuration, then opens the
// result cache and run history stores.
func sharedSetup(_ context.Context, _ *cobra.Command, args []string) error {
	if err := prof.start(viper.GetString("profile")); err != nil {
		return fmt.Errorf("failed to start profiling: %w", err)
	}
	if err := readConfigFile(); err != nil {
		return err
	}
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}
	// Positional colors are not bound by viper.
	input.ColorArgs = args

	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}
	if err := iocache.InitStores(cfg.CacheBackend, cfg.CacheDBConnect, cfg.RunsBackend, cfg.RunsDBConnect); err != nil {
		return fmt.Errorf("failed to initialize persistence: %w", err)
	}
	return nil
}

func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// loadConfigFile is the setup of the cache and runs subcommands, which skip palette validation.
func loadConfigFile() error {
	useConfigSource()
	return readConfigFile()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetCacheManager installs the manager used by the palette commands.
func SetCacheManager(mgr contract.CacheManager) {
	cacheManager = mgr
}

// StopProfiling flushes profiles started by --profile.
func StopProfiling() error {
	return prof.stop()
}
