package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cudkit/udsnap/schema"
	"github.com/fatih/color"
)

// Harmony label constants.
const (
	StrongValue = "Strong" // Strong harmony
	GoodValue   = "Good"   // Good harmony
	FairValue   = "Fair"   // Fair harmony
	WeakValue   = "Weak"   // Weak harmony
)

// Color variables for console output.
var (
	SafeColor    = color.New(color.FgGreen, color.Bold) // SafeColor marks conformant colors.
	WarningColor = color.New(color.FgYellow)            // WarningColor marks tolerated drift, not bold.
	OffColor     = color.New(color.FgRed, color.Bold)   // OffColor marks colors outside the catalogue tolerance.
	InfoColor    = color.New(color.FgCyan)              // InfoColor marks informational / low-priority signal.
)

// GetPlainLabel returns a plain text label grading a harmony total.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainLabel(total float64) string {
	switch {
	case total >= 80:
		return StrongValue
	case total >= 60:
		return GoodValue
	case total >= 40:
		return FairValue
	default:
		return WeakValue
	}
}

// GetColorLabel returns a colored harmony label for console output (table).
func GetColorLabel(total float64) string {
	text := GetPlainLabel(total)

	switch text {
	case StrongValue:
		return SafeColor.Sprint(text)
	case GoodValue:
		return InfoColor.Sprint(text)
	case FairValue:
		return WarningColor.Sprint(text)
	default: // "Weak"
		return OffColor.Sprint(text)
	}
}

// GetColorZoneLabel returns the zone name colored by conformance.
func GetColorZoneLabel(z schema.Zone) string {
	switch z {
	case schema.SafeZone:
		return SafeColor.Sprint(string(z))
	case schema.WarningZone:
		return WarningColor.Sprint(string(z))
	default:
		return OffColor.Sprint(string(z))
	}
}

// GetColorSeverityLabel returns the harmony warning severity colored by urgency.
func GetColorSeverityLabel(s schema.Severity) string {
	switch s {
	case schema.HighSeverity:
		return OffColor.Sprint(string(s))
	case schema.MediumSeverity:
		return WarningColor.Sprint(string(s))
	default:
		return InfoColor.Sprint(string(s))
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetCacheDBFilePath returns the path to the SQLite DB file for result cache storage.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".udsnap_cache.db"
	}
	return filepath.Join(homeDir, ".udsnap_cache.db")
}

// GetRunsDBFilePath returns the path to the SQLite DB file for run history storage.
func GetRunsDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".udsnap_runs.db"
	}
	return filepath.Join(homeDir, ".udsnap_runs.db")
}

// TruncateText truncates text to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 so there is room for "..." and at least one character.
func TruncateText(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return text
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
