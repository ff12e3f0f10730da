package contract

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// PaletteFile is the on-disk form of a palette request.
//
//	anchor = "#FF2800"
//	colors = ["#35A16B", "#0041FF"]
//	roles  = ["primary", "secondary"]
type PaletteFile struct {
	Anchor string   `toml:"anchor" json:"anchor"`
	Colors []string `toml:"colors" json:"colors"`
	Roles  []string `toml:"roles" json:"roles"`
}

// LoadPaletteFile reads a palette from a .toml or .json file, or from a plain text file
// with one color per line.
func LoadPaletteFile(path string) (PaletteFile, error) {
	var pf PaletteFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.DecodeFile(path, &pf); err != nil {
			return PaletteFile{}, fmt.Errorf("failed to decode palette file %s: %w", path, err)
		}
	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return PaletteFile{}, fmt.Errorf("failed to read palette file %s: %w", path, err)
		}
		if err := json.Unmarshal(data, &pf); err != nil {
			return PaletteFile{}, fmt.Errorf("failed to decode palette file %s: %w", path, err)
		}
	default:
		f, err := os.Open(path)
		if err != nil {
			return PaletteFile{}, fmt.Errorf("failed to read palette file %s: %w", path, err)
		}
		defer func() { _ = f.Close() }()
		colors, err := ParsePaletteText(f)
		if err != nil {
			return PaletteFile{}, fmt.Errorf("failed to parse palette file %s: %w", path, err)
		}
		pf.Colors = colors
	}
	return pf, nil
}

// ParsePaletteText returns one color per non-blank line. Text after the first whitespace
// on a line is ignored, and lines starting with "//" are comments.
func ParsePaletteText(r io.Reader) ([]string, error) {
	var colors []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if fields := strings.Fields(line); len(fields) > 0 {
			colors = append(colors, fields[0])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return colors, nil
}
