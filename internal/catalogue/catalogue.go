// Package catalogue holds the fixed universal design reference colors and the
// nearest-match distance service built on them.
package catalogue

import (
	"fmt"
	"math"

	"github.com/cudkit/udsnap/internal/colorspace"
	"github.com/cudkit/udsnap/internal/contract"
	"github.com/cudkit/udsnap/schema"
	"github.com/lucasb-eyer/go-colorful"
)

// Catalogue is an immutable, ordered set of reference colors.
type Catalogue struct {
	entries []schema.ReferenceColor
	byID    map[string]int
}

var _ contract.Catalogue = &Catalogue{} // Compile-time check

// defaultCatalogue is built once from the CUD v4 table and only read afterwards.
var defaultCatalogue = mustNew(cudEntries)

// Default returns the 20-color CUD catalogue.
func Default() *Catalogue {
	return defaultCatalogue
}

// New builds a catalogue from hex-only entries, filling RGB and OKLab coordinates.
func New(entries []schema.ReferenceColor) (*Catalogue, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: catalogue needs at least one entry", schema.ErrEmptyInput)
	}
	cat := &Catalogue{
		entries: make([]schema.ReferenceColor, 0, len(entries)),
		byID:    make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		if _, dup := cat.byID[e.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate catalogue id %q", schema.ErrInvalidParameter, e.ID)
		}
		c, err := colorspace.Parse(e.Hex)
		if err != nil {
			return nil, fmt.Errorf("catalogue entry %q: %w", e.ID, err)
		}
		e.Hex = colorspace.Hex(c)
		r, g, b := c.RGB255()
		e.RGB = [3]uint8{r, g, b}
		e.OKLab = colorspace.Lab(c)
		cat.byID[e.ID] = len(cat.entries)
		cat.entries = append(cat.entries, e)
	}
	return cat, nil
}

func mustNew(entries []schema.ReferenceColor) *Catalogue {
	cat, err := New(entries)
	if err != nil {
		panic(err)
	}
	return cat
}

// Len returns the number of entries.
func (c *Catalogue) Len() int {
	return len(c.entries)
}

// Entries returns a copy of the entries in catalogue order.
func (c *Catalogue) Entries() []schema.ReferenceColor {
	out := make([]schema.ReferenceColor, len(c.entries))
	copy(out, c.entries)
	return out
}

// Group returns the entries of one group in catalogue order.
func (c *Catalogue) Group(g schema.ColorGroup) []schema.ReferenceColor {
	var out []schema.ReferenceColor
	for _, e := range c.entries {
		if e.Group == g {
			out = append(out, e)
		}
	}
	return out
}

// Lookup returns the entry with the given id.
func (c *Catalogue) Lookup(id string) (schema.ReferenceColor, bool) {
	i, ok := c.byID[id]
	if !ok {
		return schema.ReferenceColor{}, false
	}
	return c.entries[i], true
}

// Nearest returns the closest entry to color. Ties resolve to catalogue order.
func (c *Catalogue) Nearest(color colorful.Color) schema.NearestMatch {
	m, _ := c.NearestExcluding(color, nil)
	return m
}

// NearestExcluding returns the closest entry whose id is not in exclude.
// It reports false when every entry is excluded.
func (c *Catalogue) NearestExcluding(color colorful.Color, exclude map[string]bool) (schema.NearestMatch, bool) {
	lab := colorspace.Lab(color)
	best := -1
	bestDist := math.Inf(1)
	for i, e := range c.entries {
		if exclude[e.ID] {
			continue
		}
		if d := colorspace.DistanceLab(lab, e.OKLab); d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return schema.NearestMatch{}, false
	}
	return schema.NearestMatch{
		Reference:  c.entries[best],
		Distance:   bestDist,
		MatchClass: ClassifyMatch(bestDist),
	}, true
}

// ClassifyMatch maps a distance onto the coarse catalogue ladder.
func ClassifyMatch(distance float64) schema.MatchClass {
	switch {
	case distance <= schema.ExactMatchMax:
		return schema.ExactMatch
	case distance <= schema.NearMatchMax:
		return schema.NearMatch
	case distance <= schema.ModerateMatchMax:
		return schema.ModerateMatch
	default:
		return schema.OffMatch
	}
}
