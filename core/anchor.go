package core

import (
	"fmt"

	"github.com/cudkit/udsnap/internal/colorspace"
	"github.com/cudkit/udsnap/internal/contract"
	"github.com/cudkit/udsnap/schema"
)

// CreateAnchor normalizes hex, looks up its nearest reference and picks the initial priority.
func CreateAnchor(cat contract.Catalogue, hex string) (schema.AnchorState, error) {
	norm, err := colorspace.NormalizeHex(hex)
	if err != nil {
		return schema.AnchorState{}, err
	}
	c, err := colorspace.Parse(norm)
	if err != nil {
		return schema.AnchorState{}, err
	}
	nearest := cat.Nearest(c)
	priority := suggestFromMatch(nearest.MatchClass)
	return schema.AnchorState{
		OriginalColor:  norm,
		Nearest:        nearest,
		Priority:       priority,
		EffectiveColor: EffectiveColorFor(norm, nearest, priority),
	}, nil
}

// SetPriority returns a copy of anchor with the new priority and a recomputed effective color.
func SetPriority(anchor schema.AnchorState, p schema.Priority) (schema.AnchorState, error) {
	if _, ok := schema.ValidPriorities[p]; !ok {
		return schema.AnchorState{}, fmt.Errorf("%w: unknown priority %q", schema.ErrInvalidParameter, p)
	}
	next := anchor
	next.Priority = p
	next.EffectiveColor = EffectiveColorFor(anchor.OriginalColor, anchor.Nearest, p)
	return next, nil
}

// SuggestPriority applies the creation rule: exact and near matches prefer the reference.
func SuggestPriority(anchor schema.AnchorState) schema.Priority {
	return suggestFromMatch(anchor.Nearest.MatchClass)
}

// EffectiveColorFor is the color the anchor stands for under the given priority.
func EffectiveColorFor(original string, nearest schema.NearestMatch, p schema.Priority) string {
	if p == schema.PreferReference && nearest.Reference.Hex != "" {
		return nearest.Reference.Hex
	}
	return original
}

func suggestFromMatch(m schema.MatchClass) schema.Priority {
	switch m {
	case schema.ExactMatch, schema.NearMatch:
		return schema.PreferReference
	default:
		return schema.PreferBrand
	}
}
