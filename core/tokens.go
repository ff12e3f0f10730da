package core

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/cudkit/udsnap/internal/contract"
	"github.com/cudkit/udsnap/schema"
)

// PaletteRequest is the input shared by GeneratePalette and GenerateBrandTokens.
type PaletteRequest struct {
	Anchor     string          `json:"anchor"`
	Candidates []string        `json:"candidates"`
	Priority   schema.Priority `json:"priority,omitempty"` // empty keeps the suggested priority
	Options    OptimizeOptions `json:"options"`
}

// TokenOptions controls brand token identifiers. UsedIDs is read, never modified.
type TokenOptions struct {
	Namespace string
	RoleNames []string
	UsedIDs   map[string]bool
}

// optimizeFunc is the optimizer step of a palette request. The cached optimizers plug in here.
type optimizeFunc func(candidates []string, anchor schema.AnchorState, opts OptimizeOptions) (schema.OptimizationResult, error)

// GeneratePalette creates the anchor and optimizes the candidates against it.
func GeneratePalette(cat contract.Catalogue, req PaletteRequest) (schema.PaletteResult, error) {
	return generatePalette(cat, req, directOptimizer(cat))
}

// GenerateBrandTokens is GeneratePalette plus stable token identifiers and the catalogue
// entries those tokens derive from.
func GenerateBrandTokens(cat contract.Catalogue, req PaletteRequest, topts TokenOptions) (schema.BrandTokenResult, error) {
	return generateBrandTokens(cat, req, topts, directOptimizer(cat))
}

func directOptimizer(cat contract.Catalogue) optimizeFunc {
	return func(candidates []string, anchor schema.AnchorState, opts OptimizeOptions) (schema.OptimizationResult, error) {
		return OptimizePalette(cat, candidates, anchor, opts)
	}
}

func generatePalette(cat contract.Catalogue, req PaletteRequest, optimize optimizeFunc) (schema.PaletteResult, error) {
	anchor, err := resolveAnchor(cat, req)
	if err != nil {
		return schema.PaletteResult{}, err
	}
	opt, err := optimize(req.Candidates, anchor, req.Options)
	if err != nil {
		return schema.PaletteResult{}, err
	}
	return schema.PaletteResult{Anchor: anchor, Optimization: opt}, nil
}

func generateBrandTokens(cat contract.Catalogue, req PaletteRequest, topts TokenOptions, optimize optimizeFunc) (schema.BrandTokenResult, error) {
	palette, err := generatePalette(cat, req, optimize)
	if err != nil {
		return schema.BrandTokenResult{}, err
	}
	tokens := buildTokens(palette.Optimization.Colors, topts)
	return schema.BrandTokenResult{
		Anchor:       palette.Anchor,
		Optimization: palette.Optimization,
		Tokens:       tokens,
		References:   collectReferences(cat, tokens),
	}, nil
}

func resolveAnchor(cat contract.Catalogue, req PaletteRequest) (schema.AnchorState, error) {
	anchor, err := CreateAnchor(cat, req.Anchor)
	if err != nil {
		return schema.AnchorState{}, fmt.Errorf("anchor: %w", err)
	}
	if req.Priority != "" {
		return SetPriority(anchor, req.Priority)
	}
	return anchor, nil
}

// buildTokens assigns "[namespace-]role" identifiers, suffixing -2, -3... on collisions
// with the used set or earlier tokens.
func buildTokens(colors []schema.OptimizedColor, topts TokenOptions) []schema.BrandToken {
	taken := make(map[string]bool, len(topts.UsedIDs)+len(colors))
	for id, used := range topts.UsedIDs {
		if used {
			taken[id] = true
		}
	}
	ns := kebabCase(topts.Namespace)

	tokens := make([]schema.BrandToken, 0, len(colors))
	for i, c := range colors {
		role := c.SuggestedID
		if i < len(topts.RoleNames) {
			if r := kebabCase(topts.RoleNames[i]); r != "" {
				role = r
			}
		}
		base := role
		if ns != "" {
			base = ns + "-" + role
		}
		id := base
		for n := 2; taken[id]; n++ {
			id = fmt.Sprintf("%s-%d", base, n)
		}
		taken[id] = true

		tokens = append(tokens, schema.BrandToken{
			ID:         id,
			Role:       role,
			Hex:        c.ResultColor,
			Position:   c.Position,
			Zone:       c.Zone,
			Derivation: c.Derivation,
		})
	}
	return tokens
}

// collectReferences lists each catalogue entry used by a token, in order of first use.
func collectReferences(cat contract.Catalogue, tokens []schema.BrandToken) []schema.ReferenceUsage {
	index := make(map[string]int)
	var refs []schema.ReferenceUsage
	for _, t := range tokens {
		id := t.Derivation.ReferenceID
		if i, ok := index[id]; ok {
			refs[i].TokenIDs = append(refs[i].TokenIDs, t.ID)
			continue
		}
		usage := schema.ReferenceUsage{ReferenceID: id, Hex: t.Derivation.ReferenceColor, TokenIDs: []string{t.ID}}
		if ref, ok := cat.Lookup(id); ok {
			usage.NameEN = ref.NameEN
		}
		index[id] = len(refs)
		refs = append(refs, usage)
	}
	return refs
}

// kebabCase lowercases s, splits camelCase words and joins words with single hyphens.
func kebabCase(s string) string {
	var b strings.Builder
	pendingHyphen := false
	var prev rune
	for _, r := range strings.TrimSpace(s) {
		orig := r
		switch {
		case unicode.IsUpper(r):
			if unicode.IsLower(prev) || unicode.IsDigit(prev) {
				pendingHyphen = true
			}
			r = unicode.ToLower(r)
		case unicode.IsLower(r) || unicode.IsDigit(r):
		default:
			pendingHyphen = true
			prev = r
			continue
		}
		if pendingHyphen && b.Len() > 0 {
			b.WriteByte('-')
		}
		pendingHyphen = false
		b.WriteRune(r)
		prev = orig
	}
	return b.String()
}
