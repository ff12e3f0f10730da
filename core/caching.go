package core

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cudkit/udsnap/internal/contract"
	"github.com/cudkit/udsnap/schema"
	lru "github.com/hashicorp/golang-lru/v2"
)

// currentCacheVersion defines the version of the cache schema
const currentCacheVersion = 1

// cacheMaxAge is how long a durable cache entry stays valid.
const cacheMaxAge = 30 * 24 * time.Hour

// ResultCache is a bounded in-process cache of optimization results owned by its caller.
// Reads use Peek, so eviction order is insertion order: the least recently inserted key goes first.
type ResultCache struct {
	entries *lru.Cache[string, schema.OptimizationResult]
}

// NewResultCache creates a cache holding at most capacity results.
func NewResultCache(capacity int) (*ResultCache, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: cache capacity must be positive (received %d)", schema.ErrInvalidParameter, capacity)
	}
	entries, err := lru.New[string, schema.OptimizationResult](capacity)
	if err != nil {
		return nil, err
	}
	return &ResultCache{entries: entries}, nil
}

// Get returns the stored result without touching eviction order.
func (c *ResultCache) Get(key string) (schema.OptimizationResult, bool) {
	return c.entries.Peek(key)
}

// Add stores a result, evicting the oldest insertion when full.
func (c *ResultCache) Add(key string, result schema.OptimizationResult) {
	c.entries.Add(key, result)
}

// Len returns the number of cached results.
func (c *ResultCache) Len() int {
	return c.entries.Len()
}

// Purge drops every cached result.
func (c *ResultCache) Purge() {
	c.entries.Purge()
}

// CachedOptimizer wraps OptimizePalette with a ResultCache.
type CachedOptimizer struct {
	catalogue contract.Catalogue
	cache     *ResultCache
}

// NewCachedOptimizer binds a catalogue and a cache.
func NewCachedOptimizer(cat contract.Catalogue, cache *ResultCache) *CachedOptimizer {
	return &CachedOptimizer{catalogue: cat, cache: cache}
}

// OptimizePalette returns a shallow copy of the cached result for the same inputs, with
// ComputedIn refreshed and CacheHit set. Misses are computed and stored. Errors are not cached.
func (o *CachedOptimizer) OptimizePalette(candidates []string, anchor schema.AnchorState, opts OptimizeOptions) (schema.OptimizationResult, error) {
	return o.cache.wrap(directOptimizer(o.catalogue))(candidates, anchor, opts)
}

// wrap consults the cache before calling next and stores what next returns.
func (c *ResultCache) wrap(next optimizeFunc) optimizeFunc {
	return func(candidates []string, anchor schema.AnchorState, opts OptimizeOptions) (schema.OptimizationResult, error) {
		start := time.Now()
		key, err := OptimizationCacheKey(candidates, anchor, opts)
		if err != nil {
			return schema.OptimizationResult{}, err
		}
		if cached, ok := c.Get(key); ok {
			cached.ComputedIn = time.Since(start)
			cached.CacheHit = true
			return cached, nil
		}
		result, err := next(candidates, anchor, opts)
		if err != nil {
			return schema.OptimizationResult{}, err
		}
		c.Add(key, result)
		return result, nil
	}
}

// GeneratePalette is the package-level GeneratePalette using the cache.
func (o *CachedOptimizer) GeneratePalette(req PaletteRequest) (schema.PaletteResult, error) {
	return generatePalette(o.catalogue, req, o.OptimizePalette)
}

// GenerateBrandTokens is the package-level GenerateBrandTokens using the cache.
func (o *CachedOptimizer) GenerateBrandTokens(req PaletteRequest, topts TokenOptions) (schema.BrandTokenResult, error) {
	return generateBrandTokens(o.catalogue, req, topts, o.OptimizePalette)
}

// OptimizationCacheKey hashes the candidates, anchor and resolved options. Options that
// resolve to the same values produce the same key.
func OptimizationCacheKey(candidates []string, anchor schema.AnchorState, opts OptimizeOptions) (string, error) {
	resolved, err := opts.resolve()
	if err != nil {
		return "", err
	}
	payload, err := json.Marshal(struct {
		Version    int                `json:"version"`
		Candidates []string           `json:"candidates"`
		Anchor     schema.AnchorState `json:"anchor"`
		Options    OptimizeOptions    `json:"options"`
	}{currentCacheVersion, candidates, anchor, resolved})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", sha256.Sum256(payload)), nil
}

// durableOptimizer checks the durable store before computing, then stores misses.
// A nil store falls back to direct computation.
func durableOptimizer(cat contract.Catalogue, store contract.CacheStore) optimizeFunc {
	if store == nil {
		return directOptimizer(cat)
	}
	return func(candidates []string, anchor schema.AnchorState, opts OptimizeOptions) (schema.OptimizationResult, error) {
		start := time.Now()
		key, err := OptimizationCacheKey(candidates, anchor, opts)
		if err != nil {
			return schema.OptimizationResult{}, err
		}

		// Check for cache hit
		if result := checkCacheHit(store, key); result != nil {
			result.ComputedIn = time.Since(start)
			result.CacheHit = true
			return *result, nil
		}

		// Cache miss: compute and store
		return computeAndStore(cat, store, key, candidates, anchor, opts)
	}
}

// checkCacheHit attempts to retrieve and validate a cached result
func checkCacheHit(store contract.CacheStore, key string) *schema.OptimizationResult {
	data, version, ts, err := store.Get(key)
	if err != nil {
		return nil // Cache miss
	}

	// Validate version and staleness
	if version == currentCacheVersion {
		entryTimestamp := time.Unix(ts, 0)
		if time.Since(entryTimestamp) <= cacheMaxAge {
			var result schema.OptimizationResult
			if err := json.Unmarshal(data, &result); err == nil {
				return &result // Cache hit
			}
		}
	}

	return nil // Cache miss (stale or version mismatch)
}

// computeAndStore computes the result and stores it in cache
func computeAndStore(cat contract.Catalogue, store contract.CacheStore, key string, candidates []string, anchor schema.AnchorState, opts OptimizeOptions) (schema.OptimizationResult, error) {
	result, err := OptimizePalette(cat, candidates, anchor, opts)
	if err != nil {
		return schema.OptimizationResult{}, err
	}

	if data, err := json.Marshal(result); err == nil {
		if err := store.Set(key, data, currentCacheVersion, time.Now().Unix()); err != nil {
			contract.LogWarn("Failed to store optimization result", err)
		}
	}

	return result, nil
}
