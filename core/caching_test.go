package core

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/cudkit/udsnap/internal/catalogue"
	"github.com/cudkit/udsnap/internal/iocache"
	"github.com/cudkit/udsnap/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewResultCache(t *testing.T) {
	_, err := NewResultCache(0)
	assert.ErrorIs(t, err, schema.ErrInvalidParameter)
	_, err = NewResultCache(-3)
	assert.ErrorIs(t, err, schema.ErrInvalidParameter)

	cache, err := NewResultCache(2)
	require.NoError(t, err)
	assert.Zero(t, cache.Len())
}

func TestCachedOptimizer(t *testing.T) {
	cat := catalogue.Default()
	cache, err := NewResultCache(4)
	require.NoError(t, err)
	opt := NewCachedOptimizer(cat, cache)
	anchor := mustAnchor(t, "#FF3010")

	first, err := opt.OptimizePalette(mixedCandidates, anchor, DefaultOptimizeOptions())
	require.NoError(t, err)
	assert.False(t, first.CacheHit)
	assert.Equal(t, 1, cache.Len())

	second, err := opt.OptimizePalette(mixedCandidates, anchor, DefaultOptimizeOptions())
	require.NoError(t, err)
	assert.True(t, second.CacheHit)
	assert.Equal(t, first.Colors, second.Colors)
	assert.Equal(t, first.Objective, second.Objective)
	assert.False(t, first.CacheHit, "hits do not modify the stored result")

	// Different inputs miss
	other, err := opt.OptimizePalette([]string{"#0041FF"}, anchor, DefaultOptimizeOptions())
	require.NoError(t, err)
	assert.False(t, other.CacheHit)
	assert.Equal(t, 2, cache.Len())

	// Errors are not cached
	_, err = opt.OptimizePalette(nil, anchor, DefaultOptimizeOptions())
	assert.ErrorIs(t, err, schema.ErrEmptyInput)
	assert.Equal(t, 2, cache.Len())

	cache.Purge()
	assert.Zero(t, cache.Len())
}

func TestCachedOptimizerPaletteAndTokens(t *testing.T) {
	cache, err := NewResultCache(4)
	require.NoError(t, err)
	opt := NewCachedOptimizer(catalogue.Default(), cache)
	req := PaletteRequest{Anchor: "#FF3010", Candidates: mixedCandidates, Options: DefaultOptimizeOptions()}

	palette, err := opt.GeneratePalette(req)
	require.NoError(t, err)
	assert.False(t, palette.Optimization.CacheHit)

	tokens, err := opt.GenerateBrandTokens(req, TokenOptions{Namespace: "acme"})
	require.NoError(t, err)
	assert.True(t, tokens.Optimization.CacheHit, "tokens reuse the palette optimization")
	assert.Equal(t, "acme-brand-primary", tokens.Tokens[0].ID)
}

func TestResultCacheInsertionOrderEviction(t *testing.T) {
	cache, err := NewResultCache(2)
	require.NoError(t, err)

	cache.Add("a", schema.OptimizationResult{Objective: 1})
	cache.Add("b", schema.OptimizationResult{Objective: 2})

	// Reading "a" does not protect it from eviction
	got, ok := cache.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1.0, got.Objective)

	cache.Add("c", schema.OptimizationResult{Objective: 3})
	_, ok = cache.Get("a")
	assert.False(t, ok, "oldest insertion is evicted first")
	_, ok = cache.Get("b")
	assert.True(t, ok)
	_, ok = cache.Get("c")
	assert.True(t, ok)
}

func TestOptimizationCacheKey(t *testing.T) {
	anchor := mustAnchor(t, "#FF3010")

	full, err := OptimizationCacheKey(mixedCandidates, anchor, DefaultOptimizeOptions())
	require.NoError(t, err)
	assert.Len(t, full, 64)

	// Zero values that resolve to the defaults share the key
	sparse := DefaultOptimizeOptions()
	sparse.Mode = ""
	sparse.Thresholds = schema.ZoneThresholds{}
	sparse.Weights = schema.HarmonyWeights{}
	sparse.Locale = ""
	key, err := OptimizationCacheKey(mixedCandidates, anchor, sparse)
	require.NoError(t, err)
	assert.Equal(t, full, key)

	lambda := DefaultOptimizeOptions()
	lambda.Lambda = 0.75
	key, err = OptimizationCacheKey(mixedCandidates, anchor, lambda)
	require.NoError(t, err)
	assert.NotEqual(t, full, key)

	brand, err := SetPriority(anchor, schema.PreferBrand)
	require.NoError(t, err)
	key, err = OptimizationCacheKey(mixedCandidates, brand, DefaultOptimizeOptions())
	require.NoError(t, err)
	assert.NotEqual(t, full, key)

	reordered := []string{mixedCandidates[1], mixedCandidates[0], mixedCandidates[2]}
	key, err = OptimizationCacheKey(reordered, anchor, DefaultOptimizeOptions())
	require.NoError(t, err)
	assert.NotEqual(t, full, key, "candidate order is part of the key")

	bad := DefaultOptimizeOptions()
	bad.Lambda = -1
	_, err = OptimizationCacheKey(mixedCandidates, anchor, bad)
	assert.ErrorIs(t, err, schema.ErrInvalidParameter)
}

func TestDurableOptimizer(t *testing.T) {
	cat := catalogue.Default()
	anchor := mustAnchor(t, "#FF3010")
	opts := DefaultOptimizeOptions()

	expected, err := OptimizePalette(cat, mixedCandidates, anchor, opts)
	require.NoError(t, err)
	payload, err := json.Marshal(expected)
	require.NoError(t, err)

	t.Run("miss stores the result", func(t *testing.T) {
		store := &iocache.MockCacheStore{}
		store.On("Get", mock.Anything).Return(nil, 0, int64(0), errors.New("not found"))
		store.On("Set", mock.Anything, mock.Anything, currentCacheVersion, mock.AnythingOfType("int64")).Return(nil)

		result, err := durableOptimizer(cat, store)(mixedCandidates, anchor, opts)
		require.NoError(t, err)
		assert.False(t, result.CacheHit)
		assert.Equal(t, expected.Colors, result.Colors)
		store.AssertExpectations(t)
	})

	t.Run("set failure only warns", func(t *testing.T) {
		store := &iocache.MockCacheStore{}
		store.On("Get", mock.Anything).Return(nil, 0, int64(0), errors.New("not found"))
		store.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("disk full"))

		result, err := durableOptimizer(cat, store)(mixedCandidates, anchor, opts)
		require.NoError(t, err)
		assert.Len(t, result.Colors, 3)
		store.AssertExpectations(t)
	})

	t.Run("fresh entry hits", func(t *testing.T) {
		store := &iocache.MockCacheStore{}
		store.On("Get", mock.Anything).Return(payload, currentCacheVersion, time.Now().Unix(), nil)

		result, err := durableOptimizer(cat, store)(mixedCandidates, anchor, opts)
		require.NoError(t, err)
		assert.True(t, result.CacheHit)
		assert.Equal(t, expected.Objective, result.Objective)
		assert.Equal(t, expected.ComplianceRate, result.ComplianceRate)
		assert.Len(t, result.Colors, 3)
		store.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	tests := []struct {
		name    string
		data    []byte
		version int
		ts      int64
	}{
		{"stale entry recomputes", payload, currentCacheVersion, time.Now().Add(-cacheMaxAge - time.Hour).Unix()},
		{"version mismatch recomputes", payload, currentCacheVersion + 1, time.Now().Unix()},
		{"corrupt entry recomputes", []byte("{not json"), currentCacheVersion, time.Now().Unix()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &iocache.MockCacheStore{}
			store.On("Get", mock.Anything).Return(tt.data, tt.version, tt.ts, nil)
			store.On("Set", mock.Anything, mock.Anything, currentCacheVersion, mock.AnythingOfType("int64")).Return(nil)

			result, err := durableOptimizer(cat, store)(mixedCandidates, anchor, opts)
			require.NoError(t, err)
			assert.False(t, result.CacheHit)
			store.AssertExpectations(t)
		})
	}

	t.Run("nil store computes directly", func(t *testing.T) {
		result, err := durableOptimizer(cat, nil)(mixedCandidates, anchor, opts)
		require.NoError(t, err)
		assert.False(t, result.CacheHit)
		assert.Equal(t, expected.Colors, result.Colors)
	})

	t.Run("invalid options fail before the store", func(t *testing.T) {
		store := &iocache.MockCacheStore{}
		bad := opts
		bad.Mode = schema.PreferMode
		_, err := durableOptimizer(cat, store)(mixedCandidates, anchor, bad)
		assert.ErrorIs(t, err, schema.ErrInvalidParameter)
		store.AssertNotCalled(t, "Get", mock.Anything)
	})
}
