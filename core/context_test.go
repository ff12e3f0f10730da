package core

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestContextConcurrentAccess tests that context values can be safely accessed concurrently.
func TestContextConcurrentAccess(t *testing.T) {
	cache, err := NewResultCache(4)
	require.NoError(t, err)

	ctx := WithResultCache(WithSuppressHeader(context.Background()), cache)

	const numGoroutines = 50
	done := make(chan bool, numGoroutines)

	for i := range numGoroutines {
		go func(id int) {
			defer func() { done <- true }()

			assert.True(t, shouldSuppressHeader(ctx), "Goroutine %d: shouldSuppressHeader should be true", id)
			assert.Same(t, cache, resultCacheFrom(ctx), "Goroutine %d: cache should be attached", id)
		}(i)
	}

	for range numGoroutines {
		<-done
	}
}

// TestContextIsolation tests that different contexts maintain isolation.
func TestContextIsolation(t *testing.T) {
	baseCtx := context.Background()
	cache, err := NewResultCache(1)
	require.NoError(t, err)

	ctx1 := WithResultCache(baseCtx, cache)
	ctx2 := WithSuppressHeader(baseCtx)

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		assert.NotNil(t, resultCacheFrom(ctx1))
		assert.False(t, shouldSuppressHeader(ctx1))
	}()

	go func() {
		defer wg.Done()
		assert.Nil(t, resultCacheFrom(ctx2))
		assert.True(t, shouldSuppressHeader(ctx2))
	}()

	go func() {
		defer wg.Done()
		assert.Nil(t, resultCacheFrom(baseCtx))
		assert.False(t, shouldSuppressHeader(baseCtx))
	}()

	wg.Wait()
}
