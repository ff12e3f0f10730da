package core

import "context"

// Context keys for run options
type contextKey string

const (
	suppressHeaderKey contextKey = "suppressHeader"
	resultCacheKey    contextKey = "resultCache"
)

// WithSuppressHeader marks the context so executors do not print headers.
func WithSuppressHeader(ctx context.Context) context.Context {
	return context.WithValue(ctx, suppressHeaderKey, true)
}

// shouldSuppressHeader returns whether headers should be suppressed from context
func shouldSuppressHeader(ctx context.Context) bool {
	val := ctx.Value(suppressHeaderKey)
	if val == nil {
		return false // default: show headers
	}
	suppress, ok := val.(bool)
	return ok && suppress
}

// WithResultCache attaches an in-process result cache consulted before the durable store.
func WithResultCache(ctx context.Context, cache *ResultCache) context.Context {
	return context.WithValue(ctx, resultCacheKey, cache)
}

// resultCacheFrom returns the attached result cache, or nil
func resultCacheFrom(ctx context.Context) *ResultCache {
	cache, _ := ctx.Value(resultCacheKey).(*ResultCache)
	return cache
}
