// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"time"

	"github.com/cudkit/udsnap/schema"
	"github.com/lucasb-eyer/go-colorful"
)

// Catalogue defines the read-only reference catalogue and its distance service.
// This allows the engine to be tested against small custom catalogues.
type Catalogue interface {
	// Nearest returns the closest reference entry to the color with its match class.
	Nearest(c colorful.Color) schema.NearestMatch

	// NearestExcluding is Nearest over the entries whose ids are not in exclude.
	// It reports false when every entry is excluded.
	NearestExcluding(c colorful.Color, exclude map[string]bool) (schema.NearestMatch, bool)

	// Lookup returns the entry with the given id.
	Lookup(id string) (schema.ReferenceColor, bool)

	// Entries returns every entry in catalogue order.
	Entries() []schema.ReferenceColor

	// Len returns the number of entries.
	Len() int
}

// CacheManager defines the interface for managing cache stores.
// This allows the cache layer to be mocked for testing.
type CacheManager interface {
	GetResultStore() CacheStore
	GetRunStore() RunStore
}

// CacheStore defines the interface for cache data storage.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// RunStore defines the interface for tracking optimization runs and their colors.
type RunStore interface {
	// BeginRun creates a new run and returns its numeric ID and UUID
	BeginRun(startTime time.Time, mode schema.SnapMode, lambda float64, configParams map[string]any) (int64, string, error)

	// EndRun updates the run with completion data
	EndRun(runID int64, summary schema.RunSummary) error

	// RecordColors stores the optimized colors of a run
	RecordColors(runID int64, colors []schema.OptimizedColor) error

	// GetStatus returns status information about the run store
	GetStatus() (schema.RunStatus, error)

	// GetAllRuns returns every run, oldest first
	GetAllRuns() ([]schema.RunRecord, error)

	// GetAllRunColors returns every recorded color ordered by run and position
	GetAllRunColors() ([]schema.RunColorRecord, error)

	// Close closes the underlying connection
	Close() error
}
