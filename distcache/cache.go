package distcache

import (
	"context"
	"errors"
)

// ErrClosed indicates an operation on a closed cache.
var ErrClosed = errors.New("distcache: cache is closed")

// Entry is one cached pair distance.
type Entry struct {
	From   int64   // source node ID
	To     int64   // destination node ID
	Meters float64 // exact shortest-path walking distance
}

// Cache stores pairwise walking distances between network nodes.
type Cache interface {
	// Get returns the cached distance for the ordered pair (from, to).
	// The boolean reports whether the pair was present.
	Get(ctx context.Context, from, to int64) (float64, bool, error)

	// SetBatch stores all entries atomically (per implementation
	// guarantees); existing pairs are overwritten.
	SetBatch(ctx context.Context, entries []Entry) error

	// Clear removes every entry.
	Clear(ctx context.Context) error

	// Close releases underlying resources. Further calls fail with ErrClosed.
	Close() error
}
