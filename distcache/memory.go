package distcache

import (
	"context"
	"sync"
)

type pairKey struct{ from, to int64 }

// Memory is an in-process Cache backed by a map. Safe for concurrent use.
type Memory struct {
	mu     sync.RWMutex
	data   map[pairKey]float64
	closed bool
}

// NewMemory returns an empty in-memory cache.
func NewMemory() *Memory {
	return &Memory{data: make(map[pairKey]float64)}
}

// Get implements Cache.
func (m *Memory) Get(_ context.Context, from, to int64) (float64, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return 0, false, ErrClosed
	}
	d, ok := m.data[pairKey{from, to}]

	return d, ok, nil
}

// SetBatch implements Cache.
func (m *Memory) SetBatch(_ context.Context, entries []Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	for _, e := range entries {
		m.data[pairKey{e.From, e.To}] = e.Meters
	}

	return nil
}

// Clear implements Cache.
func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	m.data = make(map[pairKey]float64)

	return nil
}

// Close implements Cache.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.data = nil

	return nil
}

// Len returns the number of cached pairs (test helper).
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.data)
}
