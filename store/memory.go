package store

import (
	"context"
	"sync"

	"github.com/gammsgo/gammsgo/graphstore"
)

// MemoryGraphStore is an in-process implementation of graphstore.Backend.
// It round-trips a snapshot through memory with no disk I/O, matching the
// teacher's MemStore: intended for tests and short-lived simulations where
// persistence isn't required.
type MemoryGraphStore struct {
	mu    sync.RWMutex
	saved bool
	nodes []nodeRow
	edges []edgeRow
}

// NewMemoryGraphStore creates an empty in-memory graph store.
func NewMemoryGraphStore() *MemoryGraphStore {
	return &MemoryGraphStore{}
}

// SaveGraph replaces the stored snapshot with nodes/edges.
func (m *MemoryGraphStore) SaveGraph(_ context.Context, nodes []graphstore.Node, edges []graphstore.Edge) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nodes = toNodeRows(nodes)
	m.edges = toEdgeRows(edges)
	m.saved = true
	return nil
}

// LoadGraph returns the most recently saved snapshot.
func (m *MemoryGraphStore) LoadGraph(_ context.Context) ([]graphstore.Node, []graphstore.Edge, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.saved {
		return nil, nil, ErrNotFound
	}
	return fromRows(m.nodes, m.edges)
}
