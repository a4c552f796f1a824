package graphstore

import (
	"fmt"
	"sync"
)

// Graph is the in-memory node/edge table described in spec §3-4.1. Reads are
// O(1) by id; edge scans are a linear walk over the edge map, which the spec
// explicitly allows ("a linear scan is acceptable").
//
// A single RWMutex guards both tables: node and edge tables are small enough
// relative to sensor/agent traffic that splitting the lock (as the teacher's
// core.Graph does for vertices vs. edges) buys no measurable concurrency here
// and only adds lock-ordering risk around RemoveNode's cascade. See
// DESIGN.md for the full tradeoff.
type Graph struct {
	mu    sync.RWMutex
	nodes map[int64]Node
	edges map[int64]Edge
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[int64]Node),
		edges: make(map[int64]Edge),
	}
}

// AddNode inserts a new node. Returns ErrConflict if the id already exists.
func (g *Graph) AddNode(in NodeInput) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, exists := g.nodes[in.ID]; exists {
		return fmt.Errorf("%w: node %d", ErrConflict, in.ID)
	}
	g.nodes[in.ID] = Node{ID: in.ID, X: in.X, Y: in.Y}
	return nil
}

// AddEdge inserts a new directed edge. source and target must already
// resolve in the node table. linestring is synthesized as a straight line
// when absent; an explicit but degenerate linestring is rejected.
func (g *Graph) AddEdge(in EdgeInput) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, exists := g.edges[in.ID]; exists {
		return fmt.Errorf("%w: edge %d", ErrConflict, in.ID)
	}
	src, ok := g.nodes[in.Source]
	if !ok {
		return fmt.Errorf("%w: source node %d", ErrNotFound, in.Source)
	}
	tgt, ok := g.nodes[in.Target]
	if !ok {
		return fmt.Errorf("%w: target node %d", ErrNotFound, in.Target)
	}

	ls := in.Linestring
	if ls == nil {
		ls = straightLine(Point{X: src.X, Y: src.Y}, Point{X: tgt.X, Y: tgt.Y})
	} else if !validLinestring(ls) {
		return fmt.Errorf("%w: degenerate linestring for edge %d", ErrInvalid, in.ID)
	}

	g.edges[in.ID] = Edge{
		ID:         in.ID,
		Source:     in.Source,
		Target:     in.Target,
		Length:     in.Length,
		Linestring: ls,
	}
	return nil
}

// GetNode returns the node with the given id.
func (g *Graph) GetNode(id int64) (Node, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n, ok := g.nodes[id]
	if !ok {
		return Node{}, fmt.Errorf("%w: node %d", ErrNotFound, id)
	}
	return n, nil
}

// GetEdge returns the edge with the given id.
func (g *Graph) GetEdge(id int64) (Edge, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	e, ok := g.edges[id]
	if !ok {
		return Edge{}, fmt.Errorf("%w: edge %d", ErrNotFound, id)
	}
	return e, nil
}

// Nodes returns every node id currently in the graph. Order is unspecified.
func (g *Graph) Nodes() []int64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]int64, 0, len(g.nodes))
	for id := range g.nodes {
		out = append(out, id)
	}
	return out
}

// Edges returns every edge id currently in the graph. Order is unspecified.
func (g *Graph) Edges() []int64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]int64, 0, len(g.edges))
	for id := range g.edges {
		out = append(out, id)
	}
	return out
}

// EdgesNear restricts Edges to those with at least one endpoint within
// distance d of (x,y). A linear scan, as permitted by spec §4.1.
func (g *Graph) EdgesNear(d, x, y float64) []int64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	d2 := d * d
	var out []int64
	for id, e := range g.edges {
		src, srcOK := g.nodes[e.Source]
		tgt, tgtOK := g.nodes[e.Target]
		if (srcOK && within(src, x, y, d2)) || (tgtOK && within(tgt, x, y, d2)) {
			out = append(out, id)
		}
	}
	return out
}

func within(n Node, x, y, d2 float64) bool {
	dx := n.X - x
	dy := n.Y - y
	return dx*dx+dy*dy <= d2
}

// UpdateNode applies a partial patch; fields left nil in patch keep their
// previous value.
func (g *Graph) UpdateNode(id int64, patch NodePatch) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	n, ok := g.nodes[id]
	if !ok {
		return fmt.Errorf("%w: node %d", ErrNotFound, id)
	}
	if patch.X != nil {
		n.X = *patch.X
	}
	if patch.Y != nil {
		n.Y = *patch.Y
	}
	g.nodes[id] = n
	return nil
}

// UpdateEdge applies a partial patch; fields left nil in patch keep their
// previous value. A non-nil Linestring replaces the geometry outright (after
// validation); a nil Linestring leaves the existing geometry untouched.
func (g *Graph) UpdateEdge(id int64, patch EdgePatch) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	e, ok := g.edges[id]
	if !ok {
		return fmt.Errorf("%w: edge %d", ErrNotFound, id)
	}
	if patch.Source != nil {
		e.Source = *patch.Source
	}
	if patch.Target != nil {
		e.Target = *patch.Target
	}
	if patch.Length != nil {
		e.Length = *patch.Length
	}
	if patch.Linestring != nil {
		if !validLinestring(patch.Linestring) {
			return fmt.Errorf("%w: degenerate linestring for edge %d", ErrInvalid, id)
		}
		e.Linestring = patch.Linestring
	}
	g.edges[id] = e
	return nil
}

// RemoveNode deletes a node and cascades: every edge incident to it
// (as source or target) is removed too.
func (g *Graph) RemoveNode(id int64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.nodes[id]; !ok {
		return fmt.Errorf("%w: node %d", ErrNotFound, id)
	}
	delete(g.nodes, id)
	for eid, e := range g.edges {
		if e.Source == id || e.Target == id {
			delete(g.edges, eid)
		}
	}
	return nil
}

// RemoveEdge deletes a single edge. Local: no cascade.
func (g *Graph) RemoveEdge(id int64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.edges[id]; !ok {
		return fmt.Errorf("%w: edge %d", ErrNotFound, id)
	}
	delete(g.edges, id)
	return nil
}

// Neighbors returns every node v such that an edge (node_id->v) or
// (v->node_id) exists, per the spec's resolved bidirectional definition.
// The sensing node itself is never included here (NeighborSensor adds it).
func (g *Graph) Neighbors(id int64) (map[int64]struct{}, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if _, ok := g.nodes[id]; !ok {
		return nil, fmt.Errorf("%w: node %d", ErrNotFound, id)
	}
	out := make(map[int64]struct{})
	for _, e := range g.edges {
		if e.Source == id {
			out[e.Target] = struct{}{}
		}
		if e.Target == id {
			out[e.Source] = struct{}{}
		}
	}
	return out, nil
}

// AllNodes returns a defensive copy of every node, for sensors that scan the
// whole graph (Map sensor and its infinite-range configuration).
func (g *Graph) AllNodes() []Node {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		out = append(out, n)
	}
	return out
}

// EdgesAmong returns every edge whose source and target both appear in ids,
// satisfying the sensor invariant that a returned edge only ever references
// returned nodes.
func (g *Graph) EdgesAmong(ids map[int64]struct{}) []Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	var out []Edge
	for _, e := range g.edges {
		_, srcIn := ids[e.Source]
		_, tgtIn := ids[e.Target]
		if srcIn && tgtIn {
			out = append(out, e)
		}
	}
	return out
}

// snapshot returns a defensive copy of the whole graph, used by persistence
// backends and tests.
func (g *Graph) snapshot() ([]Node, []Edge) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	nodes := make([]Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		nodes = append(nodes, n)
	}
	edges := make([]Edge, 0, len(g.edges))
	for _, e := range g.edges {
		edges = append(edges, e)
	}
	return nodes, edges
}
