package graphstore

import "context"

// Backend is the persistence contract Graph.Save/Load depend on. Concrete
// implementations (in-memory, SQLite, MySQL) live in package store; Graph
// depends only on this interface, never on package store itself, so the
// dependency points outward from store to graphstore and not back.
type Backend interface {
	SaveGraph(ctx context.Context, nodes []Node, edges []Edge) error
	LoadGraph(ctx context.Context) (nodes []Node, edges []Edge, err error)
}

// Save writes the full node+edge tables to b. The on-disk layout is
// whatever b implements; Graph only guarantees the round trip.
func (g *Graph) Save(ctx context.Context, b Backend) error {
	nodes, edges := g.snapshot()
	return b.SaveGraph(ctx, nodes, edges)
}

// Load replaces this Graph's contents with whatever b.LoadGraph returns.
// Existing nodes/edges not present in the loaded snapshot are dropped.
func (g *Graph) Load(ctx context.Context, b Backend) error {
	nodes, edges, err := b.LoadGraph(ctx)
	if err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.nodes = make(map[int64]Node, len(nodes))
	for _, n := range nodes {
		g.nodes[n.ID] = n
	}
	g.edges = make(map[int64]Edge, len(edges))
	for _, e := range edges {
		g.edges[e.ID] = e
	}
	return nil
}
