package graphstore

// AttachExternal bulk-ingests an externally described adjacency: every node
// is added as-is, and every edge missing a Linestring/Length is defaulted
// (straight line, length 0) exactly as spec's attach_networkx_graph does.
// Go has no networkx equivalent to accept directly, so the natural shape for
// "attach an externally built graph" is the same NodeInput/EdgeInput slices
// every other bulk path in this package uses.
func (g *Graph) AttachExternal(nodes []NodeInput, edges []EdgeInput) error {
	for _, n := range nodes {
		if err := g.AddNode(n); err != nil {
			return err
		}
	}
	for _, e := range edges {
		if err := g.AddEdge(e); err != nil {
			return err
		}
	}
	return nil
}
