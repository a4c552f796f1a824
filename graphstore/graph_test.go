package graphstore

import (
	"context"
	"errors"
	"testing"
)

// buildGrid builds the 5x5 grid used throughout the sensor/agent test
// scenarios: node id = 5i+j at (i,j), bidirectional unit edges between
// horizontal and vertical neighbors.
func buildGrid(t *testing.T) *Graph {
	t.Helper()
	g := New()
	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			id := int64(5*i + j)
			if err := g.AddNode(NodeInput{ID: id, X: float64(i), Y: float64(j)}); err != nil {
				t.Fatalf("AddNode(%d): %v", id, err)
			}
		}
	}
	edgeID := int64(0)
	addEdge := func(a, b int64) {
		if err := g.AddEdge(EdgeInput{ID: edgeID, Source: a, Target: b, Length: 1}); err != nil {
			t.Fatalf("AddEdge(%d,%d): %v", a, b, err)
		}
		edgeID++
	}
	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			id := int64(5*i + j)
			if j < 4 {
				addEdge(id, id+1)
				addEdge(id+1, id)
			}
			if i < 4 {
				addEdge(id, id+5)
				addEdge(id+5, id)
			}
		}
	}
	return g
}

func TestNeighborsBidirectional(t *testing.T) {
	g := buildGrid(t)

	n0, err := g.Neighbors(0)
	if err != nil {
		t.Fatal(err)
	}
	want0 := map[int64]struct{}{1: {}, 5: {}}
	if len(n0) != len(want0) {
		t.Fatalf("node 0 neighbors = %v, want %v", n0, want0)
	}
	for id := range want0 {
		if _, ok := n0[id]; !ok {
			t.Errorf("node 0 missing neighbor %d", id)
		}
	}

	n12, err := g.Neighbors(12)
	if err != nil {
		t.Fatal(err)
	}
	want12 := []int64{7, 11, 13, 17}
	if len(n12) != len(want12) {
		t.Fatalf("node 12 neighbors = %v, want %v", n12, want12)
	}
	for _, id := range want12 {
		if _, ok := n12[id]; !ok {
			t.Errorf("node 12 missing neighbor %d", id)
		}
	}
}

func TestAddEdgeSynthesizesStraightLine(t *testing.T) {
	g := New()
	must(t, g.AddNode(NodeInput{ID: 1, X: 0, Y: 0}))
	must(t, g.AddNode(NodeInput{ID: 2, X: 3, Y: 4}))
	must(t, g.AddEdge(EdgeInput{ID: 1, Source: 1, Target: 2, Length: 5}))

	e, err := g.GetEdge(1)
	if err != nil {
		t.Fatal(err)
	}
	want := []Point{{X: 0, Y: 0}, {X: 3, Y: 4}}
	if len(e.Linestring) != 2 || e.Linestring[0] != want[0] || e.Linestring[1] != want[1] {
		t.Errorf("synthesized linestring = %v, want %v", e.Linestring, want)
	}
}

func TestAddEdgeRejectsDegenerateLinestring(t *testing.T) {
	g := New()
	must(t, g.AddNode(NodeInput{ID: 1}))
	must(t, g.AddNode(NodeInput{ID: 2}))

	err := g.AddEdge(EdgeInput{ID: 1, Source: 1, Target: 2, Linestring: []Point{{X: 1, Y: 1}, {X: 1, Y: 1}}})
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestAddEdgeMissingEndpoint(t *testing.T) {
	g := New()
	must(t, g.AddNode(NodeInput{ID: 1}))
	err := g.AddEdge(EdgeInput{ID: 1, Source: 1, Target: 99})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRemoveNodeCascadesEdges(t *testing.T) {
	g := New()
	must(t, g.AddNode(NodeInput{ID: 1}))
	must(t, g.AddNode(NodeInput{ID: 2}))
	must(t, g.AddNode(NodeInput{ID: 3}))
	must(t, g.AddEdge(EdgeInput{ID: 1, Source: 1, Target: 2}))
	must(t, g.AddEdge(EdgeInput{ID: 2, Source: 2, Target: 3}))

	must(t, g.RemoveNode(2))

	if _, err := g.GetEdge(1); !errors.Is(err, ErrNotFound) {
		t.Error("expected edge 1 to be cascaded away")
	}
	if _, err := g.GetEdge(2); !errors.Is(err, ErrNotFound) {
		t.Error("expected edge 2 to be cascaded away")
	}
}

func TestRemoveEdgeIsLocal(t *testing.T) {
	g := New()
	must(t, g.AddNode(NodeInput{ID: 1}))
	must(t, g.AddNode(NodeInput{ID: 2}))
	must(t, g.AddEdge(EdgeInput{ID: 1, Source: 1, Target: 2}))
	must(t, g.RemoveEdge(1))

	if _, err := g.GetNode(1); err != nil {
		t.Error("node 1 should survive a local edge removal")
	}
	if _, err := g.GetEdge(1); !errors.Is(err, ErrNotFound) {
		t.Error("edge 1 should be gone")
	}
}

func TestUpdateNodePartial(t *testing.T) {
	g := New()
	must(t, g.AddNode(NodeInput{ID: 1, X: 1, Y: 2}))
	y := 9.0
	must(t, g.UpdateNode(1, NodePatch{Y: &y}))

	n, err := g.GetNode(1)
	if err != nil {
		t.Fatal(err)
	}
	if n.X != 1 || n.Y != 9 {
		t.Errorf("got %+v, want X=1 Y=9", n)
	}
}

func TestEdgesNear(t *testing.T) {
	g := New()
	must(t, g.AddNode(NodeInput{ID: 1, X: 0, Y: 0}))
	must(t, g.AddNode(NodeInput{ID: 2, X: 1, Y: 0}))
	must(t, g.AddNode(NodeInput{ID: 3, X: 100, Y: 100}))
	must(t, g.AddEdge(EdgeInput{ID: 1, Source: 1, Target: 2}))
	must(t, g.AddEdge(EdgeInput{ID: 2, Source: 2, Target: 3}))

	near := g.EdgesNear(0.5, 0, 0)
	found := map[int64]bool{}
	for _, id := range near {
		found[id] = true
	}
	if !found[1] {
		t.Error("expected edge 1 to be near (0,0)")
	}
	if found[2] {
		t.Error("did not expect edge 2 (both endpoints farther than 0.5) to be near (0,0)")
	}
}

type fakeBackend struct {
	nodes []Node
	edges []Edge
}

func (f *fakeBackend) SaveGraph(_ context.Context, nodes []Node, edges []Edge) error {
	f.nodes = append([]Node(nil), nodes...)
	f.edges = append([]Edge(nil), edges...)
	return nil
}

func (f *fakeBackend) LoadGraph(_ context.Context) ([]Node, []Edge, error) {
	return f.nodes, f.edges, nil
}

func TestSaveLoadRoundTrip(t *testing.T) {
	g := buildGrid(t)
	backend := &fakeBackend{}
	if err := g.Save(context.Background(), backend); err != nil {
		t.Fatal(err)
	}

	g2 := New()
	if err := g2.Load(context.Background(), backend); err != nil {
		t.Fatal(err)
	}
	if len(g2.Nodes()) != len(g.Nodes()) {
		t.Fatalf("node count mismatch after round trip: %d vs %d", len(g2.Nodes()), len(g.Nodes()))
	}
	if len(g2.Edges()) != len(g.Edges()) {
		t.Fatalf("edge count mismatch after round trip: %d vs %d", len(g2.Edges()), len(g.Edges()))
	}
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}
