package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/gammsgo/gammsgo/graphstore"
)

func TestSaveToPathLoadFromPathRoundTrip(t *testing.T) {
	ctx := context.Background()
	g := graphstore.New()
	if err := g.AddNode(graphstore.NodeInput{ID: 1, X: 0, Y: 0}); err != nil {
		t.Fatal(err)
	}
	if err := g.AddNode(graphstore.NodeInput{ID: 2, X: 1, Y: 0}); err != nil {
		t.Fatal(err)
	}
	if err := g.AddEdge(graphstore.EdgeInput{ID: 1, Source: 1, Target: 2}); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "graph.db")
	if err := SaveToPath(ctx, g, path); err != nil {
		t.Fatalf("SaveToPath: %v", err)
	}

	loaded := graphstore.New()
	if err := LoadFromPath(ctx, loaded, path); err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}

	n, err := loaded.GetNode(1)
	if err != nil {
		t.Fatalf("GetNode: %v", err)
	}
	if n.X != 0 || n.Y != 0 {
		t.Errorf("node 1 = %+v, want X=0 Y=0", n)
	}
	if _, err := loaded.GetEdge(1); err != nil {
		t.Errorf("GetEdge(1): %v", err)
	}
}
