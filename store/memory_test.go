package store

import (
	"context"
	"errors"
	"testing"

	"github.com/gammsgo/gammsgo/graphstore"
)

func TestMemoryGraphStoreRoundTrip(t *testing.T) {
	s := NewMemoryGraphStore()
	ctx := context.Background()

	nodes := []graphstore.Node{{ID: 1, X: 1, Y: 2}, {ID: 2, X: 3, Y: 4}}
	edges := []graphstore.Edge{{ID: 1, Source: 1, Target: 2, Length: 2.8, Linestring: []graphstore.Point{{X: 1, Y: 2}, {X: 3, Y: 4}}}}

	if err := s.SaveGraph(ctx, nodes, edges); err != nil {
		t.Fatal(err)
	}

	gotNodes, gotEdges, err := s.LoadGraph(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(gotNodes) != 2 || len(gotEdges) != 1 {
		t.Fatalf("got %d nodes, %d edges", len(gotNodes), len(gotEdges))
	}
	if gotEdges[0].Linestring[1] != edges[0].Linestring[1] {
		t.Errorf("linestring not preserved: %+v", gotEdges[0])
	}
}

func TestMemoryGraphStoreLoadBeforeSave(t *testing.T) {
	s := NewMemoryGraphStore()
	if _, _, err := s.LoadGraph(context.Background()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
