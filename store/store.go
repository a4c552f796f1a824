// Package store provides persistence backends for graphstore.Graph
// snapshots: a node/edge table pair identical in shape across all three
// implementations (in-memory, SQLite, MySQL), so callers can swap backends
// without touching simulation code.
package store

import (
	"errors"

	"github.com/gammsgo/gammsgo/graphstore"
)

// ErrNotFound is returned when LoadGraph is called on a backend that has
// never been saved to.
var ErrNotFound = errors.New("store: no graph snapshot saved")

// row mirrors graphstore.Node/Edge in the shape every backend persists;
// kept private since callers only ever see graphstore.Node/Edge.
type nodeRow struct {
	ID   int64
	X, Y float64
}

type edgeRow struct {
	ID             int64
	Source, Target int64
	Length         float64
	Geom           []graphstore.Point
}

func toNodeRows(nodes []graphstore.Node) []nodeRow {
	rows := make([]nodeRow, len(nodes))
	for i, n := range nodes {
		rows[i] = nodeRow{ID: n.ID, X: n.X, Y: n.Y}
	}
	return rows
}

func toEdgeRows(edges []graphstore.Edge) []edgeRow {
	rows := make([]edgeRow, len(edges))
	for i, e := range edges {
		rows[i] = edgeRow{ID: e.ID, Source: e.Source, Target: e.Target, Length: e.Length, Geom: e.Linestring}
	}
	return rows
}

func fromRows(nodeRows []nodeRow, edgeRows []edgeRow) ([]graphstore.Node, []graphstore.Edge) {
	nodes := make([]graphstore.Node, len(nodeRows))
	for i, r := range nodeRows {
		nodes[i] = graphstore.Node{ID: r.ID, X: r.X, Y: r.Y}
	}
	edges := make([]graphstore.Edge, len(edgeRows))
	for i, r := range edgeRows {
		edges[i] = graphstore.Edge{ID: r.ID, Source: r.Source, Target: r.Target, Length: r.Length, Linestring: r.Geom}
	}
	return nodes, edges
}
