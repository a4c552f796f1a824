package graphstore

// Node is a geo-located vertex. Identity (ID) is immutable once added;
// coordinates may be updated in place via UpdateNode.
type Node struct {
	ID int64
	X  float64
	Y  float64
}

// Edge is a directed arc between two node ids, carrying a scalar length and
// a polyline approximating its shape. (u->v) and (v->u) are distinct edges.
type Edge struct {
	ID         int64
	Source     int64
	Target     int64
	Length     float64
	Linestring []Point
}

// NodeInput is the argument shape for AddNode/AttachExternal.
type NodeInput struct {
	ID int64
	X  float64
	Y  float64
}

// EdgeInput is the argument shape for AddEdge/AttachExternal.
// Linestring is optional; nil means "synthesize a straight line between the
// endpoints".
type EdgeInput struct {
	ID         int64
	Source     int64
	Target     int64
	Length     float64
	Linestring []Point
}

// NodePatch partially updates a Node; nil fields retain their previous
// value.
type NodePatch struct {
	X *float64
	Y *float64
}

// EdgePatch partially updates an Edge; nil fields retain their previous
// value.
type EdgePatch struct {
	Source     *int64
	Target     *int64
	Length     *float64
	Linestring []Point // nil means "leave unchanged", non-nil replaces
}
