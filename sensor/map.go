package sensor

import (
	"math"
	"time"

	"github.com/gammsgo/gammsgo/graphstore"
)

// mapSensor implements Map (range=inf, fov=2pi), Range (finite range,
// fov=2pi) and Arc (finite range, user fov) — one struct, three
// configurations, matching the source's MapSensor shared across all three.
type mapSensor struct {
	id           string
	typ          Type
	graph        GraphView
	orientLookup OrientationLookup
	sensorRange  float64
	fov          float64
	orientation  Vec2
	owner        string
	data         MapData
	metrics      SenseMetrics
}

func newMapSensor(id string, typ Type, graph GraphView, orientLookup OrientationLookup, sensorRange, fov float64, orientation Vec2) *mapSensor {
	return &mapSensor{
		id:           id,
		typ:          typ,
		graph:        graph,
		orientLookup: orientLookup,
		sensorRange:  sensorRange,
		fov:          fov,
		orientation:  orientation.Normalized(),
	}
}

func (s *mapSensor) ID() string        { return s.id }
func (s *mapSensor) Type() Type        { return s.typ }
func (s *mapSensor) CustomTag() string { return "" }
func (s *mapSensor) Data() any         { return s.data }

func (s *mapSensor) SetOwner(owner string)   { s.owner = owner }
func (s *mapSensor) SetMetrics(m SenseMetrics) { s.metrics = m }

func (s *mapSensor) effectiveOrientation() Vec2 {
	if s.owner == "" || s.orientLookup == nil {
		return s.orientation
	}
	ownerOrientation, ok := s.orientLookup.Orientation(s.owner)
	if !ok {
		return s.orientation
	}
	return s.orientation.compose(ownerOrientation)
}

func (s *mapSensor) candidates(center graphstore.Node) []graphstore.Node {
	all := s.graph.AllNodes()
	if math.IsInf(s.sensorRange, 1) {
		return all
	}
	rangeSq := s.sensorRange * s.sensorRange
	out := make([]graphstore.Node, 0, len(all))
	for _, n := range all {
		if distanceSq(center.X, center.Y, n.X, n.Y) <= rangeSq {
			out = append(out, n)
		}
	}
	return out
}

func (s *mapSensor) Sense(nodeID int64) {
	defer func(start time.Time) { recordSense(s.metrics, s.typ.String(), time.Since(start)) }(time.Now())

	center, err := s.graph.GetNode(nodeID)
	if err != nil {
		s.data = MapData{Nodes: map[int64]NodeView{}, Edges: nil}
		return
	}

	orientation := s.effectiveOrientation()
	nodes := make(map[int64]NodeView)
	for _, c := range s.candidates(center) {
		if c.ID == nodeID || withinFOV(center.X, center.Y, c.X, c.Y, orientation, s.fov) {
			nodes[c.ID] = NodeView{ID: c.ID, X: c.X, Y: c.Y}
		}
	}
	nodes[nodeID] = NodeView{ID: center.ID, X: center.X, Y: center.Y}

	ids := make(map[int64]struct{}, len(nodes))
	for id := range nodes {
		ids[id] = struct{}{}
	}
	var edges []EdgeView
	if len(nodes) > 1 {
		for _, e := range s.graph.EdgesAmong(ids) {
			edges = append(edges, EdgeView{ID: e.ID, Source: e.Source, Target: e.Target, Length: e.Length})
		}
	}

	s.data = MapData{Nodes: nodes, Edges: edges}
}
