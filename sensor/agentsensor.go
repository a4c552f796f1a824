package sensor

import (
	"math"
	"time"
)

// agentSensor implements Agent (range=inf, fov=2pi), AgentRange (finite
// range, fov=2pi) and AgentArc (finite range, user fov): reports other
// agents' positions, skipping the owner unless the owner happens to be at
// the sensing node itself (S3: the owner is reported when co-located).
type agentSensor struct {
	id           string
	typ          Type
	graph        GraphView
	positions    AgentPositions
	orientLookup OrientationLookup
	sensorRange  float64
	fov          float64
	orientation  Vec2
	owner        string
	data         AgentData
	metrics      SenseMetrics
}

func newAgentSensor(id string, typ Type, graph GraphView, positions AgentPositions, orientLookup OrientationLookup, sensorRange, fov float64, orientation Vec2) *agentSensor {
	return &agentSensor{
		id:           id,
		typ:          typ,
		graph:        graph,
		positions:    positions,
		orientLookup: orientLookup,
		sensorRange:  sensorRange,
		fov:          fov,
		orientation:  orientation.Normalized(),
	}
}

func (s *agentSensor) ID() string        { return s.id }
func (s *agentSensor) Type() Type        { return s.typ }
func (s *agentSensor) CustomTag() string { return "" }
func (s *agentSensor) Data() any         { return s.data }

func (s *agentSensor) SetOwner(owner string) { s.owner = owner }
func (s *agentSensor) SetMetrics(m SenseMetrics) { s.metrics = m }

func (s *agentSensor) effectiveOrientation() Vec2 {
	if s.owner == "" || s.orientLookup == nil {
		return s.orientation
	}
	ownerOrientation, ok := s.orientLookup.Orientation(s.owner)
	if !ok {
		return s.orientation
	}
	return s.orientation.compose(ownerOrientation)
}

func (s *agentSensor) Sense(nodeID int64) {
	defer func(start time.Time) { recordSense(s.metrics, s.typ.String(), time.Since(start)) }(time.Now())

	center, err := s.graph.GetNode(nodeID)
	if err != nil {
		s.data = AgentData{}
		return
	}

	orientation := s.effectiveOrientation()
	out := make(AgentData)
	if s.positions == nil {
		s.data = out
		return
	}

	for name, at := range s.positions.Positions() {
		if name == s.owner && at != nodeID {
			continue
		}
		agentNode, err := s.graph.GetNode(at)
		if err != nil {
			continue
		}
		if !math.IsInf(s.sensorRange, 1) {
			if distanceSq(center.X, center.Y, agentNode.X, agentNode.Y) > s.sensorRange*s.sensorRange {
				continue
			}
		}
		if !withinFOV(center.X, center.Y, agentNode.X, agentNode.Y, orientation, s.fov) {
			continue
		}
		out[name] = at
	}
	s.data = out
}
