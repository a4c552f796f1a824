package sensor

import "time"

// neighborSensor reports the sensing node plus every graph neighbor.
type neighborSensor struct {
	id      string
	graph   GraphView
	owner   string
	data    []int64
	metrics SenseMetrics
}

func newNeighborSensor(id string, graph GraphView) *neighborSensor {
	return &neighborSensor{id: id, graph: graph}
}

func (s *neighborSensor) ID() string                { return s.id }
func (s *neighborSensor) Type() Type                { return Neighbor }
func (s *neighborSensor) CustomTag() string         { return "" }
func (s *neighborSensor) Data() any                 { return s.data }
func (s *neighborSensor) SetOwner(owner string)     { s.owner = owner }
func (s *neighborSensor) SetMetrics(m SenseMetrics) { s.metrics = m }

func (s *neighborSensor) Sense(nodeID int64) {
	defer func(start time.Time) { recordSense(s.metrics, s.Type().String(), time.Since(start)) }(time.Now())

	neighbors, err := s.graph.Neighbors(nodeID)
	if err != nil {
		s.data = nil
		return
	}
	out := make([]int64, 0, len(neighbors)+1)
	out = append(out, nodeID)
	for n := range neighbors {
		out = append(out, n)
	}
	s.data = out
}
