package sensor

import "math"

// Type identifies which built-in variant a sensor is, or marks it as a
// Custom sensor carrying a registered tag. Closed set per built-in case,
// plus one open Custom case — the engine's custom tag registry, not a
// runtime-extended enum, is what makes Custom extensible.
type Type int

const (
	Neighbor Type = iota
	Map
	Range
	Arc
	Agent
	AgentRange
	AgentArc
	Custom
)

func (t Type) String() string {
	switch t {
	case Neighbor:
		return "Neighbor"
	case Map:
		return "Map"
	case Range:
		return "Range"
	case Arc:
		return "Arc"
	case Agent:
		return "Agent"
	case AgentRange:
		return "AgentRange"
	case AgentArc:
		return "AgentArc"
	case Custom:
		return "Custom"
	default:
		return "Unknown"
	}
}

// NodeView is one sensed graph node, the shape Map/Range/Arc sensors report.
type NodeView struct {
	ID   int64
	X, Y float64
}

// EdgeView is one sensed graph edge.
type EdgeView struct {
	ID, Source, Target int64
	Length             float64
}

// MapData is the payload produced by Map, Range and Arc sensors.
type MapData struct {
	Nodes map[int64]NodeView
	Edges []EdgeView
}

// AgentData is the payload produced by Agent, AgentRange and AgentArc
// sensors: agent name to current node id.
type AgentData map[string]int64

// Sensor is the common interface every sensor variant satisfies.
type Sensor interface {
	ID() string
	Type() Type
	CustomTag() string
	Sense(nodeID int64)
	Data() any
	SetOwner(owner string)

	// SetMetrics wires the sink Sense reports its duration to. A nil sink
	// (the zero value before Engine.SetMetrics runs) disables reporting.
	SetMetrics(m SenseMetrics)
}

// Full field of view: no angular filtering.
const FullFOV = 2 * math.Pi
