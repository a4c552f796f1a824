package sensor

import "github.com/gammsgo/gammsgo/graphstore"

// OrientationLookup resolves an owning agent's current orientation vector,
// used to compose the effective orientation for an owned sensor. Satisfied
// by agent.Engine; declared here (not imported from agent) to keep sensor
// free of a dependency on agent.
type OrientationLookup interface {
	Orientation(agentName string) (Vec2, bool)
}

// AgentPositions exposes every agent's current node, used by Agent/
// AgentRange/AgentArc sensors. Satisfied by agent.Engine.
type AgentPositions interface {
	Positions() map[string]int64
}

// GraphView exposes the subset of graphstore.Graph that sensors need to
// read node/edge geometry. Satisfied by *graphstore.Graph.
type GraphView interface {
	GetNode(id int64) (graphstore.Node, error)
	AllNodes() []graphstore.Node
	EdgesAmong(ids map[int64]struct{}) []graphstore.Edge
	Neighbors(id int64) (map[int64]struct{}, error)
}
