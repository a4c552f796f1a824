package visual

import "context"

// GraphStyle carries the rendering hints set_graph_visual accepts: a window
// size and a background color, forwarded verbatim to the backend.
type GraphStyle struct {
	Width      int
	Height     int
	Background string
}

// AgentStyle carries per-agent rendering hints (color, marker size).
type AgentStyle struct {
	Color string
	Size  float64
}

// SensorStyle carries per-sensor rendering hints (color, fill opacity).
type SensorStyle struct {
	Color   string
	Opacity float64
}

// Artist is a user-supplied draw callback, registered by name and invoked
// once per Simulate tick. A backend must isolate Draw: a panicking or
// erroring artist must never abort the render loop.
type Artist interface {
	Draw(ctx context.Context) error
}

// Backend is the rendering contract the simulation core depends on (§6).
// The core never implements more than a no-op backend; real rendering is
// an integration concern left to callers.
type Backend interface {
	SetGraphVisual(style GraphStyle)
	SetAgentVisual(agentName string, style AgentStyle)
	SetSensorVisual(sensorID string, style SensorStyle)

	AddArtist(name string, a Artist)
	RemoveArtist(name string) error

	// Simulate renders one tick. Implementations that drive a real window
	// should honor ctx cancellation.
	Simulate(ctx context.Context) error

	// HumanInput blocks for an operator-chosen next node for agentName,
	// given its current turn state. The no-op backend returns curr_pos
	// unchanged.
	HumanInput(ctx context.Context, agentName string, state map[string]any) (int64, error)

	// Terminate releases any backend resources (windows, file handles).
	Terminate()
}
