package agent

import (
	"fmt"

	"github.com/gammsgo/gammsgo/recorder"
	"github.com/gammsgo/gammsgo/sensor"
)

// Emitter is the narrow slice of *recorder.Recorder an agent needs: the
// recording predicate and the write call. Declared locally so agent never
// needs the rest of recorder's surface.
type Emitter interface {
	Record() bool
	Write(op recorder.OpCode, data any)
}

// Strategy mutates state in place to add an action key; agent.Step fails if
// it doesn't.
type Strategy func(State) error

// Agent is the per-agent turn contract of spec §4.3.
type Agent struct {
	Name          string
	CurrentNodeID int64
	PrevNodeID    int64
	Meta          map[string]any

	sensorNames []string
	sensors     map[string]sensor.Sensor
	strategy    Strategy
	state       State
	emit        Emitter
}

func newAgent(name string, startNodeID int64, emit Emitter) *Agent {
	return &Agent{
		Name:          name,
		CurrentNodeID: startNodeID,
		PrevNodeID:    startNodeID,
		Meta:          make(map[string]any),
		sensors:       make(map[string]sensor.Sensor),
		emit:          emit,
	}
}

// RegisterSensor binds sensor s under name, in insertion order, and sets
// its owner to this agent.
func (a *Agent) RegisterSensor(name string, s sensor.Sensor) {
	if _, exists := a.sensors[name]; !exists {
		a.sensorNames = append(a.sensorNames, name)
	}
	a.sensors[name] = s
	s.SetOwner(a.Name)
	if a.emit.Record() {
		a.emit.Write(recorder.AgentSensorRegister, recorder.SensorBindingPayload{
			AgentName: a.Name, Name: name, SensorID: s.ID(),
		})
	}
}

// DeregisterSensor unbinds name, clearing the sensor's owner.
func (a *Agent) DeregisterSensor(name string) {
	s, ok := a.sensors[name]
	if !ok {
		return
	}
	s.SetOwner("")
	delete(a.sensors, name)
	for i, n := range a.sensorNames {
		if n == name {
			a.sensorNames = append(a.sensorNames[:i], a.sensorNames[i+1:]...)
			break
		}
	}
	if a.emit.Record() {
		a.emit.Write(recorder.AgentSensorDeregister, recorder.SensorBindingPayload{
			AgentName: a.Name, Name: name, SensorID: s.ID(),
		})
	}
}

// RegisterStrategy stores fn as this agent's strategy.
func (a *Agent) RegisterStrategy(fn Strategy) {
	a.strategy = fn
}

// orientation returns the unit vector from PrevNodeID to CurrentNodeID, or
// the zero vector if the agent hasn't moved (coincident nodes) or its graph
// positions aren't resolvable — callers supply positions via
// positionOf since Agent itself holds no reference back to the graph.
func (a *Agent) orientation(positionOf func(int64) (x, y float64, ok bool)) sensor.Vec2 {
	if a.PrevNodeID == a.CurrentNodeID {
		return sensor.Vec2{}
	}
	px, py, ok1 := positionOf(a.PrevNodeID)
	cx, cy, ok2 := positionOf(a.CurrentNodeID)
	if !ok1 || !ok2 {
		return sensor.Vec2{}
	}
	dx, dy := cx-px, cy-py
	return sensor.Vec2{X: dx, Y: dy}.Normalized()
}

// GetState invokes Sense on every bound sensor in insertion order, then
// returns a fresh State map. The returned map is canonical: callers
// (typically the strategy) may add fields, including action.
func (a *Agent) GetState() State {
	sensed := make(map[string]SensorReading, len(a.sensorNames))
	for _, name := range a.sensorNames {
		s := a.sensors[name]
		s.Sense(a.CurrentNodeID)
		sensed[name] = SensorReading{Type: s.Type().String(), Data: s.Data()}
	}

	state := State{
		KeyCurrPos: a.CurrentNodeID,
		KeySensor:  sensed,
	}
	a.state = state
	return state
}

// SetState reads the action field of the previously returned state,
// requires it resolve to a node id, and commits
// prev_node_id <- current_node_id; current_node_id <- action. Both
// assignments emit recorder events.
func (a *Agent) SetState() error {
	if a.state == nil {
		return ErrNoState
	}
	action, ok := a.state.Action()
	if !ok {
		return fmt.Errorf("%w: agent %s", ErrInvalidAction, a.Name)
	}

	a.PrevNodeID = a.CurrentNodeID
	if a.emit.Record() {
		a.emit.Write(recorder.AgentPrevNode, recorder.NodeEventPayload{AgentName: a.Name, NodeID: a.PrevNodeID})
	}

	a.CurrentNodeID = action
	if a.emit.Record() {
		a.emit.Write(recorder.AgentCurrentNode, recorder.NodeEventPayload{AgentName: a.Name, NodeID: a.CurrentNodeID})
	}
	return nil
}

// Step chains GetState -> strategy -> SetState. Fails if no strategy is
// set.
func (a *Agent) Step() error {
	if a.strategy == nil {
		return fmt.Errorf("%w: agent %s", ErrNoStrategy, a.Name)
	}
	state := a.GetState()
	if err := a.strategy(state); err != nil {
		return fmt.Errorf("strategy for agent %s: %w", a.Name, err)
	}
	return a.SetState()
}
