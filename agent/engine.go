package agent

import (
	"fmt"

	"github.com/gammsgo/gammsgo/graphstore"
	"github.com/gammsgo/gammsgo/logging"
	"github.com/gammsgo/gammsgo/recorder"
	"github.com/gammsgo/gammsgo/sensor"
)

// SensorResolver resolves a sensor name to its sensor.Sensor, as exposed by
// sensor.Engine.GetSensor. Declared locally (dependency inversion) so agent
// doesn't need the whole sensor.Engine surface.
type SensorResolver interface {
	GetSensor(id string) (sensor.Sensor, error)
}

// NodePositions resolves a node's coordinates, as exposed by
// *graphstore.Graph.GetNode. Used to compute agent orientation.
type NodePositions interface {
	GetNode(id int64) (graphstore.Node, error)
}

// Engine is the agent factory and registry (§4.3). It also implements
// sensor.OrientationLookup and sensor.AgentPositions, letting sensor.Engine
// reach agent state without agent importing sensor's engine type.
type Engine struct {
	emit    Emitter
	sensors SensorResolver
	graph   NodePositions
	logger  logging.Logger

	agents []*Agent // insertion order
	byName map[string]*Agent
}

// NewEngine constructs an agent engine. emit receives every mutation event;
// sensors resolves sensor names passed to CreateAgent; graph resolves node
// coordinates for orientation; logger receives the non-fatal warnings spec
// §4.3 calls for (unresolvable sensor names, deleting a missing agent), the
// same logging.Logger a Context exposes so HistoryLogger-backed tests and
// OTelLogger-backed deployments alike observe them.
func NewEngine(emit Emitter, sensors SensorResolver, graph NodePositions, logger logging.Logger) *Engine {
	if logger == nil {
		logger = logging.FromEnv()
	}
	return &Engine{
		emit:    emit,
		sensors: sensors,
		graph:   graph,
		logger:  logger,
		byName:  make(map[string]*Agent),
	}
}

// CreateAgentParams carries create_agent's keyword arguments.
type CreateAgentParams struct {
	StartNodeID int64
	Sensors     []string
	Meta        map[string]any
}

// CreateAgent constructs and registers a new agent. Duplicate names fail.
// Each sensor name is resolved via the sensor engine; unresolvable names
// are logged as warnings and skipped, never fatal (§4.3). Emits a creation
// event whose payload fully captures the constructor arguments.
func (e *Engine) CreateAgent(name string, params CreateAgentParams) (*Agent, error) {
	if _, exists := e.byName[name]; exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateAgent, name)
	}

	a := newAgent(name, params.StartNodeID, e.emit)
	for k, v := range params.Meta {
		a.Meta[k] = v
	}

	// AGENT_CREATE is written before the bindings' AGENT_SENSOR_REGISTER
	// events so that a replay creates the agent before rebinding its sensors.
	if e.emit.Record() {
		e.emit.Write(recorder.AgentCreate, recorder.AgentCreatePayload{
			Name: name,
			Kwargs: map[string]any{
				"start_node_id": params.StartNodeID,
				"sensors":       params.Sensors,
			},
		})
	}

	for _, sensorName := range params.Sensors {
		s, err := e.sensors.GetSensor(sensorName)
		if err != nil {
			e.logger.Log(logging.WARNING, "agent references unresolvable sensor, skipping", map[string]any{
				"agent": name, "sensor": sensorName,
			})
			continue
		}
		a.RegisterSensor(sensorName, s)
	}

	e.agents = append(e.agents, a)
	e.byName[name] = a
	return a, nil
}

// ReplayCreateAgent implements recorder.AgentReplayer: reconstructs an
// agent from an AGENT_CREATE event's unpacked kwargs form.
func (e *Engine) ReplayCreateAgent(name string, startNodeID int64, kwargs map[string]any) error {
	var sensorNames []string
	if raw, ok := kwargs["sensors"].([]any); ok {
		for _, s := range raw {
			if name, ok := s.(string); ok {
				sensorNames = append(sensorNames, name)
			}
		}
	}
	_, err := e.CreateAgent(name, CreateAgentParams{StartNodeID: startNodeID, Sensors: sensorNames})
	return err
}

// ReplayDeleteAgent implements recorder.AgentReplayer.
func (e *Engine) ReplayDeleteAgent(name string) error {
	return e.DeleteAgent(name)
}

// SetCurrentNode implements recorder.AgentReplayer: assigns current_node_id
// directly, bypassing SetState's commit path to prevent recursive
// emission during replay.
func (e *Engine) SetCurrentNode(agentName string, nodeID int64) error {
	a, err := e.GetAgent(agentName)
	if err != nil {
		return err
	}
	a.CurrentNodeID = nodeID
	return nil
}

// SetPrevNode implements recorder.AgentReplayer.
func (e *Engine) SetPrevNode(agentName string, nodeID int64) error {
	a, err := e.GetAgent(agentName)
	if err != nil {
		return err
	}
	a.PrevNodeID = nodeID
	return nil
}

// SetSensorOwner implements recorder.AgentReplayer: rebinds ownership
// during replay, resolving sensorID via the sensor engine.
func (e *Engine) SetSensorOwner(agentName, sensorName, sensorID string) error {
	a, err := e.GetAgent(agentName)
	if err != nil {
		return err
	}
	s, err := e.sensors.GetSensor(sensorID)
	if err != nil {
		return err
	}
	a.RegisterSensor(sensorName, s)
	return nil
}

// ClearSensorOwner implements recorder.AgentReplayer.
func (e *Engine) ClearSensorOwner(agentName, sensorName, _ string) error {
	a, err := e.GetAgent(agentName)
	if err != nil {
		return err
	}
	a.DeregisterSensor(sensorName)
	return nil
}

// GetAgent looks an agent up by name.
func (e *Engine) GetAgent(name string) (*Agent, error) {
	a, ok := e.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return a, nil
}

// DeleteAgent removes an agent. A non-fatal warning is logged if missing;
// this never fails.
func (e *Engine) DeleteAgent(name string) error {
	if _, ok := e.byName[name]; !ok {
		e.logger.Log(logging.WARNING, "deleting non-existent agent", map[string]any{"agent": name})
	} else {
		delete(e.byName, name)
		for i, a := range e.agents {
			if a.Name == name {
				e.agents = append(e.agents[:i], e.agents[i+1:]...)
				break
			}
		}
	}
	if e.emit.Record() {
		e.emit.Write(recorder.AgentDelete, name)
	}
	return nil
}

// CreateIter returns agents in insertion order; the host loop relies on
// this order for deterministic turns.
func (e *Engine) CreateIter() []*Agent {
	out := make([]*Agent, len(e.agents))
	copy(out, e.agents)
	return out
}

// Positions implements sensor.AgentPositions.
func (e *Engine) Positions() map[string]int64 {
	out := make(map[string]int64, len(e.agents))
	for _, a := range e.agents {
		out[a.Name] = a.CurrentNodeID
	}
	return out
}

// Orientation implements sensor.OrientationLookup: the unit vector from an
// agent's previous to current node, the zero vector if it hasn't moved.
func (e *Engine) Orientation(agentName string) (sensor.Vec2, bool) {
	a, ok := e.byName[agentName]
	if !ok {
		return sensor.Vec2{}, false
	}
	return a.orientation(func(id int64) (x, y float64, ok bool) {
		n, err := e.graph.GetNode(id)
		if err != nil {
			return 0, 0, false
		}
		return n.X, n.Y, true
	}), true
}
