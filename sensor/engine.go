package sensor

import (
	"fmt"
	"math"

	"github.com/gammsgo/gammsgo/recorder"
)

// Emitter is the narrow slice of *recorder.Recorder the sensor engine
// needs: the recording predicate and the write call.
type Emitter interface {
	Record() bool
	Write(op recorder.OpCode, data any)
}

// Params carries the optional construction arguments for CreateSensor,
// mirroring the source's **kwargs factory. Unset fields take the per-type
// default documented in spec §4.2.
type Params struct {
	SensorRange *float64
	FOV         *float64
	Orientation *Vec2
	Custom      CustomFunc
}

func (p Params) sensorRange(def float64) float64 {
	if p.SensorRange != nil {
		return *p.SensorRange
	}
	return def
}

func (p Params) fov(def float64) float64 {
	if p.FOV != nil {
		return *p.FOV
	}
	return def
}

func (p Params) orientation() Vec2 {
	if p.Orientation != nil {
		return *p.Orientation
	}
	return Vec2{X: 1, Y: 0}
}

// Engine is the sensor factory and registry (§4.2).
type Engine struct {
	graph     GraphView
	positions AgentPositions
	orient    OrientationLookup
	emit      Emitter
	metrics   SenseMetrics

	sensors    map[string]Sensor
	customTags map[string]struct{}
}

// NewEngine constructs a sensor engine bound to graph for geometry lookups
// and to positions/orient for the Agent-family sensors and orientation
// composition. positions and orient are typically the same concrete
// agent.Engine, accepted here as two narrow interfaces per the package's
// dependency-inversion rule. emit receives a SENSOR_CREATE event per
// construction; a nil emit is treated as never-recording.
func NewEngine(graph GraphView, positions AgentPositions, orient OrientationLookup, emit Emitter) *Engine {
	return &Engine{
		graph:      graph,
		positions:  positions,
		orient:     orient,
		emit:       emit,
		sensors:    make(map[string]Sensor),
		customTags: make(map[string]struct{}),
	}
}

func (e *Engine) recording() bool {
	return e.emit != nil && e.emit.Record()
}

// SetMetrics wires m as the sink every sensor this engine creates (and
// every sensor already created) reports its Sense duration to.
func (e *Engine) SetMetrics(m SenseMetrics) {
	e.metrics = m
	for _, s := range e.sensors {
		s.SetMetrics(m)
	}
}

// CreateSensor builds and registers a sensor of the given built-in type.
// Custom sensors are created via CreateCustomSensor instead.
func (e *Engine) CreateSensor(id string, typ Type, params Params) (Sensor, error) {
	if _, exists := e.sensors[id]; exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateSensor, id)
	}

	var s Sensor
	switch typ {
	case Neighbor:
		s = newNeighborSensor(id, e.graph)
	case Map:
		s = newMapSensor(id, Map, e.graph, e.orient, math.Inf(1), FullFOV, params.orientation())
	case Range:
		s = newMapSensor(id, Range, e.graph, e.orient, params.sensorRange(30), FullFOV, params.orientation())
	case Arc:
		s = newMapSensor(id, Arc, e.graph, e.orient, params.sensorRange(30), params.fov(FullFOV), params.orientation())
	case Agent:
		s = newAgentSensor(id, Agent, e.graph, e.positions, e.orient, math.Inf(1), params.fov(FullFOV), params.orientation())
	case AgentRange:
		s = newAgentSensor(id, AgentRange, e.graph, e.positions, e.orient, params.sensorRange(30), FullFOV, params.orientation())
	case AgentArc:
		s = newAgentSensor(id, AgentArc, e.graph, e.positions, e.orient, params.sensorRange(30), params.fov(math.Pi/2), params.orientation())
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownType, typ)
	}

	s.SetMetrics(e.metrics)
	e.sensors[id] = s
	if e.recording() {
		e.emit.Write(recorder.SensorCreate, recorder.SensorCreatePayload{
			ID: id, Type: typ.String(), Kwargs: paramsToKwargs(params),
		})
	}
	return s, nil
}

// CreateCustomSensor builds and registers a Custom sensor under a
// previously-registered tag.
func (e *Engine) CreateCustomSensor(id, tag string, fn CustomFunc) (Sensor, error) {
	if _, exists := e.sensors[id]; exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateSensor, id)
	}
	if _, ok := e.customTags[tag]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, tag)
	}
	s := newCustomSensor(id, tag, fn)
	s.SetMetrics(e.metrics)
	e.sensors[id] = s
	if e.recording() {
		e.emit.Write(recorder.SensorCreate, recorder.SensorCreatePayload{
			ID: id, Type: Custom.String(), Kwargs: map[string]any{"tag": tag},
		})
	}
	return s, nil
}

// paramsToKwargs captures the constructor arguments a SENSOR_CREATE event
// needs to replay CreateSensor exactly; Custom isn't reachable through
// params, so there's nothing to capture for it here.
func paramsToKwargs(p Params) map[string]any {
	kwargs := map[string]any{}
	if p.SensorRange != nil {
		kwargs["sensor_range"] = *p.SensorRange
	}
	if p.FOV != nil {
		kwargs["fov"] = *p.FOV
	}
	if p.Orientation != nil {
		kwargs["orientation_x"] = p.Orientation.X
		kwargs["orientation_y"] = p.Orientation.Y
	}
	return kwargs
}

// ReplayCreateSensor implements recorder.SensorReplayer: reconstructs a
// sensor from a SENSOR_CREATE event's unpacked kwargs form. kwargsToParams
// tolerates both native float64 values and the JSON-roundtripped form
// replay produces.
func (e *Engine) ReplayCreateSensor(id, sensorType string, kwargs map[string]any) error {
	if sensorType == Custom.String() {
		tag, _ := kwargs["tag"].(string)
		if _, ok := e.customTags[tag]; !ok {
			e.customTags[tag] = struct{}{}
		}
		_, err := e.CreateCustomSensor(id, tag, nil)
		return err
	}

	typ, ok := parseType(sensorType)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownType, sensorType)
	}
	_, err := e.CreateSensor(id, typ, kwargsToParams(kwargs))
	return err
}

func kwargsToParams(kwargs map[string]any) Params {
	var params Params
	if v, ok := floatValue(kwargs["sensor_range"]); ok {
		params.SensorRange = &v
	}
	if v, ok := floatValue(kwargs["fov"]); ok {
		params.FOV = &v
	}
	x, okX := floatValue(kwargs["orientation_x"])
	y, okY := floatValue(kwargs["orientation_y"])
	if okX && okY {
		params.Orientation = &Vec2{X: x, Y: y}
	}
	return params
}

func floatValue(v any) (float64, bool) {
	switch f := v.(type) {
	case float64:
		return f, true
	case float32:
		return float64(f), true
	default:
		return 0, false
	}
}

func parseType(s string) (Type, bool) {
	for _, t := range []Type{Neighbor, Map, Range, Arc, Agent, AgentRange, AgentArc} {
		if t.String() == s {
			return t, true
		}
	}
	return 0, false
}

// AddSensor registers a pre-built sensor (e.g. reconstructed by the
// replayer). Fails if the id is already taken.
func (e *Engine) AddSensor(s Sensor) error {
	if _, exists := e.sensors[s.ID()]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateSensor, s.ID())
	}
	s.SetMetrics(e.metrics)
	e.sensors[s.ID()] = s
	return nil
}

// GetSensor looks a sensor up by id.
func (e *Engine) GetSensor(id string) (Sensor, error) {
	s, ok := e.sensors[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s, nil
}

// Custom extends the tag space with a new Custom-variant name. Duplicate
// names fail.
func (e *Engine) Custom(tag string) error {
	if _, exists := e.customTags[tag]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateCustomTag, tag)
	}
	e.customTags[tag] = struct{}{}
	return nil
}
