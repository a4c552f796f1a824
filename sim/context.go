package sim

import (
	"sync/atomic"

	"github.com/gammsgo/gammsgo/agent"
	"github.com/gammsgo/gammsgo/graphstore"
	"github.com/gammsgo/gammsgo/logging"
	"github.com/gammsgo/gammsgo/metrics"
	"github.com/gammsgo/gammsgo/recorder"
	"github.com/gammsgo/gammsgo/sensor"
	"github.com/gammsgo/gammsgo/visual"
	"github.com/prometheus/client_golang/prometheus"
)

// agentRef breaks the construction cycle between sensor.Engine (which needs
// an AgentPositions/OrientationLookup) and agent.Engine (which needs a
// SensorResolver, and is itself the thing that satisfies those two
// interfaces). It's built empty, handed to sensor.NewEngine, and has its e
// field set once the real agent.Engine exists.
type agentRef struct {
	e *agent.Engine
}

func (r *agentRef) Positions() map[string]int64 {
	if r.e == nil {
		return nil
	}
	return r.e.Positions()
}

func (r *agentRef) Orientation(name string) (sensor.Vec2, bool) {
	if r.e == nil {
		return sensor.Vec2{}, false
	}
	return r.e.Orientation(name)
}

// Context owns every subsystem a running simulation needs and wires them
// together through the narrow interfaces each package declares (§2, §10).
// No subsystem holds a reference back to Context.
type Context struct {
	Graph   *graphstore.Graph
	Sensor  *sensor.Engine
	Agent   *agent.Engine
	Record  *recorder.Recorder
	Visual  visual.Backend
	Logger  logging.Logger
	Metrics *metrics.Collector

	components *recorder.ComponentRegistry
	replayer   *recorder.Replayer

	gatherConcurrency int
	terminated        atomic.Bool
}

// NewContext builds a fully wired Context. WithGraph is required; every
// other subsystem falls back to a sensible default (a fresh idle recorder,
// a no-op visual backend, an isolated Prometheus registry, logging.FromEnv).
func NewContext(opts ...Option) (*Context, error) {
	cfg := config{gatherConcurrency: 1}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	if cfg.graph == nil {
		return nil, ErrNoGraph
	}
	if cfg.recorder == nil {
		cfg.recorder = recorder.New()
	}
	if cfg.simLogger == nil {
		cfg.simLogger = logging.FromEnv()
	}
	if cfg.metricsRegistry == nil {
		cfg.metricsRegistry = prometheus.NewRegistry()
	}

	emit := cfg.recorder
	ref := &agentRef{}
	sensorEngine := sensor.NewEngine(cfg.graph, ref, ref, emit)
	agentEngine := agent.NewEngine(emit, sensorEngine, cfg.graph, cfg.simLogger)
	ref.e = agentEngine

	visualBackend := cfg.visualBackend
	if visualBackend == nil {
		visualBackend = visual.NewNoopBackend(emit, cfg.simLogger)
	}

	components := recorder.NewComponentRegistry(cfg.recorder)
	collector := metrics.NewCollector(cfg.metricsRegistry)
	sensorEngine.SetMetrics(collector)
	cfg.recorder.SetMetrics(collector)

	ctx := &Context{
		Graph:             cfg.graph,
		Sensor:            sensorEngine,
		Agent:             agentEngine,
		Record:            cfg.recorder,
		Visual:            visualBackend,
		Logger:            cfg.simLogger,
		Metrics:           collector,
		components:        components,
		gatherConcurrency: cfg.gatherConcurrency,
	}
	cfg.recorder.SetTerminated(ctx.IsTerminated)
	ctx.replayer = &recorder.Replayer{
		Agents:     agentEngine,
		Sensors:    sensorEngine,
		Visual:     visual.ReplayAdapter{Backend: visualBackend},
		Components: components,
	}
	return ctx, nil
}

// Components returns the component registry, for callers that register
// typed component schemas (spec §4.4).
func (c *Context) Components() *recorder.ComponentRegistry {
	return c.components
}

// Replayer returns the recorder.Replayer wired to this Context's engines,
// ready to drive a .ggr file's events into a fresh Context built the same
// way.
func (c *Context) Replayer() *recorder.Replayer {
	return c.replayer
}

// IsTerminated reports whether Terminate has been called.
func (c *Context) IsTerminated() bool {
	return c.terminated.Load()
}

// Terminate flips the termination flag. Idempotent. Per §5, a termination
// requested mid-tick only takes effect once that tick finishes: the turn
// loop checks IsTerminated between ticks, never inside one.
func (c *Context) Terminate() {
	c.terminated.Store(true)
}
