package sim

import (
	"github.com/gammsgo/gammsgo/graphstore"
	"github.com/gammsgo/gammsgo/logging"
	"github.com/gammsgo/gammsgo/recorder"
	"github.com/gammsgo/gammsgo/visual"
	"github.com/prometheus/client_golang/prometheus"
)

// config collects NewContext's options before they're applied, the same
// indirection the teacher's graph.Option uses around engineConfig.
type config struct {
	graph             *graphstore.Graph
	recorder          *recorder.Recorder
	visualBackend     visual.Backend
	simLogger         logging.Logger
	metricsRegistry   prometheus.Registerer
	gatherConcurrency int
}

// Option configures a Context built by NewContext.
type Option func(*config) error

// WithGraph supplies the spatial graph every sensor and agent position
// resolves against. Required: NewContext fails with ErrNoGraph without it.
func WithGraph(g *graphstore.Graph) Option {
	return func(c *config) error {
		c.graph = g
		return nil
	}
}

// WithRecorder supplies the recorder every mutator emits through. Defaults
// to a fresh, idle recorder.New() (never recording until Start is called).
func WithRecorder(rec *recorder.Recorder) Option {
	return func(c *config) error {
		c.recorder = rec
		return nil
	}
}

// WithVisual supplies the visualization backend Tick drives. Defaults to
// visual.NewNoopBackend.
func WithVisual(b visual.Backend) Option {
	return func(c *config) error {
		c.visualBackend = b
		return nil
	}
}

// WithLogger supplies the logging.Logger exposed as Context.Logger. The
// agent and visual subsystems log their own non-fatal warnings through this
// same logger (unresolvable sensor bindings, deleting a missing agent,
// artist panics), so a HistoryLogger passed here observes every one of
// them. Defaults to logging.FromEnv().
func WithLogger(l logging.Logger) Option {
	return func(c *config) error {
		c.simLogger = l
		return nil
	}
}

// WithMetricsRegistry supplies the Prometheus registerer the metrics
// collector registers against. Defaults to a fresh prometheus.NewRegistry()
// per Context, so constructing more than one Context in a test process
// never collides against the global DefaultRegisterer.
func WithMetricsRegistry(reg prometheus.Registerer) Option {
	return func(c *config) error {
		c.metricsRegistry = reg
		return nil
	}
}

// WithGatherConcurrency bounds how many agents' gather phase (GetState +
// strategy) a Simulation.Tick runs concurrently, per §10's expansion on the
// teacher's WithMaxConcurrent. The commit phase always stays sequential
// regardless of this setting. n <= 1 is fully sequential, the default.
func WithGatherConcurrency(n int) Option {
	return func(c *config) error {
		c.gatherConcurrency = n
		return nil
	}
}
