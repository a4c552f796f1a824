// Package metrics provides Prometheus-compatible instrumentation for a
// running simulation, grounded on the teacher's PrometheusMetrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector registers and updates every metric the simulation core emits
// alongside its recorder events, so each recorded mutation has a matching
// metric (§8's choke-point-centralization note).
type Collector struct {
	ticksTotal      prometheus.Counter
	agentsActive    prometheus.Gauge
	senseDuration   *prometheus.HistogramVec
	recorderEvents  *prometheus.CounterVec
	strategyLatency prometheus.Histogram

	enabled bool
}

// NewCollector registers every gammsgo_* metric with registry. A nil
// registry uses prometheus.DefaultRegisterer.
func NewCollector(registry prometheus.Registerer) *Collector {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registry)

	return &Collector{
		enabled: true,

		ticksTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "gammsgo",
			Name:      "ticks_total",
			Help:      "Cumulative number of simulation turn ticks executed",
		}),

		agentsActive: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "gammsgo",
			Name:      "agents_active",
			Help:      "Current number of registered agents",
		}),

		senseDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "gammsgo",
			Name:      "sense_duration_ms",
			Help:      "Sensor Sense() call duration in milliseconds, by sensor type",
			Buckets:   []float64{0.1, 0.5, 1, 5, 10, 50, 100, 500},
		}, []string{"sensor_type"}),

		recorderEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gammsgo",
			Name:      "recorder_events_total",
			Help:      "Cumulative recorder events written, by opcode",
		}, []string{"opcode"}),

		strategyLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "gammsgo",
			Name:      "strategy_latency_ms",
			Help:      "Agent strategy invocation duration in milliseconds",
			Buckets:   []float64{1, 5, 10, 50, 100, 500, 1000, 5000},
		}),
	}
}

// TickCompleted increments ticks_total.
func (c *Collector) TickCompleted() {
	if !c.enabled {
		return
	}
	c.ticksTotal.Inc()
}

// SetAgentsActive sets agents_active to n.
func (c *Collector) SetAgentsActive(n int) {
	if !c.enabled {
		return
	}
	c.agentsActive.Set(float64(n))
}

// RecordSenseDuration observes a single sensor's Sense() call duration.
func (c *Collector) RecordSenseDuration(sensorType string, d time.Duration) {
	if !c.enabled {
		return
	}
	c.senseDuration.WithLabelValues(sensorType).Observe(float64(d.Microseconds()) / 1000)
}

// RecordRecorderEvent increments recorder_events_total for opcode.
func (c *Collector) RecordRecorderEvent(opcode string) {
	if !c.enabled {
		return
	}
	c.recorderEvents.WithLabelValues(opcode).Inc()
}

// RecordStrategyLatency observes a strategy invocation's duration.
func (c *Collector) RecordStrategyLatency(d time.Duration) {
	if !c.enabled {
		return
	}
	c.strategyLatency.Observe(float64(d.Microseconds()) / 1000)
}
