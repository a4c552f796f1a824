package sensor

import "time"

// SenseMetrics is the narrow slice of *metrics.Collector a sensor needs to
// report how long Sense took, keyed by sensor type so Range/Arc/Agent
// variants show up separately on the same histogram.
type SenseMetrics interface {
	RecordSenseDuration(sensorType string, d time.Duration)
}

// recordSense reports d against m under label, a no-op when m is nil (the
// default until Engine.SetMetrics or a sensor's SetMetrics is called).
func recordSense(m SenseMetrics, label string, d time.Duration) {
	if m == nil {
		return
	}
	m.RecordSenseDuration(label, d)
}
