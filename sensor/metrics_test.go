package sensor

import (
	"testing"
	"time"
)

type fakeSenseMetrics struct {
	calls []string
}

func (f *fakeSenseMetrics) RecordSenseDuration(sensorType string, d time.Duration) {
	f.calls = append(f.calls, sensorType)
}

func TestEngineSetMetricsWiresNewAndExistingSensors(t *testing.T) {
	g := buildGrid(t)
	e := NewEngine(g, nil, nil, nil)

	pre, err := e.CreateSensor("pre", Neighbor, Params{})
	if err != nil {
		t.Fatal(err)
	}

	m := &fakeSenseMetrics{}
	e.SetMetrics(m)

	post, err := e.CreateSensor("post", Neighbor, Params{})
	if err != nil {
		t.Fatal(err)
	}

	pre.Sense(0)
	post.Sense(0)

	if len(m.calls) != 2 {
		t.Fatalf("expected Sense on both pre-existing and newly-created sensors to report, got %v", m.calls)
	}
	for _, c := range m.calls {
		if c != Neighbor.String() {
			t.Errorf("expected label %q, got %q", Neighbor.String(), c)
		}
	}
}
