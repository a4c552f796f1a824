package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestParseLevelDefaultsToInfo(t *testing.T) {
	cases := []string{"", "bogus", "info", "INFO"}
	for _, c := range cases {
		if got := ParseLevel(c); got != INFO {
			t.Errorf("ParseLevel(%q) = %v, want INFO", c, got)
		}
	}
	if got := ParseLevel("debug"); got != DEBUG {
		t.Errorf("ParseLevel(debug) = %v, want DEBUG", got)
	}
}

func TestTextLoggerFiltersBelowMin(t *testing.T) {
	var buf bytes.Buffer
	l := NewTextLogger(&buf, WARNING, false)
	l.Log(INFO, "should be dropped", nil)
	l.Log(ERROR, "should appear", nil)

	out := buf.String()
	if strings.Contains(out, "should be dropped") {
		t.Errorf("expected INFO record filtered out, got %q", out)
	}
	if !strings.Contains(out, "should appear") {
		t.Errorf("expected ERROR record present, got %q", out)
	}
}

func TestTextLoggerJSONMode(t *testing.T) {
	var buf bytes.Buffer
	l := NewTextLogger(&buf, DEBUG, true)
	l.Log(WARNING, "sensor unresolved", map[string]any{"agent": "A", "sensor": "ghost"})

	var decoded struct {
		Level  string         `json:"level"`
		Msg    string         `json:"msg"`
		Fields map[string]any `json:"fields"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON line: %v (%q)", err, buf.String())
	}
	if decoded.Level != "WARNING" || decoded.Msg != "sensor unresolved" {
		t.Fatalf("got %+v", decoded)
	}
	if decoded.Fields["agent"] != "A" {
		t.Fatalf("got fields %+v", decoded.Fields)
	}
}

func TestNullLoggerDiscardsEverything(t *testing.T) {
	n := NewNullLogger()
	n.Log(CRITICAL, "anything", map[string]any{"k": "v"})
}

func TestHistoryLoggerFiltersByLevelAndSubstring(t *testing.T) {
	h := NewHistoryLogger(0)
	h.Log(INFO, "tick 1", nil)
	h.Log(WARNING, "agent A references unresolvable sensor", map[string]any{"agent": "A"})
	h.Log(ERROR, "replay failed", nil)

	warnings := h.History(HistoryFilter{MinLevel: WARNING})
	if len(warnings) != 2 {
		t.Fatalf("expected 2 warning+ records, got %d", len(warnings))
	}

	sensorWarnings := h.History(HistoryFilter{MinLevel: WARNING, Contains: "unresolvable sensor"})
	if len(sensorWarnings) != 1 {
		t.Fatalf("expected 1 matching record, got %d", len(sensorWarnings))
	}
}

func TestHistoryLoggerCapsCapacity(t *testing.T) {
	h := NewHistoryLogger(2)
	h.Log(INFO, "first", nil)
	h.Log(INFO, "second", nil)
	h.Log(INFO, "third", nil)

	all := h.History(HistoryFilter{})
	if len(all) != 2 {
		t.Fatalf("expected capacity-bounded history of 2, got %d", len(all))
	}
	if all[0].Msg != "second" || all[1].Msg != "third" {
		t.Fatalf("expected oldest record evicted, got %+v", all)
	}
}

func TestOTelLoggerRecordsInstantSpan(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	otel.SetTracerProvider(tp)
	defer func() { _ = tp.Shutdown(context.Background()) }()

	l := NewOTelLogger(otel.Tracer("test"))
	l.Log(ERROR, "replay failed", map[string]any{"path": "run.ggr"})

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Name != "replay failed" {
		t.Errorf("span name = %q, want %q", spans[0].Name, "replay failed")
	}
}
