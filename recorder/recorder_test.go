package recorder

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestStartAppendsExtension(t *testing.T) {
	r := New()
	path := filepath.Join(t.TempDir(), "run")
	if err := r.Start(path); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := r.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if _, err := os.Stat(path + ".ggr"); err != nil {
		t.Fatalf("expected %s.ggr to exist: %v", path, err)
	}
}

func TestStartRefusesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.ggr")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	r := New()
	if err := r.Start(path); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestRecordPredicateFollowsStateMachine(t *testing.T) {
	r := New()
	path := filepath.Join(t.TempDir(), "run.ggr")

	if r.Record() {
		t.Fatal("expected Record() false before Start")
	}
	if err := r.Start(path); err != nil {
		t.Fatal(err)
	}
	if !r.Record() {
		t.Fatal("expected Record() true after Start")
	}
	if err := r.Pause(); err != nil {
		t.Fatal(err)
	}
	if r.Record() {
		t.Fatal("expected Record() false while Paused")
	}
	if err := r.Play(); err != nil {
		t.Fatal(err)
	}
	if !r.Record() {
		t.Fatal("expected Record() true after Play")
	}
	if err := r.Stop(); err != nil {
		t.Fatal(err)
	}
	if r.Record() {
		t.Fatal("expected Record() false after Stop")
	}
}

func TestWriteNoOpWhenNotRecording(t *testing.T) {
	r := New()
	path := filepath.Join(t.TempDir(), "run.ggr")
	if err := r.Start(path); err != nil {
		t.Fatal(err)
	}
	if err := r.Pause(); err != nil {
		t.Fatal(err)
	}
	r.Write(SIMULATE, nil)
	if err := r.Play(); err != nil {
		t.Fatal(err)
	}
	if err := r.Stop(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) == 0 {
		t.Fatal("expected non-empty recording")
	}
}

func TestRecordFalseOnceTerminated(t *testing.T) {
	r := New()
	path := filepath.Join(t.TempDir(), "run.ggr")
	if err := r.Start(path); err != nil {
		t.Fatal(err)
	}
	terminated := false
	r.SetTerminated(func() bool { return terminated })

	if !r.Record() {
		t.Fatal("expected Record() true before termination")
	}
	terminated = true
	if r.Record() {
		t.Fatal("expected Record() false once the owning context is terminated")
	}

	r.Write(SIMULATE, nil) // must be a silent no-op past termination
	if err := r.Stop(); err != nil {
		t.Fatal(err)
	}
}

type fakeMetricsSink struct {
	opcodes []string
}

func (f *fakeMetricsSink) RecordRecorderEvent(opcode string) {
	f.opcodes = append(f.opcodes, opcode)
}

func TestWriteReportsOpcodeToMetricsSink(t *testing.T) {
	r := New()
	path := filepath.Join(t.TempDir(), "run.ggr")
	if err := r.Start(path); err != nil {
		t.Fatal(err)
	}
	m := &fakeMetricsSink{}
	r.SetMetrics(m)

	r.Write(SIMULATE, nil)
	if err := r.Stop(); err != nil {
		t.Fatal(err)
	}

	if len(m.opcodes) != 1 || m.opcodes[0] != SIMULATE.String() {
		t.Fatalf("expected one SIMULATE report, got %v", m.opcodes)
	}
}

func TestHeaderMagicAndVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.ggr")
	r := New()
	if err := r.Start(path); err != nil {
		t.Fatal(err)
	}
	if err := r.Stop(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) < 8 {
		t.Fatalf("file too short: %d bytes", len(data))
	}
	if string(data[:4]) != "MMGR" {
		t.Fatalf("bad magic: %q", data[:4])
	}
	version := uint32(data[4])<<24 | uint32(data[5])<<16 | uint32(data[6])<<8 | uint32(data[7])
	if version != fileVersion {
		t.Fatalf("got version 0x%08x, want 0x%08x", version, fileVersion)
	}
}

// fakeAgentReplayer records what the replayer asked it to do.
type fakeAgentReplayer struct {
	created map[string]int64
	current map[string]int64
	prev    map[string]int64
	deleted []string
}

func newFakeAgentReplayer() *fakeAgentReplayer {
	return &fakeAgentReplayer{created: map[string]int64{}, current: map[string]int64{}, prev: map[string]int64{}}
}

func (f *fakeAgentReplayer) ReplayCreateAgent(name string, startNodeID int64, kwargs map[string]any) error {
	f.created[name] = startNodeID
	f.current[name] = startNodeID
	return nil
}
func (f *fakeAgentReplayer) ReplayDeleteAgent(name string) error {
	f.deleted = append(f.deleted, name)
	return nil
}
func (f *fakeAgentReplayer) SetCurrentNode(name string, node int64) error {
	f.current[name] = node
	return nil
}
func (f *fakeAgentReplayer) SetPrevNode(name string, node int64) error {
	f.prev[name] = node
	return nil
}
func (f *fakeAgentReplayer) SetSensorOwner(agentName, sensorName, sensorID string) error { return nil }
func (f *fakeAgentReplayer) ClearSensorOwner(agentName, sensorName, sensorID string) error {
	return nil
}

type fakeSensorReplayer struct{ created map[string]string }

func (f *fakeSensorReplayer) ReplayCreateSensor(id, typ string, kwargs map[string]any) error {
	f.created[id] = typ
	return nil
}

func TestReplayReconstructsAgentMoves(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.ggr")
	r := New()
	if err := r.Start(path); err != nil {
		t.Fatal(err)
	}
	r.Write(AgentCreate, AgentCreatePayload{Name: "A", Kwargs: map[string]any{"start_node_id": float64(0)}})
	r.Write(AgentCreate, AgentCreatePayload{Name: "B", Kwargs: map[string]any{"start_node_id": float64(24)}})
	r.Write(AgentPrevNode, NodeEventPayload{AgentName: "A", NodeID: 0})
	r.Write(AgentCurrentNode, NodeEventPayload{AgentName: "A", NodeID: 1})
	r.Write(AgentPrevNode, NodeEventPayload{AgentName: "B", NodeID: 24})
	r.Write(AgentCurrentNode, NodeEventPayload{AgentName: "B", NodeID: 23})
	r.Write(SIMULATE, nil)
	if err := r.Stop(); err != nil {
		t.Fatal(err)
	}

	agents := newFakeAgentReplayer()
	rp := &Replayer{Agents: agents, Sensors: &fakeSensorReplayer{created: map[string]string{}}}
	if err := rp.Replay(path); err != nil {
		t.Fatalf("Replay: %v", err)
	}

	if agents.current["A"] != 1 {
		t.Errorf("A current_node_id = %d, want 1", agents.current["A"])
	}
	if agents.current["B"] != 23 {
		t.Errorf("B current_node_id = %d, want 23", agents.current["B"])
	}
}

func TestReplayRejectsBadMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.ggr")
	if err := os.WriteFile(path, []byte("XXXX\x00\x00\x00\x01"), 0o644); err != nil {
		t.Fatal(err)
	}
	rp := &Replayer{}
	if err := rp.Replay(path); !errors.Is(err, ErrBadMagic) {
		t.Fatalf("expected ErrBadMagic, got %v", err)
	}
}
