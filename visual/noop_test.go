package visual

import (
	"context"
	"errors"
	"testing"

	"github.com/gammsgo/gammsgo/logging"
	"github.com/gammsgo/gammsgo/recorder"
)

type fakeEmitter struct {
	recording bool
	wrote     []recorder.OpCode
}

func (f *fakeEmitter) Record() bool { return f.recording }
func (f *fakeEmitter) Write(op recorder.OpCode, _ any) {
	f.wrote = append(f.wrote, op)
}

type fakeArtist struct {
	called bool
	err    error
	panics bool
}

func (a *fakeArtist) Draw(ctx context.Context) error {
	a.called = true
	if a.panics {
		panic("boom")
	}
	return a.err
}

func TestSimulateEmitsWhenRecording(t *testing.T) {
	emit := &fakeEmitter{recording: true}
	b := NewNoopBackend(emit, nil)
	if err := b.Simulate(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(emit.wrote) != 1 || emit.wrote[0] != recorder.SIMULATE {
		t.Fatalf("expected one SIMULATE event, got %v", emit.wrote)
	}
}

func TestSimulateNoOpWhenNotRecording(t *testing.T) {
	emit := &fakeEmitter{recording: false}
	b := NewNoopBackend(emit, nil)
	if err := b.Simulate(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(emit.wrote) != 0 {
		t.Fatalf("expected no events, got %v", emit.wrote)
	}
}

func TestArtistErrorIsIsolated(t *testing.T) {
	b := NewNoopBackend(&fakeEmitter{}, nil)
	a := &fakeArtist{err: errors.New("draw failed")}
	b.AddArtist("broken", a)
	if err := b.Simulate(context.Background()); err != nil {
		t.Fatalf("expected Simulate to swallow artist error, got %v", err)
	}
	if !a.called {
		t.Fatal("expected artist to be invoked")
	}
}

func TestArtistPanicIsIsolated(t *testing.T) {
	history := logging.NewHistoryLogger(0)
	b := NewNoopBackend(&fakeEmitter{}, history)
	a := &fakeArtist{panics: true}
	b.AddArtist("panicky", a)
	if err := b.Simulate(context.Background()); err != nil {
		t.Fatalf("expected Simulate to recover artist panic, got %v", err)
	}
	records := history.History(logging.HistoryFilter{MinLevel: logging.ERROR, Contains: "artist panicked"})
	if len(records) != 1 {
		t.Fatalf("expected one panic record logged through the real code path, got %d", len(records))
	}
}

func TestRemoveArtistMissing(t *testing.T) {
	b := NewNoopBackend(&fakeEmitter{}, nil)
	if err := b.RemoveArtist("nope"); !errors.Is(err, ErrNoArtist) {
		t.Fatalf("expected ErrNoArtist, got %v", err)
	}
}

func TestHumanInputReturnsCurrPos(t *testing.T) {
	b := NewNoopBackend(&fakeEmitter{}, nil)
	id, err := b.HumanInput(context.Background(), "A", map[string]any{"curr_pos": int64(7)})
	if err != nil {
		t.Fatal(err)
	}
	if id != 7 {
		t.Fatalf("got %d, want 7", id)
	}
}

func TestReplayAdapterCallsSimulate(t *testing.T) {
	emit := &fakeEmitter{recording: true}
	b := NewNoopBackend(emit, nil)
	adapter := ReplayAdapter{Backend: b}
	if err := adapter.Simulate(); err != nil {
		t.Fatal(err)
	}
	if len(emit.wrote) != 1 {
		t.Fatalf("expected one SIMULATE event via adapter, got %v", emit.wrote)
	}
}
