package visual

import (
	"context"
	"fmt"
	"sync"

	"github.com/gammsgo/gammsgo/logging"
	"github.com/gammsgo/gammsgo/recorder"
)

// Emitter is the narrow slice of *recorder.Recorder the no-op backend needs
// to mark SIMULATE ticks in the event log.
type Emitter interface {
	Record() bool
	Write(op recorder.OpCode, data any)
}

// NoopBackend is the default Backend: it tracks style hints and artists for
// introspection but draws nothing. Simulate only advances the recorder's
// SIMULATE marker; HumanInput resolves deterministically from curr_pos so
// headless runs never block on operator input.
type NoopBackend struct {
	mu sync.Mutex

	emit   Emitter
	logger logging.Logger

	graphStyle  GraphStyle
	agentStyle  map[string]AgentStyle
	sensorStyle map[string]SensorStyle

	artistNames []string // insertion order
	artists     map[string]Artist
}

// NewNoopBackend constructs a no-op backend. logger receives artist panic
// and error isolation records; a nil logger falls back to logging.FromEnv().
func NewNoopBackend(emit Emitter, logger logging.Logger) *NoopBackend {
	if logger == nil {
		logger = logging.FromEnv()
	}
	return &NoopBackend{
		emit:        emit,
		logger:      logger,
		agentStyle:  make(map[string]AgentStyle),
		sensorStyle: make(map[string]SensorStyle),
		artists:     make(map[string]Artist),
	}
}

func (b *NoopBackend) SetGraphVisual(style GraphStyle) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.graphStyle = style
}

func (b *NoopBackend) SetAgentVisual(agentName string, style AgentStyle) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.agentStyle[agentName] = style
}

func (b *NoopBackend) SetSensorVisual(sensorID string, style SensorStyle) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sensorStyle[sensorID] = style
}

func (b *NoopBackend) AddArtist(name string, a Artist) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.artists[name]; !exists {
		b.artistNames = append(b.artistNames, name)
	}
	b.artists[name] = a
}

func (b *NoopBackend) RemoveArtist(name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.artists[name]; !ok {
		return fmt.Errorf("%w: %s", ErrNoArtist, name)
	}
	delete(b.artists, name)
	for i, n := range b.artistNames {
		if n == name {
			b.artistNames = append(b.artistNames[:i], b.artistNames[i+1:]...)
			break
		}
	}
	return nil
}

// Simulate runs every registered artist, isolated via safeDraw, then emits
// SIMULATE if recording.
func (b *NoopBackend) Simulate(ctx context.Context) error {
	b.mu.Lock()
	names := make([]string, len(b.artistNames))
	copy(names, b.artistNames)
	artists := make(map[string]Artist, len(b.artists))
	for k, v := range b.artists {
		artists[k] = v
	}
	b.mu.Unlock()

	for _, name := range names {
		b.safeDraw(ctx, name, artists[name])
	}

	if b.emit != nil && b.emit.Record() {
		b.emit.Write(recorder.SIMULATE, nil)
	}
	return nil
}

// safeDraw isolates an artist's Draw call from the render loop: panics are
// recovered, both panics and returned errors are logged at ERROR with the
// artist name at DEBUG, and nothing propagates.
func (b *NoopBackend) safeDraw(ctx context.Context, name string, a Artist) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Log(logging.ERROR, "artist panicked", map[string]any{"artist": name, "recovered": r})
			b.logger.Log(logging.DEBUG, "artist panicked", map[string]any{"artist": name})
		}
	}()
	if err := a.Draw(ctx); err != nil {
		b.logger.Log(logging.ERROR, "artist draw failed", map[string]any{"artist": name, "err": err})
	}
	b.logger.Log(logging.DEBUG, "artist drew", map[string]any{"artist": name})
}

// HumanInput returns state's curr_pos unchanged; a real backend would block
// for operator input instead.
func (b *NoopBackend) HumanInput(_ context.Context, _ string, state map[string]any) (int64, error) {
	v, ok := state["curr_pos"]
	if !ok {
		return 0, fmt.Errorf("visual: state missing curr_pos")
	}
	switch id := v.(type) {
	case int64:
		return id, nil
	case int:
		return int64(id), nil
	default:
		return 0, fmt.Errorf("visual: curr_pos has unexpected type %T", v)
	}
}

// Terminate releases no resources; present to satisfy Backend.
func (b *NoopBackend) Terminate() {}

// ReplayAdapter adapts a context-taking Backend to recorder.VisualReplayer,
// whose Simulate() error signature predates context.Context and has no ctx
// to thread through.
type ReplayAdapter struct {
	Backend Backend
}

func (r ReplayAdapter) Simulate() error {
	return r.Backend.Simulate(context.Background())
}
