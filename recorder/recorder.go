package recorder

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// state is the recorder's position in the state machine of spec §4.4:
// Idle -> Recording -> {Paused <-> Recording} -> Idle (via Stop).
type state int

const (
	idle state = iota
	recording
	paused
)

// MetricsSink is the narrow slice of *metrics.Collector the recorder needs
// to report a written event's opcode.
type MetricsSink interface {
	RecordRecorderEvent(opcode string)
}

// Recorder is the append-only event log writer and its state machine.
// Record() is the emission predicate every mutator checks before calling
// Write; Write itself is also safe to call when not recording (a silent
// no-op), matching the spec's "emitting while not recording is a no-op"
// rule for the public API.
type Recorder struct {
	mu    sync.Mutex
	st    state
	f     *os.File
	w     *bufio.Writer
	start time.Time

	metrics    MetricsSink
	terminated func() bool
}

// New creates an idle recorder, not yet bound to any file.
func New() *Recorder {
	return &Recorder{st: idle}
}

// Start opens path for recording, writing the file header immediately.
// Paths without a ".ggr" extension have it appended. An existing file is
// refused rather than overwritten.
func (r *Recorder) Start(path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.st != idle {
		return fmt.Errorf("%w: Start requires Idle", ErrInvalidTransition)
	}
	if filepath.Ext(path) != ".ggr" {
		path += ".ggr"
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %s", ErrAlreadyExists, path)
		}
		return fmt.Errorf("open recording file: %w", err)
	}

	w := bufio.NewWriter(f)
	if err := writeHeader(w); err != nil {
		_ = f.Close()
		return err
	}

	r.f = f
	r.w = w
	r.start = time.Now()
	r.st = recording
	return nil
}

// Stop writes the terminating TERMINATE record and closes the file.
// Permitted from Recording or Paused.
func (r *Recorder) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.st != recording && r.st != paused {
		return fmt.Errorf("%w: Stop requires Recording or Paused", ErrInvalidTransition)
	}
	ts := time.Since(r.start).Nanoseconds()
	if err := writeFrame(r.w, Event{Timestamp: ts, OpCode: TERMINATE}); err != nil {
		return err
	}
	if err := r.w.Flush(); err != nil {
		return fmt.Errorf("flush recording: %w", err)
	}
	err := r.f.Close()
	r.f = nil
	r.w = nil
	r.st = idle
	return err
}

// Pause suspends emission without closing the file. Permitted from
// Recording only.
func (r *Recorder) Pause() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.st != recording {
		return fmt.Errorf("%w: Pause requires Recording: %w", ErrInvalidTransition, ErrNotRecording)
	}
	r.st = paused
	return nil
}

// Play resumes emission. Permitted from Paused only.
func (r *Recorder) Play() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.st != paused {
		return fmt.Errorf("%w: Play requires Paused: %w", ErrInvalidTransition, ErrNotPaused)
	}
	r.st = recording
	return nil
}

// SetMetrics wires m as the sink every successful Write reports its opcode
// to. A nil sink (the default) disables reporting.
func (r *Recorder) SetMetrics(m MetricsSink) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.metrics = m
}

// SetTerminated wires fn as the owning context's termination check: once fn
// reports true, Record returns false regardless of recording state,
// matching the source's `not self.ctx.is_terminated()` clause on
// is_recording. A nil fn (the default) means termination never suppresses
// recording.
func (r *Recorder) SetTerminated(fn func() bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.terminated = fn
}

// Record is the emission predicate: true iff the recorder is actively
// Recording (not Idle, not Paused) and its owning context, if any, hasn't
// been terminated.
func (r *Recorder) Record() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.st != recording {
		return false
	}
	return r.terminated == nil || !r.terminated()
}

// Write appends one event if currently Recording and not terminated;
// otherwise it is a silent no-op, matching the spec's public-API emission
// rule. A successful write reports its opcode to the wired metrics sink.
func (r *Recorder) Write(op OpCode, data any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.st != recording {
		return
	}
	if r.terminated != nil && r.terminated() {
		return
	}
	ts := time.Since(r.start).Nanoseconds()
	_ = writeFrame(r.w, Event{Timestamp: ts, OpCode: op, Data: data})
	if r.metrics != nil {
		r.metrics.RecordRecorderEvent(op.String())
	}
}

// Time returns the elapsed nanoseconds since Start, for embedding in event
// payloads that want a local clock reading outside of Write.
func (r *Recorder) Time() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.st == idle {
		return 0
	}
	return time.Since(r.start).Nanoseconds()
}
