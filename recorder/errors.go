package recorder

import "errors"

// ErrAlreadyExists is returned by Start when the target path already has a
// file (writer refuses to overwrite a recording).
var ErrAlreadyExists = errors.New("recorder: file already exists")

// ErrNotRecording is returned by state-changing calls that require the
// Recording state (e.g. Pause from Idle).
var ErrNotRecording = errors.New("recorder: not recording")

// ErrNotPaused is returned by Play when the recorder isn't Paused.
var ErrNotPaused = errors.New("recorder: not paused")

// ErrBadMagic is returned by the replayer when a file's header magic
// doesn't match "MMGR".
var ErrBadMagic = errors.New("recorder: bad file magic")

// ErrUnknownOpCode is returned by the replayer on an opcode it doesn't
// recognize; unlike a version mismatch this is always a hard failure.
var ErrUnknownOpCode = errors.New("recorder: unknown opcode")

// ErrTimestampRegression is returned when a record stream's timestamps are
// not monotonically non-decreasing (invariant 6).
var ErrTimestampRegression = errors.New("recorder: timestamp regression")

// ErrInvalidTransition is returned when Start/Stop/Pause/Play is called from
// a state that doesn't allow it (see the state machine diagram in spec §4.4).
var ErrInvalidTransition = errors.New("recorder: invalid state transition")
