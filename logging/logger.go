package logging

import "os"

// Record is a single logged line, used by Logger implementations and
// HistoryLogger's query surface.
type Record struct {
	Level  Level
	Msg    string
	Fields map[string]any
}

// Logger is the leveled logging contract every simulation component writes
// through, in place of the teacher's event-shaped Emitter.
type Logger interface {
	Log(level Level, msg string, fields map[string]any)
}

// FromEnv builds a TextLogger writing to stderr, filtered at the level
// named by GAMMS_LOG_LEVEL. Unset or unrecognized values default to INFO.
func FromEnv() Logger {
	return NewTextLogger(os.Stderr, ParseLevel(os.Getenv("GAMMS_LOG_LEVEL")), false)
}
