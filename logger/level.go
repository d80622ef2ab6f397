package logger

import "github.com/structlog-go/structlog/core"

// Level Re-export type and constants for convenience
type Level = core.Level

const (
	TraceLevel = core.TraceLevel
	DebugLevel = core.DebugLevel
	InfoLevel  = core.InfoLevel
	WarnLevel  = core.WarnLevel
	ErrorLevel = core.ErrorLevel
	OffLevel   = core.OffLevel
)

// ParseLevel converts a string to a Level, ignoring case. Unknown
// input falls back to InfoLevel.
func ParseLevel(s string) Level {
	l, _ := core.ParseLevel(s)
	return l
}

// LookupLevel converts a string to a Level, reporting whether the
// input named a known level.
func LookupLevel(s string) (Level, bool) {
	return core.ParseLevel(s)
}
