package logger

import "github.com/structlog-go/structlog/core"

// Package-level convenience functions using the active dispatcher.
// Before activation they are no-ops. Records emitted here carry an
// empty target, so they route to the wildcard entry or the default
// writer; use Target for per-subsystem routing.

// Target returns a logger bound to the given routing key. It can be
// created before activation and starts delivering once Activate
// succeeds.
func Target(name string) *Logger {
	return &Logger{target: name}
}

// Trace logs a trace message through the active dispatcher
func Trace(msg string, fields ...core.Field) {
	Active().dispatchNow(core.TraceLevel, msg, fields)
}

// Debug logs a debug message through the active dispatcher
func Debug(msg string, fields ...core.Field) {
	Active().dispatchNow(core.DebugLevel, msg, fields)
}

// Info logs an info message through the active dispatcher
func Info(msg string, fields ...core.Field) {
	Active().dispatchNow(core.InfoLevel, msg, fields)
}

// Warn logs a warning message through the active dispatcher
func Warn(msg string, fields ...core.Field) {
	Active().dispatchNow(core.WarnLevel, msg, fields)
}

// Error logs an error message through the active dispatcher
func Error(msg string, fields ...core.Field) {
	Active().dispatchNow(core.ErrorLevel, msg, fields)
}

func (d *Dispatcher) dispatchNow(level core.Level, msg string, fields []core.Field) {
	if !d.Enabled(level) {
		return
	}
	if d.callerFor(level) {
		fields = appendCaller(fields, core.GetCaller(callerSkip))
	}
	d.dispatch(core.UnixMS(), level, "", msg, nil, fields)
}
