package logger

import (
	"fmt"

	"github.com/structlog-go/structlog/core"
)

// Logger is a facade bound to one target. It is immutable: With
// returns a child carrying additional bound fields, the parent is
// never modified.
type Logger struct {
	d      *Dispatcher
	target string
	fields []core.Field
}

// callerSkip is the fixed frame depth from core.GetCaller inside log
// or logf up to the application call site. Every public leveled method
// sits exactly one frame above log/logf, which is what keeps the skip
// constant.
const callerSkip = 3

// dispatcher returns the bound dispatcher, falling back to the active
// global one. Loggers created before activation start delivering as
// soon as Activate succeeds.
func (l *Logger) dispatcher() *Dispatcher {
	if l.d != nil {
		return l.d
	}
	return Active()
}

// With creates a new Logger with additional bound fields (immutable operation)
func (l *Logger) With(fields ...core.Field) *Logger {
	newFields := make([]core.Field, len(l.fields)+len(fields))
	copy(newFields, l.fields)
	copy(newFields[len(l.fields):], fields)

	return &Logger{
		d:      l.d,
		target: l.target,
		fields: newFields,
	}
}

// Target returns the routing key this logger is bound to.
func (l *Logger) Target() string {
	return l.target
}

// Log logs a message at the specified level
func (l *Logger) Log(level core.Level, msg string, fields ...core.Field) {
	l.log(level, msg, fields)
}

// log is the internal logging method shared by every leveled entry point
func (l *Logger) log(level core.Level, msg string, fields []core.Field) {
	d := l.dispatcher()
	if !d.Enabled(level) {
		return
	}
	if d.callerFor(level) {
		fields = appendCaller(fields, core.GetCaller(callerSkip))
	}
	d.dispatch(core.UnixMS(), level, l.target, msg, l.fields, fields)
}

// Trace logs a trace message
func (l *Logger) Trace(msg string, fields ...core.Field) {
	l.log(core.TraceLevel, msg, fields)
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, fields ...core.Field) {
	l.log(core.DebugLevel, msg, fields)
}

// Info logs an info message
func (l *Logger) Info(msg string, fields ...core.Field) {
	l.log(core.InfoLevel, msg, fields)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, fields ...core.Field) {
	l.log(core.WarnLevel, msg, fields)
}

// Error logs an error message
func (l *Logger) Error(msg string, fields ...core.Field) {
	l.log(core.ErrorLevel, msg, fields)
}

// Tracef logs a trace message with formatting
func (l *Logger) Tracef(format string, args ...interface{}) {
	l.logf(core.TraceLevel, format, args)
}

// Debugf logs a debug message with formatting
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.logf(core.DebugLevel, format, args)
}

// Infof logs an info message with formatting
func (l *Logger) Infof(format string, args ...interface{}) {
	l.logf(core.InfoLevel, format, args)
}

// Warnf logs a warning message with formatting
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.logf(core.WarnLevel, format, args)
}

// Errorf logs an error message with formatting
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.logf(core.ErrorLevel, format, args)
}

// logf defers Sprintf until after the level gate so disabled calls
// stay allocation-free.
func (l *Logger) logf(level core.Level, format string, args []interface{}) {
	d := l.dispatcher()
	if !d.Enabled(level) {
		return
	}
	var fields []core.Field
	if d.callerFor(level) {
		fields = appendCaller(nil, core.GetCaller(callerSkip))
	}
	d.dispatch(core.UnixMS(), level, l.target, fmt.Sprintf(format, args...), l.fields, fields)
}

// appendCaller stamps call-site fields without clobbering the caller's
// backing array. Appending last means they win over user fields of the
// same name.
func appendCaller(fields []core.Field, ci core.CallerInfo) []core.Field {
	if !ci.Defined {
		return fields
	}
	return append(fields[:len(fields):len(fields)],
		core.Field{Key: "module", Type: core.StringType, Str: ci.Function},
		core.Field{Key: "file", Type: core.StringType, Str: ci.ShortFile},
		core.Field{Key: "line", Type: core.IntType, Int64: int64(ci.Line)},
	)
}
