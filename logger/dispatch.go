package logger

import (
	"github.com/structlog-go/structlog/core"
	"github.com/structlog-go/structlog/writer"
)

// Dispatcher routes records to writers by target. It holds no state
// beyond the minimum level and the registry snapshot, both immutable
// after construction, so any number of goroutines may log through it
// concurrently without locks.
type Dispatcher struct {
	level  core.Level
	reg    registry
	caller bool
}

// callerFor reports whether records at the given level get module,
// file, and line fields stamped from the call site. Capture is
// restricted to Warn and above because resolving frames is too
// expensive for high-volume informational logging.
func (d *Dispatcher) callerFor(level core.Level) bool {
	return d.caller && level >= core.WarnLevel
}

// Enabled reports whether a record at the given level would be
// dispatched.
func (d *Dispatcher) Enabled(level core.Level) bool {
	return d != nil && level >= d.level && level < core.OffLevel
}

// Level returns the configured minimum level.
func (d *Dispatcher) Level() core.Level {
	return d.level
}

// Log builds a record and delegates it to the writer registered for
// target. Delivery failures are reported to the fallback stream and
// the event is dropped; they never reach the caller.
func (d *Dispatcher) Log(level core.Level, target, msg string, fields ...core.Field) {
	d.dispatch(core.UnixMS(), level, target, msg, nil, fields)
}

// Logger returns a facade bound to target.
func (d *Dispatcher) Logger(target string) *Logger {
	return &Logger{d: d, target: target}
}

// Close closes every registered writer, draining async queues and
// flushing buffered destinations. The first error is returned; closing
// continues regardless. A writer registered under several targets is
// closed once.
func (d *Dispatcher) Close() error {
	seen := make(map[writer.Writer]struct{}, len(d.reg.targets)+2)
	var first error
	closeOnce := func(w writer.Writer) {
		if _, dup := seen[w]; dup {
			return
		}
		seen[w] = struct{}{}
		if err := w.Close(); err != nil && first == nil {
			first = err
		}
	}
	for _, e := range d.reg.targets {
		closeOnce(e.w)
	}
	if d.reg.wildcard != nil {
		closeOnce(d.reg.wildcard.w)
	}
	closeOnce(d.reg.def.w)
	return first
}

func (d *Dispatcher) dispatch(timeMS int64, level core.Level, target, msg string, bound, fields []core.Field) {
	if !d.Enabled(level) {
		return
	}

	rec := core.GetRecord()
	rec.TimeMS = timeMS
	rec.Level = level
	rec.Target = target
	rec.Message = msg
	for _, f := range bound {
		rec.AddField(f)
	}
	for _, f := range fields {
		rec.AddField(f)
	}

	e := d.reg.resolve(target)
	if err := e.w.Write(rec); err != nil {
		writer.ReportFailure(err)
	}
	if e.recycle {
		core.PutRecord(rec)
	}
}

// dispatchSync is the panic path: it bypasses any async queue by
// unwrapping down to the underlying synchronous writer, since the
// process may terminate before a background consumer runs.
func (d *Dispatcher) dispatchSync(level core.Level, target, msg string, fields []core.Field) {
	if !d.Enabled(level) {
		return
	}

	rec := core.GetRecord()
	rec.TimeMS = core.UnixMS()
	rec.Level = level
	rec.Target = target
	rec.Message = msg
	for _, f := range fields {
		rec.AddField(f)
	}

	w := d.reg.resolve(target).w
	for {
		aw, ok := w.(*writer.Async)
		if !ok {
			break
		}
		w = aw.Unwrap()
	}
	if err := w.Write(rec); err != nil {
		writer.ReportFailure(err)
	}
	if rc, ok := w.(writer.Recycler); ok && rc.CanRecycleRecord() {
		core.PutRecord(rec)
	}
}
