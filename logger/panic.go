package logger

import (
	"fmt"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/structlog-go/structlog/core"
)

// PanicTarget is the fixed routing key for captured panics.
const PanicTarget = "panic"

// CapturePanic logs a panic as a structured Error record before
// letting it continue unwinding. It must be deferred directly:
//
//	defer logger.CapturePanic()
//
// The record goes to the PanicTarget writer synchronously, bypassing
// any async queue, because the process may terminate immediately
// afterwards. The panic is then re-raised, so termination semantics
// are unchanged: this only observes, it never suppresses. It does
// nothing unless the active configuration enabled WithPanicCapture.
func CapturePanic() {
	v := recover()
	if v == nil {
		return
	}
	logPanic(v)
	panic(v)
}

// Run invokes fn with panic capture installed.
func Run(fn func()) {
	defer CapturePanic()
	fn()
}

// Go runs fn on a new goroutine with panic capture installed.
func Go(fn func()) {
	go Run(fn)
}

// logPanic emits the panic record. It must run fast and never panic
// itself, whatever state the process is in.
func logPanic(v interface{}) {
	defer func() { _ = recover() }()

	d := Active()
	if d == nil || !panicCapture.Load() {
		return
	}

	fields := make([]core.Field, 0, 3)
	if site := panicSite(); site.Defined {
		fields = append(fields,
			core.Field{Key: "file", Type: core.StringType, Str: site.ShortFile},
			core.Field{Key: "line", Type: core.IntType, Int64: int64(site.Line)},
		)
	}
	fields = append(fields, core.Field{Key: "stack", Type: core.StringType, Str: string(debug.Stack())})

	d.dispatchSync(core.ErrorLevel, PanicTarget, fmt.Sprintf("panic: %v", v), fields)
}

// panicSite walks the stack past the runtime panic machinery to find
// the frame that actually panicked.
func panicSite() core.CallerInfo {
	var pcs [32]uintptr
	n := runtime.Callers(2, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])
	seenPanic := false
	for {
		f, more := frames.Next()
		switch {
		case f.Function == "runtime.gopanic":
			seenPanic = true
		case seenPanic && !strings.HasPrefix(f.Function, "runtime."):
			return core.CallerInfo{
				File:      f.File,
				ShortFile: filepath.Base(f.File),
				Line:      f.Line,
				Function:  f.Function,
				Defined:   true,
			}
		}
		if !more {
			return core.CallerInfo{}
		}
	}
}
