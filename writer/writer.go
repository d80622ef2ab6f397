package writer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/structlog-go/structlog/core"
)

// Writer consumes records and durably emits them to a destination.
type Writer interface {
	// Write encodes and delivers one record
	Write(rec *core.Record) error

	// Close flushes and releases resources
	Close() error
}

// Recycler is an optional interface writers implement to tell the
// dispatcher whether a record may be returned to the pool as soon as
// Write returns. Asynchronous writers keep the record past Write and
// recycle it themselves.
type Recycler interface {
	CanRecycleRecord() bool
}

// Stage identifies which phase of a write failed
type Stage uint8

const (
	// StageEncode means the record could not be serialized
	StageEncode Stage = iota
	// StageIO means the destination write or flush failed
	StageIO
)

// String returns the string representation of the stage
func (s Stage) String() string {
	switch s {
	case StageEncode:
		return "encode"
	case StageIO:
		return "io"
	default:
		return "unknown"
	}
}

// WriteError describes a failed delivery. Stage distinguishes encode
// failures from destination I/O failures; Target carries the record's
// routing key for fallback reporting.
type WriteError struct {
	Stage  Stage
	Target string
	Err    error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("structlog: %s failure for target %q: %v", e.Stage, e.Target, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// bufferPool is a pool of bytes.Buffer used to encode outside the
// destination lock, so the lock is held only for the raw write.
var bufferPool = &sync.Pool{
	New: func() interface{} {
		b := new(bytes.Buffer)
		b.Grow(256)
		return b
	},
}

func getBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > 64*1024 { // Don't keep very large buffers
		return
	}
	bufferPool.Put(buf)
}

// Fallback is the last-resort stream for delivery failures. Failed
// events are dropped after a single diagnostic line is written here;
// logging failures never propagate into application control flow.
var (
	fallbackMu sync.Mutex
	fallback   io.Writer = os.Stderr
)

// SetFallback replaces the last-resort diagnostic stream. Intended for
// tests and for processes that redirect stderr.
func SetFallback(w io.Writer) {
	fallbackMu.Lock()
	fallback = w
	fallbackMu.Unlock()
}

// ReportFailure writes a single diagnostic line for a failed delivery
// to the fallback stream. It never fails and never panics. The error
// text is JSON-escaped so the line stays parseable whatever the
// destination put in the message.
func ReportFailure(err error) {
	defer func() { _ = recover() }()
	msg, mErr := json.Marshal("failed to write log: " + err.Error())
	if mErr != nil {
		msg = []byte(`"failed to write log"`)
	}
	fallbackMu.Lock()
	fmt.Fprintf(fallback, `{"level":"ERROR","message":%s,"target":"structlog","timestamp":%d}`+"\n",
		msg, core.UnixMS())
	fallbackMu.Unlock()
}
