package writer

import (
	"io"
	"sync"

	"github.com/structlog-go/structlog/core"
	"github.com/structlog-go/structlog/encoder"
)

// flusher is implemented by buffered destinations (bufio.Writer,
// gzip.Writer). Sync writers flush after every record to bound
// buffering latency.
type flusher interface {
	Flush() error
}

// Sync encodes records and writes them to a destination on the calling
// goroutine. Encoding happens outside the destination lock in a pooled
// buffer; the lock is held only for the raw write and flush. Two Sync
// writers constructed over the same destination value share one lock,
// so their output never interleaves.
type Sync struct {
	enc    encoder.Encoder
	dest   io.Writer
	mu     *sync.Mutex // shared per destination, see destLock
	owned  io.Closer   // set when the writer opened the destination itself
	closed bool
}

// NewSync creates a synchronous writer over dest using enc.
func NewSync(dest io.Writer, enc encoder.Encoder) *Sync {
	return &Sync{
		enc:  enc,
		dest: dest,
		mu:   destLock(dest),
	}
}

// Write encodes rec and delivers it to the destination. The returned
// error is always a *WriteError carrying the failed stage.
func (w *Sync) Write(rec *core.Record) error {
	buf := getBuffer()
	if err := w.enc.Encode(rec, buf); err != nil {
		putBuffer(buf)
		return &WriteError{Stage: StageEncode, Target: rec.Target, Err: err}
	}

	w.mu.Lock()
	_, err := w.dest.Write(buf.Bytes())
	if err == nil {
		if f, ok := w.dest.(flusher); ok {
			err = f.Flush()
		}
	}
	w.mu.Unlock()

	putBuffer(buf)
	if err != nil {
		return &WriteError{Stage: StageIO, Target: rec.Target, Err: err}
	}
	return nil
}

// CanRecycleRecord returns true because the record is fully consumed
// before Write returns.
func (w *Sync) CanRecycleRecord() bool {
	return true
}

// Close flushes the destination and closes it when the writer opened it
// itself (NewFile, NewGzipFile). Shared streams like os.Stderr are left
// open.
func (w *Sync) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true

	if f, ok := w.dest.(flusher); ok {
		if err := f.Flush(); err != nil {
			if w.owned != nil {
				w.owned.Close()
			}
			return err
		}
	}
	if w.owned != nil {
		return w.owned.Close()
	}
	return nil
}
