package writer

import "github.com/structlog-go/structlog/core"

// Multi fans one record out to several writers, so a single target can
// feed more than one destination (a file plus stderr, say). A record
// is owned by exactly one writer, so children that keep the record
// past Write (async writers) receive their own pooled copy. Write
// delivers to every child even when one fails and returns the last
// error.
type Multi struct {
	writers []Writer
	clone   []bool // per child: true when the child keeps the record past Write
}

// NewMulti creates a fan-out writer over the given children.
func NewMulti(writers ...Writer) *Multi {
	m := &Multi{writers: writers, clone: make([]bool, len(writers))}
	for i, w := range writers {
		if rc, ok := w.(Recycler); !ok || !rc.CanRecycleRecord() {
			m.clone[i] = true
		}
	}
	return m
}

func cloneRecord(rec *core.Record) *core.Record {
	c := core.GetRecord()
	c.TimeMS = rec.TimeMS
	c.Level = rec.Level
	c.Target = rec.Target
	c.Message = rec.Message
	c.Fields = append(c.Fields, rec.Fields...)
	return c
}

// Write delivers rec to all children
func (m *Multi) Write(rec *core.Record) error {
	var lastErr error
	for i, w := range m.writers {
		out := rec
		if m.clone[i] {
			out = cloneRecord(rec)
		}
		if err := w.Write(out); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

// CanRecycleRecord returns true: children that outlive Write got their
// own copy, so the caller's record is fully consumed on return.
func (m *Multi) CanRecycleRecord() bool {
	return true
}

// Close closes all children
func (m *Multi) Close() error {
	var lastErr error
	for _, w := range m.writers {
		if err := w.Close(); err != nil {
			lastErr = err
		}
	}
	return lastErr
}
