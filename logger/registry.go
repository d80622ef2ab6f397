package logger

import "github.com/structlog-go/structlog/writer"

// Wildcard is the sentinel target matching any record without an
// exact-match registration.
const Wildcard = "*"

// entry pairs a writer with its precomputed recycling capability so
// the dispatch hot path avoids a per-record interface assertion.
type entry struct {
	w       writer.Writer
	recycle bool
}

func newEntry(w writer.Writer) entry {
	e := entry{w: w}
	if rc, ok := w.(writer.Recycler); ok {
		e.recycle = rc.CanRecycleRecord()
	}
	return e
}

// registry maps target names to writers. It is populated by the
// Builder before activation and read-only afterwards, which is what
// makes lock-free concurrent resolution safe.
type registry struct {
	targets  map[string]entry
	wildcard *entry
	def      entry
}

// resolve returns the writer responsible for target. Resolution never
// fails: exact match first, then the wildcard entry, then the built-in
// default. Logging must never become the application fault.
func (r *registry) resolve(target string) entry {
	if e, ok := r.targets[target]; ok {
		return e
	}
	if r.wildcard != nil {
		return *r.wildcard
	}
	return r.def
}
