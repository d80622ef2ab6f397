package core

import "sync"

// Record is an immutable snapshot of one log event. It is built once by
// the dispatcher, handed to exactly one writer, and never mutated after
// that handoff. TimeMS is wall-clock milliseconds since the Unix epoch.
type Record struct {
	TimeMS  int64
	Level   Level
	Target  string
	Message string
	Fields  []Field
}

// AddField appends f to the record. When the key is already present the
// existing value is replaced in place, so keys stay unique and keep
// their first insertion position.
func (r *Record) AddField(f Field) {
	for i := range r.Fields {
		if r.Fields[i].Key == f.Key {
			r.Fields[i] = f
			return
		}
	}
	r.Fields = append(r.Fields, f)
}

// recordPool is a pool of Record objects to reduce allocations
var recordPool = sync.Pool{
	New: func() interface{} {
		return &Record{
			Fields: make([]Field, 0, 8), // Pre-allocate for 8 fields
		}
	},
}

// GetRecord retrieves a Record from the pool
func GetRecord() *Record {
	r := recordPool.Get().(*Record)
	r.Fields = r.Fields[:0]
	return r
}

// PutRecord returns a Record to the pool
func PutRecord(r *Record) {
	if r == nil {
		return
	}
	// Re-slice to zero length; GC handles reference cleanup
	r.Fields = r.Fields[:0]
	r.Message = ""
	r.Target = ""
	recordPool.Put(r)
}
