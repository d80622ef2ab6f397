package benchmark

import "github.com/structlog-go/structlog/core"

// noopWriter consumes records without encoding them, isolating the
// dispatch path from serialization cost.
type noopWriter struct{}

func (noopWriter) Write(rec *core.Record) error { return nil }
func (noopWriter) Close() error                 { return nil }
func (noopWriter) CanRecycleRecord() bool       { return true }
