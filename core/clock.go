package core

import (
	"sync"
	"sync/atomic"
	"time"
)

// UnixMS returns the current wall-clock time in milliseconds since the
// Unix epoch. Every record is stamped with this value.
func UnixMS() int64 {
	return time.Now().UnixMilli()
}

var (
	coarseClockOnce sync.Once
	coarseMS        atomic.Int64
)

// StartCoarseClock starts the background goroutine that caches the
// current epoch-millisecond value every 500µs. It is safe to call
// multiple times; the goroutine is started exactly once. The goroutine
// runs for the lifetime of the process; this is intentional because
// logging typically spans the entire application lifecycle.
func StartCoarseClock() {
	coarseClockOnce.Do(func() {
		coarseMS.Store(time.Now().UnixMilli())
		go func() {
			ticker := time.NewTicker(500 * time.Microsecond)
			for range ticker.C {
				coarseMS.Store(time.Now().UnixMilli())
			}
		}()
	})
}

// CoarseUnixMS returns the most recently cached epoch-millisecond value.
// StartCoarseClock must have been called before using CoarseUnixMS.
func CoarseUnixMS() int64 {
	return coarseMS.Load()
}
