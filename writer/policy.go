package writer

import "sync/atomic"

// OverflowPolicy defines how a full async queue treats a new record
type OverflowPolicy int

const (
	// Block waits up to the configured timeout for queue space, then
	// drops the incoming record. This is the default policy.
	Block OverflowPolicy = iota
	// DropOldest evicts the oldest queued record to make room
	DropOldest
	// DropNewest drops the incoming record immediately
	DropNewest
)

// String returns the string representation of the policy
func (p OverflowPolicy) String() string {
	switch p {
	case Block:
		return "Block"
	case DropOldest:
		return "DropOldest"
	case DropNewest:
		return "DropNewest"
	default:
		return "Unknown"
	}
}

// Stats tracks async writer counters. All fields are updated atomically
// and may be read concurrently with writes.
type Stats struct {
	dropped   atomic.Uint64
	blocked   atomic.Uint64
	processed atomic.Uint64
}

// Snapshot is a point-in-time copy of the counters
type Snapshot struct {
	Dropped   uint64
	Blocked   uint64
	Processed uint64
}

// Snapshot returns a copy of the current counters
func (s *Stats) Snapshot() Snapshot {
	return Snapshot{
		Dropped:   s.dropped.Load(),
		Blocked:   s.blocked.Load(),
		Processed: s.processed.Load(),
	}
}
