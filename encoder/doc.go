// Package encoder defines how log records are serialized into bytes.
//
// The Encoder interface is a pure function contract: append one
// complete encoded event for a record to a caller-provided buffer.
// Implementations hold no per-record state, so one Encoder value can be
// shared across any number of writers.
//
// Two encodings ship with the module. JSON is the reference format:
// one object per line with the reserved keys level, message, target,
// and timestamp first, then user fields in insertion order. CBOR
// carries the identical field set as a canonical definite-length map
// via github.com/ugorji/go/codec. Both resolve collisions between user
// fields and reserved keys the same way: the reserved key wins and the
// user field is dropped.
package encoder
