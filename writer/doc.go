// Package writer delivers encoded log records to their destinations.
//
// The Writer interface combines an encoder with a destination handle.
// Sync writers encode into a pooled buffer outside the destination
// lock, then write and flush under it; every Sync writer constructed
// over the same destination value shares one lock instance, which is
// the invariant that keeps concurrent records from interleaving on a
// shared stream.
//
// Async wraps any Writer behind a bounded FIFO queue with a single
// consumer goroutine, decoupling producer latency from destination
// I/O. When the queue is full an OverflowPolicy decides whether the
// producer blocks briefly (Block, the default), the oldest queued
// record is evicted (DropOldest), or the new record is discarded
// (DropNewest). Drops are counted in Stats, never surfaced per event.
// Close drains the queue up to a grace period before returning.
//
// Delivery failures are terminal for the failed event only: a single
// diagnostic line goes to the last-resort fallback stream (stderr by
// default) and the event is dropped. There is no retry, since retrying
// could reorder or duplicate events.
//
// Destination helpers open append-mode files (NewFile) and gzip
// compressed variants (NewGzip, NewGzipFile) via
// github.com/klauspost/compress.
package writer
