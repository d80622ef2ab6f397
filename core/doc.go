// Package core defines the shared types used across the structlog module.
//
// It provides the Level type for severity filtering, the Record type that
// represents a single log event, and the Field type for zero-allocation
// structured key-value pairs.
//
// Record objects are pooled via sync.Pool to keep the hot path
// allocation-free. The dispatcher gets a Record with GetRecord and
// returns it with PutRecord once a synchronous writer has consumed it;
// asynchronous writers recycle records themselves after the background
// consumer is done. The pool pre-allocates the Fields slice with
// capacity 8, which covers most log calls without triggering a slice
// growth.
//
// Field encodes values into fixed-size numeric fields (Int64, Float64)
// wherever possible so that common types like int, bool, and time.Time
// never escape to the heap. The Any field exists as a fallback for
// arbitrary and nested values but will cause an allocation.
package core
