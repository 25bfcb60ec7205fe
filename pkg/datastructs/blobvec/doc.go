// Package blobvec implements a growable contiguous buffer of elements whose
// type is known only by its byte layout.
//
// A Vec stores fixed-size, aligned byte spans ("blobs") and an optional
// destructor invoked for every element it discards. Memory comes from a
// pluggable alloc.Allocator through RawBuf, which owns the pointer and
// capacity and performs overflow-checked growth.
//
// # Removal and insertion
//
// Two disciplines are offered. Swap removal is O(1) and moves the last
// element into the vacated slot. Shift removal and insertion are O(n) and
// keep the relative order of every other element.
//
// # Failure safety
//
// Length bookkeeping is always updated before a destructor runs, so a
// destructor that fails (by error or panic) never leaves the vector exposing
// destructed or duplicated elements. Drain restores the untouched tail even
// when it is abandoned early or a destructor panics.
//
// # Growth failures
//
// Try* methods return ErrCapacityOverflow or an *AllocError. Every other
// growing method panics with the same values.
//
// # Concurrency
//
// A Vec is not safe for concurrent use. While a Drain is outstanding the Vec
// rejects mutation by panicking with ErrDrainActive.
//
// # Garbage collection
//
// Element bytes are not scanned by the collector. Stored values must not
// hold the only reference to Go heap objects.
package blobvec
