// Package rtbuf provides the two lock-free structures that cross the
// control/kernel/audio thread boundaries: a single-producer
// single-consumer triple buffer for the latest EngineParams snapshot, and
// a bounded SPSC ring buffer for the AudioEvent stream. Both are built on
// sync/atomic only, matching the one legitimately-shared piece of global
// state in the teacher (the sync.Once-guarded shared audio context in
// internal/audio/stream.go) rather than reaching for a channel, which
// would block or allocate on the audio thread.
package rtbuf

import "sync/atomic"

// TripleBuffer holds three copies of T so a single writer can publish a
// new snapshot while a single reader holds an older one without ever
// blocking or tearing. The writer always writes into the slot nobody
// could be reading, then atomically swaps it in as the new "ready" slot.
type TripleBuffer[T any] struct {
	slots      [3]T
	writeIndex int32          // slot the writer is currently filling, owned by writer
	readyIndex atomic.Int32   // slot the reader should pick up next
	readIndex  int32          // slot the reader currently holds, owned by reader
	dirty      atomic.Bool    // true once at least one Write has happened
}

// NewTripleBuffer seeds all three slots with initial.
func NewTripleBuffer[T any](initial T) *TripleBuffer[T] {
	tb := &TripleBuffer[T]{
		slots:      [3]T{initial, initial, initial},
		writeIndex: 0,
		readIndex:  1,
	}
	tb.readyIndex.Store(2)
	return tb
}

// Write publishes a new snapshot. Single-producer only: concurrent
// writers would race on writeIndex.
func (tb *TripleBuffer[T]) Write(v T) {
	tb.slots[tb.writeIndex] = v
	tb.writeIndex = tb.readyIndex.Swap(tb.writeIndex)
	tb.dirty.Store(true)
}

// Read returns the most recently published snapshot. Single-consumer
// only: concurrent readers would race on readIndex. Safe to call every
// tick even if nothing new has been written; it just re-reads the same
// slot.
func (tb *TripleBuffer[T]) Read() T {
	if tb.dirty.Load() {
		tb.readIndex = tb.readyIndex.Swap(tb.readIndex)
		tb.dirty.Store(false)
	}
	return tb.slots[tb.readIndex]
}
