// Package rtcheck provides a debug-build-only guard against real-time
// violations: code that allocates or blocks while the reserved audio
// render goroutine is active.
//
// Go has no global-allocator hook and no true thread-locals, so this is a
// single process-wide flag rather than an allocator wrapper: the backend
// calls Enter/Exit around its per-frame render loop, and any function
// known to allocate or block calls AssertSafe first. While the flag is
// set, AssertSafe panics on whichever goroutine calls it, not only the
// render goroutine; allocations themselves are not intercepted.
package rtcheck

import (
	"fmt"
	"sync/atomic"
)

var (
	debugEnabled  atomic.Bool
	inAudioThread atomic.Bool
)

// Enable turns the guard on; call once at process start in debug builds.
func Enable() { debugEnabled.Store(true) }

// Disable turns the guard off (release builds, or tests that don't want
// panics).
func Disable() { debugEnabled.Store(false) }

// Enter sets the process-wide audio render context flag.
func Enter() {
	if debugEnabled.Load() {
		inAudioThread.Store(true)
	}
}

// Exit clears the audio render context marker.
func Exit() {
	if debugEnabled.Load() {
		inAudioThread.Store(false)
	}
}

// InAudioContext reports whether Enter has been called without a matching
// Exit yet.
func InAudioContext() bool {
	return inAudioThread.Load()
}

// AssertSafe panics with the offending site's label if called while inside
// the audio render context and the guard is enabled. Call this at the top
// of any function known to allocate, lock unboundedly, or otherwise
// violate real-time safety.
func AssertSafe(site string) {
	if debugEnabled.Load() && inAudioThread.Load() {
		panic(fmt.Sprintf("REAL-TIME VIOLATION: %s called from audio render context", site))
	}
}
