// Package herrors collects the sentinel errors raised across the engine,
// wrapped with github.com/pkg/errors at the point they are first observed
// so callers further up the stack get a stack trace without needing to
// re-wrap themselves.
package herrors

import "github.com/pkg/errors"

var (
	// ErrConfigInvalid is returned when a preset, TOML document, or CLI
	// flag combination fails validation before the engine starts.
	ErrConfigInvalid = errors.New("harmonium: invalid configuration")

	// ErrResourceMissing names a soundfont, preset file, or drum kit path
	// that cannot be opened. Nothing in this module returns it: New logs a
	// missing soundfont as a warning and continues.
	ErrResourceMissing = errors.New("harmonium: required resource missing")

	// ErrRingBufferFull names a full event ring buffer. RingBuffer.Push
	// does not return it: a full ring makes Push return false and count
	// the dropped event.
	ErrRingBufferFull = errors.New("harmonium: ring buffer full")

	// ErrRecordingTimeout is returned when a recorder fails to drain its
	// finished-recordings queue within the shutdown grace period.
	ErrRecordingTimeout = errors.New("harmonium: recording drain timed out")
)

// Wrap attaches msg and a stack trace to err, or returns nil if err is nil.
func Wrap(err error, msg string) error {
	return errors.Wrap(err, msg)
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}
