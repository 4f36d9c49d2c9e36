// Package recorder tees the AudioEvent stream and the rendered audio
// buffer into four simultaneous encoders (WAV, MIDI, MusicXML, Truth
// JSON), grounded on the teacher's decorator-style AudioRenderer wrapper
// (harmonium_audio/src/backend/recorder.rs intercepts handle_event and
// next_frame before forwarding to the inner engine). Go has no trait
// objects, so the same shape is expressed as internal/voice.Backend
// accepting an observer callback instead of being wrapped behind a
// shared interface.
package recorder

import (
	"sync"
	"time"

	"github.com/bascanada/harmonium-sub001/internal/event"
	"github.com/bascanada/harmonium-sub001/internal/herrors"
)

// FinishedRecording is one completed export: the format it was encoded
// in and the finalized bytes.
type FinishedRecording struct {
	Format event.RecordingFormat
	Data   []byte
}

// Queue is the mutex-protected finished-recordings sink spec §5 names:
// pushed to exclusively by non-RT finalization code, drained by the
// shutdown path.
type Queue struct {
	mu    sync.Mutex
	items []FinishedRecording
}

func NewQueue() *Queue {
	return &Queue{}
}

func (q *Queue) Push(fr FinishedRecording) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, fr)
}

func (q *Queue) snapshot() []FinishedRecording {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]FinishedRecording, len(q.items))
	copy(out, q.items)
	return out
}

func hasFormat(items []FinishedRecording, f event.RecordingFormat) bool {
	for _, it := range items {
		if it.Format == f {
			return true
		}
	}
	return false
}

// WaitFor polls the queue until every format in want has finished or
// timeout elapses, per spec §5's 5s RecordingTimeout: whichever
// recordings are present at that point are returned, the rest reported
// as missing rather than the caller blocking indefinitely.
func (q *Queue) WaitFor(want []event.RecordingFormat, timeout time.Duration) (got []FinishedRecording, missing []event.RecordingFormat, err error) {
	deadline := time.Now().Add(timeout)
	const pollInterval = 10 * time.Millisecond
	for {
		items := q.snapshot()
		missing = missing[:0]
		for _, f := range want {
			if !hasFormat(items, f) {
				missing = append(missing, f)
			}
		}
		if len(missing) == 0 || time.Now().After(deadline) {
			got = items
			break
		}
		time.Sleep(pollInterval)
	}
	if len(missing) > 0 {
		return got, missing, herrors.ErrRecordingTimeout
	}
	return got, nil, nil
}
