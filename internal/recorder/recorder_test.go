package recorder

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bascanada/harmonium-sub001/internal/emotion"
	"github.com/bascanada/harmonium-sub001/internal/event"
)

type fakeSource struct{ calls int }

func (f *fakeSource) Process(dst []float32) {
	f.calls++
	for i := range dst {
		dst[i] = 0.5
	}
}

func TestWAVEncoderProducesValidRIFFHeader(t *testing.T) {
	w := newWAVEncoder(44100, 2)
	w.write([]float32{0.1, -0.1, 0.2, -0.2})
	data := w.finish()

	require.Equal(t, "RIFF", string(data[0:4]))
	require.Equal(t, "WAVE", string(data[8:12]))

	riffSize := binary.LittleEndian.Uint32(data[4:8])
	assert.Equal(t, len(data)-8, int(riffSize), "RIFF size field")
}

func TestMIDIEncoderProducesValidHeader(t *testing.T) {
	m := newMIDIEncoder()
	m.noteOn(1, 60, 100)
	m.advance(4)
	m.noteOff(1, 60)
	data := m.finish()
	require.GreaterOrEqual(t, len(data), 4, "expected SMF MThd header")
	assert.Equal(t, "MThd", string(data[0:4]))
}

func TestRecorderWAVLifecycleProducesFinishedRecording(t *testing.T) {
	queue := NewQueue()
	src := &fakeSource{}
	r := New(src, 44100, queue)

	r.HandleEvent(event.StartRecording{Format: event.FormatWAV})
	dst := make([]float32, 128)
	r.Process(dst)
	r.HandleEvent(event.StopRecording{Format: event.FormatWAV})

	got, missing, err := queue.WaitFor([]event.RecordingFormat{event.FormatWAV}, time.Second)
	require.NoError(t, err)
	assert.Empty(t, missing)
	require.Len(t, got, 1)
	assert.Equal(t, event.FormatWAV, got[0].Format)
	assert.Equal(t, 1, src.calls, "expected inner source to be called once")
}

func TestQueueWaitForReportsMissingOnTimeout(t *testing.T) {
	queue := NewQueue()
	_, missing, err := queue.WaitFor([]event.RecordingFormat{event.FormatMIDI}, 20*time.Millisecond)
	assert.Error(t, err, "expected timeout error")
	require.Len(t, missing, 1)
	assert.Equal(t, event.FormatMIDI, missing[0])
}

func TestTruthEncoderRecordsEventsInOrder(t *testing.T) {
	te := newTruthEncoder(44100)
	te.setParams(emotion.MusicalParams{BPM: 120})
	te.recordEvent(0, event.NoteOn{ID: 1, Note: 60, Velocity: 100, Channel: 1})
	te.recordEvent(1, event.NoteOff{ID: 1, Note: 60, Channel: 1})
	data := te.finish()
	assert.Contains(t, string(data), `"sample_rate":44100`)
	assert.Contains(t, string(data), `"kind":"NoteOn"`)
}

func TestMusicxmlBuilderPairsNoteOnOff(t *testing.T) {
	b := newMusicxmlBuilder()
	b.noteOn(0, event.NoteOn{ID: 1, Note: 60, Velocity: 100, Channel: 1})
	b.noteOff(4, event.NoteOff{ID: 1, Note: 60, Channel: 1})
	data := b.finish()
	assert.Contains(t, string(data), "score-partwise")
	assert.Contains(t, string(data), "<step>C</step>")
}

func TestRecorderActiveReflectsStartedFormats(t *testing.T) {
	queue := NewQueue()
	r := New(&fakeSource{}, 44100, queue)
	r.HandleEvent(event.StartRecording{Format: event.FormatTruth})
	active := r.Active()
	require.Len(t, active, 1)
	assert.Equal(t, event.FormatTruth, active[0])
}
