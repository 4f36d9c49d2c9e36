package recorder

import (
	"github.com/bascanada/harmonium-sub001/internal/emotion"
	"github.com/bascanada/harmonium-sub001/internal/event"
)

const outChannels = 2

// sampleSource is the subset of internal/audio.SampleSource the recorder
// wraps; declared locally so this package does not need to import
// internal/audio just for one method signature.
type sampleSource interface {
	Process(dst []float32)
}

// Recorder decorates a sampleSource (internal/voice.Backend in
// practice), teeing the rendered stereo buffer and the AudioEvent stream
// into up to four live encoders at once. Grounded on
// harmonium_audio/src/backend/recorder.rs's RecorderBackend, which wraps
// an inner AudioRenderer and intercepts handle_event/next_frame before
// forwarding — here the backend calls back into HandleEvent via
// SetEventObserver instead of being wrapped behind a shared interface,
// since Go's voice.Backend already owns its event ring.
type Recorder struct {
	inner      sampleSource
	sampleRate int
	queue      *Queue

	samplesPerStep float64
	stepsElapsed   float64

	wav      *wavEncoder
	midi     *midiEncoder
	musicxml *musicxmlBuilder
	truth    *truthEncoder
}

// New builds a recorder wrapping inner, pushing finished exports onto
// queue. No format is active until a StartRecording event arrives.
func New(inner sampleSource, sampleRate int, queue *Queue) *Recorder {
	return &Recorder{inner: inner, sampleRate: sampleRate, queue: queue}
}

// HandleEvent is registered as the wrapped backend's event observer
// (see internal/voice.Backend.SetEventObserver) so the recorder sees
// every event exactly once, in the same order the backend does.
func (r *Recorder) HandleEvent(e event.AudioEvent) {
	switch v := e.(type) {
	case event.StartRecording:
		r.start(v.Format)
	case event.StopRecording:
		r.stop(v.Format)
	case event.TimingUpdate:
		if v.SamplesPerStep > 0 {
			r.samplesPerStep = v.SamplesPerStep
		}
	case event.UpdateMusicalParams:
		if mp, ok := v.Params.(emotion.MusicalParams); ok {
			if r.midi != nil {
				r.midi.retempo(mp.BPM)
			}
			if r.truth != nil {
				r.truth.setParams(mp)
			}
		}
	case event.NoteOn:
		if r.midi != nil {
			r.midi.noteOn(v.Channel, v.Note, v.Velocity)
		}
		if r.truth != nil {
			r.truth.recordEvent(r.stepsElapsed, v)
		}
		if r.musicxml != nil {
			r.musicxml.noteOn(r.stepsElapsed, v)
		}
	case event.NoteOff:
		if r.midi != nil {
			r.midi.noteOff(v.Channel, v.Note)
		}
		if r.truth != nil {
			r.truth.recordEvent(r.stepsElapsed, v)
		}
		if r.musicxml != nil {
			r.musicxml.noteOff(r.stepsElapsed, v)
		}
	}
}

func (r *Recorder) start(f event.RecordingFormat) {
	switch f {
	case event.FormatWAV:
		r.wav = newWAVEncoder(r.sampleRate, outChannels)
	case event.FormatMIDI:
		r.midi = newMIDIEncoder()
	case event.FormatMusicXML:
		r.musicxml = newMusicxmlBuilder()
	case event.FormatTruth:
		r.truth = newTruthEncoder(r.sampleRate)
	}
}

// stop finalizes the named encoder and pushes the result onto the
// finished-recordings queue. Finalization happens synchronously here:
// HandleEvent runs from the backend's event-drain step at the start of
// Process, on the audio goroutine but before (outside) the
// rtcheck-guarded render loop.
func (r *Recorder) stop(f event.RecordingFormat) {
	switch f {
	case event.FormatWAV:
		if r.wav != nil {
			r.queue.Push(FinishedRecording{Format: f, Data: r.wav.finish()})
			r.wav = nil
		}
	case event.FormatMIDI:
		if r.midi != nil {
			r.queue.Push(FinishedRecording{Format: f, Data: r.midi.finish()})
			r.midi = nil
		}
	case event.FormatMusicXML:
		if r.musicxml != nil {
			r.queue.Push(FinishedRecording{Format: f, Data: r.musicxml.finish()})
			r.musicxml = nil
		}
	case event.FormatTruth:
		if r.truth != nil {
			r.queue.Push(FinishedRecording{Format: f, Data: r.truth.finish()})
			r.truth = nil
		}
	}
}

// Process renders through the wrapped backend, then tees the buffer into
// any active WAV capture and advances the step clock every other encoder
// needs for its next delta.
func (r *Recorder) Process(dst []float32) {
	r.inner.Process(dst)

	if r.wav != nil {
		r.wav.write(dst)
	}
	if r.samplesPerStep > 0 {
		stepsInBuffer := float64(len(dst)/outChannels) / r.samplesPerStep
		if r.midi != nil {
			r.midi.advance(stepsInBuffer)
		}
		r.stepsElapsed += stepsInBuffer
	}
}

// Finished delegates to the wrapped backend when it reports one, and
// otherwise reports false: the recorder itself has no notion of an end,
// only the source it taps does.
func (r *Recorder) Finished() bool {
	type finisher interface{ Finished() bool }
	if f, ok := r.inner.(finisher); ok {
		return f.Finished()
	}
	return false
}

// Active reports which formats currently have an open capture, for the
// graceful-shutdown protocol (engine.go mutes channels, waits, then sends
// StopRecording only for formats that were actually started).
func (r *Recorder) Active() []event.RecordingFormat {
	var active []event.RecordingFormat
	if r.wav != nil {
		active = append(active, event.FormatWAV)
	}
	if r.midi != nil {
		active = append(active, event.FormatMIDI)
	}
	if r.musicxml != nil {
		active = append(active, event.FormatMusicXML)
	}
	if r.truth != nil {
		active = append(active, event.FormatTruth)
	}
	return active
}
