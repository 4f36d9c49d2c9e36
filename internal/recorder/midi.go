package recorder

import (
	"bytes"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// ticksPerQuarter and ticksPerStep match spec §6's MIDI time base: 480
// ticks per quarter note, 120 ticks per step (one step = one 16th note).
const (
	ticksPerQuarter = 480
	ticksPerStep    = ticksPerQuarter / 4
)

// midiEncoder accumulates a single-track SMF, converting the fractional
// step-time the kernel reports into integer MIDI ticks the way
// harmonium_audio's recorder.rs does (steps_to_ticks): each event's delta
// is rounded to the nearest tick rather than truncated, and the fractional
// remainder is dropped, so rounding error can build up over many events.
type midiEncoder struct {
	track          smf.Track
	stepsSinceLast float64
	lastTempoBPM   float64
}

func newMIDIEncoder() *midiEncoder {
	e := &midiEncoder{lastTempoBPM: 120}
	e.track.Add(0, smf.MetaTempo(e.lastTempoBPM))
	return e
}

func (e *midiEncoder) stepsToTicks(steps float64) uint32 {
	return uint32(steps*ticksPerStep + 0.5)
}

func (e *midiEncoder) noteOn(channel, note, velocity int) {
	delta := e.stepsToTicks(e.stepsSinceLast)
	e.stepsSinceLast = 0
	e.track.Add(delta, midi.NoteOn(uint8(channel), uint8(note), uint8(velocity)))
}

func (e *midiEncoder) noteOff(channel, note int) {
	delta := e.stepsToTicks(e.stepsSinceLast)
	e.stepsSinceLast = 0
	e.track.Add(delta, midi.NoteOff(uint8(channel), uint8(note)))
}

// retempo re-emits a tempo meta event when bpm changes, per spec §6.
func (e *midiEncoder) retempo(bpm float64) {
	if bpm == e.lastTempoBPM {
		return
	}
	e.lastTempoBPM = bpm
	delta := e.stepsToTicks(e.stepsSinceLast)
	e.stepsSinceLast = 0
	e.track.Add(delta, smf.MetaTempo(bpm))
}

func (e *midiEncoder) advance(steps float64) {
	e.stepsSinceLast += steps
}

func (e *midiEncoder) finish() []byte {
	e.track.Close(0)
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(ticksPerQuarter)
	s.Add(e.track)
	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		return nil
	}
	return buf.Bytes()
}
