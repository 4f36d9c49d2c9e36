// Package kernel drives the sample-accurate step clock that ties the
// rhythm sequencer, harmonic driver, and melody generator together and
// emits the resulting AudioEvent stream in the canonical order.
//
// The clock is a tick-accumulation loop adapted from the teacher's
// Sequencer.Process (internal/sequencer/sequencer.go): instead of
// accumulating MML ticks per audio sample, the kernel accumulates samples
// per caller-supplied delta_seconds and crosses sequencer "step"
// boundaries (one step = one 16th note) whenever the accumulator reaches
// samples_per_step, dispatching exactly as many steps as the elapsed time
// demands before returning.
package kernel

import (
	"math/rand"

	"github.com/bascanada/harmonium-sub001/internal/emotion"
	"github.com/bascanada/harmonium-sub001/internal/event"
	"github.com/bascanada/harmonium-sub001/internal/harmony"
	"github.com/bascanada/harmonium-sub001/internal/lcc"
	"github.com/bascanada/harmonium-sub001/internal/melody"
	"github.com/bascanada/harmonium-sub001/internal/pitch"
	"github.com/bascanada/harmonium-sub001/internal/rhythm"
	"github.com/bascanada/harmonium-sub001/internal/rtbuf"
	"github.com/bascanada/harmonium-sub001/internal/voicing"
)

const (
	channelBass  = 0
	channelLead  = 1
	channelSnare = 2
	channelHat   = 3
)

// liveNote tracks a sounding note so the kernel can emit its NoteOff when
// the voicer's duration expires.
type liveNote struct {
	id            uint64
	note          int
	channel       int
	stepsRemaining int
}

// Kernel owns the sequencer, harmonic driver, melody generator, and
// voicer, and is the sole authority over event ordering within a tick.
type Kernel struct {
	params *rtbuf.TripleBuffer[emotion.EngineParams]
	events *rtbuf.RingBuffer[event.AudioEvent]

	seq        *rhythm.Sequencer
	driver     *harmony.Driver
	basic      *harmony.BasicProgression
	basicChord pitch.Chord
	mel        *melody.Generator
	voicer     voicing.Voicer
	rng        *rand.Rand

	sampleRate     int
	samplesPerStep float64
	sampleAccum    float64
	bpm            float64

	stepCounter      int
	measuresPerChord int
	lastParams       emotion.MusicalParams
	haveLastParams   bool

	nextID uint64
	live   []liveNote
}

// New constructs a kernel rooted on initialKey (e.g. C = 0) at the given
// sample rate, with seed driving its random sources. initial seeds the
// triple buffer and the first Map() call.
func New(sampleRate int, initialKey pitch.PitchClass, seed int64, initial emotion.EngineParams) *Kernel {
	mp := emotion.Map(initial)
	seq := rhythm.New(mp.RhythmMode, mp.Steps, mp.Pulses, mp.Rotation)
	k := &Kernel{
		params:           rtbuf.NewTripleBuffer(initial),
		events:           rtbuf.NewRingBuffer[event.AudioEvent](rtbuf.DefaultRingCapacity),
		seq:              seq,
		driver:           harmony.NewDriver(initialKey),
		basic:            harmony.NewBasicProgression(initialKey),
		basicChord:       pitch.New(initialKey, pitch.Major),
		mel:              melody.New(mp.MelodyOctave, seed),
		voicer:           voicing.NewMonophonic(),
		rng:              rand.New(rand.NewSource(seed)),
		sampleRate:       sampleRate,
		bpm:              mp.BPM,
		measuresPerChord: mp.MeasuresPerChord,
		lastParams:       mp,
		haveLastParams:   true,
	}
	k.samplesPerStep = samplesPerStep(mp.BPM, sampleRate)
	k.events.Push(event.TimingUpdate{SamplesPerStep: k.samplesPerStep})
	k.events.Push(event.UpdateMusicalParams{Params: mp})
	return k
}

// samplesPerStep converts a tempo into the sample count of one 16th note.
func samplesPerStep(bpm float64, sampleRate int) float64 {
	secondsPerBeat := 60.0 / bpm
	secondsPerStep := secondsPerBeat / 4.0
	return secondsPerStep * float64(sampleRate)
}

// SetVoicer swaps the active voicing style (Monophonic/BlockChord/Shell/
// Comping).
func (k *Kernel) SetVoicer(v voicing.Voicer) {
	k.voicer = v
}

// PushParams publishes a new affective snapshot for the kernel to pick up
// at its next step boundary. Safe to call from any single control thread.
func (k *Kernel) PushParams(p emotion.EngineParams) {
	k.params.Write(p)
}

// Events exposes the ring buffer the audio backend drains from.
func (k *Kernel) Events() *rtbuf.RingBuffer[event.AudioEvent] {
	return k.events
}

// Advance accumulates deltaSeconds of wall time and dispatches every
// sequencer step boundary crossed, in order. Allocations are allowed here:
// this runs on the music-kernel thread, not the audio callback.
func (k *Kernel) Advance(deltaSeconds float64) {
	k.sampleAccum += deltaSeconds * float64(k.sampleRate)
	for k.sampleAccum >= k.samplesPerStep {
		k.sampleAccum -= k.samplesPerStep
		k.dispatchStep()
	}
}

func (k *Kernel) dispatchStep() {
	mp := emotion.Map(k.params.Read())
	changed := k.paramsChanged(mp)

	k.mel.SetHurst(mp.MelodySmoothness)

	if mp.Steps != k.seq.Steps || mp.Pulses != k.seq.Pulses || mp.Rotation != k.seq.Rotation || mp.RhythmMode != k.seq.Mode {
		k.seq.Mode = mp.RhythmMode
		k.seq.Steps = mp.Steps
		k.seq.Pulses = mp.Pulses
		k.seq.Rotation = mp.Rotation
		k.seq.RegeneratePattern()
	}
	k.seq.Density = mp.VoicingDensity
	k.seq.Tension = mp.VoicingTension
	k.measuresPerChord = mp.MeasuresPerChord

	chordBoundary := k.measuresPerChord > 0 && k.stepCounter%(k.seq.Steps*k.measuresPerChord) == 0
	if chordBoundary {
		if mp.HarmonyMode == harmony.ModeBasic {
			k.basicChord = k.basic.NextChord(0, mp.VoicingTension)
		} else {
			k.driver.NextChord(mp.VoicingTension, 0, k.rng)
		}
	}

	trig := k.seq.Tick()

	expiring := k.expireNotes()

	// Canonical within-tick order (spec §4.6): NoteOff for expiring notes,
	// then UpdateMusicalParams if anything changed, then NoteOn.
	for _, n := range expiring {
		k.events.Push(event.NoteOff{ID: n.id, Note: n.note, Channel: n.channel})
	}

	if changed {
		k.events.Push(event.UpdateMusicalParams{Params: mp})
	}

	if trig.Kick {
		k.emitDrum(channelBass, 36, trig.Velocity, 1)
	}
	if trig.Snare {
		k.emitDrum(channelSnare, 38, trig.Velocity, 1)
	}
	if trig.Hat {
		k.emitDrum(channelHat, 42, trig.Velocity, 1)
	}

	if trig.Melody {
		chord := k.currentChord(mp.HarmonyMode)
		scale := k.currentScale(mp.HarmonyMode, mp.VoicingTension)
		chordTones := chord.PitchClasses()
		melCtx := melody.Context{ChordTones: chordTones, Scale: scale, IsStrongBeat: k.stepCounter%4 == 0}
		k.mel.Next(melCtx, k.rng)
		melodyMIDI := k.mel.CurrentMIDI(melCtx)

		vCtx := voicing.Context{
			ChordRootMIDI: int(chord.Root) + 48,
			ChordType:     chord.Type,
			LCCScale:      scale,
			Tension:       mp.VoicingTension,
			Density:       mp.VoicingDensity,
			CurrentStep:   k.stepCounter,
			TotalSteps:    k.seq.Steps,
		}
		k.voicer.OnStep(vCtx)
		if k.voicer.ShouldVoice(vCtx) {
			velocity := int(trig.Velocity * 127)
			for _, vn := range k.voicer.ProcessNote(melodyMIDI, velocity, vCtx) {
				k.emitPitched(channelLead, vn.MIDI, vn.Velocity, vn.DurationSteps)
			}
		}
	}

	if bpmChanged := mp.BPM != k.bpm; bpmChanged {
		k.bpm = mp.BPM
		k.samplesPerStep = samplesPerStep(mp.BPM, k.sampleRate)
		k.events.Push(event.TimingUpdate{SamplesPerStep: k.samplesPerStep})
	}

	k.lastParams = mp
	k.haveLastParams = true
	k.stepCounter++
}

// paramsChanged reports whether any scalar field relevant to downstream
// consumers changed since the last dispatched step. MusicalParams carries
// map fields (not comparable with ==), so this checks the fields that
// matter for backend re-configuration.
func (k *Kernel) paramsChanged(mp emotion.MusicalParams) bool {
	if !k.haveLastParams {
		return true
	}
	p := k.lastParams
	return mp.BPM != p.BPM || mp.Steps != p.Steps || mp.Pulses != p.Pulses || mp.Rotation != p.Rotation ||
		mp.HarmonyMode != p.HarmonyMode || mp.HarmonyStrategyHint != p.HarmonyStrategyHint || mp.MeasuresPerChord != p.MeasuresPerChord ||
		mp.MelodyOctave != p.MelodyOctave || mp.VoicingDensity != p.VoicingDensity || mp.VoicingTension != p.VoicingTension ||
		mp.MelodySmoothness != p.MelodySmoothness
}

func (k *Kernel) emitDrum(channel, note int, velocity float32, durationSteps int) {
	k.emitPitched(channel, note, int(velocity*127), durationSteps)
}

func (k *Kernel) emitPitched(channel, note, velocity, durationSteps int) {
	id := k.nextID
	k.nextID++
	k.events.Push(event.NoteOn{ID: id, Note: note, Velocity: velocity, Channel: channel})
	k.live = append(k.live, liveNote{id: id, note: note, channel: channel, stepsRemaining: durationSteps})
}

// expireNotes decrements every live note's remaining duration and removes
// (returning) the ones reaching zero this step.
func (k *Kernel) expireNotes() []liveNote {
	var expired []liveNote
	remaining := k.live[:0]
	for _, n := range k.live {
		n.stepsRemaining--
		if n.stepsRemaining <= 0 {
			expired = append(expired, n)
		} else {
			remaining = append(remaining, n)
		}
	}
	k.live = remaining
	return expired
}

// currentChord returns the chord the active harmony mode last produced.
func (k *Kernel) currentChord(mode harmony.Mode) pitch.Chord {
	if mode == harmony.ModeBasic {
		return k.basicChord
	}
	return k.driver.CurrentChord()
}

// currentScale returns the melodic filter over the current chord. The
// basic progression has no LCC strategy state of its own, so its scale is
// derived the same way Driver.CurrentScale derives one: parent Lydian of
// the current chord, leveled by tension.
func (k *Kernel) currentScale(mode harmony.Mode, tension float64) []pitch.PitchClass {
	if mode == harmony.ModeBasic {
		parent := lcc.ParentLydian(k.basicChord)
		level := lcc.LevelForTension(tension)
		return lcc.Scale(parent, level)
	}
	return k.driver.CurrentScale(tension)
}

// StepCounter returns the number of steps dispatched since construction.
func (k *Kernel) StepCounter() int { return k.stepCounter }

// BPM returns the tempo currently driving the step clock.
func (k *Kernel) BPM() float64 { return k.bpm }
