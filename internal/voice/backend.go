// Package voice is the synth backend: it consumes the AudioEvent stream
// and produces interleaved stereo f32 buffers, generalizing the teacher's
// "one engine, one timbre" internal/fm and internal/nesapu engines into
// role-based channels (spec §4.9: 0=bass, 1=lead, 2=snare, 3=hat, ≥4=poly).
//
// Each channel wraps a concrete voice engine behind the teacher's
// sequencer.VoiceEngine contract (NoteOn/NoteOff/RenderFrame/
// SetMasterGain/ActiveVoiceCount/LFO setters): fm.Engine drives pitched
// roles (bass/lead/poly), nesapu.Engine drives the two percussive roles,
// matching the teacher's own choice of a simple chip-style engine for
// drum-like material. A channel's engine is rebuilt (not hot-patched)
// whenever UpdateMusicalParams delivers a new morphed+modulated preset,
// since the wrapped engines bake their Params in at construction time —
// acceptable because this happens once per preset change, not per frame.
package voice

import (
	"math"

	"github.com/bascanada/harmonium-sub001/internal/effects"
	"github.com/bascanada/harmonium-sub001/internal/event"
	"github.com/bascanada/harmonium-sub001/internal/fm"
	"github.com/bascanada/harmonium-sub001/internal/nesapu"
	"github.com/bascanada/harmonium-sub001/internal/rtbuf"
	"github.com/bascanada/harmonium-sub001/internal/rtcheck"
	"github.com/bascanada/harmonium-sub001/internal/synthesis"
)

const (
	ChannelBass  = 0
	ChannelLead  = 1
	ChannelSnare = 2
	ChannelHat   = 3
	ChannelPoly  = 4 // first poly channel; ChannelPoly+n for additional voices
)

// voiceEngine is the teacher's sequencer.VoiceEngine contract, restated
// here so this package does not need to import internal/sequencer.
type voiceEngine interface {
	NoteOn(note int, velocity int, pan int, program int) int
	NoteOff(id int)
	RenderFrame() (float32, float32)
	SetMasterGain(gain float64)
	ActiveVoiceCount() int
}

// channel pairs one engine instance with the event-id-to-voice-id mapping
// the kernel's monotone ids need translating into the engine's own
// internal voice ids (NoteOff only accepts the id NoteOn returned).
type channel struct {
	engine     voiceEngine
	chorus     *effects.Chorus
	distortion *effects.Distortion
	pan        int
	voiceOf    map[uint64]int
}

func (c *channel) noteOn(eventID uint64, note, velocity int) {
	id := c.engine.NoteOn(note, velocity, c.pan, 0)
	c.voiceOf[eventID] = id
}

// Backend owns one channel per role and implements internal/audio's
// SampleSource interface (Process(dst []float32)) so it plugs directly
// into the existing StreamReader/Player plumbing.
type Backend struct {
	sampleRate int
	channels   map[int]*channel
	morpher    *synthesis.Morpher
	valence    float64
	arousal    float64
	tension    float64
	density    float64
	smoothness float64
	gains      map[string]float64
	mutes      map[int]bool
	events     *rtbuf.RingBuffer[event.AudioEvent]
	observer   func(event.AudioEvent)

	// Master bus: runs once after every channel is mixed, before the final
	// soft clip. masterEQ is rebuilt once and adjusted in place (its gains
	// are atomics, safe to touch from a control thread); masterDelay and
	// masterReverb are rebuilt on reloadPresets like each channel's chorus,
	// since neither effect exposes a setter for its wet mix.
	masterEQ     *effects.EQ5Band
	masterDelay  *effects.Delay
	masterReverb *effects.Reverb
	masterComp   *effects.Compressor
}

// SetEventObserver installs fn to be called with every event this backend
// drains, before the backend acts on it. internal/recorder uses this to
// tee the same event stream into its encoders without owning or racing
// the backend's event ring.
func (b *Backend) SetEventObserver(fn func(event.AudioEvent)) {
	b.observer = fn
}

// New builds a backend reading events from ring and rendering at
// sampleRate, with all five roles seeded from synthesis.DefaultBank.
func New(sampleRate int, ring *rtbuf.RingBuffer[event.AudioEvent]) *Backend {
	b := &Backend{
		sampleRate:   sampleRate,
		channels:     make(map[int]*channel),
		morpher:      synthesis.NewMorpher(synthesis.DefaultBank()),
		gains:        make(map[string]float64),
		mutes:        make(map[int]bool),
		events:       ring,
		masterEQ:     effects.NewEQ5Band(sampleRate),
		masterDelay:  buildMasterDelay(sampleRate, 0),
		masterReverb: buildMasterReverb(sampleRate, 0),
		masterComp:   effects.NewCompressor(sampleRate, -18, 3, 10, 80, 3),
	}
	b.channels[ChannelBass] = newChannel(sampleRate, synthesis.RoleBass, nil)
	b.channels[ChannelLead] = newChannel(sampleRate, synthesis.RoleLead, nil)
	b.channels[ChannelSnare] = newChannel(sampleRate, synthesis.RoleSnare, nil)
	b.channels[ChannelHat] = newChannel(sampleRate, synthesis.RoleHat, nil)
	b.channels[ChannelPoly] = newChannel(sampleRate, synthesis.RolePoly, nil)
	return b
}

func newChannel(sampleRate int, role synthesis.Role, preset *synthesis.SynthPreset) *channel {
	p := synthesis.DefaultBank()[role].Calm
	if preset != nil {
		p = *preset
	}
	return &channel{
		engine:     buildEngine(sampleRate, role, p),
		chorus:     buildChorus(sampleRate, p),
		distortion: buildDistortion(sampleRate, p),
		voiceOf:    make(map[uint64]int),
	}
}

// buildChorus wires the modulation layer's chorus-depth output (spec
// §4.8) into the teacher's internal/effects.Chorus as each channel's wet
// mix, the per-voice analogue of player.go's createEffect("chorus", ...)
// master-bus wiring.
func buildChorus(sampleRate int, p synthesis.SynthPreset) *effects.Chorus {
	return effects.NewChorus(sampleRate, 15, 0.3, 3, 1.5, float32(clamp01(p.Effects.ChorusDepth)))
}

// buildDistortion wires a preset's Effects.Drive into the teacher's
// waveshaping internal/effects.Distortion: 0 drive is near-unity
// (preGain 1, postGain 1, so the tanh stage barely colors the signal),
// 1 drive reaches the teacher's own "dist" default (preGain 4, postGain
// 0.5) used by angrier presets like synthesis.DefaultBank's anger voicing.
func buildDistortion(sampleRate int, p synthesis.SynthPreset) *effects.Distortion {
	drive := clamp01(p.Effects.Drive)
	preGain := 1 + drive*3
	postGain := 1 - drive*0.5
	return effects.NewDistortion(sampleRate, float32(preGain), float32(postGain), 8000)
}

// buildMasterDelay wires smoothness into the teacher's stereo echo: a high
// smoothness (legato, ambient material) earns a longer, wetter echo tail,
// a low smoothness (choppy, percussive material) is left nearly dry.
func buildMasterDelay(sampleRate int, smoothness float64) *effects.Delay {
	s := clamp01(smoothness)
	return effects.NewDelay(sampleRate, 180+220*s, float32(0.2+0.25*s), 0.3, float32(0.35*s))
}

// buildMasterReverb wires tension inversely into room size: relaxed, low
// tension material gets the most ambient space, taut high-tension material
// stays drier and closer.
func buildMasterReverb(sampleRate int, tension float64) *effects.Reverb {
	t := clamp01(tension)
	return effects.NewReverb(sampleRate, float32(0.3+0.4*(1-t)), 0.6, float32(0.15+0.25*(1-t)))
}

func buildEngine(sampleRate int, role synthesis.Role, p synthesis.SynthPreset) voiceEngine {
	switch role {
	case synthesis.RoleSnare, synthesis.RoleHat:
		return nesapu.New(sampleRate, presetToNesAPU(p))
	default:
		return fm.New(sampleRate, presetToFM(p))
	}
}

func presetToFM(p synthesis.SynthPreset) fm.Params {
	params := fm.DefaultParams()
	params.CarrierMul = p.Osc.CarrierMul
	params.ModMul = p.Osc.ModMul
	params.ModIndex = p.Osc.ModIndex
	params.AttackSec = p.Envelope.AttackSec
	params.DecaySec = p.Envelope.DecaySec
	params.SustainLvl = p.Envelope.SustainLvl
	params.ReleaseSec = p.Envelope.ReleaseSec
	params.MasterGain = p.Output.MasterGain
	params.DefaultPan = p.Output.Pan
	if p.Filter.CutoffHz > 0 {
		params.LPFCutoff = p.Filter.CutoffHz
	}
	return params
}

func presetToNesAPU(p synthesis.SynthPreset) nesapu.Params {
	params := nesapu.DefaultParams()
	params.MasterGain = p.Output.MasterGain
	params.NoiseGain = clamp01(p.Effects.NoiseLevel)
	if p.Filter.CutoffHz > 0 {
		params.LPFCutoff = p.Filter.CutoffHz
	}
	return params
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// roleForChannel maps an AudioEvent channel number to the role that
// determines which engine family drives it, per spec §4.9.
func roleForChannel(ch int) synthesis.Role {
	switch ch {
	case ChannelBass:
		return synthesis.RoleBass
	case ChannelLead:
		return synthesis.RoleLead
	case ChannelSnare:
		return synthesis.RoleSnare
	case ChannelHat:
		return synthesis.RoleHat
	default:
		return synthesis.RolePoly
	}
}

func (b *Backend) channelFor(ch int) *channel {
	c, ok := b.channels[ch]
	if !ok {
		c = newChannel(b.sampleRate, roleForChannel(ch), nil)
		b.channels[ch] = c
	}
	return c
}

// handleEvent applies one AudioEvent's effect on the backend's channel
// engines. Called once per drained event at the start of each Process
// call, never mid-buffer.
func (b *Backend) handleEvent(e event.AudioEvent) {
	if b.observer != nil {
		b.observer(e)
	}
	switch v := e.(type) {
	case event.NoteOn:
		if b.mutes[v.Channel] {
			return
		}
		c := b.channelFor(v.Channel)
		c.noteOn(v.ID, v.Note, v.Velocity)
	case event.NoteOff:
		c := b.channelFor(v.Channel)
		if voiceID, ok := c.voiceOf[v.ID]; ok {
			c.engine.NoteOff(voiceID)
			delete(c.voiceOf, v.ID)
		}
	case event.AllNotesOff:
		c := b.channelFor(v.Channel)
		for id, voiceID := range c.voiceOf {
			c.engine.NoteOff(voiceID)
			delete(c.voiceOf, id)
		}
	case event.UpdateMusicalParams:
		b.reloadPresets()
	case event.SetMixerGains:
		b.gains = v.Gains
	default:
		// ControlChange, recording lifecycle, font/preset loads: not this
		// backend's concern (recording lifecycle belongs to
		// internal/recorder's decorator; font/preset loads are a future
		// soundfont/Odin2 backend's concern).
	}
}

// reloadPresets re-morphs and re-modulates every channel's preset and
// rebuilds its engine. Runs once per UpdateMusicalParams event, which the
// kernel only emits when something actually changed.
func (b *Backend) reloadPresets() {
	for ch, c := range b.channels {
		role := roleForChannel(ch)
		morphed := b.morpher.Morph(role, b.valence, b.arousal)
		modulated := synthesis.Modulate(morphed, b.tension, b.density)
		c.engine = buildEngine(b.sampleRate, role, modulated)
		c.chorus = buildChorus(b.sampleRate, modulated)
		c.distortion = buildDistortion(b.sampleRate, modulated)
		c.voiceOf = make(map[uint64]int)
	}
	b.masterDelay = buildMasterDelay(b.sampleRate, b.smoothness)
	b.masterReverb = buildMasterReverb(b.sampleRate, b.tension)
	// Density brightens the top two bands and thins the bottom one.
	d := clamp01(b.density)
	b.masterEQ.SetGain(0, float32(1-0.2*d))
	b.masterEQ.SetGain(3, float32(1+0.3*d))
	b.masterEQ.SetGain(4, float32(1+0.4*d))
}

// SetAffect updates the affective coordinates used for the next preset
// reload; the kernel's emotion mapper is the source of truth, this just
// keeps the backend in sync for UpdateMusicalParams handling.
func (b *Backend) SetAffect(valence, arousal, tension, density, smoothness float64) {
	b.valence, b.arousal, b.tension, b.density, b.smoothness = valence, arousal, tension, density, smoothness
}

// Process renders frames into dst (interleaved stereo f32), draining all
// pending events first. Event handling (including a preset reload, which
// allocates a fresh engine) runs before the render loop and is outside
// the rtcheck guard; only the per-frame RenderFrame loop below is marked
// as the real-time context, matching the "drains all pending events at
// the start of each buffer" contract in spec §5 rather than claiming the
// whole buffer callback is allocation-free.
func (b *Backend) Process(dst []float32) {
	b.events.DrainAll(b.handleEvent)

	rtcheck.Enter()
	defer rtcheck.Exit()

	frames := len(dst) / 2
	for f := 0; f < frames; f++ {
		var l, r float64
		for ch, c := range b.channels {
			if b.mutes[ch] {
				continue
			}
			cl, cr := c.engine.RenderFrame()
			if c.distortion != nil {
				cl, cr = c.distortion.Process(cl, cr)
			}
			if c.chorus != nil {
				cl, cr = c.chorus.Process(cl, cr)
			}
			gain := 1.0
			if g, ok := b.gains[roleName(ch)]; ok {
				gain = g
			}
			l += float64(cl) * gain
			r += float64(cr) * gain
		}
		ml, mr := float32(l), float32(r)
		ml, mr = b.masterDelay.Process(ml, mr)
		ml, mr = b.masterReverb.Process(ml, mr)
		ml, mr = b.masterEQ.Process(ml, mr)
		ml, mr = b.masterComp.Process(ml, mr)
		dst[f*2] = float32(math.Tanh(float64(ml)))
		dst[f*2+1] = float32(math.Tanh(float64(mr)))
	}
}

func roleName(ch int) string {
	switch ch {
	case ChannelBass:
		return "bass"
	case ChannelLead:
		return "lead"
	case ChannelSnare:
		return "snare"
	case ChannelHat:
		return "hat"
	default:
		return "poly"
	}
}

// Finished always reports false: the engine is a generative, continuous
// source with no natural end, matching spec §1's "no human-authored score
// playback" framing — there is no score to reach the end of.
func (b *Backend) Finished() bool { return false }
