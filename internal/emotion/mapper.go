// Package emotion implements the pure, stateless, deterministic
// translation from a low-dimensional affective state into the musical
// parameter bundle every downstream subsystem consumes.
package emotion

import (
	"math"

	"github.com/bascanada/harmonium-sub001/internal/harmony"
	"github.com/bascanada/harmonium-sub001/internal/rhythm"
)

// EngineParams is the affective input plus the passthrough bundle that
// rides alongside it unchanged to the audio engine.
type EngineParams struct {
	Arousal    float64
	Valence    float64
	Tension    float64
	Density    float64
	Smoothness float64

	Mode      rhythm.Mode
	PolySteps int // caller-provided for PerfectBalance, multiple of 4, 16..384

	HarmonyMode harmony.Mode

	BPMMin, BPMMax float64

	MixerGains     map[string]float64
	ChannelMutes   map[int]bool
	RecordingFlags map[string]bool
	ChannelRouting map[int]string
}

// MusicalParams is the mapper's output: everything the sequencer,
// harmonic driver, and melody generator need for the next musical step.
type MusicalParams struct {
	BPM float64

	RhythmMode rhythm.Mode
	Steps      int
	Pulses     int
	Rotation   int

	SecondarySteps    int
	SecondaryPulses   int
	SecondaryRotation int

	HarmonyMode         harmony.Mode
	HarmonyStrategyHint harmony.StrategyKind
	MeasuresPerChord    int

	MelodySmoothness float64
	MelodyOctave     int

	VoicingDensity float64
	VoicingTension float64

	MixerGains     map[string]float64
	ChannelMutes   map[int]bool
	RecordingFlags map[string]bool
	ChannelRouting map[int]string
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Map is the pure emotion-to-musical-parameter translation. It never
// fails: out-of-range inputs are clamped rather than rejected.
func Map(p EngineParams) MusicalParams {
	bpmMin, bpmMax := p.BPMMin, p.BPMMax
	if bpmMin == 0 && bpmMax == 0 {
		bpmMin, bpmMax = 70, 180
	}
	arousal := clampFloat(p.Arousal, 0, 1)
	tension := clampFloat(p.Tension, 0, 1)
	density := clampFloat(p.Density, 0, 1)

	bpm := bpmMin + arousal*(bpmMax-bpmMin)

	var steps int
	switch p.Mode {
	case rhythm.PerfectBalance:
		steps = p.PolySteps
		if steps <= 0 {
			steps = 16
		}
		steps = (steps / 4) * 4
		steps = clampInt(steps, 16, 384)
	default:
		steps = 16
	}

	pulses := clampInt(int(density*11)+1, 1, 16)
	if p.Mode == rhythm.PerfectBalance {
		pulses = clampInt(pulses, 1, steps)
	}

	maxRotation := 8
	if p.Mode == rhythm.PerfectBalance {
		maxRotation = steps / 2
	}
	rotation := int(tension * float64(maxRotation))

	secondarySteps := 12
	secondaryPulses := clampInt(int(density*8)+1, 1, 12)
	secondaryRotation := (8 - mod(rotation, 8)) % 8

	var strategyHint harmony.StrategyKind
	switch {
	case tension > 0.7:
		strategyHint = harmony.KindNeoRiemannian
	case tension < 0.5:
		strategyHint = harmony.KindSteedman
	default:
		strategyHint = harmony.KindParsimonious
	}

	measuresPerChord := 2
	if tension > 0.6 {
		measuresPerChord = 1
	}

	// melody_octave = 4 + floor(arousal * 0.5); arousal in [0,1] so this is
	// always 4 (documented bug in the source spec — implemented literally,
	// see the Open Question decision recorded for this formula).
	melodyOctave := 4 + int(math.Floor(arousal*0.5))

	return MusicalParams{
		BPM:                 bpm,
		RhythmMode:          p.Mode,
		Steps:               steps,
		Pulses:              pulses,
		Rotation:            rotation,
		SecondarySteps:      secondarySteps,
		SecondaryPulses:     secondaryPulses,
		SecondaryRotation:   secondaryRotation,
		HarmonyMode:         p.HarmonyMode,
		HarmonyStrategyHint: strategyHint,
		MeasuresPerChord:    measuresPerChord,
		MelodySmoothness:    clampFloat(p.Smoothness, 0, 1),
		MelodyOctave:        melodyOctave,
		VoicingDensity:      density,
		VoicingTension:      tension,
		MixerGains:          p.MixerGains,
		ChannelMutes:        p.ChannelMutes,
		RecordingFlags:      p.RecordingFlags,
		ChannelRouting:      p.ChannelRouting,
	}
}

func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
