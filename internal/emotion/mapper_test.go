package emotion

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bascanada/harmonium-sub001/internal/harmony"
	"github.com/bascanada/harmonium-sub001/internal/rhythm"
)

func TestBPMMonotoneAndBounded(t *testing.T) {
	prev := -1.0
	for a := 0.0; a <= 1.0; a += 0.1 {
		out := Map(EngineParams{Arousal: a, Mode: rhythm.Euclidean})
		assert.GreaterOrEqualf(t, out.BPM, 70.0, "bpm(%v) out of [70,180]", a)
		assert.LessOrEqualf(t, out.BPM, 180.0, "bpm(%v) out of [70,180]", a)
		assert.GreaterOrEqualf(t, out.BPM, prev, "bpm not monotone: arousal=%v gave %v < previous %v", a, out.BPM, prev)
		prev = out.BPM
	}
}

func TestScenarioS1LowArousalAmbient(t *testing.T) {
	out := Map(EngineParams{
		Arousal: 0.1, Valence: 0.5, Tension: 0.2, Density: 0.3, Smoothness: 0.9,
		Mode: rhythm.Euclidean,
	})
	assert.InDelta(t, 81.0, out.BPM, 1.0, "S1 bpm")
	assert.Equal(t, 4, out.Pulses, "S1 pulses")
	assert.Equal(t, harmony.KindSteedman, out.HarmonyStrategyHint, "S1 strategy hint")
}

func TestScenarioS2HighArousalEnergetic(t *testing.T) {
	out := Map(EngineParams{
		Arousal: 0.9, Valence: 0.6, Tension: 0.5, Density: 0.8, Smoothness: 0.5,
		Mode: rhythm.ClassicGroove,
	})
	assert.InDelta(t, 169.0, out.BPM, 1.0, "S2 bpm")
	assert.Equal(t, harmony.KindParsimonious, out.HarmonyStrategyHint, "S2 strategy hint")
	assert.Equal(t, 2, out.MeasuresPerChord, "S2 measures per chord")
}

func TestScenarioS3DarkTense(t *testing.T) {
	out := Map(EngineParams{
		Arousal: 0.5, Valence: -0.8, Tension: 0.9, Density: 0.6, Smoothness: 0.5,
		Mode: rhythm.PerfectBalance, PolySteps: 48,
	})
	assert.Equal(t, harmony.KindNeoRiemannian, out.HarmonyStrategyHint, "S3 strategy hint")
	assert.Equal(t, 1, out.MeasuresPerChord, "S3 measures per chord")
	assert.Equal(t, 48, out.Steps, "S3 steps")
}

func TestMelodyOctaveIsAlwaysFour(t *testing.T) {
	// Documented as a literal implementation of a formula that can never
	// exceed 4 for arousal in [0,1].
	for a := 0.0; a <= 1.0; a += 0.25 {
		out := Map(EngineParams{Arousal: a, Mode: rhythm.Euclidean})
		assert.Equalf(t, 4, out.MelodyOctave, "melody octave at arousal=%v", a)
	}
}

func TestIdempotence(t *testing.T) {
	p := EngineParams{Arousal: 0.4, Valence: 0.1, Tension: 0.55, Density: 0.5, Smoothness: 0.6, Mode: rhythm.Euclidean}
	a := Map(p)
	b := Map(p)
	assert.Equal(t, a.BPM, b.BPM)
	assert.Equal(t, a.Steps, b.Steps)
	assert.Equal(t, a.Pulses, b.Pulses)
	assert.Equal(t, a.Rotation, b.Rotation)
	assert.Equal(t, a.HarmonyStrategyHint, b.HarmonyStrategyHint)
	assert.Equal(t, a.MeasuresPerChord, b.MeasuresPerChord)
	assert.Equal(t, a.MelodyOctave, b.MelodyOctave)
}

func TestPulsesClampToRange(t *testing.T) {
	out := Map(EngineParams{Density: 1.0, Mode: rhythm.Euclidean})
	assert.GreaterOrEqual(t, out.Pulses, 1)
	assert.LessOrEqual(t, out.Pulses, 16)
}
