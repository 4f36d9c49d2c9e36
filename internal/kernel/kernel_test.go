package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bascanada/harmonium-sub001/internal/emotion"
	"github.com/bascanada/harmonium-sub001/internal/event"
	"github.com/bascanada/harmonium-sub001/internal/harmony"
	"github.com/bascanada/harmonium-sub001/internal/pitch"
	"github.com/bascanada/harmonium-sub001/internal/rhythm"
)

func newTestKernel() *Kernel {
	return New(44100, 0, 1, emotion.EngineParams{
		Arousal: 0.4, Valence: 0.2, Tension: 0.3, Density: 0.5, Smoothness: 0.6,
		Mode: rhythm.Euclidean,
	})
}

func TestNewKernelSeedsTimingAndParamsEvents(t *testing.T) {
	k := newTestKernel()
	first, ok := k.Events().Pop()
	require.True(t, ok, "expected a seed event")
	assert.Equal(t, event.KindTimingUpdate, first.Kind())
	second, ok := k.Events().Pop()
	require.True(t, ok)
	assert.Equal(t, event.KindUpdateMusicalParams, second.Kind())
}

func TestAdvanceProducesNoteOnEvents(t *testing.T) {
	k := newTestKernel()
	k.Events().DrainAll(func(event.AudioEvent) {}) // clear seed events

	// Enough wall time to cross many step boundaries at any reasonable bpm.
	k.Advance(5.0)

	sawNoteOn := false
	k.Events().DrainAll(func(e event.AudioEvent) {
		if e.Kind() == event.KindNoteOn {
			sawNoteOn = true
		}
	})
	assert.True(t, sawNoteOn, "expected at least one NoteOn after 5 seconds of advance")
}

func TestNoteOffPrecedesLaterNoteOnForSameID(t *testing.T) {
	k := newTestKernel()
	k.Events().DrainAll(func(event.AudioEvent) {})
	k.Advance(3.0)

	liveIDs := map[uint64]bool{}
	var order []event.AudioEvent
	k.Events().DrainAll(func(e event.AudioEvent) { order = append(order, e) })

	for _, e := range order {
		switch v := e.(type) {
		case event.NoteOn:
			require.False(t, liveIDs[v.ID], "NoteOn for id %d fired while already live", v.ID)
			liveIDs[v.ID] = true
		case event.NoteOff:
			delete(liveIDs, v.ID)
		}
	}
}

func TestStepCounterAdvancesMonotonically(t *testing.T) {
	k := newTestKernel()
	prev := k.StepCounter()
	k.Advance(2.0)
	assert.Greater(t, k.StepCounter(), prev)
}

func TestPushParamsChangesBPM(t *testing.T) {
	k := newTestKernel()
	initialBPM := k.BPM()
	k.PushParams(emotion.EngineParams{Arousal: 1.0, Mode: rhythm.Euclidean})
	k.Advance(2.0)
	assert.NotEqual(t, initialBPM, k.BPM(), "expected bpm to change after pushing a higher-arousal snapshot")
}

func TestChordKeyMatchesInitialKey(t *testing.T) {
	k := New(44100, pitch.PitchClass(4), 1, emotion.EngineParams{Mode: rhythm.Euclidean})
	assert.Equal(t, pitch.PitchClass(4), k.driver.CurrentChord().Root)
}

func TestBasicHarmonyModeAdvancesThroughBasicProgression(t *testing.T) {
	k := New(44100, pitch.PitchClass(0), 1, emotion.EngineParams{
		Arousal: 0.5, Valence: 0.7, Tension: 0.8, Density: 0.5, Smoothness: 0.5,
		Mode: rhythm.Euclidean, HarmonyMode: harmony.ModeBasic,
	})
	k.Events().DrainAll(func(event.AudioEvent) {})

	firstChord := k.currentChord(harmony.ModeBasic)
	k.Advance(20.0) // enough wall time to cross at least one chord boundary
	afterChord := k.currentChord(harmony.ModeBasic)

	changed := firstChord.Root != afterChord.Root || firstChord.Type != afterChord.Type
	assert.True(t, changed, "expected the basic progression to advance past its first chord over 20s")
}

func TestCurrentScaleDerivesFromBasicChordInBasicMode(t *testing.T) {
	k := New(44100, pitch.PitchClass(0), 1, emotion.EngineParams{
		Mode: rhythm.Euclidean, HarmonyMode: harmony.ModeBasic,
	})
	scale := k.currentScale(harmony.ModeBasic, 0.5)
	assert.NotEmpty(t, scale, "expected a non-empty LCC scale for the basic chord")
}

func TestDispatchStepAppliesMelodySmoothnessToGeneratorHurst(t *testing.T) {
	k := New(44100, pitch.PitchClass(0), 1, emotion.EngineParams{
		Mode: rhythm.Euclidean, Smoothness: 0.1,
	})
	k.Events().DrainAll(func(event.AudioEvent) {})
	k.Advance(0.25) // dispatch at least one step (~0.21s at 70 bpm) so SetHurst runs
	lowHurst := k.mel.Hurst()

	k.PushParams(emotion.EngineParams{Mode: rhythm.Euclidean, Smoothness: 0.95})
	k.Advance(0.25)
	highHurst := k.mel.Hurst()

	assert.Less(t, lowHurst, highHurst, "higher smoothness should raise the melody generator's Hurst factor")
}
