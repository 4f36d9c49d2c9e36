package synthesis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuadrantWeightsSumToOne(t *testing.T) {
	for _, v := range []float64{-1, -0.5, 0, 0.5, 1} {
		for _, a := range []float64{0, 0.25, 0.5, 0.75, 1} {
			wc, wj, ws, wa := quadrantWeights(v, a)
			sum := wc + wj + ws + wa
			assert.InDeltaf(t, 1.0, sum, 0.0001, "weights(%v,%v) sum", v, a)
		}
	}
}

func TestQuadrantWeightsAtCorners(t *testing.T) {
	wc, wj, ws, wa := quadrantWeights(1, 0)
	assert.GreaterOrEqualf(t, wc, 0.999, "corner (valence=1,arousal=0) should be pure calm, got %v %v %v %v", wc, wj, ws, wa)
	assert.LessOrEqual(t, wj, 0.001)
	assert.LessOrEqual(t, ws, 0.001)
	assert.LessOrEqual(t, wa, 0.001)

	_, wj, _, _ = quadrantWeights(1, 1)
	assert.GreaterOrEqual(t, wj, 0.999, "corner (valence=1,arousal=1) should be pure joy")

	_, _, ws, _ = quadrantWeights(-1, 0)
	assert.GreaterOrEqual(t, ws, 0.999, "corner (valence=-1,arousal=0) should be pure sadness")

	_, _, _, wa = quadrantWeights(-1, 1)
	assert.GreaterOrEqual(t, wa, 0.999, "corner (valence=-1,arousal=1) should be pure anger")
}

func TestMorphCacheReturnsStableResultForTinyDelta(t *testing.T) {
	m := NewMorpher(DefaultBank())
	first := m.Morph(RoleLead, 0.2, 0.3)
	second := m.Morph(RoleLead, 0.205, 0.304) // within the 0.01 cache threshold
	assert.Equal(t, first, second, "morph within cache threshold should return identical result")
}

func TestMorphRecomputesBeyondCacheThreshold(t *testing.T) {
	m := NewMorpher(DefaultBank())
	first := m.Morph(RoleLead, -1, 0)
	second := m.Morph(RoleLead, 1, 1)
	assert.NotEqual(t, first, second, "morph across the full unit square should differ")
}

func TestModulateClampsDetuneAndResonance(t *testing.T) {
	p := DefaultBank()[RoleLead].Calm
	out := Modulate(p, 1.0, 1.0)
	assert.GreaterOrEqual(t, out.Osc.Detune, 0.0)
	assert.LessOrEqual(t, out.Osc.Detune, 1.0)
	assert.GreaterOrEqual(t, out.Filter.Resonance, 0.0)
	assert.LessOrEqual(t, out.Filter.Resonance, 0.95)
}

func TestModulateAttackReleaseNeverZero(t *testing.T) {
	p := DefaultBank()[RoleLead].Calm
	out := Modulate(p, 0.5, 1.0)
	assert.Greater(t, out.Envelope.AttackSec, 0.0, "attack should stay positive at max density")
	assert.Greater(t, out.Envelope.ReleaseSec, 0.0, "release should stay positive at max density")
}

func TestLoadBankRejectsOutOfRangeResonance(t *testing.T) {
	doc := []byte(`
[bass.calm.filter]
resonance = 1.5
`)
	_, err := LoadBank(doc)
	assert.Error(t, err, "expected validation error for resonance > 1")
}
