package semantic

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bascanada/harmonium-sub001/internal/emotion"
)

func TestAnalyzeEmptyTagsReturnsBaseUnchanged(t *testing.T) {
	e := New()
	base := emotion.EngineParams{Arousal: 0.4, Valence: 0.1, Tension: 0.2}
	got := e.Analyze(nil, base)
	assert.Equal(t, base.Arousal, got.Arousal)
	assert.Equal(t, base.Valence, got.Valence)
	assert.Equal(t, base.Tension, got.Tension)
}

func TestAnalyzeUnknownTagContributesNothing(t *testing.T) {
	e := New()
	base := emotion.EngineParams{Arousal: 0.5, Valence: 0, Tension: 0.3}
	got := e.Analyze([]string{"zzz-not-a-word"}, base)
	assert.Equal(t, base.Arousal, got.Arousal)
	assert.Equal(t, base.Valence, got.Valence)
	assert.Equal(t, base.Tension, got.Tension)
}

func TestAnalyzeSumsMultipleTagDeltas(t *testing.T) {
	e := New()
	base := emotion.EngineParams{Arousal: 0, Valence: 0, Tension: 0}
	got := e.Analyze([]string{"monster", "dark"}, base)
	wantArousal := 0.3 + -0.1
	wantValence := -0.4 + -0.3
	wantTension := 0.5 + 0.2
	assert.InDelta(t, wantArousal, got.Arousal, 1e-12)
	assert.Equal(t, wantValence, got.Valence)
	assert.Equal(t, wantTension, got.Tension)
}

func TestAnalyzeClampsToValidRanges(t *testing.T) {
	e := New()
	base := emotion.EngineParams{Arousal: 0.9, Valence: 0.9, Tension: 0.9}
	got := e.Analyze([]string{"boss", "boss", "boss"}, base)
	assert.Equal(t, 1.0, got.Arousal, "arousal should clamp to 1")
	assert.Equal(t, 1.0, got.Tension, "tension should clamp to 1")

	neg := emotion.EngineParams{Arousal: 0, Valence: -0.9, Tension: 0}
	got2 := e.Analyze([]string{"danger", "danger", "danger"}, neg)
	assert.Equal(t, -1.0, got2.Valence, "valence should clamp to -1")
}
