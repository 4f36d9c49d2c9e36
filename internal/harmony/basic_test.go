package harmony

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bascanada/harmonium-sub001/internal/pitch"
)

func TestPaletteMatchesQuadrantBoundaries(t *testing.T) {
	require.Len(t, palette(0.7, 0.8), 4, "happy/energetic quadrant should have 4 steps")
	assert.Equal(t, pitch.Major, palette(0.7, 0.8)[0].quality, "happy/energetic first step")
	assert.Equal(t, pitch.Dominant7, palette(0.7, 0.8)[1].quality, "happy/energetic second step")
	require.Len(t, palette(-0.6, 0.3), 4, "sad/calm quadrant should have 4 steps")
	assert.Equal(t, pitch.Minor, palette(-0.6, 0.3)[0].quality, "sad/calm first step")
	require.Len(t, palette(0, 0.2), 2, "neutral ambient quadrant should have 2 steps (drone)")
}

func TestBasicProgressionCyclesThroughPalette(t *testing.T) {
	b := NewBasicProgression(pitch.PitchClass(0))
	first := b.NextChord(0.7, 0.8)
	require.Equal(t, pitch.PitchClass(0), first.Root, "first chord root")
	require.Equal(t, pitch.Major, first.Type, "first chord type")
	second := b.NextChord(0.7, 0.8)
	assert.Equal(t, pitch.PitchClass(7), second.Root, "second chord root")
	assert.Equal(t, pitch.Dominant7, second.Type, "second chord type")
}

func TestProgressionNameMatchesQuadrant(t *testing.T) {
	assert.Equal(t, "Pop Energetic (I-V-vi-IV)", ProgressionName(0.7, 0.8))
	assert.Equal(t, "Ambient Drone (i-iv)", ProgressionName(0, 0.2))
}
