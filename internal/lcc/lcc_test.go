package lcc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bascanada/harmonium-sub001/internal/pitch"
)

func TestParentLydianMajor(t *testing.T) {
	cMaj := pitch.New(0, pitch.Major)
	assert.Equal(t, pitch.PitchClass(0), ParentLydian(cMaj), "C major parent lydian")
	gMaj := pitch.New(7, pitch.Major)
	assert.Equal(t, pitch.PitchClass(7), ParentLydian(gMaj), "G major parent lydian")
}

func TestParentLydianMinor(t *testing.T) {
	aMin := pitch.New(9, pitch.Minor)
	assert.Equal(t, pitch.PitchClass(6), ParentLydian(aMin), "A minor parent lydian (F#)")
	cMin := pitch.New(0, pitch.Minor)
	assert.Equal(t, pitch.PitchClass(9), ParentLydian(cMin), "C minor parent lydian (A)")
}

func TestScaleLydian(t *testing.T) {
	got := Scale(0, Lydian)
	want := []pitch.PitchClass{0, 2, 4, 6, 7, 9, 11}
	assert.Equal(t, want, got)
}

func TestScaleWholeTone(t *testing.T) {
	got := Scale(0, AuxiliaryAugmented)
	want := []pitch.PitchClass{0, 2, 4, 6, 8, 10}
	assert.Equal(t, want, got)
}

func TestScaleChromatic(t *testing.T) {
	got := Scale(0, Chromatic)
	require.Len(t, got, 12)
}

func TestLevelForTension(t *testing.T) {
	assert.Equal(t, Lydian, LevelForTension(0.0))
	assert.Equal(t, Chromatic, LevelForTension(1.0))
	assert.Equal(t, LydianAugmentedFlatSeventh, LevelForTension(0.5), "level 7")
}

func TestIsValidNote(t *testing.T) {
	cMaj := pitch.New(0, pitch.Major)
	assert.True(t, IsValidNote(6, cMaj, 0.0), "F# should be valid in C Lydian at tension 0")
	assert.False(t, IsValidNote(5, cMaj, 0.0), "F should not be valid in C Lydian at tension 0")
	assert.True(t, IsValidNote(5, cMaj, 1.0), "F should be valid in chromatic scale at tension 1.0")
}
