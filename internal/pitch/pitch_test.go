package pitch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPitchClasses(t *testing.T) {
	cMaj := New(0, Major)
	assert.Equal(t, []PitchClass{0, 4, 7}, cMaj.PitchClasses())
	aMin := New(9, Minor)
	assert.Equal(t, []PitchClass{9, 0, 4}, aMin.PitchClasses())
	g7 := New(7, Dominant7)
	assert.Equal(t, []PitchClass{7, 11, 2, 5}, g7.PitchClasses())
}

func TestChordName(t *testing.T) {
	cases := []struct {
		c    Chord
		want string
	}{
		{New(0, Major), "C"},
		{New(0, Minor), "Cm"},
		{New(1, Dominant7), "C#7"},
		{New(4, Minor7), "Em7"},
		{New(0, Major).WithBass(7), "C/G"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.c.Name())
	}
}

func TestVoiceLeadingDistance(t *testing.T) {
	cMaj := New(0, Major)
	aMin := New(9, Minor)
	assert.Equal(t, 2, VoiceLeadingDistance(cMaj, aMin), "C->Am distance")
	cMin := New(0, Minor)
	assert.Equal(t, 1, VoiceLeadingDistance(cMaj, cMin), "C->Cm distance")
}

func TestSymmetricAndAmbiguous(t *testing.T) {
	assert.True(t, Augmented.IsSymmetric())
	assert.True(t, Diminished7.IsSymmetric())
	assert.False(t, Major.IsSymmetric())
	assert.False(t, Minor.IsSymmetric())
	assert.True(t, Sus4.IsAmbiguous())
	assert.True(t, Augmented.IsAmbiguous())
	assert.True(t, Diminished7.IsAmbiguous())
	assert.False(t, Major.IsAmbiguous())
}

func TestExtendedQualities(t *testing.T) {
	// Add9 pitch classes must include the major 9th (interval 14 % 12 = 2).
	add9 := New(0, Add9)
	assert.Equal(t, []PitchClass{0, 4, 7, 2}, add9.PitchClasses())
	assert.True(t, Major6.IsMajor())
	assert.True(t, Minor6.IsMinor())
	assert.True(t, MinorMajor7.IsMinor())
}
