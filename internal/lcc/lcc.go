// Package lcc implements George Russell's Lydian Chromatic Concept: a
// 12-level ladder of "tonal gravity" used as the global scale filter every
// harmonic strategy and the melody generator draw from.
package lcc

import (
	"math"

	"github.com/bascanada/harmonium-sub001/internal/pitch"
)

// Level is one of the twelve LCC gravity levels; 1 (Lydian) is the most
// consonant ("ingoing"), 12 (Chromatic) the most dissonant ("outgoing").
type Level int

const (
	Lydian Level = 1 + iota
	LydianAugmented
	LydianDiminished
	LydianFlatSeventh
	AuxiliaryAugmented
	AuxiliaryDiminishedBlues
	LydianAugmentedFlatSeventh
	AuxiliaryDiminished
	AuxiliaryAugmentedBlues
	MajorPentatonic
	JapaneseIn
	Chromatic
)

var levelNames = map[Level]string{
	Lydian:                     "Lydian",
	LydianAugmented:            "Lydian Augmented",
	LydianDiminished:           "Lydian Diminished",
	LydianFlatSeventh:          "Lydian b7",
	AuxiliaryAugmented:         "Aux. Augmented",
	AuxiliaryDiminishedBlues:   "Aux. Dim. Blues",
	LydianAugmentedFlatSeventh: "Lydian Aug. b7",
	AuxiliaryDiminished:        "Aux. Diminished",
	AuxiliaryAugmentedBlues:    "Aux. Aug. Blues",
	MajorPentatonic:            "Major Pentatonic",
	JapaneseIn:                 "Japanese In",
	Chromatic:                  "Chromatic",
}

// Name returns the scale's display name.
func (l Level) Name() string { return levelNames[l] }

const padding = 255

// scaleIntervals[level-1] holds up to 8 semitone offsets from the parent
// Lydian tonic; padding marks unused slots for scales shorter than 8 notes.
// Chromatic (level 12) is handled specially in Scale since it has 12 notes.
var scaleIntervals = [12][8]uint8{
	{0, 2, 4, 6, 7, 9, 11, padding},  // Lydian
	{0, 2, 4, 6, 8, 9, 11, padding},  // Lydian Augmented
	{0, 2, 3, 6, 7, 9, 11, padding},  // Lydian Diminished
	{0, 2, 4, 6, 7, 9, 10, padding},  // Lydian b7
	{0, 2, 4, 6, 8, 10, padding, padding}, // Auxiliary Augmented (whole tone)
	{0, 1, 3, 4, 6, 7, 9, 10},        // Auxiliary Diminished Blues
	{0, 2, 4, 6, 8, 9, 10, padding},  // Lydian Augmented b7
	{0, 1, 3, 4, 6, 7, 9, 10},        // Auxiliary Diminished (half-whole)
	{0, 2, 3, 5, 6, 8, 9, 11},        // Auxiliary Augmented Blues
	{0, 2, 4, 7, 9, padding, padding, padding}, // Major Pentatonic
	{0, 1, 5, 7, 8, padding, padding, padding}, // Japanese In
	{0, 1, 2, 3, 4, 5, 6, 7},         // Chromatic (Scale() completes it)
}

var scaleLengths = [12]int{7, 7, 7, 7, 6, 8, 7, 8, 8, 5, 5, 12}

// ParentLydian computes the parent Lydian tonic for a chord: the
// pitch class whose Lydian scale most naturally contains the chord.
//
// For minor chords the convention is "a minor third below the root"
// (root+9 mod 12, so A minor -> F#) — a documented theoretical
// simplification rather than the traditional LCC derivation, carried over
// unchanged from the source this module is grounded on.
func ParentLydian(c pitch.Chord) pitch.PitchClass {
	switch c.Type {
	case pitch.Major, pitch.Major7, pitch.Major6, pitch.Add9,
		pitch.Dominant7, pitch.Dominant7Sus4,
		pitch.Augmented, pitch.Augmented7,
		pitch.Sus2, pitch.Sus4:
		return c.Root
	case pitch.Minor, pitch.Minor7, pitch.MinorMajor7, pitch.Minor6:
		return pitch.PitchClass((uint8(c.Root) + 9) % 12)
	case pitch.HalfDiminished, pitch.Diminished, pitch.Diminished7:
		return pitch.PitchClass((uint8(c.Root) + 1) % 12)
	}
	return c.Root
}

// LevelForTension maps tension linearly onto the 12 levels: 0.0 -> Lydian,
// 1.0 -> Chromatic.
func LevelForTension(tension float64) Level {
	if tension < 0 {
		tension = 0
	}
	if tension > 1 {
		tension = 1
	}
	n := 1 + int(math.Round(tension*11.0))
	if n < 1 {
		n = 1
	}
	if n > 12 {
		n = 12
	}
	return Level(n)
}

// Scale returns the pitch classes of the scale for a given parent tonic
// and LCC level.
func Scale(parent pitch.PitchClass, level Level) []pitch.PitchClass {
	if level == Chromatic {
		out := make([]pitch.PitchClass, 12)
		for i := 0; i < 12; i++ {
			out[i] = pitch.PitchClass((uint8(parent) + uint8(i)) % 12)
		}
		return out
	}
	idx := int(level) - 1
	intervals := scaleIntervals[idx]
	n := scaleLengths[idx]
	out := make([]pitch.PitchClass, 0, n)
	for i := 0; i < n; i++ {
		iv := intervals[i]
		if iv == padding {
			continue
		}
		out = append(out, pitch.PitchClass((uint8(parent)+iv)%12))
	}
	return out
}

func contains(scale []pitch.PitchClass, note pitch.PitchClass) bool {
	note = note.Norm()
	for _, s := range scale {
		if s == note {
			return true
		}
	}
	return false
}

// IsValidNote reports whether note belongs to the active LCC scale for the
// given chord and tension.
func IsValidNote(note pitch.PitchClass, c pitch.Chord, tension float64) bool {
	parent := ParentLydian(c)
	level := LevelForTension(tension)
	return contains(Scale(parent, level), note)
}

// FilterNotes keeps only the notes valid in the current LCC context.
func FilterNotes(notes []pitch.PitchClass, c pitch.Chord, tension float64) []pitch.PitchClass {
	parent := ParentLydian(c)
	level := LevelForTension(tension)
	scale := Scale(parent, level)
	out := make([]pitch.PitchClass, 0, len(notes))
	for _, n := range notes {
		if contains(scale, n) {
			out = append(out, n)
		}
	}
	return out
}

// NoteWeight returns 1.0 for in-scale notes and a reduced (not forbidden)
// weight of 0.2 for out-of-scale "outgoing" notes.
func NoteWeight(note pitch.PitchClass, c pitch.Chord, tension float64) float64 {
	if IsValidNote(note, c, tension) {
		return 1.0
	}
	return 0.2
}

// SuggestLevelForTransition bands the LCC level to use during a chord
// transition by the voice-leading distance between the two chords: close
// transitions stay consonant, distant ones license more dissonant scales.
func SuggestLevelForTransition(from, to pitch.Chord) Level {
	d := pitch.VoiceLeadingDistance(from, to)
	switch {
	case d <= 1:
		return Lydian
	case d <= 3:
		return LydianAugmented
	case d <= 5:
		return LydianFlatSeventh
	case d <= 7:
		return AuxiliaryDiminished
	default:
		return Chromatic
	}
}
