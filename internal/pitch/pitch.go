// Package pitch implements pitch-class arithmetic and the chord catalog
// shared by every harmonic component.
package pitch

import "fmt"

// PitchClass identifies a pitch modulo the octave, 0 (C) through 11 (B).
type PitchClass uint8

// Norm reduces p into [0, 12).
func (p PitchClass) Norm() PitchClass {
	return PitchClass(int(p) % 12)
}

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

func (p PitchClass) String() string {
	return noteNames[p.Norm()]
}

// CircularDistance returns the minimal semitone distance between two pitch
// classes around the 12-tone circle.
func CircularDistance(a, b PitchClass) int {
	d1 := int(a.Norm()) - int(b.Norm())
	if d1 < 0 {
		d1 = -d1
	}
	d2 := 12 - d1
	if d2 < d1 {
		return d2
	}
	return d1
}

// ChordType is the closed catalog of 17 chord qualities named in the data
// model: major/minor/aug/dim/dom7/maj7/min7/half-dim/dim7/sus2/sus4/mMaj7/
// aug7/maj6/min6/7sus4/add9.
type ChordType int

const (
	Major ChordType = iota
	Minor
	Augmented
	Diminished
	Dominant7
	Major7
	Minor7
	HalfDiminished
	Diminished7
	Sus2
	Sus4
	MinorMajor7
	Augmented7
	Major6
	Minor6
	Dominant7Sus4
	Add9
	numChordTypes
)

var chordIntervals = [numChordTypes][]uint8{
	Major:          {0, 4, 7},
	Minor:          {0, 3, 7},
	Augmented:      {0, 4, 8},
	Diminished:     {0, 3, 6},
	Dominant7:      {0, 4, 7, 10},
	Major7:         {0, 4, 7, 11},
	Minor7:         {0, 3, 7, 10},
	HalfDiminished: {0, 3, 6, 10},
	Diminished7:    {0, 3, 6, 9},
	Sus2:           {0, 2, 7},
	Sus4:           {0, 5, 7},
	MinorMajor7:    {0, 3, 7, 11},
	Augmented7:     {0, 4, 8, 10},
	Major6:         {0, 4, 7, 9},
	Minor6:         {0, 3, 7, 9},
	Dominant7Sus4:  {0, 5, 7, 10},
	Add9:           {0, 4, 7, 14 % 12},
}

var chordSuffixes = [numChordTypes]string{
	Major:          "",
	Minor:          "m",
	Augmented:      "+",
	Diminished:     "dim",
	Dominant7:      "7",
	Major7:         "maj7",
	Minor7:         "m7",
	HalfDiminished: "m7b5",
	Diminished7:    "dim7",
	Sus2:           "sus2",
	Sus4:           "sus4",
	MinorMajor7:    "mMaj7",
	Augmented7:     "aug7",
	Major6:         "6",
	Minor6:         "m6",
	Dominant7Sus4:  "7sus4",
	Add9:           "add9",
}

// Intervals returns the semitone intervals from the root defining this
// chord quality.
func (t ChordType) Intervals() []uint8 {
	return chordIntervals[t]
}

// Suffix returns a short display suffix, e.g. "m7b5".
func (t ChordType) Suffix() string {
	return chordSuffixes[t]
}

// IsMajor reports whether the quality has a major-leaning third or is built
// from a major triad (including dominant and augmented extensions).
func (t ChordType) IsMajor() bool {
	switch t {
	case Major, Major7, Dominant7, Augmented, Augmented7, Major6, Dominant7Sus4, Add9:
		return true
	}
	return false
}

// IsMinor reports whether the quality has a minor third.
func (t ChordType) IsMinor() bool {
	switch t {
	case Minor, Minor7, HalfDiminished, Diminished, Diminished7, MinorMajor7, Minor6:
		return true
	}
	return false
}

// IsSymmetric reports whether the chord quality divides the octave evenly,
// making it reusable as a pivot regardless of orientation.
func (t ChordType) IsSymmetric() bool {
	return t == Augmented || t == Diminished7 || t == Augmented7
}

// IsAmbiguous reports whether the quality lacks a clear major/minor third,
// making it a useful pivot between harmonic strategies.
func (t ChordType) IsAmbiguous() bool {
	switch t {
	case Sus2, Sus4, Augmented, Diminished7, Dominant7Sus4:
		return true
	}
	return false
}

// Chord is a fully specified chord: root, quality, optional slash bass,
// extension intervals, and the LCC level currently governing its scale.
type Chord struct {
	Root       PitchClass
	Type       ChordType
	Bass       *PitchClass
	Extensions []PitchClass
	LCCLevel   int
}

// New builds a chord with LCC level defaulted to 1 (Lydian, most consonant).
func New(root PitchClass, t ChordType) Chord {
	return Chord{Root: root.Norm(), Type: t, LCCLevel: 1}
}

// WithBass returns a copy with a slash bass note.
func (c Chord) WithBass(bass PitchClass) Chord {
	b := bass.Norm()
	c.Bass = &b
	return c
}

// WithLCCLevel returns a copy with the LCC level clamped to [1,12].
func (c Chord) WithLCCLevel(level int) Chord {
	if level < 1 {
		level = 1
	}
	if level > 12 {
		level = 12
	}
	c.LCCLevel = level
	return c
}

// PitchClasses returns the chord tones (root + quality intervals), without
// extensions.
func (c Chord) PitchClasses() []PitchClass {
	ivs := c.Type.Intervals()
	out := make([]PitchClass, len(ivs))
	for i, iv := range ivs {
		out[i] = PitchClass((uint8(c.Root) + iv) % 12)
	}
	return out
}

// AllPitchClasses returns chord tones plus any extensions, de-duplicated.
func (c Chord) AllPitchClasses() []PitchClass {
	pcs := c.PitchClasses()
	for _, ext := range c.Extensions {
		pc := PitchClass((uint8(c.Root) + uint8(ext)) % 12)
		found := false
		for _, p := range pcs {
			if p == pc {
				found = true
				break
			}
		}
		if !found {
			pcs = append(pcs, pc)
		}
	}
	return pcs
}

// IsAmbiguous reports whether the chord's quality lacks a clear third.
func (c Chord) IsAmbiguous() bool {
	return c.Type.IsAmbiguous()
}

// VoiceLeadingDistance sums the semitone motions of a greedy
// nearest-neighbor matching over circular pitch-class distance: each of
// from's pitch classes, in order, takes the closest still-unused pitch
// class of to. The sum can exceed the true minimum, and pitch classes left
// unmatched when the chords differ in size add nothing.
func VoiceLeadingDistance(from, to Chord) int {
	fromPCs := from.PitchClasses()
	toPCs := to.PitchClasses()
	used := make([]bool, len(toPCs))

	total := 0
	for _, fp := range fromPCs {
		minDist := 13
		minIdx := -1
		for i, tp := range toPCs {
			if used[i] {
				continue
			}
			d := CircularDistance(fp, tp)
			if d < minDist {
				minDist = d
				minIdx = i
			}
		}
		if minIdx >= 0 {
			used[minIdx] = true
			total += minDist
		}
	}
	return total
}

// Name formats the chord as e.g. "C#m7" or "C/G".
func (c Chord) Name() string {
	s := c.Root.String() + c.Type.Suffix()
	if c.Bass != nil {
		s += fmt.Sprintf("/%s", c.Bass.String())
	}
	return s
}
