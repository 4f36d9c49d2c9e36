package harmony

import (
	"github.com/bascanada/harmonium-sub001/internal/lcc"
	"github.com/bascanada/harmonium-sub001/internal/pitch"
)

// PivotType classifies how ambiguous a chord is, and therefore how well it
// serves as a bridge between two harmonic strategies.
type PivotType int

const (
	PivotNone PivotType = iota
	PivotWeak
	PivotModerate
	PivotStrong
)

// IsPivotChord classifies a chord's suitability as a pivot: symmetric
// chords (dim7, augmented) are strong pivots, sus chords are weak, and
// half-diminished/diminished triads are moderate.
func IsPivotChord(c pitch.Chord) PivotType {
	switch c.Type {
	case pitch.Diminished7, pitch.Augmented:
		return PivotStrong
	case pitch.Sus4, pitch.Sus2:
		return PivotWeak
	case pitch.HalfDiminished, pitch.Diminished:
		return PivotModerate
	default:
		return PivotNone
	}
}

// CrossfadeWeightThreeHysteresis implements the spec's five-zone hysteresis
// banding over tension, returning (steedmanWeight, parsimoniousWeight,
// neoRiemannianWeight) that always sum to 1.0:
//
//  1. tension <= steedmanLower         : pure Steedman
//  2. steedmanLower < t < steedmanUpper: fade Steedman -> Parsimonious
//  3. steedmanUpper <= t <= neoLower   : pure Parsimonious
//  4. neoLower < t < neoUpper          : fade Parsimonious -> NeoRiemannian
//  5. t >= neoUpper                    : pure NeoRiemannian
func CrossfadeWeightThreeHysteresis(tension, steedmanLower, steedmanUpper, neoLower, neoUpper float64) (float64, float64, float64) {
	switch {
	case tension <= steedmanLower:
		return 1, 0, 0
	case tension < steedmanUpper:
		t := (tension - steedmanLower) / (steedmanUpper - steedmanLower)
		return 1 - t, t, 0
	case tension <= neoLower:
		return 0, 1, 0
	case tension < neoUpper:
		t := (tension - neoLower) / (neoUpper - neoLower)
		return 0, 1 - t, t
	default:
		return 0, 0, 1
	}
}

// CreatePivot builds a pivot chord for a strategy transition from the
// current tension level alone: a diminished-7th on from's root above 0.6,
// an augmented chord on from's root above 0.5, otherwise a sus4 on to's
// root. Whether tension is rising or falling is not consulted.
func CreatePivot(from, to pitch.Chord, tension float64) pitch.Chord {
	switch {
	case tension > 0.6:
		return pitch.New(from.Root, pitch.Diminished7)
	case tension > 0.5:
		return pitch.New(from.Root, pitch.Augmented)
	default:
		return pitch.New(to.Root, pitch.Sus4)
	}
}

// SuggestPivot proposes a pivot chord between two distant chords: nil when
// the chords are already close (distance <= 2), a diminished-7th or sus4
// built on a shared pitch class when one exists, or an augmented chord on
// the average of the two roots (rounded down) as a last resort.
func SuggestPivot(from, to pitch.Chord) *pitch.Chord {
	distance := pitch.VoiceLeadingDistance(from, to)
	if distance <= 2 {
		return nil
	}

	fromPCs := from.PitchClasses()
	toPCs := to.PitchClasses()
	for _, fpc := range fromPCs {
		for _, tpc := range toPCs {
			if fpc == tpc {
				var c pitch.Chord
				if distance > 4 {
					c = pitch.New(fpc, pitch.Diminished7)
				} else {
					c = pitch.New(fpc, pitch.Sus4)
				}
				return &c
			}
		}
	}

	avgRoot := pitch.PitchClass((uint8(from.Root) + uint8(to.Root)) / 2 % 12)
	c := pitch.New(avgRoot, pitch.Augmented)
	return &c
}

// PivotScale returns the LCC scale suggested for a pivot chord at the
// given tension.
func PivotScale(p pitch.Chord, tension float64) []pitch.PitchClass {
	parent := lcc.ParentLydian(p)
	level := lcc.LevelForTension(tension)
	return lcc.Scale(parent, level)
}

// PreferredStrategy names one of the three strategies. It carries no
// crossfade direction.
type PreferredStrategy int

const (
	PreferSteedman PreferredStrategy = iota
	PreferParsimonious
	PreferNeoRiemannian
)
