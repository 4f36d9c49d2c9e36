package harmony

import "github.com/bascanada/harmonium-sub001/internal/pitch"

// chordStep is one entry of a fixed progression: a semitone offset from
// the global tonic plus the quality to build there.
type chordStep struct {
	rootOffset int
	quality    pitch.ChordType
}

// BasicProgression selects a four-(or two-)chord loop from Russell's
// circumplex quadrants (valence x tension) instead of running the full
// hysteresis-banded strategy driver. Grounded directly on
// harmonium_core/src/harmony/basic.rs's Progression::get_palette: same
// six quadrant boundaries, same scale-degree offsets and qualities.
type BasicProgression struct {
	globalKey pitch.PitchClass
	step      int
}

// NewBasicProgression builds a progression player rooted on key.
func NewBasicProgression(key pitch.PitchClass) *BasicProgression {
	return &BasicProgression{globalKey: key.Norm()}
}

// SetKey changes the global tonic the progression's offsets are relative to.
func (b *BasicProgression) SetKey(key pitch.PitchClass) { b.globalKey = key.Norm() }

// palette picks the quadrant's chord-step list for the given valence and
// tension, identical boundaries to get_palette.
func palette(valence, tension float64) []chordStep {
	switch {
	case valence > 0.3 && tension > 0.6:
		return []chordStep{ // Pop Energetic: I - V7 - vi - IV
			{0, pitch.Major}, {7, pitch.Dominant7}, {9, pitch.Minor}, {5, pitch.Major},
		}
	case valence > 0.3:
		return []chordStep{ // Folk Peaceful: I - IV - I - V
			{0, pitch.Major}, {5, pitch.Major}, {0, pitch.Major}, {7, pitch.Major},
		}
	case valence < -0.3 && tension > 0.6:
		return []chordStep{ // Dramatic Minor: i - V7 - VI - vii°
			{0, pitch.Minor}, {7, pitch.Dominant7}, {8, pitch.Major}, {11, pitch.Diminished},
		}
	case valence < -0.3:
		return []chordStep{ // Melancholic: i - III - VII - i
			{0, pitch.Minor}, {3, pitch.Major}, {10, pitch.Major}, {0, pitch.Minor},
		}
	case tension > 0.6:
		return []chordStep{ // Modal Tense: i - iv - I(sus2) - v
			{0, pitch.Minor}, {5, pitch.Minor}, {0, pitch.Sus2}, {7, pitch.Minor},
		}
	default:
		return []chordStep{ // Ambient Drone: i - iv
			{0, pitch.Minor}, {5, pitch.Minor},
		}
	}
}

// ProgressionName reports the human-readable label for the quadrant that
// valence/tension select, matching get_progression_name.
func ProgressionName(valence, tension float64) string {
	switch {
	case valence > 0.3 && tension > 0.6:
		return "Pop Energetic (I-V-vi-IV)"
	case valence > 0.3:
		return "Folk Peaceful (I-IV-I-V)"
	case valence < -0.3 && tension > 0.6:
		return "Dramatic Minor (i-V7-VI-vii°)"
	case valence < -0.3:
		return "Melancholic (i-III-VII-i)"
	case tension > 0.6:
		return "Modal Tense (i-iv-Isus2-v)"
	default:
		return "Ambient Drone (i-iv)"
	}
}

// NextChord advances the progression by one step, re-selecting the
// quadrant palette every call so a mid-progression valence/tension swing
// retargets the loop rather than finishing the old quadrant's steps.
func (b *BasicProgression) NextChord(valence, tension float64) pitch.Chord {
	p := palette(valence, tension)
	step := p[b.step%len(p)]
	b.step++
	root := pitch.PitchClass((uint8(b.globalKey) + uint8(step.rootOffset)) % 12)
	return pitch.New(root, step.quality)
}

// Reset zeroes the progression's step cursor, used when switching modes.
func (b *BasicProgression) Reset() { b.step = 0 }
