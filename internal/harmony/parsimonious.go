package harmony

import (
	"math/rand"

	"github.com/bascanada/harmonium-sub001/internal/lcc"
	"github.com/bascanada/harmonium-sub001/internal/pitch"
)

// DefaultMaxSemitoneMovement is the per-voice movement allowance of a
// parsimonious transition; candidates are bounded by it times the
// candidate's cardinality as a total voice-leading distance.
const DefaultMaxSemitoneMovement = 2

// ParsimoniousStrategy picks the next chord by minimizing total voice
// motion (spec §4.3.2): candidates whose total voice-leading distance is at
// most MaxSemitoneMovement times the candidate's cardinality are scored by
// a tension-release quotient (TRQ) combining voice-leading distance,
// tritone and mode-change penalties, and a common-tone bonus, and the
// lowest-scoring candidate is chosen. Single voices are not bounded
// separately, and tension does not enter the score. May morph cardinality
// between triad and tetrad.
type ParsimoniousStrategy struct {
	MaxSemitoneMovement int
}

// NewParsimoniousStrategy returns a strategy with the default movement cap.
func NewParsimoniousStrategy() *ParsimoniousStrategy {
	return &ParsimoniousStrategy{MaxSemitoneMovement: DefaultMaxSemitoneMovement}
}

func (s *ParsimoniousStrategy) Name() string { return "Parsimonious" }

// transitionQualityScore mirrors the original voice-leading cost function:
// raw distance, plus 0.5 per tritone interval in the target chord, plus 0.3 for a
// major/minor mode change, minus 0.5 per pitch class held in common.
func transitionQualityScore(from, to pitch.Chord) float64 {
	score := float64(pitch.VoiceLeadingDistance(from, to))

	toPCs := to.PitchClasses()
	for i := 0; i < len(toPCs); i++ {
		for j := i + 1; j < len(toPCs); j++ {
			if pitch.CircularDistance(toPCs[i], toPCs[j]) == 6 {
				score += 0.5
			}
		}
	}

	modeChange := from.Type.IsMajor() && to.Type.IsMinor() || from.Type.IsMinor() && to.Type.IsMajor()
	if modeChange && !from.Type.IsAmbiguous() && !to.Type.IsAmbiguous() {
		// ambiguous qualities don't count as a mode change either way
		score += 0.3
	}

	fromPCs := from.PitchClasses()
	common := 0
	for _, fp := range fromPCs {
		for _, tp := range toPCs {
			if fp == tp {
				common++
				break
			}
		}
	}
	score -= 0.5 * float64(common)

	if score < 0 {
		score = 0
	}
	return score
}

// candidateCardinality decides whether to hold, grow to a tetrad, or shrink
// to a triad, biased by tension: high tension favors tetrads (more
// dissonant extensions available), low tension favors triads.
func candidateCardinality(current pitch.Chord, tension float64, rng *rand.Rand) int {
	currentCard := len(current.Type.Intervals())
	r := rng.Float64()
	switch {
	case tension > 0.6 && currentCard == 3 && r < 0.3:
		return 4
	case tension < 0.3 && currentCard == 4 && r < 0.3:
		return 3
	default:
		return currentCard
	}
}

func qualitiesOfCardinality(card int) []pitch.ChordType {
	var out []pitch.ChordType
	all := []pitch.ChordType{
		pitch.Major, pitch.Minor, pitch.Augmented, pitch.Diminished,
		pitch.Dominant7, pitch.Major7, pitch.Minor7, pitch.HalfDiminished,
		pitch.Diminished7, pitch.Sus2, pitch.Sus4, pitch.MinorMajor7,
		pitch.Augmented7, pitch.Major6, pitch.Minor6, pitch.Dominant7Sus4,
		pitch.Add9,
	}
	for _, t := range all {
		if len(t.Intervals()) == card {
			out = append(out, t)
		}
	}
	return out
}

// NextChord implements Strategy.
func (s *ParsimoniousStrategy) NextChord(ctx Context, rng *rand.Rand) Decision {
	current := ctx.CurrentChord
	card := candidateCardinality(current, ctx.Tension, rng)
	maxTotal := card * s.MaxSemitoneMovement

	type scored struct {
		chord pitch.Chord
		score float64
	}
	var candidates []scored

	for root := uint8(0); root < 12; root++ {
		for _, q := range qualitiesOfCardinality(card) {
			cand := pitch.New(pitch.PitchClass(root), q)
			if cand.Root == current.Root && cand.Type == current.Type {
				continue
			}
			dist := pitch.VoiceLeadingDistance(current, cand)
			if dist > maxTotal {
				continue
			}
			candidates = append(candidates, scored{cand, transitionQualityScore(current, cand)})
		}
	}

	if len(candidates) == 0 {
		// No candidate respects the movement cap (degenerate scale/cardinality
		// combination); hold the current chord.
		return Decision{
			NextChord:      current,
			Transition:     TransitionParsimonious,
			SuggestedScale: lcc.Scale(lcc.ParentLydian(current), lcc.LevelForTension(ctx.Tension)),
		}
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.score < best.score {
			best = c
		}
	}

	level := lcc.LevelForTension(ctx.Tension)
	next := best.chord.WithLCCLevel(int(level))
	scale := lcc.Scale(lcc.ParentLydian(next), level)

	return Decision{
		NextChord:      next,
		Transition:     TransitionParsimonious,
		SuggestedScale: scale,
	}
}
