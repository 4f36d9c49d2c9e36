package harmony

import (
	"math/rand"

	"github.com/bascanada/harmonium-sub001/internal/lcc"
	"github.com/bascanada/harmonium-sub001/internal/pitch"
)

// Function is one of Steedman's three functional-grammar labels.
type Function int

const (
	FuncTonic Function = iota
	FuncSubdominant
	FuncDominant
)

// transitionMatrix[from] gives (function, weight) pairs for the next
// function, biased toward the conventional T->S/D, S->D/T, D->T motion of
// functional harmony.
var transitionMatrix = map[Function][]struct {
	to     Function
	weight float64
}{
	FuncTonic:       {{FuncSubdominant, 0.45}, {FuncDominant, 0.45}, {FuncTonic, 0.1}},
	FuncSubdominant: {{FuncDominant, 0.6}, {FuncTonic, 0.25}, {FuncSubdominant, 0.15}},
	FuncDominant:    {{FuncTonic, 0.75}, {FuncSubdominant, 0.15}, {FuncDominant, 0.1}},
}

// rootOffsetForFunction gives the semitone offset from the global key for
// each function's chord root: I, IV, V.
var rootOffsetForFunction = map[Function]uint8{
	FuncTonic:       0,
	FuncSubdominant: 5,
	FuncDominant:    7,
}

// SteedmanStrategy implements the functional-grammar harmonic strategy
// (spec §4.3.1): weighted transitions between Tonic/Subdominant/Dominant
// function labels, with chord quality chosen per function and a valence
// bias toward major roots when positive.
type SteedmanStrategy struct {
	current Function
}

// NewSteedmanStrategy starts on the tonic function.
func NewSteedmanStrategy() *SteedmanStrategy {
	return &SteedmanStrategy{current: FuncTonic}
}

func (s *SteedmanStrategy) Name() string { return "Steedman" }

func (s *SteedmanStrategy) nextFunction(rng *rand.Rand) Function {
	options := transitionMatrix[s.current]
	r := rng.Float64()
	cum := 0.0
	for _, opt := range options {
		cum += opt.weight
		if r < cum {
			return opt.to
		}
	}
	return options[len(options)-1].to
}

// qualityForFunction chooses a chord quality for the given function,
// biased toward major by positive valence and toward minor by negative
// valence. The dominant function always carries at least a seventh to
// preserve its pull toward resolution.
func qualityForFunction(fn Function, valence float64, rng *rand.Rand) pitch.ChordType {
	majorLeaning := valence >= 0
	switch fn {
	case FuncDominant:
		if rng.Float64() < 0.7 {
			return pitch.Dominant7
		}
		if majorLeaning {
			return pitch.Major7
		}
		return pitch.HalfDiminished
	case FuncSubdominant:
		if majorLeaning {
			if rng.Float64() < 0.5 {
				return pitch.Major
			}
			return pitch.Major7
		}
		if rng.Float64() < 0.5 {
			return pitch.Minor
		}
		return pitch.Minor7
	default: // FuncTonic
		if majorLeaning {
			if rng.Float64() < 0.6 {
				return pitch.Major
			}
			return pitch.Major6
		}
		if rng.Float64() < 0.6 {
			return pitch.Minor
		}
		return pitch.Minor7
	}
}

// NextChord implements Strategy.
func (s *SteedmanStrategy) NextChord(ctx Context, rng *rand.Rand) Decision {
	nextFn := s.nextFunction(rng)
	s.current = nextFn

	offset := rootOffsetForFunction[nextFn]
	root := pitch.PitchClass((uint8(ctx.GlobalKey) + offset) % 12)
	quality := qualityForFunction(nextFn, ctx.Valence, rng)

	level := lcc.LevelForTension(ctx.Tension)
	next := pitch.New(root, quality).WithLCCLevel(int(level))

	parent := lcc.ParentLydian(next)
	scale := lcc.Scale(parent, level)

	return Decision{
		NextChord:      next,
		Transition:     TransitionFunctional,
		SuggestedScale: scale,
	}
}
