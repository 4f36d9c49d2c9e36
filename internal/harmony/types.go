// Package harmony implements the three-strategy harmonic driver: a
// functional-grammar strategy (Steedman), a parsimonious voice-leading
// strategy, and a neo-Riemannian transformation strategy, selected by a
// hysteresis-banded tension value and bridged by pivot chords.
package harmony

import (
	"math/rand"

	"github.com/bascanada/harmonium-sub001/internal/pitch"
)

// TransitionType classifies how a Decision's chord was reached.
type TransitionType int

const (
	TransitionFunctional TransitionType = iota
	TransitionParsimonious
	TransitionTransformational
	TransitionPivot
)

// Context carries everything a strategy needs to choose the next chord.
type Context struct {
	CurrentChord   pitch.Chord
	GlobalKey      pitch.PitchClass
	Tension        float64
	Valence        float64
	BeatInMeasure  int
	MeasureInPhrase int
}

// Decision is a strategy's proposed next chord plus the scale it suggests
// melodic material be drawn from.
type Decision struct {
	NextChord      pitch.Chord
	Transition     TransitionType
	SuggestedScale []pitch.PitchClass
}

// Strategy is the common contract all three harmonic strategies implement.
// Each strategy is a concrete value type (not boxed behind an interface at
// the driver's storage site); the driver holds all three concretely and
// dispatches by its own StrategyKind enum, matching the "polymorphic
// strategies without inheritance" design note.
type Strategy interface {
	NextChord(ctx Context, rng *rand.Rand) Decision
	Name() string
}
