package harmony

import (
	"math/rand"

	"github.com/bascanada/harmonium-sub001/internal/lcc"
	"github.com/bascanada/harmonium-sub001/internal/pitch"
)

// Mode selects between the full hysteresis-banded strategy driver and
// the simpler quadrant-progression fallback (spec §6's
// `--harmony-mode basic|driver` CLI flag).
type Mode int

const (
	ModeDriver Mode = iota
	ModeBasic
)

func (m Mode) String() string {
	if m == ModeBasic {
		return "basic"
	}
	return "driver"
}

// StrategyKind names which of the three concrete strategies is currently
// driving chord choice.
type StrategyKind int

const (
	KindSteedman StrategyKind = iota
	KindParsimonious
	KindNeoRiemannian
)

func (k StrategyKind) String() string {
	switch k {
	case KindSteedman:
		return "Steedman"
	case KindParsimonious:
		return "Parsimonious"
	case KindNeoRiemannian:
		return "Neo-Riemannian"
	}
	return "?"
}

// HysteresisBands configures the five-zone crossfade boundaries over
// tension. The default bands keep pure Steedman below 0.45, pure
// Parsimonious in the 0.55-0.65 plateau, and pure Neo-Riemannian above 0.75.
type HysteresisBands struct {
	SteedmanLower float64
	SteedmanUpper float64
	NeoLower      float64
	NeoUpper      float64
}

// DefaultHysteresisBands matches the driver's narrative default.
var DefaultHysteresisBands = HysteresisBands{
	SteedmanLower: 0.45,
	SteedmanUpper: 0.55,
	NeoLower:      0.65,
	NeoUpper:      0.75,
}

// hysteresisBoost is added to the currently active strategy's crossfade
// weight before zone selection, so the driver doesn't flicker between
// strategies when tension oscillates near a boundary.
const hysteresisBoost = 0.1

// Driver orchestrates the three harmonic strategies under a shared LCC
// filter, selecting between them by a hysteresis-banded tension value and
// bridging wide jumps with pivot chords (spec §4.3.4).
type Driver struct {
	steedman      *SteedmanStrategy
	parsimonious  *ParsimoniousStrategy
	neoRiemannian *NeoRiemannianStrategy

	bands HysteresisBands

	currentChord   pitch.Chord
	currentKind    StrategyKind
	phrasePosition int
	lastTension    float64
	globalKey      pitch.PitchClass
}

// NewDriver creates a driver rooted on initialKey, starting in the
// Steedman strategy on a tonic major triad.
func NewDriver(initialKey pitch.PitchClass) *Driver {
	return &Driver{
		steedman:      NewSteedmanStrategy(),
		parsimonious:  NewParsimoniousStrategy(),
		neoRiemannian: NewNeoRiemannianStrategy(),
		bands:         DefaultHysteresisBands,
		currentChord:  pitch.New(initialKey, pitch.Major),
		currentKind:   KindSteedman,
		lastTension:   0.5,
		globalKey:     initialKey.Norm(),
	}
}

// SetKey changes the global tonic.
func (d *Driver) SetKey(key pitch.PitchClass) {
	d.globalKey = key.Norm()
}

// SetBands overrides the hysteresis band configuration.
func (d *Driver) SetBands(b HysteresisBands) {
	d.bands = b
}

// CurrentChord returns the chord most recently produced.
func (d *Driver) CurrentChord() pitch.Chord { return d.currentChord }

// CurrentStrategyName returns the name of the strategy currently driving
// chord choice.
func (d *Driver) CurrentStrategyName() string { return d.currentKind.String() }

// ResetPhrase zeroes the phrase position counter.
func (d *Driver) ResetPhrase() { d.phrasePosition = 0 }

// RootOffset returns the current chord's root distance from the global key.
func (d *Driver) RootOffset() int {
	return int((uint8(d.currentChord.Root) - uint8(d.globalKey) + 12) % 12)
}

// IsMinor reports whether the current chord is minor.
func (d *Driver) IsMinor() bool { return d.currentChord.Type.IsMinor() }

// boostedWeights applies the hysteresis boost to whichever of the three
// weights corresponds to the currently active strategy, then renormalizes.
func (d *Driver) boostedWeights(tension float64) (float64, float64, float64) {
	sw, pw, nw := CrossfadeWeightThreeHysteresis(tension, d.bands.SteedmanLower, d.bands.SteedmanUpper, d.bands.NeoLower, d.bands.NeoUpper)

	switch d.currentKind {
	case KindSteedman:
		sw += hysteresisBoost
	case KindParsimonious:
		pw += hysteresisBoost
	case KindNeoRiemannian:
		nw += hysteresisBoost
	}

	total := sw + pw + nw
	if total == 0 {
		return 0, 1, 0
	}
	return sw / total, pw / total, nw / total
}

// selectStrategy picks the dominant strategy for this step given the
// boosted crossfade weights, returning whether the step falls in a
// transition zone that needs pivot handling.
func (d *Driver) selectStrategy(sw, pw, nw float64) (kind StrategyKind, inTransition bool) {
	const pureThreshold = 0.99
	switch {
	case sw > pureThreshold:
		return KindSteedman, false
	case nw > pureThreshold:
		return KindNeoRiemannian, false
	case pw > pureThreshold:
		return KindParsimonious, false
	}

	// No single strategy dominates: pick the highest-weighted as the
	// nominal target and flag a transition so a pivot can bridge it.
	switch {
	case sw >= pw && sw >= nw:
		return KindSteedman, true
	case nw >= pw && nw >= sw:
		return KindNeoRiemannian, true
	default:
		return KindParsimonious, true
	}
}

// NextChord advances the driver by one harmonic step.
func (d *Driver) NextChord(tension, valence float64, rng *rand.Rand) Decision {
	ctx := Context{
		CurrentChord:    d.currentChord,
		GlobalKey:       d.globalKey,
		Tension:         tension,
		Valence:         valence,
		MeasureInPhrase: d.phrasePosition / 4,
		BeatInMeasure:   d.phrasePosition % 4,
	}

	sw, pw, nw := d.boostedWeights(tension)
	target, inTransition := d.selectStrategy(sw, pw, nw)

	var decision Decision
	if inTransition {
		decision = d.handleTransition(ctx, target, sw, pw, nw, rng)
	} else {
		decision = d.dispatch(target, ctx, rng)
	}

	d.currentChord = decision.NextChord
	d.phrasePosition++
	d.lastTension = tension
	return decision
}

func (d *Driver) dispatch(kind StrategyKind, ctx Context, rng *rand.Rand) Decision {
	switch kind {
	case KindSteedman:
		d.currentKind = KindSteedman
		return d.steedman.NextChord(ctx, rng)
	case KindNeoRiemannian:
		if len(ctx.CurrentChord.Type.Intervals()) != 3 {
			// Tetrads fall back to Parsimonious: the Tonnetz is triad-only.
			d.currentKind = KindParsimonious
			return d.parsimonious.NextChord(ctx, rng)
		}
		d.currentKind = KindNeoRiemannian
		return d.neoRiemannian.NextChord(ctx, rng)
	default:
		d.currentKind = KindParsimonious
		return d.parsimonious.NextChord(ctx, rng)
	}
}

// handleTransition bridges two strategies across a wide hysteresis band
// with a pivot chord, unless the current chord is already a pivot, in
// which case the dominant strategy simply continues through it.
func (d *Driver) handleTransition(ctx Context, target StrategyKind, sw, pw, nw float64, rng *rand.Rand) Decision {
	pivotType := IsPivotChord(ctx.CurrentChord)

	if pivotType != PivotNone {
		d.currentKind = target
		return d.dispatch(target, ctx, rng)
	}

	targetDecision := d.dispatch(target, ctx, rng)
	pivotChord := CreatePivot(ctx.CurrentChord, targetDecision.NextChord, ctx.Tension)

	level := lcc.LevelForTension(ctx.Tension)
	parent := lcc.ParentLydian(pivotChord)
	scale := lcc.Scale(parent, level)

	d.currentKind = target
	return Decision{
		NextChord:      pivotChord,
		Transition:     TransitionPivot,
		SuggestedScale: scale,
	}
}

// CurrentScale returns the LCC scale governing melodic material over the
// current chord at the given tension.
func (d *Driver) CurrentScale(tension float64) []pitch.PitchClass {
	parent := lcc.ParentLydian(d.currentChord)
	level := lcc.LevelForTension(tension)
	return lcc.Scale(parent, level)
}

// IsValidMelodyNote reports whether note belongs to the current chord's LCC
// scale at the given tension.
func (d *Driver) IsValidMelodyNote(note pitch.PitchClass, tension float64) bool {
	return lcc.IsValidNote(note, d.currentChord, tension)
}

// MelodyNoteWeight returns the LCC weight of note over the current chord.
func (d *Driver) MelodyNoteWeight(note pitch.PitchClass, tension float64) float64 {
	return lcc.NoteWeight(note, d.currentChord, tension)
}

// FindPath delegates to the embedded neo-Riemannian engine, exposing the
// Tonnetz shortest-path search independent of the driver's current state.
func (d *Driver) FindPath(from, to pitch.Chord) []NROp {
	return d.neoRiemannian.engine.FindPath(from, to)
}

// RandomWalk delegates to the embedded neo-Riemannian engine.
func (d *Driver) RandomWalk(start pitch.Chord, steps int, rng *rand.Rand) []pitch.Chord {
	return d.neoRiemannian.engine.RandomWalk(start, steps, rng)
}

// SuggestPivot delegates to the package-level pivot suggestion helper.
func (d *Driver) SuggestPivot(to pitch.Chord) *pitch.Chord {
	return SuggestPivot(d.currentChord, to)
}
