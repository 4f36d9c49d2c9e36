// Package melody generates a single melodic voice by fusing Markovian
// voice-leading preferences with 1/f fractal drift and a gap-fill rule,
// constrained at every step by the current chord and the harmonic driver's
// suggested LCC scale.
package melody

import (
	"math"
	"math/rand"

	"github.com/bascanada/harmonium-sub001/internal/fractal"
	"github.com/bascanada/harmonium-sub001/internal/pitch"
)

// Context carries the harmonic state the generator needs for one step.
type Context struct {
	ChordTones   []pitch.PitchClass
	Scale        []pitch.PitchClass
	IsStrongBeat bool
}

// Generator is a stateful melodic voice.
type Generator struct {
	scaleDegree int
	octave      int
	lastStep    int

	pink  *fractal.PinkNoise
	hurst float64
}

// New creates a generator centered on the given octave, with a
// Voss-McCartney pink-noise source at the depth the original fractal
// melody model uses (5 octaves of summed generators).
func New(octave int, seed int64) *Generator {
	return &Generator{
		octave: octave,
		pink:   fractal.NewPinkNoise(5, seed),
		hurst:  0.7,
	}
}

// SetHurst sets the Hurst-exponent-derived smoothness factor, clamped to
// [0,1]. Low values favor local Markov motion; high values favor tracking
// the fractal target.
func (g *Generator) SetHurst(h float64) {
	if h < 0 {
		h = 0
	}
	if h > 1 {
		h = 1
	}
	g.hurst = h
}

// isChordTone reports whether the scale degree at the given index (wrapped
// into the scale) is one of ctx.ChordTones.
func isChordTone(scale []pitch.PitchClass, idx int, chordTones []pitch.PitchClass) bool {
	if len(scale) == 0 {
		return false
	}
	n := len(scale)
	wrapped := ((idx % n) + n) % n
	note := scale[wrapped]
	for _, ct := range chordTones {
		if ct.Norm() == note.Norm() {
			return true
		}
	}
	return false
}

// weightedSteps returns the candidate scale-degree deltas and their
// relative weights for the current harmonic position, following four
// cases: tonic, leading-tone, other chord tones, and passing tones.
func weightedSteps(scale []pitch.PitchClass, normalizedIndex int, isStrongBeat bool, chordTones []pitch.PitchClass) ([]int, []float64) {
	scaleLen := len(scale)
	isTonic := normalizedIndex == 0
	isLeadingTone := scaleLen == 7 && normalizedIndex == 6
	isChord := isChordTone(scale, normalizedIndex, chordTones)
	octaveJump := scaleLen

	switch {
	case isTonic:
		if isStrongBeat {
			return []int{0, 2, 4, -3, octaveJump, -octaveJump}, []float64{10, 30, 25, 15, 10, 10}
		}
		return []int{1, -1, 2, -2, 0}, []float64{30, 30, 15, 15, 10}
	case isLeadingTone:
		return []int{1, -1, 0, -2}, []float64{85, 10, 2, 3}
	case isChord:
		if isStrongBeat {
			return []int{0, -2, 2, -4, 1, -1}, []float64{10, 30, 30, 10, 10, 10}
		}
		return []int{1, -1, 2, -2, 0}, []float64{40, 40, 10, 5, 5}
	default:
		return []int{1, -1, 0}, []float64{45, 45, 10}
	}
}

func weightedSample(steps []int, weights []float64, rng *rand.Rand) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return steps[rng.Intn(len(steps))]
	}
	r := rng.Float64() * total
	cum := 0.0
	for i, w := range weights {
		cum += w
		if r < cum {
			return steps[i]
		}
	}
	return steps[len(steps)-1]
}

// Next advances the generator by one step and returns the resulting
// frequency in Hz at 12-TET tuning.
func (g *Generator) Next(ctx Context, rng *rand.Rand) float64 {
	scaleLen := len(ctx.Scale)
	if scaleLen == 0 {
		return g.frequency(ctx)
	}

	normalizedIndex := ((g.scaleDegree % scaleLen) + scaleLen) % scaleLen
	steps, weights := weightedSteps(ctx.Scale, normalizedIndex, ctx.IsStrongBeat, ctx.ChordTones)

	driftTarget := int(math.Round(g.pink.Next64() * 12.0))
	currentDist := abs(driftTarget - g.scaleDegree)
	fractalInfluence := 0.5 + g.hurst*3.0

	finalWeights := make([]float64, len(weights))
	for i, step := range steps {
		predicted := g.scaleDegree + step
		newDist := abs(driftTarget - predicted)
		w := weights[i]
		if newDist < currentDist {
			w *= fractalInfluence
		} else {
			w *= 0.8
		}
		finalWeights[i] = w
	}

	chosenStep := weightedSample(steps, finalWeights, rng)

	// Gap-fill rule: after a leap greater than 2, a same-signed,
	// still-leaping step is replaced with a single-step return the other
	// way.
	finalStep := chosenStep
	if abs(g.lastStep) > 2 && sign(chosenStep) == sign(g.lastStep) && abs(chosenStep) > 2 {
		finalStep = -sign(g.lastStep)
	}

	g.lastStep = finalStep
	g.scaleDegree += finalStep

	bound := scaleLen * 2
	if g.scaleDegree > bound {
		g.scaleDegree = bound
	}
	if g.scaleDegree < -bound {
		g.scaleDegree = -bound
	}

	return g.frequency(ctx)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// frequency converts the current scale degree + octave into a 12-TET
// frequency, wrapping the degree into ctx.Scale and folding overflow into
// octave shifts.
func (g *Generator) frequency(ctx Context) float64 {
	scaleLen := len(ctx.Scale)
	if scaleLen == 0 {
		return midiToFreq((g.octave + 1) * 12)
	}

	idx := g.scaleDegree
	octaveShift := 0
	for idx < 0 {
		idx += scaleLen
		octaveShift--
	}
	for idx >= scaleLen {
		idx -= scaleLen
		octaveShift++
	}

	pc := ctx.Scale[idx]
	midi := (g.octave+octaveShift+1)*12 + int(pc.Norm())
	return midiToFreq(midi)
}

func midiToFreq(midi int) float64 {
	return 440.0 * math.Pow(2.0, (float64(midi)-69.0)/12.0)
}

// CurrentMIDI returns the MIDI note number the current scale degree
// resolves to against ctx.Scale, the integer counterpart to frequency
// for callers (the kernel) that need a note number rather than Hz.
func (g *Generator) CurrentMIDI(ctx Context) int {
	scaleLen := len(ctx.Scale)
	if scaleLen == 0 {
		return g.octave*12 + 12
	}
	idx := g.scaleDegree
	octaveShift := 0
	for idx < 0 {
		idx += scaleLen
		octaveShift--
	}
	for idx >= scaleLen {
		idx -= scaleLen
		octaveShift++
	}
	pc := ctx.Scale[idx]
	return (g.octave+octaveShift+1)*12 + int(pc.Norm())
}

// ScaleDegree exposes the current raw scale-degree index (for tests and
// the voicer, which needs it to find notes below the melody).
func (g *Generator) ScaleDegree() int { return g.scaleDegree }

// LastStep exposes the most recent step taken.
func (g *Generator) LastStep() int { return g.lastStep }

// Hurst exposes the current smoothness-derived Hurst factor (for tests and
// callers that need to confirm SetHurst actually took effect).
func (g *Generator) Hurst() float64 { return g.hurst }
