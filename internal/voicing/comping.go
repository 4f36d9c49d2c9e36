package voicing

import "github.com/bascanada/harmonium-sub001/internal/rhythm"

// Comping gates a block-chord-style voicing by an internal Euclidean mask
// whose pulse count tracks ctx.Density, producing syncopated comping
// rhythm instead of playing on every step.
type Comping struct {
	inner   *BlockChord
	pattern []bool
	steps   int
	density float64
}

// NewComping builds a comping voicer over the given step grid at the
// given initial density.
func NewComping(steps int, density float64) *Comping {
	c := &Comping{inner: NewBlockChord(4), steps: steps}
	c.regenerate(density)
	return c
}

func (c *Comping) regenerate(density float64) {
	if density < 0 {
		density = 0
	}
	if density > 1 {
		density = 1
	}
	pulses := int(density*float64(c.steps-1) + 0.5)
	if pulses < 1 {
		pulses = 1
	}
	c.pattern = rhythm.Bjorklund(pulses, c.steps)
	c.density = density
}

func (c *Comping) Name() string { return "Comping" }

func (c *Comping) ProcessNote(melodyMIDI, baseVelocity int, ctx Context) []VoicedNote {
	if !c.ShouldVoice(ctx) {
		return nil
	}
	return c.inner.ProcessNote(melodyMIDI, baseVelocity, ctx)
}

func (c *Comping) OnStep(ctx Context) {
	if ctx.TotalSteps > 0 && ctx.TotalSteps != c.steps {
		c.steps = ctx.TotalSteps
		c.regenerate(ctx.Density)
		return
	}
	if abs64(ctx.Density-c.density) > 0.05 {
		c.regenerate(ctx.Density)
	}
}

func (c *Comping) ShouldVoice(ctx Context) bool {
	if len(c.pattern) == 0 {
		return true
	}
	return c.pattern[ctx.CurrentStep%c.steps]
}

func (c *Comping) OnDensityChange(newDensity float64, steps int) {
	if steps > 0 {
		c.steps = steps
	}
	if abs64(newDensity-c.density) > 0.05 {
		c.regenerate(newDensity)
	}
}

func abs64(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
