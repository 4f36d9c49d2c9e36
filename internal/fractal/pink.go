// Package fractal produces 1/f-distributed pseudo-random drift used to
// steer melodic contour.
package fractal

import "math/rand"

// PinkNoise implements the Voss-McCartney algorithm: a small number of
// independently-updated random rows are summed and averaged, each row
// refreshed at half the rate of the previous one. The result approximates
// a 1/f power spectrum.
type PinkNoise struct {
	rows  []float32
	index uint64
	rng   *rand.Rand
}

// NewPinkNoise builds a pink noise source with the given number of rows
// (depth). Higher depth tracks lower frequencies more faithfully; 5 is the
// conventional choice for musical-rate drift.
func NewPinkNoise(depth int, seed int64) *PinkNoise {
	if depth < 1 {
		depth = 1
	}
	return &PinkNoise{
		rows: make([]float32, depth),
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// Next advances the generator by one step and returns a value in [-1, 1].
func (p *PinkNoise) Next() float32 {
	p.index++
	// trailingZeros selects which row to re-randomize this call: row 0
	// refreshes every other call (odd indices), row 1 every fourth call,
	// row 2 every eighth, etc.; the last row also takes all deeper indices.
	row := trailingZeros64(p.index)
	if row >= len(p.rows) {
		row = len(p.rows) - 1
	}
	p.rows[row] = p.rng.Float32()*2 - 1

	var sum float32
	for _, v := range p.rows {
		sum += v
	}
	return sum / float32(len(p.rows))
}

// Next64 is Next widened to float64, for callers doing float64 arithmetic
// (the melody generator's fractal target computation).
func (p *PinkNoise) Next64() float64 {
	return float64(p.Next())
}

func trailingZeros64(x uint64) int {
	if x == 0 {
		return 64
	}
	n := 0
	for x&1 == 0 {
		x >>= 1
		n++
	}
	return n
}
