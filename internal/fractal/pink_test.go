package fractal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPinkNoise_BoundedOutput(t *testing.T) {
	p := NewPinkNoise(5, 1)
	for i := 0; i < 10000; i++ {
		v := p.Next()
		require.GreaterOrEqual(t, v, float32(-1.0))
		require.LessOrEqual(t, v, float32(1.0))
	}
}

func TestPinkNoise_DepthOneFallback(t *testing.T) {
	p := NewPinkNoise(0, 1)
	require.Len(t, p.rows, 1)
	_ = p.Next()
}

func TestTrailingZeros64(t *testing.T) {
	cases := map[uint64]int{
		1: 0, 2: 1, 4: 2, 8: 3, 6: 1, 0: 64,
	}
	for in, want := range cases {
		assert.Equal(t, want, trailingZeros64(in), "trailingZeros64(%d)", in)
	}
}
