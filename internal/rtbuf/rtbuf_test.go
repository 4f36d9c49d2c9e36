package rtbuf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTripleBufferReadsLatestWrite(t *testing.T) {
	tb := NewTripleBuffer(0)
	tb.Write(1)
	tb.Write(2)
	tb.Write(3)
	assert.Equal(t, 3, tb.Read())
}

func TestTripleBufferReadWithoutWriteReturnsInitial(t *testing.T) {
	tb := NewTripleBuffer("seed")
	assert.Equal(t, "seed", tb.Read())
}

func TestTripleBufferRepeatedReadsStable(t *testing.T) {
	tb := NewTripleBuffer(5)
	tb.Write(42)
	first := tb.Read()
	second := tb.Read()
	assert.Equal(t, first, second)
	assert.Equal(t, 42, first)
}

func TestRingBufferFIFOOrder(t *testing.T) {
	r := NewRingBuffer[int](8)
	for i := 0; i < 5; i++ {
		require.Truef(t, r.Push(i), "push %d failed unexpectedly", i)
	}
	for i := 0; i < 5; i++ {
		v, ok := r.Pop()
		require.True(t, ok)
		assert.Equal(t, i, v)
	}
}

func TestRingBufferDropsOnFull(t *testing.T) {
	r := NewRingBuffer[int](4) // rounds to power of two already
	for i := 0; i < 4; i++ {
		require.Truef(t, r.Push(i), "push %d should have succeeded", i)
	}
	assert.False(t, r.Push(99), "push into full ring should fail")
	assert.Equal(t, uint64(1), r.Drops())
}

func TestRingBufferPopEmptyReturnsFalse(t *testing.T) {
	r := NewRingBuffer[int](8)
	_, ok := r.Pop()
	assert.False(t, ok, "pop on empty ring should return false")
}

func TestRingBufferDrainAllPreservesOrder(t *testing.T) {
	r := NewRingBuffer[int](16)
	for i := 0; i < 6; i++ {
		r.Push(i)
	}
	var got []int
	r.DrainAll(func(v int) { got = append(got, v) })
	for i, v := range got {
		assert.Equal(t, i, v, "drain[%d]", i)
	}
	assert.Zero(t, r.Len(), "ring should be empty after DrainAll")
}

func TestNextPowerOfTwo(t *testing.T) {
	cases := map[int]int{1: 1, 2: 2, 3: 4, 5: 8, 1024: 1024, 1000: 1024}
	for in, want := range cases {
		assert.Equal(t, want, nextPowerOfTwo(in), "nextPowerOfTwo(%d)", in)
	}
}
