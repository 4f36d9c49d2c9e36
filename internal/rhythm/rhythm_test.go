package rhythm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBjorklundDistributesPulses(t *testing.T) {
	pattern := Bjorklund(4, 16)
	count := 0
	for _, b := range pattern {
		if b {
			count++
		}
	}
	assert.Equal(t, 4, count, "Bjorklund(4,16) pulse count")
	require.Len(t, pattern, 16)
}

func TestBjorklundKnownPattern(t *testing.T) {
	// E(3,8) is the canonical Cuban tresillo: x..x..x.
	got := Bjorklund(3, 8)
	want := []bool{true, false, false, true, false, false, true, false}
	assert.Equal(t, want, got)
}

func TestBjorklundEdgeCases(t *testing.T) {
	empty := Bjorklund(0, 8)
	require.Len(t, empty, 8)
	for _, b := range empty {
		assert.False(t, b, "Bjorklund(0,8) should have no pulses")
	}
	full := Bjorklund(8, 8)
	for _, b := range full {
		assert.True(t, b, "Bjorklund(8,8) should be all pulses")
	}
}

func TestRotate(t *testing.T) {
	pattern := []bool{true, false, false, false}
	got := Rotate(pattern, 1)
	want := []bool{false, false, false, true}
	assert.Equal(t, want, got)
}

func TestSequencerStepWrapsInRange(t *testing.T) {
	s := New(Euclidean, 16, 4, 0)
	for i := 0; i < 100; i++ {
		s.Tick()
		assert.GreaterOrEqual(t, s.Step(), 0)
		assert.Less(t, s.Step(), s.Steps)
	}
}

func TestSequencerPulsesClampToSteps(t *testing.T) {
	s := New(Euclidean, 8, 99, 0)
	assert.Equal(t, 8, s.Pulses, "pulses should clamp to steps")
}

func TestSequencerZeroStepsRejected(t *testing.T) {
	s := New(Euclidean, 0, 4, 0)
	assert.Equal(t, 16, s.Steps, "steps should default to 16 when constructed with 0")
}

func TestClassicGrooveFourOnFloor(t *testing.T) {
	s := New(ClassicGroove, 16, 0, 0)
	s.Density = 0.5
	s.RegeneratePattern()

	var kicks []int
	for i := 0; i < 16; i++ {
		s.Tick()
		if s.kickPattern[s.step] {
			kicks = append(kicks, s.step)
		}
	}
	want := map[int]bool{0: true, 4: true, 8: true, 12: true}
	for _, k := range kicks {
		assert.True(t, want[k], "unexpected four-on-floor kick at step %d", k)
	}
}

func TestMelodyFiresOnEvenSteps(t *testing.T) {
	s := New(Euclidean, 16, 4, 0)
	for i := 0; i < 16; i++ {
		trig := s.Tick()
		assert.Equal(t, s.step%2 == 0, trig.Melody, "melody trigger mismatch at step %d", s.step)
	}
}

func TestPerfectBalancePolygonVertexSelection(t *testing.T) {
	s := New(PerfectBalance, 32, 0, 0)
	s.Density = 0.2
	s.RegeneratePattern()
	// kick should use 2 vertices at low density: fires at steps where
	// i*2 mod 32 < 2, i.e. i in {0, 16}.
	onCount := 0
	for i := 0; i < 32; i++ {
		if s.kickPattern[i] {
			onCount++
		}
	}
	assert.Equal(t, 2, onCount, "low-density kick onset count")
}
