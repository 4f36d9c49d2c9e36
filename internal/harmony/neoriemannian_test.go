package harmony

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bascanada/harmonium-sub001/internal/pitch"
)

func TestNeoRiemannianInvolutions(t *testing.T) {
	e := NewNeoRiemannianEngine()
	cMaj := pitch.New(0, pitch.Major)

	for _, op := range [...]NROp{OpP, OpL, OpR} {
		once := e.Apply(cMaj, op)
		twice := e.Apply(once, op)
		assert.Equal(t, cMaj.Root, twice.Root, "%v is not an involution", op)
		assert.Equal(t, cMaj.Type, twice.Type, "%v is not an involution", op)
	}
}

func TestNeoRiemannianRelativeAndParallel(t *testing.T) {
	e := NewNeoRiemannianEngine()
	cMaj := pitch.New(0, pitch.Major)

	rResult := e.Apply(cMaj, OpR)
	assert.Equal(t, pitch.PitchClass(9), rResult.Root, "R(C major) root")
	assert.True(t, rResult.Type.IsMinor(), "R(C major) should be minor")

	pResult := e.Apply(cMaj, OpP)
	assert.Equal(t, pitch.PitchClass(0), pResult.Root, "P(C major) root")
	assert.True(t, pResult.Type.IsMinor(), "P(C major) should be minor")

	lResult := e.Apply(cMaj, OpL)
	assert.Equal(t, pitch.PitchClass(4), lResult.Root, "L(C major) root")
	assert.True(t, lResult.Type.IsMinor(), "L(C major) should be minor")
}

func TestNeoRiemannianFindPath(t *testing.T) {
	e := NewNeoRiemannianEngine()
	cMaj := pitch.New(0, pitch.Major)
	aMin := pitch.New(9, pitch.Minor)
	cMin := pitch.New(0, pitch.Minor)

	path := e.FindPath(cMaj, aMin)
	assert.Equal(t, []NROp{OpR}, path, "FindPath(C major, A minor)")

	path = e.FindPath(cMaj, cMin)
	assert.Equal(t, []NROp{OpP}, path, "FindPath(C major, C minor)")

	samePath := e.FindPath(cMaj, cMaj)
	assert.Nil(t, samePath, "FindPath(C major, C major)")
}

func TestNeoRiemannianCompositePL(t *testing.T) {
	e := NewNeoRiemannianEngine()
	cMaj := pitch.New(0, pitch.Major)

	result := e.ApplyComposite(cMaj, CompositePL)
	assert.Equal(t, pitch.PitchClass(8), result.Root, "PL(C major) root")
	assert.True(t, result.Type.IsMajor(), "PL(C major) should be major")
}

func TestNeoRiemannianRandomWalkLength(t *testing.T) {
	e := NewNeoRiemannianEngine()
	cMaj := pitch.New(0, pitch.Major)
	rng := rand.New(rand.NewSource(42))

	path := e.RandomWalk(cMaj, 8, rng)
	require.Len(t, path, 9, "start + 8 steps")
	assert.Equal(t, cMaj.Root, path[0].Root, "RandomWalk path[0] should be starting chord")
	assert.Equal(t, cMaj.Type, path[0].Type, "RandomWalk path[0] should be starting chord")
}

func TestChooseOpByValenceBands(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	op := ChooseOpByValence(0.9, rng)
	assert.Contains(t, []NROp{OpR, OpP, OpL}, op)
}
