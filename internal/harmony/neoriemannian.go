package harmony

import (
	"math/rand"

	"github.com/bascanada/harmonium-sub001/internal/lcc"
	"github.com/bascanada/harmonium-sub001/internal/pitch"
)

// NROp is one of the three fundamental neo-Riemannian transformations.
type NROp int

const (
	OpP NROp = iota // Parallel: C major <-> C minor
	OpL              // Leading-tone exchange: C major <-> E minor
	OpR              // Relative: C major <-> A minor
)

func (o NROp) String() string {
	switch o {
	case OpP:
		return "P"
	case OpL:
		return "L"
	case OpR:
		return "R"
	}
	return "?"
}

// CompositeOp names a sequence of NROps applied in order.
type CompositeOp int

const (
	CompositePL CompositeOp = iota
	CompositePR
	CompositeLR
	CompositeRP
	CompositeLP
	CompositePLR
)

type triadEntry struct {
	root    pitch.PitchClass
	isMinor bool
}

// NeoRiemannianEngine holds precomputed 24-entry lookup tables (12 roots x
// major/minor) for the P, L, R transformations over triads.
type NeoRiemannianEngine struct {
	pTable, lTable, rTable [24]triadEntry
}

// NewNeoRiemannianEngine precomputes the three transformation tables.
func NewNeoRiemannianEngine() *NeoRiemannianEngine {
	e := &NeoRiemannianEngine{}
	for root := uint8(0); root < 12; root++ {
		majIdx := int(root) * 2
		minIdx := int(root)*2 + 1

		e.pTable[majIdx] = triadEntry{pitch.PitchClass(root), true}
		e.pTable[minIdx] = triadEntry{pitch.PitchClass(root), false}

		e.lTable[majIdx] = triadEntry{pitch.PitchClass((root + 4) % 12), true}
		e.lTable[minIdx] = triadEntry{pitch.PitchClass((root + 8) % 12), false}

		e.rTable[majIdx] = triadEntry{pitch.PitchClass((root + 9) % 12), true}
		e.rTable[minIdx] = triadEntry{pitch.PitchClass((root + 3) % 12), false}
	}
	return e
}

func triadIndex(c pitch.Chord) int {
	isMinor := c.Type.IsMinor()
	idx := int(c.Root) * 2
	if isMinor {
		idx++
	}
	return idx
}

// Apply performs a single P/L/R transformation on a triad.
func (e *NeoRiemannianEngine) Apply(c pitch.Chord, op NROp) pitch.Chord {
	idx := triadIndex(c)
	var entry triadEntry
	switch op {
	case OpP:
		entry = e.pTable[idx]
	case OpL:
		entry = e.lTable[idx]
	case OpR:
		entry = e.rTable[idx]
	}
	t := pitch.Major
	if entry.isMinor {
		t = pitch.Minor
	}
	return pitch.New(entry.root, t)
}

// ApplyComposite chains two transformations per the named composite.
func (e *NeoRiemannianEngine) ApplyComposite(c pitch.Chord, op CompositeOp) pitch.Chord {
	switch op {
	case CompositePL:
		return e.Apply(e.Apply(c, OpP), OpL)
	case CompositePR:
		return e.Apply(e.Apply(c, OpP), OpR)
	case CompositeLR:
		return e.Apply(e.Apply(c, OpL), OpR)
	case CompositeRP:
		return e.Apply(e.Apply(c, OpR), OpP)
	case CompositeLP:
		return e.Apply(e.Apply(c, OpL), OpP)
	case CompositePLR:
		return e.Apply(e.Apply(e.Apply(c, OpP), OpL), OpR)
	}
	return c
}

// RandomWalk produces a sequence of triads reached by uniformly random P/L/R
// choices, starting from start (inclusive).
func (e *NeoRiemannianEngine) RandomWalk(start pitch.Chord, steps int, rng *rand.Rand) []pitch.Chord {
	path := make([]pitch.Chord, 0, steps+1)
	path = append(path, start)
	current := start
	for i := 0; i < steps; i++ {
		op := NROp(rng.Intn(3))
		current = e.Apply(current, op)
		path = append(path, current)
	}
	return path
}

type triadKey struct {
	root    pitch.PitchClass
	isMinor bool
}

func keyOf(c pitch.Chord) triadKey {
	return triadKey{c.Root, c.Type.IsMinor()}
}

// FindPath runs a breadth-first search over the Tonnetz for the shortest
// sequence of P/L/R operations mapping from onto to, capped at depth 6.
// No parent pointers are stored; each queued frontier entry carries its own
// accumulated op list.
func (e *NeoRiemannianEngine) FindPath(from, to pitch.Chord) []NROp {
	target := keyOf(to)
	start := keyOf(from)
	if start == target {
		return nil
	}

	visited := map[triadKey]bool{start: true}
	type frontier struct {
		chord pitch.Chord
		path  []NROp
	}
	queue := []frontier{{from, nil}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, op := range [...]NROp{OpP, OpL, OpR} {
			next := e.Apply(cur.chord, op)
			nextKey := keyOf(next)

			if nextKey == target {
				full := make([]NROp, len(cur.path)+1)
				copy(full, cur.path)
				full[len(cur.path)] = op
				return full
			}

			if !visited[nextKey] && len(cur.path) < 6 {
				visited[nextKey] = true
				newPath := make([]NROp, len(cur.path)+1)
				copy(newPath, cur.path)
				newPath[len(cur.path)] = op
				queue = append(queue, frontier{next, newPath})
			}
		}
	}
	return nil
}

// NeoRiemannianStrategy adapts the engine's triad transformations to the
// Strategy interface: non-triad input is first reduced to the major or minor
// triad on its root, since the Tonnetz transforms are only defined over
// triads, so the result is always a triad.
type NeoRiemannianStrategy struct {
	engine *NeoRiemannianEngine
}

// NewNeoRiemannianStrategy wraps a freshly built engine.
func NewNeoRiemannianStrategy() *NeoRiemannianStrategy {
	return &NeoRiemannianStrategy{engine: NewNeoRiemannianEngine()}
}

func (s *NeoRiemannianStrategy) Name() string { return "NeoRiemannian" }

// NextChord implements Strategy.
func (s *NeoRiemannianStrategy) NextChord(ctx Context, rng *rand.Rand) Decision {
	op := ChooseOpByValence(ctx.Valence, rng)

	current := ctx.CurrentChord
	if len(current.Type.Intervals()) != 3 {
		// Triads only; treat the current root/third as implying a triad.
		quality := pitch.Major
		if current.Type.IsMinor() {
			quality = pitch.Minor
		}
		current = pitch.New(current.Root, quality)
	}

	next := s.engine.Apply(current, op)
	level := lcc.LevelForTension(ctx.Tension)
	next = next.WithLCCLevel(int(level))
	scale := lcc.Scale(lcc.ParentLydian(next), level)

	return Decision{
		NextChord:      next,
		Transition:     TransitionTransformational,
		SuggestedScale: scale,
	}
}

// ChooseOpByValence picks a P/L/R transformation weighted by valence:
// positive valence favors R (diatonic, familiar), negative favors L
// (chromatic, strange), neutral is roughly even.
func ChooseOpByValence(valence float64, rng *rand.Rand) NROp {
	r := rng.Float64()
	switch {
	case valence > 0.3:
		switch {
		case r < 0.5:
			return OpR
		case r < 0.8:
			return OpP
		default:
			return OpL
		}
	case valence < -0.3:
		switch {
		case r < 0.5:
			return OpL
		case r < 0.8:
			return OpP
		default:
			return OpR
		}
	default:
		switch {
		case r < 0.4:
			return OpP
		case r < 0.7:
			return OpL
		default:
			return OpR
		}
	}
}
