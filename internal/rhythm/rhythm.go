// Package rhythm generates per-step kick/snare/hat/melody triggers from
// three interchangeable pattern algorithms: Euclidean (Bjorklund's
// algorithm), Perfect Balance (superimposed regular polygons), and Classic
// Groove (fixed density-banded drum patterns).
package rhythm

// Mode selects which pattern algorithm drives the sequencer.
type Mode int

const (
	Euclidean Mode = iota
	PerfectBalance
	ClassicGroove
)

// Trigger is the per-step record emitted by tick().
type Trigger struct {
	Kick     bool
	Snare    bool
	Hat      bool
	Melody   bool
	Velocity float32
}

// Sequencer holds the step counter, tempo-independent pattern state, and
// the precomputed trigger vectors for the active mode. regeneratePattern
// is O(steps) and must never be called from the audio-render path; tick
// only indexes into already-computed slices.
type Sequencer struct {
	Mode Mode

	Steps    int
	Pulses   int
	Rotation int

	SecondarySteps    int
	SecondaryPulses   int
	SecondaryRotation int

	Density float64
	Tension float64

	step          int
	secondaryStep int

	kickPattern   []bool
	snarePattern  []bool
	hatPattern    []bool
	secondaryKick []bool
}

// New constructs a sequencer and computes its initial pattern. Steps=0 is
// rejected by clamping to 16, matching the "steps=0 rejected at
// construction" failure mode.
func New(mode Mode, steps, pulses, rotation int) *Sequencer {
	if steps <= 0 {
		steps = 16
	}
	s := &Sequencer{
		Mode:           mode,
		Steps:          steps,
		Pulses:         clampInt(pulses, 0, steps),
		Rotation:       rotation,
		SecondarySteps: 12,
	}
	s.RegeneratePattern()
	return s
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// RegeneratePattern recomputes the trigger vectors for the current mode
// and parameters. Invalid pulses>steps clamps to steps.
func (s *Sequencer) RegeneratePattern() {
	if s.Steps <= 0 {
		s.Steps = 16
	}
	s.Pulses = clampInt(s.Pulses, 0, s.Steps)

	switch s.Mode {
	case Euclidean:
		s.regenerateEuclidean()
	case PerfectBalance:
		s.regeneratePerfectBalance()
	case ClassicGroove:
		s.regenerateClassicGroove()
	}

	if s.SecondarySteps <= 0 {
		s.SecondarySteps = 12
	}
	secPulses := clampInt(s.SecondaryPulses, 0, s.SecondarySteps)
	s.secondaryKick = Rotate(Bjorklund(secPulses, s.SecondarySteps), s.SecondaryRotation)
}

func (s *Sequencer) regenerateEuclidean() {
	base := Bjorklund(s.Pulses, s.Steps)
	s.kickPattern = Rotate(base, s.Rotation)
	s.snarePattern = make([]bool, s.Steps)
	s.hatPattern = make([]bool, s.Steps)
}

// polygonFires reports whether vertex-count v fires at step i on a grid
// of the given size, per i*v mod steps < v, after a rotation shift.
func polygonFires(i, v, steps, rotation int) bool {
	if v <= 0 || steps <= 0 {
		return false
	}
	shifted := (i + rotation) % steps
	return (shifted*v)%steps < v
}

func (s *Sequencer) regeneratePerfectBalance() {
	kickV := 2
	if s.Density >= 0.3 {
		kickV = 4
	}
	snareV := 3
	if s.Density >= 0.5 {
		snareV = 6
	}
	var hatV int
	switch {
	case s.Density < 0.25:
		hatV = 6
	case s.Density < 0.6:
		hatV = 8
	case s.Density < 0.85:
		hatV = 12
	default:
		hatV = 16
	}

	s.kickPattern = make([]bool, s.Steps)
	s.snarePattern = make([]bool, s.Steps)
	s.hatPattern = make([]bool, s.Steps)
	for i := 0; i < s.Steps; i++ {
		s.kickPattern[i] = polygonFires(i, kickV, s.Steps, s.Rotation)
		s.snarePattern[i] = polygonFires(i, snareV, s.Steps, s.Rotation)
		s.hatPattern[i] = polygonFires(i, hatV, s.Steps, s.Rotation)
	}
}

// classicGrooveSteps is the fixed grid size classic-groove patterns are
// authored against: one bar of 16th notes.
const classicGrooveSteps = 16

// Fixed classic-groove patterns, authored as four genre-standard drum
// feels selected by density zone (thresholds 0.2/0.5/0.9): half-time,
// backbeat, four-on-floor, breakbeat.
var (
	halfTimeKick    = []int{0}
	halfTimeSnare   = []int{8}
	backbeatKick    = []int{0, 6}
	backbeatSnare   = []int{4, 12}
	fourOnFloorKick = []int{0, 4, 8, 12}
	fourOnFloorHat  = []int{0, 2, 4, 6, 8, 10, 12, 14}
	breakbeatKick   = []int{0, 10}
	breakbeatSnare  = []int{4, 12}
	breakbeatHat    = []int{0, 3, 6, 8, 11, 14}
)

func patternFromSteps(hits []int, steps int) []bool {
	out := make([]bool, steps)
	for _, h := range hits {
		if h >= 0 && h < steps {
			out[h] = true
		}
	}
	return out
}

func (s *Sequencer) regenerateClassicGroove() {
	s.Steps = classicGrooveSteps
	switch {
	case s.Density < 0.2:
		s.kickPattern = patternFromSteps(halfTimeKick, s.Steps)
		s.snarePattern = patternFromSteps(halfTimeSnare, s.Steps)
		s.hatPattern = patternFromSteps(fourOnFloorHat, s.Steps)
	case s.Density < 0.5:
		s.kickPattern = patternFromSteps(backbeatKick, s.Steps)
		s.snarePattern = patternFromSteps(backbeatSnare, s.Steps)
		s.hatPattern = patternFromSteps(fourOnFloorHat, s.Steps)
	case s.Density < 0.9:
		s.kickPattern = patternFromSteps(fourOnFloorKick, s.Steps)
		s.snarePattern = patternFromSteps(backbeatSnare, s.Steps)
		s.hatPattern = patternFromSteps(fourOnFloorHat, s.Steps)
	default:
		s.kickPattern = patternFromSteps(breakbeatKick, s.Steps)
		s.snarePattern = patternFromSteps(breakbeatSnare, s.Steps)
		s.hatPattern = patternFromSteps(breakbeatHat, s.Steps)
	}
}

// Tick advances the step counter, wraps at Steps, and emits the
// precomputed trigger for the new step.
func (s *Sequencer) Tick() Trigger {
	s.step = (s.step + 1) % s.Steps
	if s.SecondarySteps > 0 {
		s.secondaryStep = (s.secondaryStep + 1) % s.SecondarySteps
	}

	kick := s.kickPattern[s.step]
	snare := s.snarePattern[s.step]
	hat := s.hatPattern[s.step]

	if s.Mode == Euclidean && len(s.secondaryKick) > 0 {
		snare = snare || s.secondaryKick[s.secondaryStep]
	}

	melody := s.step%2 == 0

	return Trigger{
		Kick:     kick,
		Snare:    snare,
		Hat:      hat,
		Melody:   melody,
		Velocity: s.velocityFor(s.step, kick || snare || hat),
	}
}

// velocityFor scales accent strength by position in the cycle: beat-1
// (step 0) and the downbeat of each quarter-note group are accented.
func (s *Sequencer) velocityFor(step int, onset bool) float32 {
	if !onset {
		return 0
	}
	if step == 0 {
		return 1.0
	}
	if s.Steps >= 4 && step%(s.Steps/4) == 0 {
		return 0.85
	}
	return 0.65
}

// Step returns the current step index, always in [0, Steps).
func (s *Sequencer) Step() int { return s.step }
