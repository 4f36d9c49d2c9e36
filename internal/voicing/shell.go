package voicing

// Shell places the current chord's guide tones (third and seventh, or
// third and fifth for a triad) an octave below the melody — the
// minimal-note "shell voicing" bebop pianists use to imply harmony without
// obscuring a soloist.
type Shell struct{}

// NewShell returns a shell voicer.
func NewShell() *Shell { return &Shell{} }

func (s *Shell) Name() string { return "Shell" }

func (s *Shell) ProcessNote(melodyMIDI, baseVelocity int, ctx Context) []VoicedNote {
	root := ctx.ChordRootMIDI % 12
	tones := guideTones(pitchClassOf(root), ctx.ChordType)

	octave := (melodyMIDI / 12) - 1
	out := make([]VoicedNote, 0, len(tones)+1)
	out = append(out, VoicedNote{MIDI: melodyMIDI, Velocity: baseVelocity, DurationSteps: 4})
	for _, t := range tones {
		midi := octave*12 + int(t.Norm())
		out = append(out, VoicedNote{MIDI: midi, Velocity: baseVelocity - 15, DurationSteps: 4})
	}
	return out
}

func (s *Shell) OnStep(ctx Context) {}

func (s *Shell) ShouldVoice(ctx Context) bool { return true }

func (s *Shell) OnDensityChange(newDensity float64, steps int) {}
