package voicing

// Monophonic passes the melody note through unchanged. Used for
// single-note instruments (winds, brass, lead voice) that cannot play
// chords.
type Monophonic struct {
	NoteDuration int
}

// NewMonophonic returns a voicer with the default 8th-note duration.
func NewMonophonic() *Monophonic {
	return &Monophonic{NoteDuration: 2}
}

func (m *Monophonic) Name() string { return "Monophonic" }

func (m *Monophonic) ProcessNote(melodyMIDI, baseVelocity int, ctx Context) []VoicedNote {
	return []VoicedNote{{MIDI: melodyMIDI, Velocity: baseVelocity, DurationSteps: m.NoteDuration}}
}

func (m *Monophonic) OnStep(ctx Context) {}

func (m *Monophonic) ShouldVoice(ctx Context) bool { return true }

func (m *Monophonic) OnDensityChange(newDensity float64, steps int) {}
