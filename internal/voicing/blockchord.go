package voicing

// BlockChord harmonizes the melody in locked-hands (George Shearing) style:
// the melody note on top, with n-1 scale notes stacked immediately below
// it, each drawn from the active LCC scale.
type BlockChord struct {
	Voices int
}

// NewBlockChord builds a voicer producing n simultaneous voices (melody +
// n-1 supporting notes). n is clamped to at least 1.
func NewBlockChord(n int) *BlockChord {
	if n < 1 {
		n = 1
	}
	return &BlockChord{Voices: n}
}

func (b *BlockChord) Name() string { return "BlockChord" }

func (b *BlockChord) ProcessNote(melodyMIDI, baseVelocity int, ctx Context) []VoicedNote {
	below := findScaleNotesBelow(melodyMIDI, b.Voices-1, ctx.LCCScale)

	out := make([]VoicedNote, 0, len(below)+1)
	out = append(out, VoicedNote{MIDI: melodyMIDI, Velocity: baseVelocity, DurationSteps: 4})
	for _, midi := range below {
		out = append(out, VoicedNote{MIDI: midi, Velocity: baseVelocity - 10, DurationSteps: 4})
	}
	return out
}

func (b *BlockChord) OnStep(ctx Context) {}

func (b *BlockChord) ShouldVoice(ctx Context) bool { return true }

func (b *BlockChord) OnDensityChange(newDensity float64, steps int) {}
