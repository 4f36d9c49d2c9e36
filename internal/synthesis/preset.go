// Package synthesis owns the preset morpher and modulation layer that sit
// between the emotion mapper and the synth backend: four fixed quadrant
// presets per instrument role are bilinearly blended by (valence, arousal),
// then the tension/density modulation layer nudges the blended result.
//
// Field groupings (Osc/Filter/Envelope/Effects/Output) and their defaults
// are grounded on the teacher's per-engine Params structs
// (internal/fm.Params, internal/nesapu.Params): carrier/mod ratios and
// index from fm, attack/decay/sustain/release and master gain common to
// both, noise level generalized from nesapu's NoiseGain, filter cutoff
// from both engines' LPFCutoff.
package synthesis

// Osc holds the oscillator-stage parameters.
type Osc struct {
	Waveform   int     `toml:"waveform"` // nearest-neighbor discrete: 0=sine,1=saw,2=square,3=triangle,4=noise
	CarrierMul float64 `toml:"carrier_mul"`
	ModMul     float64 `toml:"mod_mul"`
	ModIndex   float64 `toml:"mod_index"`
	Detune     float64 `toml:"detune"` // fraction of a semitone
	Octave     int     `toml:"octave"` // nearest-neighbor discrete
}

// Filter holds the filter-stage parameters.
type Filter struct {
	Type      int     `toml:"type"` // nearest-neighbor discrete: 0=LP,1=BP,2=HP
	CutoffHz  float64 `toml:"cutoff_hz"`
	Resonance float64 `toml:"resonance"`
}

// Envelope holds the amplitude envelope.
type Envelope struct {
	AttackSec  float64 `toml:"attack_sec"`
	DecaySec   float64 `toml:"decay_sec"`
	SustainLvl float64 `toml:"sustain_lvl"`
	ReleaseSec float64 `toml:"release_sec"`
}

// Effects holds post-voice processing parameters.
type Effects struct {
	Drive       float64 `toml:"drive"`
	NoiseLevel  float64 `toml:"noise_level"`
	ChorusDepth float64 `toml:"chorus_depth"`
}

// Output holds the final gain stage.
type Output struct {
	MasterGain float64 `toml:"master_gain"`
	Pan        float64 `toml:"pan"`
}

// SynthPreset is one instrument role's full parameter bundle at one
// emotional quadrant corner. Cloneable by value; callers never alias one
// across backends.
type SynthPreset struct {
	Osc      Osc      `toml:"osc"`
	Filter   Filter   `toml:"filter"`
	Envelope Envelope `toml:"envelope"`
	Effects  Effects  `toml:"effects"`
	Output   Output   `toml:"output"`
}

// Role identifies which channel/instrument a preset bank entry belongs to.
type Role int

const (
	RoleBass Role = iota
	RoleLead
	RoleSnare
	RoleHat
	RolePoly
)

// Quadrant names one of the four fixed emotional corners a preset bank is
// defined at.
type Quadrant int

const (
	QuadrantCalm Quadrant = iota
	QuadrantJoy
	QuadrantSadness
	QuadrantAnger
)

// InstrumentPresets is the four-corner preset bank for one instrument
// role.
type InstrumentPresets struct {
	Calm, Joy, Sadness, Anger SynthPreset
}

// DefaultBank returns a full five-role preset bank seeded from the
// teacher engines' DefaultParams(), varied per quadrant along brightness
// (cutoff/drive) and envelope speed so the four corners are audibly
// distinct starting points, matching the "cloneable, never aliased"
// invariant by returning fresh values each call.
func DefaultBank() map[Role]InstrumentPresets {
	base := SynthPreset{
		Osc:      Osc{Waveform: 1, CarrierMul: 1.0, ModMul: 2.0, ModIndex: 1.6, Octave: 3},
		Filter:   Filter{Type: 0, CutoffHz: 4000, Resonance: 0.2},
		Envelope: Envelope{AttackSec: 0.005, DecaySec: 0.12, SustainLvl: 0.75, ReleaseSec: 0.2},
		Effects:  Effects{Drive: 0.0, NoiseLevel: 0.0, ChorusDepth: 0.1},
		Output:   Output{MasterGain: 0.45, Pan: 0},
	}

	calm := base
	calm.Filter.CutoffHz = 1800
	calm.Envelope.AttackSec = 0.05
	calm.Envelope.ReleaseSec = 0.6
	calm.Effects.ChorusDepth = 0.3

	joy := base
	joy.Filter.CutoffHz = 6000
	joy.Envelope.AttackSec = 0.002
	joy.Envelope.ReleaseSec = 0.1
	joy.Osc.Octave = 4

	sadness := base
	sadness.Filter.CutoffHz = 1200
	sadness.Envelope.AttackSec = 0.15
	sadness.Envelope.ReleaseSec = 1.2
	sadness.Osc.Octave = 2

	anger := base
	anger.Filter.CutoffHz = 8000
	anger.Filter.Resonance = 0.5
	anger.Effects.Drive = 0.6
	anger.Envelope.AttackSec = 0.001
	anger.Envelope.ReleaseSec = 0.08

	roles := []Role{RoleBass, RoleLead, RoleSnare, RoleHat, RolePoly}
	bank := make(map[Role]InstrumentPresets, len(roles))
	for _, r := range roles {
		bank[r] = InstrumentPresets{Calm: calm, Joy: joy, Sadness: sadness, Anger: anger}
	}
	return bank
}
