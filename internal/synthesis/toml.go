package synthesis

import (
	"github.com/bascanada/harmonium-sub001/internal/herrors"
	toml "github.com/pelletier/go-toml/v2"
)

// rawBank is the on-disk shape of a preset TOML document: one table per
// role, one sub-table per quadrant, fields named exactly as the Go struct
// tags above.
type rawBank struct {
	Bass  InstrumentPresets `toml:"bass"`
	Lead  InstrumentPresets `toml:"lead"`
	Snare InstrumentPresets `toml:"snare"`
	Hat   InstrumentPresets `toml:"hat"`
	Poly  InstrumentPresets `toml:"poly"`
}

// LoadBank parses a preset bank from TOML bytes and validates the bounded
// fields: filter resonance, sustain level and master gain must each lie in
// [0, 1]. Other fields are not range-checked.
func LoadBank(data []byte) (map[Role]InstrumentPresets, error) {
	var raw rawBank
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, herrors.Wrap(err, "parsing synth preset TOML")
	}

	bank := map[Role]InstrumentPresets{
		RoleBass:  raw.Bass,
		RoleLead:  raw.Lead,
		RoleSnare: raw.Snare,
		RoleHat:   raw.Hat,
		RolePoly:  raw.Poly,
	}
	for role, ip := range bank {
		for _, p := range []SynthPreset{ip.Calm, ip.Joy, ip.Sadness, ip.Anger} {
			if err := validatePreset(p); err != nil {
				return nil, herrors.Wrapf(err, "role %d", role)
			}
		}
	}
	return bank, nil
}

func validatePreset(p SynthPreset) error {
	if p.Filter.Resonance < 0 || p.Filter.Resonance > 1 {
		return herrors.ErrConfigInvalid
	}
	if p.Envelope.SustainLvl < 0 || p.Envelope.SustainLvl > 1 {
		return herrors.ErrConfigInvalid
	}
	if p.Output.MasterGain < 0 || p.Output.MasterGain > 1 {
		return herrors.ErrConfigInvalid
	}
	return nil
}
