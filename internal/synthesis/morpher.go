package synthesis

import "math"

// quadrantWeights computes the four bilinear blend weights for a point in
// the unit square derived from (valence, arousal).
func quadrantWeights(valence, arousal float64) (calm, joy, sadness, anger float64) {
	v := (valence + 1) / 2
	a := arousal
	calm = v * (1 - a)
	joy = v * a
	sadness = (1 - v) * (1 - a)
	anger = (1 - v) * a
	return
}

func lerp4(calm, joy, sadness, anger float64, wc, wj, ws, wa float64) float64 {
	return calm*wc + joy*wj + sadness*ws + anger*wa
}

// nearest4 picks whichever of the four discrete values has the largest
// corresponding weight.
func nearest4(calm, joy, sadness, anger int, wc, wj, ws, wa float64) int {
	best, bestW := calm, wc
	if wj > bestW {
		best, bestW = joy, wj
	}
	if ws > bestW {
		best, bestW = sadness, ws
	}
	if wa > bestW {
		best, bestW = anger, wa
	}
	return best
}

// morphCacheKey identifies one instrument role's last-computed blend
// point, so Morpher.Morph can short-circuit recomputation.
type morphCacheKey struct {
	role           Role
	valence        float64
	arousal        float64
}

// Morpher owns the four-quadrant preset banks and the blended-result
// cache described in spec §4.7.
type Morpher struct {
	bank  map[Role]InstrumentPresets
	cache map[Role]morphCacheKey
	last  map[Role]SynthPreset
}

// NewMorpher builds a morpher over the given preset bank (see
// DefaultBank for a ready one).
func NewMorpher(bank map[Role]InstrumentPresets) *Morpher {
	return &Morpher{
		bank:  bank,
		cache: make(map[Role]morphCacheKey),
		last:  make(map[Role]SynthPreset),
	}
}

// Morph returns the bilinearly-blended preset for role at (valence,
// arousal), reusing the previous result when both axes moved by less than
// 0.01 since the last call for that role.
func (m *Morpher) Morph(role Role, valence, arousal float64) SynthPreset {
	if key, ok := m.cache[role]; ok {
		if math.Abs(key.valence-valence) < 0.01 && math.Abs(key.arousal-arousal) < 0.01 {
			return m.last[role]
		}
	}

	presets, ok := m.bank[role]
	if !ok {
		presets = DefaultBank()[RolePoly]
	}
	wc, wj, ws, wa := quadrantWeights(valence, arousal)
	c, j, s, a := presets.Calm, presets.Joy, presets.Sadness, presets.Anger

	out := SynthPreset{
		Osc: Osc{
			Waveform:   nearest4(c.Osc.Waveform, j.Osc.Waveform, s.Osc.Waveform, a.Osc.Waveform, wc, wj, ws, wa),
			CarrierMul: lerp4(c.Osc.CarrierMul, j.Osc.CarrierMul, s.Osc.CarrierMul, a.Osc.CarrierMul, wc, wj, ws, wa),
			ModMul:     lerp4(c.Osc.ModMul, j.Osc.ModMul, s.Osc.ModMul, a.Osc.ModMul, wc, wj, ws, wa),
			ModIndex:   lerp4(c.Osc.ModIndex, j.Osc.ModIndex, s.Osc.ModIndex, a.Osc.ModIndex, wc, wj, ws, wa),
			Detune:     lerp4(c.Osc.Detune, j.Osc.Detune, s.Osc.Detune, a.Osc.Detune, wc, wj, ws, wa),
			Octave:     nearest4(c.Osc.Octave, j.Osc.Octave, s.Osc.Octave, a.Osc.Octave, wc, wj, ws, wa),
		},
		Filter: Filter{
			Type:      nearest4(c.Filter.Type, j.Filter.Type, s.Filter.Type, a.Filter.Type, wc, wj, ws, wa),
			CutoffHz:  lerp4(c.Filter.CutoffHz, j.Filter.CutoffHz, s.Filter.CutoffHz, a.Filter.CutoffHz, wc, wj, ws, wa),
			Resonance: lerp4(c.Filter.Resonance, j.Filter.Resonance, s.Filter.Resonance, a.Filter.Resonance, wc, wj, ws, wa),
		},
		Envelope: Envelope{
			AttackSec:  lerp4(c.Envelope.AttackSec, j.Envelope.AttackSec, s.Envelope.AttackSec, a.Envelope.AttackSec, wc, wj, ws, wa),
			DecaySec:   lerp4(c.Envelope.DecaySec, j.Envelope.DecaySec, s.Envelope.DecaySec, a.Envelope.DecaySec, wc, wj, ws, wa),
			SustainLvl: lerp4(c.Envelope.SustainLvl, j.Envelope.SustainLvl, s.Envelope.SustainLvl, a.Envelope.SustainLvl, wc, wj, ws, wa),
			ReleaseSec: lerp4(c.Envelope.ReleaseSec, j.Envelope.ReleaseSec, s.Envelope.ReleaseSec, a.Envelope.ReleaseSec, wc, wj, ws, wa),
		},
		Effects: Effects{
			Drive:       lerp4(c.Effects.Drive, j.Effects.Drive, s.Effects.Drive, a.Effects.Drive, wc, wj, ws, wa),
			NoiseLevel:  lerp4(c.Effects.NoiseLevel, j.Effects.NoiseLevel, s.Effects.NoiseLevel, a.Effects.NoiseLevel, wc, wj, ws, wa),
			ChorusDepth: lerp4(c.Effects.ChorusDepth, j.Effects.ChorusDepth, s.Effects.ChorusDepth, a.Effects.ChorusDepth, wc, wj, ws, wa),
		},
		Output: Output{
			MasterGain: lerp4(c.Output.MasterGain, j.Output.MasterGain, s.Output.MasterGain, a.Output.MasterGain, wc, wj, ws, wa),
			Pan:        lerp4(c.Output.Pan, j.Output.Pan, s.Output.Pan, a.Output.Pan, wc, wj, ws, wa),
		},
	}

	m.cache[role] = morphCacheKey{role: role, valence: valence, arousal: arousal}
	m.last[role] = out
	return out
}
