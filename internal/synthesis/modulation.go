package synthesis

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Modulate applies the tension/density layer on top of a morphed preset
// (spec §4.8), returning a new preset rather than mutating in place so
// the morph cache's stored value is never aliased.
func Modulate(p SynthPreset, tension, density float64) SynthPreset {
	out := p

	out.Osc.Detune = clamp01(p.Osc.Detune + tension*0.3)
	out.Effects.Drive = p.Effects.Drive + tension*1.5
	out.Filter.Resonance = clamp(p.Filter.Resonance+tension*0.3, 0, 0.95)
	out.Effects.NoiseLevel = clamp01(p.Effects.NoiseLevel + tension*0.2)

	out.Envelope.AttackSec = maxFloat(p.Envelope.AttackSec*(1-density*0.3), 0.001)
	out.Envelope.ReleaseSec = maxFloat(p.Envelope.ReleaseSec*(1-density*0.4), 0.001)

	out.Effects.ChorusDepth = clamp01(p.Effects.ChorusDepth + density*0.2)

	return out
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
