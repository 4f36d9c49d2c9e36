// Package semantic is the word-tag-to-affect bridge: a fixed dictionary
// maps environmental tags ("monster", "dark", "safe") onto small deltas
// applied to a base EngineParams, summed across the whole tag list and
// clamped back into range.
package semantic

import "github.com/bascanada/harmonium-sub001/internal/emotion"

// wordWeight is one dictionary entry's contribution to the three
// affective axes a tag can move.
type wordWeight struct {
	arousalDelta float64
	valenceDelta float64
	tensionDelta float64
}

// Engine holds the fixed tag dictionary. Unknown tags have no effect;
// there is no embedding or fuzzy match, only exact dictionary lookups.
type Engine struct {
	dictionary map[string]wordWeight
}

// New builds an Engine with the default tag dictionary.
func New() *Engine {
	return &Engine{dictionary: defaultDictionary()}
}

func defaultDictionary() map[string]wordWeight {
	return map[string]wordWeight{
		// danger / combat
		"monster": {arousalDelta: 0.3, valenceDelta: -0.4, tensionDelta: 0.5},
		"danger":  {arousalDelta: 0.5, valenceDelta: -0.5, tensionDelta: 0.6},
		"boss":    {arousalDelta: 0.8, valenceDelta: -0.2, tensionDelta: 0.8},
		"combat":  {arousalDelta: 0.6, valenceDelta: -0.1, tensionDelta: 0.4},

		// atmosphere
		"dark":       {arousalDelta: -0.1, valenceDelta: -0.3, tensionDelta: 0.2},
		"scary":      {arousalDelta: 0.2, valenceDelta: -0.6, tensionDelta: 0.4},
		"mechanical": {arousalDelta: 0.0, valenceDelta: -0.1, tensionDelta: 0.3},
		"nature":     {arousalDelta: -0.2, valenceDelta: 0.4, tensionDelta: -0.2},

		// safe
		"safe":  {arousalDelta: -0.4, valenceDelta: 0.5, tensionDelta: -0.5},
		"holy":  {arousalDelta: -0.1, valenceDelta: 0.6, tensionDelta: -0.3},
		"light": {arousalDelta: 0.1, valenceDelta: 0.4, tensionDelta: -0.2},
	}
}

// Analyze sums every known tag's delta and applies the total to base,
// clamping each axis to its valid range. Unrecognized tags contribute
// nothing; an empty tag list returns base unchanged.
func (e *Engine) Analyze(tags []string, base emotion.EngineParams) emotion.EngineParams {
	target := base
	if len(tags) == 0 {
		return target
	}

	var totalArousal, totalValence, totalTension float64
	for _, tag := range tags {
		w, ok := e.dictionary[tag]
		if !ok {
			continue
		}
		totalArousal += w.arousalDelta
		totalValence += w.valenceDelta
		totalTension += w.tensionDelta
	}

	target.Arousal = clamp(target.Arousal+totalArousal, 0, 1)
	target.Valence = clamp(target.Valence+totalValence, -1, 1)
	target.Tension = clamp(target.Tension+totalTension, 0, 1)
	return target
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
