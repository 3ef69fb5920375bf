// Package analyzer turns free-form dialogue text into moral trait scores.
// The analyzer is a pluggable boundary: the simulation core only depends
// on the interface, never on a specific backend.
package analyzer

import (
	"context"

	"github.com/Henry10296/Hegelian-AI-Framework-sub000/pkg/types"
)

// DialogueAnalyzer maps a piece of text to a trait-name to score mapping
// in [0,1], using the trait vocabulary of pkg/types.
type DialogueAnalyzer interface {
	Analyze(ctx context.Context, text string) (map[string]float64, error)
}

// Traits is the vocabulary every analyzer scores against.
var Traits = []string{
	types.TraitUtilitarian,
	types.TraitDeontological,
	types.TraitVirtue,
	types.TraitPowerDistance,
	types.TraitIndividualism,
	types.TraitUncertaintyAvoidance,
}

func clampScores(scores map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(scores))
	for name, v := range scores {
		if v < 0 {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		out[name] = v
	}
	return out
}
