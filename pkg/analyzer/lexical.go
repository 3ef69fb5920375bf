package analyzer

import (
	"context"
	"strings"

	"github.com/Henry10296/Hegelian-AI-Framework-sub000/pkg/types"
)

// LexicalAnalyzer scores text by counting trait-associated keywords.
// Deterministic and dependency-free; the offline fallback when no model
// backend is configured, and the default in tests.
type LexicalAnalyzer struct{}

// NewLexicalAnalyzer creates a keyword-based analyzer.
func NewLexicalAnalyzer() *LexicalAnalyzer {
	return &LexicalAnalyzer{}
}

var traitKeywords = map[string][]string{
	types.TraitUtilitarian: {
		"welfare", "benefit", "outcome", "greater good", "consequence",
		"happiness", "majority", "utility",
	},
	types.TraitDeontological: {
		"duty", "rule", "obligation", "promise", "principle", "forbidden",
		"rights", "law",
	},
	types.TraitVirtue: {
		"character", "honest", "courage", "integrity", "compassion",
		"virtuous", "kind", "generous",
	},
	types.TraitPowerDistance: {
		"authority", "obey", "hierarchy", "superior", "command", "respect",
	},
	types.TraitIndividualism: {
		"myself", "personal", "freedom", "independent", "my own", "self",
	},
	types.TraitUncertaintyAvoidance: {
		"risk", "uncertain", "careful", "safe", "cautious", "guarantee",
	},
}

// Analyze counts keyword hits per trait and maps each count to a score:
// 0.5 neutral baseline plus 0.1 per hit, capped at 1.0. Never errors.
func (a *LexicalAnalyzer) Analyze(_ context.Context, text string) (map[string]float64, error) {
	lower := strings.ToLower(text)

	scores := make(map[string]float64, len(Traits))
	for _, trait := range Traits {
		hits := 0
		for _, kw := range traitKeywords[trait] {
			hits += strings.Count(lower, kw)
		}
		scores[trait] = 0.5 + 0.1*float64(hits)
	}
	return clampScores(scores), nil
}
