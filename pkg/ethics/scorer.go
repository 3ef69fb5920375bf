package ethics

import (
	"github.com/Henry10296/Hegelian-AI-Framework-sub000/pkg/genome"
	"github.com/Henry10296/Hegelian-AI-Framework-sub000/pkg/types"
)

// CulturalScorer collapses a moral vector into one scalar, weighted by the
// agent's genome and adjusted by its cultural traits. Scoring is fully
// deterministic: identical genome and vector always yield the same score.
type CulturalScorer struct {
	// AdjustmentFactor scales every cultural adjustment term.
	AdjustmentFactor float64
	// Threshold gates which cultural traits are pronounced enough to
	// adjust the score at all.
	Threshold float64
}

// DefaultCulturalScorer returns a scorer with the standard constants.
func DefaultCulturalScorer() *CulturalScorer {
	return &CulturalScorer{
		AdjustmentFactor: 0.3,
		Threshold:        0.6,
	}
}

// Score computes base scalarization plus cultural adjustments.
func (s *CulturalScorer) Score(v Vector, g *genome.MoralGenome, action *types.ActionOption) float64 {
	score := v.Utilitarian*g.Trait(types.TraitUtilitarian) +
		v.Deontological*g.Trait(types.TraitDeontological) +
		v.Virtue*g.Trait(types.TraitVirtue)

	// Authority-respecting cultures weight rule compliance more.
	if pd := g.Trait(types.TraitPowerDistance); pd > s.Threshold {
		score += v.Deontological * (pd - 0.5) * s.AdjustmentFactor
	}

	// Collectivist cultures weight aggregate welfare, individualist
	// cultures weight personal character.
	if ind := g.Trait(types.TraitIndividualism); ind < 1-s.Threshold {
		score += v.Utilitarian * (0.5 - ind) * s.AdjustmentFactor
	} else if ind > s.Threshold {
		score += v.Virtue * (ind - 0.5) * s.AdjustmentFactor
	}

	// Uncertainty-avoidant cultures penalize risky actions.
	if ua := g.Trait(types.TraitUncertaintyAvoidance); ua > s.Threshold {
		score -= action.UncertaintyScore() * (ua - 0.5) * s.AdjustmentFactor
	}

	return score
}
