// Package ethics implements the moral vector calculus: pure scoring of
// candidate actions along utilitarian, deontological and virtue dimensions,
// Pareto filtering, and culturally-weighted scalarization.
package ethics

import (
	"github.com/Henry10296/Hegelian-AI-Framework-sub000/pkg/types"
)

// Vector is a three-dimensional moral score, each component in [0,1].
type Vector struct {
	Utilitarian   float64 `json:"utilitarian"`
	Deontological float64 `json:"deontological"`
	Virtue        float64 `json:"virtue"`
}

// Dominates reports whether v is at least as good as other on every
// dimension and strictly better on at least one.
func (v Vector) Dominates(other Vector) bool {
	if v.Utilitarian < other.Utilitarian ||
		v.Deontological < other.Deontological ||
		v.Virtue < other.Virtue {
		return false
	}
	return v.Utilitarian > other.Utilitarian ||
		v.Deontological > other.Deontological ||
		v.Virtue > other.Virtue
}

// Relationship weights applied to stakeholder utility contributions.
var utilityWeights = map[types.Relationship]float64{
	types.RelationSelf:     1.0,
	types.RelationFriend:   1.2,
	types.RelationStranger: 1.0,
	types.RelationEnemy:    0.8,
}

// Penalty multipliers for rule violations, keyed by the wronged party's
// relationship. Violating a promise to a friend weighs heavier than the
// same violation against an enemy.
var penaltyMultipliers = map[types.Relationship]float64{
	types.RelationSelf:     1.0,
	types.RelationFriend:   1.5,
	types.RelationStranger: 1.0,
	types.RelationEnemy:    0.5,
}

const rulePenalty = 0.4

// MoralVector scores an action within its case. Absent metadata degrades
// to neutral defaults, never to an error.
func MoralVector(action *types.ActionOption, c *types.EthicalCase) Vector {
	return Vector{
		Utilitarian:   utilitarianScore(action, c),
		Deontological: deontologicalScore(action, c),
		Virtue:        virtueScore(action),
	}
}

func utilitarianScore(action *types.ActionOption, c *types.EthicalCase) float64 {
	scores := action.UtilityScores()
	if scores == nil || len(c.Stakeholders) == 0 {
		return 0.5
	}

	total := 0.0
	for _, s := range c.Stakeholders {
		weight, ok := utilityWeights[s.Relationship]
		if !ok {
			weight = 1.0
		}
		total += scores[s.Name] * weight
	}

	// Normalize assuming per-stakeholder utilities of roughly +-10,
	// then remap [-1,1] to [0,1].
	normalized := total / (10 * float64(len(c.Stakeholders)))
	return clamp01((normalized + 1) / 2)
}

func deontologicalScore(action *types.ActionOption, c *types.EthicalCase) float64 {
	score := 1.0
	for _, violation := range action.ViolatesRules() {
		multiplier := 1.0
		if s, ok := c.FindStakeholder(violation.Target); ok {
			if m, ok := penaltyMultipliers[s.Relationship]; ok {
				multiplier = m
			}
		}
		score -= rulePenalty * multiplier
	}
	return clamp01(score)
}

func virtueScore(action *types.ActionOption) float64 {
	virtues := action.ExpressesVirtues()
	if len(virtues) == 0 {
		return 0.5
	}
	sum := 0.0
	for _, v := range virtues {
		sum += v
	}
	return clamp01(sum / float64(len(virtues)))
}

// ParetoFront returns the indices of non-dominated vectors, preserving
// first-seen order.
func ParetoFront(vectors []Vector) []int {
	front := make([]int, 0, len(vectors))
	for i, v := range vectors {
		dominated := false
		for j, other := range vectors {
			if i != j && other.Dominates(v) {
				dominated = true
				break
			}
		}
		if !dominated {
			front = append(front, i)
		}
	}
	return front
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
