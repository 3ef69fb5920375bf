package network

import (
	"math"
	"time"

	"github.com/Henry10296/Hegelian-AI-Framework-sub000/pkg/genome"
	"github.com/Henry10296/Hegelian-AI-Framework-sub000/pkg/types"
)

// ContagionModel computes the probability that a moral message propagates
// from a sender to a receiver. The model combines a motivation term (how
// much the receiver wants to adopt the stance), an attention term (how
// likely the receiver is to notice it) and a network-design term (how
// strong the channel is), each weighted, then discounts by message decay.
type ContagionModel struct {
	MotivationWeight float64
	AttentionWeight  float64
	DesignWeight     float64
}

// DefaultContagionModel returns the standard weighting.
func DefaultContagionModel() *ContagionModel {
	return &ContagionModel{
		MotivationWeight: 0.4,
		AttentionWeight:  0.3,
		DesignWeight:     0.3,
	}
}

// Probability returns the chance in [0,1] that msg propagates from sender
// to the receiver with the given genome over the given graph.
func (m *ContagionModel) Probability(
	msg *types.MoralMessage,
	sender, receiver string,
	receiverGenome *genome.MoralGenome,
	graph *SocialGraph,
	totalAgents int,
	now time.Time,
) float64 {
	motivation := m.motivation(msg, receiverGenome)
	attention := m.attention(msg, sender, graph, totalAgents)
	design := m.design(sender, receiver, graph)

	total := m.MotivationWeight*motivation +
		m.AttentionWeight*attention +
		m.DesignWeight*design

	return clamp01(total * msg.DecayedInfluence(now))
}

// motivation averages intrinsic motivation (value similarity between the
// receiver and the embedded genome) with extrinsic motivation (social
// reward scaled by the receiver's reward sensitivity, proxied by its
// utilitarian trait).
func (m *ContagionModel) motivation(msg *types.MoralMessage, g *genome.MoralGenome) float64 {
	intrinsic := g.Similarity(msg.MoralContent)
	extrinsic := msg.SocialReward * g.Trait(types.TraitUtilitarian)
	return (intrinsic + extrinsic) / 2
}

// attention averages the sender's degree centrality with the affective
// salience of the message itself.
func (m *ContagionModel) attention(msg *types.MoralMessage, sender string, graph *SocialGraph, totalAgents int) float64 {
	centrality := graph.DegreeCentrality(sender, totalAgents)
	affect := msg.EmotionalArousal * (math.Abs(msg.EmotionalValence) + 0.5)
	return (centrality + affect) / 2
}

// design models relationship strength: only direct-edge propagation is
// first-class, everything else is a weak background channel.
func (m *ContagionModel) design(sender, receiver string, graph *SocialGraph) float64 {
	if graph.HasEdge(sender, receiver) {
		return 1.0
	}
	return 0.2
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
