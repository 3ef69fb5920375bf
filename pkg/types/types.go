// Package types defines core types for the moral society simulation.
package types

import (
	"math"
	"time"
)

// Trait names shared between genomes, moral vectors and messages.
const (
	TraitUtilitarian          = "utilitarian"
	TraitDeontological        = "deontological"
	TraitVirtue               = "virtue"
	TraitPowerDistance        = "power_distance"
	TraitIndividualism        = "individualism"
	TraitUncertaintyAvoidance = "uncertainty_avoidance"
)

// Relationship describes how the deciding agent relates to a stakeholder.
type Relationship string

const (
	RelationSelf     Relationship = "self"
	RelationFriend   Relationship = "friend"
	RelationStranger Relationship = "stranger"
	RelationEnemy    Relationship = "enemy"
)

// Stakeholder is a party affected by an ethical case.
type Stakeholder struct {
	Name         string       `json:"name"`
	Role         string       `json:"role"`
	Interests    []string     `json:"interests,omitempty"`
	Relationship Relationship `json:"relationship"`
}

// RuleViolation names a rule an action breaks and the stakeholder it wrongs.
type RuleViolation struct {
	Rule   string `json:"rule"`
	Target string `json:"target"`
}

// ActionOption is one candidate resolution of an ethical case. Options are
// immutable once constructed; scoring data lives in the open Metadata map
// under recognized keys, every absent key degrades to a neutral default.
type ActionOption struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// UtilityScores returns the per-stakeholder utility mapping, or nil.
func (o *ActionOption) UtilityScores() map[string]float64 {
	return floatMap(o.Metadata["utility_scores"])
}

// ViolatesRules returns the rule violations declared on the action.
func (o *ActionOption) ViolatesRules() []RuleViolation {
	raw, ok := o.Metadata["violates_rules"]
	if !ok {
		return nil
	}
	switch v := raw.(type) {
	case []RuleViolation:
		return v
	case []any:
		out := make([]RuleViolation, 0, len(v))
		for _, item := range v {
			m, ok := item.(map[string]any)
			if !ok {
				continue
			}
			rv := RuleViolation{}
			if s, ok := m["rule"].(string); ok {
				rv.Rule = s
			}
			if s, ok := m["target"].(string); ok {
				rv.Target = s
			}
			out = append(out, rv)
		}
		return out
	}
	return nil
}

// ExpressesVirtues returns the virtue-name to strength mapping, or nil.
func (o *ActionOption) ExpressesVirtues() map[string]float64 {
	return floatMap(o.Metadata["expresses_virtues"])
}

// UncertaintyScore returns the action's uncertainty, 0 when absent.
func (o *ActionOption) UncertaintyScore() float64 {
	return floatValue(o.Metadata["uncertainty_score"], 0)
}

// MetaFloat reads a numeric metadata value, falling back to def.
func (o *ActionOption) MetaFloat(key string, def float64) float64 {
	if o.Metadata == nil {
		return def
	}
	raw, ok := o.Metadata[key]
	if !ok {
		return def
	}
	return floatValue(raw, def)
}

func floatMap(raw any) map[string]float64 {
	switch v := raw.(type) {
	case map[string]float64:
		return v
	case map[string]any:
		out := make(map[string]float64, len(v))
		for k, item := range v {
			out[k] = floatValue(item, 0)
		}
		return out
	}
	return nil
}

func floatValue(raw any, def float64) float64 {
	switch v := raw.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return def
}

// EthicalCase is a dilemma handed to exactly one agent for resolution.
type EthicalCase struct {
	CaseID       string         `json:"case_id"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Stakeholders []Stakeholder  `json:"stakeholders"`
	Options      []ActionOption `json:"options"`
}

// FindStakeholder looks up a stakeholder by name.
func (c *EthicalCase) FindStakeholder(name string) (Stakeholder, bool) {
	for _, s := range c.Stakeholders {
		if s.Name == name {
			return s, true
		}
	}
	return Stakeholder{}, false
}

// MoralMessage carries a moral stance between agents. MoralContent is a
// deep-copied snapshot of the sender's genome taken at send time: mutating
// the sender afterwards never alters a message already in flight.
type MoralMessage struct {
	ID               string             `json:"id"`
	MoralContent     map[string]float64 `json:"moral_content"`
	OriginalSender   string             `json:"original_sender,omitempty"` // empty for external shocks
	TextContent      string             `json:"text_content"`
	EmotionalValence float64            `json:"emotional_valence"` // -1..1
	EmotionalArousal float64            `json:"emotional_arousal"` // 0..1
	SocialReward     float64            `json:"social_reward"`     // 0..1
	GroupRelevance   float64            `json:"group_relevance"`
	Urgency          float64            `json:"urgency"`
	Credibility      float64            `json:"credibility"` // 0..1
	TransmissionPath []string           `json:"transmission_path"`
	Timestamp        time.Time          `json:"timestamp"`
}

// DecayHalfLife is the time-equivalent half-life of a message's influence.
const DecayHalfLife = 7.0

// DecayedInfluence combines credibility with exponential time decay and
// harmonic per-hop decay. Strictly decreasing in both age and hop count.
func (m *MoralMessage) DecayedInfluence(now time.Time) float64 {
	age := now.Sub(m.Timestamp).Seconds()
	if age < 0 {
		age = 0
	}
	hops := len(m.TransmissionPath)
	return m.Credibility * math.Pow(0.5, age/DecayHalfLife) / (1 + float64(hops))
}

// AgentSnapshot is one agent's state inside a tick snapshot.
type AgentSnapshot struct {
	Name      string             `json:"name"`
	Genes     map[string]float64 `json:"genes"`
	LastTrace string             `json:"last_trace,omitempty"`
}

// TickSnapshot records the whole society at the end of one tick.
type TickSnapshot struct {
	Tick         int             `json:"tick"`
	Timestamp    time.Time       `json:"timestamp"`
	Agents       []AgentSnapshot `json:"agents"`
	Edges        [][2]string     `json:"edges"`
	Polarization float64         `json:"polarization"`
	Diversity    float64         `json:"diversity"`
}
