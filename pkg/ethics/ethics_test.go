package ethics

import (
	"math"
	"testing"

	"github.com/Henry10296/Hegelian-AI-Framework-sub000/pkg/genome"
	"github.com/Henry10296/Hegelian-AI-Framework-sub000/pkg/types"
)

func TestMoralVector_NeutralDefaults(t *testing.T) {
	c := &types.EthicalCase{
		CaseID: "case-1",
		Stakeholders: []types.Stakeholder{
			{Name: "alice", Relationship: types.RelationFriend},
		},
	}
	action := &types.ActionOption{Name: "do-nothing"}

	v := MoralVector(action, c)
	if v.Utilitarian != 0.5 {
		t.Errorf("utilitarian default = %f, want 0.5", v.Utilitarian)
	}
	if v.Deontological != 1.0 {
		t.Errorf("deontological with no violations = %f, want 1.0", v.Deontological)
	}
	if v.Virtue != 0.5 {
		t.Errorf("virtue default = %f, want 0.5", v.Virtue)
	}
}

func TestMoralVector_UtilityWeighting(t *testing.T) {
	c := &types.EthicalCase{
		Stakeholders: []types.Stakeholder{
			{Name: "friend", Relationship: types.RelationFriend},
			{Name: "enemy", Relationship: types.RelationEnemy},
		},
	}
	action := &types.ActionOption{
		Name: "share",
		Metadata: map[string]any{
			"utility_scores": map[string]float64{
				"friend": 10.0,
				"enemy":  -10.0,
			},
		},
	}

	v := MoralVector(action, c)
	// (10*1.2 - 10*0.8) / (10*2) = 0.2, remapped to (0.2+1)/2 = 0.6
	if math.Abs(v.Utilitarian-0.6) > 1e-9 {
		t.Errorf("utilitarian = %f, want 0.6", v.Utilitarian)
	}
}

func TestMoralVector_DeontologicalPenalties(t *testing.T) {
	c := &types.EthicalCase{
		Stakeholders: []types.Stakeholder{
			{Name: "friend", Relationship: types.RelationFriend},
			{Name: "enemy", Relationship: types.RelationEnemy},
		},
	}

	tests := []struct {
		name   string
		target string
		want   float64
	}{
		{"friend violation weighs 1.5x", "friend", 1.0 - 0.4*1.5},
		{"enemy violation weighs 0.5x", "enemy", 1.0 - 0.4*0.5},
		{"unknown target gets neutral multiplier", "nobody", 1.0 - 0.4*1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action := &types.ActionOption{
				Name: "betray",
				Metadata: map[string]any{
					"violates_rules": []types.RuleViolation{
						{Rule: "keep promises", Target: tt.target},
					},
				},
			}
			v := MoralVector(action, c)
			if math.Abs(v.Deontological-tt.want) > 1e-9 {
				t.Errorf("deontological = %f, want %f", v.Deontological, tt.want)
			}
		})
	}
}

func TestMoralVector_DeontologicalClampsAtZero(t *testing.T) {
	c := &types.EthicalCase{
		Stakeholders: []types.Stakeholder{{Name: "a", Relationship: types.RelationFriend}},
	}
	violations := make([]types.RuleViolation, 5)
	for i := range violations {
		violations[i] = types.RuleViolation{Rule: "r", Target: "a"}
	}
	action := &types.ActionOption{
		Metadata: map[string]any{"violates_rules": violations},
	}
	if v := MoralVector(action, c); v.Deontological != 0 {
		t.Errorf("deontological should clamp to 0, got %f", v.Deontological)
	}
}

func TestMoralVector_VirtueMean(t *testing.T) {
	action := &types.ActionOption{
		Metadata: map[string]any{
			"expresses_virtues": map[string]float64{
				"courage": 0.8,
				"honesty": 0.4,
			},
		},
	}
	v := MoralVector(action, &types.EthicalCase{})
	if math.Abs(v.Virtue-0.6) > 1e-9 {
		t.Errorf("virtue = %f, want 0.6", v.Virtue)
	}
}

func TestParetoFront_StrictDomination(t *testing.T) {
	vectors := []Vector{
		{Utilitarian: 1, Deontological: 1, Virtue: 1},
		{Utilitarian: 0.5, Deontological: 0.5, Virtue: 0.5},
	}
	front := ParetoFront(vectors)
	if len(front) != 1 || front[0] != 0 {
		t.Errorf("front = %v, want [0]", front)
	}
}

func TestParetoFront_NonDominatedSet(t *testing.T) {
	vectors := []Vector{
		{Utilitarian: 1, Deontological: 0, Virtue: 0},
		{Utilitarian: 0, Deontological: 1, Virtue: 0},
		{Utilitarian: 0.5, Deontological: 0.5, Virtue: 0},
	}
	front := ParetoFront(vectors)
	if len(front) != 3 {
		t.Errorf("no vector dominates another, front = %v, want all three", front)
	}
}

func TestParetoFront_EqualVectorsAllSurvive(t *testing.T) {
	vectors := []Vector{
		{Utilitarian: 0.5, Deontological: 0.5, Virtue: 0.5},
		{Utilitarian: 0.5, Deontological: 0.5, Virtue: 0.5},
	}
	front := ParetoFront(vectors)
	if len(front) != 2 {
		t.Errorf("equal vectors do not dominate each other, front = %v", front)
	}
}

func TestCulturalScorer_Deterministic(t *testing.T) {
	g := genome.New(map[string]float64{
		types.TraitUtilitarian:   0.9,
		types.TraitDeontological: 0.1,
		types.TraitVirtue:        0.5,
	})
	scorer := DefaultCulturalScorer()
	v := Vector{Utilitarian: 1, Deontological: 0, Virtue: 0.5}
	action := &types.ActionOption{Name: "a"}

	first := scorer.Score(v, g, action)
	for i := 0; i < 100; i++ {
		if got := scorer.Score(v, g, action); got != first {
			t.Fatalf("score changed across runs: %f vs %f", got, first)
		}
	}

	// 0.9*1 + 0.1*0 + 0.5*0.5 with all cultural traits at the neutral
	// default, so no adjustment fires.
	if math.Abs(first-1.15) > 1e-9 {
		t.Errorf("score = %f, want 1.15", first)
	}
}

func TestCulturalScorer_PowerDistanceAdjustment(t *testing.T) {
	g := genome.New(map[string]float64{
		types.TraitUtilitarian:   0.5,
		types.TraitDeontological: 0.5,
		types.TraitVirtue:        0.5,
		types.TraitPowerDistance: 0.9,
	})
	scorer := DefaultCulturalScorer()
	v := Vector{Utilitarian: 0.2, Deontological: 1.0, Virtue: 0.2}
	action := &types.ActionOption{Name: "obey"}

	base := 0.2*0.5 + 1.0*0.5 + 0.2*0.5
	want := base + 1.0*(0.9-0.5)*0.3
	if got := scorer.Score(v, g, action); math.Abs(got-want) > 1e-9 {
		t.Errorf("score = %f, want %f", got, want)
	}
}

func TestCulturalScorer_IndividualismBranches(t *testing.T) {
	v := Vector{Utilitarian: 0.8, Deontological: 0.5, Virtue: 0.6}
	action := &types.ActionOption{Name: "act"}
	scorer := DefaultCulturalScorer()

	base := 0.8*0.5 + 0.5*0.5 + 0.6*0.5

	collectivist := genome.New(map[string]float64{
		types.TraitUtilitarian: 0.5, types.TraitDeontological: 0.5,
		types.TraitVirtue: 0.5, types.TraitIndividualism: 0.2,
	})
	want := base + 0.8*(0.5-0.2)*0.3
	if got := scorer.Score(v, collectivist, action); math.Abs(got-want) > 1e-9 {
		t.Errorf("collectivist score = %f, want %f", got, want)
	}

	individualist := genome.New(map[string]float64{
		types.TraitUtilitarian: 0.5, types.TraitDeontological: 0.5,
		types.TraitVirtue: 0.5, types.TraitIndividualism: 0.9,
	})
	want = base + 0.6*(0.9-0.5)*0.3
	if got := scorer.Score(v, individualist, action); math.Abs(got-want) > 1e-9 {
		t.Errorf("individualist score = %f, want %f", got, want)
	}
}

func TestCulturalScorer_UncertaintyAvoidancePenalty(t *testing.T) {
	g := genome.New(map[string]float64{
		types.TraitUtilitarian: 0.5, types.TraitDeontological: 0.5,
		types.TraitVirtue: 0.5, types.TraitUncertaintyAvoidance: 0.9,
	})
	scorer := DefaultCulturalScorer()
	v := Vector{Utilitarian: 0.5, Deontological: 0.5, Virtue: 0.5}

	risky := &types.ActionOption{
		Name:     "gamble",
		Metadata: map[string]any{"uncertainty_score": 0.8},
	}
	safe := &types.ActionOption{Name: "wait"}

	riskyScore := scorer.Score(v, g, risky)
	safeScore := scorer.Score(v, g, safe)
	wantDiff := 0.8 * (0.9 - 0.5) * 0.3
	if math.Abs((safeScore-riskyScore)-wantDiff) > 1e-9 {
		t.Errorf("uncertainty penalty = %f, want %f", safeScore-riskyScore, wantDiff)
	}
}
