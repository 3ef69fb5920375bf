// Package scenario loads ethical cases from YAML files so dilemmas can be
// authored outside the binary.
package scenario

import (
	"bytes"
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/Henry10296/Hegelian-AI-Framework-sub000/pkg/types"
)

// caseFile mirrors the YAML shape of an ethical case.
type caseFile struct {
	CaseID       string            `yaml:"case_id"`
	Title        string            `yaml:"title"`
	Description  string            `yaml:"description"`
	Stakeholders []stakeholderSpec `yaml:"stakeholders"`
	Options      []optionSpec      `yaml:"options"`
}

type stakeholderSpec struct {
	Name         string   `yaml:"name"`
	Role         string   `yaml:"role"`
	Interests    []string `yaml:"interests"`
	Relationship string   `yaml:"relationship"`
}

type optionSpec struct {
	Name             string              `yaml:"name"`
	Description      string              `yaml:"description"`
	UtilityScores    map[string]float64  `yaml:"utility_scores"`
	ViolatesRules    []ruleViolationSpec `yaml:"violates_rules"`
	ExpressesVirtues map[string]float64  `yaml:"expresses_virtues"`
	UncertaintyScore *float64            `yaml:"uncertainty_score"`
}

type ruleViolationSpec struct {
	Rule   string `yaml:"rule"`
	Target string `yaml:"target"`
}

var validRelationships = map[string]types.Relationship{
	string(types.RelationSelf):     types.RelationSelf,
	string(types.RelationFriend):   types.RelationFriend,
	string(types.RelationStranger): types.RelationStranger,
	string(types.RelationEnemy):    types.RelationEnemy,
}

// Parse decodes and validates a single case payload. Cases without an id
// get a generated one; stakeholders with an unknown or empty relationship
// default to stranger.
func Parse(data []byte) (*types.EthicalCase, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("scenario: case payload is empty")
	}

	var cf caseFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("scenario: decode case: %w", err)
	}
	if len(cf.Options) == 0 {
		return nil, fmt.Errorf("scenario: case %q has no options", cf.Title)
	}

	c := &types.EthicalCase{
		CaseID:      cf.CaseID,
		Title:       cf.Title,
		Description: cf.Description,
	}
	if c.CaseID == "" {
		c.CaseID = uuid.NewString()
	}

	for _, s := range cf.Stakeholders {
		rel, ok := validRelationships[s.Relationship]
		if !ok {
			rel = types.RelationStranger
		}
		c.Stakeholders = append(c.Stakeholders, types.Stakeholder{
			Name:         s.Name,
			Role:         s.Role,
			Interests:    s.Interests,
			Relationship: rel,
		})
	}

	for _, o := range cf.Options {
		meta := make(map[string]any)
		if o.UtilityScores != nil {
			meta["utility_scores"] = o.UtilityScores
		}
		if len(o.ViolatesRules) > 0 {
			violations := make([]types.RuleViolation, 0, len(o.ViolatesRules))
			for _, v := range o.ViolatesRules {
				violations = append(violations, types.RuleViolation{Rule: v.Rule, Target: v.Target})
			}
			meta["violates_rules"] = violations
		}
		if o.ExpressesVirtues != nil {
			meta["expresses_virtues"] = o.ExpressesVirtues
		}
		if o.UncertaintyScore != nil {
			meta["uncertainty_score"] = *o.UncertaintyScore
		}
		c.Options = append(c.Options, types.ActionOption{
			Name:        o.Name,
			Description: o.Description,
			Metadata:    meta,
		})
	}

	return c, nil
}

// Load reads a YAML case file from disk.
func Load(path string) (*types.EthicalCase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: read %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scenario: %s: %w", path, err)
	}
	return c, nil
}
