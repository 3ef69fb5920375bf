package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Henry10296/Hegelian-AI-Framework-sub000/pkg/types"
)

const sampleCase = `
case_id: whistleblower
title: Report the safety violation
description: An engineer discovers a safety flaw their friend concealed.
stakeholders:
  - name: colleague
    role: engineer
    relationship: friend
    interests: [career, loyalty]
  - name: public
    role: community
    relationship: stranger
options:
  - name: report
    description: File a formal report.
    utility_scores:
      colleague: -8.0
      public: 9.0
    expresses_virtues:
      honesty: 0.9
    uncertainty_score: 0.3
  - name: stay silent
    description: Say nothing.
    utility_scores:
      colleague: 7.0
      public: -6.0
    violates_rules:
      - rule: duty to warn
        target: public
`

func TestParse(t *testing.T) {
	c, err := Parse([]byte(sampleCase))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if c.CaseID != "whistleblower" {
		t.Errorf("case id = %q", c.CaseID)
	}
	if len(c.Stakeholders) != 2 || len(c.Options) != 2 {
		t.Fatalf("parsed %d stakeholders, %d options", len(c.Stakeholders), len(c.Options))
	}
	if c.Stakeholders[0].Relationship != types.RelationFriend {
		t.Errorf("relationship = %s, want friend", c.Stakeholders[0].Relationship)
	}

	report := c.Options[0]
	if scores := report.UtilityScores(); scores["public"] != 9.0 {
		t.Errorf("utility_scores not carried into metadata: %v", scores)
	}
	if report.UncertaintyScore() != 0.3 {
		t.Errorf("uncertainty = %f, want 0.3", report.UncertaintyScore())
	}

	silent := c.Options[1]
	violations := silent.ViolatesRules()
	if len(violations) != 1 || violations[0].Target != "public" {
		t.Errorf("violations = %v", violations)
	}
	if silent.UncertaintyScore() != 0 {
		t.Errorf("absent uncertainty must default to 0, got %f", silent.UncertaintyScore())
	}
}

func TestParse_Defaults(t *testing.T) {
	c, err := Parse([]byte(`
title: minimal
stakeholders:
  - name: someone
    relationship: sworn_rival
options:
  - name: only
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if c.CaseID == "" {
		t.Error("missing case id must be generated")
	}
	if c.Stakeholders[0].Relationship != types.RelationStranger {
		t.Errorf("unknown relationship must default to stranger, got %s", c.Stakeholders[0].Relationship)
	}
}

func TestParse_Rejects(t *testing.T) {
	if _, err := Parse([]byte("  \n")); err == nil {
		t.Error("empty payload must be rejected")
	}
	if _, err := Parse([]byte("title: no options\n")); err == nil {
		t.Error("case without options must be rejected")
	}
	if _, err := Parse([]byte("::not yaml::")); err == nil {
		t.Error("malformed yaml must be rejected")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "case.yaml")
	if err := os.WriteFile(path, []byte(sampleCase), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Title != "Report the safety violation" {
		t.Errorf("title = %q", c.Title)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing file must error")
	}
}
