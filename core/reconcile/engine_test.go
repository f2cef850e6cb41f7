package reconcile

import (
	"context"
	"strings"
	"testing"

	"rule-sync/core/rule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	name  string
	rules []rule.Rule
	errs  []string
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Export(context.Context) ([]rule.Rule, []string) {
	return s.rules, s.errs
}

func snapshotOf(r rule.Rule) BaselineSnapshot {
	return BaselineSnapshot{
		RuleID:      r.ID(),
		RuleName:    r.Name(),
		RuleHash:    rule.Fingerprint(r),
		RuleContent: r,
		Enabled:     r.Enabled(),
		Severity:    r.Severity(),
	}
}

func findChange(t *testing.T, report *Report, ruleID string) ChangeRecord {
	t.Helper()
	for _, c := range report.Changes {
		if c.RuleID == ruleID {
			return c
		}
	}
	t.Fatalf("no change record for %s", ruleID)
	return ChangeRecord{}
}

func TestEngineDetect_NewModifiedDeleted(t *testing.T) {
	prev := rule.Rule{
		"rule_id":  "r-1",
		"name":     "Suspicious Login",
		"enabled":  true,
		"severity": "low",
		"query":    "Q1",
	}
	curr := rule.Rule{
		"rule_id":  "r-1",
		"name":     "Suspicious Login",
		"enabled":  false,
		"severity": "high",
		"query":    "Q2",
	}
	added := rule.Rule{"rule_id": "r-2", "name": "Brand New", "enabled": true}
	gone := rule.Rule{"rule_id": "r-3", "name": "Retired", "enabled": true}

	baseline := []BaselineSnapshot{snapshotOf(prev), snapshotOf(gone)}
	structured := &stubSource{name: "structured", rules: []rule.Rule{curr, added}}
	raw := &stubSource{name: "raw"}

	report := NewEngine(nil).Detect(context.Background(), structured, raw, baseline)
	require.Len(t, report.Changes, 3)
	assert.Len(t, report.CurrentRules, 2)

	modified := findChange(t, report, "r-1")
	assert.Equal(t, []ChangeKind{ChangeRuleDisabled, ChangeSeverityChanged, ChangeQueryChanged}, modified.ChangeTypes)
	assert.Equal(t, "Rule was disabled; Severity changed: low -> high; Detection query was modified", modified.DiffSummary)
	assert.Equal(t, rule.Fingerprint(curr), modified.CurrentHash)
	assert.NotNil(t, modified.PreviousState)
	require.NotNil(t, modified.TOMLContent)
	assert.Contains(t, *modified.TOMLContent, "[rule]")

	created := findChange(t, report, "r-2")
	assert.Equal(t, []ChangeKind{ChangeNewRule}, created.ChangeTypes)
	assert.Nil(t, created.PreviousState)

	deleted := findChange(t, report, "r-3")
	assert.Equal(t, []ChangeKind{ChangeDeletedRule}, deleted.ChangeTypes)
	assert.Equal(t, "Rule deleted: Retired", deleted.DiffSummary)
	assert.Nil(t, deleted.CurrentState)
	assert.Nil(t, deleted.TOMLContent)
}

func TestEngineDetect_UnchangedRuleEmitsNothing(t *testing.T) {
	r := rule.Rule{"rule_id": "r-1", "name": "Stable", "enabled": true, "query": "Q"}
	baseline := []BaselineSnapshot{snapshotOf(r)}

	// Volatile fields never move the fingerprint.
	exported := r.Clone()
	exported["revision"] = 7
	exported["updated_at"] = "2026-08-31T00:00:00Z"

	report := NewEngine(nil).Detect(context.Background(), nil,
		&stubSource{name: "raw", rules: []rule.Rule{exported}}, baseline)
	assert.Empty(t, report.Changes)
	assert.Len(t, report.CurrentRules, 1)
	assert.Equal(t, rule.Fingerprint(r), report.CurrentRules[0].RuleHash)
}

func TestEngineDetect_RawSupplementsStructured(t *testing.T) {
	structured := &stubSource{name: "structured", rules: []rule.Rule{
		{"rule_id": "a", "name": "A", "query": "structured query"},
	}}
	raw := &stubSource{name: "raw", rules: []rule.Rule{
		{"rule_id": "a", "name": "A", "query": "raw query"},
		{"rule_id": "b", "name": "B"},
	}}

	report := NewEngine(nil).Detect(context.Background(), structured, raw, nil)
	require.Len(t, report.CurrentRules, 2)
	assert.Equal(t, []string{"structured export skipped 1 rule(s), supplemented from raw export"}, report.Errors)

	for _, state := range report.CurrentRules {
		if state.RuleID == "a" {
			assert.Equal(t, "structured query", state.RuleContent.Query())
		}
	}
}

func TestEngineDetect_RawErrorsSuppressedByStructuredSuccess(t *testing.T) {
	structured := &stubSource{
		name:  "structured",
		rules: []rule.Rule{{"rule_id": "r-1", "name": "A"}},
	}
	raw := &stubSource{name: "raw", errs: []string{"HTTP error 503 from /api/detection_engine/rules/_find"}}

	report := NewEngine(nil).Detect(context.Background(), structured, raw, nil)
	assert.Empty(t, report.Errors)
	assert.Len(t, report.CurrentRules, 1)
}

func TestEngineDetect_RawErrorsSurfaceWhenStructuredEmpty(t *testing.T) {
	structured := &stubSource{name: "structured", errs: []string{"CLI export failed"}}
	raw := &stubSource{name: "raw", errs: []string{"HTTP error 503"}}

	report := NewEngine(nil).Detect(context.Background(), structured, raw, nil)
	assert.Equal(t, []string{"CLI export failed", "HTTP error 503"}, report.Errors)
	assert.Empty(t, report.Changes)
	assert.Empty(t, report.CurrentRules)
}

func TestEngineDetect_SerializationFailureIsIsolated(t *testing.T) {
	// A nil element inside an array is not representable in TOML; the rule
	// must still be fingerprinted and diffed.
	broken := rule.Rule{
		"rule_id": "r-1",
		"name":    "Broken",
		"extra":   []any{nil},
	}

	report := NewEngine(nil).Detect(context.Background(), nil,
		&stubSource{name: "raw", rules: []rule.Rule{broken}}, nil)

	require.Len(t, report.CurrentRules, 1)
	assert.Nil(t, report.CurrentRules[0].TOMLContent)
	assert.NotEmpty(t, report.CurrentRules[0].RuleHash)

	require.Len(t, report.Changes, 1)
	assert.Equal(t, []ChangeKind{ChangeNewRule}, report.Changes[0].ChangeTypes)

	found := false
	for _, msg := range report.Errors {
		if strings.Contains(msg, "TOML conversion failed") && strings.Contains(msg, "r-1") {
			found = true
		}
	}
	assert.True(t, found, "expected a TOML conversion error for r-1, got %v", report.Errors)
}
