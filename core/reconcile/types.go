package reconcile

import (
	"context"

	"rule-sync/core/rule"
)

// ChangeKind is the closed set of semantic reasons a rule counts as changed.
type ChangeKind string

const (
	ChangeNewRule           ChangeKind = "new_rule"
	ChangeDeletedRule       ChangeKind = "deleted_rule"
	ChangeRuleEnabled       ChangeKind = "rule_enabled"
	ChangeRuleDisabled      ChangeKind = "rule_disabled"
	ChangeSeverityChanged   ChangeKind = "severity_changed"
	ChangeTagsChanged       ChangeKind = "tags_changed"
	ChangeQueryChanged      ChangeKind = "query_changed"
	ChangeExceptionAdded    ChangeKind = "exception_added"
	ChangeExceptionRemoved  ChangeKind = "exception_removed"
	ChangeExceptionModified ChangeKind = "exception_modified"
	ChangeModifiedRule      ChangeKind = "modified_rule"
)

// Source is one export path for the current rule population. A source never
// fails the whole run; problems come back as error strings next to whatever
// rules it could produce.
type Source interface {
	// Name identifies the source in log output.
	Name() string

	// Export fetches the source's view of the rule population.
	Export(ctx context.Context) ([]rule.Rule, []string)
}

// BaselineSnapshot is the caller-supplied prior state of one rule.
type BaselineSnapshot struct {
	RuleID      string    `json:"rule_id"`
	RuleName    string    `json:"rule_name"`
	RuleHash    string    `json:"rule_hash"`
	RuleContent rule.Rule `json:"rule_content"`
	Exceptions  []any     `json:"exceptions"`
	Enabled     bool      `json:"enabled"`
	Severity    string    `json:"severity"`
	Tags        []any     `json:"tags"`
}

// ChangeRecord describes one detected rule change.
type ChangeRecord struct {
	RuleID        string       `json:"rule_id"`
	RuleName      string       `json:"rule_name"`
	ChangeTypes   []ChangeKind `json:"change_types"`
	DiffSummary   string       `json:"diff_summary"`
	PreviousState rule.Rule    `json:"previous_state"`
	CurrentState  rule.Rule    `json:"current_state"`
	CurrentHash   string       `json:"current_hash,omitempty"`
	TOMLContent   *string      `json:"toml_content"`
}

// RuleState is the reconciled current state of one rule, returned so the
// caller can persist it as the next baseline.
type RuleState struct {
	RuleID      string    `json:"rule_id"`
	RuleName    string    `json:"rule_name"`
	RuleHash    string    `json:"rule_hash"`
	RuleContent rule.Rule `json:"rule_content"`
	TOMLContent *string   `json:"toml_content"`
	Enabled     bool      `json:"enabled"`
	Severity    string    `json:"severity"`
	Tags        []any     `json:"tags"`
	Exceptions  []any     `json:"exceptions"`
}

// Report is the complete output of one reconciliation run. Errors carries
// every non-fatal problem encountered on the way; the run itself never
// aborts because of them.
type Report struct {
	Changes      []ChangeRecord `json:"changes"`
	CurrentRules []RuleState    `json:"current_rules"`
	Errors       []string       `json:"errors"`
}
