package reconcile

import (
	"fmt"
	"strings"

	"rule-sync/core/rule"
)

// Classify compares two rule states and returns the ordered set of change
// tags. Presence checks are terminal: a rule only on one side yields exactly
// one tag. For rules present on both sides every predicate runs in a fixed
// order and tags accumulate; ChangeModifiedRule is appended only when no
// specific tag applied, so callers (which only classify rules whose
// fingerprints differ) always get a non-empty reason.
//
// A nil map means the rule is absent on that side. Missing fields default to
// their zero values rather than erroring.
func Classify(previous, current rule.Rule) []ChangeKind {
	if previous == nil && current != nil {
		return []ChangeKind{ChangeNewRule}
	}
	if previous != nil && current == nil {
		return []ChangeKind{ChangeDeletedRule}
	}
	if previous == nil && current == nil {
		return nil
	}

	var changes []ChangeKind

	if previous.Enabled() != current.Enabled() {
		if current.Enabled() {
			changes = append(changes, ChangeRuleEnabled)
		} else {
			changes = append(changes, ChangeRuleDisabled)
		}
	}

	if previous.Severity() != current.Severity() {
		changes = append(changes, ChangeSeverityChanged)
	}

	if !equalTagSets(previous.Tags(), current.Tags()) {
		changes = append(changes, ChangeTagsChanged)
	}

	if previous.Query() != current.Query() {
		changes = append(changes, ChangeQueryChanged)
	}

	// Exception-list references: whole lists attached or detached.
	prevRefs := previous.ExceptionRefs()
	currRefs := current.ExceptionRefs()
	refsTagged := false
	if !equalDeep(prevRefs, currRefs) {
		changes = append(changes, exceptionKind(len(prevRefs), len(currRefs)))
		refsTagged = true
	}

	// Exception items: changes inside the attached lists. Skipped when a
	// reference-level tag already covers the exception delta.
	if !refsTagged {
		prevItems := previous.ExceptionItems()
		currItems := current.ExceptionItems()
		if !equalDeep(prevItems, currItems) {
			changes = append(changes, exceptionKind(len(prevItems), len(currItems)))
		}
	}

	if len(changes) == 0 {
		changes = append(changes, ChangeModifiedRule)
	}

	return changes
}

// Summarize renders the human-readable summary for a set of change tags.
func Summarize(kinds []ChangeKind, ruleName string, previous, current rule.Rule) string {
	parts := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		switch kind {
		case ChangeNewRule:
			parts = append(parts, fmt.Sprintf("New rule detected: %s", ruleName))
		case ChangeDeletedRule:
			parts = append(parts, fmt.Sprintf("Rule deleted: %s", ruleName))
		case ChangeRuleEnabled:
			parts = append(parts, "Rule was enabled")
		case ChangeRuleDisabled:
			parts = append(parts, "Rule was disabled")
		case ChangeSeverityChanged:
			parts = append(parts, fmt.Sprintf("Severity changed: %s -> %s",
				severityOrUnknown(previous), severityOrUnknown(current)))
		case ChangeTagsChanged:
			parts = append(parts, "Tags were modified")
		case ChangeQueryChanged:
			parts = append(parts, "Detection query was modified")
		case ChangeExceptionAdded:
			parts = append(parts, "Exception list entry added")
		case ChangeExceptionRemoved:
			parts = append(parts, "Exception list entry removed")
		case ChangeExceptionModified:
			parts = append(parts, "Exception list modified")
		case ChangeModifiedRule:
			parts = append(parts, "Rule configuration modified")
		}
	}
	return strings.Join(parts, "; ")
}

// severityOrUnknown renders the severity for the diff summary. Only an
// absent field falls back to "unknown"; an empty string is kept as is.
func severityOrUnknown(r rule.Rule) string {
	if r == nil {
		return "unknown"
	}
	if sev, ok := r["severity"]; ok {
		s, _ := sev.(string)
		return s
	}
	return "unknown"
}

// exceptionKind picks the added/removed/modified variant by cardinality.
func exceptionKind(prevCount, currCount int) ChangeKind {
	switch {
	case currCount > prevCount:
		return ChangeExceptionAdded
	case currCount < prevCount:
		return ChangeExceptionRemoved
	default:
		return ChangeExceptionModified
	}
}

func equalTagSets(prev, curr []string) bool {
	if len(prev) != len(curr) {
		return false
	}
	set := make(map[string]int, len(prev))
	for _, t := range prev {
		set[t]++
	}
	for _, t := range curr {
		if set[t] == 0 {
			return false
		}
		set[t]--
	}
	return true
}

// equalDeep compares two collections order-insensitively through their
// canonical serialization.
func equalDeep(prev, curr []any) bool {
	prevJSON := rule.CanonicalJSON(rule.SortByCanonical(prev))
	currJSON := rule.CanonicalJSON(rule.SortByCanonical(curr))
	return string(prevJSON) == string(currJSON)
}
