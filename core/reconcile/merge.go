package reconcile

import (
	"fmt"

	"rule-sync/core/rule"
)

// Merge combines the structured export with the raw API export into one
// authoritative rule population keyed by rule_id.
//
// The structured list is authoritative: its rules are kept verbatim. Rules
// only the raw path could produce are appended and reported through a
// single supplementation note. When a rule appears in both lists and both
// lists actually returned data, the structured record is enriched with any
// field it lacks (notably the internal storage identifier and the flattened
// exception items); fields the structured record already has are never
// overwritten.
func Merge(structured, raw []rule.Rule) ([]rule.Rule, []string) {
	var notes []string

	structuredIDs := make(map[string]struct{}, len(structured))
	for _, r := range structured {
		if id := r.ID(); id != "" {
			structuredIDs[id] = struct{}{}
		}
	}

	merged := make([]rule.Rule, 0, len(structured)+len(raw))
	merged = append(merged, structured...)

	supplemented := 0
	for _, r := range raw {
		id := r.ID()
		if id == "" {
			continue
		}
		if _, exists := structuredIDs[id]; !exists {
			merged = append(merged, r)
			supplemented++
		}
	}
	if supplemented > 0 {
		notes = append(notes, fmt.Sprintf(
			"structured export skipped %d rule(s), supplemented from raw export", supplemented))
	}

	// Enrichment only applies when both views exist; an empty structured
	// export must not masquerade as an enriched authority.
	if len(structured) > 0 && len(raw) > 0 {
		rawByID := make(map[string]rule.Rule, len(raw))
		for _, r := range raw {
			if id := r.ID(); id != "" {
				rawByID[id] = r
			}
		}
		for _, r := range merged {
			rawRule, ok := rawByID[r.ID()]
			if !ok {
				continue
			}
			for field, value := range rawRule {
				if _, present := r[field]; !present {
					r[field] = value
				}
			}
		}
	}

	return merged, notes
}
