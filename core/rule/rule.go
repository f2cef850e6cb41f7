package rule

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// Rule is a detection rule represented as an open field mapping.
//
// Rule schemas vary by rule type and evolve on the remote side, so no fixed
// struct is used; the engine only interprets the handful of fields it needs
// (identity, enablement, severity, tags, query, exception references) and
// passes everything else through untouched.
type Rule map[string]any

// FieldExceptionItems carries the flattened exception items attached to a
// rule by the raw export path. It participates in fingerprinting.
const FieldExceptionItems = "_exception_items"

// FieldEnrichedExceptions carries the full exception-list payloads attached
// by the raw export path. It is excluded from fingerprinting.
const FieldEnrichedExceptions = "_enriched_exceptions"

// fingerprintExcluded lists the volatile fields removed before hashing.
// This set matches the detection-rules CLI algorithm; changing it changes
// which rule states are considered equivalent across runs.
var fingerprintExcluded = map[string]struct{}{
	"id":                   {},
	"created_at":           {},
	"updated_at":           {},
	"created_by":           {},
	"updated_by":           {},
	"execution_summary":    {},
	"revision":             {},
	"related_integrations": {},
	"required_fields":      {},
	"setup":                {},
	"note":                 {},
	"immutable":            {},
	"output_index":         {},
	"rule_source":          {},
	"version":              {},
	"meta":                 {},
	FieldEnrichedExceptions: {},
}

// writeExcluded lists the read-only and internal fields stripped before a
// rule is submitted back to the detection engine.
var writeExcluded = map[string]struct{}{
	"id":                   {},
	"created_at":           {},
	"updated_at":           {},
	"created_by":           {},
	"updated_by":           {},
	"execution_summary":    {},
	"revision":             {},
	FieldExceptionItems:     {},
	FieldEnrichedExceptions: {},
}

// itemVolatile lists the audit fields stripped from exception items before
// comparison or re-submission.
var itemVolatile = map[string]struct{}{
	"id":             {},
	"created_at":     {},
	"updated_at":     {},
	"created_by":     {},
	"updated_by":     {},
	"_version":       {},
	"tie_breaker_id": {},
}

// ID returns the stable rule identifier, falling back to the internal
// storage identifier when rule_id is absent.
func (r Rule) ID() string {
	if id := r.GetString("rule_id"); id != "" {
		return id
	}
	return r.GetString("id")
}

// Name returns the rule's display name.
func (r Rule) Name() string { return r.GetString("name") }

// Enabled reports whether the rule is active. Absent defaults to false.
func (r Rule) Enabled() bool { return r.GetBool("enabled") }

// Severity returns the rule's severity. Absent defaults to "".
func (r Rule) Severity() string { return r.GetString("severity") }

// Query returns the rule's detection logic. Absent defaults to "".
func (r Rule) Query() string { return r.GetString("query") }

// Tags returns the rule's tags as strings. Absent defaults to empty.
func (r Rule) Tags() []string {
	raw := r.GetSlice("tags")
	tags := make([]string, 0, len(raw))
	for _, t := range raw {
		tags = append(tags, toString(t))
	}
	return tags
}

// ExceptionRefs returns the rule's exception-list references.
func (r Rule) ExceptionRefs() []any { return r.GetSlice("exceptions_list") }

// ExceptionItems returns the flattened exception items attached by the raw
// export path.
func (r Rule) ExceptionItems() []any { return r.GetSlice(FieldExceptionItems) }

// GetString returns the named field coerced to a string, or "" when absent.
func (r Rule) GetString(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	return toString(v)
}

// GetBool returns the named field coerced to a bool, or false when absent.
func (r Rule) GetBool(key string) bool {
	v, ok := r[key]
	if !ok || v == nil {
		return false
	}
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return b == "1" || strings.EqualFold(b, "true")
	case json.Number:
		return b.String() == "1"
	case int:
		return b == 1
	case int64:
		return b == 1
	case float64:
		return b == 1
	default:
		return false
	}
}

// GetSlice returns the named field as a slice, or nil when absent or not a
// slice.
func (r Rule) GetSlice(key string) []any {
	v, ok := r[key]
	if !ok || v == nil {
		return nil
	}
	if s, ok := v.([]any); ok {
		return s
	}
	return nil
}

// Clone returns a shallow copy of the rule.
func (r Rule) Clone() Rule {
	out := make(Rule, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// StableProjection returns a copy of the rule with volatile fields removed.
// Only the result of this projection participates in fingerprinting.
func (r Rule) StableProjection() map[string]any {
	stable := make(map[string]any, len(r))
	for k, v := range r {
		if _, excluded := fingerprintExcluded[k]; excluded {
			continue
		}
		stable[k] = v
	}
	return stable
}

// StripForWrite returns a copy of the rule with read-only and internal
// fields removed, suitable for create/update submission.
func (r Rule) StripForWrite() Rule {
	out := make(Rule, len(r))
	for k, v := range r {
		if _, excluded := writeExcluded[k]; excluded {
			continue
		}
		out[k] = v
	}
	return out
}

// StripItemVolatile returns a copy of an exception item with its audit
// fields removed.
func StripItemVolatile(item map[string]any) map[string]any {
	out := make(map[string]any, len(item))
	for k, v := range item {
		if _, excluded := itemVolatile[k]; excluded {
			continue
		}
		out[k] = v
	}
	return out
}

func toString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	case json.Number:
		return s.String()
	case bool:
		return strconv.FormatBool(s)
	default:
		return fmt.Sprintf("%v", s)
	}
}
