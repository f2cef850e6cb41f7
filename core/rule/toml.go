package rule

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/pelletier/go-toml/v2"
)

// tomlSkipped lists the volatile fields dropped from the [rule] section of
// the TOML document. Narrower than the fingerprint exclusion set: the
// document is meant to be readable, not hashed.
var tomlSkipped = map[string]struct{}{
	"id":                {},
	"created_at":        {},
	"updated_at":        {},
	"created_by":        {},
	"updated_by":        {},
	"execution_summary": {},
	"revision":          {},
}

// ToTOML renders a rule as a TOML document in the detection-rules layout:
// a [metadata] section carrying audit dates and maturity, and a [rule]
// section with the remaining fields. Nil-valued fields are dropped.
func ToTOML(r Rule) (string, error) {
	maturity := "development"
	if r.Enabled() {
		maturity = "production"
	}
	metadata := map[string]any{
		"creation_date": r.GetString("created_at"),
		"updated_date":  r.GetString("updated_at"),
		"maturity":      maturity,
	}

	section := make(map[string]any, len(r))
	for key, value := range r {
		if _, skip := tomlSkipped[key]; skip {
			continue
		}
		if value == nil {
			continue
		}
		section[key] = detomlify(value)
	}

	doc := map[string]any{
		"metadata": metadata,
		"rule":     section,
	}

	out, err := toml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("toml conversion failed: %w", err)
	}
	return string(out), nil
}

// detomlify converts json.Number leaves into concrete numeric types so the
// TOML encoder emits numbers instead of quoted strings.
func detomlify(v any) any {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, elem := range val {
			out[k] = detomlify(elem)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = detomlify(elem)
		}
		return out
	default:
		return v
	}
}
