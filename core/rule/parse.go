package rule

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/pelletier/go-toml/v2"
)

// Supported rule payload formats.
const (
	FormatJSON = "json"
	FormatTOML = "toml"
)

// Parse decodes a rule payload into the normalized rule mapping.
//
// The format is chosen by the explicit tag when given, otherwise inferred
// from the filename extension, defaulting to JSON. A TOML document's [rule]
// table is unwrapped. Unknown formats and payloads that do not contain a
// rule object are reported as errors; no partially decoded rule is ever
// returned.
func Parse(content []byte, format, filename string) (Rule, error) {
	fmtTag := strings.ToLower(strings.TrimSpace(format))
	if fmtTag == "" && filename != "" {
		switch {
		case strings.HasSuffix(filename, ".toml"):
			fmtTag = FormatTOML
		case strings.HasSuffix(filename, ".json"):
			fmtTag = FormatJSON
		}
	}
	if fmtTag == "" {
		fmtTag = FormatJSON
	}

	var parsed any
	switch fmtTag {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(content))
		dec.UseNumber()
		if err := dec.Decode(&parsed); err != nil {
			return nil, fmt.Errorf("parse failed: %w", err)
		}
	case FormatTOML:
		var doc map[string]any
		if err := toml.Unmarshal(content, &doc); err != nil {
			return nil, fmt.Errorf("parse failed: %w", err)
		}
		parsed = doc
	default:
		return nil, fmt.Errorf("unsupported format: %s", fmtTag)
	}

	doc, ok := parsed.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("parsed content does not contain a rule object")
	}
	if inner, ok := doc["rule"].(map[string]any); ok {
		return Rule(inner), nil
	}
	return Rule(doc), nil
}
