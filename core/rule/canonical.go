package rule

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf16"

	"github.com/goccy/go-json"
)

// CanonicalJSON serializes a value the way the external detection-rules tool
// does before hashing: keys sorted lexicographically, "," and ":" separators
// with no incidental whitespace, non-ASCII characters escaped as \uXXXX and
// floats rendered with their shortest round-trip representation. Two
// logically identical mappings always serialize to identical bytes
// regardless of insertion order.
//
// The output must stay bit-for-bit compatible with that tool's serializer;
// stock JSON encoders diverge on escaping and float formatting, which is why
// this encoder exists.
func CanonicalJSON(v any) []byte {
	return appendCanonical(make([]byte, 0, 256), v)
}

func appendCanonical(dst []byte, v any) []byte {
	switch val := v.(type) {
	case nil:
		return append(dst, "null"...)
	case bool:
		if val {
			return append(dst, "true"...)
		}
		return append(dst, "false"...)
	case string:
		return appendEscaped(dst, val)
	case json.Number:
		return appendNumber(dst, val)
	case int:
		return strconv.AppendInt(dst, int64(val), 10)
	case int64:
		return strconv.AppendInt(dst, val, 10)
	case uint64:
		return strconv.AppendUint(dst, val, 10)
	case float32:
		return append(dst, formatFloat(float64(val))...)
	case float64:
		return append(dst, formatFloat(val)...)
	case time.Time:
		return appendEscaped(dst, val.Format(time.RFC3339))
	case Rule:
		return appendMap(dst, val)
	case map[string]any:
		return appendMap(dst, val)
	case []any:
		dst = append(dst, '[')
		for i, elem := range val {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = appendCanonical(dst, elem)
		}
		return append(dst, ']')
	case []string:
		dst = append(dst, '[')
		for i, elem := range val {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = appendEscaped(dst, elem)
		}
		return append(dst, ']')
	case []map[string]any:
		dst = append(dst, '[')
		for i, elem := range val {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = appendMap(dst, elem)
		}
		return append(dst, ']')
	default:
		// Any rule mapping is acceptable input; unknown leaf types are
		// rendered through their string form rather than rejected.
		return appendEscaped(dst, fmt.Sprintf("%v", val))
	}
}

func appendMap(dst []byte, m map[string]any) []byte {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	// Byte order over UTF-8 equals code-point order, matching the
	// reference serializer's key sort.
	sort.Strings(keys)

	dst = append(dst, '{')
	for i, k := range keys {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = appendEscaped(dst, k)
		dst = append(dst, ':')
		dst = appendCanonical(dst, m[k])
	}
	return append(dst, '}')
}

// appendNumber re-emits integer literals verbatim and canonicalizes float
// literals, so "1.50" and "1.5" hash identically.
func appendNumber(dst []byte, n json.Number) []byte {
	s := n.String()
	if !strings.ContainsAny(s, ".eE") {
		return append(dst, s...)
	}
	f, err := n.Float64()
	if err != nil {
		return append(dst, s...)
	}
	return append(dst, formatFloat(f)...)
}

// formatFloat renders a float with the shortest representation that
// round-trips, using fixed notation for exponents in [-4, 15] (with a
// trailing ".0" for integral values) and scientific notation otherwise.
func formatFloat(f float64) string {
	if math.IsNaN(f) {
		return "NaN"
	}
	if math.IsInf(f, 1) {
		return "Infinity"
	}
	if math.IsInf(f, -1) {
		return "-Infinity"
	}

	sci := strconv.FormatFloat(f, 'e', -1, 64)
	idx := strings.IndexByte(sci, 'e')
	exp, _ := strconv.Atoi(sci[idx+1:])

	if exp < -4 || exp > 15 {
		return sci
	}

	fixed := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(fixed, ".") {
		fixed += ".0"
	}
	return fixed
}

// SortByCanonical returns the elements ordered by their canonical
// serialization, giving collections a stable, content-derived order.
func SortByCanonical(items []any) []any {
	sorted := make([]any, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool {
		return string(CanonicalJSON(sorted[i])) < string(CanonicalJSON(sorted[j]))
	})
	return sorted
}

const hexDigits = "0123456789abcdef"

// appendEscaped writes a JSON string with every non-ASCII character escaped
// as \uXXXX (surrogate pairs beyond the BMP) and the conventional short
// escapes for control characters.
func appendEscaped(dst []byte, s string) []byte {
	dst = append(dst, '"')
	for _, r := range s {
		switch r {
		case '"':
			dst = append(dst, '\\', '"')
		case '\\':
			dst = append(dst, '\\', '\\')
		case '\n':
			dst = append(dst, '\\', 'n')
		case '\r':
			dst = append(dst, '\\', 'r')
		case '\t':
			dst = append(dst, '\\', 't')
		case '\b':
			dst = append(dst, '\\', 'b')
		case '\f':
			dst = append(dst, '\\', 'f')
		default:
			switch {
			case r >= 0x20 && r < 0x7f:
				dst = append(dst, byte(r))
			case r <= 0xffff:
				dst = appendUnicodeEscape(dst, uint16(r))
			default:
				hi, lo := utf16.EncodeRune(r)
				dst = appendUnicodeEscape(dst, uint16(hi))
				dst = appendUnicodeEscape(dst, uint16(lo))
			}
		}
	}
	return append(dst, '"')
}

func appendUnicodeEscape(dst []byte, u uint16) []byte {
	return append(dst, '\\', 'u',
		hexDigits[u>>12&0xf], hexDigits[u>>8&0xf], hexDigits[u>>4&0xf], hexDigits[u&0xf])
}
