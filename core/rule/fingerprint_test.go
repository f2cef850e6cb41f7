package rule

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var hexDigest = regexp.MustCompile(`^[0-9a-f]{64}$`)

func sampleRule() Rule {
	return Rule{
		"rule_id":  "r-1",
		"name":     "Suspicious Login",
		"enabled":  true,
		"severity": "high",
		"query":    `event.action:"login" and user.risk:high`,
		"tags":     []any{"auth", "prod"},
	}
}

func TestFingerprint_Format(t *testing.T) {
	assert.Regexp(t, hexDigest, Fingerprint(sampleRule()))
	assert.Regexp(t, hexDigest, Fingerprint(Rule{}))
}

// Mutating volatile fields must not move the fingerprint.
func TestFingerprint_IgnoresVolatileFields(t *testing.T) {
	r := sampleRule()
	base := Fingerprint(r)

	mutated := r.Clone()
	mutated["id"] = "internal-uuid-changed"
	mutated["updated_at"] = "2026-01-02T03:04:05Z"
	mutated["created_by"] = "someone-else"
	mutated["revision"] = 17
	mutated["version"] = 9
	mutated["execution_summary"] = map[string]any{"last_run": "now"}
	mutated["meta"] = map[string]any{"from": "import"}

	assert.Equal(t, base, Fingerprint(mutated))
}

func TestFingerprint_SensitiveToStableFields(t *testing.T) {
	r := sampleRule()
	base := Fingerprint(r)

	changed := r.Clone()
	changed["query"] = "something else"
	assert.NotEqual(t, base, Fingerprint(changed))

	changed = r.Clone()
	changed["severity"] = "low"
	assert.NotEqual(t, base, Fingerprint(changed))
}

// The enriched exception payload is excluded from the hash while the
// flattened item collection is included. This asymmetry decides which rule
// states count as equivalent across runs and must not drift.
func TestFingerprint_ExceptionFieldAsymmetry(t *testing.T) {
	r := sampleRule()
	base := Fingerprint(r)

	enriched := r.Clone()
	enriched[FieldEnrichedExceptions] = []any{map[string]any{"list_id": "l1", "name": "allow"}}
	assert.Equal(t, base, Fingerprint(enriched))

	withItems := r.Clone()
	withItems[FieldExceptionItems] = []any{map[string]any{"item_id": "i1", "entries": []any{}}}
	assert.NotEqual(t, base, Fingerprint(withItems))
}

func TestFingerprint_FieldOrderIndependent(t *testing.T) {
	a, err := Parse([]byte(`{"rule_id":"r-1","name":"n","enabled":true,"severity":"low"}`), FormatJSON, "")
	assert.NoError(t, err)
	b, err := Parse([]byte(`{"severity":"low","enabled":true,"name":"n","rule_id":"r-1"}`), FormatJSON, "")
	assert.NoError(t, err)
	assert.Equal(t, Fingerprint(a), Fingerprint(b))
}
