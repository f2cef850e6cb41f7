package rule

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
)

// Fingerprint computes the deterministic digest of a rule's stable fields:
// canonical JSON of the stable projection, base64-encoded, then SHA-256
// rendered as lowercase hex. The base64 step mirrors the detection-rules
// CLI algorithm and keeps fingerprints interchangeable with that tool's
// previously stored values.
//
// Any rule mapping is acceptable input, including an empty one.
func Fingerprint(r Rule) string {
	serialized := CanonicalJSON(r.StableProjection())
	encoded := base64.StdEncoding.EncodeToString(serialized)
	sum := sha256.Sum256([]byte(encoded))
	return hex.EncodeToString(sum[:])
}
