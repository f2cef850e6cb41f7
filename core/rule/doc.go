// Package rule defines the open rule mapping used across the reconciliation
// engine, together with the operations that give it a stable identity.
//
// # Components
//
//   - Rule: a string-keyed field mapping with typed accessors for the fields
//     the engine interprets (identity, enablement, severity, tags, query,
//     exception references). Unknown fields pass through untouched so new
//     rule types need no code changes.
//   - Fingerprint: SHA-256 digest over the canonical serialization of the
//     rule's stable-field projection, bit-compatible with the external
//     detection-rules tool.
//   - CanonicalJSON: the deterministic serializer backing Fingerprint.
//   - ToTOML: renders a rule as a [metadata]/[rule] TOML document for
//     downstream storage.
//   - Parse: decodes JSON or TOML rule payloads with explicit format
//     dispatch.
//
// Volatile-field handling is centralized here: the fingerprint exclusion
// set, the write-time strip set, and the exception-item audit-field set are
// each defined once and consumed by the reconcile engine and exporters.
package rule
