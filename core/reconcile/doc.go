// Package reconcile implements the rule state reconciliation engine: it
// compares the live configuration of detection rules against a recorded
// baseline and produces a classified, human-readable change set.
//
// # Architecture
//
// The engine is assembled from four pieces:
//
//  1. Merge: combines the two export paths (structured export and raw API)
//     into one authoritative rule population, resolving duplicates by source
//     priority and enriching structured records with raw-only fields.
//
//  2. Classify: field-level diff classification between two rule states,
//     emitting an ordered set of ChangeKind tags with a guaranteed non-empty
//     fallback.
//
//  3. Engine.Detect: the driver. Exports both sources concurrently,
//     tolerates either failing, merges, fingerprints every merged rule and
//     classifies it against the baseline map.
//
//  4. RevertRule / RevertExceptionItems: the inverse operation. They plan
//     the minimal set of create/update/delete calls that restore a prior
//     state, with partial-success semantics.
//
// # Error model
//
// Failures are data, not control flow. Source failures, per-rule
// serialization failures and individual revert failures are recorded as
// strings in the corresponding result and never abort a run. All entities
// are constructed fresh per call; nothing here persists state.
package reconcile
