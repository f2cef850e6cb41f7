// Package exporter provides the two export paths that feed the
// reconciliation engine with the current rule population.
//
// Structured runs the external rule toolkit CLI and reads back the TOML
// documents it writes; this is the authoritative path. Raw talks to the
// detection-engine API directly and is both the fallback and the only
// source of internal identifiers and flattened exception items. Both
// implement reconcile.Source and report problems as error strings instead
// of failing the run.
package exporter
