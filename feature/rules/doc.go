// Package rules exposes the rule reconciliation operations over HTTP.
//
// # HTTP Endpoints
//
//   - POST /rules/detect-changes : Run one reconciliation pass against a baseline.
//   - POST /rules/export-toml : Serialize a rule as a TOML document.
//   - POST /rules/compute-hash : Compute the stable rule fingerprint.
//   - POST /rules/revert-rule : Restore a rule to a previous state.
//   - POST /rules/revert-exception-items : Restore an exception-item collection.
//   - POST /rules/parse-rule-content : Decode a JSON or TOML rule document.
//
// Connection settings (endpoint, API key, space) can be supplied per request
// and override the configured defaults. Remote failures inside an operation
// come back as data in the result body; HTTP errors are reserved for
// malformed requests.
package rules
