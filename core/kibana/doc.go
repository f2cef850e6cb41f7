// Package kibana provides the HTTP client for the detection-engine API.
//
// The Client interface covers exactly what the reconciliation core needs:
// paginated rule listing, exception list and item enumeration for the raw
// export path, and the create/update/delete operations the revert planner
// issues. Callers construct a client per request from caller-supplied
// credentials; nothing here is long-lived or shared.
//
// Every call carries the request context and the configured timeout; a
// timeout or transport failure surfaces as an error value, never a hang.
// ErrNotFound is the one sentinel callers branch on.
package kibana
