// Package health provides the service health endpoint.
//
// # HTTP Endpoints
//
//   - GET /health : Reports service status, the configured version and
//     whether the structured export CLI is on PATH.
package health
