// Package server holds the HTTP server configuration.
//
// The main application entry point handles the server startup; this package
// only defines the configuration structure for it.
//
// # Usage
//
// This package is primarily used by the core/config package to embed server
// settings and by the auth middleware for the API key.
package server
