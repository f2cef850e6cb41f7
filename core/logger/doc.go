// Package logger provides the Zap-based logging used across the rule sync
// service.
//
// Detection runs, exports, and reverts are long operations that emit many
// log lines; the WithRayID helper stamps each of them with the ray_id from
// the Fiber context so a single API call can be traced end to end.
//
// Configuration covers the level (debug, info, warn, error) and the
// encoding, which is json in deployments and console for local work.
//
// Usage:
//
//	log, _ := logger.New(&cfg.Log)
//	log.Info("detection run started")
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("revert failed", zap.Error(err))
package logger
