// Package logging provides structured logging for the controls packages.
//
// The package wraps a zap logger behind a few convenience functions so that
// controls can trace state transitions without each one carrying a logger.
// Logging is silent by default; set CONTROLS_LOG_LEVEL to enable it:
//
//	CONTROLS_LOG_LEVEL=debug go test ./pkg/selection/...
//
// Controls log at debug level with structured fields:
//
//	logging.Debug("selection opened",
//	    zap.Stringer("node", n.ID()),
//	    zap.Int("options", len(options)),
//	)
//
// Hosts that already own a zap logger can install it with [SetLogger].
//
// All functions are safe for concurrent use.
package logging
