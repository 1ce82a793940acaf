// Package logging provides structured logging for the xvgu tools.
//
// This package wraps a global zap logger. It is silent by default so that
// the CLI's confirmation lines are the only output; set XVGU_LOG_LEVEL (or
// pass --log-level) to "debug", "info", "warn" or "error" to enable it.
//
// # Structured Logging
//
// All log functions use structured fields:
//
//	logging.Info("Session opened",
//	    zap.String("vid", "16de"),
//	    zap.Int("interface", 1),
//	)
//
// # Frame Logging
//
// Frames sent to and read from the tower can be traced at debug level:
//
//	logging.LogFrame(logging.GetLogger(), "out", frame)
//
// The hex field always holds the whole frame, so a log file can be fed
// back through protocol.DecodeFrame (see tools/validate_frames.go).
//
// # Output
//
// Console-encoded entries go to stderr. With a log file configured, entries
// are also written as JSON to a size-rotated file managed by lumberjack.
//
// # Thread Safety
//
// All logging functions are safe for concurrent use.
package logging
