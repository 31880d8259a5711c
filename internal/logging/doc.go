// Package logging provides a simple leveled logging interface for the
// playlist manager.
//
// It supports the following log levels:
//   - DEBUG: Verbose debugging information
//   - INFO: General operational messages
//   - WARN: Warning conditions
//   - ERROR: Error conditions
//   - FATAL: Fatal errors that terminate the application
//
// Messages are printf-style and written through a zap sugared logger. The
// initial level comes from the LOG_LEVEL (or DEBUG) environment variable and
// can be changed later with [Configure], which can also tee output into a
// size-rotated file managed by lumberjack.
package logging
