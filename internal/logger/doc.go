// Package logger provides a simple, thread-safe logging facility backed by zap.
//
// The logger supports four levels: Debug, Info, Warn, and Error.
// Each log entry includes a timestamp, level, optional component name, and message.
//
// # Basic Usage
//
// Using the default logger (writes to stderr so that stdout carries only the
// benchmark report):
//
//	logger.Info("", "Benchmark started")
//	logger.Info("parallel", "Spawning %d workers", n)
//	logger.Error("", "Failed: %v", err)
//
// Creating a custom logger:
//
//	l := logger.New(os.Stderr, logger.LevelDebug)
//	l.Debug("sequential", "Debug message")
//
// # Log Levels
//
// Messages below the configured level are filtered:
//   - LevelDebug: all messages
//   - LevelInfo: Info, Warn, Error
//   - LevelWarn: Warn, Error
//   - LevelError: Error only
//
// # Thread Safety
//
// The underlying zap core is safe for concurrent use.
package logger
