// Package logger provides a structured logging facility based on Zap.
//
// Logs are always written to stderr so that reports, histograms and sync
// lists printed on stdout stay machine readable.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "console"})
//	log.Info("Hashing started", zap.Int("files", n))
//
//	// Correlate a compare run with its history record:
//	l := logger.WithRunID(log, run.ID)
package logger
