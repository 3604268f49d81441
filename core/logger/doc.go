// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments
// (development vs production).
//
// # Cycle correlation
//
// Every reconciliation cycle gets a cycle id. The WithCycleID helper attaches
// it to the log entry so all logs of one run can be correlated with the
// history table and the metrics textfile.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Encoding: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Cycle started")
//
//	l := logger.WithCycleID(log, report.CycleID)
//	l.Warn("Discovery failed", zap.Error(err))
package logger
