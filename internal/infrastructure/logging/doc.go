// Package logging provides structured logging using uber/zap.
//
// Two modes are supported:
//   - Production: JSON output for machine parsing
//   - Development: colored console output, debug level, stack traces
//
// Domain packages receive the embedded *zap.Logger and name it after
// themselves (launcher, categories, catalog, ...).
//
// Example Usage:
//
//	logger, err := logging.New(logging.DefaultConfig())
//	logger.Info("Shell starting", zap.String("port", "8000"))
//	m := launcher.NewModel(launcher.Options{Logger: logger.Logger})
package logging
