// Package logging provides structured logging for the migration CLI.
//
// It wraps log/slog: the CLI writes a log file for every run and mirrors
// records to stderr when --verbose is set. Components accept a *slog.Logger;
// use Nop() where logging is disabled (for example in tests).
//
//	logger, closer, err := logging.FileLogger("mmigrate.log", verbose)
//	defer closer.Close()
//	logger.Info("starting export", "server", serverURL)
package logging
