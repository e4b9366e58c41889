// Package logging assembles the structured slog loggers used by the
// linguistica CLI and its analysis helpers.
//
// It owns the console and JSON handlers, maps configured level names to slog
// levels, tees output to an optional JSON log file, stamps every record with
// the run identifier of the current invocation, and applies per-stage level
// overrides from the configuration. NewNop is available for tests and for
// library code that was handed a nil logger.
package logging
