// Package logging assembles structured slog loggers and formatting helpers used
// across mediaprobe.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so probe and scan code can tag
// log lines with correlation and session ids. The package also provides a
// no-op logger for tests and library callers that pass no logger.
package logging
