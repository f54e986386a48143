// Package logging assembles structured slog loggers used across mixsplit.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so planner code can tag log
// lines with the run ID, take, and scene. Logs go to stderr by default;
// stdout carries the split report. The package also provides a no-op logger
// for tests and wiring code that cannot fail.
package logging
