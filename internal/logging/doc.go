// Package logging builds the slog loggers used across dscsub: a compact
// console handler for interactive use and a JSON handler for log files and
// machine consumption.
package logging
