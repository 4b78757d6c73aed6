// Package logging provides the structured logging interface used across
// natcalc. Components depend on the Logger interface; the zerolog adapter is
// the production backend and the standard-library adapter serves tests and
// embedders that already own a *log.Logger.
package logging
