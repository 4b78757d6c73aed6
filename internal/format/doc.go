// Package format holds the presentation helpers shared by the CLI and the
// TUI: durations, ETAs, progress bars, thousands separators and magnitudes
// rendered as hexadecimal.
package format
