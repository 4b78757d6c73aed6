// Package ui holds the terminal palettes shared by the CLI and the TUI: ANSI
// escape sequences for line-oriented output and lipgloss colors for the
// dashboard. Color can be switched off with --no-color or NO_COLOR.
package ui
