package ui

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme is an ANSI color scheme for line-oriented output.
// Each field holds the escape sequence for one role.
type Theme struct {
	// Name selects the theme in SetTheme.
	Name string
	// Primary highlights headings and operation names.
	Primary string
	// Secondary is for labels and other supporting text.
	Secondary string
	// Success marks results that agree with the reference.
	Success string
	// Warning marks notices such as heap allocations in a bench run.
	Warning string
	// Error marks mismatches and failures.
	Error string
	// Info colors numbers: widths, counts and scalar results.
	Info string
	// Bold is the bold text sequence.
	Bold string
	// Underline is the underlined text sequence.
	Underline string
	// Reset clears every attribute.
	Reset string
}

var (
	// DarkTheme suits dark terminal backgrounds.
	DarkTheme = Theme{
		Name:      "dark",
		Primary:   "\033[38;5;39m",  // Bright blue
		Secondary: "\033[38;5;245m", // Grey
		Success:   "\033[38;5;82m",  // Bright green
		Warning:   "\033[38;5;220m", // Yellow
		Error:     "\033[38;5;196m", // Red
		Info:      "\033[38;5;141m", // Purple
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// LightTheme suits light terminal backgrounds.
	LightTheme = Theme{
		Name:      "light",
		Primary:   "\033[38;5;27m",  // Dark blue
		Secondary: "\033[38;5;240m", // Dark grey
		Success:   "\033[38;5;28m",  // Dark green
		Warning:   "\033[38;5;130m", // Orange
		Error:     "\033[38;5;124m", // Dark red
		Info:      "\033[38;5;54m",  // Dark purple
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// NoColorTheme emits no escape sequences.
	NoColorTheme = Theme{Name: "none"}

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// TUITheme is the lipgloss palette of the dashboard.
type TUITheme struct {
	// Text is the default foreground.
	Text lipgloss.TerminalColor
	// Border outlines the panels.
	Border lipgloss.TerminalColor
	// Accent highlights titles and metric values.
	Accent lipgloss.TerminalColor
	// Success colors passing checks.
	Success lipgloss.TerminalColor
	// Warning colors skipped or interrupted checks.
	Warning lipgloss.TerminalColor
	// Error colors mismatches.
	Error lipgloss.TerminalColor
	// Dim is for secondary text and key help.
	Dim lipgloss.TerminalColor
}

var (
	// DarkTUITheme is the default dashboard palette.
	DarkTUITheme = TUITheme{
		Text:    lipgloss.Color("#E0E0E0"), // Light grey
		Border:  lipgloss.Color("#3D7EFF"), // Blue
		Accent:  lipgloss.Color("#5FD7FF"), // Cyan
		Success: lipgloss.Color("#9ECE6A"), // Green
		Warning: lipgloss.Color("#FFB347"), // Amber
		Error:   lipgloss.Color("#FF4444"), // Red
		Dim:     lipgloss.Color("#666666"), // Dark grey
	}

	// NoColorTUITheme renders with the terminal's default colors.
	NoColorTUITheme = TUITheme{
		Text:    lipgloss.NoColor{},
		Border:  lipgloss.NoColor{},
		Accent:  lipgloss.NoColor{},
		Success: lipgloss.NoColor{},
		Warning: lipgloss.NoColor{},
		Error:   lipgloss.NoColor{},
		Dim:     lipgloss.NoColor{},
	}
)

// GetCurrentTUITheme returns the dashboard palette matching the active theme.
func GetCurrentTUITheme() TUITheme {
	if GetCurrentTheme().Name == NoColorTheme.Name {
		return NoColorTUITheme
	}
	return DarkTUITheme
}

// GetCurrentTheme returns the active theme.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme replaces the active theme.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// SetTheme selects a theme by name: "dark", "light" or "none". Unknown names
// select dark.
func SetTheme(name string) {
	switch name {
	case LightTheme.Name:
		SetCurrentTheme(LightTheme)
	case NoColorTheme.Name:
		SetCurrentTheme(NoColorTheme)
	default:
		SetCurrentTheme(DarkTheme)
	}
}

// InitTheme picks the startup theme. noColor or a set NO_COLOR variable
// (https://no-color.org/) disable color.
func InitTheme(noColor bool) {
	if _, set := os.LookupEnv("NO_COLOR"); noColor || set {
		SetCurrentTheme(NoColorTheme)
		return
	}
	SetCurrentTheme(DarkTheme)
}
