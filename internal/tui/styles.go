package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/natcalc/internal/ui"
)

// Dashboard styles, rebuilt from the ui theme by initTUIStyles.
var (
	panelStyle         lipgloss.Style
	headerStyle        lipgloss.Style
	titleStyle         lipgloss.Style
	dimStyle           lipgloss.Style
	accentStyle        lipgloss.Style
	checkNameStyle     lipgloss.Style
	successStyle       lipgloss.Style
	warningStyle       lipgloss.Style
	errorStyle         lipgloss.Style
	metricLabelStyle   lipgloss.Style
	metricValueStyle   lipgloss.Style
	footerKeyStyle     lipgloss.Style
	footerDescStyle    lipgloss.Style
	statusRunningStyle lipgloss.Style
	statusPausedStyle  lipgloss.Style
	statusDoneStyle    lipgloss.Style
	statusErrorStyle   lipgloss.Style
	cpuSparklineStyle  lipgloss.Style
	memSparklineStyle  lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds the styles from the current ui theme. Run calls it
// again so a theme chosen after package init takes effect.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()
	fg := func(c lipgloss.TerminalColor) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Foreground(t.Text)
	headerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent).
		Padding(0, 1)

	titleStyle = fg(t.Accent).Bold(true)
	dimStyle = fg(t.Dim)
	accentStyle = fg(t.Accent)
	checkNameStyle = fg(t.Text)
	successStyle = fg(t.Success)
	warningStyle = fg(t.Warning)
	errorStyle = fg(t.Error).Bold(true)

	metricLabelStyle = fg(t.Dim)
	metricValueStyle = fg(t.Accent).Bold(true)

	footerKeyStyle = fg(t.Accent).Bold(true)
	footerDescStyle = fg(t.Dim)

	statusRunningStyle = fg(t.Success).Bold(true)
	statusPausedStyle = fg(t.Warning).Bold(true)
	statusDoneStyle = fg(t.Accent).Bold(true)
	statusErrorStyle = fg(t.Error).Bold(true)

	cpuSparklineStyle = fg(t.Accent)
	memSparklineStyle = fg(t.Warning)
}

// Progress bar gradient, matching the dark theme's border and accent.
const (
	barStartColor = "#3D7EFF"
	barEndColor   = "#5FD7FF"
)
