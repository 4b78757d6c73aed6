package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/natcalc/internal/format"
)

// HeaderModel renders the top bar: title, version, run parameters and
// elapsed time.
type HeaderModel struct {
	startTime time.Time
	endTime   time.Time
	version   string
	params    string
	width     int
}

// NewHeaderModel creates a header. params summarizes the run settings.
func NewHeaderModel(version, params string) HeaderModel {
	return HeaderModel{
		startTime: time.Now(),
		version:   version,
		params:    params,
	}
}

// SetDone freezes the elapsed timer.
func (h *HeaderModel) SetDone() {
	h.endTime = time.Now()
}

// Reset restarts the elapsed timer.
func (h *HeaderModel) Reset() {
	h.startTime = time.Now()
	h.endTime = time.Time{}
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) {
	h.width = w
}

// Elapsed returns the time since start, frozen once done.
func (h HeaderModel) Elapsed() time.Duration {
	if !h.endTime.IsZero() {
		return h.endTime.Sub(h.startTime)
	}
	return time.Since(h.startTime)
}

// View renders the header.
func (h HeaderModel) View() string {
	titleText := "natcalc self-check"
	if h.version != "" && h.version != "dev" {
		titleText += " " + h.version
	}
	pipe := dimStyle.Render(" | ")
	left := titleStyle.Render(titleText)
	if h.params != "" {
		left += pipe + dimStyle.Render(h.params)
	}
	left += pipe + accentStyle.Render(fmt.Sprintf("Elapsed: %s", format.FormatExecutionDuration(h.Elapsed())))

	gap := max(h.width-2-lipgloss.Width(left), 0)
	return headerStyle.Width(h.width).Render(left + strings.Repeat(" ", gap))
}
