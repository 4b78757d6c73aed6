package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// FooterModel shows the key help and the run status.
type FooterModel struct {
	spinner spinner.Model
	keys    KeyMap
	paused  bool
	done    bool
	failed  bool
	width   int
}

// NewFooterModel creates a footer in the running state.
func NewFooterModel(keys KeyMap) FooterModel {
	return FooterModel{
		spinner: spinner.New(spinner.WithSpinner(spinner.MiniDot), spinner.WithStyle(statusRunningStyle)),
		keys:    keys,
	}
}

// Tick starts the spinner animation.
func (f FooterModel) Tick() tea.Cmd { return f.spinner.Tick }

// Update advances the spinner; it stops once the run is done.
func (f FooterModel) Update(msg tea.Msg) (FooterModel, tea.Cmd) {
	if f.done {
		return f, nil
	}
	var cmd tea.Cmd
	f.spinner, cmd = f.spinner.Update(msg)
	return f, cmd
}

// SetWidth updates the available width.
func (f *FooterModel) SetWidth(w int) { f.width = w }

// SetPaused toggles the paused status.
func (f *FooterModel) SetPaused(p bool) { f.paused = p }

// SetDone marks the run finished.
func (f *FooterModel) SetDone(d bool) { f.done = d }

// SetError marks the run failed.
func (f *FooterModel) SetError(e bool) { f.failed = e }

// Status returns the status label.
func (f FooterModel) Status() string {
	switch {
	case f.failed:
		return "FAILED"
	case f.done:
		return "DONE"
	case f.paused:
		return "PAUSED"
	}
	return "RUNNING"
}

// View renders the footer.
func (f FooterModel) View() string {
	var status string
	switch label := f.Status(); label {
	case "FAILED":
		status = statusErrorStyle.Render(label)
	case "DONE":
		status = statusDoneStyle.Render(label)
	case "PAUSED":
		status = statusPausedStyle.Render(label)
	default:
		status = f.spinner.View() + " " + statusRunningStyle.Render(label)
	}

	var help []string
	for _, b := range []struct{ keys, desc string }{
		{f.keys.Quit.Help().Key, f.keys.Quit.Help().Desc},
		{f.keys.Pause.Help().Key, f.keys.Pause.Help().Desc},
		{f.keys.Rerun.Help().Key, f.keys.Rerun.Help().Desc},
		{f.keys.Up.Help().Key + " " + f.keys.Down.Help().Key, f.keys.Up.Help().Desc},
	} {
		help = append(help, footerKeyStyle.Render(b.keys)+" "+footerDescStyle.Render(b.desc))
	}
	left := " " + strings.Join(help, "  ")
	gap := max(f.width-lipgloss.Width(left)-lipgloss.Width(status)-1, 1)
	return left + strings.Repeat(" ", gap) + status
}
