package tui

import (
	"errors"
	"fmt"
	"strings"

	progressbar "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	apperrors "github.com/agbru/natcalc/internal/errors"
	"github.com/agbru/natcalc/internal/format"
	"github.com/agbru/natcalc/internal/progress"
	"github.com/agbru/natcalc/internal/selfcheck"
)

type rowStatus int

const (
	rowPending rowStatus = iota
	rowRunning
	rowPassed
	rowFailed
	rowSkipped
	rowInterrupted
)

func (s rowStatus) String() string {
	switch s {
	case rowRunning:
		return "running"
	case rowPassed:
		return "ok"
	case rowFailed:
		return "MISMATCH"
	case rowSkipped:
		return "skipped"
	case rowInterrupted:
		return "stopped"
	}
	return "pending"
}

type checkRow struct {
	name       string
	value      float64
	cases      uint64
	mismatches uint64
	status     rowStatus
}

// ChecksModel lists every check with its own progress bar.
type ChecksModel struct {
	rows   []checkRow
	bar    progressbar.Model
	offset int
	width  int
	height int
}

// NewChecksModel creates rows for the named checks.
func NewChecksModel(names []string) ChecksModel {
	rows := make([]checkRow, len(names))
	for i, n := range names {
		rows[i] = checkRow{name: n}
	}
	return ChecksModel{
		rows: rows,
		bar:  progressbar.New(progressbar.WithGradient(barStartColor, barEndColor), progressbar.WithoutPercentage()),
	}
}

// nameWidth is the column reserved for check names.
const nameWidth = 16

// SetSize updates dimensions and fits the bars to the width.
func (c *ChecksModel) SetSize(w, h int) {
	c.width = w
	c.height = h
	// border, name, percent, cases, mismatches, status
	c.bar.Width = max(w-4-nameWidth-8-14-8-10, 6)
	c.clampOffset()
}

// Apply records a progress update.
func (c *ChecksModel) Apply(u progress.Update) {
	if u.Index < 0 || u.Index >= len(c.rows) {
		return
	}
	r := &c.rows[u.Index]
	r.value = u.Value
	r.cases = u.Cases
	r.mismatches = u.Mismatches
	switch {
	case u.Mismatches > 0:
		r.status = rowFailed
	case u.Value >= 1 && u.Cases == 0:
		r.status = rowSkipped
	case u.Value >= 1:
		r.status = rowPassed
	default:
		r.status = rowRunning
	}
}

// SetResults replaces the live rows with final results.
func (c *ChecksModel) SetResults(results []selfcheck.Result) {
	for i, res := range results {
		if i >= len(c.rows) {
			break
		}
		r := &c.rows[i]
		r.cases = res.Cases
		r.mismatches = res.Mismatches
		var mm apperrors.MismatchError
		switch {
		case res.Skipped:
			r.status, r.value = rowSkipped, 1
		case res.Mismatches > 0 || errors.As(res.Err, &mm):
			r.status = rowFailed
		case res.Err != nil:
			r.status = rowInterrupted
		default:
			r.status, r.value = rowPassed, 1
		}
	}
}

// Reset returns every row to pending.
func (c *ChecksModel) Reset() {
	for i := range c.rows {
		c.rows[i] = checkRow{name: c.rows[i].name}
	}
	c.offset = 0
}

// Counts returns how many checks passed, failed and are still open.
func (c ChecksModel) Counts() (passed, failed, open int) {
	for _, r := range c.rows {
		switch r.status {
		case rowPassed, rowSkipped:
			passed++
		case rowFailed:
			failed++
		default:
			open++
		}
	}
	return passed, failed, open
}

// Scroll moves the visible window by delta rows.
func (c *ChecksModel) Scroll(delta int) {
	c.offset += delta
	c.clampOffset()
}

func (c ChecksModel) visibleRows() int {
	// border and title
	return max(c.height-3, 1)
}

// PageSize is the number of rows one page scroll moves.
func (c ChecksModel) PageSize() int { return c.visibleRows() }

func (c *ChecksModel) clampOffset() {
	c.offset = min(c.offset, max(len(c.rows)-c.visibleRows(), 0))
	c.offset = max(c.offset, 0)
}

// View renders the panel.
func (c ChecksModel) View() string {
	var b strings.Builder
	passed, failed, open := c.Counts()
	b.WriteString(titleStyle.Render("Checks"))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %d ok, %d failed, %d running", passed, failed, open)))

	end := min(c.offset+c.visibleRows(), len(c.rows))
	for _, r := range c.rows[c.offset:end] {
		b.WriteString("\n")
		b.WriteString(c.renderRow(r))
	}
	return panelStyle.
		Width(max(c.width-2, 0)).
		Height(max(c.height-2, 0)).
		Render(b.String())
}

func (c ChecksModel) renderRow(r checkRow) string {
	name := r.name
	if len(name) > nameWidth {
		name = name[:nameWidth-1] + "…"
	}
	mism := dimStyle.Render(fmt.Sprintf("%6s", format.FormatCount(r.mismatches)))
	if r.mismatches > 0 {
		mism = errorStyle.Render(fmt.Sprintf("%6s", format.FormatCount(r.mismatches)))
	}
	return fmt.Sprintf(" %s %s %s %s %s %s",
		checkNameStyle.Render(fmt.Sprintf("%-*s", nameWidth, name)),
		c.bar.ViewAs(r.value),
		accentStyle.Render(fmt.Sprintf("%6.1f%%", r.value*100)),
		dimStyle.Render(fmt.Sprintf("%12s", format.FormatCount(r.cases))),
		mism,
		statusStyle(r.status).Render(r.status.String()))
}

func statusStyle(s rowStatus) lipgloss.Style {
	switch s {
	case rowPassed:
		return successStyle
	case rowFailed:
		return errorStyle
	case rowSkipped, rowInterrupted:
		return warningStyle
	}
	return dimStyle
}
