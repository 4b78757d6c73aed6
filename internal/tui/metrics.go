package tui

import (
	"fmt"
	"strings"
	"time"

	progressbar "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/natcalc/internal/format"
	"github.com/agbru/natcalc/internal/sysmon"
)

// MetricsModel shows run totals, throughput, runtime memory and host load.
type MetricsModel struct {
	alloc        uint64
	heapInuse    uint64
	numGC        uint32
	pauseTotalNs uint64
	numGoroutine int

	average    float64
	eta        time.Duration
	cases      uint64
	mismatches uint64

	speed      float64 // cases per second, smoothed
	lastCases  uint64
	lastUpdate time.Time

	cpu *RingBuffer
	mem *RingBuffer
	bar progressbar.Model

	width  int
	height int
}

// NewMetricsModel creates an empty panel.
func NewMetricsModel() MetricsModel {
	return MetricsModel{
		lastUpdate: time.Now(),
		cpu:        NewRingBuffer(sparklineSamples),
		mem:        NewRingBuffer(sparklineSamples),
		bar:        progressbar.New(progressbar.WithGradient(barStartColor, barEndColor), progressbar.WithoutPercentage()),
	}
}

const sparklineSamples = 32

// SetSize updates dimensions and fits the sparklines and bar to the width.
func (m *MetricsModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	inner := max(w-20, 8)
	m.cpu.Resize(inner)
	m.mem.Resize(inner)
	m.bar.Width = max(w-16, 10)
}

// UpdateMemStats stores a runtime memory sample.
func (m *MetricsModel) UpdateMemStats(msg MemStatsMsg) {
	m.alloc = msg.Alloc
	m.heapInuse = msg.HeapInuse
	m.numGC = msg.NumGC
	m.pauseTotalNs = msg.PauseTotalNs
	m.numGoroutine = msg.NumGoroutine
}

// UpdateSysStats records a host load reading.
func (m *MetricsModel) UpdateSysStats(s sysmon.Stats) {
	m.cpu.Push(s.CPUPercent)
	m.mem.Push(s.MemPercent)
}

// UpdateTotals records the run-wide aggregate of a progress message.
func (m *MetricsModel) UpdateTotals(msg ProgressMsg) {
	m.average = msg.Average
	m.eta = msg.ETA
	m.cases = msg.TotalCases
	m.mismatches = msg.TotalMismatches
	m.UpdateProgress(msg.TotalCases)
}

// UpdateProgress folds a new case total into the smoothed rate. Samples
// closer than 50ms apart are ignored.
func (m *MetricsModel) UpdateProgress(cases uint64) {
	now := time.Now()
	dt := now.Sub(m.lastUpdate).Seconds()
	if dt <= 0.05 {
		return
	}
	if cases > m.lastCases {
		instant := float64(cases-m.lastCases) / dt
		if m.speed > 0 {
			m.speed = 0.7*m.speed + 0.3*instant
		} else {
			m.speed = instant
		}
	}
	m.lastCases = cases
	m.lastUpdate = now
}

// SetDone pins the overall bar at the end.
func (m *MetricsModel) SetDone() {
	m.average = 1
	m.eta = 0
}

// View renders the panel.
func (m MetricsModel) View() string {
	var rows strings.Builder
	rows.WriteString(titleStyle.Render("Run"))
	rows.WriteString("\n  " + m.bar.ViewAs(m.average) + " " + metricValueStyle.Render(fmt.Sprintf("%6.2f%%", m.average*100)))

	colWidth := max((m.width-6)/2, 0)
	mism := metricValueStyle.Render(format.FormatCount(m.mismatches))
	if m.mismatches > 0 {
		mism = errorStyle.Render(format.FormatCount(m.mismatches))
	}
	lines := [][2]string{
		{
			formatMetricCol("Cases:", format.FormatCount(m.cases), colWidth),
			formatMetricColStyled("Mismatches:", mism, colWidth),
		},
		{
			formatMetricCol("Speed:", format.FormatCount(uint64(m.speed))+"/s", colWidth),
			formatMetricCol("ETA:", format.FormatETA(m.eta), colWidth),
		},
		{
			formatMetricCol("Heap:", formatBytes(m.alloc)+" / "+formatBytes(m.heapInuse), colWidth),
			formatMetricCol("GC Runs:", fmt.Sprintf("%d (%.1fms)", m.numGC, float64(m.pauseTotalNs)/1e6), colWidth),
		},
		{
			formatMetricCol("Goroutines:", fmt.Sprintf("%d", m.numGoroutine), colWidth),
			"",
		},
	}
	for _, l := range lines {
		rows.WriteString("\n" + l[0] + l[1])
	}

	if m.height-2 >= len(lines)+4 {
		rows.WriteString("\n" + m.sparklineRow("CPU", m.cpu, cpuSparklineStyle))
		rows.WriteString("\n" + m.sparklineRow("Mem", m.mem, memSparklineStyle))
	}

	return panelStyle.
		Width(max(m.width-2, 0)).
		Height(max(m.height-2, 0)).
		Render(rows.String())
}

func (m MetricsModel) sparklineRow(label string, rb *RingBuffer, style lipgloss.Style) string {
	return fmt.Sprintf("  %s %s %s",
		metricLabelStyle.Render(fmt.Sprintf("%-4s", label)),
		style.Render(RenderSparkline(rb.Slice())),
		metricValueStyle.Render(fmt.Sprintf("%5.1f%%", rb.Last())))
}

func formatMetricCol(label, value string, colWidth int) string {
	return formatMetricColStyled(label, metricValueStyle.Render(value), colWidth)
}

func formatMetricColStyled(label, rendered string, colWidth int) string {
	cell := fmt.Sprintf(" %s %s", metricLabelStyle.Render(fmt.Sprintf("%-11s", label)), rendered)
	if visible := lipgloss.Width(cell); visible < colWidth {
		cell += strings.Repeat(" ", colWidth-visible)
	}
	return cell
}

func formatBytes(b uint64) string {
	switch {
	case b >= 1<<30:
		return fmt.Sprintf("%.1f GB", float64(b)/(1<<30))
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
