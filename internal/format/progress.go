package format

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// ProgressState tracks per-check progress in [0, 1] and their average.
type ProgressState struct {
	mu         sync.Mutex
	progresses []float64
	numChecks  int
}

// NewProgressState tracks numChecks independent progress values.
func NewProgressState(numChecks int) *ProgressState {
	return &ProgressState{
		progresses: make([]float64, max(numChecks, 0)),
		numChecks:  numChecks,
	}
}

// Update records value for check index, clamped to [0, 1]. Out-of-range
// indices are ignored.
func (ps *ProgressState) Update(index int, value float64) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if index >= 0 && index < len(ps.progresses) {
		ps.progresses[index] = min(max(value, 0), 1)
	}
}

// CalculateAverage returns the mean progress across all checks.
func (ps *ProgressState) CalculateAverage() float64 {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if ps.numChecks <= 0 {
		return 0
	}
	var total float64
	for _, p := range ps.progresses {
		total += p
	}
	return total / float64(ps.numChecks)
}

// maxETA caps estimates produced from very slow rates.
const maxETA = 24 * time.Hour

// rateSmoothing is the weight of the newest sample in the rate average.
const rateSmoothing = 0.3

// ProgressWithETA extends ProgressState with an exponentially smoothed rate
// of progress, from which it derives the time remaining.
type ProgressWithETA struct {
	*ProgressState
	numChecks    int
	startTime    time.Time
	lastUpdate   time.Time
	lastProgress float64
	progressRate float64 // fraction per second
}

// NewProgressWithETA tracks numChecks checks starting now.
func NewProgressWithETA(numChecks int) *ProgressWithETA {
	now := time.Now()
	return &ProgressWithETA{
		ProgressState: NewProgressState(numChecks),
		numChecks:     numChecks,
		startTime:     now,
		lastUpdate:    now,
	}
}

// UpdateWithETA records an update and returns the new average together with
// the current estimate of the time remaining.
func (p *ProgressWithETA) UpdateWithETA(index int, value float64) (float64, time.Duration) {
	p.Update(index, value)
	avg := p.CalculateAverage()
	now := time.Now()
	if dt := now.Sub(p.lastUpdate).Seconds(); dt > 0 && avg > p.lastProgress {
		rate := (avg - p.lastProgress) / dt
		if p.progressRate == 0 {
			p.progressRate = rate
		} else {
			p.progressRate = rateSmoothing*rate + (1-rateSmoothing)*p.progressRate
		}
		p.lastProgress = avg
		p.lastUpdate = now
	}
	return avg, p.GetETA()
}

// GetETA returns the estimated time remaining, or 0 while no rate is known.
func (p *ProgressWithETA) GetETA() time.Duration {
	if p.progressRate <= 0 {
		return 0
	}
	remaining := 1 - p.CalculateAverage()
	if remaining <= 0 {
		return 0
	}
	eta := time.Duration(remaining / p.progressRate * float64(time.Second))
	if eta > maxETA || eta < 0 {
		return maxETA
	}
	return eta
}

// Elapsed returns the time since tracking started.
func (p *ProgressWithETA) Elapsed() time.Duration { return time.Since(p.startTime) }

// ProgressBar renders progress as a bar of length cells.
func ProgressBar(progress float64, length int) string {
	progress = min(max(progress, 0), 1)
	count := int(progress * float64(length))
	var builder strings.Builder
	builder.Grow(length * 3)
	for i := 0; i < length; i++ {
		if i < count {
			builder.WriteRune('█')
		} else {
			builder.WriteRune('░')
		}
	}
	return builder.String()
}

// FormatProgressBarWithETA renders "[bar] pct% ETA: eta".
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	return fmt.Sprintf("[%s] %6.2f%% ETA: %s", ProgressBar(progress, width), min(max(progress, 0), 1)*100, FormatETA(eta))
}
