package tui

import (
	"time"

	"github.com/agbru/natcalc/internal/progress"
	"github.com/agbru/natcalc/internal/selfcheck"
	"github.com/agbru/natcalc/internal/sysmon"
)

// ProgressMsg carries one check update together with the run-wide aggregate.
type ProgressMsg struct {
	Update          progress.Update
	Average         float64
	ETA             time.Duration
	TotalCases      uint64
	TotalMismatches uint64
	Generation      uint64
}

// ProgressDoneMsg signals that the update channel was closed.
type ProgressDoneMsg struct {
	Generation uint64
}

// SummaryMsg carries the per-check results of a finished run.
type SummaryMsg struct {
	Results    []selfcheck.Result
	Generation uint64
}

// ErrorMsg reports the error that decided the exit code.
type ErrorMsg struct {
	Err        error
	Duration   time.Duration
	Generation uint64
}

// RunCompleteMsg is sent once the run has been analyzed.
type RunCompleteMsg struct {
	ExitCode   int
	Generation uint64
}

// ContextCancelledMsg is sent when the run's context ends.
type ContextCancelledMsg struct {
	Err        error
	Generation uint64
}

// TickMsg drives the periodic runtime sampling.
type TickMsg time.Time

// MemStatsMsg is a runtime memory sample.
type MemStatsMsg struct {
	Alloc        uint64
	HeapInuse    uint64
	NumGC        uint32
	PauseTotalNs uint64
	NumGoroutine int
}

// SysStatsMsg is a host load reading.
type SysStatsMsg struct {
	Stats sysmon.Stats
}
