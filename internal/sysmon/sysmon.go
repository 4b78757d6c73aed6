// Package sysmon samples host CPU and memory load so long self-check and
// bench runs can report the conditions they ran under.
package sysmon

import (
	"context"
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats is one host-wide load reading.
type Stats struct {
	CPUPercent float64 // 0.0 .. 100.0
	MemPercent float64 // 0.0 .. 100.0
}

func (s Stats) String() string {
	return fmt.Sprintf("cpu %.1f%%, mem %.1f%%", s.CPUPercent, s.MemPercent)
}

// Sample takes a reading. CPU load is measured since the previous call.
// Fields the host cannot report are left at zero.
func Sample() Stats {
	var s Stats
	if pcts, err := cpu.Percent(0, false); err == nil && len(pcts) > 0 {
		s.CPUPercent = clamp(pcts[0])
	}
	if vm, err := mem.VirtualMemory(); err == nil && vm != nil {
		s.MemPercent = clamp(vm.UsedPercent)
	}
	return s
}

// Watch sends a reading every interval until ctx is done, then closes the
// channel. Readings are dropped while the receiver is behind.
func Watch(ctx context.Context, interval time.Duration) <-chan Stats {
	ch := make(chan Stats, 1)
	go func() {
		defer close(ch)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				select {
				case ch <- Sample():
				default:
				}
			}
		}
	}()
	return ch
}

func clamp(p float64) float64 {
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}
