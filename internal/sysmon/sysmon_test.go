package sysmon

import (
	"context"
	"testing"
	"time"
)

func TestSampleWithinRange(t *testing.T) {
	s := Sample()
	if s.CPUPercent < 0 || s.CPUPercent > 100 {
		t.Errorf("CPUPercent = %f, want 0..100", s.CPUPercent)
	}
	if s.MemPercent < 0 || s.MemPercent > 100 {
		t.Errorf("MemPercent = %f, want 0..100", s.MemPercent)
	}
}

func TestStatsString(t *testing.T) {
	t.Parallel()
	got := Stats{CPUPercent: 12.34, MemPercent: 50}.String()
	if want := "cpu 12.3%, mem 50.0%"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestClamp(t *testing.T) {
	t.Parallel()
	tests := []struct{ in, want float64 }{
		{-1, 0}, {0, 0}, {42.5, 42.5}, {100, 100}, {101, 100},
	}
	for _, tt := range tests {
		if got := clamp(tt.in); got != tt.want {
			t.Errorf("clamp(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestWatchClosesOnCancel(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	ch := Watch(ctx, 5*time.Millisecond)

	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("no reading within 2s")
	}
	cancel()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("channel not closed after cancel")
		}
	}
}
