package tui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	apperrors "github.com/agbru/natcalc/internal/errors"
	"github.com/agbru/natcalc/internal/progress"
	"github.com/agbru/natcalc/internal/selfcheck"
)

func runReporter(t *testing.T, numChecks int, updates ...progress.Update) {
	t.Helper()
	reporter := &TUIProgressReporter{ref: &programRef{}}
	ch := make(chan progress.Update, len(updates))
	for _, u := range updates {
		ch <- u
	}
	close(ch)

	var wg sync.WaitGroup
	wg.Add(1)
	go reporter.DisplayProgress(&wg, ch, numChecks, nil)

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("DisplayProgress did not return after the channel closed")
	}
}

func TestTUIProgressReporter_DrainsChannel(t *testing.T) {
	t.Parallel()
	runReporter(t, 1,
		progress.Update{Index: 0, Value: 0.25, Cases: 10},
		progress.Update{Index: 0, Value: 0.5, Cases: 20},
		progress.Update{Index: 0, Value: 1, Cases: 40},
	)
}

func TestTUIProgressReporter_ZeroChecks(t *testing.T) {
	t.Parallel()
	runReporter(t, 0, progress.Update{Index: 0, Value: 0.5})
}

func TestTUIProgressReporter_MultipleChecks(t *testing.T) {
	t.Parallel()
	runReporter(t, 2,
		progress.Update{Index: 0, Value: 0.25},
		progress.Update{Index: 1, Value: 0.5, Mismatches: 1},
		progress.Update{Index: 0, Value: 1},
		progress.Update{Index: 1, Value: 1},
	)
}

func TestTUIProgressReporter_EmptyChannel(t *testing.T) {
	t.Parallel()
	runReporter(t, 1)
}

func TestProgramRef_Send_NilProgram(t *testing.T) {
	t.Parallel()
	ref := &programRef{}
	ref.Send(ProgressMsg{Average: 0.5})
}

func TestProgramRef_Send_Concurrent(t *testing.T) {
	t.Parallel()
	ref := &programRef{}
	var wg sync.WaitGroup
	for i := range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ref.Send(ProgressMsg{Average: float64(i) / 100})
		}()
	}
	wg.Wait()
}

func TestTUIResultPresenter_PresentSummary(t *testing.T) {
	t.Parallel()
	presenter := &TUIResultPresenter{ref: &programRef{}}
	presenter.PresentSummary([]selfcheck.Result{
		{Name: "add", Cases: 100, Duration: time.Millisecond},
		{Name: "mul", Cases: 100, Mismatches: 1},
	}, nil)
}

func TestTUIResultPresenter_FormatDuration(t *testing.T) {
	t.Parallel()
	presenter := &TUIResultPresenter{ref: &programRef{}}
	for _, d := range []time.Duration{0, 500 * time.Microsecond, 42 * time.Millisecond, 3 * time.Minute} {
		if presenter.FormatDuration(d) == "" {
			t.Errorf("FormatDuration(%v) is empty", d)
		}
	}
}

func TestTUIResultPresenter_HandleError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, apperrors.ExitSuccess},
		{"timeout", context.DeadlineExceeded, apperrors.ExitErrorTimeout},
		{"canceled", context.Canceled, apperrors.ExitErrorCanceled},
		{"mismatch", apperrors.MismatchError{Check: "add", Width: 1, Inputs: "x=[0x1]", Got: "[0x2]", Want: "[0x3]"}, apperrors.ExitErrorMismatch},
		{"generic", errors.New("something failed"), apperrors.ExitErrorGeneric},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			presenter := &TUIResultPresenter{ref: &programRef{}}
			if got := presenter.HandleError(tt.err, time.Second, nil); got != tt.want {
				t.Errorf("HandleError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
