package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	apperrors "github.com/agbru/natcalc/internal/errors"
	"github.com/agbru/natcalc/internal/selfcheck"
	"github.com/agbru/natcalc/internal/ui"
)

func TestPresentSummary(t *testing.T) {
	ui.SetTheme("none")
	t.Cleanup(func() { ui.SetTheme("dark") })

	results := []selfcheck.Result{
		{Name: "add", Cases: 1200, Duration: 2 * time.Millisecond},
		{Name: "mul", Cases: 50, Mismatches: 1, Duration: time.Millisecond, Err: apperrors.MismatchError{Check: "mul"}},
		{Name: "mulworddwordadd", Skipped: true},
		{Name: "square", Cases: 10, Err: context.Canceled},
		{Name: "gte", Cases: 3, Err: errors.New("boom")},
	}
	var buf bytes.Buffer
	CLIResultPresenter{}.PresentSummary(results, &buf)
	got := buf.String()
	for _, want := range []string{
		"Self-check Summary",
		"1,200",
		"✅ OK",
		"❌ Mismatch",
		"⚠ Skipped",
		"⏹ Interrupted",
		"❌ Failure (boom)",
		"5 checks, 1,263 cases, 1 mismatches, 1 skipped, longest check 2ms.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("summary missing %q:\n%s", want, got)
		}
	}
}

func TestPresenterHandleError(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	code := CLIResultPresenter{}.HandleError(apperrors.MismatchError{Check: "add", Width: 1, Inputs: "x=[0x1]", Got: "a", Want: "b"}, time.Second, &buf)
	if code != apperrors.ExitErrorMismatch {
		t.Errorf("code = %d, want %d", code, apperrors.ExitErrorMismatch)
	}
	if !strings.Contains(buf.String(), "add mismatch at width 1") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestAnalyzeWithPresenter(t *testing.T) {
	ui.SetTheme("none")
	t.Cleanup(func() { ui.SetTheme("dark") })

	var buf bytes.Buffer
	code := selfcheck.Analyze([]selfcheck.Result{{Name: "add", Cases: 4}}, CLIResultPresenter{}, &buf)
	if code != apperrors.ExitSuccess {
		t.Errorf("code = %d, want success", code)
	}
	if !strings.Contains(buf.String(), "Global Status: Success") {
		t.Errorf("output = %q", buf.String())
	}
}
