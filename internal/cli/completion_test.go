package cli

import (
	"bytes"
	"strings"
	"testing"
)

var completionOps = []string{"add", "mul", "shiftupbit"}

func TestGenerateCompletion(t *testing.T) {
	t.Parallel()
	tests := []struct {
		shell    string
		contains []string
	}{
		{"bash", []string{
			"complete -F _natcalc_completions natcalc",
			`operations="add mul shiftupbit"`,
			"--profile)",
			`compgen -W "big gmp"`,
			"--len|-n)",
		}},
		{"zsh", []string{
			"#compdef natcalc",
			"operations=(add mul shiftupbit)",
			"'--op[Operation to evaluate]:operation:($operations)'",
			"'--profile[Bench profile file]:file:_files'",
			"'(-q --quiet)'{-q,--quiet}'[Print results only]'",
		}},
		{"fish", []string{
			"complete -c natcalc -f",
			"# Self-check",
			"complete -c natcalc -l op -d 'Operation to evaluate' -xa 'add mul shiftupbit'",
			"complete -c natcalc -l profile -d 'Bench profile file' -rF",
			"complete -c natcalc -l seed -d 'Random seed' -x",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			if err := GenerateCompletion(&buf, tt.shell, completionOps); err != nil {
				t.Fatalf("GenerateCompletion: %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("%s script missing %q", tt.shell, want)
				}
			}
		})
	}
}

func TestGenerateCompletionUnsupportedShell(t *testing.T) {
	t.Parallel()
	if err := GenerateCompletion(&bytes.Buffer{}, "powershell", completionOps); err == nil {
		t.Fatal("expected error for unsupported shell")
	}
}

func TestFlagRegistryUnique(t *testing.T) {
	t.Parallel()
	seen := map[string]bool{}
	for _, f := range flagRegistry {
		for _, p := range flagPatterns(f) {
			if seen[p] {
				t.Errorf("flag %s registered twice", p)
			}
			seen[p] = true
		}
	}
}
