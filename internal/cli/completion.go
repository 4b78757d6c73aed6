package cli

import (
	"fmt"
	"io"
	"strings"
)

// FlagCompletion describes a flag for completion scripts. Every generator
// reads flagRegistry, so a new flag only needs an entry there.
type FlagCompletion struct {
	Long      string   // long name without "--"
	Short     string   // short name without "-"
	Help      string   // description
	Values    []string // suggested values; nil for booleans and free values
	ValueName string   // value label in zsh; empty for booleans
	IsFile    bool     // value is a path
	IsOp      bool     // values are operation names, supplied at generation time
	Section   string   // fish comment heading
}

var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message", Section: "Help and version"},
	{Long: "version", Help: "Show version information", Section: "Help and version"},

	{Long: "op", Help: "Operation to evaluate", IsOp: true, ValueName: "operation", Section: "Evaluation"},
	{Long: "len", Short: "n", Help: "Operand width in 32-bit words", Values: []string{"1", "2", "4", "8", "16"}, ValueName: "words", Section: "Evaluation"},
	{Long: "x", Help: "First operand", ValueName: "number", Section: "Evaluation"},
	{Long: "y", Help: "Second operand", ValueName: "number", Section: "Evaluation"},
	{Long: "z", Help: "In/out operand", ValueName: "number", Section: "Evaluation"},
	{Long: "off", Help: "Word offset", ValueName: "words", Section: "Evaluation"},
	{Long: "bits", Help: "Shift distance", ValueName: "bits", Section: "Evaluation"},
	{Long: "carry", Help: "Word operand", ValueName: "word", Section: "Evaluation"},
	{Long: "dword", Help: "64-bit multiplier", ValueName: "dword", Section: "Evaluation"},
	{Long: "bit", Help: "Bit index", ValueName: "index", Section: "Evaluation"},

	{Long: "selfcheck", Help: "Verify every operation against the reference", Section: "Self-check"},
	{Long: "checks", Help: "Checks to run", IsOp: true, ValueName: "checks", Section: "Self-check"},
	{Long: "iterations", Help: "Cases per check and width", Values: []string{"50", "200", "1000"}, ValueName: "count", Section: "Self-check"},
	{Long: "max-len", Help: "Largest width exercised", Values: []string{"8", "16", "32", "64"}, ValueName: "words", Section: "Self-check"},
	{Long: "seed", Help: "Random seed", ValueName: "seed", Section: "Self-check"},
	{Long: "edge-bias", Help: "Probability of edge-case words", Values: []string{"0", "0.25", "0.5"}, ValueName: "probability", Section: "Self-check"},
	{Long: "workers", Help: "Concurrent checks", ValueName: "count", Section: "Self-check"},
	{Long: "oracle", Help: "Reference backend", Values: []string{"big", "gmp"}, ValueName: "backend", Section: "Self-check"},
	{Long: "tui", Help: "Interactive dashboard", Section: "Self-check"},

	{Long: "bench", Help: "Benchmark the hot kernel routines", Section: "Bench"},
	{Long: "bench-iterations", Help: "Bench iterations at width 1", ValueName: "count", Section: "Bench"},
	{Long: "profile", Help: "Bench profile file", IsFile: true, ValueName: "file", Section: "Bench"},

	{Long: "repl", Help: "Interactive session", Section: "Other"},
	{Long: "timeout", Help: "Maximum run time", Values: []string{"30s", "1m", "5m", "30m"}, ValueName: "duration", Section: "Other"},
	{Long: "metrics-addr", Help: "Serve metrics on this address", ValueName: "addr", Section: "Other"},
	{Long: "verbose", Short: "v", Help: "Verbose logging", Section: "Other"},
	{Long: "quiet", Short: "q", Help: "Print results only", Section: "Other"},
	{Long: "no-color", Help: "Disable colored output", Section: "Other"},
	{Long: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish"}, ValueName: "shell", Section: "Other"},
}

// GenerateCompletion writes a completion script for shell. ops fills the
// values of --op and --checks.
func GenerateCompletion(out io.Writer, shell string, ops []string) error {
	var script string
	switch shell {
	case "bash":
		script = bashCompletion(ops)
	case "zsh":
		script = zshCompletion(ops)
	case "fish":
		script = fishCompletion(ops)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish)", shell)
	}
	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("completion %s generation failed: %w", shell, err)
	}
	return nil
}

func flagPatterns(f FlagCompletion) []string {
	var p []string
	if f.Long != "" {
		p = append(p, "--"+f.Long)
	}
	if f.Short != "" {
		p = append(p, "-"+f.Short)
	}
	return p
}

func bashCompletion(ops []string) string {
	var opts []string
	var cases strings.Builder
	for _, f := range flagRegistry {
		opts = append(opts, flagPatterns(f)...)

		var body string
		switch {
		case f.IsOp:
			body = `COMPREPLY=( $(compgen -W "${operations}" -- "${cur}") )`
		case f.IsFile:
			body = `COMPREPLY=( $(compgen -f -- "${cur}") )`
		case len(f.Values) > 0:
			body = fmt.Sprintf(`COMPREPLY=( $(compgen -W "%s" -- "${cur}") )`, strings.Join(f.Values, " "))
		default:
			continue
		}
		fmt.Fprintf(&cases, "        %s)\n            %s\n            return 0\n            ;;\n",
			strings.Join(flagPatterns(f), "|"), body)
	}

	return fmt.Sprintf(`# Bash completion script for natcalc
# Add this to your ~/.bashrc or ~/.bash_completion

_natcalc_completions() {
    local cur prev opts operations
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    opts="%s"
    operations="%s"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _natcalc_completions natcalc
`, strings.Join(opts, " "), strings.Join(ops, " "), cases.String())
}

func zshCompletion(ops []string) string {
	var args []string
	for _, f := range flagRegistry {
		args = append(args, zshArgEntry(f))
	}
	return fmt.Sprintf(`#compdef natcalc

# Zsh completion script for natcalc
# Add this to your ~/.zshrc or place in $fpath

_natcalc() {
    local -a operations
    operations=(%s)

    _arguments -s \
%s
}

_natcalc "$@"
`, strings.Join(ops, " "), strings.Join(args, " \\\n"))
}

func zshArgEntry(f FlagCompletion) string {
	suffix := ""
	switch {
	case f.IsFile:
		suffix = fmt.Sprintf(":%s:_files", f.ValueName)
	case f.IsOp:
		suffix = fmt.Sprintf(":%s:($operations)", f.ValueName)
	case len(f.Values) > 0:
		suffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
	case f.ValueName != "":
		suffix = fmt.Sprintf(":%s:", f.ValueName)
	}
	if f.Long != "" && f.Short != "" {
		return fmt.Sprintf("        '(-%s --%s)'{-%s,--%s}'[%s]%s'", f.Short, f.Long, f.Short, f.Long, f.Help, suffix)
	}
	return fmt.Sprintf("        '--%s[%s]%s'", f.Long, f.Help, suffix)
}

func fishCompletion(ops []string) string {
	lines := []string{
		"# Fish completion script for natcalc",
		"# Add this to ~/.config/fish/completions/natcalc.fish",
		"",
		"complete -c natcalc -f",
	}
	section := ""
	for _, f := range flagRegistry {
		if f.Section != section {
			section = f.Section
			lines = append(lines, "", "# "+section)
		}
		lines = append(lines, fishCompleteLine(f, ops))
	}
	return strings.Join(lines, "\n") + "\n"
}

func fishCompleteLine(f FlagCompletion, ops []string) string {
	parts := []string{"complete -c natcalc"}
	if f.Short != "" {
		parts = append(parts, "-s "+f.Short)
	}
	parts = append(parts, "-l "+f.Long, fmt.Sprintf("-d '%s'", strings.ReplaceAll(f.Help, "'", `\'`)))
	switch {
	case f.IsFile:
		parts = append(parts, "-rF")
	case f.IsOp:
		parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(ops, " ")))
	case len(f.Values) > 0:
		parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(f.Values, " ")))
	case f.ValueName != "":
		parts = append(parts, "-x")
	}
	return strings.Join(parts, " ")
}
