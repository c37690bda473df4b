package cli

import (
	"fmt"
	"io"
	"strings"
)

// FlagCompletion describes a CLI flag for shell completion generation.
// Every generator reads flagRegistry, so a new flag only needs an entry here.
type FlagCompletion struct {
	Long      string // long name without "--"
	Short     string // short name without "-"
	Help      string
	Values    []string // suggested values (nil for booleans or free values)
	ValueName string   // value label; empty for boolean flags
	IsFile    bool
	IsAlgo    bool // values come from the strategy registry
}

var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message"},
	{Long: "version", Short: "V", Help: "Show version information"},
	{Short: "n", Help: "Range size", ValueName: "count"},
	{Long: "start", Help: "First value of the range", ValueName: "number"},
	{Long: "end", Help: "Exclusive end of the range", ValueName: "number"},
	{Long: "workers", Short: "w", Help: "Number of workers", Values: []string{"1", "2", "4", "8", "16", "32"}, ValueName: "count"},
	{Long: "chunk-size", Help: "Fixed chunk size", ValueName: "count"},
	{Long: "max-parallel", Help: "Maximum concurrently running workers", ValueName: "count"},
	{Long: "algo", Help: "Summation strategy", IsAlgo: true, ValueName: "strategy"},
	{Long: "timeout", Help: "Maximum execution time", Values: []string{"30s", "1m", "5m", "10m"}, ValueName: "duration"},
	{Long: "verbose", Short: "v", Help: "Print each partial result"},
	{Long: "details", Short: "d", Help: "Show per-chunk and resource details"},
	{Long: "quiet", Short: "q", Help: "Print only the sum"},
	{Long: "verify", Help: "Check the sum against the closed form"},
	{Long: "output", Short: "o", Help: "Report file path", IsFile: true, ValueName: "file"},
	{Long: "format", Help: "Report format", Values: []string{FormatText, FormatJSON, FormatYAML}, ValueName: "format"},
	{Long: "metrics-file", Help: "Prometheus textfile path", IsFile: true, ValueName: "file"},
	{Long: "log-level", Help: "Diagnostic log level", Values: []string{"debug", "info", "warn", "error"}, ValueName: "level"},
	{Long: "no-color", Help: "Disable colored output"},
	{Long: "tui", Help: "Run the interactive dashboard"},
	{Long: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish"}, ValueName: "shell"},
}

// GenerateCompletion writes a completion script for shell ("bash", "zsh" or
// "fish"). algorithms are the registered strategy keys; "all" is appended.
func GenerateCompletion(out io.Writer, shell string, algorithms []string) error {
	algos := strings.Join(append(append([]string{}, algorithms...), "all"), " ")
	var script string
	switch shell {
	case "bash":
		script = bashCompletion(algos)
	case "zsh":
		script = zshCompletion(algos)
	case "fish":
		script = fishCompletion(algos)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish)", shell)
	}
	if _, err := io.WriteString(out, script); err != nil {
		return fmt.Errorf("completion %s generation failed: %w", shell, err)
	}
	return nil
}

// flagNames returns the dashed spellings of f, long first.
func flagNames(f FlagCompletion) []string {
	var names []string
	if f.Long != "" {
		names = append(names, "--"+f.Long)
	}
	if f.Short != "" {
		names = append(names, "-"+f.Short)
	}
	return names
}

func bashCompletion(algos string) string {
	var opts []string
	var cases strings.Builder
	for _, f := range flagRegistry {
		names := flagNames(f)
		opts = append(opts, names...)

		var body string
		switch {
		case f.IsAlgo:
			body = `COMPREPLY=( $(compgen -W "${algorithms}" -- "${cur}") )`
		case f.IsFile:
			body = `COMPREPLY=( $(compgen -f -- "${cur}") )`
		case len(f.Values) > 0:
			body = fmt.Sprintf(`COMPREPLY=( $(compgen -W "%s" -- "${cur}") )`, strings.Join(f.Values, " "))
		default:
			continue
		}
		fmt.Fprintf(&cases, "        %s)\n            %s\n            return 0\n            ;;\n", strings.Join(names, "|"), body)
	}

	return fmt.Sprintf(`# Bash completion script for rangesum
# Add this to your ~/.bashrc or ~/.bash_completion

_rangesum_completions() {
    local cur prev opts algorithms
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"
    opts="%s"
    algorithms="%s"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _rangesum_completions rangesum
`, strings.Join(opts, " "), algos, cases.String())
}

func zshCompletion(algos string) string {
	args := make([]string, 0, len(flagRegistry))
	for _, f := range flagRegistry {
		var suffix string
		switch {
		case f.IsFile:
			suffix = fmt.Sprintf(":%s:_files", f.ValueName)
		case f.IsAlgo:
			suffix = fmt.Sprintf(":%s:($algorithms)", f.ValueName)
		case len(f.Values) > 0:
			suffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
		case f.ValueName != "":
			suffix = fmt.Sprintf(":%s:", f.ValueName)
		}

		var entry string
		switch {
		case f.Long != "" && f.Short != "":
			entry = fmt.Sprintf("'(-%s --%s)'{-%s,--%s}'[%s]%s'", f.Short, f.Long, f.Short, f.Long, f.Help, suffix)
		case f.Long != "":
			entry = fmt.Sprintf("'--%s[%s]%s'", f.Long, f.Help, suffix)
		default:
			entry = fmt.Sprintf("'-%s[%s]%s'", f.Short, f.Help, suffix)
		}
		args = append(args, "        "+entry)
	}

	return fmt.Sprintf(`#compdef rangesum

# Zsh completion script for rangesum
# Place this file in a directory listed in $fpath

_rangesum() {
    local -a algorithms
    algorithms=(%s)

    _arguments -s \
%s
}

_rangesum "$@"
`, algos, strings.Join(args, " \\\n"))
}

func fishCompletion(algos string) string {
	lines := []string{
		"# Fish completion script for rangesum",
		"# Add this to ~/.config/fish/completions/rangesum.fish",
		"",
		"complete -c rangesum -f",
	}
	for _, f := range flagRegistry {
		parts := []string{"complete -c rangesum"}
		if f.Short != "" {
			parts = append(parts, "-s "+f.Short)
		}
		if f.Long != "" {
			parts = append(parts, "-l "+f.Long)
		}
		parts = append(parts, fmt.Sprintf("-d '%s'", f.Help))
		switch {
		case f.IsFile:
			parts = append(parts, "-rF")
		case f.IsAlgo:
			parts = append(parts, fmt.Sprintf("-xa '%s'", algos))
		case len(f.Values) > 0:
			parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(f.Values, " ")))
		case f.ValueName != "":
			parts = append(parts, "-x")
		}
		lines = append(lines, strings.Join(parts, " "))
	}
	return strings.Join(lines, "\n") + "\n"
}
