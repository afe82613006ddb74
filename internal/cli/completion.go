package cli

import (
	"fmt"
	"io"
	"strings"
)

// FlagCompletion describes a CLI flag for shell completion generation.
// All shell completion functions generate from flagRegistry, so adding a
// flag only requires appending to it.
type FlagCompletion struct {
	Long      string   // long flag name without "-" (e.g., "help")
	Short     string   // short flag without "-" (e.g., "h")
	Help      string   // description text
	Values    []string // suggested completion values (nil = boolean or free-form)
	ValueName string   // label for the value; empty for boolean flags
	IsFile    bool     // true if the flag takes a file path
	IsAlgo    bool     // true if values come from the algorithm list
}

var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message"},
	{Long: "version", Short: "V", Help: "Show version information"},
	{Long: "n", Help: "Fibonacci index to calculate", ValueName: "number"},
	{Long: "algo", Help: "Algorithm to use", IsAlgo: true, ValueName: "algorithm"},
	{Long: "last-digits", Help: "Compute only the last K digits", ValueName: "digits"},
	{Long: "timeout", Help: "Maximum execution time", Values: []string{"10s", "1m", "5m", "30m"}, ValueName: "duration"},
	{Long: "celsius", Help: "Convert Celsius to Fahrenheit", ValueName: "degrees"},
	{Long: "fahrenheit", Help: "Convert Fahrenheit to Celsius", ValueName: "degrees"},
	{Long: "index", Help: "Element index to look up", ValueName: "index"},
	{Long: "items", Help: "Comma-separated integer list", ValueName: "list"},
	{Long: "word", Help: "Print the first word of the text", ValueName: "text"},
	{Long: "interactive", Short: "i", Help: "Start the interactive REPL"},
	{Long: "tui", Help: "Start the converter dashboard"},
	{Long: "verbose", Short: "v", Help: "Display the full result value"},
	{Long: "details", Short: "d", Help: "Show performance details"},
	{Long: "quiet", Short: "q", Help: "Quiet mode for scripts"},
	{Long: "output", Short: "o", Help: "Output file path", IsFile: true, ValueName: "file"},
	{Long: "no-color", Help: "Disable colored output"},
	{Long: "log-level", Help: "Log level", Values: []string{"debug", "info", "warn", "error", "disabled"}, ValueName: "level"},
	{Long: "metrics-file", Help: "Prometheus textfile path", IsFile: true, ValueName: "file"},
	{Long: "config", Help: "YAML configuration file", IsFile: true, ValueName: "file"},
	{Long: "completion", Help: "Generate completion script", Values: SupportedShells, ValueName: "shell"},
}

// SupportedShells lists the shells GenerateCompletion accepts.
var SupportedShells = []string{"bash", "zsh", "fish"}

// GenerateCompletion generates a shell completion script for the specified shell.
//
// Parameters:
//   - out: The writer to output the completion script.
//   - shell: The shell type ("bash", "zsh", "fish").
//   - algorithms: List of available algorithm names.
//
// Returns:
//   - error: An error if the shell is not supported.
func GenerateCompletion(out io.Writer, shell string, algorithms []string) error {
	switch shell {
	case "bash":
		return generateBashCompletion(out, algorithms)
	case "zsh":
		return generateZshCompletion(out, algorithms)
	case "fish":
		return generateFishCompletion(out, algorithms)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: %s)", shell, strings.Join(SupportedShells, ", "))
	}
}

// values returns the completion candidates for f.
func (f FlagCompletion) values(algorithms []string) []string {
	if f.IsAlgo {
		return append([]string{"all"}, algorithms...)
	}
	return f.Values
}

func (f FlagCompletion) names() []string {
	names := []string{"-" + f.Long}
	if f.Short != "" {
		names = append(names, "-"+f.Short)
	}
	return names
}

func generateBashCompletion(out io.Writer, algorithms []string) error {
	var opts []string
	for _, f := range flagRegistry {
		opts = append(opts, f.names()...)
	}

	var b strings.Builder
	b.WriteString("# bash completion for fibconv\n")
	b.WriteString("_fibconv() {\n")
	b.WriteString("    local cur prev\n")
	b.WriteString("    COMPREPLY=()\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n\n")
	b.WriteString("    case \"${prev}\" in\n")
	for _, f := range flagRegistry {
		pattern := strings.Join(f.names(), "|")
		switch {
		case f.IsFile:
			fmt.Fprintf(&b, "        %s)\n            COMPREPLY=( $(compgen -f -- \"${cur}\") )\n            return 0\n            ;;\n", pattern)
		case len(f.values(algorithms)) > 0:
			fmt.Fprintf(&b, "        %s)\n            COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n            return 0\n            ;;\n",
				pattern, strings.Join(f.values(algorithms), " "))
		}
	}
	b.WriteString("    esac\n\n")
	fmt.Fprintf(&b, "    COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n", strings.Join(opts, " "))
	b.WriteString("}\n")
	b.WriteString("complete -F _fibconv fibconv\n")

	_, err := io.WriteString(out, b.String())
	return err
}

func generateZshCompletion(out io.Writer, algorithms []string) error {
	var b strings.Builder
	b.WriteString("#compdef fibconv\n\n")
	b.WriteString("_fibconv() {\n")
	b.WriteString("    _arguments \\\n")
	for _, f := range flagRegistry {
		action := ""
		if f.ValueName != "" {
			switch vals := f.values(algorithms); {
			case f.IsFile:
				action = fmt.Sprintf(":%s:_files", f.ValueName)
			case len(vals) > 0:
				action = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(vals, " "))
			default:
				action = fmt.Sprintf(":%s:", f.ValueName)
			}
		}
		for _, name := range f.names() {
			fmt.Fprintf(&b, "        '%s[%s]%s' \\\n", name, f.Help, action)
		}
	}
	b.WriteString("        && return 0\n")
	b.WriteString("}\n\n")
	b.WriteString("_fibconv \"$@\"\n")

	_, err := io.WriteString(out, b.String())
	return err
}

func generateFishCompletion(out io.Writer, algorithms []string) error {
	var b strings.Builder
	b.WriteString("# fish completion for fibconv\n")
	for _, f := range flagRegistry {
		line := "complete -c fibconv -o " + f.Long
		if f.Short != "" {
			line += " -o " + f.Short
		}
		line += fmt.Sprintf(" -d '%s'", f.Help)
		switch vals := f.values(algorithms); {
		case f.IsFile:
			line += " -r -F"
		case len(vals) > 0:
			line += fmt.Sprintf(" -x -a '%s'", strings.Join(vals, " "))
		case f.ValueName != "":
			line += " -x"
		}
		b.WriteString(line + "\n")
	}

	_, err := io.WriteString(out, b.String())
	return err
}
