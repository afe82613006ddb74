// Package config defines the application's configuration and parses it from
// command-line flags, FIBCONV_* environment variables and an optional YAML
// file.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	apperrors "github.com/agbru/fibconv/internal/errors"
	"github.com/agbru/fibconv/internal/fibonacci"
	"github.com/agbru/fibconv/internal/logging"
)

// EnvPrefix is the prefix of every environment variable override.
const EnvPrefix = "FIBCONV_"

// Defaults.
const (
	DefaultN        = 10
	DefaultAlgo     = "all"
	DefaultTimeout  = 5 * time.Minute
	DefaultItems    = "1,2,3,4,5"
	DefaultLogLevel = "info"
)

// Mode identifies what a single invocation does.
type Mode string

// Run modes, resolved by AppConfig.Mode.
const (
	ModeCompletion Mode = "completion"
	ModeTUI        Mode = "tui"
	ModeREPL       Mode = "repl"
	ModeConvert    Mode = "convert"
	ModeLookup     Mode = "lookup"
	ModeWord       Mode = "word"
	ModeLastDigits Mode = "lastdigits"
	ModeFibonacci  Mode = "fibonacci"
)

// AppConfig aggregates the parsed configuration of one invocation.
type AppConfig struct {
	// N is the Fibonacci index. It is signed so that a negative value
	// reaches Validate and is rejected with a clear message.
	N          int64
	Algo       string
	LastDigits int
	Timeout    time.Duration

	// Celsius and Fahrenheit are nil unless given on the command line.
	Celsius    *float64
	Fahrenheit *float64

	// Index is the raw -index argument; IndexSet reports whether it was given.
	Index    string
	IndexSet bool
	Items    string

	// Word is nil unless -word was given. An empty word is valid input.
	Word *string

	Interactive bool
	TUI         bool
	Verbose     bool
	Details     bool
	Quiet       bool
	NoColor     bool
	OutputFile  string
	LogLevel    string
	MetricsFile string
	Completion  string
	ConfigFile  string
	Version     bool

	availableAlgos []string
}

// ParseConfig parses args into an AppConfig and validates it.
//
// Parameters:
//   - programName: The name shown in usage output.
//   - args: The command-line arguments, without the program name.
//   - errWriter: Destination for usage and flag errors.
//   - availableAlgos: The algorithm names accepted by -algo besides "all".
//
// Returns:
//   - AppConfig: The merged configuration.
//   - error: flag.ErrHelp for -h, or a ConfigError when validation fails.
func ParseConfig(programName string, args []string, errWriter io.Writer, availableAlgos []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	cfg := AppConfig{availableAlgos: availableAlgos}
	var (
		celsius, fahrenheit float64
		word                string
	)

	fs.Int64Var(&cfg.N, "n", DefaultN, "The Fibonacci index to compute.")
	fs.StringVar(&cfg.Algo, "algo", DefaultAlgo, fmt.Sprintf("Algorithm: 'all' or one of [%s].", strings.Join(availableAlgos, ", ")))
	fs.IntVar(&cfg.LastDigits, "last-digits", 0, "Compute only the last K decimal digits of F(n).")
	fs.DurationVar(&cfg.Timeout, "timeout", DefaultTimeout, "Maximum time allowed for the calculation.")
	fs.Float64Var(&celsius, "celsius", 0, "Convert a Celsius temperature to Fahrenheit.")
	fs.Float64Var(&fahrenheit, "fahrenheit", 0, "Convert a Fahrenheit temperature to Celsius.")
	fs.StringVar(&cfg.Index, "index", "", "Look up the element at this index in -items.")
	fs.StringVar(&cfg.Items, "items", DefaultItems, "Comma-separated integer list used by -index.")
	fs.StringVar(&word, "word", "", "Print the first word of the given text.")
	fs.BoolVar(&cfg.Interactive, "interactive", false, "Start the interactive REPL.")
	fs.BoolVar(&cfg.Interactive, "i", false, "Shorthand for -interactive.")
	fs.BoolVar(&cfg.TUI, "tui", false, "Start the interactive converter dashboard.")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Display the full value of F(n).")
	fs.BoolVar(&cfg.Verbose, "v", false, "Shorthand for -verbose.")
	fs.BoolVar(&cfg.Details, "details", false, "Display performance and memory details.")
	fs.BoolVar(&cfg.Details, "d", false, "Shorthand for -details.")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "Print only the result.")
	fs.BoolVar(&cfg.Quiet, "q", false, "Shorthand for -quiet.")
	fs.StringVar(&cfg.OutputFile, "output", "", "Write the result to a file.")
	fs.StringVar(&cfg.OutputFile, "o", "", "Shorthand for -output.")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output.")
	fs.StringVar(&cfg.LogLevel, "log-level", DefaultLogLevel, "Log level: debug, info, warn, error or disabled.")
	fs.StringVar(&cfg.MetricsFile, "metrics-file", "", "Write Prometheus metrics to this file on exit.")
	fs.StringVar(&cfg.Completion, "completion", "", "Generate a completion script for bash, zsh or fish.")
	fs.StringVar(&cfg.ConfigFile, "config", "", "Path to a YAML configuration file.")
	fs.BoolVar(&cfg.Version, "version", false, "Print version information and exit.")
	fs.BoolVar(&cfg.Version, "V", false, "Shorthand for -version.")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if fs.NArg() > 0 {
		err := apperrors.NewConfigError("unexpected argument %q", fs.Arg(0))
		fmt.Fprintln(errWriter, err)
		return AppConfig{}, err
	}

	if isFlagSet(fs, "celsius") {
		cfg.Celsius = &celsius
	}
	if isFlagSet(fs, "fahrenheit") {
		cfg.Fahrenheit = &fahrenheit
	}
	if isFlagSet(fs, "word") {
		cfg.Word = &word
	}
	cfg.IndexSet = isFlagSet(fs, "index")

	if cfg.ConfigFile == "" {
		cfg.ConfigFile = getEnvString("CONFIG", "")
	}
	if cfg.ConfigFile != "" {
		if err := applyConfigFile(&cfg, fs, cfg.ConfigFile); err != nil {
			fmt.Fprintln(errWriter, err)
			return AppConfig{}, err
		}
	}
	applyEnvOverrides(&cfg, fs)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(errWriter, err)
		return AppConfig{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for semantic errors.
func (c AppConfig) Validate() error {
	if c.N < 0 {
		return apperrors.NewFieldError("n", fmt.Sprintf("%v (got %d)", fibonacci.ErrNegativeIndex, c.N), fibonacci.ErrNegativeIndex)
	}
	if c.Timeout <= 0 {
		return apperrors.NewFieldError("timeout", fmt.Sprintf("must be positive (got %s)", c.Timeout), nil)
	}
	if c.LastDigits < 0 {
		return apperrors.NewFieldError("last-digits", fmt.Sprintf("must be non-negative (got %d)", c.LastDigits), nil)
	}
	if c.Algo != DefaultAlgo && c.availableAlgos != nil && !slices.Contains(c.availableAlgos, c.Algo) {
		return apperrors.NewConfigError("unknown algorithm %q (available: all, %s)", c.Algo, strings.Join(c.availableAlgos, ", "))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return apperrors.NewConfigError("-log-level: %v", err)
	}
	if modes := c.activeModes(); len(modes) > 1 {
		return apperrors.NewConfigError("conflicting modes: %s", strings.Join(modes, ", "))
	}
	return nil
}

// Mode returns the run mode selected by the configuration.
func (c AppConfig) Mode() Mode {
	switch {
	case c.Completion != "":
		return ModeCompletion
	case c.TUI:
		return ModeTUI
	case c.Interactive:
		return ModeREPL
	case c.Celsius != nil || c.Fahrenheit != nil:
		return ModeConvert
	case c.IndexSet:
		return ModeLookup
	case c.Word != nil:
		return ModeWord
	case c.LastDigits > 0:
		return ModeLastDigits
	default:
		return ModeFibonacci
	}
}

// activeModes lists the flags that each select an exclusive mode.
func (c AppConfig) activeModes() []string {
	var modes []string
	add := func(on bool, name string) {
		if on {
			modes = append(modes, name)
		}
	}
	add(c.Completion != "", "-completion")
	add(c.TUI, "-tui")
	add(c.Interactive, "-interactive")
	add(c.Celsius != nil, "-celsius")
	add(c.Fahrenheit != nil, "-fahrenheit")
	add(c.IndexSet, "-index")
	add(c.Word != nil, "-word")
	add(c.LastDigits > 0, "-last-digits")
	return modes
}

// IsHelp reports whether err is the result of -h or -help.
func IsHelp(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
