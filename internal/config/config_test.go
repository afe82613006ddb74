package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	apperrors "github.com/agbru/fibconv/internal/errors"
	"github.com/agbru/fibconv/internal/fibonacci"
)

var testAlgos = []string{"doubling", "iterative", "recursive"}

func parse(t *testing.T, args ...string) (AppConfig, error) {
	t.Helper()
	var buf bytes.Buffer
	return ParseConfig("fibconv", args, &buf, testAlgos)
}

func ptr[T any](v T) *T { return &v }

var ignoreAlgos = cmpopts.IgnoreUnexported(AppConfig{})

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := parse(t)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := AppConfig{
		N:        DefaultN,
		Algo:     DefaultAlgo,
		Timeout:  DefaultTimeout,
		Items:    DefaultItems,
		LogLevel: DefaultLogLevel,
	}
	if diff := cmp.Diff(want, cfg, ignoreAlgos); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
	if cfg.Mode() != ModeFibonacci {
		t.Errorf("Mode() = %s, want %s", cfg.Mode(), ModeFibonacci)
	}
}

func TestParseConfig_Flags(t *testing.T) {
	cfg, err := parse(t, "-n", "50", "-algo", "iterative", "-v", "-d", "-o", "out.txt", "-timeout", "1m", "-log-level", "debug")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := AppConfig{
		N:          50,
		Algo:       "iterative",
		Timeout:    time.Minute,
		Items:      DefaultItems,
		LogLevel:   "debug",
		Verbose:    true,
		Details:    true,
		OutputFile: "out.txt",
	}
	if diff := cmp.Diff(want, cfg, ignoreAlgos); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestParseConfig_Modes(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want Mode
	}{
		{"fibonacci", nil, ModeFibonacci},
		{"celsius", []string{"-celsius", "0"}, ModeConvert},
		{"fahrenheit", []string{"-fahrenheit", "212"}, ModeConvert},
		{"lookup", []string{"-index", "2"}, ModeLookup},
		{"word", []string{"-word", "hello world"}, ModeWord},
		{"empty word", []string{"-word", ""}, ModeWord},
		{"last digits", []string{"-n", "1000", "-last-digits", "5"}, ModeLastDigits},
		{"repl", []string{"-i"}, ModeREPL},
		{"tui", []string{"-tui"}, ModeTUI},
		{"completion", []string{"-completion", "bash"}, ModeCompletion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := parse(t, tt.args...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := cfg.Mode(); got != tt.want {
				t.Errorf("Mode() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParseConfig_CelsiusZeroIsSet(t *testing.T) {
	cfg, err := parse(t, "-celsius", "0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(ptr(0.0), cfg.Celsius); diff != "" {
		t.Errorf("Celsius mismatch (-want +got):\n%s", diff)
	}
	if cfg.Fahrenheit != nil {
		t.Error("Fahrenheit should stay unset")
	}
}

func TestParseConfig_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"negative n", []string{"-n", "-5"}},
		{"unknown algo", []string{"-algo", "matrix"}},
		{"zero timeout", []string{"-timeout", "0s"}},
		{"negative last digits", []string{"-last-digits", "-1"}},
		{"conflicting modes", []string{"-celsius", "1", "-word", "x"}},
		{"both scales", []string{"-celsius", "1", "-fahrenheit", "1"}},
		{"bad log level", []string{"-log-level", "loud"}},
		{"positional argument", []string{"extra"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(t, tt.args...)
			if err == nil {
				t.Fatal("expected an error")
			}
			var cfgErr apperrors.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Errorf("error %v (%T) is not a ConfigError", err, err)
			}
		})
	}
}

func TestParseConfig_FieldErrors(t *testing.T) {
	tests := []struct {
		args  []string
		field string
	}{
		{[]string{"-n", "-5"}, "n"},
		{[]string{"-timeout", "-1s"}, "timeout"},
		{[]string{"-last-digits", "-3"}, "last-digits"},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			_, err := parse(t, tt.args...)
			var valErr apperrors.ValidationError
			if !errors.As(err, &valErr) {
				t.Fatalf("error %v (%T) does not wrap a ValidationError", err, err)
			}
			if valErr.Field != tt.field {
				t.Errorf("Field = %q, want %q", valErr.Field, tt.field)
			}
		})
	}

	_, err := parse(t, "-n", "-1")
	if !errors.Is(err, fibonacci.ErrNegativeIndex) {
		t.Errorf("negative -n should wrap ErrNegativeIndex, got %v", err)
	}
	if !apperrors.IsInvalidArgument(err) {
		t.Errorf("negative -n should be an invalid argument, got %v", err)
	}
}

func TestParseConfig_Help(t *testing.T) {
	_, err := parse(t, "-h")
	if !IsHelp(err) {
		t.Errorf("IsHelp(%v) = false", err)
	}
}

func TestParseConfig_EnvOverrides(t *testing.T) {
	t.Setenv("FIBCONV_N", "42")
	t.Setenv("FIBCONV_ALGO", "recursive")
	t.Setenv("FIBCONV_QUIET", "yes")
	t.Setenv("FIBCONV_TIMEOUT", "not-a-duration")

	cfg, err := parse(t, "-algo", "doubling")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.N != 42 {
		t.Errorf("N = %d, want 42 from env", cfg.N)
	}
	if cfg.Algo != "doubling" {
		t.Errorf("Algo = %q, flag should win over env", cfg.Algo)
	}
	if !cfg.Quiet {
		t.Error("Quiet should come from env")
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("invalid env timeout should be ignored, got %s", cfg.Timeout)
	}
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fibconv.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseConfig_File(t *testing.T) {
	path := writeFile(t, "n: 30\nalgo: iterative\ntimeout: 10s\nverbose: true\nitems: \"7,8,9\"\n")
	t.Setenv("FIBCONV_ALGO", "doubling")

	cfg, err := parse(t, "-config", path, "-n", "31")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := AppConfig{
		N:          31,         // flag beats file
		Algo:       "doubling", // env beats file
		Timeout:    10 * time.Second,
		Items:      "7,8,9",
		Verbose:    true,
		LogLevel:   DefaultLogLevel,
		ConfigFile: path,
	}
	if diff := cmp.Diff(want, cfg, ignoreAlgos); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestParseConfig_FileFromEnv(t *testing.T) {
	path := writeFile(t, "quiet: true\n")
	t.Setenv("FIBCONV_CONFIG", path)

	cfg, err := parse(t)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.Quiet {
		t.Error("Quiet should come from the file named by FIBCONV_CONFIG")
	}
}

func TestLoadFile_Errors(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file should fail")
	}
	if _, err := LoadFile(writeFile(t, "colour: red\n")); err == nil {
		t.Error("unknown key should fail")
	}
	fc, err := LoadFile(writeFile(t, ""))
	if err != nil {
		t.Fatalf("empty file should be accepted: %v", err)
	}
	if diff := cmp.Diff(FileConfig{}, fc); diff != "" {
		t.Errorf("empty file decoded values (-want +got):\n%s", diff)
	}
}

func TestParseBoolEnv(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		def  bool
		want bool
	}{
		{"true", false, true},
		{"YES", false, true},
		{"1", false, true},
		{"false", true, false},
		{"no", true, false},
		{"maybe", true, true},
	}
	for _, tt := range tests {
		if got := parseBoolEnv(tt.in, tt.def); got != tt.want {
			t.Errorf("parseBoolEnv(%q, %v) = %v", tt.in, tt.def, got)
		}
	}
}
