package config

import (
	"errors"
	"flag"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	apperrors "github.com/agbru/fibconv/internal/errors"
)

// FileConfig is the YAML representation of the persistent settings. Only
// fields present in the file are applied; mode inputs such as -celsius are
// deliberately absent.
type FileConfig struct {
	N           *int64         `yaml:"n"`
	Algo        *string        `yaml:"algo"`
	LastDigits  *int           `yaml:"last_digits"`
	Timeout     *time.Duration `yaml:"timeout"`
	Items       *string        `yaml:"items"`
	Verbose     *bool          `yaml:"verbose"`
	Details     *bool          `yaml:"details"`
	Quiet       *bool          `yaml:"quiet"`
	NoColor     *bool          `yaml:"no_color"`
	Output      *string        `yaml:"output"`
	LogLevel    *string        `yaml:"log_level"`
	MetricsFile *string        `yaml:"metrics_file"`
}

// LoadFile reads and decodes a YAML configuration file. Unknown keys are
// rejected so that typos surface instead of being silently ignored.
func LoadFile(path string) (FileConfig, error) {
	var fc FileConfig
	f, err := os.Open(path)
	if err != nil {
		return fc, apperrors.NewConfigError("open config file: %v", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return fc, apperrors.NewConfigError("parse config file %s: %v", path, err)
	}
	return fc, nil
}

// applyConfigFile copies file values into cfg for every flag not set on the
// command line.
func applyConfigFile(cfg *AppConfig, fs *flag.FlagSet, path string) error {
	fc, err := LoadFile(path)
	if err != nil {
		return err
	}
	setIf(fs, fc.N, &cfg.N, "n")
	setIf(fs, fc.Algo, &cfg.Algo, "algo")
	setIf(fs, fc.LastDigits, &cfg.LastDigits, "last-digits")
	setIf(fs, fc.Timeout, &cfg.Timeout, "timeout")
	setIf(fs, fc.Items, &cfg.Items, "items")
	setIf(fs, fc.Verbose, &cfg.Verbose, "verbose", "v")
	setIf(fs, fc.Details, &cfg.Details, "details", "d")
	setIf(fs, fc.Quiet, &cfg.Quiet, "quiet", "q")
	setIf(fs, fc.NoColor, &cfg.NoColor, "no-color")
	setIf(fs, fc.Output, &cfg.OutputFile, "output", "o")
	setIf(fs, fc.LogLevel, &cfg.LogLevel, "log-level")
	setIf(fs, fc.MetricsFile, &cfg.MetricsFile, "metrics-file")
	return nil
}

func setIf[T any](fs *flag.FlagSet, src *T, dst *T, flags ...string) {
	if src == nil || isFlagSetAny(fs, flags...) {
		return
	}
	*dst = *src
}
