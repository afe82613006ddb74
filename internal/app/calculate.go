package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/agbru/fibconv/internal/cli"
	apperrors "github.com/agbru/fibconv/internal/errors"
	"github.com/agbru/fibconv/internal/fibonacci"
	"github.com/agbru/fibconv/internal/format"
	"github.com/agbru/fibconv/internal/logging"
	"github.com/agbru/fibconv/internal/lookup"
	"github.com/agbru/fibconv/internal/metrics"
	"github.com/agbru/fibconv/internal/orchestration"
	"github.com/agbru/fibconv/internal/temperature"
	"github.com/agbru/fibconv/internal/words"
)

// runCalculate orchestrates the execution of the Fibonacci command.
func (a *Application) runCalculate(ctx context.Context, out io.Writer) int {
	ctx, cancel := a.withLifecycle(ctx)
	defer cancel()

	// Validate rejects negative indexes before we get here.
	n := uint64(a.Config.N)
	calculatorsToRun := orchestration.GetCalculatorsToRun(a.Config.Algo, n, a.Factory)

	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintExecutionMode(calculatorsToRun, out)
	}

	var progressReporter orchestration.ProgressReporter
	progressOut := out
	if a.Config.Quiet {
		progressOut = io.Discard
		progressReporter = orchestration.NullProgressReporter{}
	} else {
		progressReporter = cli.CLIProgressReporter{}
	}

	memory := metrics.NewMemoryCollector()
	before := memory.Snapshot()

	results := orchestration.ExecuteCalculations(ctx, calculatorsToRun, n, progressReporter, progressOut)
	for _, res := range results {
		a.Metrics.ObserveCalculation(res.Name, res.Duration, res.Err)
		fields := []logging.Field{
			logging.String("algorithm", res.Name),
			logging.Uint64("n", n),
			logging.String("duration", res.Duration.String()),
		}
		if res.Err != nil {
			fields = append(fields, logging.Err(res.Err))
		}
		a.Logger.Debug("calculation finished", fields...)
	}

	exitCode := a.analyzeResultsWithOutput(results, out)
	if a.Config.Details && !a.Config.Quiet {
		cli.DisplayMemoryStats(before, memory.Snapshot(), out)
	}
	return exitCode
}

func (a *Application) analyzeResultsWithOutput(results []orchestration.CalculationResult, out io.Writer) int {
	n := uint64(a.Config.N)
	bestResult := orchestration.FindBestResult(results)
	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
	}

	// Quiet mode prints the bare value of the fastest successful run.
	if outputCfg.Quiet && bestResult != nil {
		cli.DisplayQuietResult(out, bestResult.Result)
		if err := a.saveResultIfNeeded(bestResult, outputCfg); err != nil {
			return apperrors.ExitErrorGeneric
		}
		return apperrors.ExitSuccess
	}

	presOpts := orchestration.PresentationOptions{
		N:       n,
		Verbose: a.Config.Verbose,
		Details: a.Config.Details,
	}
	analysisOut := out
	if outputCfg.Quiet {
		analysisOut = a.ErrWriter
	}
	exitCode := orchestration.AnalyzeComparisonResults(results, presOpts, cli.CLIResultPresenter{}, cli.CLIResultPresenter{}, analysisOut)

	if bestResult != nil && exitCode == apperrors.ExitSuccess {
		if err := a.saveResultIfNeeded(bestResult, outputCfg); err != nil {
			return apperrors.ExitErrorGeneric
		}
		if outputCfg.OutputFile != "" {
			cli.DisplaySaved(out, outputCfg.OutputFile)
		}
	}

	return exitCode
}

func (a *Application) saveResultIfNeeded(res *orchestration.CalculationResult, cfg cli.OutputConfig) error {
	if cfg.OutputFile == "" {
		return nil
	}
	if err := cli.WriteResultToFile(res.Result, uint64(a.Config.N), res.Duration, res.Name, cfg); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
		a.Logger.Error("failed to save result", err, logging.String("path", cfg.OutputFile))
		return err
	}
	return nil
}

// runLastDigits computes only the last K decimal digits of F(N) using modular
// arithmetic, requiring O(K) memory regardless of N.
func (a *Application) runLastDigits(out io.Writer) int {
	k := a.Config.LastDigits
	n := uint64(a.Config.N)

	if !a.Config.Quiet {
		fmt.Fprintf(out, "Computing last %d digits of F(%d)...\n", k, n)
	}

	start := time.Now()
	digits, err := fibonacci.LastDigits(n, k)
	elapsed := time.Since(start)
	a.Metrics.ObserveCalculation("last-digits", elapsed, err)
	if err != nil {
		return a.reportError(err)
	}

	cli.DisplayLastDigits(out, n, k, digits, elapsed, a.Config.Quiet)
	return apperrors.ExitSuccess
}

// runConvert converts the -celsius or -fahrenheit value to the other scale.
func (a *Application) runConvert(out io.Writer) int {
	value, from := 0.0, temperature.ScaleCelsius
	switch {
	case a.Config.Celsius != nil:
		value = *a.Config.Celsius
	case a.Config.Fahrenheit != nil:
		value, from = *a.Config.Fahrenheit, temperature.ScaleFahrenheit
	}

	result, to, err := temperature.Convert(value, from)
	if err != nil {
		return a.reportError(err)
	}
	a.Metrics.ObserveConversion(from.String())

	if a.Config.Quiet {
		fmt.Fprintln(out, format.FormatFloat(result))
		return apperrors.ExitSuccess
	}
	cli.DisplayConversion(out, value, from, result, to)
	return apperrors.ExitSuccess
}

// runLookup prints the element of -items at -index.
func (a *Application) runLookup(out io.Writer) int {
	items, err := lookup.ParseItems(a.Config.Items)
	if err != nil {
		return a.reportError(err)
	}
	idx, err := lookup.ParseIndex(a.Config.Index)
	if err != nil {
		a.Metrics.ObserveLookup(err)
		return a.reportError(err)
	}
	value, err := lookup.ElementAt(items, idx)
	a.Metrics.ObserveLookup(err)
	if err != nil {
		return a.reportError(err)
	}

	if a.Config.Quiet {
		fmt.Fprintln(out, value)
		return apperrors.ExitSuccess
	}
	cli.DisplayLookup(out, items, idx, value)
	return apperrors.ExitSuccess
}

// runWord prints the first word of -word.
func (a *Application) runWord(out io.Writer) int {
	text := *a.Config.Word
	word := words.FirstWord(text)
	if a.Config.Quiet {
		fmt.Fprintln(out, word)
		return apperrors.ExitSuccess
	}
	cli.DisplayWord(out, text, word)
	return apperrors.ExitSuccess
}
