package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	apperrors "github.com/agbru/fibconv/internal/errors"
	"github.com/agbru/fibconv/internal/fibonacci"
	"github.com/agbru/fibconv/internal/format"
	"github.com/agbru/fibconv/internal/metrics"
	"github.com/agbru/fibconv/internal/orchestration"
	"github.com/agbru/fibconv/internal/ui"
)

// CLIProgressReporter implements orchestration.ProgressReporter with a
// spinner and progress bar.
type CLIProgressReporter struct{}

var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress displays a spinner and progress bar for ongoing calculations.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan fibonacci.ProgressUpdate, numCalculators int, out io.Writer) {
	DisplayProgress(wg, progressChan, numCalculators, out)
}

// CLIColorProvider exposes the active theme to apperrors.HandleCalculationError.
type CLIColorProvider struct{}

var _ apperrors.ColorProvider = CLIColorProvider{}

func (CLIColorProvider) Red() string    { return ui.ColorRed() }
func (CLIColorProvider) Yellow() string { return ui.ColorYellow() }
func (CLIColorProvider) Reset() string  { return ui.ColorReset() }

// CLIResultPresenter implements orchestration.ResultPresenter and
// orchestration.ErrorHandler for terminal output.
type CLIResultPresenter struct{}

var (
	_ orchestration.ResultPresenter = CLIResultPresenter{}
	_ orchestration.ErrorHandler    = CLIResultPresenter{}
)

// PresentComparisonTable displays algorithm names, durations and status in
// aligned columns. Padding is computed on the visible text so that ANSI
// color codes do not break alignment.
func (CLIResultPresenter) PresentComparisonTable(results []orchestration.CalculationResult, out io.Writer) {
	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")

	durations := make([]string, len(results))
	nameWidth, durWidth := len("Algorithm"), len("Duration")
	for i, res := range results {
		durations[i] = format.FormatExecutionDuration(res.Duration)
		if res.Duration == 0 {
			durations[i] = "< 1µs"
		}
		nameWidth = max(nameWidth, len([]rune(res.Name)))
		durWidth = max(durWidth, len([]rune(durations[i])))
	}

	fmt.Fprintf(out, "%sAlgorithm%s%s   %sDuration%s%s   %sStatus%s\n",
		ui.ColorUnderline(), ui.ColorReset(), pad(nameWidth-len("Algorithm")),
		ui.ColorUnderline(), ui.ColorReset(), pad(durWidth-len("Duration")),
		ui.ColorUnderline(), ui.ColorReset())

	for i, res := range results {
		status := fmt.Sprintf("%s✅ Success%s", ui.ColorGreen(), ui.ColorReset())
		if res.Err != nil {
			status = fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
		}
		fmt.Fprintf(out, "%s%s%s%s   %s%s%s%s   %s\n",
			ui.ColorBlue(), res.Name, ui.ColorReset(), pad(nameWidth-len([]rune(res.Name))),
			ui.ColorYellow(), durations[i], ui.ColorReset(), pad(durWidth-len([]rune(durations[i]))),
			status)
	}
}

func pad(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}

// PresentResult displays the final calculation result.
func (CLIResultPresenter) PresentResult(result orchestration.CalculationResult, opts orchestration.PresentationOptions, out io.Writer) {
	DisplayResult(result.Result, opts.N, result.Duration, opts.Verbose, opts.Details, out)
}

// HandleError handles calculation errors and returns an appropriate exit code.
func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleCalculationError(err, duration, out, CLIColorProvider{})
}

// DisplayMemoryStats shows the memory used between two snapshots.
func DisplayMemoryStats(before, after metrics.MemorySnapshot, out io.Writer) {
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Heap in use:     %s\n", format.FormatBytes(after.HeapAlloc))
	fmt.Fprintf(out, "  Allocated:       %s\n", format.FormatBytes(metrics.Delta(before, after)))
	fmt.Fprintf(out, "  GC cycles:       %d\n", after.NumGC-before.NumGC)
}
