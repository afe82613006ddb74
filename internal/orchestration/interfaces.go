package orchestration

import (
	"io"
	"math/big"
	"sync"
	"time"

	"github.com/agbru/fibconv/internal/fibonacci"
)

// CalculationResult encapsulates the outcome of a single Fibonacci calculation.
// It serves as the shared domain type between orchestration and presentation layers.
type CalculationResult struct {
	// Name is the display name of the algorithm used (e.g., "Fast Doubling (O(log n))").
	Name string
	// Result is the computed Fibonacci number. It is nil if an error occurred.
	Result *big.Int
	// Duration is the time taken to complete the calculation.
	Duration time.Duration
	// Err contains any error that occurred during the calculation.
	Err error
}

// PresentationOptions configures how results are presented to the user.
type PresentationOptions struct {
	N       uint64
	Verbose bool
	Details bool
}

// ProgressReporter defines the interface for displaying calculation progress.
// It decouples orchestration from spinners and progress bars.
type ProgressReporter interface {
	// DisplayProgress consumes progressChan until it is closed and then
	// calls wg.Done. It runs in its own goroutine.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan fibonacci.ProgressUpdate, numCalculators int, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan fibonacci.ProgressUpdate, numCalculators int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan fibonacci.ProgressUpdate, numCalculators int, out io.Writer) {
	f(wg, progressChan, numCalculators, out)
}

// NullProgressReporter drains the progress channel without displaying
// anything. Used in quiet mode and tests.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan fibonacci.ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ResultPresenter defines the interface for presenting calculation results.
type ResultPresenter interface {
	// PresentComparisonTable displays the comparison summary table.
	PresentComparisonTable(results []CalculationResult, out io.Writer)

	// PresentResult displays the final calculation result.
	PresentResult(result CalculationResult, opts PresentationOptions, out io.Writer)
}

// ErrorHandler handles calculation errors and returns exit codes.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}
