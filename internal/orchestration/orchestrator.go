package orchestration

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/fibconv/internal/errors"
	"github.com/agbru/fibconv/internal/fibonacci"
)

var tracer = otel.Tracer("github.com/agbru/fibconv/internal/orchestration")

// ProgressBufferMultiplier defines the buffer size multiplier for the progress
// channel. A larger buffer reduces the likelihood of blocking calculation
// goroutines when the UI is slow to consume updates.
const ProgressBufferMultiplier = 5

// ExecuteCalculations orchestrates the concurrent execution of one or more
// Fibonacci calculations.
//
// Each calculator runs in its own errgroup goroutine inside a tracing span.
// Failures are recorded in the corresponding CalculationResult rather than
// returned, so one failing algorithm never cancels the others.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - calculators: A slice of calculators to execute.
//   - n: The Fibonacci index to compute.
//   - progressReporter: The progress reporter for displaying updates (use NullProgressReporter for quiet mode).
//   - out: The io.Writer for displaying progress updates.
//
// Returns:
//   - []CalculationResult: A slice containing the results of each calculation,
//     in the order of calculators.
func ExecuteCalculations(ctx context.Context, calculators []fibonacci.Calculator, n uint64, progressReporter ProgressReporter, out io.Writer) []CalculationResult {
	ctx, span := tracer.Start(ctx, "fibconv.ExecuteCalculations",
		trace.WithAttributes(
			attribute.Int64("fibonacci.n", int64(n)),
			attribute.Int("fibonacci.calculators", len(calculators)),
		))
	defer span.End()

	g, ctx := errgroup.WithContext(ctx)
	results := make([]CalculationResult, len(calculators))
	progressChan := make(chan fibonacci.ProgressUpdate, len(calculators)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go progressReporter.DisplayProgress(&displayWg, progressChan, len(calculators), out)

	for i, calc := range calculators {
		idx, calculator := i, calc
		g.Go(func() error {
			results[idx] = runOne(ctx, calculator, idx, n, progressChan)
			return nil
		})
	}

	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

func runOne(ctx context.Context, calculator fibonacci.Calculator, idx int, n uint64, progressChan chan<- fibonacci.ProgressUpdate) CalculationResult {
	ctx, span := tracer.Start(ctx, "fibconv.Calculate",
		trace.WithAttributes(
			attribute.String("fibonacci.algorithm", calculator.Name()),
			attribute.Int64("fibonacci.n", int64(n)),
		))
	defer span.End()

	start := time.Now()
	res, err := calculator.Calculate(ctx, progressChan, idx, n)
	duration := time.Since(start)

	if err != nil {
		err = classifyError(ctx, calculator.Name(), start, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetAttributes(attribute.Int("fibonacci.result_bits", res.BitLen()))
	}
	return CalculationResult{Name: calculator.Name(), Result: res, Duration: duration, Err: err}
}

// classifyError turns a deadline expiry into a TimeoutError carrying the
// budget the calculator had, and wraps every other failure in a
// CalculationError.
func classifyError(ctx context.Context, name string, start time.Time, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		limit := time.Since(start)
		if deadline, ok := ctx.Deadline(); ok {
			limit = deadline.Sub(start).Round(time.Millisecond)
		}
		return apperrors.TimeoutError{Operation: name, Limit: limit}
	}
	return apperrors.CalculationError{Cause: err}
}

// AnalyzeComparisonResults processes the results from multiple algorithms and
// generates a summary report.
//
// It sorts the results (successes first, then by duration), validates that all
// successful results agree, and displays a comparative table.
//
// Parameters:
//   - results: The slice of calculation results to analyze. It is sorted in place.
//   - opts: Presentation options (n, verbosity).
//   - presenter: The result presenter for display formatting.
//   - handler: Maps the first error to an exit code when every algorithm failed.
//   - out: The io.Writer for the summary report.
//
// Returns:
//   - int: An exit code indicating success (0) or the type of failure.
func AnalyzeComparisonResults(results []CalculationResult, opts PresentationOptions, presenter ResultPresenter, handler ErrorHandler, out io.Writer) int {
	if len(results) == 0 {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No algorithm was selected.\n")
		return apperrors.ExitErrorConfig
	}

	sort.SliceStable(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	var firstValidResult *CalculationResult
	var firstError error
	successCount := 0

	for i := range results {
		if results[i].Err != nil {
			if firstError == nil {
				firstError = results[i].Err
			}
			continue
		}
		successCount++
		if firstValidResult == nil {
			firstValidResult = &results[i]
		}
	}

	if len(results) > 1 {
		presenter.PresentComparisonTable(results, out)
	}

	if successCount == 0 {
		if len(results) > 1 {
			fmt.Fprintf(out, "\nGlobal Status: Failure. No algorithm could complete the calculation.\n")
		}
		return handler.HandleError(firstError, results[0].Duration, out)
	}

	for _, res := range results {
		if res.Err == nil && res.Result.Cmp(firstValidResult.Result) != 0 {
			fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! An inconsistency was detected between the results of the algorithms.\n")
			return apperrors.ExitErrorMismatch
		}
	}

	if len(results) > 1 {
		fmt.Fprintf(out, "\nGlobal Status: Success. All valid results are consistent.\n")
	}
	presenter.PresentResult(*firstValidResult, opts, out)
	return apperrors.ExitSuccess
}

// FindBestResult returns the fastest successful result, or nil when every
// calculation failed.
func FindBestResult(results []CalculationResult) *CalculationResult {
	var best *CalculationResult
	for i := range results {
		if results[i].Err != nil {
			continue
		}
		if best == nil || results[i].Duration < best.Duration {
			best = &results[i]
		}
	}
	return best
}
