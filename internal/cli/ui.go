//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"fmt"
	"io"
	"math/big"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/fibconv/internal/fibonacci"
	"github.com/agbru/fibconv/internal/format"
	"github.com/agbru/fibconv/internal/orchestration"
	"github.com/agbru/fibconv/internal/ui"
)

const (
	// TruncationLimit is the digit threshold from which a result is truncated
	// in standard output to avoid cluttering the terminal.
	TruncationLimit = 100
	// DisplayEdges specifies the number of digits to display at the beginning
	// and end of a truncated number.
	DisplayEdges = 25
	// ProgressRefreshRate defines the refresh frequency of the progress bar.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 40
)

// Spinner abstracts a terminal spinner so that DisplayProgress can be
// tested without a terminal.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts *spinner.Spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// DisplayProgress shows a spinner with an aggregated progress bar and ETA
// until progressChan is closed. It calls wg.Done when finished.
//
// Parameters:
//   - wg: Signalled when the display goroutine exits.
//   - progressChan: Updates from the running calculators.
//   - numCalculators: How many calculators report on progressChan.
//   - out: Destination of the spinner.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan fibonacci.ProgressUpdate, numCalculators int, out io.Writer) {
	defer wg.Done()

	agg := orchestration.NewProgressAggregator(numCalculators)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	label := "Computing"
	if agg.IsMultiCalculator() {
		label = fmt.Sprintf("Comparing %d algorithms", agg.NumCalculators())
	}
	s := newSpinner(spinner.WithWriter(out))
	refresh := func() {
		s.UpdateSuffix(" " + label + " " + format.FormatProgressBarWithETA(agg.CalculateAverage(), agg.GetETA(), ProgressBarWidth))
	}
	refresh()
	s.Start()
	defer s.Stop()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				refresh()
				return
			}
			agg.Update(update)
		case <-ticker.C:
			refresh()
		}
	}
}

// DisplayResult prints a Fibonacci result. Values longer than
// TruncationLimit digits are shortened unless verbose is set.
//
// Parameters:
//   - result: The computed value.
//   - n: The index.
//   - duration: How long the calculation took.
//   - verbose: Print the full value.
//   - details: Also print digit count, bit size and the digit estimate.
//   - out: The destination writer.
func DisplayResult(result *big.Int, n uint64, duration time.Duration, verbose, details bool, out io.Writer) {
	fmt.Fprintf(out, "\n--- Result ---\n")
	fmt.Fprintf(out, "Calculation time: %s%s%s\n", ui.ColorYellow(), format.FormatExecutionDuration(duration), ui.ColorReset())

	digits := result.String()
	if details {
		fmt.Fprintf(out, "\n--- Detailed result analysis ---\n")
		fmt.Fprintf(out, "Number of digits:   %s%s%s\n", ui.ColorCyan(), format.FormatNumberString(fmt.Sprint(len(digits))), ui.ColorReset())
		fmt.Fprintf(out, "Estimated digits:   %s\n", format.FormatUint(fibonacci.EstimateDigits(n)))
		fmt.Fprintf(out, "Result binary size: %s%s%s bits\n", ui.ColorCyan(), format.FormatNumberString(fmt.Sprint(result.BitLen())), ui.ColorReset())
	}

	if len(digits) > TruncationLimit && !verbose {
		fmt.Fprintf(out, "F(%d) = %s%s...%s%s (truncated)\n",
			n, ui.ColorMagenta(), digits[:DisplayEdges], digits[len(digits)-DisplayEdges:], ui.ColorReset())
		fmt.Fprintf(out, "Tip: use -v to display the full value.\n")
		return
	}
	fmt.Fprintf(out, "F(%d) = %s%s%s\n", n, ui.ColorMagenta(), format.FormatNumberString(digits), ui.ColorReset())
}
