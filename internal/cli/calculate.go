package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/fibconv/internal/config"
	"github.com/agbru/fibconv/internal/fibonacci"
	"github.com/agbru/fibconv/internal/ui"
)

// PrintExecutionConfig displays the target index, timeout and environment.
//
// Parameters:
//   - cfg: The application configuration.
//   - out: The writer for standard output.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Calculating %sF(%d)%s with a timeout of %s%s%s.\n",
		ui.ColorMagenta(), cfg.N, ui.ColorReset(), ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
	if cfg.N > fibonacci.MaxUint64Index {
		fmt.Fprintf(out, "F(%d) exceeds uint64; only the big-integer algorithms can compute it.\n", cfg.N)
	}
}

// PrintExecutionMode displays the execution mode (single algorithm vs comparison).
//
// Parameters:
//   - calculators: The calculators that will be executed.
//   - out: The writer for standard output.
func PrintExecutionMode(calculators []fibonacci.Calculator, out io.Writer) {
	var modeDesc string
	switch len(calculators) {
	case 0:
		modeDesc = "no algorithm selected"
	case 1:
		modeDesc = fmt.Sprintf("Single calculation with the %s%s%s algorithm",
			ui.ColorGreen(), calculators[0].Name(), ui.ColorReset())
	default:
		modeDesc = fmt.Sprintf("Parallel comparison of %d algorithms", len(calculators))
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
