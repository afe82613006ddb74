// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     Examples: [DisplayResult], [DisplayConversion], [DisplayProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatQuietResult].
//
//   - Write* functions write data to files on the filesystem.
//     Examples: [WriteResultToFile].

package cli

import (
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"time"

	"github.com/agbru/fibconv/internal/format"
	"github.com/agbru/fibconv/internal/temperature"
	"github.com/agbru/fibconv/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the result (empty for no file output).
	OutputFile string
	// Quiet mode suppresses everything but the value.
	Quiet bool
	// Verbose shows the full result value.
	Verbose bool
}

// WriteResultToFile writes a calculation result to a file, creating parent
// directories as needed.
//
// Parameters:
//   - result: The calculated Fibonacci number.
//   - n: The index of the Fibonacci number.
//   - duration: The calculation duration.
//   - algo: The algorithm name used.
//   - config: Output configuration.
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteResultToFile(result *big.Int, n uint64, duration time.Duration, algo string, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}

	dir := filepath.Dir(config.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(config.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	fmt.Fprintf(file, "# Fibonacci Calculation Result\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Algorithm: %s\n", algo)
	fmt.Fprintf(file, "# Duration: %s\n", duration)
	fmt.Fprintf(file, "# N: %d\n", n)
	fmt.Fprintf(file, "# Bits: %d\n", result.BitLen())
	fmt.Fprintf(file, "# Digits: %d\n", len(result.String()))
	fmt.Fprintf(file, "\n")
	fmt.Fprintf(file, "F(%d) =\n%s\n", n, result.String())

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// FormatQuietResult formats a result for quiet mode: the bare decimal
// value, suitable for scripting.
func FormatQuietResult(result *big.Int) string {
	return result.String()
}

// DisplayQuietResult outputs a result in quiet mode (minimal output).
func DisplayQuietResult(out io.Writer, result *big.Int) {
	fmt.Fprintln(out, FormatQuietResult(result))
}

// DisplaySaved confirms that a result was written to path.
func DisplaySaved(out io.Writer, path string) {
	fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n", ui.ColorGreen(), ui.ColorCyan(), path, ui.ColorReset())
}

// DisplayConversion prints a temperature conversion, for example
// "100.00°C = 212.00°F".
func DisplayConversion(out io.Writer, value float64, from temperature.Scale, result float64, to temperature.Scale) {
	fmt.Fprintf(out, "%s%s%s%s = %s%s%s%s\n",
		ui.ColorCyan(), format.FormatFloat(value), from.Symbol(), ui.ColorReset(),
		ui.ColorMagenta(), format.FormatFloat(result), to.Symbol(), ui.ColorReset())
}

// DisplayLookup prints the element found at index.
func DisplayLookup(out io.Writer, items []int, index, value int) {
	fmt.Fprintf(out, "items[%d] = %s%d%s (of %d items)\n", index, ui.ColorMagenta(), value, ui.ColorReset(), len(items))
}

// DisplayWord prints the first word of text. An empty word is shown as "".
func DisplayWord(out io.Writer, text, word string) {
	fmt.Fprintf(out, "first word of %q: %s%q%s\n", text, ui.ColorMagenta(), word, ui.ColorReset())
}

// DisplayLastDigits prints the last k digits of F(n).
func DisplayLastDigits(out io.Writer, n uint64, k int, digits string, duration time.Duration, quiet bool) {
	if quiet {
		fmt.Fprintln(out, digits)
		return
	}
	fmt.Fprintf(out, "Last %d digits of F(%d): %s%s%s\n", k, n, ui.ColorMagenta(), digits, ui.ColorReset())
	fmt.Fprintf(out, "Computed in %s%s%s\n", ui.ColorYellow(), format.FormatExecutionDuration(duration), ui.ColorReset())
}
