package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/agbru/fibconv/internal/fibonacci"
	"github.com/agbru/fibconv/internal/lookup"
	"github.com/agbru/fibconv/internal/metrics"
	"github.com/agbru/fibconv/internal/orchestration"
	"github.com/agbru/fibconv/internal/temperature"
	"github.com/agbru/fibconv/internal/ui"
	"github.com/agbru/fibconv/internal/words"
)

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// DefaultAlgo is the algorithm used by "fib" until changed with "algo".
	DefaultAlgo string
	// Timeout is the maximum duration for each calculation.
	Timeout time.Duration
	// Items is the list searched by the "index" command.
	Items []int
	// Metrics records calculations, conversions and lookups. May be nil.
	Metrics *metrics.Metrics
}

// REPL represents an interactive session.
type REPL struct {
	config      REPLConfig
	factory     fibonacci.CalculatorFactory
	currentAlgo string
	in          io.Reader
	out         io.Writer
}

// NewREPL creates a new REPL instance reading from stdin and writing to
// stdout.
func NewREPL(factory fibonacci.CalculatorFactory, config REPLConfig) *REPL {
	currentAlgo := config.DefaultAlgo
	if _, err := factory.Get(currentAlgo); err != nil {
		currentAlgo = fibonacci.AlgoDoubling
	}
	if config.Items == nil {
		config.Items = lookup.DefaultItems
	}
	if config.Timeout <= 0 {
		config.Timeout = time.Minute
	}

	return &REPL{
		config:      config,
		factory:     factory,
		currentAlgo: currentAlgo,
		in:          os.Stdin,
		out:         os.Stdout,
	}
}

// SetInput sets a custom input reader.
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer.
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// Start reads and executes commands until "exit", EOF or ctx is done.
func (r *REPL) Start(ctx context.Context) {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)

	for {
		if ctx.Err() != nil {
			fmt.Fprintln(r.out, "\nInterrupted.")
			return
		}
		fmt.Fprint(r.out, ui.ColorGreen()+"fibconv> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			return
		}

		if line := strings.TrimSpace(input); line != "" {
			if !r.processCommand(ctx, line) {
				return
			}
		}

		if errors.Is(err, io.EOF) {
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		}
	}
}

func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════════════════════╗%s\n", ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s║%s     %sfibconv - Interactive Mode%s                           %s║%s\n",
		ui.ColorCyan(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(), ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════════════════════╝%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	for _, c := range [][2]string{
		{"fib <n>", "Calculate F(n) with the current algorithm"},
		{"compare <n>", "Compare all algorithms for F(n)"},
		{"c2f <celsius>", "Convert Celsius to Fahrenheit"},
		{"f2c <fahrenheit>", "Convert Fahrenheit to Celsius"},
		{"index <i>", "Element at index i of " + lookup.FormatItems(r.config.Items)},
		{"word <text>", "First word of the text"},
		{"algo <name>", "Change algorithm (" + strings.Join(r.factory.List(), ", ") + ")"},
		{"list", "List available algorithms"},
		{"help", "Display this help"},
		{"exit", "Exit interactive mode"},
	} {
		fmt.Fprintf(r.out, "  %s%-17s%s - %s\n", ui.ColorYellow(), c[0], ui.ColorReset(), c[1])
	}
}

// processCommand parses and executes one command line. It returns false
// when the REPL should exit.
func (r *REPL) processCommand(ctx context.Context, input string) bool {
	cmd, rest, _ := strings.Cut(input, " ")
	cmd = strings.ToLower(cmd)
	rest = strings.TrimSpace(rest)

	switch cmd {
	case "fib", "f":
		if n, ok := r.parseN(rest, "fib <n>"); ok {
			r.calculate(ctx, n)
		}
	case "compare", "cmp":
		if n, ok := r.parseN(rest, "compare <n>"); ok {
			r.compare(ctx, n)
		}
	case "c2f":
		r.convert(rest, temperature.ScaleCelsius)
	case "f2c":
		r.convert(rest, temperature.ScaleFahrenheit)
	case "index", "idx":
		r.index(rest)
	case "word":
		DisplayWord(r.out, rest, words.FirstWord(rest))
	case "algo", "a":
		r.cmdAlgo(rest)
	case "list", "ls":
		r.cmdList()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		if n, err := strconv.ParseUint(cmd, 10, 64); err == nil {
			r.calculate(ctx, n)
			return true
		}
		r.errorf("Unknown command: %s", cmd)
		fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorYellow(), ui.ColorReset())
	}
	return true
}

func (r *REPL) errorf(format string, a ...any) {
	fmt.Fprintf(r.out, "%s%s%s\n", ui.ColorRed(), fmt.Sprintf(format, a...), ui.ColorReset())
}

// parseN parses a Fibonacci index, reporting negative values with the
// same error the calculators use.
func (r *REPL) parseN(arg, usage string) (uint64, bool) {
	if arg == "" {
		r.errorf("Usage: %s", usage)
		return 0, false
	}
	v, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		r.errorf("Invalid value: %s", arg)
		return 0, false
	}
	if v < 0 {
		r.errorf("Error: %v", fmt.Errorf("%w (got %d)", fibonacci.ErrNegativeIndex, v))
		return 0, false
	}
	return uint64(v), true
}

func (r *REPL) calculate(ctx context.Context, n uint64) {
	calc, err := r.factory.Get(r.currentAlgo)
	if err != nil {
		r.errorf("Error: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	fmt.Fprintf(r.out, "Calculating F(%s%d%s) with %s%s%s...\n",
		ui.ColorMagenta(), n, ui.ColorReset(),
		ui.ColorCyan(), calc.Name(), ui.ColorReset())

	progressChan := make(chan fibonacci.ProgressUpdate, orchestration.ProgressBufferMultiplier)
	var wg sync.WaitGroup
	wg.Add(1)
	go DisplayProgress(&wg, progressChan, 1, r.out)

	start := time.Now()
	result, err := calc.Calculate(ctx, progressChan, 0, n)
	duration := time.Since(start)
	close(progressChan)
	wg.Wait()

	r.config.Metrics.ObserveCalculation(calc.Name(), duration, err)
	if err != nil {
		r.errorf("Error: %v", err)
		return
	}
	DisplayResult(result, n, duration, false, false, r.out)
	fmt.Fprintln(r.out)
}

func (r *REPL) compare(ctx context.Context, n uint64) {
	ctx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	calcs := orchestration.GetCalculatorsToRun("all", n, r.factory)
	results := orchestration.ExecuteCalculations(ctx, calcs, n, orchestration.NullProgressReporter{}, r.out)
	for _, res := range results {
		r.config.Metrics.ObserveCalculation(res.Name, res.Duration, res.Err)
	}
	presenter := CLIResultPresenter{}
	orchestration.AnalyzeComparisonResults(results, orchestration.PresentationOptions{N: n}, presenter, presenter, r.out)
	fmt.Fprintln(r.out)
}

func (r *REPL) convert(arg string, from temperature.Scale) {
	if arg == "" {
		r.errorf("Usage: %s2%s <value>", from.String()[:1], from.Other().String()[:1])
		return
	}
	v, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		r.errorf("Invalid temperature: %s", arg)
		return
	}
	out, to, err := temperature.Convert(v, from)
	if err != nil {
		r.errorf("Error: %v", err)
		return
	}
	r.config.Metrics.ObserveConversion(from.String())
	DisplayConversion(r.out, v, from, out, to)
}

func (r *REPL) index(arg string) {
	i, err := lookup.ParseIndex(arg)
	if err == nil {
		var v int
		v, err = lookup.ElementAt(r.config.Items, i)
		if err == nil {
			DisplayLookup(r.out, r.config.Items, i, v)
		}
	}
	r.config.Metrics.ObserveLookup(err)
	if err != nil {
		r.errorf("Error: %v", err)
	}
}

func (r *REPL) cmdAlgo(name string) {
	name = strings.ToLower(name)
	if name == "" {
		r.errorf("Usage: algo <name>")
		fmt.Fprintf(r.out, "Available algorithms: %s\n", strings.Join(r.factory.List(), ", "))
		return
	}
	calc, err := r.factory.Get(name)
	if err != nil {
		r.errorf("Unknown algorithm: %s", name)
		fmt.Fprintf(r.out, "Available algorithms: %s\n", strings.Join(r.factory.List(), ", "))
		return
	}
	r.currentAlgo = name
	fmt.Fprintf(r.out, "Algorithm changed to: %s%s%s\n", ui.ColorGreen(), calc.Name(), ui.ColorReset())
}

func (r *REPL) cmdList() {
	fmt.Fprintf(r.out, "\n%sAvailable algorithms:%s\n", ui.ColorBold(), ui.ColorReset())
	for _, name := range r.factory.List() {
		calc, err := r.factory.Get(name)
		if err != nil {
			continue
		}
		marker := "  "
		if name == r.currentAlgo {
			marker = ui.ColorGreen() + "► " + ui.ColorReset()
		}
		fmt.Fprintf(r.out, "%s%s%-10s%s - %s\n", marker, ui.ColorYellow(), name, ui.ColorReset(), calc.Name())
	}
	fmt.Fprintln(r.out)
}
