package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agbru/fibconv/internal/cli"
	"github.com/agbru/fibconv/internal/config"
	apperrors "github.com/agbru/fibconv/internal/errors"
	"github.com/agbru/fibconv/internal/fibonacci"
	"github.com/agbru/fibconv/internal/logging"
	"github.com/agbru/fibconv/internal/lookup"
	"github.com/agbru/fibconv/internal/metrics"
	"github.com/agbru/fibconv/internal/tui"
	"github.com/agbru/fibconv/internal/ui"
)

// Application represents the fibconv application instance.
type Application struct {
	Config    config.AppConfig
	Factory   fibonacci.CalculatorFactory
	ErrWriter io.Writer
	Metrics   *metrics.Metrics
	Logger    logging.Logger
	// RunID identifies this invocation in log entries.
	RunID string
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFactory sets a custom CalculatorFactory for the application.
func WithFactory(f fibonacci.CalculatorFactory) AppOption {
	return func(a *Application) { a.Factory = f }
}

// WithMetrics sets the metrics the application records into.
func WithMetrics(m *metrics.Metrics) AppOption {
	return func(a *Application) { a.Metrics = m }
}

// New creates a new Application instance by parsing command-line arguments.
// args includes the program name as its first element.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}
	if app.Factory == nil {
		app.Factory = fibonacci.NewDefaultFactory()
	}
	if app.Metrics == nil {
		app.Metrics = metrics.New()
	}

	programName := "fibconv"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, app.Factory.List())
	if err != nil {
		return nil, err
	}
	app.Config = cfg

	// Validate has already accepted the level.
	level, _ := logging.ParseLevel(cfg.LogLevel)
	app.RunID = uuid.NewString()
	console := zerolog.ConsoleWriter{
		Out:        errWriter,
		NoColor:    cfg.NoColor || !ui.IsTerminal(errWriter),
		TimeFormat: time.TimeOnly,
	}
	app.Logger = logging.NewLogger(console, "app").
		WithLevel(level).
		With(logging.String("run_id", app.RunID))

	return app, nil
}

// Run executes the application based on the configured mode and returns the
// process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) (exitCode int) {
	if a.Config.Mode() == config.ModeCompletion {
		return a.runCompletion(out)
	}

	ui.InitTheme(a.Config.NoColor || !ui.IsTerminal(out))

	mode := a.Config.Mode()
	start := time.Now()
	a.Logger.Debug("run started", logging.String("mode", string(mode)))
	defer func() {
		a.writeMetrics()
		a.Logger.Debug("run finished",
			logging.String("mode", string(mode)),
			logging.Int("exit_code", exitCode),
			logging.String("elapsed", time.Since(start).String()))
	}()

	switch mode {
	case config.ModeTUI:
		return a.runTUI(ctx)
	case config.ModeREPL:
		return a.runREPL(ctx, out)
	case config.ModeConvert:
		return a.runConvert(out)
	case config.ModeLookup:
		return a.runLookup(out)
	case config.ModeWord:
		return a.runWord(out)
	case config.ModeLastDigits:
		return a.runLastDigits(out)
	default:
		return a.runCalculate(ctx, out)
	}
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, a.Factory.List()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runTUI launches the interactive converter dashboard.
func (a *Application) runTUI(ctx context.Context) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	return tui.Run(ctx, a.Factory, a.Config, Version, a.Metrics)
}

// runREPL starts the interactive command loop on stdin.
func (a *Application) runREPL(ctx context.Context, out io.Writer) int {
	items, err := lookup.ParseItems(a.Config.Items)
	if err != nil {
		return a.reportError(err)
	}

	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	repl := cli.NewREPL(a.Factory, cli.REPLConfig{
		DefaultAlgo: a.Config.Algo,
		Timeout:     a.Config.Timeout,
		Items:       items,
		Metrics:     a.Metrics,
	})
	repl.SetInput(os.Stdin)
	repl.SetOutput(out)
	repl.Start(ctx)

	if ctx.Err() != nil {
		return apperrors.ExitErrorCanceled
	}
	return apperrors.ExitSuccess
}

// reportError prints err on the error writer and maps it to an exit code.
func (a *Application) reportError(err error) int {
	a.Logger.Debug("request rejected", logging.Err(err))
	return apperrors.HandleCalculationError(err, 0, a.ErrWriter, cli.CLIColorProvider{})
}

// writeMetrics dumps the registry to the configured textfile, if any.
func (a *Application) writeMetrics() {
	if a.Config.MetricsFile == "" {
		return
	}
	if err := a.Metrics.WriteTextfile(a.Config.MetricsFile); err != nil {
		a.Logger.Error("failed to write metrics file", err, logging.String("path", a.Config.MetricsFile))
		return
	}
	a.Logger.Debug("metrics written", logging.String("path", a.Config.MetricsFile))
}

// withLifecycle bounds ctx by the configured timeout and cancels it on
// SIGINT or SIGTERM.
func (a *Application) withLifecycle(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	return ctx, func() {
		stopSignals()
		cancelTimeout()
	}
}

// IsHelpError checks if the error is a help flag error (-help was used).
func IsHelpError(err error) bool {
	return config.IsHelp(err)
}
