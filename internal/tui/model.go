package tui

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/fibconv/internal/config"
	apperrors "github.com/agbru/fibconv/internal/errors"
	"github.com/agbru/fibconv/internal/fibonacci"
	"github.com/agbru/fibconv/internal/format"
	"github.com/agbru/fibconv/internal/metrics"
	"github.com/agbru/fibconv/internal/temperature"
)

// Input fields, in focus order.
const (
	fieldCelsius = iota
	fieldIndex
	fieldCount
)

// Layout constants for the converter dashboard.
const (
	HistorySize      = 32
	InputCharLimit   = 24
	MaxDisplayDigits = 60
	minPanelWidth    = 40
)

// ExecutionState tracks the Fibonacci calculation in flight. Each new input
// bumps generation so results from superseded calculations are dropped.
type ExecutionState struct {
	cancel     context.CancelFunc
	generation uint64
	busy       bool
	exitCode   int
}

// Model is the root bubbletea model of the converter dashboard.
type Model struct {
	header  HeaderModel
	inputs  [fieldCount]textinput.Model
	focus   int
	keymap  KeyMap
	help    help.Model
	history *History

	ExecutionState

	parentCtx context.Context
	factory   fibonacci.CalculatorFactory
	metrics   *metrics.Metrics
	algos     []string
	algoIdx   int
	width     int

	fahrenheit  string
	convErr     error
	fibValue    string
	fibDigits   int
	fibDuration time.Duration
	fibErr      error
}

// fibResultMsg carries a finished calculation back to the model.
type fibResultMsg struct {
	generation uint64
	algorithm  string
	value      *big.Int
	duration   time.Duration
	err        error
}

// contextDoneMsg is sent when the parent context is cancelled.
type contextDoneMsg struct{ err error }

// NewModel creates the dashboard model. Input fields are pre-filled from cfg:
// the Celsius field from -celsius when given, the index field from -n.
func NewModel(parentCtx context.Context, factory fibonacci.CalculatorFactory, cfg config.AppConfig, version string, m *metrics.Metrics) Model {
	algos := factory.List()
	algoIdx := slices.Index(algos, cfg.Algo)
	if algoIdx < 0 {
		algoIdx = max(slices.Index(algos, fibonacci.AlgoDoubling), 0)
	}

	model := Model{
		header:    NewHeaderModel(version),
		keymap:    DefaultKeyMap(),
		help:      help.New(),
		history:   NewHistory(HistorySize),
		parentCtx: parentCtx,
		factory:   factory,
		metrics:   m,
		algos:     algos,
		algoIdx:   algoIdx,
		ExecutionState: ExecutionState{
			exitCode: apperrors.ExitSuccess,
		},
	}

	celsius := textinput.New()
	celsius.Placeholder = "e.g. 36.6"
	celsius.CharLimit = InputCharLimit
	celsius.Prompt = "°C › "
	if cfg.Celsius != nil {
		celsius.SetValue(strconv.FormatFloat(*cfg.Celsius, 'f', -1, 64))
	}
	celsius.Focus()

	index := textinput.New()
	index.Placeholder = "e.g. 42"
	index.CharLimit = InputCharLimit
	index.Prompt = " n › "
	index.SetValue(strconv.FormatInt(cfg.N, 10))

	model.inputs = [fieldCount]textinput.Model{celsius, index}
	if len(algos) > 0 {
		model.header.SetAlgorithm(algos[algoIdx])
	}
	model.convert()
	return model
}

// Init starts the cursor blink, the first calculation and the context watcher.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		func() tea.Msg { return recalcMsg{} },
		watchContextCmd(m.parentCtx),
	)
}

// recalcMsg asks the model to restart the Fibonacci calculation.
type recalcMsg struct{}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.header.SetWidth(msg.Width)
		m.help.Width = msg.Width
		return m, nil

	case recalcMsg:
		return m.recalculate()

	case fibResultMsg:
		if msg.generation != m.generation {
			return m, nil
		}
		m.busy = false
		m.fibDuration = msg.duration
		m.fibErr = msg.err
		m.fibValue, m.fibDigits = "", 0
		if msg.err == nil {
			digits := msg.value.String()
			m.fibDigits = len(digits)
			m.fibValue = truncateDigits(format.FormatNumberString(digits), MaxDisplayDigits)
		}
		if !apperrors.IsContextError(msg.err) {
			m.metrics.ObserveCalculation(msg.algorithm, msg.duration, msg.err)
		}
		return m, nil

	case contextDoneMsg:
		m.stop()
		m.exitCode = apperrors.ExitErrorCanceled
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.stop()
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keymap.Next):
		return m.setFocus((m.focus + 1) % fieldCount)

	case key.Matches(msg, m.keymap.Prev):
		return m.setFocus((m.focus + fieldCount - 1) % fieldCount)

	case key.Matches(msg, m.keymap.Algo):
		if len(m.algos) == 0 {
			return m, nil
		}
		m.algoIdx = (m.algoIdx + 1) % len(m.algos)
		m.header.SetAlgorithm(m.algos[m.algoIdx])
		return m.recalculate()

	case key.Matches(msg, m.keymap.Reset):
		for i := range m.inputs {
			m.inputs[i].Reset()
		}
		m.convert()
		return m.recalculate()
	}

	if msg.Type == tea.KeyRunes && !isNumericInput(msg.Runes) {
		return m, nil
	}

	before := m.inputs[m.focus].Value()
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	if m.inputs[m.focus].Value() == before {
		return m, cmd
	}

	if m.focus == fieldCelsius {
		m.convert()
		return m, cmd
	}
	next, recalc := m.recalculate()
	return next, tea.Batch(cmd, recalc)
}

func (m Model) setFocus(field int) (tea.Model, tea.Cmd) {
	m.inputs[m.focus].Blur()
	m.focus = field
	return m, m.inputs[m.focus].Focus()
}

// convert refreshes the Fahrenheit reading from the Celsius field.
func (m *Model) convert() {
	m.fahrenheit, m.convErr = "", nil
	raw := strings.TrimSpace(m.inputs[fieldCelsius].Value())
	if raw == "" || raw == "-" || raw == "+" {
		return
	}
	c, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		m.convErr = fmt.Errorf("not a number: %q", raw)
		return
	}
	f, _, err := temperature.Convert(c, temperature.ScaleCelsius)
	if err != nil {
		m.convErr = err
		return
	}
	m.fahrenheit = temperature.Fahrenheit(f).String()
	m.history.Push(f)
	m.metrics.ObserveConversion(temperature.ScaleCelsius.String())
}

// recalculate cancels any calculation in flight and starts a new one for the
// current index and algorithm.
func (m Model) recalculate() (tea.Model, tea.Cmd) {
	m.stop()
	m.generation++
	m.busy = false
	m.fibValue, m.fibDigits, m.fibErr = "", 0, nil

	raw := strings.TrimSpace(m.inputs[fieldIndex].Value())
	if raw == "" || raw == "-" || raw == "+" {
		return m, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		m.fibErr = fmt.Errorf("not an integer: %q", raw)
		return m, nil
	}
	if n < 0 {
		m.fibErr = fibonacci.ErrNegativeIndex
		return m, nil
	}
	name, ok := m.algorithm()
	if !ok {
		m.fibErr = fibonacci.ErrUnknownAlgorithm
		return m, nil
	}
	calc, err := m.factory.Get(name)
	if err != nil {
		m.fibErr = err
		return m, nil
	}

	ctx, cancel := context.WithCancel(m.parentCtx)
	m.cancel = cancel
	m.busy = true
	return m, computeFibCmd(ctx, calc, uint64(n), m.generation)
}

func (m *Model) stop() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

func (m Model) algorithm() (string, bool) {
	if len(m.algos) == 0 {
		return "", false
	}
	return m.algos[m.algoIdx], true
}

// ExitCode returns the exit code the session ended with.
func (m Model) ExitCode() int { return m.exitCode }

// View renders the dashboard.
func (m Model) View() string {
	width := max(m.width, minPanelWidth)
	panel := func(field int) lipgloss.Style {
		if field == m.focus {
			return focusPanelStyle.Width(width - 2)
		}
		return panelStyle.Width(width - 2)
	}

	convLine := dimStyle.Render("type a temperature in Celsius")
	switch {
	case m.convErr != nil:
		convLine = errorStyle.Render(m.convErr.Error())
	case m.fahrenheit != "":
		convLine = labelStyle.Render("= ") + valueStyle.Render(m.fahrenheit)
	}
	conversion := panel(fieldCelsius).Render(lipgloss.JoinVertical(lipgloss.Left,
		labelStyle.Render("Temperature"),
		m.inputs[fieldCelsius].View(),
		convLine,
	))

	fib := panel(fieldIndex).Render(lipgloss.JoinVertical(lipgloss.Left,
		labelStyle.Render("Fibonacci"),
		m.inputs[fieldIndex].View(),
		m.fibLine(),
	))

	trend := dimStyle.Render("no conversions yet")
	if m.history.Len() > 0 {
		trend = labelStyle.Render("°F history ") + sparklineStyle.Render(RenderSparkline(m.history.Values())) +
			dimStyle.Render(fmt.Sprintf(" (%d)", m.history.Len()))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.header.View(),
		conversion,
		fib,
		" "+trend,
		" "+m.help.View(m.keymap),
	)
}

func (m Model) fibLine() string {
	n := strings.TrimSpace(m.inputs[fieldIndex].Value())
	switch {
	case m.fibErr != nil:
		return errorStyle.Render(m.fibErr.Error())
	case m.busy:
		return statusBusyStyle.Render(fmt.Sprintf("computing F(%s)…", n))
	case m.fibValue == "":
		return dimStyle.Render("type an index n ≥ 0")
	}
	line := labelStyle.Render(fmt.Sprintf("F(%s) = ", n)) + valueStyle.Render(m.fibValue)
	return line + "\n" + statusReadyStyle.Render("✓ ") +
		dimStyle.Render(fmt.Sprintf("%s digits in %s", format.FormatUint(uint64(m.fibDigits)), format.FormatExecutionDuration(m.fibDuration)))
}

// Run is the public entry point for the TUI mode.
// It creates the bubbletea program, runs it, and returns the exit code.
func Run(ctx context.Context, factory fibonacci.CalculatorFactory, cfg config.AppConfig, version string, m *metrics.Metrics) int {
	// Rebuild styles from the current ui theme (set by the app via InitTheme).
	initTUIStyles()

	p := tea.NewProgram(NewModel(ctx, factory, cfg, version, m), tea.WithAltScreen(), tea.WithContext(ctx))
	finalModel, err := p.Run()
	if final, ok := finalModel.(Model); ok {
		final.stop()
		if errors.Is(err, tea.ErrProgramKilled) || final.exitCode == apperrors.ExitErrorCanceled {
			return apperrors.ExitErrorCanceled
		}
		if err == nil {
			return final.exitCode
		}
	}
	if err != nil {
		if apperrors.IsContextError(err) {
			return apperrors.ExitErrorCanceled
		}
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// computeFibCmd runs one calculation off the UI goroutine.
func computeFibCmd(ctx context.Context, calc fibonacci.Calculator, n, gen uint64) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		value, err := calc.Calculate(ctx, nil, 0, n)
		return fibResultMsg{
			generation: gen,
			algorithm:  calc.Name(),
			value:      value,
			duration:   time.Since(start),
			err:        err,
		}
	}
}

// watchContextCmd waits for context cancellation and sends a message.
func watchContextCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return contextDoneMsg{err: ctx.Err()}
	}
}

// isNumericInput reports whether every rune may appear in a number.
func isNumericInput(runes []rune) bool {
	for _, r := range runes {
		if !isNumericRune(r) {
			return false
		}
	}
	return len(runes) > 0
}

func isNumericRune(r rune) bool {
	return (r >= '0' && r <= '9') || r == '-' || r == '+' || r == '.' || r == 'e' || r == 'E'
}

// truncateDigits shortens long numbers to their leading and trailing parts.
func truncateDigits(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	edge := limit / 2
	return s[:edge] + "…" + s[len(s)-edge:]
}
