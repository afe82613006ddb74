package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/agbru/fibconv/internal/fibonacci"
	"github.com/agbru/fibconv/internal/metrics"
)

func runREPL(t *testing.T, input string, cfg REPLConfig) string {
	t.Helper()
	repl := NewREPL(fibonacci.NewDefaultFactory(), cfg)
	var out bytes.Buffer
	repl.SetInput(strings.NewReader(input))
	repl.SetOutput(&out)
	repl.Start(context.Background())
	return out.String()
}

func TestREPL_Commands(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"fib", "fib 10\n", []string{"F(10) = 55"}},
		{"bare number", "20\n", []string{"F(20) = 6,765"}},
		{"negative fib", "fib -1\n", []string{"must be non-negative"}},
		{"fib without argument", "fib\n", []string{"Usage: fib <n>"}},
		{"c2f", "c2f 100\n", []string{"100.00°C = 212.00°F"}},
		{"f2c", "f2c -40\n", []string{"-40.00°F = -40.00°C"}},
		{"c2f usage", "c2f\n", []string{"Usage: c2f <value>"}},
		{"bad temperature", "c2f hot\n", []string{"Invalid temperature: hot"}},
		{"index", "index 2\n", []string{"items[2] = 3 (of 5 items)"}},
		{"index out of range", "index 10\n", []string{"out of range"}},
		{"word", "word hello world\n", []string{`first word of "hello world": "hello"`}},
		{"algo", "algo iterative\nfib 5\n", []string{"Algorithm changed to: Iterative (O(n))", "with Iterative (O(n))"}},
		{"unknown algo", "algo matrix\n", []string{"Unknown algorithm: matrix", "doubling, iterative, recursive"}},
		{"list", "list\n", []string{"► doubling", "recursive"}},
		{"compare", "compare 30\n", []string{"Comparison Summary", "Global Status: Success", "F(30) = 832,040"}},
		{"unknown", "frobnicate\n", []string{"Unknown command: frobnicate"}},
		{"exit", "exit\nfib 10\n", []string{"Goodbye!"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			output := runREPL(t, tt.input, REPLConfig{Timeout: 10 * time.Second})
			for _, want := range tt.want {
				if !strings.Contains(output, want) {
					t.Errorf("output should contain %q, got:\n%s", want, output)
				}
			}
		})
	}
}

func TestREPL_ExitStopsProcessing(t *testing.T) {
	t.Parallel()
	output := runREPL(t, "exit\nfib 10\n", REPLConfig{})
	if strings.Contains(output, "F(10)") {
		t.Error("commands after exit should not run")
	}
}

func TestREPL_LastLineWithoutNewline(t *testing.T) {
	t.Parallel()
	output := runREPL(t, "fib 7", REPLConfig{})
	if !strings.Contains(output, "F(7) = 13") {
		t.Errorf("final unterminated line should run, got:\n%s", output)
	}
}

func TestREPL_CanceledContext(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	repl := NewREPL(fibonacci.NewDefaultFactory(), REPLConfig{})
	var out bytes.Buffer
	repl.SetInput(strings.NewReader("fib 10\n"))
	repl.SetOutput(&out)
	repl.Start(ctx)

	if !strings.Contains(out.String(), "Interrupted.") || strings.Contains(out.String(), "F(10)") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestREPL_RecordsMetrics(t *testing.T) {
	t.Parallel()
	m := metrics.New()
	runREPL(t, "c2f 0\nindex 1\nindex 9\nfib 10\n", REPLConfig{Metrics: m})

	if got := testutil.ToFloat64(m.ConversionsTotal.WithLabelValues("celsius")); got != 1 {
		t.Errorf("conversions = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.LookupsTotal.WithLabelValues(metrics.StatusRejected)); got != 1 {
		t.Errorf("rejected lookups = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.CalculationsTotal.WithLabelValues("Fast Doubling (O(log n))", metrics.StatusSuccess)); got != 1 {
		t.Errorf("calculations = %v, want 1", got)
	}
}
