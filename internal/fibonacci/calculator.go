package fibonacci

import (
	"context"
	"fmt"
	"math/big"
	"math/bits"
)

// ProgressUpdate is a progress notification emitted by a running calculator.
type ProgressUpdate struct {
	// CalculatorIndex identifies the calculator in a concurrent run.
	CalculatorIndex int
	// Value is the normalized progress, from 0.0 to 1.0.
	Value float64
}

// ProgressReporter receives normalized progress values from an algorithm.
type ProgressReporter func(progress float64)

func (r ProgressReporter) orNoop() ProgressReporter {
	if r == nil {
		return func(float64) {}
	}
	return r
}

// Calculator computes F(n) for arbitrary n and reports progress.
type Calculator interface {
	// Name returns a human-readable algorithm description.
	Name() string
	// Calculate computes F(n). Progress updates are sent on progressChan
	// tagged with calcIndex; a nil channel disables reporting.
	Calculate(ctx context.Context, progressChan chan<- ProgressUpdate, calcIndex int, n uint64) (*big.Int, error)
}

// coreCalculator is the algorithm-specific part of a Calculator.
type coreCalculator interface {
	Name() string
	CalculateCore(ctx context.Context, reporter ProgressReporter, n uint64) (*big.Int, error)
}

// FibCalculator adapts a coreCalculator to the Calculator interface. It owns
// progress throttling and the final completion update.
type FibCalculator struct {
	core coreCalculator
}

// NewCalculator wraps a core algorithm into a Calculator.
func NewCalculator(core coreCalculator) Calculator {
	return &FibCalculator{core: core}
}

// Name returns the name of the wrapped algorithm.
func (c *FibCalculator) Name() string { return c.core.Name() }

// Calculate runs the wrapped algorithm. Intermediate updates are dropped when
// progressChan is full; the final 1.0 update blocks until delivered or ctx ends.
func (c *FibCalculator) Calculate(ctx context.Context, progressChan chan<- ProgressUpdate, calcIndex int, n uint64) (*big.Int, error) {
	last := -1.0
	reporter := func(v float64) {
		if progressChan == nil || v-last < progressGranularity {
			return
		}
		last = v
		select {
		case progressChan <- ProgressUpdate{CalculatorIndex: calcIndex, Value: v}:
		default:
		}
	}

	result, err := c.core.CalculateCore(ctx, reporter, n)
	if err != nil {
		return nil, err
	}

	if progressChan != nil {
		select {
		case progressChan <- ProgressUpdate{CalculatorIndex: calcIndex, Value: 1.0}:
		case <-ctx.Done():
		}
	}
	return result, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Recursive
// ─────────────────────────────────────────────────────────────────────────────

// RecursiveCalculator evaluates the doubly-recursive definition. It is the
// reference algorithm and is limited to n <= MaxUint64Index.
type RecursiveCalculator struct{}

// Name returns the algorithm name.
func (*RecursiveCalculator) Name() string { return "Recursive (O(φⁿ), reference)" }

// CalculateCore computes F(n), polling ctx every ctxCheckMask+1 calls.
func (*RecursiveCalculator) CalculateCore(ctx context.Context, reporter ProgressReporter, n uint64) (*big.Int, error) {
	if n > MaxUint64Index {
		return nil, fmt.Errorf("%w (got %d)", ErrOverflow, n)
	}
	r := &recursion{
		ctx:      ctx,
		reporter: reporter.orNoop(),
		total:    recursiveCallCount(int(n)),
	}
	v := r.fib(int(n))
	if r.err != nil {
		return nil, r.err
	}
	return new(big.Int).SetUint64(v), nil
}

type recursion struct {
	ctx      context.Context
	reporter ProgressReporter
	total    float64
	calls    uint64
	err      error
}

func (r *recursion) fib(n int) uint64 {
	if r.err != nil {
		return 0
	}
	r.calls++
	if r.calls&ctxCheckMask == 0 {
		if err := r.ctx.Err(); err != nil {
			r.err = err
			return 0
		}
		r.reporter(float64(r.calls) / r.total)
	}
	if n < 2 {
		return uint64(n)
	}
	return r.fib(n-1) + r.fib(n-2)
}

// ─────────────────────────────────────────────────────────────────────────────
// Iterative
// ─────────────────────────────────────────────────────────────────────────────

// IterativeCalculator sums consecutive terms in O(n) big.Int additions.
type IterativeCalculator struct{}

// Name returns the algorithm name.
func (*IterativeCalculator) Name() string { return "Iterative (O(n))" }

// CalculateCore computes F(n), checking ctx every iterativeCheckInterval steps.
func (*IterativeCalculator) CalculateCore(ctx context.Context, reporter ProgressReporter, n uint64) (*big.Int, error) {
	reporter = reporter.orNoop()
	a, b := big.NewInt(0), big.NewInt(1)
	for i := uint64(0); i < n; i++ {
		if i%iterativeCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			reporter(float64(i) / float64(n))
		}
		// a, b = b, a+b without allocating
		a.Add(a, b)
		a, b = b, a
	}
	return a, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Fast doubling
// ─────────────────────────────────────────────────────────────────────────────

// FastDoublingCalculator uses the doubling identities, O(log n) steps:
//
//	F(2k)   = F(k) * (2*F(k+1) - F(k))
//	F(2k+1) = F(k+1)² + F(k)²
type FastDoublingCalculator struct{}

// Name returns the algorithm name.
func (*FastDoublingCalculator) Name() string { return "Fast Doubling (O(log n))" }

// CalculateCore computes F(n), checking ctx once per bit of n.
func (*FastDoublingCalculator) CalculateCore(ctx context.Context, reporter ProgressReporter, n uint64) (*big.Int, error) {
	reporter = reporter.orNoop()
	fk := big.NewInt(0)  // F(k)
	fk1 := big.NewInt(1) // F(k+1)
	t1 := new(big.Int)
	t2 := new(big.Int)

	numBits := bits.Len64(n)
	for i := numBits - 1; i >= 0; i-- {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		// F(2k) = F(k) * (2*F(k+1) - F(k))
		t1.Lsh(fk1, 1)
		t1.Sub(t1, fk)
		t1.Mul(t1, fk)

		// F(2k+1) = F(k+1)² + F(k)²
		t2.Mul(fk1, fk1)
		fk.Mul(fk, fk)
		t2.Add(t2, fk)

		fk.Set(t1)
		fk1.Set(t2)

		if (n>>uint(i))&1 == 1 {
			t1.Add(fk, fk1)
			fk.Set(fk1)
			fk1.Set(t1)
		}

		reporter(float64(numBits-i) / float64(numBits))
	}
	return fk, nil
}
