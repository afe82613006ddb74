package fibonacci

import (
	"context"
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// calcF is a shorthand that computes F(n) with the given core calculator.
func calcF(calc coreCalculator, n uint64) (*big.Int, error) {
	return calc.CalculateCore(context.Background(), func(float64) {}, n)
}

// bigCalculators returns the calculators without an index cap.
func bigCalculators() []coreCalculator {
	return []coreCalculator{
		&IterativeCalculator{},
		&FastDoublingCalculator{},
	}
}

// TestRecurrence_Uint64_PropertyBased checks F(n) = F(n-1) + F(n-2) on the
// uint64 domain of Iterative, and agreement with Recursive on small n.
func TestRecurrence_Uint64_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("Iterative satisfies F(n) = F(n-1) + F(n-2)", prop.ForAll(
		func(n int) bool {
			fn, err := Iterative(n)
			if err != nil {
				return false
			}
			fn1, err := Iterative(n - 1)
			if err != nil {
				return false
			}
			fn2, err := Iterative(n - 2)
			if err != nil {
				return false
			}
			return fn == fn1+fn2
		},
		gen.IntRange(2, MaxUint64Index),
	))

	properties.Property("Recursive agrees with Iterative", prop.ForAll(
		func(n int) bool {
			r, err := Recursive(n)
			if err != nil {
				return false
			}
			i, err := Iterative(n)
			return err == nil && r == i
		},
		gen.IntRange(0, 22),
	))

	properties.Property("negative indices are always rejected", prop.ForAll(
		func(n int) bool {
			_, errR := Recursive(n)
			_, errI := Iterative(n)
			return errR != nil && errI != nil
		},
		gen.IntRange(-1_000_000, -1),
	))

	properties.TestingRun(t)
}

// TestRecurrenceRelation_PropertyBased verifies F(n) = F(n-1) + F(n-2) for
// the big.Int calculators.
func TestRecurrenceRelation_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	for _, calculator := range bigCalculators() {
		calculator := calculator
		properties.Property(calculator.Name()+" satisfies recurrence F(n) = F(n-1) + F(n-2)", prop.ForAll(
			func(n uint64) bool {
				fn, err := calcF(calculator, n)
				if err != nil {
					return false
				}
				fn1, err := calcF(calculator, n-1)
				if err != nil {
					return false
				}
				fn2, err := calcF(calculator, n-2)
				if err != nil {
					return false
				}
				return fn.Cmp(new(big.Int).Add(fn1, fn2)) == 0
			},
			gen.UInt64Range(2, 5000),
		))
	}

	properties.TestingRun(t)
}

// TestCassinisIdentity_PropertyBased verifies Cassini's identity:
//
//	F(n-1) * F(n+1) - F(n)² = (-1)ⁿ
func TestCassinisIdentity_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	calculator := &FastDoublingCalculator{}
	properties.Property("Cassini's identity", prop.ForAll(
		func(n uint64) bool {
			fnMinus1, err := calcF(calculator, n-1)
			if err != nil {
				return false
			}
			fn, err := calcF(calculator, n)
			if err != nil {
				return false
			}
			fnPlus1, err := calcF(calculator, n+1)
			if err != nil {
				return false
			}

			left := new(big.Int).Mul(fnMinus1, fnPlus1)
			left.Sub(left, new(big.Int).Mul(fn, fn))

			right := big.NewInt(1)
			if n%2 != 0 {
				right.Neg(right)
			}
			return left.Cmp(right) == 0
		},
		gen.UInt64Range(1, 20000),
	))

	properties.TestingRun(t)
}

// TestGCDIdentity_PropertyBased verifies GCD(F(m), F(n)) = F(GCD(m, n)).
func TestGCDIdentity_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	calculator := &FastDoublingCalculator{}
	properties.Property("GCD(F(m), F(n)) = F(GCD(m, n))", prop.ForAll(
		func(m, n uint64) bool {
			fm, err := calcF(calculator, m)
			if err != nil {
				return false
			}
			fn, err := calcF(calculator, n)
			if err != nil {
				return false
			}
			fGCD, err := calcF(calculator, gcdUint64(m, n))
			if err != nil {
				return false
			}
			return new(big.Int).GCD(nil, nil, fm, fn).Cmp(fGCD) == 0
		},
		gen.UInt64Range(1, 5000),
		gen.UInt64Range(1, 5000),
	))

	properties.TestingRun(t)
}

func gcdUint64(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
