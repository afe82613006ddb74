package fibonacci

import (
	"fmt"
	"math"

	apperrors "github.com/agbru/fibconv/internal/errors"
)

// Sentinel errors for rejected indices. Both match apperrors.ErrInvalidArgument.
var (
	// ErrNegativeIndex is returned for n < 0.
	ErrNegativeIndex = apperrors.InvalidArgumentError{
		Op:     "fibonacci",
		Arg:    "n",
		Reason: "index must be non-negative",
	}

	// ErrOverflow is returned when F(n) does not fit the result type.
	ErrOverflow = apperrors.InvalidArgumentError{
		Op:     "fibonacci",
		Arg:    "n",
		Reason: fmt.Sprintf("F(n) overflows uint64 for n > %d", MaxUint64Index),
	}
)

func checkIndex(n int) error {
	if n < 0 {
		return fmt.Errorf("%w (got %d)", ErrNegativeIndex, n)
	}
	if n > MaxUint64Index {
		return fmt.Errorf("%w (got %d)", ErrOverflow, n)
	}
	return nil
}

// Recursive computes F(n) with the doubly-recursive definition:
//
//	F(0) = 0, F(1) = 1, F(n) = F(n-1) + F(n-2)
//
// It runs in O(φⁿ) time and is kept as the behavioral reference; use
// Iterative or a Calculator for anything beyond small n.
// Negative n returns ErrNegativeIndex and n > MaxUint64Index returns ErrOverflow.
func Recursive(n int) (uint64, error) {
	if err := checkIndex(n); err != nil {
		return 0, err
	}
	return recurse(n), nil
}

func recurse(n int) uint64 {
	switch n {
	case 0:
		return 0
	case 1:
		return 1
	default:
		return recurse(n-1) + recurse(n-2)
	}
}

// Iterative computes F(n) in O(n) time with the same domain as Recursive.
func Iterative(n int) (uint64, error) {
	if err := checkIndex(n); err != nil {
		return 0, err
	}
	var a, b uint64 = 0, 1
	for i := 0; i < n; i++ {
		a, b = b, a+b
	}
	return a, nil
}

// EstimateDigits returns an estimate of the number of decimal digits of F(n).
func EstimateDigits(n uint64) uint64 {
	if n < 2 {
		return 1
	}
	// F(n) ≈ φⁿ/√5
	digits := float64(n)*DecimalGrowthFactor - math.Log10(math.Sqrt(5))
	if digits < 1 {
		return 1
	}
	return uint64(digits) + 1
}

// recursiveCallCount returns the number of calls the doubly-recursive
// definition performs for F(n), which is 2·F(n+1) - 1.
func recursiveCallCount(n int) float64 {
	a, b := 0.0, 1.0
	for i := 0; i <= n; i++ {
		a, b = b, a+b
	}
	return 2*a - 1
}
