package fibonacci

import (
	"errors"
	"fmt"
	"math/big"
	"testing"

	apperrors "github.com/agbru/fibconv/internal/errors"
)

func TestFastDoublingMod_KnownValues(t *testing.T) {
	t.Parallel()

	cases := []struct {
		n    uint64
		mod  int64
		want int64
	}{
		{0, 1000, 0},
		{1, 1000, 1},
		{10, 1000, 55},
		{100, 10000, 5075},      // F(100) mod 10000 = 5075
		{1000, 1000000, 228875}, // F(1000) last 6 digits
	}

	for _, tc := range cases {
		tc := tc
		t.Run(fmt.Sprintf("N=%d_mod_%d", tc.n, tc.mod), func(t *testing.T) {
			t.Parallel()
			result, err := FastDoublingMod(tc.n, big.NewInt(tc.mod))
			if err != nil {
				t.Fatalf("FastDoublingMod error: %v", err)
			}
			if result.Int64() != tc.want {
				t.Errorf("FastDoublingMod(%d, %d) = %d, want %d", tc.n, tc.mod, result.Int64(), tc.want)
			}
		})
	}
}

func TestFastDoublingMod_ConsistentWithFull(t *testing.T) {
	t.Parallel()

	full, err := calcF(&IterativeCalculator{}, 500)
	if err != nil {
		t.Fatalf("full calculation error: %v", err)
	}

	mod := new(big.Int).Exp(big.NewInt(10), big.NewInt(100), nil)
	expected := new(big.Int).Mod(full, mod)

	result, err := FastDoublingMod(500, mod)
	if err != nil {
		t.Fatalf("FastDoublingMod error: %v", err)
	}
	if result.Cmp(expected) != 0 {
		t.Errorf("modular result doesn't match full: got %s, want %s", result, expected)
	}
}

func TestFastDoublingMod_InvalidModulus(t *testing.T) {
	t.Parallel()

	for _, m := range []*big.Int{nil, big.NewInt(0), big.NewInt(-5)} {
		_, err := FastDoublingMod(10, m)
		if !errors.Is(err, apperrors.ErrInvalidArgument) {
			t.Errorf("FastDoublingMod(10, %v) error = %v, want invalid argument", m, err)
		}
	}
}

func TestLastDigits(t *testing.T) {
	t.Parallel()

	cases := []struct {
		n    uint64
		k    int
		want string
	}{
		{10, 2, "55"},
		{10, 4, "0055"},
		{0, 3, "000"},
		{1000, 6, "228875"},
		{93, 5, "76738"},
	}
	for _, tc := range cases {
		got, err := LastDigits(tc.n, tc.k)
		if err != nil {
			t.Fatalf("LastDigits(%d, %d) error: %v", tc.n, tc.k, err)
		}
		if got != tc.want {
			t.Errorf("LastDigits(%d, %d) = %q, want %q", tc.n, tc.k, got, tc.want)
		}
	}
}

func TestLastDigits_InvalidK(t *testing.T) {
	t.Parallel()

	for _, k := range []int{0, -1, MaxLastDigits + 1} {
		if _, err := LastDigits(10, k); !errors.Is(err, apperrors.ErrInvalidArgument) {
			t.Errorf("LastDigits(10, %d) error = %v, want invalid argument", k, err)
		}
	}
}
