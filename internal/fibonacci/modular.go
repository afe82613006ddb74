package fibonacci

import (
	"fmt"
	"math/big"
	"math/bits"

	apperrors "github.com/agbru/fibconv/internal/errors"
)

// MaxLastDigits bounds the K accepted by LastDigits.
const MaxLastDigits = 10_000

// FastDoublingMod computes F(n) mod m using the fast doubling algorithm.
// Memory usage is O(log(m)) regardless of n, making it suitable for
// computing the last K digits of F(n) for arbitrarily large n.
func FastDoublingMod(n uint64, m *big.Int) (*big.Int, error) {
	if m == nil || m.Sign() <= 0 {
		return nil, apperrors.NewInvalidArgument("fibonacci", m, "modulus must be positive")
	}
	if n == 0 {
		return big.NewInt(0), nil
	}

	fk := big.NewInt(0)  // F(k)
	fk1 := big.NewInt(1) // F(k+1)
	t1 := new(big.Int)
	t2 := new(big.Int)

	for i := bits.Len64(n) - 1; i >= 0; i-- {
		// F(2k) = F(k) * (2*F(k+1) - F(k)) mod m; Mod keeps the value non-negative.
		t1.Lsh(fk1, 1)
		t1.Sub(t1, fk)
		t1.Mod(t1, m)
		t1.Mul(t1, fk)
		t1.Mod(t1, m)

		// F(2k+1) = F(k+1)² + F(k)² mod m
		t2.Mul(fk1, fk1)
		fk.Mul(fk, fk)
		t2.Add(t2, fk)
		t2.Mod(t2, m)

		fk.Set(t1)
		fk1.Set(t2)

		if (n>>uint(i))&1 == 1 {
			t1.Add(fk, fk1)
			t1.Mod(t1, m)
			fk.Set(fk1)
			fk1.Set(t1)
		}
	}
	return fk, nil
}

// LastDigits returns the last k decimal digits of F(n), zero-padded to
// exactly k characters.
func LastDigits(n uint64, k int) (string, error) {
	if k <= 0 || k > MaxLastDigits {
		return "", apperrors.NewInvalidArgument("fibonacci", k, "digit count must be in [1, %d]", MaxLastDigits)
	}
	mod := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(k)), nil)
	r, err := FastDoublingMod(n, mod)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*s", k, r.String()), nil
}
