package fibonacci

// ─────────────────────────────────────────────────────────────────────────────
// Domain Limits
// ─────────────────────────────────────────────────────────────────────────────

const (
	// MaxUint64Index is the largest n for which F(n) fits in a uint64.
	// F(93) = 12200160415121876738; F(94) overflows.
	MaxUint64Index = 93

	// DecimalGrowthFactor is log10(phi). Used to estimate the digit count of F(n).
	DecimalGrowthFactor = 0.20898764
)

// ─────────────────────────────────────────────────────────────────────────────
// Progress Reporting Constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	// ctxCheckMask controls how often the recursive calculator polls its
	// context: once every ctxCheckMask+1 calls.
	ctxCheckMask = 1<<16 - 1

	// iterativeCheckInterval is the number of loop iterations between two
	// context checks (and progress reports) in the iterative calculator.
	iterativeCheckInterval = 4096

	// progressGranularity is the minimum progress delta forwarded to the
	// progress channel. Smaller increments are coalesced.
	progressGranularity = 0.01
)

const (
	// RecursiveComparisonLimit is the largest n for which the exponential
	// recursive calculator takes part in an "all algorithms" comparison.
	// Above it the reference implementation only runs when selected
	// explicitly.
	RecursiveComparisonLimit = 35
)
