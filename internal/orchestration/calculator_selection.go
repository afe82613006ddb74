package orchestration

import (
	"maps"
	"slices"

	"github.com/agbru/fibconv/internal/fibonacci"
)

// GetCalculatorsToRun determines which calculators should be executed for
// the given algorithm selection. "all" returns every registered calculator in
// alphabetical order of its registry name, except that the recursive
// reference calculator is left out when n exceeds
// fibonacci.RecursiveComparisonLimit. An unknown name yields nil.
//
// Parameters:
//   - algo: "all" or a registry name such as "doubling".
//   - n: The index that will be computed.
//   - factory: The calculator factory to retrieve implementations from.
//
// Returns:
//   - []fibonacci.Calculator: A slice of calculators to execute.
func GetCalculatorsToRun(algo string, n uint64, factory fibonacci.CalculatorFactory) []fibonacci.Calculator {
	if algo != "all" {
		if calc, err := factory.Get(algo); err == nil {
			return []fibonacci.Calculator{calc}
		}
		return nil
	}

	registered := factory.GetAll()
	keys := slices.Sorted(maps.Keys(registered))
	calculators := make([]fibonacci.Calculator, 0, len(keys))
	for _, k := range keys {
		if k == fibonacci.AlgoRecursive && n > fibonacci.RecursiveComparisonLimit {
			continue
		}
		calculators = append(calculators, registered[k])
	}
	return calculators
}
