// Package fibonacci computes Fibonacci numbers.
//
// Recursive and Iterative work on the uint64 domain (0 <= n <= 93) and reject
// other indices with invalid-argument errors. The Calculator implementations
// work on big.Int, support cancellation and report progress, and are resolved
// by name through a CalculatorFactory. The CLI, REPL and TUI all go through
// the calculators; Recursive and Iterative are the direct-call API.
package fibonacci
