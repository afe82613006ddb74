// Package orchestration coordinates concurrent execution of Fibonacci calculations
// and aggregates results for comparison. It decouples business logic from
// presentation via the ProgressReporter, ResultPresenter and ErrorHandler
// interfaces.
package orchestration
