package fibonacci

import (
	"fmt"
	"sort"
	"sync"

	apperrors "github.com/agbru/fibconv/internal/errors"
)

// Registered algorithm names.
const (
	AlgoDoubling  = "doubling"
	AlgoIterative = "iterative"
	AlgoRecursive = "recursive"
)

// ErrUnknownAlgorithm is returned by CalculatorFactory.Get for unregistered names.
var ErrUnknownAlgorithm = apperrors.InvalidArgumentError{
	Op:     "factory",
	Arg:    "algorithm",
	Reason: "unknown algorithm",
}

// CalculatorFactory resolves calculators by name.
type CalculatorFactory interface {
	// Get returns the calculator registered under name.
	Get(name string) (Calculator, error)
	// List returns the registered names in sorted order.
	List() []string
	// GetAll returns a copy of the name → calculator map.
	GetAll() map[string]Calculator
}

// DefaultFactory is a concurrency-safe CalculatorFactory.
type DefaultFactory struct {
	mu          sync.RWMutex
	calculators map[string]Calculator
}

// NewDefaultFactory returns a factory holding the recursive, iterative and
// fast doubling calculators.
func NewDefaultFactory() *DefaultFactory {
	f := &DefaultFactory{calculators: make(map[string]Calculator)}
	f.mustRegister(AlgoDoubling, NewCalculator(&FastDoublingCalculator{}))
	f.mustRegister(AlgoIterative, NewCalculator(&IterativeCalculator{}))
	f.mustRegister(AlgoRecursive, NewCalculator(&RecursiveCalculator{}))
	return f
}

// Register adds a calculator under name. Registering a name twice is an error.
func (f *DefaultFactory) Register(name string, calc Calculator) error {
	if name == "" || calc == nil {
		return fmt.Errorf("register: name and calculator are required")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.calculators[name]; exists {
		return fmt.Errorf("register: algorithm %q already registered", name)
	}
	f.calculators[name] = calc
	return nil
}

func (f *DefaultFactory) mustRegister(name string, calc Calculator) {
	if err := f.Register(name, calc); err != nil {
		panic(err)
	}
}

// Get returns the calculator registered under name.
func (f *DefaultFactory) Get(name string) (Calculator, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	calc, ok := f.calculators[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownAlgorithm, name)
	}
	return calc, nil
}

// List returns the registered names in sorted order.
func (f *DefaultFactory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	names := make([]string, 0, len(f.calculators))
	for name := range f.calculators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetAll returns a copy of the registered calculators.
func (f *DefaultFactory) GetAll() map[string]Calculator {
	f.mu.RLock()
	defer f.mu.RUnlock()
	all := make(map[string]Calculator, len(f.calculators))
	for name, calc := range f.calculators {
		all[name] = calc
	}
	return all
}
