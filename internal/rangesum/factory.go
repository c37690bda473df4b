package rangesum

import (
	"fmt"
	"sort"
	"sync"
)

// Strategy keys accepted by --algo.
const (
	StrategyLoop    = "loop"
	StrategyFormula = "formula"
	StrategyAll     = "all"
)

// SummerFactory is a registry of summation strategies keyed by short name.
type SummerFactory interface {
	Register(key string, s Summer) error
	Get(key string) (Summer, error)
	MustGet(key string) Summer
	// List returns the registered keys in sorted order.
	List() []string
	GetAll() map[string]Summer
}

// DefaultFactory is the thread-safe SummerFactory used by the application.
type DefaultFactory struct {
	mu      sync.RWMutex
	summers map[string]Summer
}

var _ SummerFactory = (*DefaultFactory)(nil)

// NewDefaultFactory returns a factory holding the built-in strategies.
func NewDefaultFactory() *DefaultFactory {
	f := &DefaultFactory{summers: make(map[string]Summer)}
	f.summers[StrategyLoop] = IterativeSummer{}
	f.summers[StrategyFormula] = ClosedFormSummer{}
	return f
}

var (
	globalFactory     *DefaultFactory
	globalFactoryOnce sync.Once
)

// GlobalFactory returns the process-wide factory.
func GlobalFactory() *DefaultFactory {
	globalFactoryOnce.Do(func() { globalFactory = NewDefaultFactory() })
	return globalFactory
}

// Register adds a strategy. Keys must be unique and may not be "all".
func (f *DefaultFactory) Register(key string, s Summer) error {
	if key == "" || key == StrategyAll {
		return fmt.Errorf("invalid strategy key %q", key)
	}
	if s == nil {
		return fmt.Errorf("strategy %q: nil summer", key)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.summers[key]; exists {
		return fmt.Errorf("strategy %q already registered", key)
	}
	f.summers[key] = s
	return nil
}

// Get returns the strategy registered under key.
func (f *DefaultFactory) Get(key string) (Summer, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	s, ok := f.summers[key]
	if !ok {
		return nil, fmt.Errorf("unknown strategy %q", key)
	}
	return s, nil
}

// MustGet is Get for keys known to exist; it panics otherwise.
func (f *DefaultFactory) MustGet(key string) Summer {
	s, err := f.Get(key)
	if err != nil {
		panic(err)
	}
	return s
}

// List returns the registered keys, sorted.
func (f *DefaultFactory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	keys := make([]string, 0, len(f.summers))
	for k := range f.summers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GetAll returns a copy of the registry.
func (f *DefaultFactory) GetAll() map[string]Summer {
	f.mu.RLock()
	defer f.mu.RUnlock()
	all := make(map[string]Summer, len(f.summers))
	for k, v := range f.summers {
		all[k] = v
	}
	return all
}
