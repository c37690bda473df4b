package orchestration

import (
	"github.com/agbru/rangesum/internal/rangesum"
)

// GetReducersToRun builds one reducer per selected strategy. "all" selects
// every registered strategy in sorted key order; an unknown key selects none.
func GetReducersToRun(algo string, factory rangesum.SummerFactory, opts ...rangesum.ReducerOption) []Reducer {
	var keys []string
	if algo == rangesum.StrategyAll {
		keys = factory.List()
	} else {
		keys = []string{algo}
	}

	reducers := make([]Reducer, 0, len(keys))
	for _, k := range keys {
		if s, err := factory.Get(k); err == nil {
			reducers = append(reducers, rangesum.NewReducer(s, opts...))
		}
	}
	return reducers
}
