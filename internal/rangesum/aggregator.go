package rangesum

import "math/bits"

// Aggregator folds partial results into the final sum. It is not safe for
// concurrent use: exactly one goroutine owns it.
type Aggregator struct {
	expected int
	seen     []bool
	sum      uint64
	partials []PartialResult
}

// NewAggregator expects one partial result per chunk index in [0, expected).
func NewAggregator(expected int) *Aggregator {
	if expected < 0 {
		expected = 0
	}
	return &Aggregator{
		expected: expected,
		seen:     make([]bool, expected),
		partials: make([]PartialResult, 0, expected),
	}
}

// Add accepts one partial result. A rejected result leaves the aggregator
// unchanged. An overflow is reported against the chunk whose partial sum
// pushed the total past 64 bits.
func (a *Aggregator) Add(p PartialResult) error {
	idx := p.Chunk.Index
	if idx < 0 || idx >= a.expected {
		return UnexpectedChunkError{Index: idx}
	}
	if a.seen[idx] {
		return UnexpectedChunkError{Index: idx, Duplicate: true}
	}
	sum, carry := bits.Add64(a.sum, p.Sum, 0)
	if carry != 0 {
		return ChunkError{Chunk: p.Chunk, Cause: OverflowError{Operation: "aggregation"}}
	}
	a.sum = sum
	a.seen[idx] = true
	a.partials = append(a.partials, p)
	return nil
}

// Received is the number of accepted partial results.
func (a *Aggregator) Received() int { return len(a.partials) }

// Partials returns the accepted results in arrival order.
func (a *Aggregator) Partials() []PartialResult { return a.partials }

// Result returns the final sum once every chunk has reported.
func (a *Aggregator) Result() (uint64, error) {
	if len(a.partials) != a.expected {
		missing := make([]int, 0, a.expected-len(a.partials))
		for i, ok := range a.seen {
			if !ok {
				missing = append(missing, i)
			}
		}
		return 0, MissingResultsError{Expected: a.expected, Received: len(a.partials), Missing: missing}
	}
	return a.sum, nil
}
