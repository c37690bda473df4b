package rangesum

import (
	"context"
	"math/rand"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestPartition_CoverProperty checks that any partition is a disjoint,
// gap-free cover of its range with sizes differing by at most one.
func TestPartition_CoverProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("Partition covers the range exactly", prop.ForAll(
		func(start, length uint64, n int) bool {
			rng := Range{Start: start, End: start + length}
			chunks, err := Partition(rng, n)
			if err != nil {
				t.Logf("Partition(%v, %d): %v", rng, n, err)
				return false
			}
			if len(chunks) != n || Verify(rng, chunks) != nil {
				return false
			}
			lo, hi := chunks[0].Len(), chunks[0].Len()
			for _, c := range chunks {
				lo, hi = min(lo, c.Len()), max(hi, c.Len())
			}
			return hi-lo <= 1
		},
		gen.UInt64Range(0, 1<<40),
		gen.UInt64Range(0, 1<<20),
		gen.IntRange(1, 512),
	))

	properties.Property("PartitionBySize covers the range exactly", prop.ForAll(
		func(start, length, size uint64) bool {
			rng := Range{Start: start, End: start + length}
			chunks, err := PartitionBySize(rng, size)
			if err != nil {
				t.Logf("PartitionBySize(%v, %d): %v", rng, size, err)
				return false
			}
			for _, c := range chunks[:len(chunks)-1] {
				if c.Len() != size {
					return false
				}
			}
			return Verify(rng, chunks) == nil
		},
		gen.UInt64Range(0, 1<<40),
		gen.UInt64Range(0, 1<<16),
		gen.UInt64Range(1, 1<<12),
	))

	properties.TestingRun(t)
}

// TestStrategies_AgreeProperty checks both strategies against the closed
// form of the whole range for random ranges and worker counts.
func TestStrategies_AgreeProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	for _, s := range []Summer{IterativeSummer{}, ClosedFormSummer{}} {
		reducer := NewReducer(s)
		properties.Property(s.Name()+" matches M*(M-1)/2", prop.ForAll(
			func(m uint64, n int) bool {
				res, err := reducer.Reduce(context.Background(), Range{0, m}, Options{Workers: n})
				if err != nil {
					t.Logf("Reduce([0, %d), %d): %v", m, n, err)
					return false
				}
				var want uint64
				if m > 0 {
					want = m * (m - 1) / 2
				}
				return res.Sum == want
			},
			gen.UInt64Range(0, 200000),
			gen.IntRange(1, 64),
		))
	}

	properties.TestingRun(t)
}

// TestAggregator_OrderIndependenceProperty feeds the same partials in a
// random order and expects an identical sum.
func TestAggregator_OrderIndependenceProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("aggregation is invariant under permutation", prop.ForAll(
		func(length uint64, n int, seed int64) bool {
			rng := Range{0, length}
			chunks, err := Partition(rng, n)
			if err != nil {
				return false
			}
			partials := make([]PartialResult, len(chunks))
			for i, c := range chunks {
				sum, err := closedFormSum(c.Start, c.End)
				if err != nil {
					return false
				}
				partials[i] = PartialResult{Chunk: c, Sum: sum}
			}

			inOrder := NewAggregator(len(chunks))
			for _, p := range partials {
				if inOrder.Add(p) != nil {
					return false
				}
			}
			rand.New(rand.NewSource(seed)).Shuffle(len(partials), func(i, j int) {
				partials[i], partials[j] = partials[j], partials[i]
			})
			shuffled := NewAggregator(len(chunks))
			for _, p := range partials {
				if shuffled.Add(p) != nil {
					return false
				}
			}

			a, errA := inOrder.Result()
			b, errB := shuffled.Result()
			return errA == nil && errB == nil && a == b
		},
		gen.UInt64Range(0, 1<<24),
		gen.IntRange(1, 128),
		gen.Int64(),
	))

	properties.TestingRun(t)
}
