package rangesum

import (
	"context"
	"math/big"
	"math/bits"
)

// ProgressFunc receives the number of elements consumed since the previous
// call. It is invoked from worker goroutines.
type ProgressFunc func(elements uint64)

// Summer computes the sum of one chunk. Implementations hold no mutable state
// and are shared by every worker of a reduction.
type Summer interface {
	// Name is the human-readable strategy name.
	Name() string
	// SumChunk returns the exact sum of c or an error; it must honor ctx.
	SumChunk(ctx context.Context, c Chunk, report ProgressFunc) (uint64, error)
}

// cancellationCheckInterval is how many elements the iterative strategy adds
// between context polls and progress reports.
const cancellationCheckInterval = 1 << 16

// IterativeSummer adds every element of the chunk with carry detection.
type IterativeSummer struct{}

// Name returns the strategy name.
func (IterativeSummer) Name() string { return "Iterative Loop" }

// SumChunk walks the chunk element by element.
func (IterativeSummer) SumChunk(ctx context.Context, c Chunk, report ProgressFunc) (uint64, error) {
	var sum, carry, pending uint64
	for v := c.Start; v < c.End; v++ {
		sum, carry = bits.Add64(sum, v, 0)
		if carry != 0 {
			return 0, OverflowError{Operation: "chunk summation"}
		}
		pending++
		if pending == cancellationCheckInterval {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
			if report != nil {
				report(pending)
			}
			pending = 0
		}
	}
	if report != nil && pending > 0 {
		report(pending)
	}
	return sum, nil
}

// ClosedFormSummer evaluates (first + last) * count / 2 in arbitrary
// precision and rejects results wider than 64 bits.
type ClosedFormSummer struct{}

// Name returns the strategy name.
func (ClosedFormSummer) Name() string { return "Closed Form" }

// SumChunk computes the chunk sum in constant time.
func (ClosedFormSummer) SumChunk(ctx context.Context, c Chunk, report ProgressFunc) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	sum, err := closedFormSum(c.Start, c.End)
	if err != nil {
		return 0, err
	}
	if report != nil && c.Len() > 0 {
		report(c.Len())
	}
	return sum, nil
}

// ExpectedSum is the closed-form sum of the whole range, used to verify a
// reduction independently of any partition.
func ExpectedSum(r Range) (uint64, error) {
	if err := r.Validate(); err != nil {
		return 0, err
	}
	return closedFormSum(r.Start, r.End)
}

func closedFormSum(start, end uint64) (uint64, error) {
	if end <= start {
		return 0, nil
	}
	s := new(big.Int).SetUint64(start)
	s.Add(s, new(big.Int).SetUint64(end-1))
	s.Mul(s, new(big.Int).SetUint64(end-start))
	// One of (first+last) and count is always even, so the shift is exact.
	s.Rsh(s, 1)
	if !s.IsUint64() {
		return 0, OverflowError{Operation: "chunk summation"}
	}
	return s.Uint64(), nil
}
