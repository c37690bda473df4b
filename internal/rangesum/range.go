package rangesum

import (
	"fmt"
	"time"

	apperrors "github.com/agbru/rangesum/internal/errors"
)

// Range is the half-open interval [Start, End) of values to sum.
type Range struct {
	Start uint64
	End   uint64
}

// NewRange validates and returns [start, end).
func NewRange(start, end uint64) (Range, error) {
	r := Range{Start: start, End: end}
	if err := r.Validate(); err != nil {
		return Range{}, err
	}
	return r, nil
}

// Validate rejects ranges whose end lies before their start.
func (r Range) Validate() error {
	if r.End < r.Start {
		return apperrors.ValidationError{
			Field:   "range",
			Message: fmt.Sprintf("end %d is lower than start %d", r.End, r.Start),
		}
	}
	return nil
}

// Len is the number of elements in the range.
func (r Range) Len() uint64 { return r.End - r.Start }

func (r Range) String() string { return fmt.Sprintf("[%d, %d)", r.Start, r.End) }

// Chunk is the sub-range owned by exactly one worker.
type Chunk struct {
	Index int
	Start uint64
	End   uint64
}

// Len is the number of elements in the chunk.
func (c Chunk) Len() uint64 { return c.End - c.Start }

// Range returns the chunk bounds as a Range.
func (c Chunk) Range() Range { return Range{Start: c.Start, End: c.End} }

func (c Chunk) String() string { return fmt.Sprintf("#%d [%d, %d)", c.Index, c.Start, c.End) }

// PartialResult is the sum one worker produced for its chunk.
type PartialResult struct {
	Chunk    Chunk
	Sum      uint64
	Duration time.Duration
}

// FinalResult is the outcome of a complete reduction.
type FinalResult struct {
	Range Range
	Sum   uint64
	// Chunks is the partition that was dispatched, ordered by index.
	Chunks []Chunk
	// Partials holds every partial result in arrival order.
	Partials []PartialResult
	Duration time.Duration
}
