package rangesum

import (
	"fmt"

	apperrors "github.com/agbru/rangesum/internal/errors"
)

// MaxChunks bounds the fan-out of a single reduction. Each chunk costs one
// goroutine and one slot in the result channel.
const MaxChunks = 1 << 20

// Partition splits r into exactly n contiguous chunks whose sizes differ by at
// most one element; the first Len()%n chunks carry the extra element. When n
// exceeds r.Len() the trailing chunks are empty, so the fan-out stays n.
func Partition(r Range, n int) ([]Chunk, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if n < 1 {
		return nil, apperrors.ValidationError{Field: "workers", Message: fmt.Sprintf("must be at least 1, got %d", n)}
	}
	if n > MaxChunks {
		return nil, apperrors.ValidationError{Field: "workers", Message: fmt.Sprintf("must be at most %d, got %d", MaxChunks, n)}
	}

	length := r.Len()
	q, rem := length/uint64(n), length%uint64(n)
	chunks := make([]Chunk, n)
	start := r.Start
	for i := range chunks {
		size := q
		if uint64(i) < rem {
			size++
		}
		chunks[i] = Chunk{Index: i, Start: start, End: start + size}
		start += size
	}
	return chunks, nil
}

// PartitionBySize splits r into chunks of size elements, the last one possibly
// shorter. An empty range yields a single empty chunk.
func PartitionBySize(r Range, size uint64) ([]Chunk, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if size < 1 {
		return nil, apperrors.ValidationError{Field: "chunk-size", Message: "must be at least 1"}
	}

	length := r.Len()
	count := length / size
	if length%size != 0 || length == 0 {
		count++
	}
	if count > MaxChunks {
		return nil, apperrors.ValidationError{
			Field:   "chunk-size",
			Message: fmt.Sprintf("%d produces %d chunks, more than the %d allowed", size, count, MaxChunks),
		}
	}

	chunks := make([]Chunk, count)
	start := r.Start
	for i := range chunks {
		end := r.End
		if r.End-start > size {
			end = start + size
		}
		chunks[i] = Chunk{Index: i, Start: start, End: end}
		start = end
	}
	return chunks, nil
}

// Verify checks that chunks form a disjoint, gap-free cover of r, indexed in
// order. The reducer refuses to dispatch a partition that fails this check.
func Verify(r Range, chunks []Chunk) error {
	if len(chunks) == 0 {
		return PartitionError{Index: -1, Reason: "no chunks"}
	}
	next := r.Start
	for i, c := range chunks {
		switch {
		case c.Index != i:
			return PartitionError{Index: i, Reason: fmt.Sprintf("carries index %d", c.Index)}
		case c.End < c.Start:
			return PartitionError{Index: i, Reason: "ends before it starts"}
		case c.Start < next:
			return PartitionError{Index: i, Reason: fmt.Sprintf("overlaps previous chunk at %d", c.Start)}
		case c.Start > next:
			return PartitionError{Index: i, Reason: fmt.Sprintf("leaves a gap [%d, %d)", next, c.Start)}
		}
		next = c.End
	}
	if next != r.End {
		return PartitionError{Index: len(chunks) - 1, Reason: fmt.Sprintf("cover ends at %d, range ends at %d", next, r.End)}
	}
	return nil
}
