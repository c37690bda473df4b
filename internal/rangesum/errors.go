package rangesum

import (
	"fmt"

	apperrors "github.com/agbru/rangesum/internal/errors"
)

// OverflowError reports a sum that does not fit in 64 bits. It unwraps to
// apperrors.ErrOverflow.
type OverflowError struct {
	// Operation is "chunk summation" or "aggregation".
	Operation string
}

func (e OverflowError) Error() string {
	return fmt.Sprintf("%s: %v", e.Operation, apperrors.ErrOverflow)
}

func (e OverflowError) Unwrap() error { return apperrors.ErrOverflow }

// ChunkError attributes a worker failure to its chunk.
type ChunkError struct {
	Chunk    Chunk
	Strategy string
	Cause    error
}

func (e ChunkError) Error() string {
	return fmt.Sprintf("chunk %s failed: %v", e.Chunk, e.Cause)
}

func (e ChunkError) Unwrap() error { return e.Cause }

// WorkerPanicError is a recovered worker panic.
type WorkerPanicError struct {
	Value any
	Stack []byte
}

func (e WorkerPanicError) Error() string {
	return fmt.Sprintf("worker panicked: %v", e.Value)
}

// MissingResultsError means the result channel closed before every chunk
// reported.
type MissingResultsError struct {
	Expected int
	Received int
	// Missing lists the indices of the chunks that never reported.
	Missing []int
}

func (e MissingResultsError) Error() string {
	return fmt.Sprintf("aggregation incomplete: received %d of %d partial results (missing chunks %v)",
		e.Received, e.Expected, e.Missing)
}

// UnexpectedChunkError is a partial result the aggregator cannot accept.
type UnexpectedChunkError struct {
	Index     int
	Duplicate bool
}

func (e UnexpectedChunkError) Error() string {
	if e.Duplicate {
		return fmt.Sprintf("duplicate partial result for chunk #%d", e.Index)
	}
	return fmt.Sprintf("partial result for unknown chunk #%d", e.Index)
}

// PartitionError reports a partition that is not a disjoint cover.
type PartitionError struct {
	Index  int
	Reason string
}

func (e PartitionError) Error() string {
	if e.Index < 0 {
		return "invalid partition: " + e.Reason
	}
	return fmt.Sprintf("invalid partition: chunk #%d %s", e.Index, e.Reason)
}
