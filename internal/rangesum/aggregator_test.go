package rangesum

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/agbru/rangesum/internal/errors"
)

func demoPartials() []PartialResult {
	return []PartialResult{
		{Chunk: Chunk{0, 0, 10}, Sum: 45},
		{Chunk: Chunk{1, 10, 20}, Sum: 145},
		{Chunk: Chunk{2, 20, 30}, Sum: 245},
	}
}

func TestAggregator_Complete(t *testing.T) {
	t.Parallel()
	agg := NewAggregator(3)
	partials := demoPartials()
	for _, i := range []int{2, 0, 1} {
		require.NoError(t, agg.Add(partials[i]))
	}

	sum, err := agg.Result()
	require.NoError(t, err)
	assert.Equal(t, uint64(435), sum)
	assert.Equal(t, 3, agg.Received())

	got := agg.Partials()
	require.Len(t, got, 3)
	assert.Equal(t, 2, got[0].Chunk.Index, "partials keep arrival order")
	assert.Equal(t, 0, got[1].Chunk.Index)
}

func TestAggregator_MissingResults(t *testing.T) {
	t.Parallel()
	agg := NewAggregator(3)
	require.NoError(t, agg.Add(demoPartials()[1]))

	_, err := agg.Result()
	var missing MissingResultsError
	require.True(t, errors.As(err, &missing), "got %v", err)
	assert.Equal(t, 3, missing.Expected)
	assert.Equal(t, 1, missing.Received)
	assert.Equal(t, []int{0, 2}, missing.Missing)
}

func TestAggregator_RejectsUnexpectedChunks(t *testing.T) {
	t.Parallel()
	agg := NewAggregator(2)
	first := PartialResult{Chunk: Chunk{Index: 0, Start: 0, End: 3}, Sum: 3}
	require.NoError(t, agg.Add(first))

	var unexpected UnexpectedChunkError
	err := agg.Add(first)
	require.True(t, errors.As(err, &unexpected))
	assert.True(t, unexpected.Duplicate)

	err = agg.Add(PartialResult{Chunk: Chunk{Index: 5}})
	require.True(t, errors.As(err, &unexpected))
	assert.False(t, unexpected.Duplicate)
	assert.Equal(t, 5, unexpected.Index)

	assert.Equal(t, 1, agg.Received(), "rejected results are not counted")
}

func TestAggregator_Overflow(t *testing.T) {
	t.Parallel()
	agg := NewAggregator(2)
	require.NoError(t, agg.Add(PartialResult{Chunk: Chunk{Index: 0}, Sum: 1 << 63}))

	err := agg.Add(PartialResult{Chunk: Chunk{Index: 1}, Sum: 1 << 63})
	assert.True(t, errors.Is(err, apperrors.ErrOverflow))
	var oerr OverflowError
	require.True(t, errors.As(err, &oerr))
	assert.Equal(t, "aggregation", oerr.Operation)

	var cerr ChunkError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, 1, cerr.Chunk.Index, "the partial that overflowed is named")
	assert.Equal(t, 1, agg.Received())
}

func TestAggregator_Empty(t *testing.T) {
	t.Parallel()
	sum, err := NewAggregator(0).Result()
	require.NoError(t, err)
	assert.Zero(t, sum)
}
