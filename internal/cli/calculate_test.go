package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/agbru/rangesum/internal/config"
	"github.com/agbru/rangesum/internal/orchestration"
	"github.com/agbru/rangesum/internal/rangesum"
)

type namedReducer string

func (n namedReducer) Name() string { return string(n) }

func (namedReducer) Reduce(context.Context, rangesum.Range, rangesum.Options) (rangesum.FinalResult, error) {
	return rangesum.FinalResult{}, nil
}

func TestPrintExecutionConfig(t *testing.T) {
	noColor(t)
	cfg := config.AppConfig{Workers: 3, Timeout: time.Minute}
	var buf bytes.Buffer
	PrintExecutionConfig(cfg, rangesum.Range{Start: 0, End: 30}, &buf)
	out := buf.String()
	assert.Contains(t, out, "Summing [0, 30) (30 elements)")
	assert.Contains(t, out, "3 workers, unbounded")

	buf.Reset()
	cfg.ChunkSize = 10
	cfg.MaxParallel = 2
	PrintExecutionConfig(cfg, rangesum.Range{Start: 0, End: 30}, &buf)
	assert.Contains(t, buf.String(), "chunks of 10 elements, at most 2 at once")
}

func TestPrintExecutionMode(t *testing.T) {
	noColor(t)
	tests := []struct {
		name     string
		reducers []orchestration.Reducer
		want     string
	}{
		{"none", nil, "no strategy selected"},
		{"single", []orchestration.Reducer{namedReducer("Iterative Loop")}, "single reduction with the Iterative Loop strategy"},
		{"compare", []orchestration.Reducer{namedReducer("a"), namedReducer("b")}, "parallel comparison of 2 strategies"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			PrintExecutionMode(tt.reducers, &buf)
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}
