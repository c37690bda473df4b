package metrics

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/agbru/rangesum/internal/errors"
)

func TestPrometheusRecorder_WorkerGauge(t *testing.T) {
	t.Parallel()
	r := NewPrometheusRecorder()

	r.WorkerStarted("loop")
	r.WorkerStarted("loop")
	assert.Equal(t, 2.0, testutil.ToFloat64(r.activeWorkers.WithLabelValues("loop")))

	r.WorkerFinished("loop")
	assert.Equal(t, 1.0, testutil.ToFloat64(r.activeWorkers.WithLabelValues("loop")))
}

func TestPrometheusRecorder_ObserveChunk(t *testing.T) {
	t.Parallel()
	r := NewPrometheusRecorder()

	r.ObserveChunk("loop", 10, time.Millisecond, nil)
	r.ObserveChunk("loop", 10, time.Millisecond, nil)
	r.ObserveChunk("loop", 10, time.Millisecond, fmt.Errorf("chunk #2: %w", apperrors.ErrOverflow))

	assert.Equal(t, 2.0, testutil.ToFloat64(r.chunks.WithLabelValues("loop", StatusSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.chunks.WithLabelValues("loop", StatusOverflow)))
	assert.Equal(t, 20.0, testutil.ToFloat64(r.elements.WithLabelValues("loop")),
		"only successful chunks count towards elements")
}

func TestPrometheusRecorder_WriteTextfile(t *testing.T) {
	t.Parallel()
	r := NewPrometheusRecorder()
	r.ObserveReduction("formula", 5*time.Millisecond, nil)

	path := filepath.Join(t.TempDir(), "rangesum.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	body := string(data)
	for _, want := range []string{
		`rangesum_reductions_total{status="success",strategy="formula"} 1`,
		"rangesum_reduction_duration_seconds_bucket",
		"go_goroutines",
	} {
		assert.True(t, strings.Contains(body, want), "textfile should contain %q", want)
	}
}

func TestStatus(t *testing.T) {
	t.Parallel()
	tests := []struct {
		err  error
		want string
	}{
		{nil, StatusSuccess},
		{apperrors.ErrOverflow, StatusOverflow},
		{context.Canceled, StatusCanceled},
		{context.DeadlineExceeded, StatusCanceled},
		{errors.New("boom"), StatusError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Status(tt.err), "Status(%v)", tt.err)
	}
}

func TestReadResourceUsage(t *testing.T) {
	t.Parallel()
	usage, err := ReadResourceUsage()
	require.NoError(t, err)
	if !usage.Supported {
		t.Skip("getrusage not available on this platform")
	}
	assert.Greater(t, usage.MaxRSS, uint64(0))
	assert.GreaterOrEqual(t, usage.CPUTime(), usage.UserTime)
}
