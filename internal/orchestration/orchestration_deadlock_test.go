package orchestration

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/agbru/rangesum/internal/progress"
	"github.com/agbru/rangesum/internal/rangesum"
)

// behaviorReducer simulates various reducer behaviors for deadlock testing.
type behaviorReducer struct {
	name     string
	behavior string // "instant", "slow", "error", "progress_flood"
	delay    time.Duration
}

func (m *behaviorReducer) Name() string { return m.name }

func (m *behaviorReducer) Reduce(ctx context.Context, _ rangesum.Range, opts rangesum.Options) (rangesum.FinalResult, error) {
	switch m.behavior {
	case "slow":
		for i := 0; i < 100; i++ {
			if err := ctx.Err(); err != nil {
				return rangesum.FinalResult{}, err
			}
			opts.Progress(float64(i) / 100.0)
			time.Sleep(m.delay)
		}
	case "error":
		return rangesum.FinalResult{}, fmt.Errorf("simulated error")
	case "progress_flood":
		for i := 0; i < 10000; i++ {
			opts.Progress(float64(i) / 10000.0)
		}
	}
	opts.Progress(1.0)
	return rangesum.FinalResult{Sum: 1}, nil
}

// slowProgressReporter drains the channel with a delay per update.
type slowProgressReporter struct{}

func (slowProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	for range progressChan {
		time.Sleep(10 * time.Microsecond)
	}
}

// TestOrchestrationNoDeadlock_MixedBehaviors verifies that ExecuteReductions
// completes under various reducer behavior combinations.
func TestOrchestrationNoDeadlock_MixedBehaviors(t *testing.T) {
	testCases := []struct {
		name     string
		reducers []Reducer
	}{
		{"all_instant", []Reducer{
			&behaviorReducer{name: "r1", behavior: "instant"},
			&behaviorReducer{name: "r2", behavior: "instant"},
			&behaviorReducer{name: "r3", behavior: "instant"},
		}},
		{"mixed_instant_and_slow", []Reducer{
			&behaviorReducer{name: "fast", behavior: "instant"},
			&behaviorReducer{name: "slow", behavior: "slow", delay: time.Millisecond},
		}},
		{"mixed_with_errors", []Reducer{
			&behaviorReducer{name: "ok", behavior: "instant"},
			&behaviorReducer{name: "err", behavior: "error"},
		}},
		{"progress_flood", []Reducer{
			&behaviorReducer{name: "flood1", behavior: "progress_flood"},
			&behaviorReducer{name: "flood2", behavior: "progress_flood"},
		}},
		{"single_reducer", []Reducer{
			&behaviorReducer{name: "solo", behavior: "instant"},
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			done := make(chan struct{})
			go func() {
				defer close(done)
				ExecuteReductions(ctx, tc.reducers, rangesum.Range{}, rangesum.Options{}, nil, slowProgressReporter{}, io.Discard)
			}()

			select {
			case <-done:
			case <-time.After(10 * time.Second):
				t.Fatal("DEADLOCK: ExecuteReductions did not complete within timeout")
			}
		})
	}
}

// TestOrchestrationNoDeadlock_ContextCancellation verifies that cancelling
// the context during execution does not cause a deadlock.
func TestOrchestrationNoDeadlock_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	reducers := []Reducer{
		&behaviorReducer{name: "slow1", behavior: "slow", delay: 100 * time.Millisecond},
		&behaviorReducer{name: "slow2", behavior: "slow", delay: 100 * time.Millisecond},
	}

	done := make(chan []ReductionResult, 1)
	go func() {
		done <- ExecuteReductions(ctx, reducers, rangesum.Range{}, rangesum.Options{}, nil, NullProgressReporter{}, io.Discard)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case results := <-done:
		for _, r := range results {
			if r.Err == nil {
				t.Errorf("%s should report cancellation", r.Name)
			}
		}
	case <-time.After(5 * time.Second):
		t.Fatal("DEADLOCK after context cancellation")
	}
}
