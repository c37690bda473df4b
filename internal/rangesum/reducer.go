package rangesum

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/rangesum/internal/errors"
	"github.com/agbru/rangesum/internal/logging"
	"github.com/agbru/rangesum/internal/metrics"
	"github.com/agbru/rangesum/internal/progress"
)

const tracerName = "github.com/agbru/rangesum/internal/rangesum"

// Options controls a single reduction.
type Options struct {
	// Workers is the number of chunks, and therefore of workers. Ignored
	// when ChunkSize is set.
	Workers int
	// ChunkSize switches to fixed-size partitioning.
	ChunkSize uint64
	// MaxParallel bounds how many workers run at once; 0 means all of them.
	MaxParallel int
	// Progress receives the consumed fraction of the range.
	Progress progress.ProgressCallback
	// OnPartial is called from the aggregating goroutine, in arrival order,
	// for every accepted partial result.
	OnPartial func(PartialResult)
}

// Reducer runs one Summer over a partitioned range with one goroutine per
// chunk and folds the partial sums in a single collector.
type Reducer struct {
	summer   Summer
	logger   logging.Logger
	recorder metrics.Recorder
	tracer   trace.Tracer
}

// ReducerOption configures a Reducer.
type ReducerOption func(*Reducer)

// WithLogger sets the logger used for dispatch and failure messages.
func WithLogger(l logging.Logger) ReducerOption {
	return func(r *Reducer) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(rec metrics.Recorder) ReducerOption {
	return func(r *Reducer) {
		if rec != nil {
			r.recorder = rec
		}
	}
}

// WithTracer overrides the tracer taken from the global otel provider.
func WithTracer(t trace.Tracer) ReducerOption {
	return func(r *Reducer) {
		if t != nil {
			r.tracer = t
		}
	}
}

// NewReducer returns a reducer for s.
func NewReducer(s Summer, opts ...ReducerOption) *Reducer {
	r := &Reducer{
		summer:   s,
		logger:   logging.NopLogger{},
		recorder: metrics.NopRecorder{},
		tracer:   otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Name returns the strategy name of the underlying summer.
func (r *Reducer) Name() string { return r.summer.Name() }

// Reduce computes the exact sum of rng.
//
// The first failing worker cancels the others. Reduce does not return before
// every worker goroutine has exited, on success or failure.
func (r *Reducer) Reduce(ctx context.Context, rng Range, opts Options) (res FinalResult, err error) {
	start := time.Now()
	defer func() {
		r.recorder.ObserveReduction(r.summer.Name(), time.Since(start), err)
	}()

	chunks, err := r.partition(rng, opts)
	if err != nil {
		return FinalResult{}, err
	}

	ctx, span := r.tracer.Start(ctx, "rangesum.Reduce", trace.WithAttributes(
		attribute.String("rangesum.strategy", r.summer.Name()),
		attribute.String("rangesum.range", rng.String()),
		attribute.Int("rangesum.chunks", len(chunks)),
		attribute.Int("rangesum.max_parallel", opts.MaxParallel),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	r.logger.Debug("dispatching chunks",
		logging.String("strategy", r.summer.Name()),
		logging.String("range", rng.String()),
		logging.Int("chunks", len(chunks)),
		logging.Int("max_parallel", opts.MaxParallel),
	)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	if opts.MaxParallel > 0 {
		g.SetLimit(opts.MaxParallel)
	}

	tracker := newProgressTracker(rng.Len(), opts.Progress)
	results := make(chan PartialResult, len(chunks))

	// The dispatcher owns the channel: it closes it once every worker has
	// returned, which is what ends the collection loop below.
	var groupErr error
	go func() {
		for _, c := range chunks {
			g.Go(func() error {
				return r.runWorker(gctx, c, tracker, results)
			})
		}
		groupErr = g.Wait()
		close(results)
	}()

	agg := NewAggregator(len(chunks))
	var aggErr error
	for p := range results {
		if aggErr != nil {
			continue
		}
		if addErr := agg.Add(p); addErr != nil {
			var cerr ChunkError
			if errors.As(addErr, &cerr) {
				cerr.Strategy = r.summer.Name()
				addErr = cerr
			}
			aggErr = addErr
			cancel()
			continue
		}
		if opts.OnPartial != nil {
			opts.OnPartial(p)
		}
	}

	// groupErr is safe to read: the channel close happens after the write.
	switch {
	case aggErr != nil:
		return FinalResult{}, aggErr
	case groupErr != nil:
		return FinalResult{}, groupErr
	}
	sum, err := agg.Result()
	if err != nil {
		return FinalResult{}, err
	}
	tracker.finish()

	span.SetAttributes(attribute.String("rangesum.sum", fmt.Sprint(sum)))
	return FinalResult{
		Range:    rng,
		Sum:      sum,
		Chunks:   chunks,
		Partials: agg.Partials(),
		Duration: time.Since(start),
	}, nil
}

func (r *Reducer) partition(rng Range, opts Options) ([]Chunk, error) {
	var (
		chunks []Chunk
		err    error
	)
	if opts.ChunkSize > 0 {
		chunks, err = PartitionBySize(rng, opts.ChunkSize)
	} else {
		chunks, err = Partition(rng, opts.Workers)
	}
	if err != nil {
		return nil, err
	}
	if err := Verify(rng, chunks); err != nil {
		return nil, err
	}
	return chunks, nil
}

// runWorker sums one chunk and publishes exactly one PartialResult on
// success. Context errors are returned as is so the group reports the
// cancellation cause rather than a chunk failure.
func (r *Reducer) runWorker(ctx context.Context, c Chunk, tracker *progressTracker, out chan<- PartialResult) (err error) {
	strategy := r.summer.Name()
	ctx, span := r.tracer.Start(ctx, "rangesum.SumChunk", trace.WithAttributes(
		attribute.Int("rangesum.chunk.index", c.Index),
		attribute.Int64("rangesum.chunk.len", int64(c.Len())),
	))
	r.recorder.WorkerStarted(strategy)
	started := time.Now()

	defer func() {
		if rec := recover(); rec != nil {
			err = ChunkError{
				Chunk:    c,
				Strategy: strategy,
				Cause:    WorkerPanicError{Value: rec, Stack: debug.Stack()},
			}
		}
		r.recorder.WorkerFinished(strategy)
		r.recorder.ObserveChunk(strategy, c.Len(), time.Since(started), err)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			if !apperrors.IsContextError(err) {
				r.logger.Error("chunk failed", err, logging.String("chunk", c.String()), logging.String("strategy", strategy))
			}
		}
		span.End()
	}()

	if err := ctx.Err(); err != nil {
		return err
	}
	sum, err := r.summer.SumChunk(ctx, c, tracker.add)
	if err != nil {
		if ctx.Err() != nil && apperrors.IsContextError(err) {
			return err
		}
		return ChunkError{Chunk: c, Strategy: strategy, Cause: err}
	}

	p := PartialResult{Chunk: c, Sum: sum, Duration: time.Since(started)}
	r.logger.Debug("chunk done",
		logging.String("chunk", c.String()),
		logging.Uint64("sum", sum),
		logging.String("duration", p.Duration.String()),
	)
	// The channel holds one slot per chunk, so this never blocks.
	out <- p
	return nil
}

// progressTracker turns per-worker element counts into a range-wide fraction.
type progressTracker struct {
	total uint64
	done  atomic.Uint64
	cb    progress.ProgressCallback
}

func newProgressTracker(total uint64, cb progress.ProgressCallback) *progressTracker {
	return &progressTracker{total: total, cb: cb}
}

func (t *progressTracker) add(elements uint64) {
	if t.cb == nil || t.total == 0 {
		return
	}
	done := t.done.Add(elements)
	fraction := float64(done) / float64(t.total)
	// 1.0 is reserved for finish, which only runs on success.
	if fraction < 1.0 {
		t.cb(fraction)
	}
}

func (t *progressTracker) finish() {
	if t.cb != nil {
		t.cb(1.0)
	}
}

// Sum reduces [start, end) with the iterative strategy and n workers.
func Sum(ctx context.Context, start, end uint64, n int) (uint64, error) {
	rng, err := NewRange(start, end)
	if err != nil {
		return 0, err
	}
	res, err := NewReducer(IterativeSummer{}).Reduce(ctx, rng, Options{Workers: n})
	if err != nil {
		return 0, err
	}
	return res.Sum, nil
}
