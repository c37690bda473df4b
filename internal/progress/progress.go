// Package progress defines the progress messages exchanged between running
// reductions and whatever displays them.
package progress

// ProgressUpdate is one progress sample for the reduction at StrategyIndex.
type ProgressUpdate struct {
	StrategyIndex int
	Value         float64 // 0.0 to 1.0
}

// ProgressCallback receives a progress fraction. Implementations must be safe
// for concurrent use: every worker of a reduction may call it.
type ProgressCallback func(fraction float64)

// ChannelCallback returns a callback that forwards samples to ch without ever
// blocking the caller. Samples are dropped when ch is full, except the final
// 1.0 which is delivered with a blocking send so the display can complete.
// A nil channel yields a no-op callback.
func ChannelCallback(ch chan<- ProgressUpdate, index int) ProgressCallback {
	if ch == nil {
		return func(float64) {}
	}
	return func(fraction float64) {
		update := ProgressUpdate{StrategyIndex: index, Value: fraction}
		if fraction >= 1.0 {
			ch <- update
			return
		}
		select {
		case ch <- update:
		default:
		}
	}
}
