package metrics

import "time"

// Recorder receives reduction events. Implementations must be safe for
// concurrent use; worker goroutines call it directly.
type Recorder interface {
	WorkerStarted(strategy string)
	WorkerFinished(strategy string)
	ObserveChunk(strategy string, elements uint64, d time.Duration, err error)
	ObserveReduction(strategy string, d time.Duration, err error)
}

// NopRecorder drops every event.
type NopRecorder struct{}

func (NopRecorder) WorkerStarted(string)                              {}
func (NopRecorder) WorkerFinished(string)                             {}
func (NopRecorder) ObserveChunk(string, uint64, time.Duration, error) {}
func (NopRecorder) ObserveReduction(string, time.Duration, error)     {}
