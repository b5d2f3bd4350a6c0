// Package events provides progress notifications for a benchmark run.
package events

import "time"

// EventType represents the type of event
type EventType string

const (
	// EventBenchmarkStart is emitted before the first trial of a strategy
	EventBenchmarkStart EventType = "benchmark_start"
	// EventTrialComplete is emitted after each timed trial
	EventTrialComplete EventType = "trial_complete"
	// EventWorkerDone is emitted when a parallel worker terminates
	EventWorkerDone EventType = "worker_done"
	// EventBenchmarkComplete is emitted after all trials of a strategy
	EventBenchmarkComplete EventType = "benchmark_complete"
	// EventWinner is emitted once the results are ranked
	EventWinner EventType = "winner"
)

// Event represents a benchmark progress event
type Event struct {
	Type      EventType
	Timestamp time.Time
	Strategy  string
	Data      EventData
}

// EventData contains event-specific data
type EventData struct {
	Trial        int
	NumTests     int
	Seconds      float64
	TotalSeconds float64
	Chunk        int
	ChunkSize    int
	WithPayload  bool
}

// NewBenchmarkStartEvent creates a benchmark start event
func NewBenchmarkStartEvent(strategy string, numTests int) Event {
	return Event{
		Type:      EventBenchmarkStart,
		Timestamp: time.Now(),
		Strategy:  strategy,
		Data:      EventData{NumTests: numTests},
	}
}

// NewTrialCompleteEvent creates a trial complete event
func NewTrialCompleteEvent(strategy string, trial int, elapsed time.Duration) Event {
	return Event{
		Type:      EventTrialComplete,
		Timestamp: time.Now(),
		Strategy:  strategy,
		Data: EventData{
			Trial:   trial,
			Seconds: elapsed.Seconds(),
		},
	}
}

// NewWorkerDoneEvent creates a worker done event
func NewWorkerDoneEvent(strategy string, chunk, chunkSize int, withPayload bool) Event {
	return Event{
		Type:      EventWorkerDone,
		Timestamp: time.Now(),
		Strategy:  strategy,
		Data: EventData{
			Chunk:       chunk,
			ChunkSize:   chunkSize,
			WithPayload: withPayload,
		},
	}
}

// NewBenchmarkCompleteEvent creates a benchmark complete event
func NewBenchmarkCompleteEvent(strategy string, numTests int, average float64, total time.Duration) Event {
	return Event{
		Type:      EventBenchmarkComplete,
		Timestamp: time.Now(),
		Strategy:  strategy,
		Data: EventData{
			NumTests:     numTests,
			Seconds:      average,
			TotalSeconds: total.Seconds(),
		},
	}
}

// NewWinnerEvent creates a winner event
func NewWinnerEvent(strategy string, average float64) Event {
	return Event{
		Type:      EventWinner,
		Timestamp: time.Now(),
		Strategy:  strategy,
		Data:      EventData{Seconds: average},
	}
}
