package crew

import (
	"log"
	"sync/atomic"
	"time"

	"github.com/planforge/planforge/pkg/models"
)

// EventType identifies what happened during a crew run.
type EventType string

const (
	// EventRunStarted fires once when Kickoff begins.
	EventRunStarted EventType = "run_started"
	// EventTaskStarted fires when a task begins executing.
	EventTaskStarted EventType = "task_started"
	// EventTaskCompleted fires when a task finishes successfully.
	EventTaskCompleted EventType = "task_completed"
	// EventTaskFailed fires when a task fails.
	EventTaskFailed EventType = "task_failed"
	// EventOutput carries a chunk of model output for verbose display.
	EventOutput EventType = "output"
	// EventRunCompleted fires once when all tasks are done.
	EventRunCompleted EventType = "run_completed"
	// EventRunStopped fires when a stop signal aborts the run.
	EventRunStopped EventType = "run_stopped"
)

// Event is a single observable occurrence during a crew run.
type Event struct {
	// Type identifies the kind of event.
	Type EventType
	// Task is the display name of the task involved, if any.
	Task string
	// Agent is the role of the agent involved, if any.
	Agent string
	// Content carries model output or an error description.
	Content string
	// Usage is the cumulative token usage at the time of the event.
	Usage models.Usage
	// Time is when the event occurred.
	Time time.Time
}

// EventEmitter delivers crew events to a subscriber (CLI printer or TUI).
// It is thread-safe; if the subscriber cannot keep up, events are dropped
// rather than stalling the run.
type EventEmitter struct {
	events       chan Event
	droppedCount atomic.Uint64
}

// NewEventEmitter creates an EventEmitter with the given buffer size.
func NewEventEmitter(bufferSize int) *EventEmitter {
	return &EventEmitter{
		events: make(chan Event, bufferSize),
	}
}

// Emit sends an event to the events channel. If the channel is full, it
// retries briefly before dropping the event.
func (e *EventEmitter) Emit(event Event) {
	if event.Time.IsZero() {
		event.Time = time.Now()
	}

	select {
	case e.events <- event:
		return
	default:
	}

	// Channel full: give the receiver a moment to drain before dropping.
	select {
	case e.events <- event:
		return
	case <-time.After(100 * time.Millisecond):
		count := e.droppedCount.Add(1)
		if count%10 == 1 { // Log every 10th drop to avoid spam
			log.Printf("[crew] WARNING: event channel full, dropped event (total dropped: %d): type=%s", count, event.Type)
		}
	}
}

// DroppedCount returns the total number of events that have been dropped.
func (e *EventEmitter) DroppedCount() uint64 {
	return e.droppedCount.Load()
}

// Events returns a read-only channel of events for subscribers.
func (e *EventEmitter) Events() <-chan Event {
	return e.events
}

// Close closes the events channel. Call only after the run has finished.
func (e *EventEmitter) Close() {
	close(e.events)
}
