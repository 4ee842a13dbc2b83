// Package models defines the shared types that flow between the crew
// orchestrator, the metrics store, and the TUI.
package models

import "time"

// RunStatus represents the current state of a crew run.
type RunStatus string

const (
	// RunPending indicates the run has been created but not started.
	RunPending RunStatus = "pending"
	// RunRunning indicates the crew is executing tasks.
	RunRunning RunStatus = "running"
	// RunCompleted indicates all tasks finished successfully.
	RunCompleted RunStatus = "completed"
	// RunFailed indicates a task failed and the run was aborted.
	RunFailed RunStatus = "failed"
	// RunStopped indicates the run was aborted by a stop signal.
	RunStopped RunStatus = "stopped"
)

// Valid returns true if the status is a known value.
func (s RunStatus) Valid() bool {
	switch s {
	case RunPending, RunRunning, RunCompleted, RunFailed, RunStopped:
		return true
	default:
		return false
	}
}

// Terminal returns true if the status is a final state.
func (s RunStatus) Terminal() bool {
	switch s {
	case RunCompleted, RunFailed, RunStopped:
		return true
	default:
		return false
	}
}

// TaskState represents the state of a single task within a run.
type TaskState string

const (
	// TaskPending indicates the task has not started.
	TaskPending TaskState = "pending"
	// TaskRunning indicates the task is executing.
	TaskRunning TaskState = "running"
	// TaskDone indicates the task completed successfully.
	TaskDone TaskState = "done"
	// TaskFailed indicates the task failed.
	TaskFailed TaskState = "failed"
	// TaskSkipped indicates the task never ran because the run aborted.
	TaskSkipped TaskState = "skipped"
)

// Valid returns true if the state is a known value.
func (s TaskState) Valid() bool {
	switch s {
	case TaskPending, TaskRunning, TaskDone, TaskFailed, TaskSkipped:
		return true
	default:
		return false
	}
}

// TaskResult holds the outcome of a single executed crew task.
type TaskResult struct {
	// Task is the display name of the task (e.g., "Task Breakdown").
	Task string `json:"task"`
	// Agent is the role name of the agent that performed the task.
	Agent string `json:"agent"`
	// Output is the raw model output for this task.
	Output string `json:"output"`
	// InputTokens is the number of prompt tokens consumed.
	InputTokens int64 `json:"input_tokens"`
	// OutputTokens is the number of completion tokens produced.
	OutputTokens int64 `json:"output_tokens"`
	// Duration is the wall-clock time the task took.
	Duration time.Duration `json:"duration"`
}

// Usage aggregates token consumption across a run.
type Usage struct {
	// InputTokens is the total prompt tokens across all calls.
	InputTokens int64 `json:"input_tokens"`
	// OutputTokens is the total completion tokens across all calls.
	OutputTokens int64 `json:"output_tokens"`
	// Calls is the number of model calls made.
	Calls int `json:"calls"`
}

// Total returns the combined input and output token count.
func (u Usage) Total() int64 {
	return u.InputTokens + u.OutputTokens
}

// Add accumulates another usage record into this one.
func (u *Usage) Add(other Usage) {
	u.InputTokens += other.InputTokens
	u.OutputTokens += other.OutputTokens
	u.Calls += other.Calls
}
