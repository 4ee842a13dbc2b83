package crew

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/planforge/planforge/internal/llm"
	"github.com/planforge/planforge/internal/plan"
	"github.com/planforge/planforge/pkg/models"
)

// ErrStopped is returned when a run is aborted by a stop signal.
var ErrStopped = errors.New("crew: run stopped by signal")

// Config assembles a Crew.
type Config struct {
	// Definitions are the loaded agent and task registries.
	Definitions *Definitions
	// Completer is the LLM provider that executes tasks.
	Completer llm.Completer
	// Emitter receives run events. Optional; nil disables events.
	Emitter *EventEmitter
	// Logger receives debug output. Optional; nil disables logging.
	Logger *DebugLogger
	// Signals allows external stop/pause control. Optional.
	Signals *SignalWatcher
	// MaxTokens caps each task's completion length (0 = provider default).
	MaxTokens int
	// TaskTimeout bounds each task's model call (0 = no timeout).
	TaskTimeout time.Duration
}

// Crew executes the registered tasks in declaration order, chaining each
// task's output into the next task's context.
type Crew struct {
	defs        *Definitions
	completer   llm.Completer
	tracker     *llm.TokenTracker
	emitter     *EventEmitter
	logger      *DebugLogger
	signals     *SignalWatcher
	maxTokens   int
	taskTimeout time.Duration
}

// Result is the outcome of a crew run.
type Result struct {
	// RunID uniquely identifies this run.
	RunID string
	// Status is the final run status.
	Status models.RunStatus
	// TaskResults holds per-task outcomes in execution order.
	TaskResults []models.TaskResult
	// Transcript is the full concatenated output of all tasks.
	Transcript string
	// Plan is the structured project plan parsed from the final task.
	// Nil if the run did not reach the structured task.
	Plan *plan.ProjectPlan
	// Gantt is the extracted Gantt chart, if the transcript contains one.
	Gantt string
	// Usage is the total token usage of the run.
	Usage models.Usage
}

// New creates a Crew from the given config.
func New(cfg Config) *Crew {
	return &Crew{
		defs:        cfg.Definitions,
		completer:   cfg.Completer,
		tracker:     llm.NewTokenTracker(),
		emitter:     cfg.Emitter,
		logger:      cfg.Logger,
		signals:     cfg.Signals,
		maxTokens:   cfg.MaxTokens,
		taskTimeout: cfg.TaskTimeout,
	}
}

// Tracker exposes the crew's token tracker for cost reporting.
func (c *Crew) Tracker() *llm.TokenTracker {
	return c.tracker
}

func (c *Crew) emit(event Event) {
	if c.emitter == nil {
		return
	}
	event.Usage = c.tracker.Usage()
	event.Time = time.Now()
	c.emitter.Emit(event)
}

func (c *Crew) log(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Log(format, args...)
	}
}

// Kickoff runs every task in order and returns the assembled result.
// On failure or stop the partial result is returned alongside the error.
func (c *Crew) Kickoff(ctx context.Context, inputs Inputs) (*Result, error) {
	if err := inputs.Validate(); err != nil {
		return nil, err
	}

	result := &Result{
		RunID:  uuid.New().String(),
		Status: models.RunRunning,
	}

	c.log("run %s started: project=%q model=%s", result.RunID, inputs.Project, c.completer.Model())
	c.emit(Event{Type: EventRunStarted})

	values := inputs.Map()
	var transcript strings.Builder

	for _, task := range c.defs.Tasks {
		if err := c.checkSignals(ctx, result, task); err != nil {
			result.Transcript = transcript.String()
			result.Usage = c.tracker.Usage()
			return result, err
		}

		agent, err := c.defs.AgentForTask(task)
		if err != nil {
			result.Status = models.RunFailed
			return result, err
		}

		taskResult, err := c.runTask(ctx, task, agent, values, transcript.String())
		if err != nil {
			result.Status = models.RunFailed
			result.Transcript = transcript.String()
			result.Usage = c.tracker.Usage()
			c.emit(Event{Type: EventTaskFailed, Task: task.Name, Agent: agent.Role, Content: err.Error()})
			c.log("run %s: task %q failed: %v", result.RunID, task.Name, err)
			return result, fmt.Errorf("task %q: %w", task.Name, err)
		}

		result.TaskResults = append(result.TaskResults, *taskResult)
		fmt.Fprintf(&transcript, "## %s (%s)\n\n%s\n\n", task.Name, agent.Role, taskResult.Output)

		c.emit(Event{Type: EventTaskCompleted, Task: task.Name, Agent: agent.Role})
		c.log("run %s: task %q done in %s (%d in / %d out tokens)",
			result.RunID, task.Name, taskResult.Duration.Round(time.Millisecond),
			taskResult.InputTokens, taskResult.OutputTokens)

		if task.StructuredOutput {
			parsed, err := plan.Parse(taskResult.Output)
			if err != nil {
				result.Status = models.RunFailed
				result.Transcript = transcript.String()
				result.Usage = c.tracker.Usage()
				c.emit(Event{Type: EventTaskFailed, Task: task.Name, Agent: agent.Role, Content: err.Error()})
				return result, fmt.Errorf("task %q: %w", task.Name, err)
			}
			result.Plan = parsed
		}
	}

	result.Transcript = transcript.String()
	result.Gantt = plan.ExtractGantt(result.Transcript)
	result.Usage = c.tracker.Usage()
	result.Status = models.RunCompleted

	c.emit(Event{Type: EventRunCompleted})
	c.log("run %s completed: %d tasks, %d tokens total",
		result.RunID, len(result.TaskResults), result.Usage.Total())

	return result, nil
}

// runTask builds the prompts for a single task and executes it.
func (c *Crew) runTask(ctx context.Context, task TaskDef, agent AgentDef, values map[string]string, history string) (*models.TaskResult, error) {
	description, err := Interpolate(task.Description, values)
	if err != nil {
		return nil, err
	}

	c.emit(Event{Type: EventTaskStarted, Task: task.Name, Agent: agent.Role})
	c.log("task %q -> agent %q", task.Name, agent.Role)

	req := llm.Request{
		System:    buildSystemPrompt(agent),
		Prompt:    buildTaskPrompt(task, description, history),
		MaxTokens: c.maxTokens,
	}

	callCtx := ctx
	if c.taskTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, c.taskTimeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := c.completer.Complete(callCtx, req)
	if err != nil {
		return nil, err
	}
	c.tracker.Add(resp.InputTokens, resp.OutputTokens)

	c.emit(Event{Type: EventOutput, Task: task.Name, Agent: agent.Role, Content: resp.Text})

	return &models.TaskResult{
		Task:         task.Name,
		Agent:        agent.Role,
		Output:       resp.Text,
		InputTokens:  resp.InputTokens,
		OutputTokens: resp.OutputTokens,
		Duration:     time.Since(start),
	}, nil
}

// checkSignals aborts the run on a stop signal and blocks on pause.
func (c *Crew) checkSignals(ctx context.Context, result *Result, task TaskDef) error {
	if err := ctx.Err(); err != nil {
		result.Status = models.RunStopped
		return err
	}
	if c.signals == nil {
		return nil
	}

	if err := c.signals.WaitWhilePaused(ctx); err != nil {
		result.Status = models.RunStopped
		return err
	}
	if c.signals.ShouldStop() {
		result.Status = models.RunStopped
		result.Usage = c.tracker.Usage()
		c.emit(Event{Type: EventRunStopped, Task: task.Name})
		c.log("run %s stopped before task %q", result.RunID, task.Name)
		return ErrStopped
	}
	return nil
}

// buildSystemPrompt frames the agent's identity for the model.
func buildSystemPrompt(agent AgentDef) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are %s.\n", agent.Role)
	if agent.Backstory != "" {
		b.WriteString(strings.TrimSpace(agent.Backstory))
		b.WriteString("\n")
	}
	if agent.Goal != "" {
		fmt.Fprintf(&b, "\nYour personal goal is: %s", strings.TrimSpace(agent.Goal))
	}
	return b.String()
}

// buildTaskPrompt assembles the user-turn prompt: the interpolated task
// description, the accumulated context from prior tasks, the acceptance
// criteria, and the JSON schema when structured output is required.
func buildTaskPrompt(task TaskDef, description, history string) string {
	var b strings.Builder
	b.WriteString("Current task:\n")
	b.WriteString(strings.TrimSpace(description))
	b.WriteString("\n")

	if history != "" {
		b.WriteString("\nThis is the context from the tasks completed so far:\n\n")
		b.WriteString(history)
	}

	if task.ExpectedOutput != "" {
		fmt.Fprintf(&b, "\nExpected output: %s\n", strings.TrimSpace(task.ExpectedOutput))
	}

	if task.StructuredOutput {
		fmt.Fprintf(&b, "\nEnd your answer with the complete project plan as a JSON object matching this schema exactly:\n\n```json\n%s\n```\n", plan.Schema)
	}

	return b.String()
}
