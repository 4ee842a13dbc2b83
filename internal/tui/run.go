// Package tui provides the terminal user interface for planforge runs.
//
// The run view is read-only: it shows each crew task's state, a tail of
// the latest model output, and the accumulating token usage and cost.
// Users can only quit with 'q' or Ctrl+C; quitting the view does not stop
// the run.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/planforge/planforge/internal/crew"
	"github.com/planforge/planforge/internal/llm"
	"github.com/planforge/planforge/pkg/models"
)

// outputTailLines is how many lines of the latest model output are shown.
const outputTailLines = 12

// EventMsg delivers a crew event to the view.
type EventMsg struct {
	Event crew.Event
}

// DoneMsg signals that the run has finished.
type DoneMsg struct {
	Err error
}

// taskRow is the display state of one crew task.
type taskRow struct {
	name  string
	agent string
	state models.TaskState
}

// RunView displays a crew run in progress.
type RunView struct {
	project string
	pricing llm.Pricing

	tasks   []taskRow
	usage   models.Usage
	output  []string
	done    bool
	err     error
	spinner spinner.Model
	width   int

	// Styles
	headerStyle  lipgloss.Style
	pendingStyle lipgloss.Style
	runningStyle lipgloss.Style
	doneStyle    lipgloss.Style
	failedStyle  lipgloss.Style
	outputStyle  lipgloss.Style
	footerStyle  lipgloss.Style
	errStyle     lipgloss.Style
}

// NewRunView creates a run view for the given project and task list.
func NewRunView(project string, defs *crew.Definitions, pricing llm.Pricing) *RunView {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	rows := make([]taskRow, 0, len(defs.Tasks))
	for _, task := range defs.Tasks {
		agent := ""
		if a, err := defs.AgentForTask(task); err == nil {
			agent = a.Role
		}
		rows = append(rows, taskRow{name: task.Name, agent: agent, state: models.TaskPending})
	}

	return &RunView{
		project: project,
		pricing: pricing,
		tasks:   rows,
		spinner: sp,

		headerStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("238")).
			MarginBottom(1),

		pendingStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),

		runningStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true),

		doneStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("34")),

		failedStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")),

		outputStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),

		footerStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			MarginTop(1),

		errStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true),
	}
}

// Init starts the spinner.
func (v *RunView) Init() tea.Cmd {
	return v.spinner.Tick
}

// Update handles input and run events.
func (v *RunView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return v, tea.Quit
		}

	case tea.WindowSizeMsg:
		v.width = msg.Width

	case EventMsg:
		v.apply(msg.Event)
		return v, nil

	case DoneMsg:
		v.done = true
		v.err = msg.Err
		return v, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd
	}

	return v, nil
}

// apply folds a crew event into the display state.
func (v *RunView) apply(ev crew.Event) {
	v.usage = ev.Usage

	switch ev.Type {
	case crew.EventTaskStarted:
		v.setTaskState(ev.Task, models.TaskRunning)
	case crew.EventTaskCompleted:
		v.setTaskState(ev.Task, models.TaskDone)
	case crew.EventTaskFailed:
		v.setTaskState(ev.Task, models.TaskFailed)
	case crew.EventRunStopped:
		for i := range v.tasks {
			if v.tasks[i].state == models.TaskPending || v.tasks[i].state == models.TaskRunning {
				v.tasks[i].state = models.TaskSkipped
			}
		}
	case crew.EventOutput:
		lines := strings.Split(strings.TrimRight(ev.Content, "\n"), "\n")
		if len(lines) > outputTailLines {
			lines = lines[len(lines)-outputTailLines:]
		}
		v.output = lines
	}
}

func (v *RunView) setTaskState(name string, state models.TaskState) {
	for i := range v.tasks {
		if v.tasks[i].name == name {
			v.tasks[i].state = state
			return
		}
	}
}

// View renders the run display.
func (v *RunView) View() string {
	var b strings.Builder

	b.WriteString(v.headerStyle.Render(fmt.Sprintf("planforge run — %s", v.project)))
	b.WriteString("\n")

	for _, row := range v.tasks {
		var marker, label string
		switch row.state {
		case models.TaskRunning:
			marker = v.spinner.View()
			label = v.runningStyle.Render(row.name)
		case models.TaskDone:
			marker = v.doneStyle.Render("✓")
			label = v.doneStyle.Render(row.name)
		case models.TaskFailed:
			marker = v.failedStyle.Render("✗")
			label = v.failedStyle.Render(row.name)
		case models.TaskSkipped:
			marker = v.pendingStyle.Render("-")
			label = v.pendingStyle.Render(row.name)
		default:
			marker = v.pendingStyle.Render("·")
			label = v.pendingStyle.Render(row.name)
		}
		fmt.Fprintf(&b, " %s %s %s\n", marker, label, v.pendingStyle.Render("("+row.agent+")"))
	}

	if len(v.output) > 0 {
		b.WriteString("\n")
		b.WriteString(v.outputStyle.Render(strings.Join(v.output, "\n")))
		b.WriteString("\n")
	}

	cost := v.pricing.Cost(v.usage.InputTokens, v.usage.OutputTokens)
	footer := fmt.Sprintf("tokens: %d in / %d out   calls: %d   cost: $%.4f",
		v.usage.InputTokens, v.usage.OutputTokens, v.usage.Calls, cost)
	b.WriteString(v.footerStyle.Render(footer))

	if v.done {
		b.WriteString("\n")
		if v.err != nil {
			b.WriteString(v.errStyle.Render("run failed: " + v.err.Error()))
		} else {
			b.WriteString(v.doneStyle.Render("run complete"))
		}
		b.WriteString("\n")
	} else {
		b.WriteString(v.footerStyle.Render("\npress q to detach (the run keeps going)"))
	}

	return b.String()
}

// NewRunProgram creates a tea.Program wrapping a RunView and returns both.
// The caller forwards crew events with program.Send(EventMsg{...}) and
// finishes with program.Send(DoneMsg{...}).
func NewRunProgram(project string, defs *crew.Definitions, pricing llm.Pricing) (*tea.Program, *RunView) {
	view := NewRunView(project, defs, pricing)
	program := tea.NewProgram(view)
	return program, view
}
