package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/planforge/planforge/internal/plan"
)

// Report file names within the metrics directory.
const (
	costFile             = "cost.txt"
	ganttFile            = "gantt_chart.md"
	transcriptFile       = "full_output.txt"
	taskDetailsFile      = "task_details.txt"
	milestoneDetailsFile = "milestone_details.txt"
)

const timestampLayout = "2006-01-02 15:04:05"

// Writer appends per-run reports to a metrics directory. Cost, Gantt, and
// transcript files accumulate across runs; the plan detail files reflect
// the latest run only.
type Writer struct {
	dir string
	now func() time.Time
}

// NewWriter creates a Writer for the given directory, creating it if
// needed.
func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create metrics directory: %w", err)
	}
	return &Writer{dir: dir, now: time.Now}, nil
}

// Dir returns the metrics directory.
func (w *Writer) Dir() string {
	return w.dir
}

// AppendCost appends a timestamped cost line.
func (w *Writer) AppendCost(cost float64) error {
	line := fmt.Sprintf("%s Total costs: $%.4f\n", w.now().Format(timestampLayout), cost)
	return w.appendFile(costFile, line)
}

// AppendGantt appends the extracted Gantt chart under a dated heading.
// A run without a chart writes nothing.
func (w *Writer) AppendGantt(gantt string) error {
	if gantt == "" {
		return nil
	}
	entry := fmt.Sprintf("\n\n# Gantt Chart - %s\n%s", w.now().Format(timestampLayout), gantt)
	return w.appendFile(ganttFile, entry)
}

// AppendTranscript appends the full run transcript under a run separator.
func (w *Writer) AppendTranscript(transcript string) error {
	entry := fmt.Sprintf("\n\n=== New Run - %s ===\n%s", w.now().Format(timestampLayout), transcript)
	return w.appendFile(transcriptFile, entry)
}

// WritePlanDetails overwrites the task and milestone detail reports from
// the structured plan.
func (w *Writer) WritePlanDetails(p *plan.ProjectPlan) error {
	taskTable := fmt.Sprintf("Task Details:\n%s", plan.RenderTaskTable(p.Tasks))
	if err := os.WriteFile(filepath.Join(w.dir, taskDetailsFile), []byte(taskTable), 0644); err != nil {
		return fmt.Errorf("write task details: %w", err)
	}

	milestoneTable := fmt.Sprintf("Milestone Details:\n%s", plan.RenderMilestoneTable(p.Milestones))
	if err := os.WriteFile(filepath.Join(w.dir, milestoneDetailsFile), []byte(milestoneTable), 0644); err != nil {
		return fmt.Errorf("write milestone details: %w", err)
	}
	return nil
}

func (w *Writer) appendFile(name, content string) error {
	path := filepath.Join(w.dir, name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	if _, err := f.WriteString(content); err != nil {
		return fmt.Errorf("append %s: %w", name, err)
	}
	return nil
}
