// Package plan defines the structured project plan produced by the final
// crew task, plus the parsing and rendering of that output.
package plan

import (
	"errors"
	"fmt"
)

// ErrNoPlan is returned when no JSON project plan can be located in the
// model output.
var ErrNoPlan = errors.New("plan: no project plan found in output")

// TaskEstimate is a single task with its effort and resource estimate.
type TaskEstimate struct {
	// TaskName is the name of the task.
	TaskName string `json:"task_name"`
	// EstimatedTimeHours is the estimated time to complete the task in hours.
	EstimatedTimeHours float64 `json:"estimated_time_hours"`
	// RequiredResources lists the resources required to complete the task.
	RequiredResources []string `json:"required_resources"`
}

// Milestone groups tasks under a named project milestone.
type Milestone struct {
	// MilestoneName is the name of the milestone.
	MilestoneName string `json:"milestone_name"`
	// Tasks lists the task names associated with this milestone.
	Tasks []string `json:"tasks"`
}

// ProjectPlan is the structured output of the allocation task: the full
// set of task estimates and the milestones that group them.
type ProjectPlan struct {
	// Tasks lists all tasks with their estimates.
	Tasks []TaskEstimate `json:"tasks"`
	// Milestones lists the project milestones.
	Milestones []Milestone `json:"milestones"`
}

// Validate checks the plan for structural problems: it must contain at
// least one task, every estimate must be non-negative, and every milestone
// must name at least one task.
func (p *ProjectPlan) Validate() error {
	if len(p.Tasks) == 0 {
		return errors.New("plan: no tasks")
	}
	for i, task := range p.Tasks {
		if task.TaskName == "" {
			return fmt.Errorf("plan: task %d has no name", i)
		}
		if task.EstimatedTimeHours < 0 {
			return fmt.Errorf("plan: task %q has negative estimate %.2f", task.TaskName, task.EstimatedTimeHours)
		}
	}
	for i, m := range p.Milestones {
		if m.MilestoneName == "" {
			return fmt.Errorf("plan: milestone %d has no name", i)
		}
		if len(m.Tasks) == 0 {
			return fmt.Errorf("plan: milestone %q has no tasks", m.MilestoneName)
		}
	}
	return nil
}

// TotalHours returns the sum of all task estimates.
func (p *ProjectPlan) TotalHours() float64 {
	var total float64
	for _, task := range p.Tasks {
		total += task.EstimatedTimeHours
	}
	return total
}

// Schema describes the expected JSON shape of a ProjectPlan. It is
// injected into the final task's prompt so the model emits parseable
// output.
const Schema = `{
  "tasks": [
    {
      "task_name": "string, name of the task",
      "estimated_time_hours": 0.0,
      "required_resources": ["string, resource required to complete the task"]
    }
  ],
  "milestones": [
    {
      "milestone_name": "string, name of the milestone",
      "tasks": ["string, task name associated with this milestone"]
    }
  ]
}`
