package plan

import (
	"errors"
	"testing"
)

const validPlanJSON = `{
  "tasks": [
    {"task_name": "Design homepage", "estimated_time_hours": 12.5, "required_resources": ["Designer"]},
    {"task_name": "Build contact form", "estimated_time_hours": 8, "required_resources": ["Development Lead", "QA Engineer"]}
  ],
  "milestones": [
    {"milestone_name": "Design complete", "tasks": ["Design homepage"]}
  ]
}`

func TestParseBareJSON(t *testing.T) {
	p, err := Parse(validPlanJSON)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.Tasks) != 2 {
		t.Errorf("expected 2 tasks, got %d", len(p.Tasks))
	}
	if p.Tasks[0].TaskName != "Design homepage" {
		t.Errorf("expected first task 'Design homepage', got %q", p.Tasks[0].TaskName)
	}
	if len(p.Milestones) != 1 {
		t.Errorf("expected 1 milestone, got %d", len(p.Milestones))
	}
}

func TestParseFencedJSON(t *testing.T) {
	output := "Here is the final project plan:\n\n```json\n" + validPlanJSON + "\n```\n\nLet me know if anything needs adjusting."
	p, err := Parse(output)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.Tasks) != 2 {
		t.Errorf("expected 2 tasks, got %d", len(p.Tasks))
	}
}

func TestParseJSONEmbeddedInProse(t *testing.T) {
	output := "The allocation works out as follows. " + validPlanJSON + " That concludes the plan."
	p, err := Parse(output)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Tasks[1].EstimatedTimeHours != 8 {
		t.Errorf("expected 8 hours, got %f", p.Tasks[1].EstimatedTimeHours)
	}
}

func TestParseNoJSON(t *testing.T) {
	_, err := Parse("There is no structured output here at all.")
	if !errors.Is(err, ErrNoPlan) {
		t.Errorf("expected ErrNoPlan, got %v", err)
	}
}

func TestParseRejectsEmptyTaskList(t *testing.T) {
	_, err := Parse(`{"tasks": [], "milestones": []}`)
	if !errors.Is(err, ErrNoPlan) {
		t.Errorf("expected ErrNoPlan for empty task list, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		plan    ProjectPlan
		wantErr bool
	}{
		{
			name: "valid plan",
			plan: ProjectPlan{
				Tasks:      []TaskEstimate{{TaskName: "a", EstimatedTimeHours: 1}},
				Milestones: []Milestone{{MilestoneName: "m", Tasks: []string{"a"}}},
			},
		},
		{
			name:    "no tasks",
			plan:    ProjectPlan{},
			wantErr: true,
		},
		{
			name: "negative estimate",
			plan: ProjectPlan{
				Tasks: []TaskEstimate{{TaskName: "a", EstimatedTimeHours: -1}},
			},
			wantErr: true,
		},
		{
			name: "unnamed task",
			plan: ProjectPlan{
				Tasks: []TaskEstimate{{EstimatedTimeHours: 1}},
			},
			wantErr: true,
		},
		{
			name: "milestone without tasks",
			plan: ProjectPlan{
				Tasks:      []TaskEstimate{{TaskName: "a"}},
				Milestones: []Milestone{{MilestoneName: "m"}},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.plan.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTotalHours(t *testing.T) {
	p := ProjectPlan{
		Tasks: []TaskEstimate{
			{TaskName: "a", EstimatedTimeHours: 10.5},
			{TaskName: "b", EstimatedTimeHours: 4.5},
		},
	}
	if got := p.TotalHours(); got != 15 {
		t.Errorf("expected total 15, got %f", got)
	}
}
