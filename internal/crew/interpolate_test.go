package crew

import (
	"strings"
	"testing"
)

func TestInterpolate(t *testing.T) {
	values := map[string]string{
		"project":  "Website",
		"industry": "Technology",
	}

	got, err := Interpolate("Plan the {project} project in the {industry} industry.", values)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "Plan the Website project in the Technology industry."
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestInterpolateRepeatedPlaceholder(t *testing.T) {
	got, err := Interpolate("{project} and {project} again", map[string]string{"project": "Website"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Website and Website again" {
		t.Errorf("unexpected result %q", got)
	}
}

func TestInterpolateMissingValue(t *testing.T) {
	_, err := Interpolate("Plan {project} for {industry}", map[string]string{"project": "Website"})
	if err == nil {
		t.Fatal("expected error for unresolved placeholder")
	}
	if !strings.Contains(err.Error(), "industry") {
		t.Errorf("expected error to name the missing placeholder, got %v", err)
	}
}

func TestInterpolateReportsEachMissingOnce(t *testing.T) {
	_, err := Interpolate("{industry} {industry} {project}", map[string]string{})
	if err == nil {
		t.Fatal("expected error")
	}
	if strings.Count(err.Error(), "industry") != 1 {
		t.Errorf("expected each missing placeholder reported once, got %v", err)
	}
}

func TestInterpolateIgnoresNonPlaceholderBraces(t *testing.T) {
	// JSON-ish braces and {CamelCase} are not input slots.
	in := `{"key": "value"} and {NotASlot}`
	got, err := Interpolate(in, map[string]string{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != in {
		t.Errorf("expected input unchanged, got %q", got)
	}
}

func TestInputsMap(t *testing.T) {
	in := Inputs{
		Project:      "Website",
		Industry:     "Technology",
		Objectives:   "Create a website for a small business",
		TeamMembers:  "- John Doe (Project Manager)",
		Requirements: "- Responsive design",
	}

	m := in.Map()
	if m["project"] != "Website" {
		t.Errorf("expected project mapping, got %q", m["project"])
	}
	if m["project_objectives"] != in.Objectives {
		t.Errorf("expected objectives mapping, got %q", m["project_objectives"])
	}
	if len(m) != 5 {
		t.Errorf("expected 5 input keys, got %d", len(m))
	}
}

func TestInputsValidate(t *testing.T) {
	if err := (Inputs{Project: "x", Objectives: "y"}).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := (Inputs{Objectives: "y"}).Validate(); err == nil {
		t.Error("expected error for missing project")
	}
	if err := (Inputs{Project: "x"}).Validate(); err == nil {
		t.Error("expected error for missing objectives")
	}
}

func TestDefaultTaskDescriptionsInterpolate(t *testing.T) {
	// Every placeholder used by the built-in task registry must be an
	// input the run command can supply.
	defs, err := DefaultDefinitions()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	values := Inputs{
		Project:      "Website",
		Industry:     "Technology",
		Objectives:   "objectives",
		TeamMembers:  "team",
		Requirements: "requirements",
	}.Map()

	for _, task := range defs.Tasks {
		if _, err := Interpolate(task.Description, values); err != nil {
			t.Errorf("task %q: %v", task.Name, err)
		}
	}
}
