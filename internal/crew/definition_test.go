package crew

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultDefinitions(t *testing.T) {
	defs, err := DefaultDefinitions()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(defs.Agents) != 3 {
		t.Errorf("expected 3 agents, got %d", len(defs.Agents))
	}
	if len(defs.Tasks) != 3 {
		t.Errorf("expected 3 tasks, got %d", len(defs.Tasks))
	}
}

func TestDefaultRoleRegistry(t *testing.T) {
	defs, err := DefaultDefinitions()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	roles := map[string]bool{}
	for _, a := range defs.Agents {
		roles[a.Role] = true
	}

	for _, want := range []string{"Project Planner", "Estimation Analyst", "Allocation Strategist"} {
		if !roles[want] {
			t.Errorf("role registry missing %q", want)
		}
	}
	if len(roles) != 3 {
		t.Errorf("expected exactly 3 roles, got %d", len(roles))
	}
}

func TestDefaultTaskRegistry(t *testing.T) {
	defs, err := DefaultDefinitions()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"Task Breakdown", "Time Estimation", "Resource Allocation"}
	if len(defs.Tasks) != len(want) {
		t.Fatalf("expected %d tasks, got %d", len(want), len(defs.Tasks))
	}
	for i, name := range want {
		if defs.Tasks[i].Name != name {
			t.Errorf("task %d: expected %q, got %q", i, name, defs.Tasks[i].Name)
		}
	}
}

func TestTasksPreserveDeclarationOrder(t *testing.T) {
	// Declared in reverse of the default order; the loader must keep it.
	tasksYAML := []byte(`
resource_allocation:
  name: Resource Allocation
  description: allocate
  agent: a
time_resource_estimation:
  name: Time Estimation
  description: estimate
  agent: a
task_breakdown:
  name: Task Breakdown
  description: break down
  agent: a
`)
	agentsYAML := []byte(`
a:
  role: Project Planner
b:
  role: Estimation Analyst
c:
  role: Allocation Strategist
`)

	defs, err := ParseDefinitions(agentsYAML, tasksYAML)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"Resource Allocation", "Time Estimation", "Task Breakdown"}
	for i, name := range want {
		if defs.Tasks[i].Name != name {
			t.Errorf("task %d: expected %q, got %q", i, name, defs.Tasks[i].Name)
		}
	}
}

func TestValidateRejectsUnknownRole(t *testing.T) {
	agentsYAML := []byte(`
a:
  role: Project Planner
b:
  role: Estimation Analyst
c:
  role: Chief Vibes Officer
`)
	_, err := ParseDefinitions(agentsYAML, defaultTasksYAML)
	if err == nil {
		t.Fatal("expected error for unknown role")
	}
	if !strings.Contains(err.Error(), "Chief Vibes Officer") {
		t.Errorf("expected error to name the offending role, got %v", err)
	}
}

func TestValidateRejectsMissingRole(t *testing.T) {
	agentsYAML := []byte(`
a:
  role: Project Planner
b:
  role: Estimation Analyst
`)
	_, err := ParseDefinitions(agentsYAML, defaultTasksYAML)
	if err == nil {
		t.Fatal("expected error when a required role is missing")
	}
}

func TestValidateRejectsUnknownAgentRef(t *testing.T) {
	tasksYAML := []byte(`
task_breakdown:
  name: Task Breakdown
  description: break down
  agent: nobody
time_resource_estimation:
  name: Time Estimation
  description: estimate
  agent: estimation_agent
resource_allocation:
  name: Resource Allocation
  description: allocate
  agent: resource_allocation_agent
`)
	_, err := ParseDefinitions(defaultAgentsYAML, tasksYAML)
	if err == nil {
		t.Fatal("expected error for unknown agent reference")
	}
	if !strings.Contains(err.Error(), "nobody") {
		t.Errorf("expected error to name the unknown agent, got %v", err)
	}
}

func TestLoadDefinitionsFromFiles(t *testing.T) {
	dir := t.TempDir()
	agentsPath := filepath.Join(dir, "agents.yaml")
	tasksPath := filepath.Join(dir, "tasks.yaml")

	if err := WriteDefaults(agentsPath, tasksPath); err != nil {
		t.Fatalf("write defaults: %v", err)
	}

	defs, err := LoadDefinitions(agentsPath, tasksPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(defs.Tasks) != 3 {
		t.Errorf("expected 3 tasks, got %d", len(defs.Tasks))
	}
}

func TestLoadOrDefaultFallsBack(t *testing.T) {
	dir := t.TempDir()
	defs, err := LoadOrDefault(filepath.Join(dir, "agents.yaml"), filepath.Join(dir, "tasks.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(defs.Agents) != 3 {
		t.Errorf("expected built-in defaults, got %d agents", len(defs.Agents))
	}
}

func TestLoadOrDefaultRejectsPartialConfig(t *testing.T) {
	dir := t.TempDir()
	agentsPath := filepath.Join(dir, "agents.yaml")
	if err := os.WriteFile(agentsPath, defaultAgentsYAML, 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadOrDefault(agentsPath, filepath.Join(dir, "tasks.yaml"))
	if err == nil {
		t.Fatal("expected error when only one registry file exists")
	}
}
