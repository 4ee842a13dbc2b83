// Package crew loads the agent and task registries and runs the
// project-planning crew: three agents executing three tasks in sequence
// against an LLM provider.
package crew

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// RequiredRoles is the exact set of agent roles the registry must declare.
var RequiredRoles = []string{
	"Project Planner",
	"Estimation Analyst",
	"Allocation Strategist",
}

// RequiredTasks is the exact set of task names the registry must declare.
var RequiredTasks = []string{
	"Task Breakdown",
	"Time Estimation",
	"Resource Allocation",
}

// AgentDef is a single agent declaration from agents.yaml.
type AgentDef struct {
	// ID is the registry key (e.g., "project_planning_agent").
	ID string `yaml:"-"`
	// Role is the agent's display role (e.g., "Project Planner").
	Role string `yaml:"role"`
	// Goal states what the agent is optimizing for.
	Goal string `yaml:"goal"`
	// Backstory frames the agent's expertise in the system prompt.
	Backstory string `yaml:"backstory"`
}

// TaskDef is a single task declaration from tasks.yaml.
type TaskDef struct {
	// ID is the registry key (e.g., "task_breakdown").
	ID string `yaml:"-"`
	// Name is the task's display name (e.g., "Task Breakdown").
	Name string `yaml:"name"`
	// Description is the prompt template, with {placeholder} slots for
	// the run inputs.
	Description string `yaml:"description"`
	// ExpectedOutput describes the acceptance criteria for the answer.
	ExpectedOutput string `yaml:"expected_output"`
	// Agent references the ID of the agent that performs this task.
	Agent string `yaml:"agent"`
	// StructuredOutput, when true, requires the answer to contain a JSON
	// project plan.
	StructuredOutput bool `yaml:"structured_output"`
}

// Definitions holds the loaded agent and task registries. Tasks preserve
// their declaration order from tasks.yaml, which is the execution order.
type Definitions struct {
	Agents map[string]AgentDef
	Tasks  []TaskDef
}

// LoadDefinitions reads and validates the agent and task registries from
// the given YAML files.
func LoadDefinitions(agentsPath, tasksPath string) (*Definitions, error) {
	agentsData, err := os.ReadFile(agentsPath)
	if err != nil {
		return nil, fmt.Errorf("read agents registry: %w", err)
	}
	tasksData, err := os.ReadFile(tasksPath)
	if err != nil {
		return nil, fmt.Errorf("read tasks registry: %w", err)
	}
	return ParseDefinitions(agentsData, tasksData)
}

// ParseDefinitions parses and validates registry YAML content.
func ParseDefinitions(agentsYAML, tasksYAML []byte) (*Definitions, error) {
	agents, err := parseAgents(agentsYAML)
	if err != nil {
		return nil, err
	}
	tasks, err := parseTasks(tasksYAML)
	if err != nil {
		return nil, err
	}

	defs := &Definitions{Agents: agents, Tasks: tasks}
	if err := defs.Validate(); err != nil {
		return nil, err
	}
	return defs, nil
}

func parseAgents(data []byte) (map[string]AgentDef, error) {
	var raw map[string]AgentDef
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse agents registry: %w", err)
	}

	agents := make(map[string]AgentDef, len(raw))
	for id, def := range raw {
		def.ID = id
		agents[id] = def
	}
	return agents, nil
}

// parseTasks decodes tasks.yaml via yaml.Node so the document's mapping
// order survives: declaration order is the crew's execution order.
func parseTasks(data []byte) ([]TaskDef, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse tasks registry: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, fmt.Errorf("tasks registry is empty")
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("tasks registry must be a mapping of task id to definition")
	}

	tasks := make([]TaskDef, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode := root.Content[i]
		valNode := root.Content[i+1]

		var def TaskDef
		if err := valNode.Decode(&def); err != nil {
			return nil, fmt.Errorf("parse task %q: %w", keyNode.Value, err)
		}
		def.ID = keyNode.Value
		tasks = append(tasks, def)
	}
	return tasks, nil
}

// Validate checks that the registries declare exactly the required roles
// and tasks, and that every task references a declared agent.
func (d *Definitions) Validate() error {
	roles := make([]string, 0, len(d.Agents))
	for _, a := range d.Agents {
		if a.Role == "" {
			return fmt.Errorf("agent %q has no role", a.ID)
		}
		roles = append(roles, a.Role)
	}
	if err := matchExact("role", roles, RequiredRoles); err != nil {
		return err
	}

	names := make([]string, 0, len(d.Tasks))
	for _, t := range d.Tasks {
		if t.Name == "" {
			return fmt.Errorf("task %q has no name", t.ID)
		}
		if t.Description == "" {
			return fmt.Errorf("task %q has no description", t.ID)
		}
		if _, ok := d.Agents[t.Agent]; !ok {
			return fmt.Errorf("task %q references unknown agent %q", t.ID, t.Agent)
		}
		names = append(names, t.Name)
	}
	return matchExact("task", names, RequiredTasks)
}

// AgentForTask returns the agent definition a task references.
func (d *Definitions) AgentForTask(task TaskDef) (AgentDef, error) {
	agent, ok := d.Agents[task.Agent]
	if !ok {
		return AgentDef{}, fmt.Errorf("task %q references unknown agent %q", task.ID, task.Agent)
	}
	return agent, nil
}

// matchExact verifies that got contains exactly the want values, in any
// order and with no duplicates.
func matchExact(kind string, got, want []string) error {
	gotSorted := append([]string(nil), got...)
	wantSorted := append([]string(nil), want...)
	sort.Strings(gotSorted)
	sort.Strings(wantSorted)

	if len(gotSorted) != len(wantSorted) {
		return fmt.Errorf("registry must declare exactly %d %ss, found %d", len(wantSorted), kind, len(gotSorted))
	}
	for i := range gotSorted {
		if gotSorted[i] != wantSorted[i] {
			return fmt.Errorf("unexpected %s %q (want one of %v)", kind, gotSorted[i], want)
		}
	}
	return nil
}
