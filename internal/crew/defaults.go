package crew

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
)

//go:embed defaults/agents.yaml
var defaultAgentsYAML []byte

//go:embed defaults/tasks.yaml
var defaultTasksYAML []byte

// DefaultDefinitions returns the built-in agent and task registries.
// These are the same definitions `planforge init` scaffolds into config/.
func DefaultDefinitions() (*Definitions, error) {
	return ParseDefinitions(defaultAgentsYAML, defaultTasksYAML)
}

// LoadOrDefault loads the registries from the given paths, falling back to
// the built-in defaults when both files are absent.
func LoadOrDefault(agentsPath, tasksPath string) (*Definitions, error) {
	_, agentsErr := os.Stat(agentsPath)
	_, tasksErr := os.Stat(tasksPath)
	if os.IsNotExist(agentsErr) && os.IsNotExist(tasksErr) {
		return DefaultDefinitions()
	}
	if os.IsNotExist(agentsErr) != os.IsNotExist(tasksErr) {
		return nil, fmt.Errorf("registry files must both exist: found one of %s, %s", agentsPath, tasksPath)
	}
	return LoadDefinitions(agentsPath, tasksPath)
}

// WriteDefaults writes the built-in registry YAML to the given paths.
// Used by init to scaffold a project's config directory.
func WriteDefaults(agentsPath, tasksPath string) error {
	for _, path := range []string{agentsPath, tasksPath} {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("create registry directory: %w", err)
		}
	}
	if err := os.WriteFile(agentsPath, defaultAgentsYAML, 0644); err != nil {
		return fmt.Errorf("write agents registry: %w", err)
	}
	if err := os.WriteFile(tasksPath, defaultTasksYAML, 0644); err != nil {
		return fmt.Errorf("write tasks registry: %w", err)
	}
	return nil
}
